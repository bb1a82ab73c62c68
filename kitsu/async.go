package kitsu

import (
	"context"

	"github.com/rs/zerolog"
)

// Future is the pending result of an asynchronous request.
// It resolves exactly once and may be waited on from any goroutine.
type Future[T any] struct {
	done  chan struct{}
	value *T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) resolve(value *T, err error) {
	f.value, f.err = value, err
	close(f.done)
}

// Done returns a channel that is closed once the result is available
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the result is available
func (f *Future[T]) Wait() (*T, error) {
	<-f.done
	return f.value, f.err
}

// Await waits for the result or for ctx to end. Giving up on the wait does
// not stop the request; cancel the context the request was started with.
func (f *Future[T]) Await(ctx context.Context) (*T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// AsyncClient is the non-blocking Kitsu client. Each call starts the
// exchange on its own goroutine and returns a Future immediately.
type AsyncClient struct {
	baseURL    string
	httpClient Doer
	logger     zerolog.Logger
	chunkSize  int
}

// NewAsyncClient creates a new asynchronous client
func NewAsyncClient(opts ...Option) *AsyncClient {
	o := newClientOptions(opts)
	return &AsyncClient{
		baseURL:    APIURL,
		httpClient: o.httpClient,
		logger:     o.logger,
		chunkSize:  o.chunkSize,
	}
}

// dispatch starts c and returns its Future. A target that fails to build
// resolves the Future at once without touching the transport.
func dispatch[T any](ctx context.Context, cl *AsyncClient, c call[T]) *Future[T] {
	f := newFuture[T]()

	u, err := target(cl.baseURL, c.path, c.query)
	if err != nil {
		f.resolve(nil, err)
		return f
	}

	req, err := newRequest(ctx, u)
	if err != nil {
		f.resolve(nil, err)
		return f
	}
	ctx = req.Context()

	cl.logger.Debug().Str("url", u.String()).Msg("Dispatching async Kitsu API request")

	go func() {
		resp, err := cl.httpClient.Do(req)
		if err != nil {
			f.resolve(nil, transportError(u.String(), err))
			return
		}
		defer resp.Body.Close()

		raw, err := readChunks(ctx, resp, cl.chunkSize)
		if err != nil {
			f.resolve(nil, transportError(u.String(), err))
			return
		}

		f.resolve(finish(c, u.String(), raw))
	}()

	return f
}

// GetAnime retrieves an anime by id
func (c *AsyncClient) GetAnime(ctx context.Context, id uint64) *Future[Response[Anime]] {
	return dispatch(ctx, c, getCall[Anime](FamilyAnime, id))
}

// GetManga retrieves a manga by id
func (c *AsyncClient) GetManga(ctx context.Context, id uint64) *Future[Response[Manga]] {
	return dispatch(ctx, c, getCall[Manga](FamilyManga, id))
}

// GetUser retrieves a user by id
func (c *AsyncClient) GetUser(ctx context.Context, id uint64) *Future[Response[User]] {
	return dispatch(ctx, c, getCall[User](FamilyUsers, id))
}

// GetCharacter retrieves a character by id
func (c *AsyncClient) GetCharacter(ctx context.Context, id uint64) *Future[Response[Character]] {
	return dispatch(ctx, c, getCall[Character](FamilyCharacters, id))
}

// GetProducer retrieves a producer by id
func (c *AsyncClient) GetProducer(ctx context.Context, id uint64) *Future[Response[Producer]] {
	return dispatch(ctx, c, getCall[Producer](FamilyProducers, id))
}

// SearchAnime searches the anime collection
func (c *AsyncClient) SearchAnime(ctx context.Context, configure SearchFunc) *Future[Response[[]Anime]] {
	return dispatch(ctx, c, searchCall[Anime](FamilyAnime, configure))
}

// SearchManga searches the manga collection
func (c *AsyncClient) SearchManga(ctx context.Context, configure SearchFunc) *Future[Response[[]Manga]] {
	return dispatch(ctx, c, searchCall[Manga](FamilyManga, configure))
}

// SearchUsers searches the user collection
func (c *AsyncClient) SearchUsers(ctx context.Context, configure SearchFunc) *Future[Response[[]User]] {
	return dispatch(ctx, c, searchCall[User](FamilyUsers, configure))
}

// SearchCharacters searches the character collection
func (c *AsyncClient) SearchCharacters(ctx context.Context, configure SearchFunc) *Future[Response[[]Character]] {
	return dispatch(ctx, c, searchCall[Character](FamilyCharacters, configure))
}

// SearchProducers searches the producer collection
func (c *AsyncClient) SearchProducers(ctx context.Context, configure SearchFunc) *Future[Response[[]Producer]] {
	return dispatch(ctx, c, searchCall[Producer](FamilyProducers, configure))
}

// Blocking adapts the asynchronous client to the Requester interface by
// waiting on every Future it starts.
func (c *AsyncClient) Blocking() Requester {
	return blockingRequester{async: c}
}

type blockingRequester struct {
	async AsyncRequester
}

func (b blockingRequester) GetAnime(ctx context.Context, id uint64) (*Response[Anime], error) {
	return b.async.GetAnime(ctx, id).Wait()
}

func (b blockingRequester) GetManga(ctx context.Context, id uint64) (*Response[Manga], error) {
	return b.async.GetManga(ctx, id).Wait()
}

func (b blockingRequester) GetUser(ctx context.Context, id uint64) (*Response[User], error) {
	return b.async.GetUser(ctx, id).Wait()
}

func (b blockingRequester) GetCharacter(ctx context.Context, id uint64) (*Response[Character], error) {
	return b.async.GetCharacter(ctx, id).Wait()
}

func (b blockingRequester) GetProducer(ctx context.Context, id uint64) (*Response[Producer], error) {
	return b.async.GetProducer(ctx, id).Wait()
}

func (b blockingRequester) SearchAnime(ctx context.Context, configure SearchFunc) (*Response[[]Anime], error) {
	return b.async.SearchAnime(ctx, configure).Wait()
}

func (b blockingRequester) SearchManga(ctx context.Context, configure SearchFunc) (*Response[[]Manga], error) {
	return b.async.SearchManga(ctx, configure).Wait()
}

func (b blockingRequester) SearchUsers(ctx context.Context, configure SearchFunc) (*Response[[]User], error) {
	return b.async.SearchUsers(ctx, configure).Wait()
}

func (b blockingRequester) SearchCharacters(ctx context.Context, configure SearchFunc) (*Response[[]Character], error) {
	return b.async.SearchCharacters(ctx, configure).Wait()
}

func (b blockingRequester) SearchProducers(ctx context.Context, configure SearchFunc) (*Response[[]Producer], error) {
	return b.async.SearchProducers(ctx, configure).Wait()
}
