package kitsu

import (
	"context"

	"github.com/rs/zerolog"
)

// Client is the blocking Kitsu client. Each call runs one HTTP exchange on
// the calling goroutine and returns once the body is decoded.
type Client struct {
	baseURL    string
	httpClient Doer
	logger     zerolog.Logger
}

// NewClient creates a new blocking client
func NewClient(opts ...Option) *Client {
	o := newClientOptions(opts)
	return &Client{
		baseURL:    APIURL,
		httpClient: o.httpClient,
		logger:     o.logger,
	}
}

// execute performs one blocking GET for c and decodes the result
func execute[T any](ctx context.Context, cl *Client, c call[T]) (*T, error) {
	u, err := target(cl.baseURL, c.path, c.query)
	if err != nil {
		return nil, err
	}

	req, err := newRequest(ctx, u)
	if err != nil {
		return nil, err
	}
	ctx = req.Context()

	cl.logger.Debug().Str("url", u.String()).Msg("Making Kitsu API request")

	resp, err := cl.httpClient.Do(req)
	if err != nil {
		return nil, transportError(u.String(), err)
	}
	defer resp.Body.Close()

	raw, err := readAll(ctx, resp)
	if err != nil {
		return nil, transportError(u.String(), err)
	}

	return finish(c, u.String(), raw)
}

// GetAnime retrieves an anime by id
func (c *Client) GetAnime(ctx context.Context, id uint64) (*Response[Anime], error) {
	return execute(ctx, c, getCall[Anime](FamilyAnime, id))
}

// GetManga retrieves a manga by id
func (c *Client) GetManga(ctx context.Context, id uint64) (*Response[Manga], error) {
	return execute(ctx, c, getCall[Manga](FamilyManga, id))
}

// GetUser retrieves a user by id
func (c *Client) GetUser(ctx context.Context, id uint64) (*Response[User], error) {
	return execute(ctx, c, getCall[User](FamilyUsers, id))
}

// GetCharacter retrieves a character by id
func (c *Client) GetCharacter(ctx context.Context, id uint64) (*Response[Character], error) {
	return execute(ctx, c, getCall[Character](FamilyCharacters, id))
}

// GetProducer retrieves a producer by id
func (c *Client) GetProducer(ctx context.Context, id uint64) (*Response[Producer], error) {
	return execute(ctx, c, getCall[Producer](FamilyProducers, id))
}

// SearchAnime searches the anime collection
func (c *Client) SearchAnime(ctx context.Context, configure SearchFunc) (*Response[[]Anime], error) {
	return execute(ctx, c, searchCall[Anime](FamilyAnime, configure))
}

// SearchManga searches the manga collection
func (c *Client) SearchManga(ctx context.Context, configure SearchFunc) (*Response[[]Manga], error) {
	return execute(ctx, c, searchCall[Manga](FamilyManga, configure))
}

// SearchUsers searches the user collection
func (c *Client) SearchUsers(ctx context.Context, configure SearchFunc) (*Response[[]User], error) {
	return execute(ctx, c, searchCall[User](FamilyUsers, configure))
}

// SearchCharacters searches the character collection
func (c *Client) SearchCharacters(ctx context.Context, configure SearchFunc) (*Response[[]Character], error) {
	return execute(ctx, c, searchCall[Character](FamilyCharacters, configure))
}

// SearchProducers searches the producer collection
func (c *Client) SearchProducers(ctx context.Context, configure SearchFunc) (*Response[[]Producer], error) {
	return execute(ctx, c, searchCall[Producer](FamilyProducers, configure))
}
