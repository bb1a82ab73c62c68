package kitsu

import (
	"context"
	"net/http"

	"github.com/s0up4200/kitsu/query"
)

// Doer performs HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// SearchFunc configures the filter set of a search.
// It is called exactly once per search, before any network activity.
type SearchFunc func(query.Search) query.Search

func (f SearchFunc) apply() string {
	s := query.New()
	if f != nil {
		s = f(s)
	}
	return s.Encode()
}

// Requester defines the blocking Kitsu operations
type Requester interface {
	// GetAnime retrieves an anime by id
	GetAnime(ctx context.Context, id uint64) (*Response[Anime], error)
	// GetManga retrieves a manga by id
	GetManga(ctx context.Context, id uint64) (*Response[Manga], error)
	// GetUser retrieves a user by id
	GetUser(ctx context.Context, id uint64) (*Response[User], error)
	// GetCharacter retrieves a character by id
	GetCharacter(ctx context.Context, id uint64) (*Response[Character], error)
	// GetProducer retrieves a producer by id
	GetProducer(ctx context.Context, id uint64) (*Response[Producer], error)

	// SearchAnime searches the anime collection
	SearchAnime(ctx context.Context, configure SearchFunc) (*Response[[]Anime], error)
	// SearchManga searches the manga collection
	SearchManga(ctx context.Context, configure SearchFunc) (*Response[[]Manga], error)
	// SearchUsers searches the user collection
	SearchUsers(ctx context.Context, configure SearchFunc) (*Response[[]User], error)
	// SearchCharacters searches the character collection
	SearchCharacters(ctx context.Context, configure SearchFunc) (*Response[[]Character], error)
	// SearchProducers searches the producer collection
	SearchProducers(ctx context.Context, configure SearchFunc) (*Response[[]Producer], error)
}

// AsyncRequester defines the non-blocking Kitsu operations. Every method
// returns at once; the Future resolves when the exchange and body read finish.
type AsyncRequester interface {
	GetAnime(ctx context.Context, id uint64) *Future[Response[Anime]]
	GetManga(ctx context.Context, id uint64) *Future[Response[Manga]]
	GetUser(ctx context.Context, id uint64) *Future[Response[User]]
	GetCharacter(ctx context.Context, id uint64) *Future[Response[Character]]
	GetProducer(ctx context.Context, id uint64) *Future[Response[Producer]]

	SearchAnime(ctx context.Context, configure SearchFunc) *Future[Response[[]Anime]]
	SearchManga(ctx context.Context, configure SearchFunc) *Future[Response[[]Manga]]
	SearchUsers(ctx context.Context, configure SearchFunc) *Future[Response[[]User]]
	SearchCharacters(ctx context.Context, configure SearchFunc) *Future[Response[[]Character]]
	SearchProducers(ctx context.Context, configure SearchFunc) *Future[Response[[]Producer]]
}

var (
	_ Requester      = (*Client)(nil)
	_ AsyncRequester = (*AsyncClient)(nil)
	_ Requester      = blockingRequester{}
)
