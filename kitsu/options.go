package kitsu

import (
	"net/http"

	"github.com/rs/zerolog"
)

// Option configures a Client or an AsyncClient.
type Option func(*clientOptions)

// clientOptions holds configuration options shared by both backends.
type clientOptions struct {
	httpClient Doer
	logger     zerolog.Logger
	chunkSize  int
}

func newClientOptions(opts []Option) clientOptions {
	o := clientOptions{
		httpClient: http.DefaultClient,
		logger:     zerolog.Nop(),
		chunkSize:  defaultChunkSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithHTTPClient sets the transport used for requests.
// Timeouts, proxies and connection pooling are configured on it.
func WithHTTPClient(client Doer) Option {
	return func(o *clientOptions) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// WithChunkSize sets the body read size of the asynchronous backend.
func WithChunkSize(size int) Option {
	return func(o *clientOptions) {
		if size > 0 {
			o.chunkSize = size
		}
	}
}
