package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Client  ClientConfig  `mapstructure:"client"`
	Output  OutputConfig  `mapstructure:"output"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// HTTPConfig contains settings for the underlying HTTP client
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// Backend selects how requests are dispatched
type Backend string

const (
	// BackendSync performs every request on the calling goroutine
	BackendSync Backend = "sync"
	// BackendAsync dispatches requests in the background and waits on futures
	BackendAsync Backend = "async"
)

// ClientConfig contains Kitsu client settings
type ClientConfig struct {
	Backend     Backend `mapstructure:"backend"`
	ChunkSize   int     `mapstructure:"chunk_size"`
	Concurrency int     `mapstructure:"concurrency"`
}

// OutputConfig controls how results are printed
type OutputConfig struct {
	Format string `mapstructure:"format"`
}
