package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load loads the configuration. A missing config file is not an error since
// every setting has a default.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// KITSU_CLIENT_BACKEND overrides client.backend and so on
	v.SetEnvPrefix("kitsu")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".kitsu"))
		}

		// Check /etc
		v.AddConfigPath("/etc/kitsu/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	// HTTP defaults
	v.SetDefault("http.timeout", "30s")

	// Client defaults
	v.SetDefault("client.backend", string(BackendSync))
	v.SetDefault("client.chunk_size", 32*1024)
	v.SetDefault("client.concurrency", 4)

	// Output defaults
	v.SetDefault("output.format", "text")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	if cfg.HTTP.Timeout < 0 {
		return fmt.Errorf("http.timeout must not be negative")
	}

	switch cfg.Client.Backend {
	case BackendSync, BackendAsync:
	default:
		return fmt.Errorf("invalid client.backend: %s (must be 'sync' or 'async')", cfg.Client.Backend)
	}

	if cfg.Client.ChunkSize <= 0 {
		return fmt.Errorf("client.chunk_size must be positive")
	}

	if cfg.Client.Concurrency <= 0 {
		return fmt.Errorf("client.concurrency must be positive")
	}

	if cfg.Output.Format != "text" && cfg.Output.Format != "json" {
		return fmt.Errorf("invalid output.format: %s (must be 'text' or 'json')", cfg.Output.Format)
	}

	return nil
}
