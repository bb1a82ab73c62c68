package cmd

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/kitsu/config"
	"github.com/s0up4200/kitsu/kitsu"
)

var (
	cfgFile   string
	cfg       *config.Config
	logger    zerolog.Logger
	requester kitsu.Requester

	// Command flags
	outputFormat string
	backendFlag  string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "kitsu",
	Short: "Look up anime, manga, users, characters and producers on Kitsu",
	Long: `kitsu is a CLI for the Kitsu media catalog. It fetches resources by id
or searches a resource family with JSON:API filters, and can narrow the
results further with a match expression.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format (text/json)")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "request backend (sync/async)")

	// Add subcommands
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp initializes the configuration and the client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Command line overrides
	if cmd.Flags().Changed("output") {
		if outputFormat != "text" && outputFormat != "json" {
			return fmt.Errorf("invalid output format: %s (must be 'text' or 'json')", outputFormat)
		}
		cfg.Output.Format = outputFormat
	}
	if cmd.Flags().Changed("backend") {
		cfg.Client.Backend = config.Backend(backendFlag)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	requester, err = newRequester(cfg, logger)
	if err != nil {
		return err
	}

	logger.Debug().
		Str("backend", string(cfg.Client.Backend)).
		Dur("timeout", cfg.HTTP.Timeout).
		Msg("Kitsu client ready")

	return nil
}

// newRequester builds the blocking requester for the configured backend
func newRequester(cfg *config.Config, logger zerolog.Logger) (kitsu.Requester, error) {
	opts := []kitsu.Option{
		kitsu.WithHTTPClient(&http.Client{Timeout: cfg.HTTP.Timeout}),
		kitsu.WithLogger(logger),
		kitsu.WithChunkSize(cfg.Client.ChunkSize),
	}

	switch cfg.Client.Backend {
	case config.BackendSync:
		return kitsu.NewClient(opts...), nil
	case config.BackendAsync:
		return kitsu.NewAsyncClient(opts...).Blocking(), nil
	default:
		return nil, fmt.Errorf("invalid backend: %s (must be 'sync' or 'async')", cfg.Client.Backend)
	}
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format, colored only when stderr is a terminal
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(os.Stderr),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
