package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/caarlos0/env/v11"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/roach88/scorekeeper/internal/engine"
	"github.com/roach88/scorekeeper/internal/metrics"
	"github.com/roach88/scorekeeper/internal/service"
	"github.com/roach88/scorekeeper/internal/store"
)

// Config holds the defaults read from the environment. Flags override them.
type Config struct {
	Database string `env:"SCOREKEEPER_DB"     envDefault:"scorekeeper.db"`
	Format   string `env:"SCOREKEEPER_FORMAT" envDefault:"text"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose     bool
	Format      string // "json" | "text"
	Database    string
	MetricsFile string

	// IDGenerator allows overriding the match ID generator (for testing).
	// If nil, the service generates UUIDv7s.
	IDGenerator engine.IDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the scorekeeper CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cfg, cfgErr := LoadConfig()

	cmd := &cobra.Command{
		Use:   "scorekeeper",
		Short: "Tennis match scoring",
		Long: `Record tennis matches stroke by stroke or point by point, and read back
scores, statistics and replays of the stored event log.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgErr != nil {
				return WrapExitError(ExitCommandError, "invalid environment", cfgErr)
			}
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			setupLogging(opts, cmd)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", cfg.Format, "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", cfg.Database, "path to SQLite database")
	cmd.PersistentFlags().StringVar(&opts.MetricsFile, "metrics-file", "", "write Prometheus metrics to this file after the command")

	cmd.AddCommand(NewNewCommand(opts))
	cmd.AddCommand(NewPointCommand(opts))
	cmd.AddCommand(NewStrokeCommand(opts))
	cmd.AddCommand(NewScoreCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// setupLogging installs a text handler on stderr, at debug level when
// verbose.
func setupLogging(opts *RootOptions, cmd *cobra.Command) {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// session is an open database with a scoring service over it.
type session struct {
	store       *store.Store
	scoring     *service.Scoring
	registry    *prometheus.Registry
	metricsFile string
}

func openSession(opts *RootOptions) (*session, error) {
	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	reg := prometheus.NewRegistry()
	rec, err := metrics.NewRecorder(reg)
	if err != nil {
		st.Close()
		return nil, WrapExitError(ExitCommandError, "failed to register metrics", err)
	}

	svcOpts := []service.Option{service.WithProcessorHook(rec.Attach)}
	if opts.IDGenerator != nil {
		svcOpts = append(svcOpts, service.WithIDGenerator(opts.IDGenerator))
	}

	return &session{
		store:       st,
		scoring:     service.New(st, svcOpts...),
		registry:    reg,
		metricsFile: opts.MetricsFile,
	}, nil
}

// Close writes the metrics file, if one was requested, and closes the
// database.
func (s *session) Close() error {
	var metricsErr error
	if s.metricsFile != "" {
		if err := prometheus.WriteToTextfile(s.metricsFile, s.registry); err != nil {
			metricsErr = fmt.Errorf("write metrics: %w", err)
		}
	}
	return errors.Join(metricsErr, s.store.Close())
}

// withSession runs fn over an open session and reports a failed Close when
// fn itself succeeded.
func withSession(opts *RootOptions, fn func(*session) error) (err error) {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil && err == nil {
			err = WrapExitError(ExitCommandError, "failed to close session", closeErr)
		}
	}()
	return fn(s)
}
