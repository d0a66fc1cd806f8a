package cli

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/solar-flare-service/internal/adapter/donki"
	"github.com/couchcryptid/solar-flare-service/internal/config"
	"github.com/couchcryptid/solar-flare-service/internal/domain"
	"github.com/couchcryptid/solar-flare-service/internal/observability"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	debug   bool
	baseURL string
	apiKey  string
	timeout time.Duration
	radius  float64
	output  string
	days    int

	logger *slog.Logger
}

// Execute runs the flarectl command tree and exits non-zero on error.
func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the flarectl command tree. Flag defaults come from the
// same environment variables the service reads.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "flarectl",
		Short:        "flarectl locates the most significant solar flare on the Sun",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			applyConfigDefaults(cmd, opts, cfg)

			level := "warn"
			if opts.debug {
				level = "debug"
			}
			opts.logger = observability.NewLoggerTo(cmd.ErrOrStderr(), level, "text")
			return validateOutput(opts.output)
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging to stderr")
	flags.StringVar(&opts.baseURL, "base-url", donki.DefaultBaseURL, "DONKI API root (env DONKI_BASE_URL)")
	flags.StringVar(&opts.apiKey, "api-key", "DEMO_KEY", "NASA API key (env DONKI_API_KEY)")
	flags.DurationVar(&opts.timeout, "timeout", 15*time.Second, "HTTP timeout (env DONKI_TIMEOUT)")
	flags.Float64Var(&opts.radius, "radius", domain.DefaultSunRadius, "sphere radius for marker positions (env SUN_RADIUS)")
	flags.StringVarP(&opts.output, "output", "o", outputPanel, "output format: panel, json, or yaml")

	cmd.AddCommand(selectCmd(opts))
	cmd.AddCommand(locateCmd(opts))
	cmd.AddCommand(classifyCmd(opts))
	return cmd
}

// applyConfigDefaults copies config values into flags the user didn't set.
func applyConfigDefaults(cmd *cobra.Command, opts *options, cfg *config.Config) {
	flags := cmd.Flags()
	if !flags.Changed("base-url") {
		opts.baseURL = cfg.DONKIBaseURL
	}
	if !flags.Changed("api-key") {
		opts.apiKey = cfg.DONKIAPIKey
	}
	if !flags.Changed("timeout") {
		opts.timeout = cfg.DONKITimeout
	}
	if !flags.Changed("radius") {
		opts.radius = cfg.SunRadius
	}
	if f := flags.Lookup("days"); f != nil && !f.Changed {
		opts.days = cfg.DefaultRangeDays
	}
}

func (o *options) client() *donki.Client {
	return donki.NewClient(o.baseURL, o.apiKey, o.timeout, observability.NewUnregisteredMetrics(), o.log())
}

func (o *options) log() *slog.Logger {
	if o.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.logger
}
