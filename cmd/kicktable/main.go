// Command kicktable shows the crowdfunding project dataset as a paginated
// table in the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sternrassler/kickstarter-table/internal/config"
	"github.com/Sternrassler/kickstarter-table/pkg/logging"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		// The failure view already showed the load error.
		if !errors.Is(err, ErrLoadFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// options holds flag values layered over the env configuration.
type options struct {
	envFile     string
	url         string
	userAgent   string
	timeout     time.Duration
	logLevel    string
	logPretty   bool
	redisURL    string
	metricsAddr string
	page        int

	cfg config.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "kicktable",
		Short:         "Browse Kickstarter projects page by page",
		Long:          "Fetches the project dataset once and shows percentage funded and amount pledged, five projects per page.\nCommands: n/next, p/prev, q/quit.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), opts.cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Render a single page and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd.Context(), opts.cfg, opts.page, cmd.OutOrStdout())
		},
	}
	dumpCmd.Flags().IntVar(&opts.page, "page", 1, "Page to render (clamped to the last page)")

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.envFile, "env-file", ".env", "Optional dotenv file read before the environment")
	flags.StringVar(&opts.url, "url", "", "Dataset URL (KICKTABLE_DATASET_URL)")
	flags.StringVar(&opts.userAgent, "user-agent", "", "User-Agent header (KICKTABLE_USER_AGENT)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "HTTP timeout (KICKTABLE_HTTP_TIMEOUT)")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn, error or disabled (KICKTABLE_LOG_LEVEL)")
	flags.BoolVar(&opts.logPretty, "log-pretty", false, "Human-readable logs on stderr (KICKTABLE_LOG_PRETTY)")
	flags.StringVar(&opts.redisURL, "redis-url", "", "Enable the response cache, e.g. redis://localhost:6379/0 (KICKTABLE_REDIS_URL)")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (KICKTABLE_METRICS_ADDR)")

	rootCmd.AddCommand(dumpCmd)
	return rootCmd
}

// resolve loads the env configuration and applies explicitly set flags.
func (o *options) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(o.envFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.DatasetURL = o.url
	}
	if flags.Changed("user-agent") {
		cfg.UserAgent = o.userAgent
	}
	if flags.Changed("timeout") {
		cfg.HTTPTimeout = o.timeout
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("log-pretty") {
		cfg.LogPretty = o.logPretty
	}
	if flags.Changed("redis-url") {
		cfg.RedisURL = o.redisURL
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = o.metricsAddr
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if flags.Changed("page") && o.page < 1 {
		return errors.New("--page must be >= 1")
	}

	logCfg := cfg.LoggingConfig()
	logCfg.Output = cmd.ErrOrStderr()
	logging.Setup(logCfg)

	o.cfg = cfg
	return nil
}
