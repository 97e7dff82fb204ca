// Command learnspring serves the demo application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mnehpets/learnspring/internal/app"
	"github.com/mnehpets/learnspring/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.New()
	var dir string

	root := &cobra.Command{
		Use:           "learnspring",
		Short:         "Serve the learnspring demo application",
		SilenceUsage: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, dir)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			return app.New(cfg, logger).Run(cmd.Context())
		},
	}

	flags := root.Flags()
	flags.StringVar(&dir, "config-dir", ".", "directory holding application.yaml and .env")
	flags.String("addr", "", "listen address (default \":8080\")")
	flags.String("log-level", "", "log level: debug, info, warn, error (default \"info\")")
	flags.Bool("development", false, "human-readable development logging")
	flags.Duration("shutdown-timeout", 0, "grace period for in-flight requests on shutdown (default 10s)")
	bindFlags(v, root, map[string]string{
		"addr":             config.KeyAddr,
		"log-level":        config.KeyLogLevel,
		"development":      config.KeyDevelopment,
		"shutdown-timeout": config.KeyShutdownTimeout,
	})

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "learnspring", version)
		},
	})
	return root
}

// bindFlags binds each flag to its config key. viper only takes a bound
// flag's value once the flag has been set, so the zero defaults above do not
// shadow the config defaults.
func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) {
	for name, key := range keys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(cfg.Level())
	return zc.Build()
}
