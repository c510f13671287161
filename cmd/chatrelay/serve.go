package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"chatrelay/pkg/cli"
	"chatrelay/pkg/config"
	"chatrelay/pkg/gateway"
	"chatrelay/pkg/history"
	"chatrelay/pkg/server"
	"chatrelay/pkg/telemetry/metrics"
)

var serveFlags struct {
	listenAddress string
	logLevel      string
	watch         bool
	dryRun        bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gateway HTTP server",
	Long: `Start the gateway HTTP server with the specified configuration.

The server exposes provider health listing, on-demand provider probes,
and chat forwarding, plus Prometheus metrics.

Examples:
  # Start with default config
  chatrelay serve

  # Start with custom config
  chatrelay serve --config /etc/chatrelay/config.yaml

  # Override listen address
  chatrelay serve --listen 0.0.0.0:8080

  # Reload cache TTL and log level on config file changes
  chatrelay serve --watch

  # Validate config without starting the server
  chatrelay serve --dry-run`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listenAddress, "listen", "l", "", "override listen address")
	serveCmd.Flags().StringVar(&serveFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	serveCmd.Flags().BoolVar(&serveFlags.watch, "watch", false, "reload dynamic settings on config file changes")
	serveCmd.Flags().BoolVar(&serveFlags.dryRun, "dry-run", false, "validate config without starting the server")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveFlags.dryRun {
		if _, err := config.Load(cfgFile); err != nil {
			return cli.NewConfigError("", err.Error())
		}
		fmt.Println("Configuration valid")
		return nil
	}

	// Metrics wiring needs config before the rest of the app comes up.
	pre, err := config.Load(cfgFile)
	if err != nil {
		return cli.NewConfigError("", err.Error())
	}

	var collector *metrics.Collector
	if pre.Telemetry.Metrics.Enabled == nil || *pre.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(metrics.Config{
			Enabled:   true,
			Namespace: pre.Telemetry.Metrics.Namespace,
		}, nil)
	}

	var extra []gateway.Metrics
	if collector != nil {
		extra = append(extra, collector)
	}

	a, err := loadApp(true, extra...)
	if err != nil {
		return cli.NewCommandError("serve", err)
	}
	defer a.close()

	cfg := a.cfg
	if serveFlags.listenAddress != "" {
		cfg.Server.ListenAddress = serveFlags.listenAddress
	}
	if serveFlags.logLevel != "" {
		if err := a.logger.SetLevel(serveFlags.logLevel); err != nil {
			return cli.NewConfigError("logging.level", err.Error())
		}
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Retention pruning for the probe audit log.
	if a.store != nil {
		pruner := history.NewPruner(a.store, &history.PrunerConfig{
			RetentionDays: cfg.History.RetentionDays,
			PruneSchedule: cfg.History.PruneSchedule,
		})
		sched := history.NewScheduler(pruner)
		if err := sched.Start(ctx); err != nil {
			return cli.NewCommandError("serve", err)
		}
	}

	if serveFlags.watch {
		go watchConfig(ctx, a)
	}

	var opts []server.Option
	if collector != nil {
		opts = append(opts, server.WithMetricsHandler(cfg.Telemetry.Metrics.Path, collector.Handler()))
	}

	srv := server.New(cfg.Server, a.gateway, opts...)
	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("serve", err)
	}
	return nil
}

// watchConfig applies the dynamic subset of configuration (cache TTL and
// log level) whenever the config file changes.
func watchConfig(ctx context.Context, a *app) {
	watcher := config.NewWatcher(cfgFile)
	err := watcher.Watch(ctx, func(next *config.Config) error {
		a.gateway.SetTTL(next.Gateway.CacheTTL)
		if err := a.logger.SetLevel(next.Telemetry.Logging.Level); err != nil {
			return err
		}
		slog.Info("configuration reloaded",
			"cache_ttl", next.Gateway.CacheTTL.String(),
			"log_level", next.Telemetry.Logging.Level,
		)
		return nil
	})
	if err != nil && ctx.Err() == nil {
		slog.Error("config watcher stopped", "error", err)
	}
}
