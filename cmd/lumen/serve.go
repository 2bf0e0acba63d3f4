package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/lumen/pkg/config"
	"mercator-hq/lumen/pkg/telemetry"
	"mercator-hq/lumen/pkg/telemetry/logging"
)

const shutdownTimeout = 30 * time.Second

var serveFlags struct {
	listenAddress string
	logLevel      string
	watch         bool
	dryRun        bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the telemetry endpoints",
	Long: `Serve the metrics and health endpoints over HTTP.

The server exposes the configured metrics path, liveness and readiness
probes, and a version endpoint. With --watch, the configuration file is
observed and log level changes take effect without a restart.

Examples:
  # Serve with default config
  lumen serve

  # Serve with custom config and listen address
  lumen serve --config /etc/lumen/lumen.yaml --listen 0.0.0.0:9090

  # Validate config without starting the server
  lumen serve --dry-run`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listenAddress, "listen", "l", "127.0.0.1:9090", "listen address")
	serveCmd.Flags().StringVar(&serveFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	serveCmd.Flags().BoolVar(&serveFlags.watch, "watch", false, "reload configuration on file changes")
	serveCmd.Flags().BoolVar(&serveFlags.dryRun, "dry-run", false, "validate config without starting the server")
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := config.Initialize(cfgFile); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := config.GetConfig()

	if serveFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = serveFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	if serveFlags.dryRun {
		fmt.Println("configuration valid")
		return nil
	}

	tel, err := telemetry.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to build telemetry: %w", err)
	}
	logger := tel.Logger()

	if err := tel.Start(); err != nil {
		return fmt.Errorf("failed to start telemetry: %w", err)
	}

	mux := http.NewServeMux()
	tel.Mount(mux, Version, GitCommit, BuildDate)

	srv := &http.Server{
		Addr:              serveFlags.listenAddress,
		Handler:           tel.Middleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if serveFlags.watch {
		watcher, err := config.NewWatcher(cfgFile, logger)
		if err != nil {
			return fmt.Errorf("failed to create config watcher: %w", err)
		}
		go func() {
			_ = watcher.Watch(ctx, func(next *config.Config) {
				// The logging level is the one setting applied live; the
				// other components need a restart to rebuild.
				lvl, err := logging.ParseLevel(next.Telemetry.Logging.Level)
				if err == nil && lvl != logger.Level() {
					logger.SetLevel(lvl)
				}
				logger.Info("configuration reloaded", map[string]any{
					"path":      cfgFile,
					"log_level": logger.Level().String(),
				})
			})
		}()
		defer func() { _ = watcher.Stop() }()
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("telemetry server listening", map[string]any{
			"address":      serveFlags.listenAddress,
			"metrics_path": cfg.Telemetry.Metrics.Path,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.Info("shutting down", map[string]any{"signal": sig.String()})
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", nil, err)
			return err
		}
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown failed", nil, err)
			return err
		}
		return nil
	}
}
