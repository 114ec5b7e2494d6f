package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/wordscope/internal/config"
	"github.com/nao1215/wordscope/internal/server"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the word frequency HTTP API",
		Long: `Serve starts the HTTP API.

Endpoints:
  POST /api/analyze           {"url": "https://..."}
  POST /api/analyze-multiple  {"urls": ["https://...", ...]}
  GET  /healthz
  GET  /metrics               Prometheus metrics

Examples:
  # Listen on the default address
  wordscope serve

  # Listen on all interfaces, analyzing up to 4 batch URLs at once
  wordscope serve --listen :8080 --concurrency 4

  # Reuse fetched pages for ten minutes
  wordscope serve --cache-ttl 10m`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("listen", "l", config.DefaultListenAddress, "Address to listen on")
	cmd.Flags().Duration("shutdown-timeout", config.DefaultShutdownTimeout,
		"Time allowed for in-flight requests on shutdown")
	addAnalysisFlags(cmd)

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := newLogger(os.Stderr, cfg, slog.LevelInfo)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runServer(ctx, cfg, logger)
}

// runServer serves the API until ctx is canceled.
func runServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	svc, err := newServices(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Error("failed to close page cache", "error", err)
		}
	}()

	if svc.store != nil {
		go svc.store.RunPurger(ctx, cfg.CacheTTL, logger)
	}

	srv := server.New(svc.analyzer, svc.batch,
		server.WithMaxBatchSize(cfg.MaxBatchSize),
		server.WithShutdownTimeout(cfg.ShutdownTimeout),
		server.WithLogger(logger),
	)

	logger.Info("starting server",
		"listen", cfg.ListenAddress,
		"maxBatchSize", cfg.MaxBatchSize,
		"concurrency", cfg.Concurrency,
		"extractMode", cfg.ExtractMode,
		"cache", cfg.CacheEnabled(),
	)
	return srv.ListenAndServe(ctx, cfg.ListenAddress)
}
