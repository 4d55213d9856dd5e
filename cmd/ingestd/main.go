// Command ingestd is the ingestion daemon. It polls every registered
// station's drop directory for new CSV dumps, decodes them, and batch-inserts
// the observations into MySQL, exposing health and metrics over HTTP.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "hydro-telemetry/internal/adapter/http"
	"hydro-telemetry/internal/adapter/mysql"
	"hydro-telemetry/internal/cache"
	"hydro-telemetry/internal/config"
	"hydro-telemetry/internal/observability"
	"hydro-telemetry/internal/pipeline"
	"hydro-telemetry/internal/station"
	"hydro-telemetry/internal/watcher"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	stations := station.Defaults()
	if cfg.StationsFile != "" {
		stations, err = station.Load(cfg.StationsFile)
		if err != nil {
			logger.Error("failed to load station registry", "error", err)
			os.Exit(1)
		}
		logger.Info("station registry loaded", "file", cfg.StationsFile, "stations", len(stations))
	}

	store, err := mysql.Open(cfg, logger)
	if err != nil {
		logger.Error("failed to connect to mysql", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Warm the stale-value cache from history. Failures only log: with an
	// empty cache the first fresh observation becomes the baseline.
	values := cache.NewMemory()
	cache.SeedFromHistory(ctx, values, store, stations, logger)

	p := pipeline.New(stations, watcher.New(), store, values, logger, metrics,
		cfg.PollInterval, cfg.WriteTimeout, pipeline.Options{})

	srv := httpadapter.NewServer(cfg.HTTPAddr, nil, p, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
