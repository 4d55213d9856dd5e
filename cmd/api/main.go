// Command api serves the dashboard's read-side HTTP endpoints, currently the
// 12-hour forecast, backed by the same MySQL store the ingestion daemon
// writes to.
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
	"hydro-telemetry/internal/api"
	"hydro-telemetry/internal/config"
	"hydro-telemetry/internal/observability"
)

// dbReadiness reports ready while the database answers pings.
type dbReadiness struct {
	store *mysql.Store
}

func (d dbReadiness) CheckReadiness(ctx context.Context) error {
	return d.store.HealthCheck(ctx)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	store, err := mysql.Open(cfg, logger)
	if err != nil {
		logger.Error("failed to connect to mysql", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	router := api.NewRouter(store, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, router, dbReadiness{store}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
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
