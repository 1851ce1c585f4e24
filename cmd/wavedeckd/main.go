package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/geoforge/wavedeck/internal/adapter/httpapi"
	"github.com/geoforge/wavedeck/internal/backend"
	"github.com/geoforge/wavedeck/internal/config"
	"github.com/geoforge/wavedeck/internal/generator"
	"github.com/geoforge/wavedeck/internal/observability"
	"github.com/geoforge/wavedeck/internal/render"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	registry := render.NewRegistry()
	backend.RegisterAll(registry, logger)
	logger.Info("backends registered", "formats", registry.Formats())

	gen := generator.New(registry, logger, metrics)

	srv := httpapi.NewServer(cfg.HTTPAddr, gen, metrics, logger)

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
