package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"synth-dashboard/internal/charts"
	"synth-dashboard/internal/config"
	"synth-dashboard/internal/dataset"
	"synth-dashboard/internal/middleware"
	"synth-dashboard/internal/observability"
	"synth-dashboard/internal/server"
	"synth-dashboard/internal/services"
)

const generateTimeout = 30 * time.Second

// newHandler builds the full middleware chain around the routes.
func newHandler(cfg *config.Config, registry *services.Registry, logger *slog.Logger) http.Handler {
	srv := server.NewServer(registry, logger, charts.Size{Width: cfg.Export.Width, Height: cfg.Export.Height})

	rateLimiter := middleware.NewRateLimiter(cfg.Security)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(logger),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
	)

	return middlewareChain(srv)
}

func loadRegistry(cfg *config.Config, logger *slog.Logger) (*services.Registry, error) {
	variants, err := dataset.Lookup(cfg.Data.Dashboards)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
	defer cancel()

	return services.LoadRegistry(ctx, cfg.Data.Seed, variants, logger)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", "1.0.0",
		"config", cfg,
	)

	start := time.Now()
	registry, err := loadRegistry(cfg, logger)
	if err != nil {
		logger.Error("failed to generate datasets", "error", err)
		os.Exit(1)
	}
	logger.Info("datasets ready",
		"dashboards", registry.Names(),
		"seed", cfg.Data.Seed,
		"duration", time.Since(start),
	)

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      newHandler(cfg, registry, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg.Server.ShutdownTimeout)

	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		logger.Info("shutting down dashboards", "stats", registry.Stats())
		return nil
	})

	logger.Info("starting graceful server")
	if err := gracefulServer.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
