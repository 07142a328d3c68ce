// Agent Dashboard - read-only status board for gateway-managed agents
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ashureev/agent-dashboard/internal/agent"
	"github.com/ashureev/agent-dashboard/internal/api"
	"github.com/ashureev/agent-dashboard/internal/config"
	"github.com/ashureev/agent-dashboard/internal/meta"
	"github.com/ashureev/agent-dashboard/internal/middleware"
	"github.com/ashureev/agent-dashboard/internal/store"
	"github.com/ashureev/agent-dashboard/internal/stream"
	"github.com/ashureev/agent-dashboard/web"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server",
		"port", cfg.Port,
		"dev", cfg.IsDevelopment(),
		"gateway_config", cfg.GatewayConfigPath,
		"agents_dir", cfg.AgentsDir)

	table, err := meta.Load(cfg.MetadataPath)
	if err != nil {
		slog.Error("Failed to load agent metadata", "error", err, "path", cfg.MetadataPath)
		os.Exit(1)
	}

	// Gateway files are owned by another process and may appear later; an
	// unreachable path is reported, not fatal.
	source := store.NewFilesystem(cfg.GatewayConfigPath, cfg.AgentsDir, cfg.SessionTailLines, cfg.ScanConcurrency)
	if err := source.Ping(context.Background()); err != nil {
		slog.Warn("Gateway files not reachable yet", "error", err)
	}

	// Initialize services and handlers.
	svc := agent.NewService(source, table, cfg.ScanConcurrency)
	statusHandler := agent.NewHandler(svc, cfg.Timeout.Snapshot)
	healthHandler := api.NewHealthHandler(source, cfg.Timeout.HealthCheck)
	clientConfigHandler := api.NewClientConfigHandler(cfg.APIBaseURL, cfg.PollInterval)
	feedHandler := stream.NewHandler(svc, cfg.PollInterval, cfg.Timeout.Snapshot, stream.OriginPatterns(cfg.AllowedOrigins))

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	healthHandler.RegisterHealth(r)
	clientConfigHandler.RegisterRoutes(r)
	statusHandler.RegisterRoutes(r)
	feedHandler.RegisterRoutes(r)

	// Serve embedded frontend (SPA catch-all).
	r.Handle("/*", web.SPAHandler())

	// No WriteTimeout: the websocket feed keeps connections open.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	srv.RegisterOnShutdown(feedHandler.Shutdown)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
