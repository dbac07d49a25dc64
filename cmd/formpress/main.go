// Package main is the entry point for the formpress server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"formpress/internal/cache"
	"formpress/internal/config"
	"formpress/internal/database"
	"formpress/internal/handlers"
	"formpress/internal/router"
	"formpress/internal/store"
	"formpress/internal/styling"
)

func main() {
	// Structured logger. Text until config is loaded, JSON in production.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	if !cfg.IsDev() {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})))
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed the style default catalogs (no-op once seeded).
	if err := database.Seed(db); err != nil {
		slog.Error("failed to seed style defaults", "error", err)
		os.Exit(1)
	}

	// Seed a demo form in development.
	if cfg.IsDev() {
		if err := database.SeedDemo(db); err != nil {
			slog.Error("failed to seed demo data", "error", err)
			os.Exit(1)
		}
	}

	// Initialize data stores.
	formStore := store.NewFormStore(db)
	defaultStore := store.NewStyleDefaultStore(db)
	overrideStore := store.NewStyleOverrideStore(db)

	// Connect to Valkey for the distributed stylesheet cache. Without it
	// the service falls back to a process-local cache, correct either
	// way, since cached stylesheets are pure derivations of store state.
	var stylesheetCache styling.Cache
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, using in-memory stylesheet cache", "error", err)
		stylesheetCache = styling.NewMemoryCache(cfg.StyleCacheTTL)
	} else {
		defer valkeyClient.Close()
		stylesheetCache = cache.NewStylesheetCache(valkeyClient, cfg.StyleCacheTTL)
	}

	// Initialize the styling service over the stores and cache.
	stylingService := styling.NewService(defaultStore, overrideStore, formStore, stylesheetCache)

	// Create handler groups with their dependencies.
	formHandlers := handlers.NewForms(formStore, stylingService)
	styleHandlers := handlers.NewStyles(stylingService, cfg.StyleCacheTTL)

	// Set up the Chi router with all middleware and routes.
	r := router.New(formHandlers, styleHandlers, cfg.AdminTokenHash)

	// Create the HTTP server with sensible timeouts.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
