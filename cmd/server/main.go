package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mentiroso/internal/app"
	"mentiroso/internal/config"
	"mentiroso/internal/provider"
	"mentiroso/internal/storage"
	httpTransport "mentiroso/internal/transport/http"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Set up logger
	var logger *slog.Logger
	logOpts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Logging.Level),
	}

	if cfg.Logging.Format == "json" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, logOpts))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, logOpts))
	}

	slog.SetDefault(logger)

	logger.Info("starting mentiroso game server",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
		"remoteWords", cfg.UsesRemoteProvider(),
	)

	// Open the device store
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Error("failed to open store", "path", cfg.Storage.DBPath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// Pick the word source
	var words provider.Provider
	if cfg.UsesRemoteProvider() {
		words = provider.NewHTTPProvider(cfg.Provider.URL, cfg.Provider.Timeout, logger)
	} else {
		words = provider.NewLocalProvider(
			provider.SecretWords,
			cfg.Provider.SessionHistorySize,
			cfg.Provider.SessionHistoryTTL,
			rand.New(rand.NewSource(rng.Int63())),
		)
	}

	// Create the display hub and the game controller
	hub := app.NewHub(logger)
	defer hub.Close()

	controller := app.NewController(words, store, rng, hub, app.ControllerConfig{
		DefaultCategories: cfg.Game.DefaultCategories,
		DefaultLiars:      cfg.Game.DefaultLiars,
		FetchTimeout:      cfg.Provider.Timeout,
	}, logger)

	// Create HTTP server
	server := httpTransport.NewServer(cfg, controller, hub, logger)

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
