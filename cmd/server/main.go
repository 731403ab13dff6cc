package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmanzanog/folio/internal/application"
	"github.com/jmanzanog/folio/internal/domain"
	"github.com/jmanzanog/folio/internal/infrastructure/config"
	"github.com/jmanzanog/folio/internal/infrastructure/persistence/memory"
	"github.com/jmanzanog/folio/internal/infrastructure/persistence/mongostore"
	httpHandler "github.com/jmanzanog/folio/internal/interfaces/http"
	"github.com/joho/godotenv"
)

// setupLogger configures and returns a structured logger with source information
func setupLogger(level string) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource: true,
		Level:     config.ParseLogLevel(level),
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, opts))
	slog.SetDefault(logger)
	return logger
}

// initializeStore opens the document store. The returned func releases it.
func initializeStore(ctx context.Context, cfg *config.Server) (domain.ContentRepository, func(context.Context) error, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		return memory.NewContentRepository(), func(context.Context) error { return nil }, nil
	case config.StoreDriverMongo:
		client, err := mongostore.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		return mongostore.NewRepository(client.Database(cfg.MongoDB)), client.Disconnect, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store driver: %s", cfg.StoreDriver)
	}
}

// buildServer creates and configures the HTTP server with all routes and handlers
func buildServer(cfg *config.Server, contentService httpHandler.ContentService) *http.Server {
	router := gin.New()
	router.Use(gin.Logger(), gin.CustomRecovery(httpHandler.HandlePanics()))

	var writeGuards []gin.HandlerFunc
	if len(cfg.AdminAPIKeys) > 0 {
		writeGuards = append(writeGuards, httpHandler.APIKeyAuth(cfg.AdminAPIKeys))
	}

	handler := httpHandler.NewHandler(contentService)
	httpHandler.SetupRoutes(router, handler, writeGuards...)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return server
}

// App wraps the application components for easier testing
type App struct {
	Server     *http.Server
	CloseStore func(context.Context) error
}

// Shutdown gracefully shuts down the application
func (a *App) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")

	if err := a.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.CloseStore != nil {
		if err := a.CloseStore(ctx); err != nil {
			return fmt.Errorf("store shutdown error: %w", err)
		}
	}

	return nil
}

// run contains the main application logic without os.Exit calls
func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, using environment variables")
	}

	cfg, err := config.LoadServer()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	setupLogger(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	repo, closeStore, err := initializeStore(ctx, cfg)
	cancel()
	if err != nil {
		return fmt.Errorf("store initialization failed: %w", err)
	}
	slog.Info("Using content store", "driver", cfg.StoreDriver)

	server := buildServer(cfg, application.NewContentService(repo))

	app := &App{
		Server:     server,
		CloseStore: closeStore,
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "host", cfg.ServerHost, "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	// Wait for termination signal or server error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
		slog.Info("Received shutdown signal")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := app.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	slog.Info("Server exited gracefully")
	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error("Application error", "error", err)
		os.Exit(1)
	}
}
