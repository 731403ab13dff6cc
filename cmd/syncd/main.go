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
	"github.com/jmanzanog/folio/internal/infrastructure/contentapi"
	"github.com/jmanzanog/folio/internal/infrastructure/persistence/memory"
	"github.com/jmanzanog/folio/internal/infrastructure/persistence/rediskv"
	"github.com/jmanzanog/folio/internal/infrastructure/persistence/sqldb"
	"github.com/jmanzanog/folio/internal/infrastructure/retry"
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

// initializeCache opens the durable key/value store backing the local cache.
func initializeCache(ctx context.Context, cfg *config.Client) (domain.KeyValueStore, func() error, error) {
	switch cfg.CacheDriver {
	case config.CacheDriverMemory:
		return memory.NewKVStore(), func() error { return nil }, nil
	case config.CacheDriverRedis:
		client, err := rediskv.Connect(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return rediskv.NewKVStore(client, cfg.CacheKeyPrefix), client.Close, nil
	case config.CacheDriverSQLite, config.CacheDriverPostgres, config.CacheDriverOracle:
		db, err := sqldb.Open(ctx, cfg.CacheDriver, cfg.CacheDSN)
		if err != nil {
			return nil, nil, err
		}
		return sqldb.NewKVStore(db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported cache driver: %s", cfg.CacheDriver)
	}
}

// services is everything the daemon runs on top of one cache.
type services struct {
	data    *application.DataService
	syncer  *application.Synchronizer
	session *application.AdminSession
}

func buildServices(cfg *config.Client, kv domain.KeyValueStore) *services {
	session := application.NewAdminSession(kv)

	client := contentapi.NewClient(cfg.APIURL, cfg.RequestTimeout)
	client.SetAuthorizer(session)

	policy := retry.Policy{MaxAttempts: cfg.RetryMaxAttempts, InitialDelay: cfg.RetryInitialDelay}
	cache := application.NewCacheStore(kv)

	syncer := application.NewSynchronizer(client.Blog(), client.Portfolio(), cache, policy, cfg.SyncInterval)
	syncer.OnUpdate(func(u application.SyncUpdate) {
		slog.Info("Content cache refreshed", "kinds", u.Refreshed, "failed", len(u.Failed), "synced_at", u.SyncedAt)
	})

	return &services{
		data:    application.NewDataService(client.Blog(), client.Portfolio(), cache, policy),
		syncer:  syncer,
		session: session,
	}
}

// buildServer exposes the cached content on the same routes as the origin API.
func buildServer(cfg *config.Client, svc *services) *http.Server {
	router := gin.New()
	router.Use(gin.Logger(), gin.CustomRecovery(httpHandler.HandlePanics()))

	httpHandler.SetupRoutes(router, httpHandler.NewHandler(svc.data))
	httpHandler.SetupSyncRoutes(router, svc.data)
	httpHandler.SetupSessionRoutes(router, svc.session)

	return &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// App wraps the application components for easier testing
type App struct {
	Server        *http.Server
	Synchronizer  *application.Synchronizer
	CancelContext context.CancelFunc
	CloseCache    func() error
}

// Shutdown gracefully shuts down the application
func (a *App) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")

	a.Synchronizer.Stop()
	a.CancelContext()

	// The cache must outlive the last cycle writing to it.
	select {
	case <-a.Synchronizer.Done():
	case <-ctx.Done():
		return fmt.Errorf("synchronizer shutdown error: %w", ctx.Err())
	}

	if err := a.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.CloseCache != nil {
		if err := a.CloseCache(); err != nil {
			return fmt.Errorf("cache shutdown error: %w", err)
		}
	}

	return nil
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, using environment variables")
	}

	cfg, err := config.LoadClient()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	setupLogger(cfg.LogLevel)

	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	kv, closeCache, err := initializeCache(initCtx, cfg)
	initCancel()
	if err != nil {
		return fmt.Errorf("cache initialization failed: %w", err)
	}
	slog.Info("Using content cache", "driver", cfg.CacheDriver, "api_url", cfg.APIURL)

	svc := buildServices(cfg, kv)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go svc.syncer.Start(ctx)

	server := buildServer(cfg, svc)

	app := &App{
		Server:        server,
		Synchronizer:  svc.syncer,
		CancelContext: cancel,
		CloseCache:    closeCache,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("Sync daemon listening", "host", cfg.ServerHost, "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

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

	slog.Info("Sync daemon exited gracefully")
	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error("Application error", "error", err)
		os.Exit(1)
	}
}
