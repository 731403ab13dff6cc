package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreDriverMemory = "memory"
	StoreDriverMongo  = "mongo"

	CacheDriverSQLite   = "sqlite"
	CacheDriverPostgres = "postgres"
	CacheDriverOracle   = "oracle"
	CacheDriverRedis    = "redis"
	CacheDriverMemory   = "memory"
)

// Server configures the content API server.
type Server struct {
	ServerHost   string
	ServerPort   string
	StoreDriver  string
	MongoURI     string
	MongoDB      string
	AdminAPIKeys []string
	LogLevel     string
}

// Client configures the sync daemon that mirrors the API into a local cache.
type Client struct {
	APIURL            string
	RequestTimeout    time.Duration
	SyncInterval      time.Duration
	RetryMaxAttempts  int
	RetryInitialDelay time.Duration
	CacheDriver       string
	CacheDSN          string
	RedisAddr         string
	CacheKeyPrefix    string
	ServerHost        string
	ServerPort        string
	LogLevel          string
}

func LoadServer() (*Server, error) {
	driver := getEnvOrDefault("STORE_DRIVER", StoreDriverMongo)

	cfg := &Server{
		ServerHost:   getEnvOrDefault("SERVER_HOST", "localhost"),
		ServerPort:   getEnvOrDefault("SERVER_PORT", "5000"),
		StoreDriver:  driver,
		MongoURI:     os.Getenv("MONGODB_URI"),
		MongoDB:      getEnvOrDefault("MONGODB_DATABASE", "folio"),
		AdminAPIKeys: splitList(os.Getenv("ADMIN_API_KEYS")),
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "info"),
	}

	switch driver {
	case StoreDriverMongo:
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MONGODB_URI environment variable is required for %s store", driver)
		}
	case StoreDriverMemory:
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER %q: must be %s or %s", driver, StoreDriverMemory, StoreDriverMongo)
	}

	return cfg, nil
}

func LoadClient() (*Client, error) {
	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		return nil, fmt.Errorf("API_URL environment variable is required")
	}

	timeout, err := time.ParseDuration(getEnvOrDefault("REQUEST_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}

	interval, err := time.ParseDuration(getEnvOrDefault("SYNC_INTERVAL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_INTERVAL: %w", err)
	}

	attempts, err := strconv.Atoi(getEnvOrDefault("RETRY_MAX_ATTEMPTS", "3"))
	if err != nil || attempts < 1 {
		return nil, fmt.Errorf("invalid RETRY_MAX_ATTEMPTS: must be a positive integer")
	}

	delay, err := time.ParseDuration(getEnvOrDefault("RETRY_INITIAL_DELAY", "1s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RETRY_INITIAL_DELAY: %w", err)
	}

	driver := getEnvOrDefault("CACHE_DRIVER", CacheDriverSQLite)
	dsn := os.Getenv("CACHE_DSN")

	switch driver {
	case CacheDriverSQLite:
		if dsn == "" {
			dsn = "./folio-cache.db"
		}
	case CacheDriverPostgres, CacheDriverOracle:
		if dsn == "" {
			return nil, fmt.Errorf("CACHE_DSN environment variable is required for %s cache", driver)
		}
	case CacheDriverRedis, CacheDriverMemory:
	default:
		return nil, fmt.Errorf("invalid CACHE_DRIVER %q", driver)
	}

	return &Client{
		APIURL:            strings.TrimRight(apiURL, "/"),
		RequestTimeout:    timeout,
		SyncInterval:      interval,
		RetryMaxAttempts:  attempts,
		RetryInitialDelay: delay,
		CacheDriver:       driver,
		CacheDSN:          dsn,
		RedisAddr:         getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		CacheKeyPrefix:    getEnvOrDefault("CACHE_KEY_PREFIX", "folio:"),
		ServerHost:        getEnvOrDefault("SYNCD_HOST", "localhost"),
		ServerPort:        getEnvOrDefault("SYNCD_PORT", "8080"),
		LogLevel:          getEnvOrDefault("LOG_LEVEL", "info"),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// ParseLogLevel maps LOG_LEVEL values onto slog levels, defaulting to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
