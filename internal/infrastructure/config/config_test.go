package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadServer_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("ADMIN_API_KEYS", "")

	cfg, err := LoadServer()
	assert.NoError(t, err)
	assert.Equal(t, "localhost", cfg.ServerHost)
	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, StoreDriverMongo, cfg.StoreDriver)
	assert.Equal(t, "folio", cfg.MongoDB)
	assert.Empty(t, cfg.AdminAPIKeys)
}

func TestLoadServer_MemoryWithAdminKeys(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("MONGODB_URI", "")
	t.Setenv("ADMIN_API_KEYS", "one, two,,")
	t.Setenv("SERVER_PORT", "9000")

	cfg, err := LoadServer()
	assert.NoError(t, err)
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, []string{"one", "two"}, cfg.AdminAPIKeys)
	assert.Equal(t, "9000", cfg.ServerPort)
}

func TestLoadServer_MissingMongoURI(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("MONGODB_URI", "")

	_, err := LoadServer()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "MONGODB_URI")
}

func TestLoadServer_InvalidDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "couchdb")

	_, err := LoadServer()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_DRIVER")
}

func TestLoadClient_Defaults(t *testing.T) {
	t.Setenv("API_URL", "http://localhost:5000/api/")
	t.Setenv("CACHE_DRIVER", "")
	t.Setenv("CACHE_DSN", "")

	cfg, err := LoadClient()
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/api", cfg.APIURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 30*time.Second, cfg.SyncInterval)
	assert.Equal(t, 3, cfg.RetryMaxAttempts)
	assert.Equal(t, time.Second, cfg.RetryInitialDelay)
	assert.Equal(t, CacheDriverSQLite, cfg.CacheDriver)
	assert.Equal(t, "./folio-cache.db", cfg.CacheDSN)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "folio:", cfg.CacheKeyPrefix)
	assert.Equal(t, "8080", cfg.ServerPort)
}

func TestLoadClient_MissingAPIURL(t *testing.T) {
	t.Setenv("API_URL", "")

	_, err := LoadClient()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "API_URL")
}

func TestLoadClient_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"timeout", "REQUEST_TIMEOUT", "soon", "REQUEST_TIMEOUT"},
		{"interval", "SYNC_INTERVAL", "often", "SYNC_INTERVAL"},
		{"attempts", "RETRY_MAX_ATTEMPTS", "0", "RETRY_MAX_ATTEMPTS"},
		{"delay", "RETRY_INITIAL_DELAY", "x", "RETRY_INITIAL_DELAY"},
		{"driver", "CACHE_DRIVER", "floppy", "CACHE_DRIVER"},
		{"postgres dsn", "CACHE_DRIVER", "postgres", "CACHE_DSN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("API_URL", "http://localhost:5000/api")
			t.Setenv("CACHE_DSN", "")
			t.Setenv(tt.key, tt.val)

			_, err := LoadClient()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLogLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel("verbose"))
}
