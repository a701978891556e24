package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", ":memory:")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, ":memory:", cfg.DatabaseURL)
	assert.Equal(t, CacheMemory, cfg.CacheDriver)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 5, cfg.LoginBurst)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("PORT", "9000")
	t.Setenv("CACHE_DRIVER", "redis")
	t.Setenv("CACHE_TTL", "30s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, CacheRedis, cfg.CacheDriver)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")

	_, err := Load()
	assert.ErrorContains(t, err, "DB_DRIVER")
}
