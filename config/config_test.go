package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/warehouses?sslmode=disable")

	cfg := LoadConfig()

	assert.Equal(t, "postgres://localhost/warehouses?sslmode=disable", cfg.DatabaseURL)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.DBTimeout)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 10*time.Second, cfg.CacheTimeout)
	assert.Equal(t, 30*time.Minute, cfg.LocationCacheTTL)
	assert.Equal(t, LocationSourceCatalog, cfg.LocationSource)
	assert.Equal(t, 20, cfg.SearchDefaultPageSize)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db/wh")
	t.Setenv("DB_TIMEOUT_SEC", "2")
	t.Setenv("LOCATION_SOURCE", "POSTGRES")
	t.Setenv("LOCATION_CACHE_TTL_MIN", "5")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := LoadConfig()

	assert.Equal(t, 2*time.Second, cfg.DBTimeout)
	assert.Equal(t, LocationSourcePostgres, cfg.LocationSource)
	assert.Equal(t, 5*time.Minute, cfg.LocationCacheTTL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadOptionalConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DB_TIMEOUT_SEC", "abc")
	t.Setenv("LOCATION_SOURCE", "ldap")

	cfg := LoadOptionalConfig()

	assert.Equal(t, 5*time.Second, cfg.DBTimeout)
	assert.Equal(t, LocationSourceCatalog, cfg.LocationSource)
}
