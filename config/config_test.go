package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DEFAULT_MARKUP_PERCENTAGE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 50.0, cfg.Pricing.DefaultMarkupPercentage)
	assert.Equal(t, "data/ratecards", cfg.Seed.DataDir)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DEFAULT_MARKUP_PERCENTAGE", "75")
	t.Setenv("ALLOWED_ORIGINS", "https://prints.example.com, http://localhost:5173")
	t.Setenv("REDIS_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 75.0, cfg.Pricing.DefaultMarkupPercentage)
	assert.Equal(t, []string{"https://prints.example.com", "http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Redis.Enabled)
	assert.Contains(t, cfg.Database.DSN(), "dbname=printshop")
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabaseConfig_SQLiteDSN(t *testing.T) {
	cfg := DatabaseConfig{Driver: "sqlite", Path: "/var/lib/printshop/catalog.db"}
	assert.Equal(t, "file:/var/lib/printshop/catalog.db?_foreign_keys=on&_busy_timeout=5000", cfg.DSN())
}
