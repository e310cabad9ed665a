package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LANDING_PRIMARY__ENV", "development")
	t.Setenv("LANDING_STORE__URL", "https://project.supabase.co/")
	t.Setenv("LANDING_STORE__API_KEY", "anon-key")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgREST, cfg.Store.Driver)
	assert.Equal(t, "https://project.supabase.co", cfg.Store.URL)
	assert.Equal(t, "anon-key", cfg.Store.APIKey)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.False(t, cfg.Redis.Enabled())

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
	assert.Equal(t, "info", cfg.Observability.Logging.Level)
	assert.False(t, cfg.Observability.NewRelicEnabled())
}

func TestLoadConfig_NestedKeysAndLists(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LANDING_SERVER__PORT", "9000")
	t.Setenv("LANDING_SERVER__READ_TIMEOUT", "5")
	t.Setenv("LANDING_SERVER__CORS_ALLOWED_ORIGINS", "https://velyralabs.com, https://www.velyralabs.com")
	t.Setenv("LANDING_REDIS__ADDRESS", "localhost:6379")
	t.Setenv("LANDING_OBSERVABILITY__LOGGING__LEVEL", "debug")
	t.Setenv("LANDING_OBSERVABILITY__HEALTH_CHECKS__TIMEOUT", "2s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 5, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"https://velyralabs.com", "https://www.velyralabs.com"}, cfg.Server.CORSAllowedOrigins)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
	assert.Equal(t, "json", cfg.Observability.Logging.Format)
	assert.Equal(t, 2*time.Second, cfg.Observability.HealthChecks.Timeout)
}

func TestLoadConfig_MissingStoreCredentials(t *testing.T) {
	t.Setenv("LANDING_PRIMARY__ENV", "development")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoadConfig_PostgresDriverNeedsDatabase(t *testing.T) {
	t.Setenv("LANDING_PRIMARY__ENV", "local")
	t.Setenv("LANDING_STORE__DRIVER", DriverPostgres)

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database block is required")
}

func TestLoadConfig_InvalidLogLevel(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LANDING_OBSERVABILITY__LOGGING__LEVEL", "verbose")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid logging level")
}

func TestObservabilityConfig_CheckEnabled(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	assert.True(t, cfg.CheckEnabled("store"))
	assert.False(t, cfg.CheckEnabled("queue"))

	cfg.HealthChecks.Enabled = false
	assert.False(t, cfg.CheckEnabled("store"))
}
