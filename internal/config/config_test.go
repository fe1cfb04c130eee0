package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-gateway/internal/catalog"
)

func envOf(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envOf(nil))
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, catalog.DefaultBaseURL, cfg.CatalogURL)
	assert.Equal(t, 10*time.Second, cfg.CatalogTimeout)
	assert.Equal(t, 5.0, cfg.RateLimitRPS)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, "public", cfg.DB.Schema)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"PORT":            "8080",
		"SPACEXAPIURL":    "http://catalog.local/v2/",
		"CATALOG_TIMEOUT": "250ms",
		"RATE_LIMIT_RPS":  "0.5",
		"DB_HOST":         "db",
		"DB_PASSWORD":     "secret",
	}))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "http://catalog.local/v2/", cfg.CatalogURL)
	assert.Equal(t, 250*time.Millisecond, cfg.CatalogTimeout)
	assert.Equal(t, 0.5, cfg.RateLimitRPS)
	assert.Equal(t, "db", cfg.DB.Host)
	assert.Equal(t, "secret", cfg.DB.Password)
}

func TestFromEnvInvalid(t *testing.T) {
	for key, value := range map[string]string{
		"PORT":             "web",
		"CATALOG_TIMEOUT":  "soon",
		"RATE_LIMIT_BURST": "lots",
	} {
		_, err := FromEnv(envOf(map[string]string{key: value}))
		assert.ErrorContains(t, err, key)
	}

	_, err := FromEnv(envOf(map[string]string{"PORT": "70000"}))
	assert.Error(t, err)
}
