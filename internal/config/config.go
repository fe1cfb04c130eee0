package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cast"

	// Environment variables
	_ "github.com/joho/godotenv/autoload"

	"trip-gateway/internal/catalog"
	"trip-gateway/internal/database"
)

type Config struct {
	Port            int
	LogLevel        string
	DB              database.Config
	CatalogURL      string
	CatalogTimeout  time.Duration
	RateLimitRPS    float64
	RateLimitBurst  int
	ShutdownTimeout time.Duration
}

// Load reads the process environment, including any .env file in the
// working directory.
func Load() (Config, error) {
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, falling back to defaults for unset keys.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		LogLevel: get("LOG_LEVEL", "info"),
		DB: database.Config{
			Host:     get("DB_HOST", "localhost"),
			Port:     get("DB_PORT", "5432"),
			Database: get("DB_DATABASE", "trips"),
			Username: get("DB_USERNAME", "postgres"),
			Password: getenv("DB_PASSWORD"),
			Schema:   get("DB_SCHEMA", "public"),
		},
		CatalogURL: get("SPACEXAPIURL", catalog.DefaultBaseURL),
	}

	var err error
	if cfg.Port, err = cast.ToIntE(get("PORT", "4000")); err != nil {
		return Config{}, errors.Wrap(err, "PORT")
	}
	if cfg.CatalogTimeout, err = cast.ToDurationE(get("CATALOG_TIMEOUT", "10s")); err != nil {
		return Config{}, errors.Wrap(err, "CATALOG_TIMEOUT")
	}
	if cfg.RateLimitRPS, err = cast.ToFloat64E(get("RATE_LIMIT_RPS", "5")); err != nil {
		return Config{}, errors.Wrap(err, "RATE_LIMIT_RPS")
	}
	if cfg.RateLimitBurst, err = cast.ToIntE(get("RATE_LIMIT_BURST", "10")); err != nil {
		return Config{}, errors.Wrap(err, "RATE_LIMIT_BURST")
	}
	if cfg.ShutdownTimeout, err = cast.ToDurationE(get("SHUTDOWN_TIMEOUT", "5s")); err != nil {
		return Config{}, errors.Wrap(err, "SHUTDOWN_TIMEOUT")
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, errors.Errorf("PORT %d out of range", cfg.Port)
	}
	return cfg, nil
}
