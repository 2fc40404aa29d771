package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

// Config holds settings read from the environment. Command-line flags
// override individual fields.
type Config struct {
	Display     string        `env:"SWITCHER_DISPLAY"`
	UpdateDelay time.Duration `env:"SWITCHER_UPDATE_DELAY" default:"700ms"`
	MetricsAddr string        `env:"SWITCHER_METRICS_ADDR"`
	LogLevel    string        `env:"LOG_LEVEL" default:"info"`
	LogFormat   string        `env:"LOG_FORMAT" default:"text"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if c.UpdateDelay <= 0 {
		return errors.New("SWITCHER_UPDATE_DELAY must be positive")
	}
	if c.UpdateDelay > time.Minute {
		return fmt.Errorf("SWITCHER_UPDATE_DELAY must be at most 1m, got %s", c.UpdateDelay)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}
