package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SWITCHER_DISPLAY", "SWITCHER_UPDATE_DELAY", "SWITCHER_METRICS_ADDR", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "") // restores the original value after the test
		os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 700*time.Millisecond, cfg.UpdateDelay)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SWITCHER_DISPLAY", ":1")
	t.Setenv("SWITCHER_UPDATE_DELAY", "250ms")
	t.Setenv("SWITCHER_METRICS_ADDR", ":9102")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":1", cfg.Display)
	assert.Equal(t, 250*time.Millisecond, cfg.UpdateDelay)
	assert.Equal(t, ":9102", cfg.MetricsAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestValidate(t *testing.T) {
	valid := Config{UpdateDelay: time.Second, LogLevel: "info", LogFormat: "text"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero delay", func(c *Config) { c.UpdateDelay = 0 }},
		{"huge delay", func(c *Config) { c.UpdateDelay = time.Hour }},
		{"bad level", func(c *Config) { c.LogLevel = "trace" }},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
