package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Empty(t, cfg.Backend.URL)
	assert.Empty(t, cfg.Backend.Token)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.Logging.File)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TAXCHAT_BACKEND_URL", "http://backend:8000")
	t.Setenv("TAXCHAT_TOKEN", "tok-env")
	t.Setenv("TAXCHAT_LOG_LEVEL", "debug")
	t.Setenv("TAXCHAT_LOG_FILE", "/tmp/taxchat-test.log")

	cfg := DefaultConfig()
	cfg.LoadEnv()
	assert.Equal(t, "http://backend:8000", cfg.Backend.URL)
	assert.Equal(t, "tok-env", cfg.Backend.Token)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/tmp/taxchat-test.log", cfg.Logging.File)
}

func TestLoadEnvKeepsDefaultsWhenUnset(t *testing.T) {
	t.Setenv("TAXCHAT_BACKEND_URL", "")
	t.Setenv("TAXCHAT_LOG_LEVEL", "")

	cfg := DefaultConfig()
	cfg.LoadEnv()
	assert.Empty(t, cfg.Backend.URL)
	assert.Equal(t, "info", cfg.Logging.Level)
}
