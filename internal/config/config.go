package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	Backend struct {
		URL   string
		Token string
	}
	Logging struct {
		Level string
		File  string
	}
}

func DefaultConfig() Config {
	cfg := Config{}
	cfg.Backend.URL = ""
	cfg.Backend.Token = ""
	cfg.Logging.Level = "info"
	cfg.Logging.File = defaultLogFile()
	return cfg
}

// LoadEnv reads a .env file when present, then applies TAXCHAT_*
// variables on top of the receiver. Flag values are applied by the
// caller afterwards and win over the environment.
func (c *Config) LoadEnv() {
	_ = godotenv.Load()
	if v := os.Getenv("TAXCHAT_BACKEND_URL"); v != "" {
		c.Backend.URL = v
	}
	if v := os.Getenv("TAXCHAT_TOKEN"); v != "" {
		c.Backend.Token = v
	}
	if v := os.Getenv("TAXCHAT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("TAXCHAT_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
}

func defaultLogFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "taxchat.log"
	}
	return filepath.Join(home, ".taxchat", "taxchat.log")
}
