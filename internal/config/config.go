package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// DBPath is the SQLite file. Empty means ~/.dailyroutine.db.
	DBPath   string `env:"DAILY_ROUTINE_DB"`
	Env      string `env:"DAILY_ROUTINE_ENV" envDefault:"development"`
	LogLevel string `env:"DAILY_ROUTINE_LOG_LEVEL" envDefault:"warn"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first if present; real environment variables win.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.DBPath = strings.TrimSpace(cfg.DBPath)
	return cfg, nil
}

// DefaultDBPath returns the default database location.
func DefaultDBPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".dailyroutine.db"), nil
}

// ResolveDBPath prefers override, then the configured path, then the default.
func (c Config) ResolveDBPath(override string) (string, error) {
	if p := strings.TrimSpace(override); p != "" {
		return p, nil
	}
	if c.DBPath != "" {
		return c.DBPath, nil
	}
	return DefaultDBPath()
}
