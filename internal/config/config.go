package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const dataDirName = ".terminal_shadows"

// Config holds the process configuration.
type Config struct {
	DataDir      string `env:"SHADOWS_DATA_DIR"`
	ContentDir   string `env:"SHADOWS_CONTENT_DIR"`
	Storage      string `env:"SHADOWS_STORAGE" envDefault:"file"`
	Seed         uint64 `env:"SHADOWS_SEED"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	LogFile      string `env:"SHADOWS_LOG_FILE"`
}

// LoadConfig reads an optional .env file from the working directory and then
// the environment. Variables already set in the environment win over .env.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("locate home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, dataDirName)
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, "debug.log")
	}
	switch cfg.Storage {
	case "file", "sqlite":
	default:
		return nil, fmt.Errorf("SHADOWS_STORAGE must be file or sqlite, got %q", cfg.Storage)
	}
	return &cfg, nil
}

// SettingsPath is where the settings document lives.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.DataDir, "config.yaml")
}
