// Package config reads rolegen settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds settings shared by the CLI commands. Flags override it.
type Config struct {
	// DB is the SQLite catalog path. Empty means no store.
	DB string `env:"ROLEGEN_DB"`
	// Catalog is a YAML or JSON catalog file read instead of the store.
	Catalog string `env:"ROLEGEN_CATALOG"`
	// Seed for the generator; 0 draws a fresh one.
	Seed int64 `env:"ROLEGEN_SEED" envDefault:"0"`
	// Suggestions is how many names to offer for an unmatched expression.
	Suggestions int `env:"ROLEGEN_SUGGESTIONS" envDefault:"3"`

	LogLevel  string `env:"ROLEGEN_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"ROLEGEN_LOG_FORMAT" envDefault:"text"`
}

// Load parses Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return Config{}, fmt.Errorf("log format must be text or json, got %q", cfg.LogFormat)
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Level returns LogLevel as a slog level.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
