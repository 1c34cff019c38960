// Package config loads server settings: built-in defaults, then an optional
// YAML file, then environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Addr is the listen address. PORT, when set, wins over it.
	Addr string `yaml:"addr" env:"GAME_ADDR"`
	Port string `yaml:"-" env:"PORT"`
	// Seed for the dice; 0 seeds each session from the clock.
	Seed       int64         `yaml:"seed" env:"DUEL_SEED"`
	SessionTTL time.Duration `yaml:"session_ttl" env:"SESSION_TTL"`
	SweepEvery time.Duration `yaml:"sweep_every" env:"SWEEP_EVERY"`
	LogLevel   string        `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat  string        `yaml:"log_format" env:"LOG_FORMAT"`
	// Build metadata injected via -ldflags, not read from config.
	Version string `yaml:"-"`
}

func Default() Config {
	return Config{
		Addr:       ":8081",
		SessionTTL: 30 * time.Minute,
		SweepEvery: time.Minute,
		LogLevel:   "info",
		LogFormat:  "console",
	}
}

// Load applies the YAML file at path (if path is non-empty) and then the
// environment on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadYAML(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Port != "" {
		cfg.Addr = ":" + strings.TrimPrefix(cfg.Port, ":")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

var ErrInvalid = errors.New("invalid config")

func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: empty listen address", ErrInvalid)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("%w: session_ttl must be positive", ErrInvalid)
	}
	if c.SweepEvery <= 0 {
		return fmt.Errorf("%w: sweep_every must be positive", ErrInvalid)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log_format %q", ErrInvalid, c.LogFormat)
	}
	return nil
}
