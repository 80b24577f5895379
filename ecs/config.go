package ecs

import (
	"github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
)

const (
	// DefaultMaxEntities is the row ceiling used when none is configured.
	DefaultMaxEntities = 1 << 20

	// DefaultInitialRows is the row table capacity reserved up front.
	DefaultInitialRows = 1024
)

// Config holds the tunables of a Scene. Fields map to ECS_* environment variables.
type Config struct {
	MaxEntities int    `config:"ECS_MAX_ENTITIES"`
	InitialRows int    `config:"ECS_INITIAL_ROWS"`
	LogLevel    string `config:"ECS_LOG_LEVEL"`
}

// DefaultConfig returns a Config with the package defaults.
func DefaultConfig() Config {
	return Config{
		MaxEntities: DefaultMaxEntities,
		InitialRows: DefaultInitialRows,
		LogLevel:    "info",
	}
}

// ConfigFromEnv loads a Config from ECS_* environment variables on top of DefaultConfig.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := config.FromEnv().To(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to load ecs config from environment")
	}
	return cfg.normalize(), nil
}

// normalize replaces out of range values with defaults.
func (c Config) normalize() Config {
	if c.MaxEntities <= 0 || c.MaxEntities >= int(InvalidIndex) {
		c.MaxEntities = DefaultMaxEntities
	}
	if c.InitialRows < 0 {
		c.InitialRows = 0
	}
	if c.InitialRows > c.MaxEntities {
		c.InitialRows = c.MaxEntities
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return c
}
