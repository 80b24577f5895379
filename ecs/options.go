package ecs

import (
	"github.com/rs/zerolog"
)

// Option configures a Scene at construction time.
type Option func(s *Scene)

// WithRegistry makes the scene use a shared component registry.
func WithRegistry(registry *ComponentRegistry) Option {
	return func(s *Scene) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// WithLogger replaces the scene's logger. The logger keeps its level unless
// WithConfig is also given, in which case Config.LogLevel applies.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Scene) {
		s.logger = logger
		s.customLogger = true
	}
}

// WithMaxEntities sets the ceiling on the number of rows the scene will grow to.
func WithMaxEntities(n int) Option {
	return func(s *Scene) {
		s.config.MaxEntities = n
	}
}

// WithInitialRows reserves room for n rows up front.
func WithInitialRows(n int) Option {
	return func(s *Scene) {
		s.config.InitialRows = n
	}
}

// WithConfig applies every field of cfg.
func WithConfig(cfg Config) Option {
	return func(s *Scene) {
		s.config = cfg
		s.configured = true
	}
}
