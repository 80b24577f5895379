package ecs_test

import (
	"bytes"
	"testing"

	"github.com/plus3/scene/ecs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := ecs.ConfigFromEnv()
		require.NoError(t, err)
		assert.Equal(t, ecs.DefaultConfig(), cfg)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("ECS_MAX_ENTITIES", "16")
		t.Setenv("ECS_INITIAL_ROWS", "64")
		t.Setenv("ECS_LOG_LEVEL", "debug")

		cfg, err := ecs.ConfigFromEnv()
		require.NoError(t, err)
		assert.Equal(t, 16, cfg.MaxEntities)
		assert.Equal(t, 16, cfg.InitialRows)
		assert.Equal(t, "debug", cfg.LogLevel)

		scene := ecs.NewScene(ecs.WithConfig(cfg))
		assert.Equal(t, 16, scene.MaxEntities())
	})

	t.Run("out of range values fall back to defaults", func(t *testing.T) {
		scene := ecs.NewScene(ecs.WithConfig(ecs.Config{MaxEntities: -1, InitialRows: -5}))
		assert.Equal(t, ecs.DefaultMaxEntities, scene.MaxEntities())
	})
}

func TestLogLevel(t *testing.T) {
	messages := func(t *testing.T, buf *bytes.Buffer) []string {
		var out []string
		for _, line := range logLines(t, buf) {
			out = append(out, line["message"].(string))
		}
		return out
	}

	t.Run("injected logger keeps its level", func(t *testing.T) {
		var buf bytes.Buffer
		scene := ecs.NewScene(ecs.WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
		require.NoError(t, scene.AddSystem(&MovementSystem{}))
		require.NoError(t, scene.InitSystems())

		assert.Equal(t, []string{"system registered", "systems started"}, messages(t, &buf))
	})

	t.Run("explicit config level applies to the injected logger", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := ecs.DefaultConfig()
		cfg.LogLevel = "warn"
		scene := ecs.NewScene(
			ecs.WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)),
			ecs.WithConfig(cfg),
		)
		require.NoError(t, scene.AddSystem(&MovementSystem{}))
		require.NoError(t, scene.InitSystems())
		assert.Empty(t, messages(t, &buf))

		assert.Error(t, scene.InitSystems())
		assert.Equal(t, []string{"ignoring repeated system start"}, messages(t, &buf))
	})
}
