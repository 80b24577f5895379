package ecs_test

import (
	"testing"

	"github.com/plus3/scene/ecs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectStats(t *testing.T) {
	scene := ecs.NewScene()
	a := spawn(t, scene, Position{}, Velocity{})
	spawn(t, scene, Position{})
	spawn(t, scene, Name{Value: "n"})
	require.NoError(t, scene.DestroyEntity(a))
	ecs.SetSingleton(scene, GameTime{})

	stats := scene.CollectStats()
	assert.Equal(t, 3, stats.RowCount)
	assert.Equal(t, 2, stats.LiveEntityCount)
	assert.Equal(t, 1, stats.FreeSlotCount)
	assert.Equal(t, 4, stats.ComponentTypeCount)
	assert.Equal(t, 1, stats.SingletonCount)
	assert.Equal(t, []string{"ecs_test.GameTime"}, stats.SingletonTypes)

	counts := map[string]int{}
	for _, c := range stats.Components {
		counts[c.Name] = c.Count
	}
	assert.Equal(t, map[string]int{
		"ecs_test.Position": 1,
		"ecs_test.Velocity": 0,
		"ecs_test.Name":     1,
		"ecs_test.GameTime": 0,
	}, counts)
	assert.Equal(t, 1, stats.Components[0].Blocks)
	assert.Equal(t, 64, stats.Components[0].Capacity)
	assert.Equal(t, uintptr(8), stats.Components[0].Size)
}

func TestSceneLogging(t *testing.T) {
	scene, buf := newLoggedScene()
	id := spawn(t, scene, Position{}, Health{})
	require.NoError(t, scene.AddSystem(&MovementSystem{}))

	scene.LogScene(zerolog.InfoLevel)
	require.NoError(t, scene.LogEntity(zerolog.InfoLevel, id))
	scene.LogComponents(zerolog.DebugLevel)

	lines := logLines(t, buf)
	require.Len(t, lines, 2)

	world := lines[0]
	assert.Equal(t, float64(1), world["live_entities"])
	assert.Equal(t, float64(1), world["total_systems"])
	assert.Equal(t, []any{"MovementSystem"}, world["systems"])
	assert.Len(t, world["components"], 3)

	entity := lines[1]
	assert.Equal(t, float64(0), entity["entity_index"])
	components := entity["components"].([]any)
	require.Len(t, components, 2)
	assert.Equal(t, "ecs_test.Position", components[0].(map[string]any)["component_name"])

	require.NoError(t, scene.DestroyEntity(id))
	assert.ErrorIs(t, scene.LogEntity(zerolog.InfoLevel, id), ecs.ErrEntityNotAlive)
}
