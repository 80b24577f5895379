package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/plus3/scene/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScene(t *testing.T) {
	scene, lifespan, err := loadScene(options{width: 1280, height: 720}, "testdata/demo.toml")
	require.NoError(t, err)
	assert.Equal(t, 3, scene.Len())

	names := map[Name]ecs.EntityId{}
	for id, item := range ecs.Each1[Name](scene) {
		names[*item.C1] = id
	}
	require.Contains(t, names, Name("spark"))
	require.Contains(t, names, Name("beacon"))

	require.NoError(t, scene.InitSystems())
	for i := 0; i < 60; i++ {
		require.NoError(t, scene.UpdateSystems(1.0/60.0))
	}

	assert.False(t, scene.Alive(names["spark"]))
	assert.True(t, scene.Alive(names["beacon"]))
	assert.Equal(t, 1, lifespan.Expired)
	assert.Equal(t, 2, scene.Len())
}

func TestMovementBounces(t *testing.T) {
	scene := ecs.NewScene()
	_, err := registerSystems(scene, Bounds{Width: 10, Height: 10})
	require.NoError(t, err)

	id, err := scene.NewEntity()
	require.NoError(t, err)
	pos, err := ecs.Set(scene, id, Position{X: 9, Y: 5})
	require.NoError(t, err)
	vel, err := ecs.Set(scene, id, Velocity{DX: 4})
	require.NoError(t, err)

	require.NoError(t, scene.InitSystems())
	require.NoError(t, scene.UpdateSystems(1))

	assert.Equal(t, float32(10), pos.X)
	assert.Equal(t, float32(-4), vel.DX)

	require.NoError(t, scene.UpdateSystems(1))
	assert.Equal(t, float32(6), pos.X)
}

func TestLoadSceneMissingFile(t *testing.T) {
	_, _, err := loadScene(options{}, "testdata/missing.toml")
	assert.Error(t, err)
}

func TestStatsCommand(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"stats", "--frames", "5", "testdata/demo.toml"})
		require.NoError(t, cmd.Execute())

		assert.Contains(t, out.String(), "Live entities:")
		assert.Contains(t, out.String(), "MovementSystem")
		assert.Contains(t, out.String(), "LifespanSystem")
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"stats", "--frames", "60", "--json", "testdata/demo.toml"})
		require.NoError(t, cmd.Execute())

		var report Report
		require.NoError(t, json.Unmarshal(out.Bytes(), &report))
		assert.Equal(t, 60, report.Frames)
		assert.Equal(t, 2, report.Scene.LiveEntityCount)
		assert.Equal(t, 1, report.Scene.FreeSlotCount)
		require.Len(t, report.Scheduler.Systems, 2)
		assert.EqualValues(t, 60, report.Scheduler.Systems[0].ExecutionCount)
	})

	t.Run("missing file", func(t *testing.T) {
		cmd := NewRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"stats", "testdata/nope.toml"})
		assert.Error(t, cmd.Execute())
	})
}
