package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotRetiredAtLastGeneration(t *testing.T) {
	scene := NewScene()
	first, err := scene.NewEntity()
	require.NoError(t, err)
	require.NoError(t, scene.DestroyEntity(first))

	// Fast forward the freed slot to its final generation.
	reused, err := scene.NewEntity()
	require.NoError(t, err)
	require.Equal(t, first.Index(), reused.Index())
	last := NewEntityId(reused.Index(), MaxGeneration)
	scene.rows[last.Index()].id = last

	_, err = Set(scene, last, poolItem{A: 1})
	require.NoError(t, err)
	require.NoError(t, scene.DestroyEntity(last))

	assert.False(t, scene.Alive(last))
	assert.False(t, scene.Alive(first))
	assert.Empty(t, scene.free)

	next, err := scene.NewEntity()
	require.NoError(t, err)
	assert.NotEqual(t, last.Index(), next.Index())
	assert.Equal(t, uint32(0), next.Generation())
	assert.False(t, scene.Alive(first))
	assert.False(t, scene.Alive(NewEntityId(last.Index(), 0)))

	stats := scene.CollectStats()
	assert.Equal(t, 1, stats.RetiredSlotCount)
	assert.Equal(t, 0, stats.FreeSlotCount)
	assert.Equal(t, 1, stats.LiveEntityCount)
}
