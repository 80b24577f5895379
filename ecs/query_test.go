package ecs_test

import (
	"testing"

	"github.com/plus3/scene/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery(t *testing.T) {
	scene := ecs.NewScene()
	a := spawn(t, scene, Position{X: 1}, Velocity{DX: 1}, Name{Value: "a"})
	b := spawn(t, scene, Position{X: 2}, Velocity{DX: 2})
	spawn(t, scene, Position{X: 3})

	t.Run("embedded fields are required", func(t *testing.T) {
		q := ecs.NewQuery[struct {
			*Position
			*Velocity
		}](scene)

		assert.Equal(t, 2, q.Count())
		for item := range q.Values() {
			item.Position.X += item.Velocity.DX
		}
		pos, _ := ecs.Get[Position](scene, b)
		assert.Equal(t, float32(4), pos.X)
	})

	t.Run("optional fields", func(t *testing.T) {
		q := ecs.NewQuery[struct {
			*Velocity
			Name *Name `ecs:"optional"`
		}](scene)

		names := map[ecs.EntityId]*Name{}
		for id, item := range q.Iter() {
			names[id] = item.Name
		}
		require.Len(t, names, 2)
		assert.Equal(t, "a", names[a].Value)
		assert.Nil(t, names[b])
	})

	t.Run("entity id field", func(t *testing.T) {
		q := ecs.NewQuery[struct {
			ID ecs.EntityId
			*Name
		}](scene)

		item := q.Get(a)
		require.NotNil(t, item)
		assert.Equal(t, a, item.ID)
		assert.Nil(t, q.Get(b))
	})

	t.Run("fill rejects stale ids", func(t *testing.T) {
		q := ecs.NewQuery[struct{ *Position }](scene)
		stale := ecs.NewEntityId(a.Index(), a.Generation()+1)

		var item struct{ *Position }
		assert.False(t, q.Fill(stale, &item))
		assert.True(t, q.Fill(a, &item))
		pos, _ := ecs.Get[Position](scene, a)
		assert.Same(t, pos, item.Position)
	})

	t.Run("malformed query structs panic", func(t *testing.T) {
		assert.Panics(t, func() {
			ecs.NewQuery[struct{ Position }](scene)
		})
		assert.Panics(t, func() {
			ecs.NewQuery[struct {
				P *Position `ecs:"sometimes"`
			}](scene)
		})
		assert.Panics(t, func() {
			ecs.NewQuery[int](scene)
		})
	})

	t.Run("iteration locks the scene", func(t *testing.T) {
		q := ecs.NewQuery[struct{ *Position }](scene)
		for range q.Iter() {
			_, err := scene.NewEntity()
			assert.ErrorIs(t, err, ecs.ErrSceneLocked)
			break
		}
		assert.False(t, scene.Locked())
	})
}
