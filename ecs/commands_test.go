package ecs_test

import (
	"testing"

	"github.com/plus3/scene/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands(t *testing.T) {
	t.Run("spawn while iterating", func(t *testing.T) {
		scene := ecs.NewScene()
		spawn(t, scene, Position{X: 1})
		spawn(t, scene, Position{X: 2})

		cmd := scene.Commands()
		for id := range ecs.ViewOf[Position](scene).Iter() {
			pos, _ := ecs.Get[Position](scene, id)
			x := pos.X
			cmd.Spawn(func(s *ecs.Scene, id ecs.EntityId) error {
				_, err := ecs.Set(s, id, Velocity{DX: x})
				return err
			})
		}
		assert.Equal(t, 2, cmd.Len())
		assert.Equal(t, 0, ecs.ViewOf[Velocity](scene).Count())

		require.NoError(t, cmd.Flush(scene))
		assert.Equal(t, 0, cmd.Len())
		assert.Equal(t, 2, ecs.ViewOf[Velocity](scene).Count())
	})

	t.Run("destroy while iterating", func(t *testing.T) {
		scene := ecs.NewScene()
		for i := 0; i < 4; i++ {
			spawn(t, scene, Health{Current: i})
		}

		for id := range ecs.ViewOf[Health](scene).Iter() {
			h, _ := ecs.Get[Health](scene, id)
			if h.Current%2 == 0 {
				scene.Commands().Destroy(id)
			}
		}
		require.NoError(t, scene.Commands().Flush(scene))
		assert.Equal(t, 2, scene.Len())
	})

	t.Run("assign and remove later", func(t *testing.T) {
		scene := ecs.NewScene()
		id := spawn(t, scene, Position{})

		ecs.AssignLater(scene.Commands(), id, Name{Value: "later"})
		ecs.RemoveLater[Position](scene.Commands(), id)
		assert.True(t, ecs.Has[Position](scene, id))

		require.NoError(t, scene.Commands().Flush(scene))
		assert.False(t, ecs.Has[Position](scene, id))
		name, ok := ecs.Get[Name](scene, id)
		require.True(t, ok)
		assert.Equal(t, "later", name.Value)
	})

	t.Run("operations on entities destroyed in the same flush are dropped", func(t *testing.T) {
		scene := ecs.NewScene()
		id := spawn(t, scene, Position{})

		cmd := scene.Commands()
		ecs.AssignLater(cmd, id, Velocity{})
		cmd.Destroy(id)
		cmd.Destroy(id)

		require.NoError(t, cmd.Flush(scene))
		assert.False(t, scene.Alive(id))
		assert.Equal(t, 0, ecs.ViewOf[Velocity](scene).Count())
	})

	t.Run("errors are joined and do not stop the flush", func(t *testing.T) {
		scene := ecs.NewScene()
		gone := spawn(t, scene)
		require.NoError(t, scene.DestroyEntity(gone))

		ran := false
		cmd := scene.Commands()
		cmd.Destroy(gone)
		ecs.AssignLater(cmd, gone, Position{})
		cmd.Defer(func() { ran = true })

		err := cmd.Flush(scene)
		assert.ErrorIs(t, err, ecs.ErrEntityNotAlive)
		assert.True(t, ran)
		assert.Equal(t, 0, cmd.Len())
	})

	t.Run("commands queued during a flush run in the next flush", func(t *testing.T) {
		scene := ecs.NewScene()
		victim := spawn(t, scene, Position{})

		cmd := scene.Commands()
		cmd.Defer(func() {
			cmd.Spawn(nil)
		})
		cmd.Spawn(func(s *ecs.Scene, id ecs.EntityId) error {
			s.Commands().Destroy(victim)
			return nil
		})

		require.NoError(t, cmd.Flush(scene))
		assert.Equal(t, 2, scene.Len())
		assert.True(t, scene.Alive(victim))
		assert.Equal(t, 2, cmd.Len())

		require.NoError(t, cmd.Flush(scene))
		assert.False(t, scene.Alive(victim))
		assert.Equal(t, 2, scene.Len())
		assert.Equal(t, 0, cmd.Len())
	})

	t.Run("flushed by UpdateSystems", func(t *testing.T) {
		scene := ecs.NewScene()
		require.NoError(t, scene.AddSystem(ecs.SystemFunc(func(s *ecs.Scene, dt float64) {
			s.Commands().Spawn(nil)
		})))
		require.NoError(t, scene.InitSystems())

		require.NoError(t, scene.UpdateSystems(0.1))
		require.NoError(t, scene.UpdateSystems(0.1))
		assert.Equal(t, 2, scene.Len())
	})
}
