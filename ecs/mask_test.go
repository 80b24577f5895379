package ecs_test

import (
	"slices"
	"testing"

	"github.com/plus3/scene/ecs"
	"github.com/stretchr/testify/assert"
)

func TestComponentMask(t *testing.T) {
	t.Run("set and unset across words", func(t *testing.T) {
		var m ecs.ComponentMask
		for _, id := range []ecs.ComponentId{0, 63, 64, 200, 255} {
			m.Set(id)
			assert.True(t, m.Has(id))
		}
		assert.Equal(t, 5, m.Count())

		m.Unset(64)
		assert.False(t, m.Has(64))
		assert.True(t, m.Has(63))
		assert.Equal(t, 4, m.Count())
	})

	t.Run("contains is a superset test", func(t *testing.T) {
		full := ecs.NewComponentMask(1, 2, 130)
		assert.True(t, full.Contains(ecs.NewComponentMask(1, 130)))
		assert.True(t, full.Contains(ecs.ComponentMask{}))
		assert.False(t, full.Contains(ecs.NewComponentMask(1, 3)))
		assert.False(t, ecs.NewComponentMask(1).Contains(full))
	})

	t.Run("ids are ascending", func(t *testing.T) {
		m := ecs.NewComponentMask(190, 3, 64, 0)
		assert.Equal(t, []ecs.ComponentId{0, 3, 64, 190}, slices.Collect(m.Ids()))
	})

	t.Run("empty and union", func(t *testing.T) {
		var m ecs.ComponentMask
		assert.True(t, m.IsEmpty())

		u := ecs.NewComponentMask(1).Or(ecs.NewComponentMask(100))
		assert.False(t, u.IsEmpty())
		assert.Equal(t, ecs.NewComponentMask(1, 100), u)
	})
}
