package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/scene/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentRegistry(t *testing.T) {
	t.Run("ids are stable and assigned in first use order", func(t *testing.T) {
		registry := ecs.NewComponentRegistry()
		pos := ecs.RegisterComponent[Position](registry)
		vel := ecs.RegisterComponent[Velocity](registry)

		assert.Equal(t, ecs.ComponentId(0), pos)
		assert.Equal(t, ecs.ComponentId(1), vel)
		assert.Equal(t, pos, ecs.RegisterComponent[Position](registry))
		assert.Equal(t, 2, registry.Len())
	})

	t.Run("named types are distinct from their underlying type", func(t *testing.T) {
		registry := ecs.NewComponentRegistry()
		assert.NotEqual(t,
			ecs.RegisterComponent[Score](registry),
			ecs.RegisterComponent[int32](registry))
	})

	t.Run("lookup does not register", func(t *testing.T) {
		registry := ecs.NewComponentRegistry()
		_, ok := ecs.LookupComponent[Health](registry)
		assert.False(t, ok)
		assert.Equal(t, 0, registry.Len())

		id := ecs.RegisterComponent[Health](registry)
		found, ok := ecs.LookupComponent[Health](registry)
		assert.True(t, ok)
		assert.Equal(t, id, found)
	})

	t.Run("registries are independent", func(t *testing.T) {
		a := ecs.NewComponentRegistry()
		b := ecs.NewComponentRegistry()
		ecs.RegisterComponent[Position](a)
		ecs.RegisterComponent[Velocity](b)
		ecs.RegisterComponent[Position](b)

		idA, _ := ecs.LookupComponent[Position](a)
		idB, _ := ecs.LookupComponent[Position](b)
		assert.Equal(t, ecs.ComponentId(0), idA)
		assert.Equal(t, ecs.ComponentId(1), idB)
	})

	t.Run("info and names", func(t *testing.T) {
		registry := newTestRegistry()
		id, ok := registry.ByName("ecs_test.Velocity")
		require.True(t, ok)

		info, ok := registry.Info(id)
		require.True(t, ok)
		assert.Equal(t, reflect.TypeFor[Velocity](), info.Type)
		assert.Equal(t, uintptr(8), info.Size)

		names := registry.Names()
		assert.Len(t, names, registry.Len())
		assert.IsNonDecreasing(t, names)

		_, ok = registry.Info(ecs.ComponentId(registry.Len()))
		assert.False(t, ok)
	})
}

type wide[T any] struct{ V T }

func TestComponentRegistryFull(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	registerMany(registry)
	assert.Equal(t, ecs.MaxComponents, registry.Len())

	_, err := ecs.TryRegisterComponent[Position](registry)
	assert.ErrorIs(t, err, ecs.ErrTooManyComponents)
	assert.Panics(t, func() {
		ecs.RegisterComponent[Velocity](registry)
	})
}

// registerMany fills a registry with MaxComponents distinct array types.
func registerMany(registry *ecs.ComponentRegistry) {
	for i := 0; i < ecs.MaxComponents; i++ {
		registerArray(registry, i)
	}
}

func registerArray(registry *ecs.ComponentRegistry, n int) {
	t := reflect.ArrayOf(n, reflect.TypeFor[wide[byte]]())
	_, _ = registry.RegisterType(t)
}
