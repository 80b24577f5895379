package main

import (
	"github.com/plus3/scene/ecs"
	"github.com/plus3/scene/ecs/loader"
)

type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Sprite struct {
	Color [3]uint8
	Scale float32
	Shape ShapeType
}

type ShapeType int

const (
	ShapeCircle ShapeType = iota
	ShapeSquare
)

type Name string

// Lifespan counts down in seconds; the entity is destroyed when it reaches zero.
type Lifespan struct {
	Remaining float32
}

// Bounds is the world rectangle entities bounce inside. It is a scene singleton.
type Bounds struct {
	Width, Height float32
}

func newLoader(strict bool) *loader.Loader {
	l := loader.New(loader.WithStrict(strict))
	loader.Register[Position](l, "")
	loader.Register[Velocity](l, "")
	loader.Register[Sprite](l, "")
	loader.Register[Name](l, "")
	loader.Register[Lifespan](l, "")
	return l
}

type movement struct {
	Position *Position
	Velocity *Velocity
}

// MovementSystem integrates velocities and reflects entities off the world bounds.
type MovementSystem struct {
	ecs.BaseSystem
	Movers ecs.Query[movement]
	Bounds ecs.Singleton[Bounds]
}

func (s *MovementSystem) OnUpdate(scene *ecs.Scene, dt float64) {
	bounds := s.Bounds.Get()
	step := float32(dt)
	for m := range s.Movers.Values() {
		m.Position.X += m.Velocity.DX * step
		m.Position.Y += m.Velocity.DY * step

		if m.Position.X < 0 || m.Position.X > bounds.Width {
			m.Velocity.DX = -m.Velocity.DX
			m.Position.X = min(max(m.Position.X, 0), bounds.Width)
		}
		if m.Position.Y < 0 || m.Position.Y > bounds.Height {
			m.Velocity.DY = -m.Velocity.DY
			m.Position.Y = min(max(m.Position.Y, 0), bounds.Height)
		}
	}
}

type aging struct {
	Id       ecs.EntityId
	Lifespan *Lifespan
}

// LifespanSystem ages entities and queues the expired ones for destruction.
type LifespanSystem struct {
	ecs.BaseSystem
	Aging   ecs.Query[aging]
	Expired int
}

func (s *LifespanSystem) OnUpdate(scene *ecs.Scene, dt float64) {
	commands := scene.Commands()
	for a := range s.Aging.Values() {
		a.Lifespan.Remaining -= float32(dt)
		if a.Lifespan.Remaining <= 0 {
			commands.Destroy(a.Id)
			s.Expired++
		}
	}
}

func registerSystems(scene *ecs.Scene, bounds Bounds) (*LifespanSystem, error) {
	ecs.SetSingleton(scene, bounds)
	lifespan := &LifespanSystem{}
	if err := scene.AddSystem(&MovementSystem{}); err != nil {
		return nil, err
	}
	if err := scene.AddSystem(lifespan); err != nil {
		return nil, err
	}
	return lifespan, nil
}
