package main

import (
	"math"
	"math/rand"

	"github.com/plus3/scene/ecs"
)

type Position struct {
	X, Y float64
}

type Velocity struct {
	DX, DY float64
}

type Acceleration struct {
	AX, AY float64
}

type Health struct {
	Current, Max float64
}

type Lifetime struct {
	Remaining float64
}

type Heat struct {
	Value float64
}

// Seeker steers towards another entity, which may have been destroyed since.
type Seeker struct {
	Target ecs.EntityId
	Speed  float64
}

type Tag struct {
	Name string
}

const componentCount = 8

// spawner assigns one kind of component with random contents.
type spawner func(s *ecs.Scene, id ecs.EntityId, rng *rand.Rand) error

var spawners = []spawner{
	func(s *ecs.Scene, id ecs.EntityId, rng *rand.Rand) error {
		_, err := ecs.Set(s, id, Position{X: rng.Float64() * 1000, Y: rng.Float64() * 1000})
		return err
	},
	func(s *ecs.Scene, id ecs.EntityId, rng *rand.Rand) error {
		_, err := ecs.Set(s, id, Velocity{DX: rng.NormFloat64(), DY: rng.NormFloat64()})
		return err
	},
	func(s *ecs.Scene, id ecs.EntityId, rng *rand.Rand) error {
		_, err := ecs.Set(s, id, Acceleration{AX: rng.NormFloat64() / 10, AY: rng.NormFloat64() / 10})
		return err
	},
	func(s *ecs.Scene, id ecs.EntityId, rng *rand.Rand) error {
		_, err := ecs.Set(s, id, Health{Current: rng.Float64() * 100, Max: 100})
		return err
	},
	func(s *ecs.Scene, id ecs.EntityId, rng *rand.Rand) error {
		_, err := ecs.Set(s, id, Lifetime{Remaining: rng.Float64() * 5})
		return err
	},
	func(s *ecs.Scene, id ecs.EntityId, rng *rand.Rand) error {
		_, err := ecs.Set(s, id, Heat{Value: rng.Float64()})
		return err
	},
	func(s *ecs.Scene, id ecs.EntityId, rng *rand.Rand) error {
		target := ecs.NewEntityId(uint32(rng.Intn(max(s.Rows(), 1))), 0)
		_, err := ecs.Set(s, id, Seeker{Target: target, Speed: 1 + rng.Float64()})
		return err
	},
	func(s *ecs.Scene, id ecs.EntityId, rng *rand.Rand) error {
		_, err := ecs.Set(s, id, Tag{Name: "stress"})
		return err
	},
}

// SpawnRandomEntity creates an entity with numComponents distinct random components.
func SpawnRandomEntity(s *ecs.Scene, rng *rand.Rand, numComponents int) (ecs.EntityId, error) {
	id, err := s.NewEntity()
	if err != nil {
		return id, err
	}
	return id, assignRandom(s, id, rng, numComponents)
}

func assignRandom(s *ecs.Scene, id ecs.EntityId, rng *rand.Rand, numComponents int) error {
	for _, i := range rng.Perm(len(spawners))[:min(numComponents, len(spawners))] {
		if err := spawners[i](s, id, rng); err != nil {
			return err
		}
	}
	return nil
}

type AccelerationSystem struct {
	ecs.BaseSystem
}

func (AccelerationSystem) OnUpdate(s *ecs.Scene, dt float64) {
	for _, item := range ecs.Each2[Velocity, Acceleration](s) {
		item.C1.DX += item.C2.AX * dt
		item.C1.DY += item.C2.AY * dt
	}
}

type MovementSystem struct {
	ecs.BaseSystem
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
}

func (m *MovementSystem) OnUpdate(s *ecs.Scene, dt float64) {
	for item := range m.Entities.Values() {
		item.Position.X += item.Velocity.DX * dt
		item.Position.Y += item.Velocity.DY * dt
	}
}

type SeekerSystem struct {
	ecs.BaseSystem
	Lost int
}

// OnUpdate moves seekers towards their target, retargeting through the view
// when the target handle has gone stale.
func (ss *SeekerSystem) OnUpdate(s *ecs.Scene, dt float64) {
	var first ecs.EntityId
	if it := ecs.ViewOf[Position](s).Begin(); !it.AtEnd() {
		first = it.Entity()
	}

	for _, item := range ecs.Each2[Seeker, Position](s) {
		target, ok := ecs.Get[Position](s, item.C1.Target)
		if !ok {
			ss.Lost++
			item.C1.Target = first
			continue
		}
		dx, dy := target.X-item.C2.X, target.Y-item.C2.Y
		if d := math.Hypot(dx, dy); d > 0 {
			item.C2.X += dx / d * item.C1.Speed * dt
			item.C2.Y += dy / d * item.C1.Speed * dt
		}
	}
}

type HealthSystem struct {
	ecs.BaseSystem
	Entities ecs.Query[struct {
		ID ecs.EntityId
		*Health
		Heat *Heat `ecs:"optional"`
	}]
}

func (h *HealthSystem) OnUpdate(s *ecs.Scene, dt float64) {
	for item := range h.Entities.Values() {
		rate := 1.0
		if item.Heat != nil {
			rate -= item.Heat.Value * 2
		}
		item.Health.Current = math.Min(item.Health.Max, item.Health.Current+rate*dt)
		if item.Health.Current <= 0 {
			s.Commands().Destroy(item.ID)
		}
	}
}

type LifetimeSystem struct {
	ecs.BaseSystem
}

func (LifetimeSystem) OnUpdate(s *ecs.Scene, dt float64) {
	for id, item := range ecs.Each1[Lifetime](s) {
		item.C1.Remaining -= dt
		if item.C1.Remaining <= 0 {
			s.Commands().Destroy(id)
		}
	}
}

// ChurnSystem keeps the population steady by destroying a random fraction of
// entities each frame and spawning replacements for everything that died.
type ChurnSystem struct {
	ecs.BaseSystem
	Target   int
	Fraction float64
	Rng      *rand.Rand
	Spawned  int64
	Killed   int64
}

func (c *ChurnSystem) OnUpdate(s *ecs.Scene, dt float64) {
	killed := 0
	if c.Fraction > 0 {
		for id := range s.Entities() {
			if c.Rng.Float64() < c.Fraction {
				s.Commands().Destroy(id)
				killed++
			}
		}
	}
	c.Killed += int64(killed)

	missing := c.Target - s.Len() + killed
	for i := 0; i < missing; i++ {
		n := c.Rng.Intn(5) + 1
		s.Commands().Spawn(func(s *ecs.Scene, id ecs.EntityId) error {
			return assignRandom(s, id, c.Rng, n)
		})
		c.Spawned++
	}
}

func registerSystems(scene *ecs.Scene, churn *ChurnSystem) error {
	systems := []ecs.System{
		AccelerationSystem{},
		&MovementSystem{},
		&SeekerSystem{},
		&HealthSystem{},
		LifetimeSystem{},
		churn,
	}
	for _, system := range systems {
		if err := scene.AddSystem(system); err != nil {
			return err
		}
	}
	return nil
}
