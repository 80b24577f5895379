package ecs

import (
	"errors"

	"github.com/rotisserie/eris"
)

// Commands provides a buffer for deferred scene operations that are executed at the end of a frame.
// Systems use it to make structural changes while ranging over a view.
type Commands struct {
	spawns   []func(s *Scene, id EntityId) error
	destroys []EntityId
	removes  []entityCommand
	assigns  []entityCommand
	defers   []func()
}

type entityCommand struct {
	entity EntityId
	apply  func(s *Scene) error
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues the creation of an entity; init is called with the new id to assign its components.
func (c *Commands) Spawn(init func(s *Scene, id EntityId) error) {
	c.spawns = append(c.spawns, init)
}

// Destroy queues an entity destruction.
func (c *Commands) Destroy(entity EntityId) {
	c.destroys = append(c.destroys, entity)
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.destroys) + len(c.removes) + len(c.assigns) + len(c.defers)
}

// AssignLater queues setting a T on entity.
func AssignLater[T any](c *Commands, entity EntityId, value T) {
	c.assigns = append(c.assigns, entityCommand{
		entity: entity,
		apply: func(s *Scene) error {
			_, err := Set(s, entity, value)
			return err
		},
	})
}

// RemoveLater queues removing the T of entity.
func RemoveLater[T any](c *Commands, entity EntityId) {
	c.removes = append(c.removes, entityCommand{
		entity: entity,
		apply: func(s *Scene) error {
			return Remove[T](s, entity)
		},
	})
}

// Flush applies all queued operations to the scene in the order destroys, removes,
// assigns, spawns, defers, and resets the buffer. Removes and assigns aimed at
// entities destroyed in the same flush are dropped. Failures do not stop the
// flush; they are joined into the returned error.
//
// Commands queued while the flush runs, from a spawn initializer or a deferred
// function, are kept for the next flush.
func (c *Commands) Flush(s *Scene) error {
	pending := *c
	*c = Commands{}

	var errs []error
	destroyed := make(map[EntityId]bool, len(pending.destroys))

	for _, entity := range pending.destroys {
		if destroyed[entity] {
			continue
		}
		if err := s.DestroyEntity(entity); err != nil {
			errs = append(errs, err)
			continue
		}
		destroyed[entity] = true
	}

	for _, cmd := range pending.removes {
		if destroyed[cmd.entity] {
			continue
		}
		if err := cmd.apply(s); err != nil {
			errs = append(errs, err)
		}
	}

	for _, cmd := range pending.assigns {
		if destroyed[cmd.entity] {
			continue
		}
		if err := cmd.apply(s); err != nil {
			errs = append(errs, err)
		}
	}

	for _, init := range pending.spawns {
		id, err := s.NewEntity()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if init == nil {
			continue
		}
		if err := init(s, id); err != nil {
			errs = append(errs, eris.Wrapf(err, "failed to initialize spawned entity %s", id))
		}
	}

	for _, fn := range pending.defers {
		fn()
	}

	return errors.Join(errs...)
}
