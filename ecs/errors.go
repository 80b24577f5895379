package ecs

import "github.com/rotisserie/eris"

var (
	// ErrEntityNotAlive is returned when an EntityId does not name the current occupant of its slot.
	ErrEntityNotAlive = eris.New("entity is not alive")

	// ErrCapacityExceeded is returned when creating an entity would grow the row table past MaxEntities.
	ErrCapacityExceeded = eris.New("entity capacity exceeded")

	// ErrTooManyComponents is returned when a registry already holds MaxComponents types.
	ErrTooManyComponents = eris.New("too many component types")

	// ErrSceneLocked is returned by structural mutations made while a view is being ranged over.
	ErrSceneLocked = eris.New("scene is locked by an active view iteration")

	// ErrSchedulerStarted is returned when systems were already started.
	ErrSchedulerStarted = eris.New("systems already started")

	// ErrSchedulerNotStarted is returned by UpdateSystems before InitSystems.
	ErrSchedulerNotStarted = eris.New("systems not started")
)
