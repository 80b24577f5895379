package ecs

import (
	"reflect"

	"github.com/kamstrup/intmap"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Scene is the entity table: it owns the slot rows, the free list, one
// component pool per component type, the singletons and the system scheduler.
//
// A Scene is not safe for concurrent use. Structural mutations (NewEntity,
// DestroyEntity, Assign, Set, Remove) are refused with ErrSceneLocked while a
// view over the scene is being ranged over; queue them on Commands instead.
type Scene struct {
	registry     *ComponentRegistry
	rows         []slot
	free         []uint32
	pools        []componentPool
	singletons   *intmap.Map[ComponentId, any]
	scheduler    *Scheduler
	commands     *Commands
	logger       zerolog.Logger
	config       Config
	customLogger bool
	configured   bool
	live         int
	locks        int
	retired      int
}

// NewScene creates an empty scene.
func NewScene(opts ...Option) *Scene {
	s := &Scene{
		singletons: intmap.New[ComponentId, any](16),
		commands:   newCommands(),
		logger:     log.Logger.With().Str("component", "ecs").Logger(),
		config:     DefaultConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = NewComponentRegistry()
	}

	s.config = s.config.normalize()
	// An injected logger keeps its own level unless a Config was given too.
	if s.configured || !s.customLogger {
		if lvl, err := zerolog.ParseLevel(s.config.LogLevel); err == nil {
			s.logger = s.logger.Level(lvl)
		}
	}

	s.rows = make([]slot, 0, s.config.InitialRows)
	s.scheduler = newScheduler(s)
	return s
}

// Registry returns the component registry used by the scene.
func (s *Scene) Registry() *ComponentRegistry {
	return s.registry
}

// Logger returns the scene's logger.
func (s *Scene) Logger() *zerolog.Logger {
	return &s.logger
}

// Commands returns the scene's deferred command buffer. It is flushed at the
// end of every UpdateSystems call, or explicitly with Commands().Flush.
func (s *Scene) Commands() *Commands {
	return s.commands
}

// NewEntity creates an entity with no components. A slot freed by an earlier
// DestroyEntity is reused before the row table grows.
func (s *Scene) NewEntity() (EntityId, error) {
	if s.locks > 0 {
		return 0, eris.Wrap(ErrSceneLocked, "cannot create entity")
	}

	if n := len(s.free); n > 0 {
		index := s.free[n-1]
		s.free = s.free[:n-1]

		row := &s.rows[index]
		// The generation was already bumped when the slot was freed.
		row.id = NewEntityId(index, row.id.Generation())
		row.mask = ComponentMask{}
		s.live++
		return row.id, nil
	}

	if len(s.rows) >= s.config.MaxEntities {
		return 0, eris.Wrapf(ErrCapacityExceeded, "scene is full at %d rows", len(s.rows))
	}

	id := NewEntityId(uint32(len(s.rows)), 0)
	s.rows = append(s.rows, slot{id: id})
	s.live++
	return id, nil
}

// DestroyEntity releases every component of id and frees its slot. Destroying
// a stale or already destroyed id is refused with ErrEntityNotAlive and leaves
// the scene untouched.
func (s *Scene) DestroyEntity(id EntityId) error {
	if s.locks > 0 {
		return eris.Wrapf(ErrSceneLocked, "cannot destroy entity %s", id)
	}
	row, ok := s.resolve(id)
	if !ok {
		return eris.Wrapf(ErrEntityNotAlive, "cannot destroy entity %s", id)
	}

	s.destroyRow(row)
	return nil
}

func (s *Scene) destroyRow(row *slot) {
	index := int(row.id.Index())
	for cid := range row.mask.Ids() {
		pool := s.pools[cid]
		pool.release(index)
		pool.reset(index)
	}

	row.mask = ComponentMask{}
	s.live--

	gen := row.id.Generation()
	if gen == MaxGeneration {
		// Bumping would wrap to 0 and revive old handles, so the slot is never reused.
		row.id = NewEntityId(InvalidIndex, gen)
		s.retired++
		s.logger.Debug().Int("row", index).Msg("slot retired after its last generation")
		return
	}
	row.id = NewEntityId(InvalidIndex, gen+1)
	s.free = append(s.free, uint32(index))
}

// Clear destroys every live entity. Pools and the registry are kept.
func (s *Scene) Clear() error {
	if s.locks > 0 {
		return eris.Wrap(ErrSceneLocked, "cannot clear scene")
	}
	for i := range s.rows {
		if s.rows[i].live() {
			s.destroyRow(&s.rows[i])
		}
	}
	return nil
}

// Alive reports whether id names the current occupant of its slot.
func (s *Scene) Alive(id EntityId) bool {
	_, ok := s.resolve(id)
	return ok
}

// MaskOf returns the component mask of a live entity.
func (s *Scene) MaskOf(id EntityId) (ComponentMask, bool) {
	row, ok := s.resolve(id)
	if !ok {
		return ComponentMask{}, false
	}
	return row.mask, true
}

// Len returns the number of live entities.
func (s *Scene) Len() int {
	return s.live
}

// Rows returns the size of the row table, live or not.
func (s *Scene) Rows() int {
	return len(s.rows)
}

// MaxEntities returns the row ceiling of the scene.
func (s *Scene) MaxEntities() int {
	return s.config.MaxEntities
}

// ComponentsOf returns pointers to every component of a live entity, in component id order.
func (s *Scene) ComponentsOf(id EntityId) []any {
	row, ok := s.resolve(id)
	if !ok {
		return nil
	}

	out := make([]any, 0, row.mask.Count())
	for cid := range row.mask.Ids() {
		out = append(out, s.pools[cid].value(int(id.Index())))
	}
	return out
}

// GetComponent returns a pointer to the component of type compType on id, or
// nil. It is the untyped counterpart of Get for tools that work with reflect.Type.
func (s *Scene) GetComponent(id EntityId, compType reflect.Type) any {
	row, ok := s.resolve(id)
	if !ok {
		return nil
	}
	cid, ok := s.registry.ids.Get(typeKey(compType))
	if !ok || !row.mask.Has(cid) {
		return nil
	}
	return s.pools[cid].value(int(id.Index()))
}

// resolve returns the slot of id if id is its current occupant.
func (s *Scene) resolve(id EntityId) (*slot, bool) {
	index := id.Index()
	if index == InvalidIndex || int(index) >= len(s.rows) {
		return nil, false
	}
	row := &s.rows[index]
	if row.id != id {
		return nil, false
	}
	return row, true
}

func (s *Scene) pool(cid ComponentId) componentPool {
	if int(cid) >= len(s.pools) {
		return nil
	}
	return s.pools[cid]
}

func poolFor[T any](s *Scene, cid ComponentId) *genericComponentPool[T] {
	if p := s.pool(cid); p != nil {
		return p.(*genericComponentPool[T])
	}
	for int(cid) >= len(s.pools) {
		s.pools = append(s.pools, nil)
	}
	p := newComponentPool[T]()
	s.pools[cid] = p
	return p
}

func (s *Scene) lock() {
	s.locks++
}

func (s *Scene) unlock() {
	s.locks--
}

// Locked reports whether a view iteration is currently in progress.
func (s *Scene) Locked() bool {
	return s.locks > 0
}

// ComponentIdOf returns the id of T in the scene's registry, registering it on first use.
func ComponentIdOf[T any](s *Scene) ComponentId {
	return RegisterComponent[T](s.registry)
}

// Assign gives id a zero-valued T and returns a pointer to it. The pointer
// stays valid until the component is removed or the entity destroyed. If id
// already has a T, the old value is released and replaced.
func Assign[T any](s *Scene, id EntityId) (*T, error) {
	if s.locks > 0 {
		return nil, eris.Wrapf(ErrSceneLocked, "cannot assign %s to %s", reflect.TypeFor[T](), id)
	}
	row, ok := s.resolve(id)
	if !ok {
		return nil, eris.Wrapf(ErrEntityNotAlive, "cannot assign %s to %s", reflect.TypeFor[T](), id)
	}
	cid, err := TryRegisterComponent[T](s.registry)
	if err != nil {
		return nil, err
	}

	index := int(id.Index())
	pool := poolFor[T](s, cid)
	if row.mask.Has(cid) {
		pool.release(index)
	}

	ptr := pool.at(index)
	var zero T
	*ptr = zero
	row.mask.Set(cid)
	return ptr, nil
}

// Set assigns T to id and stores value in it.
func Set[T any](s *Scene, id EntityId, value T) (*T, error) {
	ptr, err := Assign[T](s, id)
	if err != nil {
		return nil, err
	}
	*ptr = value
	return ptr, nil
}

// Get returns the T of id. It reports false for stale ids and for entities without a T.
func Get[T any](s *Scene, id EntityId) (*T, bool) {
	row, ok := s.resolve(id)
	if !ok {
		return nil, false
	}
	cid, ok := LookupComponent[T](s.registry)
	if !ok || !row.mask.Has(cid) {
		return nil, false
	}
	return s.pools[cid].(*genericComponentPool[T]).at(int(id.Index())), true
}

// Has reports whether id is alive and has a T.
func Has[T any](s *Scene, id EntityId) bool {
	_, ok := Get[T](s, id)
	return ok
}

// Remove releases and drops the T of id. Removing a component the entity does
// not have is a no-op; a stale id yields ErrEntityNotAlive.
func Remove[T any](s *Scene, id EntityId) error {
	if s.locks > 0 {
		return eris.Wrapf(ErrSceneLocked, "cannot remove %s from %s", reflect.TypeFor[T](), id)
	}
	row, ok := s.resolve(id)
	if !ok {
		return eris.Wrapf(ErrEntityNotAlive, "cannot remove %s from %s", reflect.TypeFor[T](), id)
	}
	cid, ok := LookupComponent[T](s.registry)
	if !ok || !row.mask.Has(cid) {
		return nil
	}

	index := int(id.Index())
	pool := s.pools[cid]
	pool.release(index)
	pool.reset(index)
	row.mask.Unset(cid)
	return nil
}
