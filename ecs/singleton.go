package ecs

// Singleton provides efficient access to a single component instance
// that is not associated with any entity. Use this for global game state,
// configuration, or other singleton data.
type Singleton[T any] struct {
	scene *Scene
	ptr   *T
}

// NewSingleton creates a new Singleton accessor for the given scene.
// If initializer is provided and the singleton doesn't exist yet,
// it will be created with the initializer value. Otherwise, a zero value is used.
// This guarantees the singleton exists in the scene after the call.
func NewSingleton[T any](s *Scene, initializer ...T) *Singleton[T] {
	ptr, ok := lookupSingleton[T](s)
	if !ok {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		ptr = SetSingleton(s, value)
	}
	return &Singleton[T]{scene: s, ptr: ptr}
}

// SetSingleton stores value as the scene's T singleton, replacing any previous
// one, and returns a pointer to the stored value.
func SetSingleton[T any](s *Scene, value T) *T {
	cid := ComponentIdOf[T](s)
	if old, ok := s.singletons.Get(cid); ok {
		if r, ok := old.(Releaser); ok {
			r.Release()
		}
	}
	ptr := new(T)
	*ptr = value
	s.singletons.Put(cid, ptr)
	return ptr
}

// RemoveSingleton drops the scene's T singleton, releasing it if it implements Releaser.
func RemoveSingleton[T any](s *Scene) bool {
	cid, ok := LookupComponent[T](s.registry)
	if !ok {
		return false
	}
	old, ok := s.singletons.Get(cid)
	if !ok {
		return false
	}
	if r, ok := old.(Releaser); ok {
		r.Release()
	}
	s.singletons.Del(cid)
	return true
}

func lookupSingleton[T any](s *Scene) (*T, bool) {
	cid, ok := LookupComponent[T](s.registry)
	if !ok {
		return nil, false
	}
	v, ok := s.singletons.Get(cid)
	if !ok {
		return nil, false
	}
	return v.(*T), true
}

// Init initializes the Singleton with a scene reference.
// This is called automatically by the Scheduler during system registration.
func (s *Singleton[T]) Init(scene *Scene) {
	s.scene = scene
	s.ptr = nil
	s.updateCache()
}

// Get returns a pointer to the singleton component.
// Returns nil if the singleton has not been added to the scene.
func (s *Singleton[T]) Get() *T {
	s.updateCache()
	return s.ptr
}

// Exists returns true if the singleton component has been added to the scene
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

// updateCache refreshes the cached pointer from the scene
func (s *Singleton[T]) updateCache() {
	if s.scene == nil {
		return
	}
	if ptr, ok := lookupSingleton[T](s.scene); ok {
		s.ptr = ptr
	} else {
		s.ptr = nil
	}
}
