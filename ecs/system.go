package ecs

// System represents per-frame behavior that operates on a scene.
// OnStart is called once by InitSystems, OnUpdate once per UpdateSystems call.
// User-defined systems can include Query and Singleton fields, which are bound to
// the scene when the system is added, as well as custom state that persists between frames.
type System interface {
	OnStart(scene *Scene)
	OnUpdate(scene *Scene, dt float64)
}

// BaseSystem provides no-op lifecycle hooks; embed it to implement only what you need.
type BaseSystem struct{}

func (BaseSystem) OnStart(*Scene) {}

func (BaseSystem) OnUpdate(*Scene, float64) {}

// SystemFunc adapts an update function to the System interface.
type SystemFunc func(scene *Scene, dt float64)

func (f SystemFunc) OnStart(*Scene) {}

func (f SystemFunc) OnUpdate(scene *Scene, dt float64) {
	f(scene, dt)
}
