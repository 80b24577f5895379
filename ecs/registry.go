package ecs

import (
	"reflect"
	"sort"

	"github.com/kamstrup/intmap"
	"github.com/rotisserie/eris"
)

// ComponentId is the small integer token a registry hands out for a component type.
type ComponentId uint16

// ComponentInfo describes one registered component type.
type ComponentInfo struct {
	Id   ComponentId
	Type reflect.Type
	Size uintptr
}

// Name returns the type name used by tools and loaders.
func (c ComponentInfo) Name() string {
	return c.Type.String()
}

// ComponentRegistry assigns component types their ids. Ids are handed out
// monotonically in first-use order and never change for the registry's lifetime.
// Each Scene owns one by default; scenes may share a registry via WithRegistry
// so that ids line up across them.
type ComponentRegistry struct {
	ids   *intmap.Map[uintptr, ComponentId]
	infos []ComponentInfo
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		ids:   intmap.New[uintptr, ComponentId](64),
		infos: make([]ComponentInfo, 0, 64),
	}
}

// RegisterComponent registers T with the registry and returns its id. Registering
// an already known type returns the existing id. It panics when the registry is full.
func RegisterComponent[T any](r *ComponentRegistry) ComponentId {
	id, err := TryRegisterComponent[T](r)
	if err != nil {
		panic(err)
	}
	return id
}

// TryRegisterComponent is RegisterComponent returning ErrTooManyComponents instead of panicking.
func TryRegisterComponent[T any](r *ComponentRegistry) (ComponentId, error) {
	return r.register(reflect.TypeFor[T]())
}

// LookupComponent returns the id of T without registering it.
func LookupComponent[T any](r *ComponentRegistry) (ComponentId, bool) {
	return r.ids.Get(typeKey(reflect.TypeFor[T]()))
}

// RegisterType is the reflect.Type counterpart of TryRegisterComponent, used by
// loaders and tools that only know a component's type at runtime.
func (r *ComponentRegistry) RegisterType(t reflect.Type) (ComponentId, error) {
	return r.register(t)
}

// LookupType returns the id of t without registering it.
func (r *ComponentRegistry) LookupType(t reflect.Type) (ComponentId, bool) {
	return r.ids.Get(typeKey(t))
}

func (r *ComponentRegistry) register(t reflect.Type) (ComponentId, error) {
	key := typeKey(t)
	if id, ok := r.ids.Get(key); ok {
		return id, nil
	}
	if len(r.infos) >= MaxComponents {
		return 0, eris.Wrapf(ErrTooManyComponents, "cannot register %s: limit is %d", t, MaxComponents)
	}

	id := ComponentId(len(r.infos))
	r.ids.Put(key, id)
	r.infos = append(r.infos, ComponentInfo{
		Id:   id,
		Type: t,
		Size: t.Size(),
	})
	return id, nil
}

// Len returns the number of registered component types.
func (r *ComponentRegistry) Len() int {
	return len(r.infos)
}

// Info returns the description of id.
func (r *ComponentRegistry) Info(id ComponentId) (ComponentInfo, bool) {
	if int(id) >= len(r.infos) {
		return ComponentInfo{}, false
	}
	return r.infos[id], true
}

// Components returns all registered component types in id order.
func (r *ComponentRegistry) Components() []ComponentInfo {
	out := make([]ComponentInfo, len(r.infos))
	copy(out, r.infos)
	return out
}

// ByName finds a component id by its type name (reflect.Type.String()).
func (r *ComponentRegistry) ByName(name string) (ComponentId, bool) {
	for _, info := range r.infos {
		if info.Name() == name {
			return info.Id, true
		}
	}
	return 0, false
}

// Names returns the registered type names sorted alphabetically.
func (r *ComponentRegistry) Names() []string {
	types := make([]reflect.Type, len(r.infos))
	for i, info := range r.infos {
		types[i] = info.Type
	}
	sort.Sort(byTypeName(types))

	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return names
}

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }
