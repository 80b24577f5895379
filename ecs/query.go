package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// Query is a typed view over entities with a specific combination of components.
// The type T should be a struct with embedded or named pointer fields, one per
// component type. Embedded fields are always required; named fields can be marked
// optional with the `ecs:"optional"` struct tag and are nil when absent. A field of
// type EntityId receives the id of the entity.
//
// The zero value is usable once Init has been called; the Scheduler does this for
// Query fields of registered systems.
type Query[T any] struct {
	scene       *Scene
	ids         []ComponentId
	optional    []bool
	fieldOffset []uintptr
	idOffsets   []uintptr
	required    ComponentMask
}

// NewQuery creates a query for the given struct type. It panics if T is not a
// struct of component pointers.
func NewQuery[T any](s *Scene) *Query[T] {
	q := &Query[T]{}
	q.Init(s)
	return q
}

// Init binds the query to a scene, registering its component types.
func (q *Query[T]) Init(s *Scene) {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("Query type parameter must be a struct")
	}

	q.scene = s
	q.ids = q.ids[:0]
	q.optional = q.optional[:0]
	q.fieldOffset = q.fieldOffset[:0]
	q.idOffsets = q.idOffsets[:0]
	q.required = ComponentMask{}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldType := field.Type

		if fieldType == entityIdType {
			q.idOffsets = append(q.idOffsets, field.Offset)
			continue
		}
		if fieldType.Kind() != reflect.Ptr {
			panic("Query struct fields must be pointer types or EntityId")
		}

		cid, err := s.registry.register(fieldType.Elem())
		if err != nil {
			panic(err)
		}

		// Embedded fields (field.Anonymous) are always required
		isOptional := false
		if !field.Anonymous {
			if tag := field.Tag.Get("ecs"); tag != "" {
				if tag != "optional" {
					panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
				}
				isOptional = true
			}
		}
		if !isOptional {
			q.required.Set(cid)
		}

		q.ids = append(q.ids, cid)
		q.optional = append(q.optional, isOptional)
		q.fieldOffset = append(q.fieldOffset, field.Offset)
	}
}

// View returns the SceneView of the query's required components.
func (q *Query[T]) View() *SceneView {
	return &SceneView{scene: q.scene, mask: q.required}
}

// Fill populates the provided struct pointer with component data for the given entity.
// Returns false if the entity is stale or missing any required component.
func (q *Query[T]) Fill(id EntityId, ptr *T) bool {
	row, ok := q.scene.resolve(id)
	if !ok || !row.mask.Contains(q.required) {
		return false
	}
	q.populate(unsafe.Pointer(ptr), row)
	return true
}

// Get returns a populated struct for the given entity, or nil if it does not match.
func (q *Query[T]) Get(id EntityId) *T {
	var result T
	if !q.Fill(id, &result) {
		return nil
	}
	return &result
}

func (q *Query[T]) populate(structPtr unsafe.Pointer, row *slot) {
	index := int(row.id.Index())
	for i, cid := range q.ids {
		fieldPtr := unsafe.Add(structPtr, q.fieldOffset[i])
		if row.mask.Has(cid) {
			*(*unsafe.Pointer)(fieldPtr) = q.scene.pools[cid].ptr(index)
		} else {
			*(*unsafe.Pointer)(fieldPtr) = nil
		}
	}
	for _, off := range q.idOffsets {
		*(*EntityId)(unsafe.Add(structPtr, off)) = row.id
	}
}

// Iter returns an iterator over all matching entities and their populated structs.
// The scene is locked against structural mutation until the loop finishes.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	view := q.View()
	return func(yield func(EntityId, T) bool) {
		var result T
		resultPtr := unsafe.Pointer(&result)
		for id := range view.Iter() {
			q.populate(resultPtr, &q.scene.rows[id.Index()])
			if !yield(id, result) {
				return
			}
		}
	}
}

// Values returns an iterator over just the populated structs.
func (q *Query[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range q.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Count returns the number of matching entities.
func (q *Query[T]) Count() int {
	return q.View().Count()
}
