package ecs

import "iter"

//go:generate go run ../internal/gen -out view_generated.go -arity 4

// SceneView is a filter over the rows of a scene. It yields the live entities
// whose mask contains every requested component, or every live entity when
// no component was requested, in ascending row order.
//
// A view holds no buffered state: every Begin or Iter rescans the table.
// Entities created or destroyed while a manual ViewIterator is in use may or
// may not be observed; ranging over Iter locks the scene against that.
type SceneView struct {
	scene *Scene
	mask  ComponentMask
}

// NewSceneView creates a view matching entities that have all of ids.
func NewSceneView(s *Scene, ids ...ComponentId) *SceneView {
	return &SceneView{
		scene: s,
		mask:  NewComponentMask(ids...),
	}
}

// ViewOf creates a view over entities that have an A.
func ViewOf[A any](s *Scene) *SceneView {
	return NewSceneView(s, ComponentIdOf[A](s))
}

// Mask returns the required component mask.
func (v *SceneView) Mask() ComponentMask {
	return v.mask
}

// MatchesAll reports whether the view was built without component types.
func (v *SceneView) MatchesAll() bool {
	return v.mask.IsEmpty()
}

// Matches reports whether id is alive and has every component of the view.
func (v *SceneView) Matches(id EntityId) bool {
	row, ok := v.scene.resolve(id)
	return ok && row.mask.Contains(v.mask)
}

func (v *SceneView) seek(from int) int {
	rows := v.scene.rows
	for r := from; r < len(rows); r++ {
		if rows[r].live() && rows[r].mask.Contains(v.mask) {
			return r
		}
	}
	return len(rows)
}

// Begin returns an iterator on the first matching row, or End() if there is none.
func (v *SceneView) Begin() ViewIterator {
	return ViewIterator{view: v, row: v.seek(0)}
}

// End returns the sentinel iterator positioned one past the last row.
func (v *SceneView) End() ViewIterator {
	return ViewIterator{view: v, row: len(v.scene.rows)}
}

// Iter yields the matching entity ids. The scene is locked against structural
// mutation until the loop finishes.
func (v *SceneView) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		v.scene.lock()
		defer v.scene.unlock()

		for it := v.Begin(); !it.AtEnd(); it.Next() {
			if !yield(it.Entity()) {
				return
			}
		}
	}
}

// Count returns the number of matching entities.
func (v *SceneView) Count() int {
	n := 0
	for it := v.Begin(); !it.AtEnd(); it.Next() {
		n++
	}
	return n
}

// Collect returns the matching entity ids. Use it to mutate the scene based on
// a view without holding the iteration lock.
func (v *SceneView) Collect() []EntityId {
	out := make([]EntityId, 0)
	for it := v.Begin(); !it.AtEnd(); it.Next() {
		out = append(out, it.Entity())
	}
	return out
}

// ViewIterator is a forward cursor over a SceneView.
type ViewIterator struct {
	view *SceneView
	row  int
}

// Next advances to the next matching row, or to the end.
func (it *ViewIterator) Next() {
	it.row = it.view.seek(it.row + 1)
}

// AtEnd reports whether the iterator is past the last row.
func (it ViewIterator) AtEnd() bool {
	return it.row >= len(it.view.scene.rows)
}

// Row returns the row index the iterator is positioned on.
func (it ViewIterator) Row() int {
	return it.row
}

// Entity returns the id on the current row. At the end it returns an invalid id.
func (it ViewIterator) Entity() EntityId {
	if it.AtEnd() {
		return NewEntityId(InvalidIndex, 0)
	}
	return it.view.scene.rows[it.row].id
}

// Equal compares two iterators. Any two iterators at the end compare equal.
func (it ViewIterator) Equal(other ViewIterator) bool {
	if it.AtEnd() && other.AtEnd() {
		return true
	}
	return it.row == other.row
}
