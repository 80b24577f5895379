package ecs

import (
	"reflect"
	"unsafe"
)

const (
	poolBlockSize = 64
)

// Releaser is implemented by components that own something outside the scene,
// such as a handle into a graphics backend. Release is called on the stored
// value before it is removed or its entity is destroyed.
type Releaser interface {
	Release()
}

// componentPool is the type-erased view of a genericComponentPool.
type componentPool interface {
	ptr(row int) unsafe.Pointer
	value(row int) any
	release(row int)
	reset(row int)
	elemType() reflect.Type
	blockCount() int
}

// genericComponentPool stores components of a specific type `T` in blocks,
// indexed by entity row. Blocks are allocated individually and never move, so
// a pointer handed out for a row stays valid for the lifetime of the pool.
type genericComponentPool[T any] struct {
	blocks     []*[poolBlockSize]T
	releasable bool
}

func newComponentPool[T any]() *genericComponentPool[T] {
	_, releasable := any((*T)(nil)).(Releaser)
	return &genericComponentPool[T]{
		releasable: releasable,
	}
}

// at returns the address of row, allocating blocks up to it when needed.
func (p *genericComponentPool[T]) at(row int) *T {
	blockIdx := row / poolBlockSize
	for blockIdx >= len(p.blocks) {
		p.blocks = append(p.blocks, new([poolBlockSize]T))
	}
	return &p.blocks[blockIdx][row%poolBlockSize]
}

// lookup returns the address of row or nil if no block covers it.
func (p *genericComponentPool[T]) lookup(row int) *T {
	if row < 0 {
		return nil
	}
	blockIdx := row / poolBlockSize
	if blockIdx >= len(p.blocks) {
		return nil
	}
	return &p.blocks[blockIdx][row%poolBlockSize]
}

func (p *genericComponentPool[T]) ptr(row int) unsafe.Pointer {
	return unsafe.Pointer(p.lookup(row))
}

func (p *genericComponentPool[T]) value(row int) any {
	if v := p.lookup(row); v != nil {
		return v
	}
	return nil
}

func (p *genericComponentPool[T]) release(row int) {
	if !p.releasable {
		return
	}
	if v := p.lookup(row); v != nil {
		any(v).(Releaser).Release()
	}
}

// reset zeroes the row so the pool does not keep its references alive.
func (p *genericComponentPool[T]) reset(row int) {
	if v := p.lookup(row); v != nil {
		var zero T
		*v = zero
	}
}

func (p *genericComponentPool[T]) elemType() reflect.Type {
	return reflect.TypeFor[T]()
}

func (p *genericComponentPool[T]) blockCount() int {
	return len(p.blocks)
}
