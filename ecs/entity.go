package ecs

import "fmt"

// InvalidIndex is the slot index stored for a row whose occupant has been destroyed.
const InvalidIndex uint32 = 0xFFFFFFFF

// MaxGeneration is the last generation a slot can hold. A slot destroyed at
// this generation is retired instead of being reused.
const MaxGeneration uint32 = 0xFFFFFFFF

// EntityId encodes both the generation (upper 32 bits) and the slot index (lower 32 bits)
type EntityId uint64

// NewEntityId creates an EntityId from a slot index and generation
func NewEntityId(index uint32, generation uint32) EntityId {
	return EntityId(uint64(generation)<<32 | uint64(index))
}

// Index extracts the slot index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Generation extracts the generation from the entity ID
func (e EntityId) Generation() uint32 {
	return uint32(e >> 32)
}

// IsValid reports whether the id refers to a slot at all. It says nothing about
// whether the slot is still occupied by this id; use Scene.Alive for that.
func (e EntityId) IsValid() bool {
	return e.Index() != InvalidIndex
}

func (e EntityId) String() string {
	if !e.IsValid() {
		return fmt.Sprintf("invalid(gen:%d)", e.Generation())
	}
	return fmt.Sprintf("%d(gen:%d)", e.Index(), e.Generation())
}

// slot is one row of the scene's entity table.
type slot struct {
	id   EntityId
	mask ComponentMask
}

func (s *slot) live() bool {
	return s.id.IsValid()
}
