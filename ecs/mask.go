package ecs

import (
	"iter"
	"math/bits"
)

// MaxComponents is the number of distinct component types a single registry can hold.
const MaxComponents = maskWords * 64

const maskWords = 4

// ComponentMask is a set of component ids, one bit per registered component type.
type ComponentMask [maskWords]uint64

// NewComponentMask builds a mask with the given component ids set.
func NewComponentMask(ids ...ComponentId) ComponentMask {
	var m ComponentMask
	for _, id := range ids {
		m.Set(id)
	}
	return m
}

// Set enables the bit for id.
func (m *ComponentMask) Set(id ComponentId) {
	m[id>>6] |= 1 << (id & 63)
}

// Unset clears the bit for id.
func (m *ComponentMask) Unset(id ComponentId) {
	m[id>>6] &^= 1 << (id & 63)
}

// Has checks if the bit for id is set.
func (m ComponentMask) Has(id ComponentId) bool {
	return m[id>>6]&(1<<(id&63)) != 0
}

// Contains checks if every bit set in sub is also set in m.
func (m ComponentMask) Contains(sub ComponentMask) bool {
	return m[0]&sub[0] == sub[0] &&
		m[1]&sub[1] == sub[1] &&
		m[2]&sub[2] == sub[2] &&
		m[3]&sub[3] == sub[3]
}

// IsEmpty reports whether no bit is set.
func (m ComponentMask) IsEmpty() bool {
	return m[0]|m[1]|m[2]|m[3] == 0
}

// Or returns the union of m and other.
func (m ComponentMask) Or(other ComponentMask) ComponentMask {
	var out ComponentMask
	for i := range out {
		out[i] = m[i] | other[i]
	}
	return out
}

// Count returns the number of set bits.
func (m ComponentMask) Count() int {
	n := 0
	for _, w := range m {
		n += bits.OnesCount64(w)
	}
	return n
}

// Ids yields the set component ids in ascending order.
func (m ComponentMask) Ids() iter.Seq[ComponentId] {
	return func(yield func(ComponentId) bool) {
		for wordIdx, word := range m {
			for word != 0 {
				bit := bits.TrailingZeros64(word)
				if !yield(ComponentId(wordIdx*64 + bit)) {
					return
				}
				word &^= 1 << bit
			}
		}
	}
}
