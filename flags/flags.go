// Package flags implements fixed-width bit sets indexed by protocol-defined
// bit positions.
package flags

import (
	"math/bits"
	"strings"
)

// Bit is a bit position inside a flag container of Bits() width.
// Positions are numbered from the least significant bit, so bit 7 of an
// 8-bit container is the MSB on the wire.
type Bit interface {
	~uint8
	Bits() int
	String() string
}

// Flags is a set of bits of type E.
type Flags[E Bit] struct {
	bits uint64
}

// New returns a set with the given bits raised.
func New[E Bit](set ...E) Flags[E] {
	var f Flags[E]
	for _, e := range set {
		f.Set(e)
	}
	return f
}

// FromUint builds a set from its integer form. Bits above the container
// width are dropped.
func FromUint[E Bit](v uint64) Flags[E] {
	var f Flags[E]
	f.bits = v & f.mask()
	return f
}

func (f Flags[E]) width() int {
	var e E
	return e.Bits()
}

func (f Flags[E]) mask() uint64 {
	n := f.width()
	if n >= 64 {
		return ^uint64(0)
	}
	return 1<<uint(n) - 1
}

// Set raises bit e.
func (f *Flags[E]) Set(e E) *Flags[E] {
	f.bits |= 1 << uint(e)
	return f
}

// SetTo raises or clears bit e.
func (f *Flags[E]) SetTo(e E, v bool) *Flags[E] {
	if v {
		return f.Set(e)
	}
	return f.Reset(e)
}

// Reset clears bit e.
func (f *Flags[E]) Reset(e E) *Flags[E] {
	f.bits &^= 1 << uint(e)
	return f
}

// Clear clears every bit.
func (f *Flags[E]) Clear() *Flags[E] {
	f.bits = 0
	return f
}

// Test reports whether bit e is raised.
func (f Flags[E]) Test(e E) bool {
	return f.bits&(1<<uint(e)) != 0
}

func (f Flags[E]) Any() bool  { return f.bits != 0 }
func (f Flags[E]) None() bool { return f.bits == 0 }
func (f Flags[E]) All() bool  { return f.bits == f.mask() }

// Count returns the number of raised bits.
func (f Flags[E]) Count() int {
	return bits.OnesCount64(f.bits)
}

func (f Flags[E]) Or(o Flags[E]) Flags[E]  { return Flags[E]{bits: f.bits | o.bits} }
func (f Flags[E]) And(o Flags[E]) Flags[E] { return Flags[E]{bits: f.bits & o.bits} }
func (f Flags[E]) Xor(o Flags[E]) Flags[E] { return Flags[E]{bits: f.bits ^ o.bits} }

// Uint64 returns the integer form of the set.
func (f Flags[E]) Uint64() uint64 {
	return f.bits
}

// Width returns the container width in bits.
func (f Flags[E]) Width() int {
	return f.width()
}

// EncodedWidth returns the number of bytes the set occupies on the wire:
// the smallest of 1, 2, 4 or 8 that holds Width() bits.
func (f Flags[E]) EncodedWidth() int {
	switch n := f.width(); {
	case n <= 8:
		return 1
	case n <= 16:
		return 2
	case n <= 32:
		return 4
	default:
		return 8
	}
}

// String lists the raised bits from the most significant down, joined by '|'.
func (f Flags[E]) String() string {
	if f.bits == 0 {
		return "0"
	}
	var names []string
	for i := f.width() - 1; i >= 0; i-- {
		if f.bits&(1<<uint(i)) != 0 {
			names = append(names, E(i).String())
		}
	}
	return strings.Join(names, "|")
}
