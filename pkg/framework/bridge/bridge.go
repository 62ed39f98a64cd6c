// Package bridge carries control values from the control context to the
// render context without locks.
//
// Each slot is a 32-bit atomic word holding the IEEE-754 bits of a float32.
// Writers and readers never block, and a reader sees either the previous or
// the new value of a slot, never a torn mix of the two. Go's sync/atomic
// operations are sequentially consistent, which subsumes the release store
// on Set and the acquire load on Get.
//
// Each slot has at most one writer (the host's automation path) and one
// reader (the render path); concurrent writers to the same slot resolve as
// last-write-wins.
package bridge

import (
	"math"
	"sync/atomic"
)

// Bridge is a fixed-size vector of atomic float cells.
type Bridge struct {
	cells []atomic.Uint32
}

// New returns a bridge with count slots, all zero.
func New(count int) *Bridge {
	if count < 0 {
		count = 0
	}
	return &Bridge{cells: make([]atomic.Uint32, count)}
}

// Len returns the number of slots.
func (b *Bridge) Len() int {
	return len(b.cells)
}

// Set stores v in slot i. Out-of-range indices are ignored.
func (b *Bridge) Set(i int, v float32) {
	if i < 0 || i >= len(b.cells) {
		return
	}
	b.cells[i].Store(math.Float32bits(v))
}

// Get loads slot i. Out-of-range indices read as 0.
func (b *Bridge) Get(i int) float32 {
	if i < 0 || i >= len(b.cells) {
		return 0
	}
	return math.Float32frombits(b.cells[i].Load())
}

// Publish stores every value of src into the matching slot. Extra values
// on either side are left alone.
func (b *Bridge) Publish(src []float32) {
	n := min(len(src), len(b.cells))
	for i := 0; i < n; i++ {
		b.cells[i].Store(math.Float32bits(src[i]))
	}
}

// Latch copies the current slot values into dst, once per render block.
// It does not allocate.
func (b *Bridge) Latch(dst []float32) {
	n := min(len(dst), len(b.cells))
	for i := 0; i < n; i++ {
		dst[i] = math.Float32frombits(b.cells[i].Load())
	}
}
