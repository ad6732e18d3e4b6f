// Package io defines the basic interfaces for working
// with external inputs to a Chip-8 interpreter. The core
// never generates its own values (such as random numbers),
// instead it reads them from a port supplied by the caller
// so tests can substitute a fixed sequence.
package io

import (
	"math/rand"
)

// Port8 defines an 8 bit input port
type Port8 interface {
	// Input will return the current value being set on the given input port.
	Input() uint8
}

var _ = Port8(&Random{})

// Random is a Port8 which returns a uniformly distributed byte on every read.
type Random struct {
	r *rand.Rand
}

// NewRandom returns a Random seeded with seed. The same seed always produces the same sequence.
func NewRandom(seed int64) *Random {
	return &Random{
		r: rand.New(rand.NewSource(seed)),
	}
}

// Input implements the interface for io.Port8.
func (r *Random) Input() uint8 {
	return uint8(r.r.Intn(256))
}

// Sequence is a Port8 which returns the given values in order and then repeats them.
// An empty Sequence always returns 0.
type Sequence struct {
	Values []uint8
	pos    int
}

// Input implements the interface for io.Port8.
func (s *Sequence) Input() uint8 {
	if len(s.Values) == 0 {
		return 0x00
	}
	v := s.Values[s.pos%len(s.Values)]
	s.pos++
	return v
}
