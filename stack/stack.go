// Package stack implements the 16 level return address stack of a Chip-8
// interpreter. Like the hardware it never faults: pushing onto a full stack
// overwrites the top entry and popping an empty stack returns 0.
package stack

// Depth is the number of return addresses the stack holds.
const Depth = 16

// Stack is a fixed capacity LIFO of 16 bit addresses.
type Stack struct {
	slots [Depth]uint16
	sp    int // Index of the top entry. -1 when empty.
}

// New returns an empty stack.
func New() *Stack {
	return &Stack{sp: -1}
}

// Push stores addr on top of the stack. Once all Depth slots are used the top
// slot is overwritten instead.
func (s *Stack) Push(addr uint16) {
	if s.sp < Depth-1 {
		s.sp++
	}
	s.slots[s.sp] = addr
}

// Pop removes and returns the top address. An empty stack returns 0 and is left alone.
func (s *Stack) Pop() uint16 {
	if s.sp < 0 {
		return 0
	}
	v := s.slots[s.sp]
	s.sp--
	return v
}

// Len returns the number of entries on the stack.
func (s *Stack) Len() int {
	return s.sp + 1
}

// Empty is true when nothing is on the stack.
func (s *Stack) Empty() bool {
	return s.sp < 0
}

// Contents returns a copy of the entries ordered bottom to top.
func (s *Stack) Contents() []uint16 {
	out := make([]uint16, s.Len())
	copy(out, s.slots[:s.Len()])
	return out
}

// Reset empties the stack.
func (s *Stack) Reset() {
	s.sp = -1
	for i := range s.slots {
		s.slots[i] = 0
	}
}
