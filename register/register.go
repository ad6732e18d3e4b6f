// Package register implements the fixed width registers of a Chip-8
// interpreter. Registers never fault: every write is reduced modulo
// 2^width so a register can't hold an out of range value. Any carry,
// borrow or shift flag has to be computed by the instruction itself.
package register

import (
	"fmt"
)

// Width is an enumeration of the valid register widths.
type Width int

const (
	WIDTH_UNIMPLEMENTED Width = iota // Start of valid width enumerations.
	WIDTH_8                          // 8 bit register (V0-VF, timers).
	WIDTH_16                         // 16 bit register (I, PC).
	WIDTH_MAX                        // End of width enumerations.
)

// Count is the number of general purpose V registers.
const Count = 16

// VF is the index of the flags register.
const VF = 0xF

// Bits returns the number of bits for the width.
func (w Width) Bits() int {
	switch w {
	case WIDTH_8:
		return 8
	case WIDTH_16:
		return 16
	}
	return 0
}

// Register holds a single value of a fixed bit width.
type Register struct {
	width Width
	mod   int
	value uint16
}

// Init returns a zeroed register of the given width.
func Init(w Width) (*Register, error) {
	if w <= WIDTH_UNIMPLEMENTED || w >= WIDTH_MAX {
		return nil, fmt.Errorf("register width %d is invalid", w)
	}
	return &Register{
		width: w,
		mod:   1 << uint(w.Bits()),
	}, nil
}

// MustInit is Init for widths known to be valid. It panics otherwise.
func MustInit(w Width) *Register {
	r, err := Init(w)
	if err != nil {
		panic(err)
	}
	return r
}

// Width returns the width the register was created with.
func (r *Register) Width() Width {
	return r.width
}

// Set stores v modulo 2^width. Negative values wrap as well so Set(-1)
// on an 8 bit register stores 0xFF.
func (r *Register) Set(v int) {
	v %= r.mod
	if v < 0 {
		v += r.mod
	}
	r.value = uint16(v)
}

// Get returns the current value.
func (r *Register) Get() uint16 {
	return r.value
}

// Get8 returns the current value truncated to 8 bits.
func (r *Register) Get8() uint8 {
	return uint8(r.value)
}

// Increment adds by with the same wraparound as Set.
func (r *Register) Increment(by int) {
	r.Set(int(r.value) + by)
}

// Decrement subtracts one with the same wraparound as Set.
func (r *Register) Decrement() {
	r.Increment(-1)
}

// String implements fmt.Stringer.
func (r *Register) String() string {
	if r.width == WIDTH_16 {
		return fmt.Sprintf("%.4X", r.value)
	}
	return fmt.Sprintf("%.2X", r.value)
}

// Bank is the complete register file of the interpreter.
type Bank struct {
	V  [Count]*Register // General purpose registers. VF doubles as the flags register.
	I  *Register        // Index register, generally a memory address.
	PC *Register        // Program counter.
	DT *Register        // Delay timer.
	ST *Register        // Sound timer.
}

// NewBank returns a bank with every register zeroed.
func NewBank() *Bank {
	b := &Bank{
		I:  MustInit(WIDTH_16),
		PC: MustInit(WIDTH_16),
		DT: MustInit(WIDTH_8),
		ST: MustInit(WIDTH_8),
	}
	for i := range b.V {
		b.V[i] = MustInit(WIDTH_8)
	}
	return b
}

// Reset zeroes every register.
func (b *Bank) Reset() {
	for _, r := range b.V {
		r.Set(0)
	}
	b.I.Set(0)
	b.PC.Set(0)
	b.DT.Set(0)
	b.ST.Set(0)
}

// String returns a single line summary of the bank suitable for debug output.
func (b *Bank) String() string {
	s := fmt.Sprintf("PC: %s I: %s DT: %s ST: %s", b.PC, b.I, b.DT, b.ST)
	for i, r := range b.V {
		s += fmt.Sprintf(" V%X: %s", i, r)
	}
	return s
}
