// Package memory defines the basic interfaces for working
// with a Chip-8 memory map along with the flat RAM implementation
// every Chip-8 interpreter uses. The interpreter has no memory
// protection so every address is simply reduced into range.
package memory

import (
	"fmt"
)

const (
	// Size is the number of addressable bytes. Addresses wrap at this value.
	Size = 0xFFF

	// PROGRAM_START is the conventional load address for programs. Everything
	// below it was reserved for the interpreter itself on the COSMAC VIP.
	PROGRAM_START = uint16(0x200)
)

type Bank interface {
	// Read returns the data byte stored at addr.
	Read(addr uint16) uint8
	// Write updates addr with the new value.
	Write(addr uint16, val uint8)
	// ReadWord returns the big endian 16 bit value stored at addr and addr+1.
	ReadWord(addr uint16) uint16
	// WriteWord stores val big endian at addr and addr+1.
	WriteWord(addr uint16, val uint16)
	// PowerOn performs power on reset of the memory. This is implementation specific as to
	// whether it's randomized or preset to all zeros.
	PowerOn()
}

var _ = Bank(&RAM{})

// ProgramTooLarge is returned when a program doesn't fit at the requested load address.
type ProgramTooLarge struct {
	Start  uint16
	Length int
}

// Error implements the interface for error types.
func (e ProgramTooLarge) Error() string {
	return fmt.Sprintf("program of 0x%.4X bytes at 0x%.4X overflows memory of 0x%.4X bytes", e.Length, e.Start, Size)
}

// RAM is the flat byte array backing a Chip-8 machine.
type RAM struct {
	addr [Size]uint8
}

// New returns a zero filled RAM.
func New() *RAM {
	r := &RAM{}
	r.PowerOn()
	return r
}

func wrap(addr uint16) uint16 {
	return addr % Size
}

// Read implements the interface for memory.Bank.
func (r *RAM) Read(addr uint16) uint8 {
	return r.addr[wrap(addr)]
}

// Write implements the interface for memory.Bank.
func (r *RAM) Write(addr uint16, val uint8) {
	r.addr[wrap(addr)] = val
}

// ReadWord implements the interface for memory.Bank.
// The address of the low byte wraps independently so a read at the last
// address picks up the low byte from address 0.
func (r *RAM) ReadWord(addr uint16) uint16 {
	a := wrap(addr)
	return (uint16(r.addr[a]) << 8) | uint16(r.addr[wrap(a+1)])
}

// WriteWord implements the interface for memory.Bank.
func (r *RAM) WriteWord(addr uint16, val uint16) {
	a := wrap(addr)
	r.addr[a] = uint8(val >> 8)
	r.addr[wrap(a+1)] = uint8(val & 0xFF)
}

// PowerOn implements the interface for memory.Bank. RAM is cleared to zero.
func (r *RAM) PowerOn() {
	for i := range r.addr {
		r.addr[i] = 0x00
	}
}

// Load copies data into RAM starting at start. If it won't fit nothing is written
// and ProgramTooLarge is returned. Programs are never truncated.
func (r *RAM) Load(data []uint8, start uint16) error {
	if int(start)+len(data) > Size {
		return ProgramTooLarge{Start: start, Length: len(data)}
	}
	copy(r.addr[start:], data)
	return nil
}

// Dump returns a copy of the entire RAM contents.
func (r *RAM) Dump() []uint8 {
	out := make([]uint8, Size)
	copy(out, r.addr[:])
	return out
}
