// Package cpu defines the Chip-8 interpreter and provides
// the methods needed to run it and interface with it
// for emulation.
package cpu

import (
	"errors"
	"fmt"
	"log"

	"github.com/jmchacon/chip8/display"
	"github.com/jmchacon/chip8/io"
	"github.com/jmchacon/chip8/memory"
	"github.com/jmchacon/chip8/register"
	"github.com/jmchacon/chip8/stack"
)

const (
	// PROGRAM_START is where programs are loaded and execution begins by default.
	PROGRAM_START = memory.PROGRAM_START

	// INSTRUCTION_SIZE is the number of bytes in an opcode.
	INSTRUCTION_SIZE = 2

	// ADDRESS_SPACE bounds computed jump targets (JP V0, addr).
	ADDRESS_SPACE = 0x1000

	kMASK_ADDR = uint16(0x0FFF)
	kMASK_BYTE = uint16(0x00FF)
	kMASK_X    = uint16(0x0F00)
	kMASK_Y    = uint16(0x00F0)
)

// Chip is a complete Chip-8 machine: registers, RAM, call stack and display.
type Chip struct {
	reg     *register.Bank
	ram     *memory.RAM
	stack   *stack.Stack
	display *display.Display
	rand    io.Port8 // Source for RND.
	debug   bool     // If true every executed instruction is logged.
	halted  bool     // If stopped due to an unknown opcode.
	haltErr error    // Error returned on every Tick while halted.
}

// ChipDef defines the pieces needed to setup a Chip.
type ChipDef struct {
	// Rand is the source of random bytes for the RND instruction. Must be non-nil.
	// Use io.NewRandom for a real generator or io.Sequence for a fixed one.
	Rand io.Port8
	// Debug if true will log every instruction as it executes.
	Debug bool
}

// A few custom error types to distinguish why the interpreter stopped

// UnknownOpcode represents an opcode with no matching instruction.
type UnknownOpcode struct {
	Opcode uint16
	PC     uint16 // Address the opcode was fetched from.
}

// Error implements the interface for error types.
func (e UnknownOpcode) Error() string {
	return fmt.Sprintf("unknown opcode 0x%.4X at PC 0x%.4X", e.Opcode, e.PC)
}

// Init will create a new Chip and return it in powered on state.
func Init(def *ChipDef) (*Chip, error) {
	if def == nil {
		return nil, errors.New("def must be non-nil")
	}
	if def.Rand == nil {
		return nil, errors.New("Rand must be non-nil in def")
	}
	c := &Chip{
		reg:     register.NewBank(),
		ram:     memory.New(),
		stack:   stack.New(),
		display: display.New(),
		rand:    def.Rand,
		debug:   def.Debug,
	}
	c.PowerOn()
	return c, nil
}

// PowerOn resets the machine. RAM, registers, stack and display are all zeroed
// and any halt state is cleared.
func (c *Chip) PowerOn() {
	c.ram.PowerOn()
	c.reg.Reset()
	c.stack.Reset()
	c.display.Clear()
	c.halted = false
	c.haltErr = nil
}

// Load copies rom into RAM at start and points PC at it with an empty call stack.
// If the rom doesn't fit a memory.ProgramTooLarge is returned and nothing changes.
func (c *Chip) Load(rom []uint8, start uint16) error {
	if err := c.ram.Load(rom, start); err != nil {
		return fmt.Errorf("can't load program: %w", err)
	}
	c.reg.PC.Set(int(start))
	c.stack.Reset()
	c.halted = false
	c.haltErr = nil
	return nil
}

// LoadProgram is Load at PROGRAM_START.
func (c *Chip) LoadProgram(rom []uint8) error {
	return c.Load(rom, PROGRAM_START)
}

// Tick runs one fetch/decode/execute cycle. An UnknownOpcode is returned if
// nothing matches the fetched opcode. In that case no state is changed and the
// chip is halted: every later Tick returns the same error until PowerOn or Load.
func (c *Chip) Tick() error {
	// Fast path if halted. The PC won't advance. i.e. we just keep returning the same error.
	if c.halted {
		return c.haltErr
	}
	pc := c.reg.PC.Get()
	op := c.ram.ReadWord(pc)
	ins := decode(op)
	if ins == nil {
		c.halted = true
		c.haltErr = UnknownOpcode{Opcode: op, PC: pc}
		return c.haltErr
	}
	if c.debug {
		log.Printf("%.4X: %.4X %-4s %s", pc, op, ins.name, c.reg)
	}
	if ins.exec(c, op) == kNEXT {
		c.reg.PC.Increment(INSTRUCTION_SIZE)
	}
	return nil
}

// Halted is true once an unknown opcode has stopped the chip.
func (c *Chip) Halted() bool {
	return c.halted
}

// TickTimers counts each non-zero timer down by one. Nothing in the chip calls
// this, the driver is expected to at 60Hz.
func (c *Chip) TickTimers() {
	if c.reg.DT.Get() > 0 {
		c.reg.DT.Decrement()
	}
	if c.reg.ST.Get() > 0 {
		c.reg.ST.Decrement()
	}
}

// Registers returns the register bank. Callers should treat it as read only.
func (c *Chip) Registers() *register.Bank {
	return c.reg
}

// PC returns the program counter.
func (c *Chip) PC() uint16 {
	return c.reg.PC.Get()
}

// V returns general purpose register x (0-F).
func (c *Chip) V(x int) uint8 {
	return c.reg.V[x&0xF].Get8()
}

// I returns the index register.
func (c *Chip) I() uint16 {
	return c.reg.I.Get()
}

// DelayTimer returns the delay timer.
func (c *Chip) DelayTimer() uint8 {
	return c.reg.DT.Get8()
}

// SetDelayTimer sets the delay timer.
func (c *Chip) SetDelayTimer(v uint8) {
	c.reg.DT.Set(int(v))
}

// SoundTimer returns the sound timer.
func (c *Chip) SoundTimer() uint8 {
	return c.reg.ST.Get8()
}

// SetSoundTimer sets the sound timer.
func (c *Chip) SetSoundTimer(v uint8) {
	c.reg.ST.Set(int(v))
}

// Memory returns the RAM backing the chip.
func (c *Chip) Memory() memory.Bank {
	return c.ram
}

// Stack returns the call stack contents ordered bottom to top.
func (c *Chip) Stack() []uint16 {
	return c.stack.Contents()
}

// Display returns the display.
func (c *Chip) Display() *display.Display {
	return c.display
}

// String returns a one line summary of the chip state.
func (c *Chip) String() string {
	return fmt.Sprintf("%s stack: %.4X halted: %t", c.reg, c.stack.Contents(), c.halted)
}
