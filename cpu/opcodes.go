package cpu

import (
	"github.com/jmchacon/chip8/register"
)

// pcAction tells Tick what to do with PC after an instruction runs.
type pcAction int

const (
	kNEXT pcAction = iota // Sequential instruction, PC advances by one instruction.
	kSET                  // Control transfer, the instruction already set PC.
)

const (
	kMASK_ALL  = uint16(0xFFFF) // Exact opcode match.
	kMASK_HIGH = uint16(0xF000) // Top nibble selects the instruction.
	kMASK_ALU  = uint16(0xF00F) // Top and bottom nibble select the instruction.
)

// instruction is one entry in the dispatch table. An opcode matches if
// opcode&mask == value.
type instruction struct {
	name  string
	mask  uint16
	value uint16
	exec  func(c *Chip, op uint16) pcAction
}

// opcodes is the dispatch table for the base Chip-8 instruction set
// as described in http://devernay.free.fr/hacks/chip8/C8TECH10.HTM
//
// No two entries can match the same opcode so order doesn't matter.
// Anything not listed here (DRW, SKP/SKNP, Fx.. and SYS) is unknown.
var opcodes = []instruction{
	{"CLS", kMASK_ALL, 0x00E0, (*Chip).iCLS},
	{"RET", kMASK_ALL, 0x00EE, (*Chip).iRET},
	{"JP", kMASK_HIGH, 0x1000, (*Chip).iJP},
	{"CALL", kMASK_HIGH, 0x2000, (*Chip).iCALL},
	{"SE", kMASK_HIGH, 0x3000, (*Chip).iSEByte},
	{"SNE", kMASK_HIGH, 0x4000, (*Chip).iSNEByte},
	{"SE", kMASK_ALU, 0x5000, (*Chip).iSEReg},
	{"LD", kMASK_HIGH, 0x6000, (*Chip).iLDByte},
	{"ADD", kMASK_HIGH, 0x7000, (*Chip).iADDByte},
	{"LD", kMASK_ALU, 0x8000, (*Chip).iLDReg},
	{"OR", kMASK_ALU, 0x8001, (*Chip).iOR},
	{"AND", kMASK_ALU, 0x8002, (*Chip).iAND},
	{"XOR", kMASK_ALU, 0x8003, (*Chip).iXOR},
	{"ADD", kMASK_ALU, 0x8004, (*Chip).iADDReg},
	{"SUB", kMASK_ALU, 0x8005, (*Chip).iSUB},
	{"SHR", kMASK_ALU, 0x8006, (*Chip).iSHR},
	{"SUBN", kMASK_ALU, 0x8007, (*Chip).iSUBN},
	{"SHL", kMASK_ALU, 0x800E, (*Chip).iSHL},
	{"SNE", kMASK_ALU, 0x9000, (*Chip).iSNEReg},
	{"LD", kMASK_HIGH, 0xA000, (*Chip).iLDI},
	{"JP", kMASK_HIGH, 0xB000, (*Chip).iJPV0},
	{"RND", kMASK_HIGH, 0xC000, (*Chip).iRND},
}

// decode returns the instruction matching op or nil.
func decode(op uint16) *instruction {
	for i := range opcodes {
		if op&opcodes[i].mask == opcodes[i].value {
			return &opcodes[i]
		}
	}
	return nil
}

// Opcode field helpers.
func opX(op uint16) int { return int((op & kMASK_X) >> 8) }
func opY(op uint16) int { return int((op & kMASK_Y) >> 4) }
func opByte(op uint16) int { return int(op & kMASK_BYTE) }
func opAddr(op uint16) int { return int(op & kMASK_ADDR) }
func (c *Chip) v(x int) int { return int(c.reg.V[x].Get()) }
func (c *Chip) setV(x, v int) { c.reg.V[x].Set(v) }

// setFlag writes VF. Always done after the result is stored so that
// when the destination is VF the flag wins.
func (c *Chip) setFlag(b bool) {
	f := 0
	if b {
		f = 1
	}
	c.reg.V[register.VF].Set(f)
}

// skipIf advances PC past the next instruction if cond is true and otherwise
// just to the next instruction.
func (c *Chip) skipIf(cond bool) pcAction {
	n := INSTRUCTION_SIZE
	if cond {
		n += INSTRUCTION_SIZE
	}
	c.reg.PC.Increment(n)
	return kSET
}

// 00E0
func (c *Chip) iCLS(uint16) pcAction {
	c.display.Clear()
	return kNEXT
}

// 00EE - the popped address was pushed by CALL already pointing past it.
func (c *Chip) iRET(uint16) pcAction {
	c.reg.PC.Set(int(c.stack.Pop()))
	return kSET
}

// 1nnn
func (c *Chip) iJP(op uint16) pcAction {
	c.reg.PC.Set(opAddr(op))
	return kSET
}

// 2nnn
func (c *Chip) iCALL(op uint16) pcAction {
	c.stack.Push(c.reg.PC.Get() + INSTRUCTION_SIZE)
	c.reg.PC.Set(opAddr(op))
	return kSET
}

// 3xkk
func (c *Chip) iSEByte(op uint16) pcAction {
	return c.skipIf(c.v(opX(op)) == opByte(op))
}

// 4xkk
func (c *Chip) iSNEByte(op uint16) pcAction {
	return c.skipIf(c.v(opX(op)) != opByte(op))
}

// 5xy0
func (c *Chip) iSEReg(op uint16) pcAction {
	return c.skipIf(c.v(opX(op)) == c.v(opY(op)))
}

// 6xkk
func (c *Chip) iLDByte(op uint16) pcAction {
	c.setV(opX(op), opByte(op))
	return kNEXT
}

// 7xkk - no carry flag.
func (c *Chip) iADDByte(op uint16) pcAction {
	c.reg.V[opX(op)].Increment(opByte(op))
	return kNEXT
}

// 8xy0
func (c *Chip) iLDReg(op uint16) pcAction {
	c.setV(opX(op), c.v(opY(op)))
	return kNEXT
}

// 8xy1
func (c *Chip) iOR(op uint16) pcAction {
	x := opX(op)
	c.setV(x, c.v(x)|c.v(opY(op)))
	return kNEXT
}

// 8xy2
func (c *Chip) iAND(op uint16) pcAction {
	x := opX(op)
	c.setV(x, c.v(x)&c.v(opY(op)))
	return kNEXT
}

// 8xy3
func (c *Chip) iXOR(op uint16) pcAction {
	x := opX(op)
	c.setV(x, c.v(x)^c.v(opY(op)))
	return kNEXT
}

// 8xy4
func (c *Chip) iADDReg(op uint16) pcAction {
	x := opX(op)
	sum := c.v(x) + c.v(opY(op))
	c.setV(x, sum)
	c.setFlag(sum > 0xFF)
	return kNEXT
}

// 8xy5 - VF is NOT borrow.
func (c *Chip) iSUB(op uint16) pcAction {
	x := opX(op)
	vx, vy := c.v(x), c.v(opY(op))
	c.setV(x, vx-vy)
	c.setFlag(vx >= vy)
	return kNEXT
}

// 8xy6
func (c *Chip) iSHR(op uint16) pcAction {
	x := opX(op)
	vx := c.v(x)
	c.setV(x, vx>>1)
	c.setFlag(vx&0x01 == 0x01)
	return kNEXT
}

// 8xy7 - VF is NOT borrow.
func (c *Chip) iSUBN(op uint16) pcAction {
	x := opX(op)
	vx, vy := c.v(x), c.v(opY(op))
	c.setV(x, vy-vx)
	c.setFlag(vy >= vx)
	return kNEXT
}

// 8xyE
// NOTE: VF gets the LSB here, not the MSB the COSMAC VIP shifts out. Programs
//       relying on the hardware behavior will see a different flag.
func (c *Chip) iSHL(op uint16) pcAction {
	x := opX(op)
	vx := c.v(x)
	c.setV(x, vx<<1)
	c.setFlag(vx&0x01 == 0x01)
	return kNEXT
}

// 9xy0
func (c *Chip) iSNEReg(op uint16) pcAction {
	return c.skipIf(c.v(opX(op)) != c.v(opY(op)))
}

// Annn
func (c *Chip) iLDI(op uint16) pcAction {
	c.reg.I.Set(opAddr(op))
	return kNEXT
}

// Bnnn
func (c *Chip) iJPV0(op uint16) pcAction {
	c.reg.PC.Set((opAddr(op) + c.v(0)) % ADDRESS_SPACE)
	return kSET
}

// Cxkk
func (c *Chip) iRND(op uint16) pcAction {
	c.setV(opX(op), int(c.rand.Input())&opByte(op))
	return kNEXT
}
