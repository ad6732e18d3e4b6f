// Package functionality does basic end-end verification
// of the Chip-8 interpreter running small programs
package functionality

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"
	"github.com/jmchacon/chip8/cpu"
	"github.com/jmchacon/chip8/io"
)

type program struct {
	name  string
	rom   []uint8
	spin  uint16 // Address the program ends on with a JP to itself.
	rand  []uint8
	v     map[int]uint8
	i     uint16
	pixel [][2]int // Pixels expected to be lit.
}

// runUntilSpin ticks until PC sits on the final JP or the step budget is used.
func runUntilSpin(t *testing.T, c *cpu.Chip, spin uint16) int {
	const maxSteps = 100000
	for steps := 0; steps < maxSteps; steps++ {
		if c.PC() == spin {
			return steps
		}
		if err := c.Tick(); err != nil {
			t.Fatalf("Error at PC: %.4X - %v\nstate: %s", c.PC(), err, spew.Sdump(c.Registers()))
		}
	}
	t.Fatalf("Never reached %.4X after %d steps\nstate: %s", spin, maxSteps, c)
	return 0
}

func TestPrograms(t *testing.T) {
	tests := []program{
		{
			// Sum 1..10 with a subroutine.
			name: "Sum",
			rom: []uint8{
				0x60, 0x00, // 200: LD V0, 0
				0x61, 0x0A, // 202: LD V1, 10
				0x22, 0x10, // 204: CALL 210
				0x50, 0x10, // 206: SE V0, V1
				0x12, 0x04, // 208: JP 204
				0xA2, 0xAA, // 20A: LD I, 2AA
				0x12, 0x0C, // 20C: JP 20C
				0x00, 0x00, // 20E
				0x70, 0x01, // 210: ADD V0, 1
				0x82, 0x04, // 212: ADD V2, V0
				0x00, 0xEE, // 214: RET
			},
			spin: 0x20C,
			v:    map[int]uint8{0: 10, 1: 10, 2: 55, 0xF: 0},
			i:    0x2AA,
		},
		{
			// 8 bit Fibonacci until the first carry. 144+233 overflows.
			name: "Fibonacci",
			rom: []uint8{
				0x60, 0x00, // 200: LD V0, 0
				0x61, 0x01, // 202: LD V1, 1
				0x73, 0x01, // 204: ADD V3, 1 (count)
				0x82, 0x00, // 206: LD V2, V0
				0x82, 0x14, // 208: ADD V2, V1
				0x3F, 0x01, // 20A: SE VF, 1
				0x12, 0x10, // 20C: JP 210
				0x12, 0x18, // 20E: JP 218
				0x80, 0x10, // 210: LD V0, V1
				0x81, 0x20, // 212: LD V1, V2
				0x12, 0x04, // 214: JP 204
				0x00, 0x00, // 216
				0x12, 0x18, // 218: JP 218
			},
			spin: 0x218,
			// 0 1 1 2 3 5 8 13 21 34 55 89 144 233: the 13th add overflows.
			v: map[int]uint8{0: 144, 1: 233, 2: (144 + 233) & 0xFF, 3: 13, 0xF: 1},
		},
		{
			// Shift a bit all the way out the top counting iterations.
			name: "Shift",
			rom: []uint8{
				0x60, 0x01, // 200: LD V0, 1
				0x71, 0x01, // 202: ADD V1, 1
				0x80, 0x0E, // 204: SHL V0
				0x40, 0x00, // 206: SNE V0, 0
				0x12, 0x0C, // 208: JP 20C
				0x12, 0x02, // 20A: JP 202
				0x12, 0x0C, // 20C: JP 20C
			},
			spin: 0x20C,
			v:    map[int]uint8{0: 0, 1: 8, 0xF: 0},
		},
		{
			// Computed jump table picks the entry from RND.
			name: "Jump table",
			rom: []uint8{
				0xC0, 0x06, // 200: RND V0, 06
				0xB2, 0x08, // 202: JP V0, 208
				0x00, 0x00, // 204
				0x00, 0x00, // 206
				0x6A, 0x01, // 208: LD VA, 1
				0x6B, 0x01, // 20A: LD VB, 1
				0x6C, 0x01, // 20C: LD VC, 1
				0x6D, 0x01, // 20E: LD VD, 1
				0x12, 0x10, // 210: JP 210
			},
			spin: 0x210,
			rand: []uint8{0xFC}, // & 06 == 04
			v:    map[int]uint8{0: 0x04, 0xA: 0, 0xB: 0, 0xC: 1, 0xD: 1},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, err := cpu.Init(&cpu.ChipDef{Rand: &io.Sequence{Values: test.rand}})
			if err != nil {
				t.Fatalf("%s: can't init: %v", test.name, err)
			}
			if err := c.LoadProgram(test.rom); err != nil {
				t.Fatalf("%s: can't load: %v", test.name, err)
			}
			steps := runUntilSpin(t, c, test.spin)
			t.Logf("%s: %d steps", test.name, steps)

			got := make(map[int]uint8)
			for r := range test.v {
				got[r] = c.V(r)
			}
			if diff := deep.Equal(got, test.v); diff != nil {
				t.Errorf("%s: registers wrong: %v\nstate: %s", test.name, diff, c)
			}
			if got, want := c.I(), test.i; got != want {
				t.Errorf("%s: I got %.4X want %.4X", test.name, got, want)
			}
			if st := c.Stack(); len(st) != 0 {
				t.Errorf("%s: stack not empty: %.4X", test.name, st)
			}
			// Spinning on the final JP should be stable.
			for i := 0; i < 10; i++ {
				if err := c.Tick(); err != nil {
					t.Fatalf("%s: error spinning: %v", test.name, err)
				}
			}
			if got, want := c.PC(), test.spin; got != want {
				t.Errorf("%s: PC drifted to %.4X from %.4X", test.name, got, want)
			}
		})
	}
}

func TestFallsOffIntoUnknown(t *testing.T) {
	// Execution runs off the end of the program into zeroed memory which is
	// not a valid opcode.
	c, err := cpu.Init(&cpu.ChipDef{Rand: &io.Sequence{}})
	if err != nil {
		t.Fatalf("can't init: %v", err)
	}
	if err := c.LoadProgram([]uint8{0x60, 0x01, 0x61, 0x02}); err != nil {
		t.Fatalf("can't load: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := c.Tick(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	err = c.Tick()
	if diff := deep.Equal(err, error(cpu.UnknownOpcode{Opcode: 0x0000, PC: 0x204})); diff != nil {
		t.Fatalf("wrong error: %v", diff)
	}
	if got, want := c.PC(), uint16(0x204); got != want {
		t.Errorf("PC got %.4X want %.4X", got, want)
	}
}
