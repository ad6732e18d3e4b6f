// chip8 loads a Chip-8 ROM and runs it in an SDL window (or the terminal
// with --term). The interpreter core only executes instructions, this
// driver supplies the clock: instructions run at --hz and the delay/sound
// timers plus the screen update at 60Hz.
package main

import (
	"flag"
	"image/color"
	"log"
	"os"
	"time"

	"github.com/jmchacon/chip8/cpu"
	"github.com/jmchacon/chip8/io"
)

// kTIMER_HZ is the fixed rate of the delay and sound timers.
const kTIMER_HZ = 60

var (
	rom      = flag.String("rom", "", "Path to ROM image to load")
	start    = flag.Int("start", int(cpu.PROGRAM_START), "Address to load the ROM at and start execution from")
	hz       = flag.Int("hz", 500, "Instructions to execute per second")
	scale    = flag.Int("scale", 10, "Window scale factor for each Chip-8 pixel")
	termMode = flag.Bool("term", false, "If true render to the terminal instead of an SDL window")
	beep     = flag.Bool("beep", true, "If true play a tone while the sound timer is running")
	seed     = flag.Int64("seed", 0, "Seed for RND. 0 means seed from the current time")
	debug    = flag.Bool("debug", false, "If true will log every instruction as it executes")

	fg = color.NRGBA{0x33, 0xFF, 0x66, 0xFF}
	bg = color.NRGBA{0x00, 0x00, 0x00, 0xFF}
)

// screen is implemented by the SDL and terminal front ends.
type screen interface {
	// Draw renders the current display.
	Draw(c *cpu.Chip) error
	// Quit returns true once the user has asked to exit.
	Quit() bool
	// Close releases any resources.
	Close()
}

func main() {
	flag.Parse()
	if *rom == "" {
		log.Fatalf("Invalid command: %s --rom <path> [--hz N --scale N --term --debug]", os.Args[0])
	}
	if *start < 0 || *start > 0xFFFF {
		log.Fatal("--start out of range. Must be between 0-65535")
	}
	if *hz <= 0 {
		log.Fatal("--hz must be positive")
	}

	// Luckily ROMs are so tiny by modern standards we just read it in.
	b, err := os.ReadFile(*rom)
	if err != nil {
		log.Fatalf("Can't load rom: %v from path: %s", err, *rom)
	}

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	c, err := cpu.Init(&cpu.ChipDef{
		Rand:  io.NewRandom(s),
		Debug: *debug,
	})
	if err != nil {
		log.Fatalf("Can't init chip: %v", err)
	}
	if err := c.Load(b, uint16(*start)); err != nil {
		log.Fatalf("Can't load %s: %v", *rom, err)
	}

	var tone *beeper
	if *beep {
		// No audio device isn't fatal, just run silent.
		if tone, err = newBeeper(); err != nil {
			log.Printf("Audio disabled: %v", err)
			tone = nil
		}
	}

	if *termMode {
		t, err := newTermScreen()
		if err != nil {
			log.Fatalf("Can't setup terminal: %v", err)
		}
		run(c, t, tone)
		return
	}
	runSDL(func(s screen) {
		run(c, s, tone)
	})
}

// run drives the chip until the screen asks to quit or an error occurs.
func run(c *cpu.Chip, s screen, tone *beeper) {
	defer s.Close()
	if tone != nil {
		defer tone.Close()
	}
	cycle := time.NewTicker(time.Second / time.Duration(*hz))
	defer cycle.Stop()
	frame := time.NewTicker(time.Second / time.Duration(kTIMER_HZ))
	defer frame.Stop()

	for !s.Quit() {
		select {
		case <-cycle.C:
			if err := c.Tick(); err != nil {
				log.Fatalf("Tick error: %v\nstate: %s", err, c)
			}
		case <-frame.C:
			c.TickTimers()
			if tone != nil {
				tone.Set(c.SoundTimer() > 0)
			}
			if err := s.Draw(c); err != nil {
				log.Fatalf("Draw error: %v", err)
			}
		}
	}
}
