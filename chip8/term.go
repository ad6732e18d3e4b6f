package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/jmchacon/chip8/cpu"
	"github.com/jmchacon/chip8/display"
	"golang.org/x/term"
)

const (
	kCLEAR_SCREEN = "\x1b[2J"
	kCURSOR_HOME  = "\x1b[H"
)

// termScreen renders the display as text on stdout.
type termScreen struct {
	out  *os.File
	last string
}

func newTermScreen() (*termScreen, error) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("stdout is not a terminal")
	}
	w, h, err := term.GetSize(fd)
	if err != nil {
		return nil, fmt.Errorf("can't get terminal size: %v", err)
	}
	if w < display.Width || h < display.Height {
		log.Printf("Terminal is %dx%d, output needs %dx%d and will wrap", w, h, display.Width, display.Height)
	}
	fmt.Fprint(os.Stdout, kCLEAR_SCREEN)
	return &termScreen{out: os.Stdout}, nil
}

// Draw implements screen. Only changed frames are written.
func (t *termScreen) Draw(c *cpu.Chip) error {
	s := c.Display().String()
	if s == t.last {
		return nil
	}
	t.last = s
	_, err := fmt.Fprint(t.out, kCURSOR_HOME+s)
	return err
}

// Quit implements screen. The terminal front end runs until interrupted.
func (t *termScreen) Quit() bool {
	return false
}

// Close implements screen.
func (t *termScreen) Close() {}
