package main

import (
	"log"
	"sync"

	"github.com/jmchacon/chip8/cpu"
	"github.com/jmchacon/chip8/display"
	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/image/draw"
)

// sdlScreen renders into an SDL window. All SDL calls happen on the SDL main
// thread via sdl.Do.
type sdlScreen struct {
	window  *sdl.Window
	surface *sdl.Surface
	quit    bool
}

// runSDL sets up SDL and a window and then calls f with it from the SDL main loop.
func runSDL(f func(screen)) {
	sdl.Main(func() {
		s := &sdlScreen{}
		var wg sync.WaitGroup
		wg.Add(1)
		sdl.Do(func() {
			if err := sdl.Init(sdl.INIT_EVERYTHING); err != nil {
				log.Fatalf("Can't init SDL: %v", err)
			}

			var err error
			s.window, err = sdl.CreateWindow("chip8", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, int32(display.Width**scale), int32(display.Height**scale), sdl.WINDOW_SHOWN)
			if err != nil {
				log.Fatalf("Can't create window: %v", err)
			}
			s.surface, err = s.window.GetSurface()
			if err != nil {
				log.Fatalf("Can't get window surface: %v", err)
			}
			wg.Done()
		})
		wg.Wait()
		f(s)
	})
}

// Draw implements screen.
func (s *sdlScreen) Draw(c *cpu.Chip) error {
	img := c.Display().Image(fg, bg, *scale)
	var err error
	sdl.Do(func() {
		for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
			if _, ok := e.(*sdl.QuitEvent); ok {
				s.quit = true
			}
		}
		draw.Draw(s.surface, img.Bounds(), img, img.Bounds().Min, draw.Src)
		err = s.window.UpdateSurface()
	})
	return err
}

// Quit implements screen.
func (s *sdlScreen) Quit() bool {
	return s.quit
}

// Close implements screen.
func (s *sdlScreen) Close() {
	sdl.Do(func() {
		s.window.Destroy()
		sdl.Quit()
	})
}
