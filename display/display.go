// Package display implements the 64x32 monochrome bit plane of a Chip-8
// interpreter. Sprites are XOR'd onto the plane and every coordinate wraps
// at the screen edges so partially off screen sprites reappear on the
// opposite side.
package display

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"
)

const (
	Width  = 64
	Height = 32

	// SpriteWidth is the number of pixels in one sprite row byte.
	SpriteWidth = 8
)

var (
	// On and Off are the default colors used by Image.
	On  = color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF}
	Off = color.NRGBA{0x00, 0x00, 0x00, 0xFF}
)

// Display holds one bit per pixel (stored as a byte which is always 0 or 1).
type Display struct {
	pixels [Height][Width]uint8
}

// New returns a cleared display.
func New() *Display {
	return &Display{}
}

// wrap reduces v into [0, n) including negative values.
func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Get returns the pixel at x,y (wrapped onto the screen).
func (d *Display) Get(x, y int) uint8 {
	return d.pixels[wrap(y, Height)][wrap(x, Width)]
}

// Draw XORs the sprite rows onto the display starting at x,y. Each row is
// 8 pixels with the MSB leftmost and rows advance downward. The return value
// is true if any pixel was turned off which is the Chip-8 collision signal.
func (d *Display) Draw(x, y int, rows []uint8) bool {
	erased := false
	for r, row := range rows {
		py := wrap(y+r, Height)
		for b := 0; b < SpriteWidth; b++ {
			bit := (row >> uint(SpriteWidth-1-b)) & 0x01
			if bit == 0 {
				continue
			}
			px := wrap(x+b, Width)
			if d.pixels[py][px] == 1 {
				erased = true
			}
			d.pixels[py][px] ^= bit
		}
	}
	return erased
}

// Clear turns off every pixel.
func (d *Display) Clear() {
	d.pixels = [Height][Width]uint8{}
}

// Pixels returns a copy of the bit plane indexed [y][x].
func (d *Display) Pixels() [Height][Width]uint8 {
	return d.pixels
}

// Image renders the plane using the given colors. If scale is larger than 1 the
// result is nearest neighbor scaled so each pixel becomes a scale x scale block.
func (d *Display) Image(on, off color.Color, scale int) *image.NRGBA {
	src := image.NewNRGBA(image.Rect(0, 0, Width, Height))
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			c := off
			if d.pixels[y][x] == 1 {
				c = on
			}
			src.Set(x, y, c)
		}
	}
	if scale <= 1 {
		return src
	}
	dst := image.NewNRGBA(image.Rect(0, 0, Width*scale, Height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// String renders the plane as text, '#' for lit pixels and '.' otherwise.
func (d *Display) String() string {
	var b strings.Builder
	b.Grow((Width + 1) * Height)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if d.pixels[y][x] == 1 {
				b.WriteByte('#')
				continue
			}
			b.WriteByte('.')
		}
		b.WriteByte('\n')
	}
	return b.String()
}
