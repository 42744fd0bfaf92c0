// Package palette holds ordered colour sets and reads them from palette files,
// images and the built-in named palettes.
package palette

import (
	"slices"

	"github.com/example/pixelpad/internal/pixel"
)

// Palette is an ordered set of unique colours. The zero value is empty and
// ready to use.
type Palette struct {
	colors []pixel.Color
}

// New builds a palette from colors, dropping duplicates while keeping first
// occurrences in order.
func New(colors ...pixel.Color) *Palette {
	p := &Palette{}
	p.Extend(colors)
	return p
}

// Add appends c unless it is already present. It reports whether the palette
// changed.
func (p *Palette) Add(c pixel.Color) bool {
	if p.Contains(c) {
		return false
	}
	p.colors = append(p.colors, c)
	return true
}

// Extend adds every colour in colors and returns how many were new.
func (p *Palette) Extend(colors []pixel.Color) int {
	n := 0
	for _, c := range colors {
		if p.Add(c) {
			n++
		}
	}
	return n
}

// Remove deletes c if present and reports whether it was.
func (p *Palette) Remove(c pixel.Color) bool {
	i := slices.Index(p.colors, c)
	if i < 0 {
		return false
	}
	p.colors = slices.Delete(p.colors, i, i+1)
	return true
}

// Contains reports whether c is in the palette.
func (p *Palette) Contains(c pixel.Color) bool { return slices.Contains(p.colors, c) }

// Len returns the number of colours.
func (p *Palette) Len() int { return len(p.colors) }

// Colors returns a copy of the palette in order.
func (p *Palette) Colors() []pixel.Color { return slices.Clone(p.colors) }

// Clone returns an independent copy.
func (p *Palette) Clone() *Palette { return &Palette{colors: slices.Clone(p.colors)} }

// Nearest returns the palette colour closest to c by RGB distance.
func (p *Palette) Nearest(c pixel.Color) (pixel.Color, bool) {
	return pixel.Nearest(p.colors, c)
}

// Default returns the built-in sixteen colour palette.
func Default() *Palette {
	p := &Palette{}
	for _, nc := range Named {
		p.Add(nc.Color)
	}
	return p
}

// NamedColor pairs a palette entry with a human readable name.
type NamedColor struct {
	Name  string
	Color pixel.Color
}

// Named is the default palette with the names accepted by ParseColor.
var Named = []NamedColor{
	{"Black", pixel.RGBA(0, 0, 0, 255)},
	{"White", pixel.RGBA(255, 255, 255, 255)},
	{"Red", pixel.RGBA(255, 0, 0, 255)},
	{"Lime", pixel.RGBA(0, 255, 0, 255)},
	{"Blue", pixel.RGBA(0, 0, 255, 255)},
	{"Yellow", pixel.RGBA(255, 255, 0, 255)},
	{"Cyan", pixel.RGBA(0, 255, 255, 255)},
	{"Magenta", pixel.RGBA(255, 0, 255, 255)},
	{"Maroon", pixel.RGBA(128, 0, 0, 255)},
	{"Green", pixel.RGBA(0, 128, 0, 255)},
	{"Navy", pixel.RGBA(0, 0, 128, 255)},
	{"Olive", pixel.RGBA(128, 128, 0, 255)},
	{"Teal", pixel.RGBA(0, 128, 128, 255)},
	{"Purple", pixel.RGBA(128, 0, 128, 255)},
	{"Silver", pixel.RGBA(192, 192, 192, 255)},
	{"Gray", pixel.RGBA(128, 128, 128, 255)},
}
