package editor

import (
	"image"
	"image/color"

	"github.com/example/pixelpad/internal/pixel"
)

// Canvas is a read-only view of one layer's pixels. It also satisfies
// image.Image so it can be handed straight to encoders.
type Canvas struct {
	bm pixel.Bitmap
}

func newCanvas(bm pixel.Bitmap) *Canvas { return &Canvas{bm: bm} }

func (c *Canvas) Size() pixel.Size { return c.bm.Size() }
func (c *Canvas) Width() int       { return c.bm.Width() }
func (c *Canvas) Height() int      { return c.bm.Height() }

// Pixel returns the colour at p, or Transparent outside the canvas.
func (c *Canvas) Pixel(p image.Point) pixel.Color { return c.bm.Pixel(p) }

// Bytes returns a copy of the row-major RGBA8 pixel data.
func (c *Canvas) Bytes() []byte { return c.bm.Bytes() }

func (c *Canvas) ColorModel() color.Model { return color.NRGBAModel }
func (c *Canvas) Bounds() image.Rectangle { return c.bm.Size().Bounds() }
func (c *Canvas) At(x, y int) color.Color { return c.bm.Pixel(image.Pt(x, y)).NRGBA() }

func (c *Canvas) setPixel(p image.Point, col pixel.Color) bool {
	if c.bm.Pixel(p) == col || !p.In(c.Bounds()) {
		return false
	}
	c.bm.SetPixel(p, col)
	return true
}

func (c *Canvas) fill(r image.Rectangle, col pixel.Color) bool {
	r = r.Intersect(c.Bounds())
	changed := false
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if c.setPixel(image.Pt(x, y), col) {
				changed = true
			}
		}
	}
	return changed
}

// crop copies r into a new bitmap anchored at the origin.
func (c *Canvas) crop(backend pixel.Backend, r image.Rectangle) pixel.Bitmap {
	out := backend.New(pixel.Sz(r.Dx(), r.Dy()), pixel.Transparent)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			out.SetPixel(image.Pt(x-r.Min.X, y-r.Min.Y), c.bm.Pixel(image.Pt(x, y)))
		}
	}
	return out
}

// paste copies src with its origin at at, clipped to clip.
func (c *Canvas) paste(src pixel.Bitmap, at image.Point, clip image.Rectangle) bool {
	dst := src.Size().Bounds().Add(at).Intersect(clip).Intersect(c.Bounds())
	changed := false
	for y := dst.Min.Y; y < dst.Max.Y; y++ {
		for x := dst.Min.X; x < dst.Max.X; x++ {
			p := image.Pt(x, y)
			if c.setPixel(p, src.Pixel(p.Sub(at))) {
				changed = true
			}
		}
	}
	return changed
}

type layer struct {
	// id survives clones so history can match snapshot layers to live ones.
	id      int
	name    string
	visible bool
	alpha   uint8
	canvas  *Canvas
}

func (l *layer) clone() *layer {
	c := *l
	c.canvas = newCanvas(l.canvas.bm.Clone())
	return &c
}

// LayerInfo describes a layer without exposing its pixels.
type LayerInfo struct {
	Name    string
	Visible bool
	Alpha   uint8
}
