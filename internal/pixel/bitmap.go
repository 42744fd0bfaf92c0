// Package pixel defines the colour, size and bitmap contracts shared by the
// editing engine and its pixel backends.
package pixel

import (
	"fmt"
	"image"
	"image/color"
)

// Size is the width and height of a pixel grid. Zero is a legal, empty size.
type Size struct {
	W, H int
}

// Sz is shorthand for Size{W: w, H: h}.
func Sz(w, h int) Size { return Size{W: w, H: h} }

// Bounds returns the rectangle covering a grid of this size anchored at the
// origin.
func (s Size) Bounds() image.Rectangle { return image.Rect(0, 0, s.W, s.H) }

// Area returns the number of pixels.
func (s Size) Area() int { return s.W * s.H }

// Empty reports whether the size covers no pixels.
func (s Size) Empty() bool { return s.W <= 0 || s.H <= 0 }

// Min returns the per-axis minimum of s and o.
func (s Size) Min(o Size) Size {
	return Size{W: min(s.W, o.W), H: min(s.H, o.H)}
}

// Clamp replaces negative dimensions with zero.
func (s Size) Clamp() Size {
	return Size{W: max(s.W, 0), H: max(s.H, 0)}
}

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.W, s.H) }

// Bitmap is the capability every concrete pixel buffer provides. Pixel data is
// row-major RGBA8 without padding. A Bitmap owns its storage exclusively.
type Bitmap interface {
	Size() Size
	Width() int
	Height() int
	// Pixel returns the colour at p. Points outside the bitmap read as
	// Transparent.
	Pixel(p image.Point) Color
	// SetPixel replaces the colour at p. Points outside the bitmap are
	// ignored.
	SetPixel(p image.Point, c Color)
	// Bytes returns a copy of the raw RGBA8 payload.
	Bytes() []byte
	// SetFrom copies the top-left overlap of other into the receiver.
	SetFrom(other Bitmap)
	// Clone returns an independent copy.
	Clone() Bitmap
}

// Backend constructs bitmaps of one concrete representation.
type Backend interface {
	New(size Size, fill Color) Bitmap
	// FromParts builds a bitmap from row-major RGBA8 bytes. The slice is
	// copied and must hold exactly W*H*4 bytes.
	FromParts(size Size, raw []byte) (Bitmap, error)
}

// CheckParts validates that raw matches size.
func CheckParts(size Size, raw []byte) error {
	if size.W < 0 || size.H < 0 {
		return fmt.Errorf("invalid bitmap size %s", size)
	}
	if want := size.Area() * 4; len(raw) != want {
		return fmt.Errorf("bitmap %s needs %d bytes, got %d", size, want, len(raw))
	}
	return nil
}

// CopyOverlap copies the top-left overlapping rectangle of src into dst one
// pixel at a time. Backends use it to implement SetFrom for foreign bitmaps.
func CopyOverlap(dst, src Bitmap) {
	overlap := dst.Size().Min(src.Size())
	for y := 0; y < overlap.H; y++ {
		for x := 0; x < overlap.W; x++ {
			p := image.Pt(x, y)
			dst.SetPixel(p, src.Pixel(p))
		}
	}
}

// Image adapts a Bitmap to the read-only image.Image interface.
func Image(b Bitmap) image.Image { return bitmapImage{b} }

type bitmapImage struct{ b Bitmap }

func (i bitmapImage) ColorModel() color.Model { return color.NRGBAModel }
func (i bitmapImage) Bounds() image.Rectangle { return i.b.Size().Bounds() }
func (i bitmapImage) At(x, y int) color.Color { return i.b.Pixel(image.Pt(x, y)).NRGBA() }

// ToNRGBA copies a bitmap into a freshly allocated *image.NRGBA.
func ToNRGBA(b Bitmap) *image.NRGBA {
	img := image.NewNRGBA(b.Size().Bounds())
	copy(img.Pix, b.Bytes())
	return img
}

// FromImage converts any image into a bitmap built by backend. The image is
// rebased so its top-left corner lands on the origin.
func FromImage(backend Backend, src image.Image) Bitmap {
	r := src.Bounds()
	size := Sz(r.Dx(), r.Dy())
	if n, ok := src.(*image.NRGBA); ok && n.Stride == r.Dx()*4 && len(n.Pix) == size.Area()*4 {
		if bm, err := backend.FromParts(size, n.Pix); err == nil {
			return bm
		}
	}
	bm := backend.New(size, Transparent)
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			bm.SetPixel(image.Pt(x, y), FromColor(src.At(r.Min.X+x, r.Min.Y+y)))
		}
	}
	return bm
}
