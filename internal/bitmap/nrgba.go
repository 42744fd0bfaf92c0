// Package bitmap provides the concrete pixel backends used by the editor: one
// built on the standard library's *image.NRGBA and one on a bare byte buffer.
package bitmap

import (
	"image"

	"github.com/example/pixelpad/internal/pixel"
)

// NRGBA is the backend whose bitmaps wrap *image.NRGBA.
var NRGBA pixel.Backend = nrgbaBackend{}

type nrgbaBackend struct{}

func (nrgbaBackend) New(size pixel.Size, fill pixel.Color) pixel.Bitmap {
	size = size.Clamp()
	img := image.NewNRGBA(size.Bounds())
	if fill != pixel.Transparent {
		for i := 0; i < len(img.Pix); i += 4 {
			img.Pix[i+0] = fill.R
			img.Pix[i+1] = fill.G
			img.Pix[i+2] = fill.B
			img.Pix[i+3] = fill.A
		}
	}
	return &Image{img: img}
}

func (nrgbaBackend) FromParts(size pixel.Size, raw []byte) (pixel.Bitmap, error) {
	if err := pixel.CheckParts(size, raw); err != nil {
		return nil, err
	}
	img := image.NewNRGBA(size.Bounds())
	copy(img.Pix, raw)
	return &Image{img: img}, nil
}

// Image is a bitmap stored in an *image.NRGBA.
type Image struct {
	img *image.NRGBA
}

// Wrap takes ownership of img. The image is rebased to the origin when
// needed.
func Wrap(img *image.NRGBA) *Image {
	if img.Rect.Min != (image.Point{}) || img.Stride != img.Rect.Dx()*4 {
		dst := image.NewNRGBA(image.Rect(0, 0, img.Rect.Dx(), img.Rect.Dy()))
		for y := 0; y < img.Rect.Dy(); y++ {
			src := img.Pix[img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y):]
			copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], src)
		}
		img = dst
	}
	return &Image{img: img}
}

func (b *Image) Size() pixel.Size { return pixel.Sz(b.img.Rect.Dx(), b.img.Rect.Dy()) }
func (b *Image) Width() int       { return b.img.Rect.Dx() }
func (b *Image) Height() int      { return b.img.Rect.Dy() }

func (b *Image) Pixel(p image.Point) pixel.Color {
	if !p.In(b.img.Rect) {
		return pixel.Transparent
	}
	i := b.img.PixOffset(p.X, p.Y)
	s := b.img.Pix[i : i+4 : i+4]
	return pixel.Color{R: s[0], G: s[1], B: s[2], A: s[3]}
}

func (b *Image) SetPixel(p image.Point, c pixel.Color) {
	if !p.In(b.img.Rect) {
		return
	}
	i := b.img.PixOffset(p.X, p.Y)
	s := b.img.Pix[i : i+4 : i+4]
	s[0], s[1], s[2], s[3] = c.R, c.G, c.B, c.A
}

func (b *Image) Bytes() []byte {
	out := make([]byte, len(b.img.Pix))
	copy(out, b.img.Pix)
	return out
}

func (b *Image) SetFrom(other pixel.Bitmap) {
	o, ok := other.(*Image)
	if !ok {
		pixel.CopyOverlap(b, other)
		return
	}
	overlap := b.Size().Min(o.Size())
	row := overlap.W * 4
	for y := 0; y < overlap.H; y++ {
		copy(b.img.Pix[y*b.img.Stride:y*b.img.Stride+row], o.img.Pix[y*o.img.Stride:y*o.img.Stride+row])
	}
}

func (b *Image) Clone() pixel.Bitmap {
	img := image.NewNRGBA(b.img.Rect)
	copy(img.Pix, b.img.Pix)
	return &Image{img: img}
}

// NRGBA exposes the wrapped image for read-only use by renderers.
func (b *Image) NRGBA() *image.NRGBA { return b.img }
