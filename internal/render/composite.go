// Package render turns editor bitmaps into displayable images and applies
// whole-canvas pixel transforms.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/example/pixelpad/internal/pixel"
)

// Layer is one input to Composite.
type Layer struct {
	Bitmap  pixel.Bitmap
	Visible bool
	Alpha   uint8
}

// Composite folds visible layers bottom to top into a fresh image of the given
// size. Each layer is blended with draw.Over, scaled by its alpha.
func Composite(size pixel.Size, layers []Layer) *image.NRGBA {
	dst := image.NewNRGBA(size.Clamp().Bounds())
	if size.Empty() {
		return dst
	}
	first := true
	for _, l := range layers {
		if !l.Visible || l.Alpha == 0 || l.Bitmap == nil {
			continue
		}
		// The bottom opaque layer is copied verbatim so a single layer
		// composite reproduces its pixels exactly.
		if first && l.Alpha == 255 && l.Bitmap.Size() == size {
			copy(dst.Pix, l.Bitmap.Bytes())
			first = false
			continue
		}
		first = false
		src := pixel.ToNRGBA(l.Bitmap)
		if l.Alpha == 255 {
			draw.Draw(dst, dst.Bounds(), src, image.Point{}, draw.Over)
			continue
		}
		mask := image.NewUniform(color.Alpha{A: l.Alpha})
		draw.DrawMask(dst, dst.Bounds(), src, image.Point{}, mask, image.Point{}, draw.Over)
	}
	return dst
}

// Flatten draws img over an opaque background colour. Used for formats
// without an alpha channel.
func Flatten(img image.Image, background pixel.Color) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(background.WithAlpha(255)), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}
