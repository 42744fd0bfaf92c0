package render

import (
	"image"

	"github.com/example/pixelpad/internal/pixel"
)

// Silhouette paints every non-transparent pixel with c, keeping the pixel's
// own alpha. It reports whether any pixel changed.
func Silhouette(b pixel.Bitmap, c pixel.Color) bool {
	return mapPixels(b, func(p pixel.Color) pixel.Color {
		return c.WithAlpha(p.A)
	})
}

// ApplyPalette replaces every non-transparent pixel with its nearest entry in
// colors, keeping the pixel's own alpha. An empty palette changes nothing.
func ApplyPalette(b pixel.Bitmap, colors []pixel.Color) bool {
	if len(colors) == 0 {
		return false
	}
	cache := make(map[pixel.Color]pixel.Color)
	return mapPixels(b, func(p pixel.Color) pixel.Color {
		key := p.WithAlpha(255)
		n, ok := cache[key]
		if !ok {
			n, _ = pixel.Nearest(colors, key)
			cache[key] = n
		}
		return n.WithAlpha(p.A)
	})
}

func mapPixels(b pixel.Bitmap, f func(pixel.Color) pixel.Color) bool {
	changed := false
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			pt := image.Pt(x, y)
			p := b.Pixel(pt)
			if p.IsTransparent() {
				continue
			}
			if n := f(p); n != p {
				b.SetPixel(pt, n)
				changed = true
			}
		}
	}
	return changed
}

// FlipHorizontal mirrors b left to right in place.
func FlipHorizontal(b pixel.Bitmap) {
	w := b.Width()
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < w/2; x++ {
			l, r := image.Pt(x, y), image.Pt(w-1-x, y)
			lc, rc := b.Pixel(l), b.Pixel(r)
			b.SetPixel(l, rc)
			b.SetPixel(r, lc)
		}
	}
}

// FlipVertical mirrors b top to bottom in place.
func FlipVertical(b pixel.Bitmap) {
	h := b.Height()
	for y := 0; y < h/2; y++ {
		for x := 0; x < b.Width(); x++ {
			t, u := image.Pt(x, y), image.Pt(x, h-1-y)
			tc, uc := b.Pixel(t), b.Pixel(u)
			b.SetPixel(t, uc)
			b.SetPixel(u, tc)
		}
	}
}
