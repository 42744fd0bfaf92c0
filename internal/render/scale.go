package render

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Scale enlarges img by an integer factor by repeating each pixel, so pixel
// edges stay sharp and values are copied exactly. Factors below two return a
// rebased copy.
func Scale(img image.Image, factor int) *image.NRGBA {
	factor = max(factor, 1)
	src := toNRGBA(img)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w*factor, h*factor))
	if b.Empty() {
		return dst
	}
	for y := 0; y < h; y++ {
		srow := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):][:4*w]
		drow := dst.Pix[dst.PixOffset(0, y*factor):][:4*w*factor]
		for x := 0; x < w; x++ {
			px := srow[4*x : 4*x+4]
			for i := 0; i < factor; i++ {
				copy(drow[4*(x*factor+i):], px)
			}
		}
		for i := 1; i < factor; i++ {
			copy(dst.Pix[dst.PixOffset(0, y*factor+i):], drow)
		}
	}
	return dst
}

// Thumbnail shrinks img with bilinear sampling so its longest edge is at most
// edge. Images that already fit are returned at their own size.
func Thumbnail(img image.Image, edge int) *image.NRGBA {
	src := toNRGBA(img)
	b := src.Bounds()
	longest := max(b.Dx(), b.Dy())
	if edge <= 0 || longest <= edge {
		return Scale(src, 1)
	}
	w := max(1, b.Dx()*edge/longest)
	h := max(1, b.Dy()*edge/longest)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

// toNRGBA returns img as *image.NRGBA, converting each pixel without a
// premultiplied round trip.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	n := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			n.SetNRGBA(x, y, color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA))
		}
	}
	return n
}
