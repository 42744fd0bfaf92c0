package bitmap

import (
	"image"

	"github.com/example/pixelpad/internal/pixel"
)

// Buffer is the backend whose bitmaps are a bare row-major RGBA8 byte slice.
var Buffer pixel.Backend = bufferBackend{}

type bufferBackend struct{}

func (bufferBackend) New(size pixel.Size, fill pixel.Color) pixel.Bitmap {
	size = size.Clamp()
	b := &Bytes{size: size, data: make([]byte, size.Area()*4)}
	if fill != pixel.Transparent {
		for i := 0; i < len(b.data); i += 4 {
			b.data[i], b.data[i+1], b.data[i+2], b.data[i+3] = fill.R, fill.G, fill.B, fill.A
		}
	}
	return b
}

func (bufferBackend) FromParts(size pixel.Size, raw []byte) (pixel.Bitmap, error) {
	if err := pixel.CheckParts(size, raw); err != nil {
		return nil, err
	}
	data := make([]byte, len(raw))
	copy(data, raw)
	return &Bytes{size: size, data: data}, nil
}

// Bytes is a bitmap backed by a plain byte slice.
type Bytes struct {
	size pixel.Size
	data []byte
}

func (b *Bytes) Size() pixel.Size { return b.size }
func (b *Bytes) Width() int       { return b.size.W }
func (b *Bytes) Height() int      { return b.size.H }

func (b *Bytes) offset(p image.Point) (int, bool) {
	if p.X < 0 || p.Y < 0 || p.X >= b.size.W || p.Y >= b.size.H {
		return 0, false
	}
	return (p.Y*b.size.W + p.X) * 4, true
}

func (b *Bytes) Pixel(p image.Point) pixel.Color {
	i, ok := b.offset(p)
	if !ok {
		return pixel.Transparent
	}
	return pixel.Color{R: b.data[i], G: b.data[i+1], B: b.data[i+2], A: b.data[i+3]}
}

func (b *Bytes) SetPixel(p image.Point, c pixel.Color) {
	i, ok := b.offset(p)
	if !ok {
		return
	}
	b.data[i], b.data[i+1], b.data[i+2], b.data[i+3] = c.R, c.G, c.B, c.A
}

func (b *Bytes) Bytes() []byte {
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

func (b *Bytes) SetFrom(other pixel.Bitmap) {
	o, ok := other.(*Bytes)
	if !ok {
		pixel.CopyOverlap(b, other)
		return
	}
	overlap := b.size.Min(o.size)
	row := overlap.W * 4
	for y := 0; y < overlap.H; y++ {
		d := y * b.size.W * 4
		s := y * o.size.W * 4
		copy(b.data[d:d+row], o.data[s:s+row])
	}
}

func (b *Bytes) Clone() pixel.Bitmap {
	data := make([]byte, len(b.data))
	copy(data, b.data)
	return &Bytes{size: b.size, data: data}
}
