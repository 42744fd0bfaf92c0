package palette

import (
	"sort"

	"github.com/example/pixelpad/internal/pixel"
)

type box struct {
	colors     []pixel.Color
	rMin, rMax uint8
	gMin, gMax uint8
	bMin, bMax uint8
}

func newBox(colors []pixel.Color) *box {
	b := &box{colors: colors, rMin: 255, gMin: 255, bMin: 255}
	for _, c := range colors {
		b.rMin, b.rMax = min(b.rMin, c.R), max(b.rMax, c.R)
		b.gMin, b.gMax = min(b.gMin, c.G), max(b.gMax, c.G)
		b.bMin, b.bMax = min(b.bMin, c.B), max(b.bMax, c.B)
	}
	return b
}

func (b *box) widest() (channel int, span int) {
	r := int(b.rMax) - int(b.rMin)
	g := int(b.gMax) - int(b.gMin)
	bl := int(b.bMax) - int(b.bMin)
	switch {
	case r >= g && r >= bl:
		return 0, r
	case g >= bl:
		return 1, g
	}
	return 2, bl
}

func (b *box) average() pixel.Color {
	var r, g, bl int
	for _, c := range b.colors {
		r += int(c.R)
		g += int(c.G)
		bl += int(c.B)
	}
	n := len(b.colors)
	return pixel.RGBA(uint8(r/n), uint8(g/n), uint8(bl/n), 255)
}

func channel(c pixel.Color, ch int) uint8 {
	switch ch {
	case 0:
		return c.R
	case 1:
		return c.G
	}
	return c.B
}

// MedianCut reduces colors to at most n representatives by repeatedly
// splitting the box with the widest channel range at its median.
func MedianCut(colors []pixel.Color, n int) []pixel.Color {
	if n <= 0 || len(colors) == 0 {
		return nil
	}
	boxes := []*box{newBox(append([]pixel.Color(nil), colors...))}
	for len(boxes) < n {
		idx, bestSpan, bestCh := -1, 0, 0
		for i, b := range boxes {
			if len(b.colors) < 2 {
				continue
			}
			ch, span := b.widest()
			if span > bestSpan {
				idx, bestSpan, bestCh = i, span, ch
			}
		}
		if idx < 0 {
			break
		}
		split := boxes[idx]
		sort.SliceStable(split.colors, func(i, j int) bool {
			return channel(split.colors[i], bestCh) < channel(split.colors[j], bestCh)
		})
		mid := len(split.colors) / 2
		boxes[idx] = newBox(split.colors[:mid])
		boxes = append(boxes, newBox(split.colors[mid:]))
	}
	out := New()
	for _, b := range boxes {
		out.Add(b.average())
	}
	return out.Colors()
}
