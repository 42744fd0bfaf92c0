package editor

import (
	"image"
	"math"

	"github.com/example/pixelpad/internal/pixel"
)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// line visits the Bresenham line from a to b, both ends included. Steps along
// the major axis that fall outside clip are skipped without being walked.
func line(a, b image.Point, clip image.Rectangle, plot func(image.Point)) {
	dx, dy := abs(b.X-a.X), abs(b.Y-a.Y)
	sx, sy := sign(b.X-a.X), sign(b.Y-a.Y)
	if dx == 0 && dy == 0 {
		plot(a)
		return
	}
	if dx >= dy {
		lo, hi := stepRange(a.X, sx, dx, clip.Min.X, clip.Max.X)
		for k := lo; k <= hi; k++ {
			plot(image.Pt(a.X+sx*k, a.Y+sy*((2*k*dy+dx)/(2*dx))))
		}
		return
	}
	lo, hi := stepRange(a.Y, sy, dy, clip.Min.Y, clip.Max.Y)
	for k := lo; k <= hi; k++ {
		plot(image.Pt(a.X+sx*((2*k*dx+dy)/(2*dy)), a.Y+sy*k))
	}
}

// stepRange returns the steps k in [0, n] for which start+dir*k lies in
// [lo, hi). dir is 1 or -1.
func stepRange(start, dir, n, lo, hi int) (int, int) {
	if dir > 0 {
		return max(0, lo-start), min(n, hi-1-start)
	}
	return max(0, start-(hi-1)), min(n, start-lo)
}

// normRect returns the rectangle spanning a and b with both corners
// included.
func normRect(a, b image.Point) image.Rectangle {
	return image.Rect(min(a.X, b.X), min(a.Y, b.Y), max(a.X, b.X)+1, max(a.Y, b.Y)+1)
}

// row visits x in [x0, x1] on row y, limited to clip.
func row(y, x0, x1 int, clip image.Rectangle, plot func(image.Point)) {
	if y < clip.Min.Y || y >= clip.Max.Y {
		return
	}
	for x := max(x0, clip.Min.X); x <= min(x1, clip.Max.X-1); x++ {
		plot(image.Pt(x, y))
	}
}

// rectOutline visits the border of r, or all of r when filled, inside clip.
func rectOutline(r, clip image.Rectangle, filled bool, plot func(image.Point)) {
	in := r.Intersect(clip)
	if in.Empty() {
		return
	}
	if filled {
		for y := in.Min.Y; y < in.Max.Y; y++ {
			row(y, in.Min.X, in.Max.X-1, clip, plot)
		}
		return
	}
	row(r.Min.Y, r.Min.X, r.Max.X-1, clip, plot)
	row(r.Max.Y-1, r.Min.X, r.Max.X-1, clip, plot)
	for _, x := range []int{r.Min.X, r.Max.X - 1} {
		if x < in.Min.X || x >= in.Max.X {
			continue
		}
		for y := in.Min.Y; y < in.Max.Y; y++ {
			plot(image.Pt(x, y))
		}
	}
}

// ellipseSpan returns the pixels of row y covered by the ellipse inscribed in
// r: those whose centre lies inside it. Every row keeps at least the centre
// column so thin tips stay connected.
func ellipseSpan(r image.Rectangle, y int) (int, int) {
	cx := float64(r.Min.X+r.Max.X-1) / 2
	cy := float64(r.Min.Y+r.Max.Y-1) / 2
	a := float64(r.Dx()) / 2
	b := float64(r.Dy()) / 2
	v := (float64(y) - cy) / b
	w := a * math.Sqrt(max(0, 1-v*v))
	lo := min(int(math.Ceil(cx-w)), int(math.Floor(cx)))
	hi := max(int(math.Floor(cx+w)), int(math.Ceil(cx)))
	return max(lo, r.Min.X), min(hi, r.Max.X-1)
}

// ellipse visits the ellipse inscribed in r inside clip. The outline is every
// covered pixel with a 4-neighbour outside the ellipse; filled ellipses visit
// every covered pixel.
func ellipse(r, clip image.Rectangle, filled bool, plot func(image.Point)) {
	if r.Empty() {
		return
	}
	if r.Dx() == 1 || r.Dy() == 1 {
		line(r.Min, r.Max.Sub(image.Pt(1, 1)), clip, plot)
		return
	}
	in := r.Intersect(clip)
	for y := in.Min.Y; y < in.Max.Y; y++ {
		lo, hi := ellipseSpan(r, y)
		if filled || y == r.Min.Y || y == r.Max.Y-1 {
			row(y, lo, hi, clip, plot)
			continue
		}
		alo, ahi := ellipseSpan(r, y-1)
		blo, bhi := ellipseSpan(r, y+1)
		ilo, ihi := max(lo+1, alo, blo), min(hi-1, ahi, bhi)
		if ilo > ihi {
			row(y, lo, hi, clip, plot)
			continue
		}
		row(y, lo, ilo-1, clip, plot)
		row(y, ihi+1, hi, clip, plot)
	}
}

// floodFill replaces the 4-connected region of equal colour containing start
// with col, staying inside clip.
func floodFill(c *Canvas, start image.Point, col pixel.Color, clip image.Rectangle) bool {
	clip = clip.Intersect(c.Bounds())
	if !start.In(clip) {
		return false
	}
	target := c.Pixel(start)
	if target == col {
		return false
	}
	stack := []image.Point{start}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !p.In(clip) || c.Pixel(p) != target {
			continue
		}
		c.bm.SetPixel(p, col)
		stack = append(stack,
			image.Pt(p.X+1, p.Y),
			image.Pt(p.X-1, p.Y),
			image.Pt(p.X, p.Y+1),
			image.Pt(p.X, p.Y-1),
		)
	}
	return true
}
