package editor

import (
	"image"

	"github.com/example/pixelpad/internal/pixel"
)

type gestureKind int

const (
	gestureIdle gestureKind = iota
	gestureBrush
	gestureErase
	gestureLine
	gestureRect
	gestureEllipse
	gestureSelection
	gestureMove
)

var gestureNames = [...]string{"idle", "brush", "erase", "line", "rect", "ellipse", "selection", "move"}

func (k gestureKind) String() string { return gestureNames[k] }

// gesture is the transient state between a start event and its end event.
type gesture struct {
	kind   gestureKind
	anchor image.Point

	// strokes
	last    image.Point
	started bool

	// before is the pending history entry, pushed on finish if changed.
	before  *snapshot
	changed bool

	// moves
	base         pixel.Bitmap
	region       image.Rectangle
	content      pixel.Bitmap
	hadSelection bool
}

// continues reports whether ev belongs to the active gesture.
func (s *State) continues(ev Event) bool {
	switch ev.(type) {
	case Brush, BrushEnd:
		return s.gesture.kind == gestureBrush
	case Erase, EraseEnd:
		return s.gesture.kind == gestureErase
	case LineEnd:
		return s.gesture.kind == gestureLine
	case RectEnd:
		return s.gesture.kind == gestureRect
	case EllipseEnd:
		return s.gesture.kind == gestureEllipse
	case SelectionEnd:
		return s.gesture.kind == gestureSelection
	case Move, MoveEnd:
		return s.gesture.kind == gestureMove
	}
	return false
}

// finishGesture commits any pending history entry and returns to idle.
func (s *State) finishGesture() {
	g := s.gesture
	if g.kind == gestureIdle {
		return
	}
	if g.before != nil && g.changed {
		s.history.push(*g.before)
	}
	logger().Debug("gesture end", "kind", g.kind, "changed", g.changed)
	s.gesture = gesture{}
}

func (s *State) beginStroke(kind gestureKind) {
	snap := s.snapshot()
	s.gesture = gesture{kind: kind, before: &snap}
	logger().Debug("gesture begin", "kind", kind)
}

// stroke extends the active stroke to p. Consecutive points are joined with a
// line so fast pointer motion leaves no gaps.
func (s *State) stroke(kind gestureKind, p image.Point, col pixel.Color) Effect {
	if s.gesture.kind != kind {
		s.beginStroke(kind)
	}
	g := &s.gesture
	c := s.Canvas()
	clip := s.clip()
	changed := false
	plot := func(q image.Point) {
		if q.In(clip) && c.setPixel(q, col) {
			changed = true
		}
	}
	if g.started {
		line(g.last, p, clip, plot)
	} else {
		plot(p)
	}
	g.last, g.started = p, true
	if !changed {
		return EffectNone
	}
	g.changed = true
	return EffectUpdate
}

func (s *State) beginShape(kind gestureKind, p image.Point) {
	s.gesture = gesture{kind: kind, anchor: p}
	logger().Debug("gesture begin", "kind", kind, "at", p)
}

// endShape draws the line, rectangle or ellipse from the anchor to p. Without
// a matching start the shape collapses to the single point p.
func (s *State) endShape(kind gestureKind, p image.Point, filled bool) Effect {
	anchor := p
	if s.gesture.kind == kind {
		anchor = s.gesture.anchor
	}
	s.gesture = gesture{}
	logger().Debug("gesture end", "kind", kind, "from", anchor, "to", p)

	col := s.mainColor
	if s.tool == ToolEraser {
		col = pixel.Transparent
	}
	clip := s.clip()
	return s.mutate(func(c *Canvas) bool {
		changed := false
		plot := func(q image.Point) {
			if q.In(clip) && c.setPixel(q, col) {
				changed = true
			}
		}
		switch kind {
		case gestureLine:
			line(anchor, p, clip, plot)
		case gestureRect:
			rectOutline(normRect(anchor, p), clip, filled, plot)
		case gestureEllipse:
			ellipse(normRect(anchor, p), clip, filled, plot)
		}
		return changed
	})
}

func (s *State) endSelection(p image.Point) Effect {
	anchor := p
	if s.gesture.kind == gestureSelection {
		anchor = s.gesture.anchor
	}
	s.gesture = gesture{}
	sel := normRect(anchor, p).Intersect(s.size.Bounds())
	if sel.Empty() {
		sel = image.Rectangle{}
	}
	if sel == s.selection {
		return EffectNone
	}
	s.selection = sel
	return EffectUpdate
}

func (s *State) beginMove(p image.Point) {
	c := s.Canvas()
	region := s.clip()
	snap := s.snapshot()
	s.gesture = gesture{
		kind:         gestureMove,
		anchor:       p,
		before:       &snap,
		base:         c.bm.Clone(),
		region:       region,
		content:      c.crop(s.backend, region),
		hadSelection: !s.selection.Empty(),
	}
	logger().Debug("gesture begin", "kind", gestureMove, "region", region)
}

// move redraws the active layer from the picked up state with the content
// translated by the pointer delta. Vacated pixels become transparent and
// content leaving the canvas is dropped.
func (s *State) move(p image.Point) Effect {
	if s.gesture.kind != gestureMove {
		s.beginMove(p)
		return EffectNone
	}
	g := &s.gesture
	delta := p.Sub(g.anchor)
	c := s.Canvas()
	c.bm.SetFrom(g.base)
	c.fill(g.region, pixel.Transparent)
	dst := g.region.Add(delta)
	c.paste(g.content, dst.Min, c.Bounds())
	if g.hadSelection {
		s.selection = dst.Intersect(c.Bounds())
		if s.selection.Empty() {
			s.selection = image.Rectangle{}
		}
	}
	g.changed = delta != image.Point{}
	return EffectUpdate
}

func (s *State) paste(p image.Point) Effect {
	if s.clipboard == nil {
		return EffectNone
	}
	src := s.clipboard
	effect := s.mutate(func(c *Canvas) bool { return c.paste(src, p, c.Bounds()) })
	sel := src.Size().Bounds().Add(p).Intersect(s.size.Bounds())
	if sel.Empty() {
		sel = image.Rectangle{}
	}
	if sel != s.selection {
		s.selection = sel
		effect = EffectUpdate
	}
	return effect
}
