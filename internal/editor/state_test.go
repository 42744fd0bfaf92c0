package editor

import (
	"bytes"
	"image"
	"reflect"
	"testing"

	"github.com/example/pixelpad/internal/bitmap"
	"github.com/example/pixelpad/internal/pixel"
)

const side = 10

var red = pixel.RGBA(255, 0, 0, 255)

func forEachBackend(t *testing.T, fn func(t *testing.T, newState func(opts ...Option) *State)) {
	t.Helper()
	for name, b := range map[string]pixel.Backend{"nrgba": bitmap.NRGBA, "buffer": bitmap.Buffer} {
		t.Run(name, func(t *testing.T) {
			fn(t, func(opts ...Option) *State {
				return New(pixel.Sz(side, side), append([]Option{WithBackend(b)}, opts...)...)
			})
		})
	}
}

func mustExecute(t *testing.T, s *State, events ...Event) Effect {
	t.Helper()
	var last Effect
	for _, ev := range events {
		eff, err := s.Execute(ev)
		if err != nil {
			t.Fatalf("Execute(%T): %v", ev, err)
		}
		last = eff
	}
	return last
}

func checkCanvas(t *testing.T, s *State, want func(x, y int) pixel.Color) {
	t.Helper()
	c := s.Canvas()
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			if got, w := c.Pixel(image.Pt(x, y)), want(x, y); got != w {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, w)
			}
		}
	}
}

func diagonal(on pixel.Color, off pixel.Color) func(x, y int) pixel.Color {
	return func(x, y int) pixel.Color {
		if x == y {
			return on
		}
		return off
	}
}

func TestEmptyCanvas(t *testing.T) {
	forEachBackend(t, func(t *testing.T, newState func(...Option) *State) {
		s := newState()
		checkCanvas(t, s, func(int, int) pixel.Color { return pixel.Transparent })
		if s.MainColor() != pixel.Black {
			t.Fatalf("main colour = %v, want black", s.MainColor())
		}
	})
}

func TestDrawLine(t *testing.T) {
	forEachBackend(t, func(t *testing.T, newState func(...Option) *State) {
		s := newState()
		if eff := mustExecute(t, s, LineStart{image.Pt(0, 0)}); eff != EffectNone {
			t.Fatalf("LineStart effect = %v", eff)
		}
		if eff := mustExecute(t, s, LineEnd{image.Pt(side-1, side-1)}); eff != EffectUpdate {
			t.Fatalf("LineEnd effect = %v", eff)
		}
		checkCanvas(t, s, diagonal(pixel.Black, pixel.Transparent))
	})
}

func TestDrawRedLine(t *testing.T) {
	forEachBackend(t, func(t *testing.T, newState func(...Option) *State) {
		s := newState()
		mustExecute(t, s, SetMainColor{red}, LineStart{image.Pt(0, 0)}, LineEnd{image.Pt(side-1, side-1)})
		checkCanvas(t, s, diagonal(red, pixel.Transparent))
	})
}

func TestDrawLineThenClear(t *testing.T) {
	forEachBackend(t, func(t *testing.T, newState func(...Option) *State) {
		s := newState()
		mustExecute(t, s, LineStart{image.Pt(0, 0)}, LineEnd{image.Pt(side-1, side-1)})
		if eff := mustExecute(t, s, ClearCanvas{}); eff != EffectUpdate {
			t.Fatalf("ClearCanvas effect = %v", eff)
		}
		checkCanvas(t, s, func(int, int) pixel.Color { return pixel.Transparent })
	})
}

func TestBucket(t *testing.T) {
	forEachBackend(t, func(t *testing.T, newState func(...Option) *State) {
		s := newState()
		mustExecute(t, s, Bucket{image.Pt(0, 0)})
		checkCanvas(t, s, func(int, int) pixel.Color { return pixel.Black })
		if eff := mustExecute(t, s, Bucket{image.Pt(3, 3)}); eff != EffectNone {
			t.Fatalf("same-colour fill effect = %v, want none", eff)
		}
	})
}

func TestBucketThenErase(t *testing.T) {
	forEachBackend(t, func(t *testing.T, newState func(...Option) *State) {
		s := newState()
		mustExecute(t, s,
			Bucket{image.Pt(0, 0)},
			EraseStart{},
			Erase{image.Pt(0, 0)},
			Erase{image.Pt(side-1, side-1)},
			EraseEnd{},
		)
		checkCanvas(t, s, diagonal(pixel.Transparent, pixel.Black))
	})
}

func TestBucketStopsAtBoundary(t *testing.T) {
	forEachBackend(t, func(t *testing.T, newState func(...Option) *State) {
		s := newState()
		mustExecute(t, s,
			LineStart{image.Pt(0, 0)}, LineEnd{image.Pt(side-1, side-1)},
			SetMainColor{red}, Bucket{image.Pt(side-1, 0)},
		)
		checkCanvas(t, s, func(x, y int) pixel.Color {
			switch {
			case x == y:
				return pixel.Black
			case x > y:
				return red
			}
			return pixel.Transparent
		})
	})
}

func TestBucketConfinedToSelection(t *testing.T) {
	forEachBackend(t, func(t *testing.T, newState func(...Option) *State) {
		s := newState()
		mustExecute(t, s, SelectionStart{image.Pt(2, 2)}, SelectionEnd{image.Pt(4, 5)}, Bucket{image.Pt(3, 3)})
		checkCanvas(t, s, func(x, y int) pixel.Color {
			if x >= 2 && x <= 4 && y >= 2 && y <= 5 {
				return pixel.Black
			}
			return pixel.Transparent
		})
	})
}

func TestBrushStroke(t *testing.T) {
	forEachBackend(t, func(t *testing.T, newState func(...Option) *State) {
		s := newState()
		mustExecute(t, s, BrushStart{}, Brush{image.Pt(0, 5)}, Brush{image.Pt(9, 5)}, BrushEnd{})
		checkCanvas(t, s, func(x, y int) pixel.Color {
			if y == 5 {
				return pixel.Black
			}
			return pixel.Transparent
		})
		if !s.CanUndo() {
			t.Fatal("stroke did not record history")
		}
		mustExecute(t, s, Undo{})
		checkCanvas(t, s, func(int, int) pixel.Color { return pixel.Transparent })
		if s.CanUndo() {
			t.Fatal("stroke recorded more than one history entry")
		}
	})
}

func TestEraserLine(t *testing.T) {
	forEachBackend(t, func(t *testing.T, newState func(...Option) *State) {
		s := newState()
		mustExecute(t, s, Bucket{image.Pt(0, 0)}, SetTool{ToolEraser}, LineStart{image.Pt(0, 0)}, LineEnd{image.Pt(9, 9)})
		checkCanvas(t, s, diagonal(pixel.Transparent, pixel.Black))
	})
}

func TestEyedropper(t *testing.T) {
	forEachBackend(t, func(t *testing.T, newState func(...Option) *State) {
		s := newState()
		mustExecute(t, s, SetMainColor{red}, Bucket{image.Pt(0, 0)}, SetMainColor{pixel.White})
		if eff := mustExecute(t, s, Eyedropper{image.Pt(4, 4)}); eff != EffectNone {
			t.Fatalf("effect = %v", eff)
		}
		if s.MainColor() != red {
			t.Fatalf("main colour = %v, want red", s.MainColor())
		}
		mustExecute(t, s, Eyedropper{image.Pt(-1, 40)})
		if s.MainColor() != red {
			t.Fatalf("out of bounds pick changed main colour to %v", s.MainColor())
		}
	})
}

func TestResizeKeepsOverlap(t *testing.T) {
	forEachBackend(t, func(t *testing.T, newState func(...Option) *State) {
		s := newState()
		mustExecute(t, s, LineStart{image.Pt(0, 0)}, LineEnd{image.Pt(side-1, side-1)})
		if eff := mustExecute(t, s, ResizeCanvas{pixel.Sz(5, 15)}); eff != EffectNew {
			t.Fatalf("effect = %v, want new", eff)
		}
		if s.Width() != 5 || s.Height() != 15 {
			t.Fatalf("size = %v", s.Size())
		}
		checkCanvas(t, s, func(x, y int) pixel.Color {
			if x == y {
				return pixel.Black
			}
			return pixel.Transparent
		})
		if eff := mustExecute(t, s, Undo{}); eff != EffectNew {
			t.Fatalf("undo effect = %v, want new", eff)
		}
		if s.Size() != pixel.Sz(side, side) {
			t.Fatalf("size after undo = %v", s.Size())
		}
	})
}

func TestResizeToZero(t *testing.T) {
	s := New(pixel.Sz(3, 3))
	if eff := mustExecute(t, s, ResizeCanvas{pixel.Sz(0, 0)}); eff != EffectNew {
		t.Fatalf("effect = %v", eff)
	}
	if len(s.Canvas().Bytes()) != 0 {
		t.Fatal("empty canvas has pixel data")
	}
	mustExecute(t, s, Bucket{image.Pt(0, 0)}, Brush{image.Pt(0, 0)})
}

func TestUndoRedoRoundTrip(t *testing.T) {
	forEachBackend(t, func(t *testing.T, newState func(...Option) *State) {
		s := newState()
		if eff := mustExecute(t, s, Undo{}); eff != EffectNone {
			t.Fatalf("undo on empty history = %v", eff)
		}
		mustExecute(t, s, LineStart{image.Pt(0, 0)}, LineEnd{image.Pt(side-1, side-1)})
		drawn := s.Canvas().Bytes()
		mustExecute(t, s, SetMainColor{red}, Bucket{image.Pt(0, 9)})
		filled := s.Canvas().Bytes()

		mustExecute(t, s, Undo{})
		if !bytes.Equal(s.Canvas().Bytes(), drawn) {
			t.Fatal("first undo did not restore the line")
		}
		mustExecute(t, s, Undo{})
		checkCanvas(t, s, func(int, int) pixel.Color { return pixel.Transparent })
		mustExecute(t, s, Redo{}, Redo{})
		if !bytes.Equal(s.Canvas().Bytes(), filled) {
			t.Fatal("redo did not restore the fill")
		}
		if eff := mustExecute(t, s, Redo{}); eff != EffectNone {
			t.Fatalf("redo on empty stack = %v", eff)
		}

		mustExecute(t, s, Undo{}, ClearCanvas{})
		if s.CanRedo() {
			t.Fatal("new edit did not clear redo")
		}
	})
}

func TestUndoLimit(t *testing.T) {
	s := New(pixel.Sz(2, 2), WithUndoLimit(2))
	for _, c := range []pixel.Color{red, pixel.White, pixel.Black} {
		mustExecute(t, s, SetMainColor{c}, Bucket{image.Pt(0, 0)})
	}
	mustExecute(t, s, Undo{}, Undo{})
	if s.CanUndo() {
		t.Fatal("history kept more than the limit")
	}
	if got := s.Canvas().Pixel(image.Pt(0, 0)); got != red {
		t.Fatalf("oldest reachable state = %v, want red", got)
	}
}

func TestSetToolFinishesGesture(t *testing.T) {
	s := New(pixel.Sz(side, side))
	mustExecute(t, s, LineStart{image.Pt(0, 0)}, SetTool{ToolBucket})
	if s.SelectedTool() != ToolBucket {
		t.Fatalf("tool = %v", s.SelectedTool())
	}
	// The anchor was dropped with the tool switch.
	mustExecute(t, s, LineEnd{image.Pt(5, 5)})
	checkCanvas(t, s, func(x, y int) pixel.Color {
		if x == 5 && y == 5 {
			return pixel.Black
		}
		return pixel.Transparent
	})
}

func TestRectangleAndEllipse(t *testing.T) {
	forEachBackend(t, func(t *testing.T, newState func(...Option) *State) {
		s := newState()
		mustExecute(t, s, RectStart{image.Pt(7, 7)}, RectEnd{P: image.Pt(1, 1)})
		checkCanvas(t, s, func(x, y int) pixel.Color {
			inside := x >= 1 && x <= 7 && y >= 1 && y <= 7
			border := x == 1 || x == 7 || y == 1 || y == 7
			if inside && border {
				return pixel.Black
			}
			return pixel.Transparent
		})

		mustExecute(t, s, ClearCanvas{}, EllipseStart{image.Pt(0, 0)}, EllipseEnd{P: image.Pt(4, 4)})
		c := s.Canvas()
		for _, p := range []image.Point{{2, 0}, {0, 2}, {4, 2}, {2, 4}} {
			if c.Pixel(p) != pixel.Black {
				t.Errorf("ellipse misses %v", p)
			}
		}
		for _, p := range []image.Point{{0, 0}, {4, 4}, {2, 2}} {
			if c.Pixel(p) != pixel.Transparent {
				t.Errorf("ellipse outline covers %v", p)
			}
		}

		mustExecute(t, s, ClearCanvas{}, EllipseStart{image.Pt(0, 0)}, EllipseEnd{P: image.Pt(4, 4), Filled: true})
		if s.Canvas().Pixel(image.Pt(2, 2)) != pixel.Black {
			t.Error("filled ellipse misses its centre")
		}
	})
}

func TestTransforms(t *testing.T) {
	forEachBackend(t, func(t *testing.T, newState func(...Option) *State) {
		s := newState(WithPalette([]pixel.Color{red, pixel.White}))
		mustExecute(t, s, SetMainColor{pixel.RGBA(200, 30, 30, 255)}, Brush{image.Pt(0, 0)}, BrushEnd{})

		if eff := mustExecute(t, s, ApplyTransform{TransformApplyPalette}); eff != EffectUpdate {
			t.Fatalf("apply palette effect = %v", eff)
		}
		if got := s.Canvas().Pixel(image.Pt(0, 0)); got != red {
			t.Fatalf("pixel = %v, want red", got)
		}
		if got := s.Canvas().Pixel(image.Pt(1, 0)); got != pixel.Transparent {
			t.Fatalf("transparent pixel changed to %v", got)
		}

		mustExecute(t, s, SetMainColor{pixel.White}, ApplyTransform{TransformSilhouette})
		if got := s.Canvas().Pixel(image.Pt(0, 0)); got != pixel.White {
			t.Fatalf("silhouette pixel = %v", got)
		}

		mustExecute(t, s, ApplyTransform{TransformFlipHorizontal}, ApplyTransform{TransformFlipVertical})
		if got := s.Canvas().Pixel(image.Pt(side-1, side-1)); got != pixel.White {
			t.Fatalf("flipped pixel = %v", got)
		}
	})
}

func TestApplyEmptyPaletteIsNoop(t *testing.T) {
	s := New(pixel.Sz(2, 2), WithPalette(nil))
	mustExecute(t, s, Bucket{image.Pt(0, 0)})
	if eff := mustExecute(t, s, ApplyTransform{TransformApplyPalette}); eff != EffectNone {
		t.Fatalf("effect = %v, want none", eff)
	}
}

func TestPaletteEvents(t *testing.T) {
	s := New(pixel.Sz(2, 2), WithPalette(nil))
	mustExecute(t, s, AddToPalette{red}, AddToPalette{red}, AddToPalette{pixel.White})
	if got := s.Palette(); len(got) != 2 {
		t.Fatalf("palette = %v", got)
	}
	mustExecute(t, s, RemoveFromPalette{pixel.Black})
	if got := s.Palette(); len(got) != 2 {
		t.Fatalf("removing an absent colour changed the palette: %v", got)
	}
	mustExecute(t, s, RemoveFromPalette{red})
	if got := s.Palette(); len(got) != 1 || got[0] != pixel.White {
		t.Fatalf("palette = %v", got)
	}
}

func TestSpriteFrames(t *testing.T) {
	s := New(pixel.Sz(8, 4))
	if eff := mustExecute(t, s, SetSpritesheet{pixel.Sz(4, 2)}); eff != EffectNone {
		t.Fatalf("effect = %v", eff)
	}
	frames := s.SpriteFrames()
	if len(frames) != 8 {
		t.Fatalf("frames = %v", frames)
	}
	if frames[5] != image.Rect(2, 2, 4, 4) {
		t.Fatalf("frame 5 = %v", frames[5])
	}
	mustExecute(t, s, SetSpritesheet{pixel.Sz(0, -3)})
	if s.Spritesheet() != pixel.Sz(1, 1) {
		t.Fatalf("spritesheet = %v", s.Spritesheet())
	}
}

func TestParseToolRoundTrip(t *testing.T) {
	for _, tool := range Tools() {
		got, err := ParseTool(tool.String())
		if err != nil || got != tool {
			t.Errorf("ParseTool(%q) = %v, %v", tool.String(), got, err)
		}
	}
	if _, err := ParseTool("lasso"); err == nil {
		t.Fatal("expected error")
	}
}

func TestShapesFarOutsideCanvas(t *testing.T) {
	const far = 1_000_000_000
	s := New(pixel.Sz(4, 4))

	mustExecute(t, s, RectStart{image.Pt(0, 0)}, RectEnd{P: image.Pt(far, far)})
	checkCanvas(t, s, func(x, y int) pixel.Color {
		if x == 0 || y == 0 {
			return pixel.Black
		}
		return pixel.Transparent
	})

	mustExecute(t, s, ClearCanvas{}, RectStart{image.Pt(-far, -far)}, RectEnd{P: image.Pt(far, far), Filled: true})
	checkCanvas(t, s, func(x, y int) pixel.Color { return pixel.Black })

	mustExecute(t, s, ClearCanvas{})
	if eff := mustExecute(t, s, EllipseStart{image.Pt(-far, -far)}, EllipseEnd{P: image.Pt(far, far)}); eff != EffectNone {
		t.Fatalf("outline far from the canvas changed it: %v", eff)
	}
	mustExecute(t, s, EllipseStart{image.Pt(-far, -far)}, EllipseEnd{P: image.Pt(far, far), Filled: true})
	checkCanvas(t, s, func(x, y int) pixel.Color { return pixel.Black })

	mustExecute(t, s, ClearCanvas{}, LineStart{image.Pt(-far, 2)}, LineEnd{image.Pt(far, 2)})
	mustExecute(t, s, LineStart{image.Pt(0, 0)}, LineEnd{image.Pt(far, far)})
	checkCanvas(t, s, func(x, y int) pixel.Color {
		if y == 2 || x == y {
			return pixel.Black
		}
		return pixel.Transparent
	})
}

func TestLineSteps(t *testing.T) {
	var got []image.Point
	line(image.Pt(0, 0), image.Pt(4, 2), image.Rect(0, 0, 10, 10), func(p image.Point) { got = append(got, p) })
	want := []image.Point{{0, 0}, {1, 1}, {2, 1}, {3, 2}, {4, 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("line = %v, want %v", got, want)
	}
	got = nil
	line(image.Pt(5, 9), image.Pt(5, -30), image.Rect(0, 0, 10, 10), func(p image.Point) { got = append(got, p) })
	if len(got) != 10 || got[0] != image.Pt(5, 9) || got[9] != image.Pt(5, 0) {
		t.Fatalf("clipped vertical line = %v", got)
	}
}
