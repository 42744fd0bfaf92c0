package editor

import (
	"image"
	"testing"

	"github.com/example/pixelpad/internal/pixel"
)

func TestSelectionNormalisedAndClipped(t *testing.T) {
	s := New(pixel.Sz(side, side))
	if eff := mustExecute(t, s, SelectionStart{image.Pt(12, 8)}, SelectionEnd{image.Pt(6, -3)}); eff != EffectUpdate {
		t.Fatalf("effect = %v", eff)
	}
	sel, ok := s.Selection()
	if !ok || sel != image.Rect(6, 0, side, 9) {
		t.Fatalf("selection = %v, %v", sel, ok)
	}
	if eff := mustExecute(t, s, ClearSelection{}); eff != EffectUpdate {
		t.Fatalf("clear effect = %v", eff)
	}
	if _, ok := s.Selection(); ok {
		t.Fatal("selection still active")
	}
	if eff := mustExecute(t, s, ClearSelection{}); eff != EffectNone {
		t.Fatalf("second clear effect = %v", eff)
	}
}

func TestDrawingClippedToSelection(t *testing.T) {
	s := New(pixel.Sz(side, side))
	mustExecute(t, s,
		SelectionStart{image.Pt(0, 0)}, SelectionEnd{image.Pt(4, 9)},
		LineStart{image.Pt(0, 0)}, LineEnd{image.Pt(9, 9)},
	)
	checkCanvas(t, s, func(x, y int) pixel.Color {
		if x == y && x <= 4 {
			return pixel.Black
		}
		return pixel.Transparent
	})
}

func TestDeleteSelection(t *testing.T) {
	s := New(pixel.Sz(side, side))
	mustExecute(t, s,
		Bucket{image.Pt(0, 0)},
		SelectionStart{image.Pt(1, 1)}, SelectionEnd{image.Pt(2, 2)},
		DeleteSelection{},
	)
	checkCanvas(t, s, func(x, y int) pixel.Color {
		if x >= 1 && x <= 2 && y >= 1 && y <= 2 {
			return pixel.Transparent
		}
		return pixel.Black
	})
}

func TestMoveSelection(t *testing.T) {
	forEachBackend(t, func(t *testing.T, newState func(...Option) *State) {
		s := newState()
		mustExecute(t, s,
			SetMainColor{red}, Brush{image.Pt(1, 1)}, BrushEnd{},
			SelectionStart{image.Pt(0, 0)}, SelectionEnd{image.Pt(2, 2)},
			MoveStart{image.Pt(5, 5)},
		)
		if eff := mustExecute(t, s, Move{image.Pt(6, 5)}); eff != EffectUpdate {
			t.Fatalf("move effect = %v", eff)
		}
		mustExecute(t, s, Move{image.Pt(8, 7)}, MoveEnd{})

		checkCanvas(t, s, func(x, y int) pixel.Color {
			if x == 4 && y == 3 {
				return red
			}
			return pixel.Transparent
		})
		if sel, _ := s.Selection(); sel != image.Rect(3, 2, 6, 5) {
			t.Fatalf("selection = %v, want it to follow the content", sel)
		}

		mustExecute(t, s, Undo{})
		if s.Canvas().Pixel(image.Pt(1, 1)) != red || s.Canvas().Pixel(image.Pt(4, 3)) != pixel.Transparent {
			t.Fatal("undo did not restore the pre-move layer")
		}
	})
}

func TestMoveWholeLayerOffCanvas(t *testing.T) {
	s := New(pixel.Sz(4, 4))
	mustExecute(t, s,
		Brush{image.Pt(0, 0)}, Brush{image.Pt(3, 0)}, BrushEnd{},
		MoveStart{image.Pt(0, 0)}, Move{image.Pt(2, 1)}, MoveEnd{},
	)
	checkCanvas(t, s, func(x, y int) pixel.Color {
		if y == 1 && x >= 2 {
			return pixel.Black
		}
		return pixel.Transparent
	})
	if _, ok := s.Selection(); ok {
		t.Fatal("moving without a selection created one")
	}
}

func TestCopyPaste(t *testing.T) {
	s := New(pixel.Sz(side, side))
	if eff := mustExecute(t, s, Paste{image.Pt(0, 0)}); eff != EffectNone {
		t.Fatalf("paste with empty clipboard = %v", eff)
	}
	mustExecute(t, s,
		Brush{image.Pt(0, 0)}, BrushEnd{},
		SelectionStart{image.Pt(0, 0)}, SelectionEnd{image.Pt(1, 1)},
		Copy{},
	)
	if eff := mustExecute(t, s, Paste{image.Pt(8, 8)}); eff != EffectUpdate {
		t.Fatalf("paste effect = %v", eff)
	}
	checkCanvas(t, s, func(x, y int) pixel.Color {
		if (x == 0 && y == 0) || (x == 8 && y == 8) {
			return pixel.Black
		}
		return pixel.Transparent
	})
	if sel, _ := s.Selection(); sel != image.Rect(8, 8, 10, 10) {
		t.Fatalf("selection = %v", sel)
	}
}
