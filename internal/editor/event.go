package editor

import (
	"image"

	"github.com/example/pixelpad/internal/pixel"
)

// Event is an editing command. The set is closed: only types in this package
// implement it, and State.Execute is the only way to apply one.
type Event interface {
	isEvent()
}

type (
	// BrushStart begins a freehand stroke in the main colour.
	BrushStart struct{}
	// Brush paints from the previous stroke point to P.
	Brush struct{ P image.Point }
	// BrushEnd finishes the stroke.
	BrushEnd struct{}

	// EraseStart begins an erasing stroke.
	EraseStart struct{}
	// Erase clears pixels from the previous stroke point to P.
	Erase struct{ P image.Point }
	// EraseEnd finishes the erasing stroke.
	EraseEnd struct{}

	// LineStart anchors a straight line.
	LineStart struct{ P image.Point }
	// LineEnd draws from the anchor to P inclusive.
	LineEnd struct{ P image.Point }

	RectStart struct{ P image.Point }
	RectEnd   struct {
		P      image.Point
		Filled bool
	}

	EllipseStart struct{ P image.Point }
	EllipseEnd   struct {
		P      image.Point
		Filled bool
	}

	// Bucket flood fills the region containing P.
	Bucket struct{ P image.Point }
	// Eyedropper picks the active layer colour at P as the main colour.
	Eyedropper struct{ P image.Point }

	SelectionStart  struct{ P image.Point }
	SelectionEnd    struct{ P image.Point }
	ClearSelection  struct{}
	DeleteSelection struct{}
	// Copy stores the selection (or the whole layer) in the editor
	// clipboard.
	Copy struct{}
	// Paste places the editor clipboard with its top-left corner at P and
	// selects it.
	Paste struct{ P image.Point }

	// MoveStart picks up the selection (or the whole layer).
	MoveStart struct{ P image.Point }
	// Move places the picked up pixels translated by P minus the start
	// point.
	Move    struct{ P image.Point }
	MoveEnd struct{}

	SetMainColor   struct{ Color pixel.Color }
	SetTool        struct{ Tool Tool }
	SetSpritesheet struct{ Size pixel.Size }
	ClearCanvas    struct{}
	ResizeCanvas   struct{ Size pixel.Size }
	ApplyTransform struct{ Transform Transform }

	// LoadPalette extends the palette from a palette file, an image or a
	// named built-in palette.
	LoadPalette       struct{ Path string }
	AddToPalette      struct{ Color pixel.Color }
	RemoveFromPalette struct{ Color pixel.Color }

	// Save exports the composite image, choosing the format from the
	// extension.
	Save        struct{ Path string }
	SaveProject struct{ Path string }
	LoadProject struct{ Path string }
	// OpenFile pastes an image into the active layer, growing the canvas
	// to fit it.
	OpenFile struct{ Path string }

	Undo struct{}
	Redo struct{}

	NewLayerAbove      struct{}
	NewLayerBelow      struct{}
	DeleteLayer        struct{ Index int }
	SetActiveLayer     struct{ Index int }
	SetLayerVisibility struct {
		Index   int
		Visible bool
	}
	SetLayerAlpha struct {
		Index int
		Alpha uint8
	}
	MoveLayerUp   struct{ Index int }
	MoveLayerDown struct{ Index int }
	RenameLayer   struct {
		Index int
		Name  string
	}
)

func (BrushStart) isEvent()         {}
func (Brush) isEvent()              {}
func (BrushEnd) isEvent()           {}
func (EraseStart) isEvent()         {}
func (Erase) isEvent()              {}
func (EraseEnd) isEvent()           {}
func (LineStart) isEvent()          {}
func (LineEnd) isEvent()            {}
func (RectStart) isEvent()          {}
func (RectEnd) isEvent()            {}
func (EllipseStart) isEvent()       {}
func (EllipseEnd) isEvent()         {}
func (Bucket) isEvent()             {}
func (Eyedropper) isEvent()         {}
func (SelectionStart) isEvent()     {}
func (SelectionEnd) isEvent()       {}
func (ClearSelection) isEvent()     {}
func (DeleteSelection) isEvent()    {}
func (Copy) isEvent()               {}
func (Paste) isEvent()              {}
func (MoveStart) isEvent()          {}
func (Move) isEvent()               {}
func (MoveEnd) isEvent()            {}
func (SetMainColor) isEvent()       {}
func (SetTool) isEvent()            {}
func (SetSpritesheet) isEvent()     {}
func (ClearCanvas) isEvent()        {}
func (ResizeCanvas) isEvent()       {}
func (ApplyTransform) isEvent()     {}
func (LoadPalette) isEvent()        {}
func (AddToPalette) isEvent()       {}
func (RemoveFromPalette) isEvent()  {}
func (Save) isEvent()               {}
func (SaveProject) isEvent()        {}
func (LoadProject) isEvent()        {}
func (OpenFile) isEvent()           {}
func (Undo) isEvent()               {}
func (Redo) isEvent()               {}
func (NewLayerAbove) isEvent()      {}
func (NewLayerBelow) isEvent()      {}
func (DeleteLayer) isEvent()        {}
func (SetActiveLayer) isEvent()     {}
func (SetLayerVisibility) isEvent() {}
func (SetLayerAlpha) isEvent()      {}
func (MoveLayerUp) isEvent()        {}
func (MoveLayerDown) isEvent()      {}
func (RenameLayer) isEvent()        {}
