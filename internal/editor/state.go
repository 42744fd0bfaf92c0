// Package editor is the pixel-art editing engine. A State holds a layered
// document and mutates it only through Execute, which returns an Effect that
// tells the caller how to refresh its view.
//
// A State is not safe for concurrent use.
package editor

import (
	"fmt"
	"image"

	"github.com/example/pixelpad/internal/bitmap"
	"github.com/example/pixelpad/internal/palette"
	"github.com/example/pixelpad/internal/pixel"
	"github.com/example/pixelpad/internal/render"
)

// State is the aggregate editing session.
type State struct {
	backend pixel.Backend
	loader  *palette.Loader

	id          string
	size        pixel.Size
	layers      []*layer
	active      int
	nextLayer   int
	layerSeq    int
	tool        Tool
	mainColor   pixel.Color
	palette     *palette.Palette
	spritesheet pixel.Size
	background  pixel.Color

	// selection is empty when nothing is selected.
	selection image.Rectangle
	clipboard pixel.Bitmap

	history *history
	gesture gesture
}

// Option modifies a State during creation.
type Option func(*State)

// WithBackend selects the bitmap representation. The default is bitmap.NRGBA.
func WithBackend(b pixel.Backend) Option { return func(s *State) { s.backend = b } }

// WithMainColor sets the initial drawing colour.
func WithMainColor(c pixel.Color) Option { return func(s *State) { s.mainColor = c } }

// WithPalette replaces the initial palette.
func WithPalette(colors []pixel.Color) Option {
	return func(s *State) { s.palette = palette.New(colors...) }
}

// WithUndoLimit bounds the undo stack.
func WithUndoLimit(n int) Option { return func(s *State) { s.history = newHistory(n) } }

// WithSpritesheet sets the initial spritesheet grid as columns by rows.
func WithSpritesheet(grid pixel.Size) Option {
	return func(s *State) { s.spritesheet = clampGrid(grid) }
}

// WithPaletteLoader sets how LoadPalette resolves names and files.
func WithPaletteLoader(l *palette.Loader) Option { return func(s *State) { s.loader = l } }

// WithBackground sets the colour used when exporting to formats without
// alpha.
func WithBackground(c pixel.Color) Option { return func(s *State) { s.background = c } }

// New creates a State with one transparent layer of the given size.
func New(size pixel.Size, opts ...Option) *State {
	s := &State{
		backend:     bitmap.NRGBA,
		size:        size.Clamp(),
		tool:        ToolBrush,
		mainColor:   pixel.Black,
		palette:     palette.Default(),
		spritesheet: pixel.Sz(1, 1),
		background:  pixel.White,
	}
	for _, o := range opts {
		o(s)
	}
	if s.history == nil {
		s.history = newHistory(DefaultUndoLimit)
	}
	if s.loader == nil {
		s.loader = palette.NewLoader()
	}
	s.layers = []*layer{s.newLayer()}
	return s
}

func clampGrid(g pixel.Size) pixel.Size {
	return pixel.Sz(max(g.W, 1), max(g.H, 1))
}

func (s *State) newLayer() *layer {
	s.nextLayer++
	s.layerSeq++
	return &layer{
		id:      s.layerSeq,
		name:    fmt.Sprintf("Layer %d", s.nextLayer),
		visible: true,
		alpha:   255,
		canvas:  newCanvas(s.backend.New(s.size, pixel.Transparent)),
	}
}

func (s *State) current() *layer { return s.layers[s.active] }

// Canvas returns the active layer's pixels.
func (s *State) Canvas() *Canvas { return s.current().canvas }

// LayerCanvas returns the pixels of layer i, or nil when i is out of range.
func (s *State) LayerCanvas(i int) *Canvas {
	if i < 0 || i >= len(s.layers) {
		return nil
	}
	return s.layers[i].canvas
}

// Composite blends the visible layers bottom to top into a fresh image.
func (s *State) Composite() *image.NRGBA {
	layers := make([]render.Layer, len(s.layers))
	for i, l := range s.layers {
		layers[i] = render.Layer{Bitmap: l.canvas.bm, Visible: l.visible, Alpha: l.alpha}
	}
	return render.Composite(s.size, layers)
}

func (s *State) Size() pixel.Size        { return s.size }
func (s *State) Width() int              { return s.size.W }
func (s *State) Height() int             { return s.size.H }
func (s *State) MainColor() pixel.Color  { return s.mainColor }
func (s *State) SelectedTool() Tool      { return s.tool }
func (s *State) Palette() []pixel.Color  { return s.palette.Colors() }
func (s *State) ActiveLayer() int        { return s.active }
func (s *State) Spritesheet() pixel.Size { return s.spritesheet }

// ID is the document identifier assigned when the project is first saved.
func (s *State) ID() string { return s.id }

// Layers describes the layer stack, bottom first.
func (s *State) Layers() []LayerInfo {
	out := make([]LayerInfo, len(s.layers))
	for i, l := range s.layers {
		out[i] = LayerInfo{Name: l.name, Visible: l.visible, Alpha: l.alpha}
	}
	return out
}

// Selection returns the selected rectangle and whether one is active.
func (s *State) Selection() (image.Rectangle, bool) {
	return s.selection, !s.selection.Empty()
}

// SpriteFrames returns the spritesheet cells in row-major order. Cells that
// would be narrower or shorter than one pixel yield no frames.
func (s *State) SpriteFrames() []image.Rectangle {
	cols, rows := s.spritesheet.W, s.spritesheet.H
	cw, ch := s.size.W/cols, s.size.H/rows
	if cw == 0 || ch == 0 {
		return nil
	}
	frames := make([]image.Rectangle, 0, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			frames = append(frames, image.Rect(c*cw, r*ch, (c+1)*cw, (r+1)*ch))
		}
	}
	return frames
}

// clip is the area drawing operations may touch.
func (s *State) clip() image.Rectangle {
	if !s.selection.Empty() {
		return s.selection
	}
	return s.size.Bounds()
}

// checkpoint records the current document on the undo stack.
func (s *State) checkpoint() { s.history.push(s.snapshot()) }

// mutate runs f against the active canvas and records history only if f
// reports a change.
func (s *State) mutate(f func(c *Canvas) bool) Effect {
	before := s.snapshot()
	if !f(s.Canvas()) {
		return EffectNone
	}
	s.history.push(before)
	return EffectUpdate
}

// Execute applies ev and reports how the view should refresh. Errors are only
// returned for file operations, as *FileError, and leave the document
// unchanged.
func (s *State) Execute(ev Event) (Effect, error) {
	if s.gesture.kind != gestureIdle && !s.continues(ev) {
		s.finishGesture()
	}
	switch e := ev.(type) {
	case BrushStart:
		s.beginStroke(gestureBrush)
	case Brush:
		return s.stroke(gestureBrush, e.P, s.mainColor), nil
	case BrushEnd, EraseEnd, MoveEnd:
		s.finishGesture()
	case EraseStart:
		s.beginStroke(gestureErase)
	case Erase:
		return s.stroke(gestureErase, e.P, pixel.Transparent), nil

	case LineStart:
		s.beginShape(gestureLine, e.P)
	case LineEnd:
		return s.endShape(gestureLine, e.P, false), nil
	case RectStart:
		s.beginShape(gestureRect, e.P)
	case RectEnd:
		return s.endShape(gestureRect, e.P, e.Filled), nil
	case EllipseStart:
		s.beginShape(gestureEllipse, e.P)
	case EllipseEnd:
		return s.endShape(gestureEllipse, e.P, e.Filled), nil

	case Bucket:
		col := s.mainColor
		clip := s.clip()
		return s.mutate(func(c *Canvas) bool { return floodFill(c, e.P, col, clip) }), nil
	case Eyedropper:
		if e.P.In(s.size.Bounds()) {
			s.mainColor = s.Canvas().Pixel(e.P)
		}

	case SelectionStart:
		s.beginShape(gestureSelection, e.P)
	case SelectionEnd:
		return s.endSelection(e.P), nil
	case ClearSelection:
		if s.selection.Empty() {
			return EffectNone, nil
		}
		s.selection = image.Rectangle{}
		return EffectUpdate, nil
	case DeleteSelection:
		clip := s.clip()
		return s.mutate(func(c *Canvas) bool { return c.fill(clip, pixel.Transparent) }), nil
	case Copy:
		s.clipboard = s.Canvas().crop(s.backend, s.clip())
	case Paste:
		return s.paste(e.P), nil
	case MoveStart:
		s.beginMove(e.P)
	case Move:
		return s.move(e.P), nil

	case SetMainColor:
		s.mainColor = e.Color
	case SetTool:
		s.tool = e.Tool
	case SetSpritesheet:
		s.spritesheet = clampGrid(e.Size)
	case ClearCanvas:
		return s.mutate(func(c *Canvas) bool { return c.fill(c.Bounds(), pixel.Transparent) }), nil
	case ResizeCanvas:
		return s.resize(e.Size.Clamp()), nil
	case ApplyTransform:
		return s.transform(e.Transform), nil

	case LoadPalette:
		colors, err := s.loader.Load(e.Path)
		if err != nil {
			return EffectNone, &FileError{Op: "load palette", Path: e.Path, Err: err}
		}
		s.palette.Extend(colors)
	case AddToPalette:
		s.palette.Add(e.Color)
	case RemoveFromPalette:
		s.palette.Remove(e.Color)

	case Save:
		return EffectNone, s.save(e.Path)
	case SaveProject:
		return EffectNone, s.saveProject(e.Path)
	case LoadProject:
		return s.loadProject(e.Path)
	case OpenFile:
		return s.openFile(e.Path)

	case Undo:
		return s.undo(), nil
	case Redo:
		return s.redo(), nil

	case NewLayerAbove:
		return s.insertLayer(s.active + 1), nil
	case NewLayerBelow:
		return s.insertLayer(s.active), nil
	case DeleteLayer:
		return s.deleteLayer(e.Index), nil
	case SetActiveLayer:
		if s.validLayer(e.Index) {
			s.active = e.Index
		}
	case SetLayerVisibility:
		if !s.validLayer(e.Index) || s.layers[e.Index].visible == e.Visible {
			return EffectNone, nil
		}
		s.layers[e.Index].visible = e.Visible
		return EffectUpdate, nil
	case SetLayerAlpha:
		if !s.validLayer(e.Index) || s.layers[e.Index].alpha == e.Alpha {
			return EffectNone, nil
		}
		s.layers[e.Index].alpha = e.Alpha
		return EffectUpdate, nil
	case MoveLayerUp:
		return s.swapLayers(e.Index, e.Index+1), nil
	case MoveLayerDown:
		return s.swapLayers(e.Index, e.Index-1), nil
	case RenameLayer:
		if s.validLayer(e.Index) {
			s.layers[e.Index].name = e.Name
		}
	default:
		return EffectNone, fmt.Errorf("unknown event %T", ev)
	}
	return EffectNone, nil
}

func (s *State) resize(size pixel.Size) Effect {
	if size == s.size {
		return EffectNone
	}
	s.checkpoint()
	s.resizeLayers(size)
	return EffectNew
}

func (s *State) resizeLayers(size pixel.Size) {
	for _, l := range s.layers {
		bm := s.backend.New(size, pixel.Transparent)
		bm.SetFrom(l.canvas.bm)
		l.canvas = newCanvas(bm)
	}
	s.size = size
	s.selection = s.selection.Intersect(size.Bounds())
	if s.selection.Empty() {
		s.selection = image.Rectangle{}
	}
}

func (s *State) transform(t Transform) Effect {
	switch t {
	case TransformSilhouette:
		col := s.mainColor
		return s.mutate(func(c *Canvas) bool { return render.Silhouette(c.bm, col) })
	case TransformApplyPalette:
		colors := s.palette.Colors()
		return s.mutate(func(c *Canvas) bool { return render.ApplyPalette(c.bm, colors) })
	case TransformFlipHorizontal:
		return s.mutate(func(c *Canvas) bool {
			if c.Width() < 2 {
				return false
			}
			render.FlipHorizontal(c.bm)
			return true
		})
	case TransformFlipVertical:
		return s.mutate(func(c *Canvas) bool {
			if c.Height() < 2 {
				return false
			}
			render.FlipVertical(c.bm)
			return true
		})
	}
	return EffectNone
}
