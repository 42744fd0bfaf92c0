package editor

import (
	"fmt"
	"image"

	"github.com/example/pixelpad/internal/palette"
	"github.com/example/pixelpad/internal/pixel"
	"github.com/example/pixelpad/internal/project"
)

// FileError reports a failed file operation. The document is left as it was
// before the event.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string { return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err) }

func (e *FileError) Unwrap() error { return e.Err }

func (s *State) save(path string) error {
	opts := project.ExportOptions{Background: s.background}
	if s.spritesheet.Area() > 1 {
		opts.Frames = s.SpriteFrames()
	}
	if err := project.Export(path, s.Composite(), opts); err != nil {
		return &FileError{Op: "save", Path: path, Err: err}
	}
	return nil
}

// Document returns a deep copy of the persisted parts of the state.
func (s *State) Document() *project.Document {
	doc := &project.Document{
		ID:          s.id,
		Size:        s.size,
		Spritesheet: s.spritesheet,
		ActiveLayer: s.active,
		MainColor:   s.mainColor,
		Palette:     s.palette.Colors(),
	}
	for _, l := range s.layers {
		doc.Layers = append(doc.Layers, project.Layer{
			Name:    l.name,
			Visible: l.visible,
			Alpha:   l.alpha,
			Bitmap:  l.canvas.bm.Clone(),
		})
	}
	return doc
}

func (s *State) saveProject(path string) error {
	doc := s.Document()
	if err := project.Save(path, doc); err != nil {
		return &FileError{Op: "save project", Path: path, Err: err}
	}
	s.id = doc.ID
	return nil
}

func (s *State) loadProject(path string) (Effect, error) {
	doc, err := project.Load(path, s.backend)
	if err != nil {
		return EffectNone, &FileError{Op: "load project", Path: path, Err: err}
	}
	s.replace(doc)
	return EffectNew, nil
}

// replace swaps in doc wholesale and forgets history.
func (s *State) replace(doc *project.Document) {
	s.id = doc.ID
	s.size = doc.Size
	s.spritesheet = clampGrid(doc.Spritesheet)
	s.mainColor = doc.MainColor
	s.palette = palette.New(doc.Palette...)
	s.layers = make([]*layer, 0, len(doc.Layers))
	for _, l := range doc.Layers {
		s.layerSeq++
		s.layers = append(s.layers, &layer{id: s.layerSeq, name: l.Name, visible: l.Visible, alpha: l.Alpha, canvas: newCanvas(l.Bitmap)})
	}
	s.nextLayer = len(s.layers)
	if len(s.layers) == 0 {
		s.layers = append(s.layers, s.newLayer())
	}
	s.active = doc.ActiveLayer
	if !s.validLayer(s.active) {
		s.active = 0
	}
	s.selection = image.Rectangle{}
	s.gesture = gesture{}
	s.history.reset()
}

// FromDocument creates a State holding doc.
func FromDocument(doc *project.Document, opts ...Option) *State {
	s := New(doc.Size, opts...)
	s.replace(doc)
	return s
}

// openFile pastes the image at path into the top-left of the active layer,
// growing every layer when the image is larger than the canvas, and selects
// the pasted area.
func (s *State) openFile(path string) (Effect, error) {
	img, err := project.OpenImage(path)
	if err != nil {
		return EffectNone, &FileError{Op: "open", Path: path, Err: err}
	}
	src := pixel.FromImage(s.backend, img)
	s.checkpoint()
	effect := EffectUpdate
	grown := pixel.Sz(max(s.size.W, src.Width()), max(s.size.H, src.Height()))
	if grown != s.size {
		s.resizeLayers(grown)
		effect = EffectNew
	}
	s.Canvas().paste(src, image.Point{}, s.size.Bounds())
	s.selection = src.Size().Bounds()
	if s.selection.Empty() {
		s.selection = image.Rectangle{}
	}
	logger().Info("opened image", "path", path, "size", src.Size(), "canvas", s.size)
	return effect, nil
}
