// Package project reads and writes PixelPad documents and exports images.
//
// A project file is a zip archive holding a project.json manifest and one
// lossless PNG per layer named layer_N.png, bottom layer first.
package project

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/example/pixelpad/internal/pixel"
)

// ErrCorruptProject is returned when a project archive is missing entries or
// its entries disagree with the manifest.
var ErrCorruptProject = errors.New("corrupt project")

const manifestName = "project.json"

// FormatVersion is written to every manifest.
const FormatVersion = 1

// Document is the persisted state of one editing session.
type Document struct {
	ID          string
	Size        pixel.Size
	Spritesheet pixel.Size
	ActiveLayer int
	MainColor   pixel.Color
	Palette     []pixel.Color
	Layers      []Layer
}

// Layer is one persisted layer.
type Layer struct {
	Name    string
	Visible bool
	Alpha   uint8
	Bitmap  pixel.Bitmap
}

type manifest struct {
	Version     int          `json:"version"`
	ID          string       `json:"id"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	Spritesheet sheetEntry   `json:"spritesheet"`
	ActiveLayer int          `json:"active_layer"`
	MainColor   string       `json:"main_color"`
	Palette     []string     `json:"palette"`
	Layers      []layerEntry `json:"layers"`
}

type sheetEntry struct {
	Columns int `json:"columns"`
	Rows    int `json:"rows"`
}

type layerEntry struct {
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
	Alpha   uint8  `json:"alpha"`
	Image   string `json:"image"`
}

func layerFile(i int) string { return fmt.Sprintf("layer_%d.png", i) }

// Write encodes doc as a project archive. A missing document ID is filled in.
func Write(w io.Writer, doc *Document) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	m := manifest{
		Version:     FormatVersion,
		ID:          doc.ID,
		Width:       doc.Size.W,
		Height:      doc.Size.H,
		Spritesheet: sheetEntry{Columns: doc.Spritesheet.W, Rows: doc.Spritesheet.H},
		ActiveLayer: doc.ActiveLayer,
		MainColor:   doc.MainColor.Hex(),
	}
	for _, c := range doc.Palette {
		m.Palette = append(m.Palette, c.Hex())
	}
	for i, l := range doc.Layers {
		m.Layers = append(m.Layers, layerEntry{Name: l.Name, Visible: l.Visible, Alpha: l.Alpha, Image: layerFile(i)})
	}

	zw := zip.NewWriter(w)
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	mf, err := zw.Create(manifestName)
	if err != nil {
		return err
	}
	if _, err := mf.Write(data); err != nil {
		return err
	}
	for i, l := range doc.Layers {
		lf, err := zw.Create(layerFile(i))
		if err != nil {
			return err
		}
		// PNG cannot hold an empty image; empty layers are stored as
		// empty entries.
		if l.Bitmap.Size().Empty() {
			continue
		}
		if err := png.Encode(lf, pixel.ToNRGBA(l.Bitmap)); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return zw.Close()
}

// Read decodes a project archive, building layer bitmaps with backend. The
// archive is fully validated before a Document is returned.
func Read(r io.ReaderAt, size int64, backend pixel.Backend) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptProject, err)
	}
	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}
	mf, ok := files[manifestName]
	if !ok {
		return nil, fmt.Errorf("%w: %s not found", ErrCorruptProject, manifestName)
	}
	var m manifest
	if err := readJSON(mf, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptProject, manifestName, err)
	}
	if m.Version > FormatVersion {
		return nil, fmt.Errorf("project version %d: %w", m.Version, ErrUnsupportedFormat)
	}
	if m.Width < 0 || m.Height < 0 {
		return nil, fmt.Errorf("%w: negative size %dx%d", ErrCorruptProject, m.Width, m.Height)
	}
	if _, err := uuid.Parse(m.ID); err != nil {
		return nil, fmt.Errorf("%w: document id: %v", ErrCorruptProject, err)
	}

	doc := &Document{
		ID:          m.ID,
		Size:        pixel.Sz(m.Width, m.Height),
		Spritesheet: pixel.Sz(m.Spritesheet.Columns, m.Spritesheet.Rows),
		ActiveLayer: m.ActiveLayer,
	}
	if doc.MainColor, err = pixel.ParseHex(m.MainColor); err != nil {
		return nil, fmt.Errorf("%w: main color: %v", ErrCorruptProject, err)
	}
	for _, s := range m.Palette {
		c, err := pixel.ParseHex(s)
		if err != nil {
			return nil, fmt.Errorf("%w: palette: %v", ErrCorruptProject, err)
		}
		doc.Palette = append(doc.Palette, c)
	}
	if len(m.Layers) == 0 {
		return nil, fmt.Errorf("%w: no layers", ErrCorruptProject)
	}
	for i, le := range m.Layers {
		f, ok := files[le.Image]
		if !ok {
			return nil, fmt.Errorf("%w: layer %d image %q not found", ErrCorruptProject, i, le.Image)
		}
		bm, err := readLayer(f, doc.Size, backend)
		if err != nil {
			return nil, fmt.Errorf("%w: layer %d: %v", ErrCorruptProject, i, err)
		}
		if bm.Size() != doc.Size {
			return nil, fmt.Errorf("%w: layer %d is %s, want %s", ErrCorruptProject, i, bm.Size(), doc.Size)
		}
		doc.Layers = append(doc.Layers, Layer{Name: le.Name, Visible: le.Visible, Alpha: le.Alpha, Bitmap: bm})
	}
	if doc.ActiveLayer < 0 || doc.ActiveLayer >= len(doc.Layers) {
		doc.ActiveLayer = 0
	}
	return doc, nil
}

func readJSON(f *zip.File, v any) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return json.NewDecoder(rc).Decode(v)
}

func readLayer(f *zip.File, size pixel.Size, backend pixel.Backend) (pixel.Bitmap, error) {
	if f.UncompressedSize64 == 0 && size.Empty() {
		return backend.New(size, pixel.Transparent), nil
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	img, err := png.Decode(rc)
	if err != nil {
		return nil, err
	}
	return pixel.FromImage(backend, img), nil
}

// Save writes doc to path. A failed save leaves any previous file intact.
func Save(path string, doc *Document) error {
	if err := writeAtomic(path, func(w io.Writer) error { return Write(w, doc) }); err != nil {
		return err
	}
	logger().Info("saved project", "path", path, "id", doc.ID, "layers", len(doc.Layers), "size", doc.Size)
	return nil
}

// writeAtomic runs write against a temporary file next to path and renames it
// into place only when write and close both succeed.
func writeAtomic(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".pixelpad-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if err := write(tmp); err != nil {
		if cerr := tmp.Close(); cerr != nil {
			log.Printf("closing %s: %v", tmpName, cerr)
		}
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		log.Printf("chmod %s: %v", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// Load reads the project stored at path.
func Load(path string, backend pixel.Backend) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Read(bytes.NewReader(data), int64(len(data)), backend)
	if err != nil {
		return nil, err
	}
	logger().Info("loaded project", "path", path, "id", doc.ID, "layers", len(doc.Layers), "size", doc.Size)
	return doc, nil
}
