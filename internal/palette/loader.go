package palette

import (
	"embed"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/example/pixelpad/internal/pixel"
	"github.com/example/pixelpad/internal/project"
)

//go:embed defaults/*.hex
var embedded embed.FS

// DefaultLimit caps how many colours an image contributes before it is
// quantised.
const DefaultLimit = 256

// Loader resolves palettes by file path or by name.
type Loader struct {
	ConfigDir string
	SystemDir string
	// Named holds palettes defined in configuration. They take precedence
	// over every other source.
	Named map[string][]pixel.Color
	// Limit is the largest number of colours taken from an image. Zero
	// means DefaultLimit.
	Limit int
}

// NewLoader creates a Loader with the standard search paths.
func NewLoader() *Loader {
	home, _ := os.UserHomeDir()
	return &Loader{
		ConfigDir: filepath.Join(home, ".config", "pixelpad", "palettes"),
		SystemDir: "/usr/share/pixelpad/palettes",
	}
}

// Load resolves name in order:
//  1. Named
//  2. an existing file path
//  3. an embedded palette
//  4. ConfigDir
//  5. SystemDir
func (l *Loader) Load(name string) ([]pixel.Color, error) {
	if colors, ok := l.Named[name]; ok {
		return append([]pixel.Color(nil), colors...), nil
	}
	if name == "" || strings.EqualFold(name, "default") {
		return Default().Colors(), nil
	}
	if _, err := os.Stat(name); err == nil {
		return l.LoadFile(name)
	}

	filename := name
	if filepath.Ext(filename) == "" {
		filename += ".hex"
	}
	if f, err := embedded.Open("defaults/" + filename); err == nil {
		defer f.Close()
		return l.read(f, filename)
	}
	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return l.LoadFile(path)
		}
	}
	return nil, fmt.Errorf("palette %q not found", name)
}

// LoadFile reads a palette from a .hex or .gpl file or from any decodable
// image. The result has duplicates removed and keeps first-seen order.
func (l *Loader) LoadFile(path string) ([]pixel.Color, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return l.read(f, path)
}

func (l *Loader) read(r io.Reader, name string) ([]pixel.Color, error) {
	var (
		colors []pixel.Color
		err    error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".hex", ".txt":
		colors, err = ParseHexList(r)
	case ".gpl":
		colors, err = ParseGPL(r)
	default:
		var img image.Image
		img, _, err = project.DecodeImage(r)
		if err == nil {
			colors = l.FromImage(img)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return New(colors...).Colors(), nil
}

// FromImage collects the distinct opaque colours of img in scan order. Fully
// transparent pixels are ignored and alpha is dropped. Images with more
// colours than the limit are reduced by MedianCut.
func (l *Loader) FromImage(img image.Image) []pixel.Color {
	limit := l.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	p := New()
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := pixel.FromColor(img.At(x, y))
			if c.IsTransparent() {
				continue
			}
			p.Add(c.WithAlpha(255))
		}
	}
	if p.Len() > limit {
		return MedianCut(p.Colors(), limit)
	}
	return p.Colors()
}

// Builtin lists the names of the embedded palettes.
func Builtin() []string {
	entries, err := embedded.ReadDir("defaults")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".hex"))
	}
	sort.Strings(names)
	return names
}
