package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/pixelpad/internal/pixel"
)

// Notify holds notification settings.
type Notify struct {
	Save   bool
	Export bool
	Copy   bool
}

// Spritesheet holds the default frame grid for new documents.
type Spritesheet struct {
	Columns int
	Rows    int
}

// Config holds the application configuration.
type Config struct {
	Width     int
	Height    int
	UndoLimit int
	MainColor pixel.Color
	// Palette names the palette new documents start with: a built-in name,
	// a [palette.NAME] section, or a file path.
	Palette    string
	SaveDir    string
	Background pixel.Color

	Spritesheet Spritesheet
	Notify      Notify
	Palettes    map[string][]pixel.Color
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Width:       32,
		Height:      32,
		UndoLimit:   100,
		MainColor:   pixel.Black,
		Palette:     "", // Empty allows fallback to env/default
		Background:  pixel.White,
		Spritesheet: Spritesheet{Columns: 1, Rows: 1},
		Palettes:    make(map[string][]pixel.Color),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	fmt.Fprintf(&sb, "width = %d\n", c.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Height)
	fmt.Fprintf(&sb, "undo_limit = %d\n", c.UndoLimit)
	fmt.Fprintf(&sb, "main_color = %s\n", c.MainColor.Hex())
	fmt.Fprintf(&sb, "background = %s\n", c.Background.Hex())
	if c.Palette != "" {
		fmt.Fprintf(&sb, "palette = %s\n", c.Palette)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[spritesheet]\n")
	fmt.Fprintf(&sb, "columns = %d\n", c.Spritesheet.Columns)
	fmt.Fprintf(&sb, "rows = %d\n", c.Spritesheet.Rows)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var names []string
	for name := range c.Palettes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(&sb, "[palette.%s]\n", name)
		for _, col := range c.Palettes[name] {
			fmt.Fprintf(&sb, "color = %s\n", col.Hex())
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// Size returns the configured canvas size for new documents.
func (c *Config) Size() pixel.Size {
	return pixel.Sz(c.Width, c.Height).Clamp()
}

// Grid returns the configured spritesheet grid.
func (c *Config) Grid() pixel.Size {
	return pixel.Sz(max(1, c.Spritesheet.Columns), max(1, c.Spritesheet.Rows))
}
