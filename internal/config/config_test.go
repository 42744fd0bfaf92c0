package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/pixelpad/internal/pixel"
)

func TestParse(t *testing.T) {
	input := `
width = 64
height = 48
undo_limit = 20
main_color = #ff0000
background = navy
palette = pico-8
save_dir = /tmp/art

[spritesheet]
columns = 4
rows = 2

[notify]
save = true
export = false
copy = true

[palette.mine]
colors = #111111, #222222
color = white
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Size() != pixel.Sz(64, 48) {
		t.Errorf("Expected size 64x48, got %v", cfg.Size())
	}
	if cfg.UndoLimit != 20 {
		t.Errorf("Expected undo_limit 20, got %d", cfg.UndoLimit)
	}
	if cfg.MainColor != pixel.RGBA(255, 0, 0, 255) {
		t.Errorf("Unexpected main_color: %v", cfg.MainColor)
	}
	if cfg.Background != pixel.RGBA(0, 0, 0x80, 255) {
		t.Errorf("Unexpected background: %v", cfg.Background)
	}
	if cfg.Palette != "pico-8" || cfg.SaveDir != "/tmp/art" {
		t.Errorf("Unexpected palette %q or save_dir %q", cfg.Palette, cfg.SaveDir)
	}
	if cfg.Grid() != pixel.Sz(4, 2) {
		t.Errorf("Expected grid 4x2, got %v", cfg.Grid())
	}
	if !cfg.Notify.Save || cfg.Notify.Export || !cfg.Notify.Copy {
		t.Errorf("Unexpected notify settings: %+v", cfg.Notify)
	}

	mine, ok := cfg.Palettes["mine"]
	if !ok {
		t.Fatal("Expected palette 'mine' to be loaded")
	}
	want := []pixel.Color{pixel.RGBA(0x11, 0x11, 0x11, 255), pixel.RGBA(0x22, 0x22, 0x22, 255), pixel.White}
	if len(mine) != len(want) {
		t.Fatalf("palette mine = %v, want %v", mine, want)
	}
	for i := range want {
		if mine[i] != want[i] {
			t.Errorf("palette mine[%d] = %v, want %v", i, mine[i], want[i])
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bad int", "width = wide", "invalid integer for key width"},
		{"negative", "undo_limit = -1", "negative value"},
		{"bad color", "main_color = #zz", "invalid color for key main_color"},
		{"bad bool", "[notify]\nsave = maybe", "[notify]"},
		{"bad palette color", "[palette.x]\ncolor = nope", "[palette.x]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error to contain %q, got %v", tt.want, err)
			}
		})
	}
}

func TestCircular(t *testing.T) {
	input := `width = 16
height = 16
main_color = #10203040
palette = gameboy
save_dir = /home/user/art

[spritesheet]
columns = 2
rows = 3

[notify]
save = true
export = true
copy = false

[palette.custom]
color = #000000
color = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	generated := cfg.String()

	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	if cfg.Size() != cfg2.Size() || cfg.UndoLimit != cfg2.UndoLimit {
		t.Errorf("Size mismatch: %v/%d vs %v/%d", cfg.Size(), cfg.UndoLimit, cfg2.Size(), cfg2.UndoLimit)
	}
	if cfg.MainColor != cfg2.MainColor || cfg.Background != cfg2.Background {
		t.Errorf("Color mismatch: %v/%v vs %v/%v", cfg.MainColor, cfg.Background, cfg2.MainColor, cfg2.Background)
	}
	if cfg.Palette != cfg2.Palette || cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("Path mismatch: %q/%q vs %q/%q", cfg.Palette, cfg.SaveDir, cfg2.Palette, cfg2.SaveDir)
	}
	if cfg.Spritesheet != cfg2.Spritesheet {
		t.Errorf("Spritesheet mismatch: %+v vs %+v", cfg.Spritesheet, cfg2.Spritesheet)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}

	p1 := cfg.Palettes["custom"]
	p2 := cfg2.Palettes["custom"]
	if len(p1) != 2 || len(p2) != 2 || p1[1] != p2[1] {
		t.Errorf("Custom palette mismatch: %v vs %v", p1, p2)
	}
}

func TestLoaderOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.rc")
	if err := os.WriteFile(path, []byte("width = 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := NewLoader("v1.0.0", path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Width != 8 || cfg.Height != 32 {
		t.Errorf("Unexpected size %dx%d", cfg.Width, cfg.Height)
	}
}

func TestLoaderDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := NewLoader("v1.0.0", "").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Size() != pixel.Sz(32, 32) || cfg.UndoLimit != 100 {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
}

func TestPaletteName(t *testing.T) {
	cfg := New()
	cfg.Palette = "db16"
	t.Setenv(PaletteEnv, "")
	if got := cfg.PaletteName(""); got != "db16" {
		t.Errorf("config fallback = %q", got)
	}
	t.Setenv(PaletteEnv, "gameboy")
	if got := cfg.PaletteName(""); got != "gameboy" {
		t.Errorf("env = %q", got)
	}
	if got := cfg.PaletteName("pico-8"); got != "pico-8" {
		t.Errorf("flag = %q", got)
	}
}
