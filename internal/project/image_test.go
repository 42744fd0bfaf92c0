package project

import (
	"bytes"
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/pixelpad/internal/bitmap"
	"github.com/example/pixelpad/internal/pixel"
)

func TestFormat(t *testing.T) {
	tests := map[string]string{
		"a.png":  "png",
		"a.JPG":  "jpeg",
		"a.jpeg": "jpeg",
		"a.bmp":  "bmp",
		"a.tif":  "tiff",
		"a.TIFF": "tiff",
		"a.pdf":  "pdf",
	}
	for path, want := range tests {
		got, err := Format(path)
		if err != nil || got != want {
			t.Errorf("Format(%q) = %q, %v; want %q", path, got, err, want)
		}
	}
	if _, err := Format("a.xcf"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestExportDecodeRoundTrip(t *testing.T) {
	bm := bitmap.NRGBA.New(pixel.Sz(3, 2), pixel.Transparent)
	red := pixel.RGBA(255, 0, 0, 255)
	bm.SetPixel(image.Pt(2, 1), red)
	dir := t.TempDir()
	for _, name := range []string{"out.png", "out.bmp", "out.tiff"} {
		path := filepath.Join(dir, name)
		if err := Export(path, pixel.ToNRGBA(bm), ExportOptions{}); err != nil {
			t.Fatalf("Export(%s): %v", name, err)
		}
		img, err := OpenImage(path)
		if err != nil {
			t.Fatalf("OpenImage(%s): %v", name, err)
		}
		if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
			t.Fatalf("%s bounds = %v", name, img.Bounds())
		}
		if got := pixel.FromColor(img.At(2, 1)); got != red {
			t.Errorf("%s pixel = %v, want %v", name, got, red)
		}
	}
}

func TestExportJPEGAndPDF(t *testing.T) {
	bm := bitmap.Buffer.New(pixel.Sz(4, 2), pixel.Transparent)
	dir := t.TempDir()
	jpg := filepath.Join(dir, "out.jpg")
	if err := Export(jpg, pixel.ToNRGBA(bm), ExportOptions{Background: pixel.White}); err != nil {
		t.Fatalf("Export jpeg: %v", err)
	}
	img, err := OpenImage(jpg)
	if err != nil {
		t.Fatalf("OpenImage: %v", err)
	}
	if c := pixel.FromColor(img.At(0, 0)); c.R < 240 || c.A != 255 {
		t.Fatalf("jpeg background = %v, want white", c)
	}

	pdf := filepath.Join(dir, "out.pdf")
	frames := []image.Rectangle{image.Rect(0, 0, 2, 2), image.Rect(2, 0, 4, 2)}
	if err := Export(pdf, pixel.ToNRGBA(bm), ExportOptions{Frames: frames}); err != nil {
		t.Fatalf("Export pdf: %v", err)
	}
	data, err := os.ReadFile(pdf)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("pdf header = %q", data[:8])
	}
}

func TestDecodeUnknown(t *testing.T) {
	_, _, err := DecodeImage(bytes.NewReader([]byte("hello")))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestExportFailureKeepsPreviousFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")
	if err := os.WriteFile(path, []byte("previous"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Export(path, image.NewNRGBA(image.Rect(0, 0, 0, 0)), ExportOptions{}); err == nil {
		t.Fatal("expected encoding an empty image to fail")
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "previous" {
		t.Fatalf("previous file = %q, %v", data, err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("leftover files: %v", entries)
	}

	missing := filepath.Join(dir, "new.png")
	if err := Export(missing, image.NewNRGBA(image.Rect(0, 0, 0, 0)), ExportOptions{}); err == nil {
		t.Fatal("expected encoding an empty image to fail")
	}
	if _, err := os.Stat(missing); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("failed export created %s: %v", missing, err)
	}
}
