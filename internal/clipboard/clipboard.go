// Package clipboard moves canvas images and palettes between PixelPad and the
// system clipboard. Images travel as PNG. Palettes travel as .hex text, which
// other programs see as plain text.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/example/pixelpad/internal/palette"
	"github.com/example/pixelpad/internal/pixel"
)

var errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")

// ErrNoImage is returned when the clipboard holds no image data.
var ErrNoImage = errors.New("clipboard does not contain image data")

// ErrNoPalette is returned when the clipboard holds no colours.
var ErrNoPalette = errors.New("clipboard does not contain a palette")

// kind is a payload PixelPad places on or takes from the clipboard.
type kind int

const (
	kindImage kind = iota
	kindPalette
)

// offer is the current clipboard payload and how it is encoded.
type offer struct {
	kind kind
	data []byte
}

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodePNG(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrNoImage
	}
	return png.Decode(bytes.NewReader(data))
}

func encodePalette(colors []pixel.Color) ([]byte, error) {
	if len(colors) == 0 {
		return nil, fmt.Errorf("copy palette: %w", ErrNoPalette)
	}
	var buf bytes.Buffer
	if err := palette.WriteHexList(&buf, colors); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodePalette(data []byte) ([]pixel.Color, error) {
	// STRING replies may carry a trailing NUL.
	data = bytes.TrimRight(data, "\x00")
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrNoPalette
	}
	colors, err := palette.ParseHexList(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("clipboard palette: %w", err)
	}
	if len(colors) == 0 {
		return nil, ErrNoPalette
	}
	return colors, nil
}

// WriteImage publishes img as PNG.
func WriteImage(img image.Image) error {
	data, err := encodePNG(img)
	if err != nil {
		return err
	}
	return publish(offer{kind: kindImage, data: data})
}

// WriteBitmap publishes b as PNG.
func WriteBitmap(b pixel.Bitmap) error {
	return WriteImage(pixel.ToNRGBA(b))
}

// ReadBitmap reads the clipboard image into a bitmap of the given backend.
func ReadBitmap(backend pixel.Backend) (pixel.Bitmap, error) {
	data, err := fetch(kindImage)
	if err != nil {
		return nil, err
	}
	img, err := decodePNG(data)
	if err != nil {
		return nil, err
	}
	return pixel.FromImage(backend, img), nil
}

// WritePalette publishes colors as .hex text, one colour per line.
func WritePalette(colors []pixel.Color) error {
	data, err := encodePalette(colors)
	if err != nil {
		return err
	}
	return publish(offer{kind: kindPalette, data: data})
}

// ReadPalette parses the clipboard text as a .hex palette.
func ReadPalette() ([]pixel.Color, error) {
	data, err := fetch(kindPalette)
	if err != nil {
		return nil, err
	}
	return decodePalette(data)
}
