package project

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/pixelpad/internal/pixel"
	"github.com/example/pixelpad/internal/render"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// ErrUnsupportedFormat is returned when a file extension or image payload is
// not one of the known formats.
var ErrUnsupportedFormat = errors.New("unsupported format")

// DecodeImage decodes any registered raster format.
func DecodeImage(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, "", fmt.Errorf("decode image: %w", ErrUnsupportedFormat)
		}
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// OpenImage decodes the image stored at path.
func OpenImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Printf("closing %s: %v", path, cerr)
		}
	}()
	img, format, err := DecodeImage(f)
	if err != nil {
		return nil, err
	}
	logger().Debug("decoded image", "path", path, "format", format, "bounds", img.Bounds())
	return img, nil
}

// ExportOptions controls Export.
type ExportOptions struct {
	// Background is drawn under the image for formats without alpha.
	Background pixel.Color
	// Frames splits the image into pages for multi-page formats. When
	// empty the whole image is one page.
	Frames []image.Rectangle
}

// Format returns the normalised format name for a file path, or an error
// wrapping ErrUnsupportedFormat.
func Format(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png", nil
	case ".jpg", ".jpeg":
		return "jpeg", nil
	case ".bmp":
		return "bmp", nil
	case ".tif", ".tiff":
		return "tiff", nil
	case ".pdf":
		return "pdf", nil
	}
	return "", fmt.Errorf("%q: %w", filepath.Ext(path), ErrUnsupportedFormat)
}

// Encode writes img to w in the named format.
func Encode(w io.Writer, format string, img image.Image, opts ExportOptions) error {
	switch format {
	case "png":
		return png.Encode(w, img)
	case "jpeg":
		return jpeg.Encode(w, render.Flatten(img, opts.Background), &jpeg.Options{Quality: 95})
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case "pdf":
		return writePDF(w, img, opts.Frames)
	}
	return fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
}

// Export writes img to path, picking the format from the extension. A failed
// export leaves any previous file intact.
func Export(path string, img image.Image, opts ExportOptions) error {
	format, err := Format(path)
	if err != nil {
		return err
	}
	err = writeAtomic(path, func(w io.Writer) error {
		if err := Encode(w, format, img, opts); err != nil {
			return fmt.Errorf("encode %s: %w", format, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger().Info("exported image", "path", path, "format", format)
	return nil
}
