package project

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// pointsPerPixel maps one canvas pixel to a PDF unit.
const pointsPerPixel = 4.0

// writePDF renders each frame of img onto its own page sized to the frame.
func writePDF(w io.Writer, img image.Image, frames []image.Rectangle) error {
	if len(frames) == 0 {
		frames = []image.Rectangle{img.Bounds()}
	}
	p := gofpdf.New("P", "pt", "A4", "")
	p.SetAutoPageBreak(false, 0)
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	for i, fr := range frames {
		fr = fr.Intersect(img.Bounds())
		if fr.Empty() {
			continue
		}
		cell := image.NewNRGBA(image.Rect(0, 0, fr.Dx(), fr.Dy()))
		draw.Draw(cell, cell.Bounds(), img, fr.Min, draw.Src)
		var buf bytes.Buffer
		if err := png.Encode(&buf, cell); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		name := fmt.Sprintf("frame_%d", i)
		p.RegisterImageOptionsReader(name, opts, &buf)
		wd := float64(fr.Dx()) * pointsPerPixel
		ht := float64(fr.Dy()) * pointsPerPixel
		p.AddPageFormat("P", gofpdf.SizeType{Wd: wd, Ht: ht})
		p.ImageOptions(name, 0, 0, wd, ht, false, opts, 0, "")
	}
	if p.PageNo() == 0 {
		p.AddPage()
	}
	return p.Output(w)
}
