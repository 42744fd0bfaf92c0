package main

import (
	"flag"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/example/pixelpad/internal/clipboard"
	"github.com/example/pixelpad/internal/editor"
	"github.com/example/pixelpad/internal/project"
	"github.com/example/pixelpad/internal/render"
)

// exportCmd writes the flattened project as an image.
type exportCmd struct {
	*root
	fs          *flag.FlagSet
	project     string
	output      string
	scale       int
	split       bool
	toClipboard bool
}

func (e *exportCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseExportCmd(args []string, r *root) (*exportCmd, error) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	e := &exportCmd{root: r, fs: fs}
	fs.Usage = usageFunc(e)
	fs.StringVar(&e.project, "project", "", "project file to export")
	fs.StringVar(&e.output, "o", "", "output image (png, jpg, bmp, tiff or pdf)")
	fs.IntVar(&e.scale, "scale", 1, "integer upscale factor")
	fs.BoolVar(&e.split, "split", false, "write one image per spritesheet frame")
	fs.BoolVar(&e.toClipboard, "to-clipboard", false, "copy the image to the clipboard")
	fs.BoolVar(&e.toClipboard, "to-clip", false, "copy the image to the clipboard (alias)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if e.project == "" || fs.NArg() != 0 {
		return nil, &UsageError{of: e}
	}
	if e.output == "" && !e.toClipboard {
		return nil, fmt.Errorf("either -o or -to-clipboard is required")
	}
	if e.split && e.output == "" {
		return nil, fmt.Errorf("-split requires -o")
	}
	if e.scale < 1 {
		return nil, fmt.Errorf("-scale must be at least 1")
	}
	if e.output != "" {
		if _, err := project.Format(e.output); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (e *exportCmd) Run() error {
	st, err := e.openProject(e.project)
	if err != nil {
		return err
	}
	img := render.Scale(st.Composite(), e.scale)
	switch {
	case e.split:
		if err := e.writeFrames(st, img); err != nil {
			return err
		}
	case e.output != "" && e.scale == 1:
		if _, err := st.Execute(editor.Save{Path: e.output}); err != nil {
			return err
		}
		e.reportExport(e.output)
	case e.output != "":
		opts := project.ExportOptions{Background: e.cfg().Background, Frames: scaledFrames(st, e.scale)}
		if err := project.Export(e.output, img, opts); err != nil {
			return err
		}
		e.reportExport(e.output)
	}
	if e.toClipboard {
		if err := clipboard.WriteImage(img); err != nil {
			return fmt.Errorf("copy image to clipboard: %w", err)
		}
		detail := filepath.Base(e.project)
		fmt.Fprintf(e.errOut(), "copied %s to clipboard\n", detail)
		e.notifyCopy(detail, img)
	}
	return nil
}

func (e *exportCmd) reportExport(path string) {
	saved := absPath(path)
	fmt.Fprintf(e.errOut(), "exported %s\n", saved)
	e.notifyExport(saved)
}

// writeFrames writes each spritesheet cell to NAME_INDEX.EXT.
func (e *exportCmd) writeFrames(st *editor.State, img *image.NRGBA) error {
	ext := filepath.Ext(e.output)
	base := strings.TrimSuffix(e.output, ext)
	opts := project.ExportOptions{Background: e.cfg().Background}
	for i, frame := range scaledFrames(st, e.scale) {
		path := fmt.Sprintf("%s_%d%s", base, i, ext)
		if err := project.Export(path, img.SubImage(frame), opts); err != nil {
			return err
		}
		e.reportExport(path)
	}
	return nil
}

// scaledFrames returns the spritesheet cells in output pixels. A 1x1 grid
// yields the whole image.
func scaledFrames(st *editor.State, scale int) []image.Rectangle {
	frames := st.SpriteFrames()
	out := make([]image.Rectangle, 0, len(frames))
	for _, f := range frames {
		out = append(out, image.Rect(f.Min.X*scale, f.Min.Y*scale, f.Max.X*scale, f.Max.Y*scale))
	}
	return out
}
