package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/example/pixelpad/internal/clipboard"
	"github.com/example/pixelpad/internal/editor"
	"github.com/example/pixelpad/internal/pixel"
	"github.com/example/pixelpad/internal/project"
)

// importCmd creates a project from an image file or the clipboard.
type importCmd struct {
	*root
	fs             *flag.FlagSet
	output         string
	file           string
	fromClipboard  bool
	extractPalette bool
	force          bool
}

func (i *importCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func parseImportCmd(args []string, r *root) (*importCmd, error) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	i := &importCmd{root: r, fs: fs}
	fs.Usage = usageFunc(i)
	fs.StringVar(&i.output, "o", "", "project file to create")
	fs.StringVar(&i.file, "file", "", "image to import")
	fs.BoolVar(&i.fromClipboard, "from-clipboard", false, "import the clipboard image")
	fs.BoolVar(&i.fromClipboard, "from-clip", false, "import the clipboard image (alias)")
	fs.BoolVar(&i.extractPalette, "extract-palette", false, "add the image's colours to the palette")
	fs.BoolVar(&i.force, "force", false, "overwrite an existing project")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if i.output == "" || fs.NArg() != 0 {
		return nil, &UsageError{of: i}
	}
	if (i.file == "") == !i.fromClipboard {
		return nil, fmt.Errorf("exactly one of -file or -from-clipboard is required")
	}
	if i.fromClipboard && i.extractPalette {
		return nil, fmt.Errorf("-extract-palette needs -file")
	}
	return i, nil
}

func (i *importCmd) Run() error {
	if !i.force {
		if _, err := os.Stat(i.output); err == nil {
			return fmt.Errorf("%s already exists (use -force to overwrite)", i.output)
		}
	}
	var (
		st  *editor.State
		err error
	)
	if i.fromClipboard {
		st, err = i.fromClipboardImage()
	} else {
		st, err = i.fromFile()
	}
	if err != nil {
		return err
	}
	return i.saveProject(st, i.output)
}

func (i *importCmd) fromFile() (*editor.State, error) {
	st, err := i.newState(pixel.Size{})
	if err != nil {
		return nil, err
	}
	if _, err := st.Execute(editor.OpenFile{Path: i.file}); err != nil {
		return nil, err
	}
	if _, err := st.Execute(editor.ClearSelection{}); err != nil {
		return nil, err
	}
	if i.extractPalette {
		if _, err := st.Execute(editor.LoadPalette{Path: i.file}); err != nil {
			return nil, err
		}
	}
	return st, nil
}

func (i *importCmd) fromClipboardImage() (*editor.State, error) {
	backend, err := i.backend()
	if err != nil {
		return nil, err
	}
	bm, err := clipboard.ReadBitmap(backend)
	if err != nil {
		return nil, fmt.Errorf("read clipboard image: %w", err)
	}
	colors, err := i.startPalette()
	if err != nil {
		return nil, err
	}
	opts, err := i.editorOptions()
	if err != nil {
		return nil, err
	}
	cfg := i.cfg()
	doc := &project.Document{
		Size:        bm.Size(),
		Spritesheet: cfg.Grid(),
		MainColor:   cfg.MainColor,
		Palette:     colors,
		Layers:      []project.Layer{{Name: "Layer 1", Visible: true, Alpha: 255, Bitmap: bm}},
	}
	return editor.FromDocument(doc, opts...), nil
}
