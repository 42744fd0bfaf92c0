package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/example/pixelpad/internal/editor"
	"github.com/example/pixelpad/internal/palette"
	"github.com/example/pixelpad/internal/pixel"
)

// drawCmd applies a single shape to a project and saves it.
type drawCmd struct {
	project   string
	output    string
	colorSpec string
	color     pixel.Color
	layer     int
	filled    bool
	shape     string
	args      []string
	*root
	fs *flag.FlagSet
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

var drawFlagNames = map[string]struct{}{
	"project": {},
	"output":  {},
	"color":   {},
	"layer":   {},
	"fill":    {},
}

var drawBoolFlags = map[string]struct{}{
	"fill": {},
}

var drawArity = map[string]int{
	"pixel":   2,
	"erase":   2,
	"line":    4,
	"rect":    4,
	"ellipse": 4,
	"fill":    2,
	"pick":    2,
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	fs.StringVar(&d.project, "project", "", "project file to draw on")
	fs.StringVar(&d.output, "output", "", "output project path (defaults to -project)")
	fs.StringVar(&d.colorSpec, "color", "", "colour name or hex value (defaults to the project's main colour)")
	fs.IntVar(&d.layer, "layer", -1, "layer index to draw on (defaults to the active layer)")
	fs.BoolVar(&d.filled, "fill", false, "fill rect and ellipse shapes")

	flagArgs, positionals, err := splitFlags(args, drawFlagNames, drawBoolFlags)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	if len(positionals) < 1 {
		return nil, &UsageError{of: d}
	}
	d.shape = strings.ToLower(positionals[0])
	d.args = positionals[1:]
	n, ok := drawArity[d.shape]
	if !ok {
		return nil, fmt.Errorf("unsupported shape %q", d.shape)
	}
	if _, err := expectInts(d.args, n, d.shape); err != nil {
		return nil, err
	}
	if d.colorSpec != "" {
		if d.color, err = palette.ParseColor(d.colorSpec); err != nil {
			return nil, err
		}
	}
	if d.project == "" {
		return nil, fmt.Errorf("-project is required")
	}
	if d.output == "" {
		d.output = d.project
	}
	return d, nil
}

// scriptLine renders the shape as a script line.
func (d *drawCmd) scriptLine() string {
	cmd := d.shape
	if cmd == "pixel" {
		cmd = "brush"
	}
	line := cmd + " " + strings.Join(d.args, " ")
	if d.filled && (d.shape == "rect" || d.shape == "ellipse") {
		line += " fill"
	}
	return line
}

func (d *drawCmd) Run() error {
	st, err := d.openProject(d.project)
	if err != nil {
		return err
	}
	if d.layer >= 0 {
		if d.layer >= len(st.Layers()) {
			return fmt.Errorf("layer %d out of range (0-%d)", d.layer, len(st.Layers())-1)
		}
		if _, err := st.Execute(editor.SetActiveLayer{Index: d.layer}); err != nil {
			return err
		}
	}
	if d.colorSpec != "" {
		if _, err := st.Execute(editor.SetMainColor{Color: d.color}); err != nil {
			return err
		}
	}
	if err := execScriptLine(st, d.scriptLine(), d.out()); err != nil {
		return err
	}
	if d.shape == "pick" && d.output == d.project {
		return nil
	}
	return d.saveProject(st, d.output)
}
