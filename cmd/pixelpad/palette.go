package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/pixelpad/internal/clipboard"
	"github.com/example/pixelpad/internal/editor"
	"github.com/example/pixelpad/internal/palette"
	"github.com/example/pixelpad/internal/pixel"
)

// paletteCmd inspects and edits a project's palette.
type paletteCmd struct {
	*root
	fs      *flag.FlagSet
	project string
	action  string
	args    []string
}

func (c *paletteCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parsePaletteCmd(args []string, r *root) (*paletteCmd, error) {
	fs := flag.NewFlagSet("palette", flag.ExitOnError)
	c := &paletteCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.project, "project", "", "project whose palette is used")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 {
		return nil, &UsageError{of: c}
	}
	c.action = strings.ToLower(fs.Arg(0))
	c.args = fs.Args()[1:]
	want := 0
	switch c.action {
	case "builtin":
		return c, nil
	case "list", "copy", "paste":
	case "add", "remove", "load", "write":
		want = 1
	default:
		return nil, &UsageError{of: c}
	}
	if len(c.args) != want {
		return nil, fmt.Errorf("palette %s takes %d argument(s)", c.action, want)
	}
	if c.project == "" {
		return nil, fmt.Errorf("-project is required for palette %s", c.action)
	}
	return c, nil
}

func (c *paletteCmd) Run() error {
	if c.action == "builtin" {
		for _, name := range palette.Builtin() {
			fmt.Fprintln(c.out(), name)
		}
		return nil
	}
	st, err := c.openProject(c.project)
	if err != nil {
		return err
	}
	switch c.action {
	case "list":
		printPalette(c.out(), st.Palette(), st.MainColor())
		return nil
	case "write":
		return writePaletteFile(c.args[0], st.Palette())
	case "copy":
		if err := clipboard.WritePalette(st.Palette()); err != nil {
			return fmt.Errorf("copy palette to clipboard: %w", err)
		}
		detail := fmt.Sprintf("%d colours", len(st.Palette()))
		fmt.Fprintf(c.errOut(), "copied %s to clipboard\n", detail)
		c.notifyCopy(detail, nil)
		return nil
	}

	before := len(st.Palette())
	switch c.action {
	case "add", "remove":
		col, err := palette.ParseColor(c.args[0])
		if err != nil {
			return err
		}
		var ev editor.Event = editor.AddToPalette{Color: col}
		if c.action == "remove" {
			ev = editor.RemoveFromPalette{Color: col}
		}
		if _, err := st.Execute(ev); err != nil {
			return err
		}
	case "load":
		if _, err := st.Execute(editor.LoadPalette{Path: c.args[0]}); err != nil {
			return err
		}
	case "paste":
		colors, err := clipboard.ReadPalette()
		if err != nil {
			return fmt.Errorf("read clipboard: %w", err)
		}
		for _, col := range colors {
			if _, err := st.Execute(editor.AddToPalette{Color: col}); err != nil {
				return err
			}
		}
	}
	fmt.Fprintf(c.errOut(), "palette has %d colours (was %d)\n", len(st.Palette()), before)
	return c.saveProject(st, c.project)
}

// printPalette lists colours with a truecolor swatch; * marks the main colour.
func printPalette(w io.Writer, colors []pixel.Color, main pixel.Color) {
	if len(colors) == 0 {
		fmt.Fprintln(w, "palette is empty")
		return
	}
	for idx, col := range colors {
		marker := " "
		if col == main {
			marker = "*"
		}
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", col.R, col.G, col.B)
		fmt.Fprintf(w, "%s %3d: %-10s %s\n", marker, idx, col.Hex(), block)
	}
}

func writePaletteFile(path string, colors []pixel.Color) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := palette.WriteHexList(f, colors); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
