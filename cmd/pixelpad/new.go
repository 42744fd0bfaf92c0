package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/example/pixelpad/internal/pixel"
)

// newCmd creates a blank project.
type newCmd struct {
	*root
	fs      *flag.FlagSet
	output  string
	width   int
	height  int
	columns int
	rows    int
	force   bool
}

func (c *newCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseNewCmd(args []string, r *root) (*newCmd, error) {
	cfg := r.cfg()
	fs := flag.NewFlagSet("new", flag.ExitOnError)
	c := &newCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.output, "o", "", "project file to create")
	fs.IntVar(&c.width, "width", cfg.Width, "canvas width in pixels")
	fs.IntVar(&c.height, "height", cfg.Height, "canvas height in pixels")
	fs.IntVar(&c.columns, "columns", cfg.Grid().W, "spritesheet columns")
	fs.IntVar(&c.rows, "rows", cfg.Grid().H, "spritesheet rows")
	fs.BoolVar(&c.force, "force", false, "overwrite an existing project")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.output == "" || fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	if c.width < 0 || c.height < 0 {
		return nil, fmt.Errorf("canvas size must not be negative")
	}
	return c, nil
}

func (c *newCmd) Run() error {
	if !c.force {
		if _, err := os.Stat(c.output); err == nil {
			return fmt.Errorf("%s already exists (use -force to overwrite)", c.output)
		}
	}
	st, err := c.newState(pixel.Sz(c.width, c.height))
	if err != nil {
		return err
	}
	if c.columns > 1 || c.rows > 1 {
		if err := execScriptLine(st, fmt.Sprintf("spritesheet %d %d", c.columns, c.rows), c.out()); err != nil {
			return err
		}
	}
	return c.saveProject(st, c.output)
}
