package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/example/pixelpad/internal/editor"
	"github.com/example/pixelpad/internal/pixel"
)

// resizeCmd changes the canvas size of a project.
type resizeCmd struct {
	*root
	fs      *flag.FlagSet
	project string
	size    pixel.Size
}

func (c *resizeCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseResizeCmd(args []string, r *root) (*resizeCmd, error) {
	fs := flag.NewFlagSet("resize", flag.ExitOnError)
	c := &resizeCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.project, "project", "", "project file to resize")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.project == "" || fs.NArg() != 2 {
		return nil, &UsageError{of: c}
	}
	v, err := expectInts(fs.Args(), 2, "resize")
	if err != nil {
		return nil, err
	}
	if v[0] < 0 || v[1] < 0 {
		return nil, fmt.Errorf("canvas size must not be negative")
	}
	c.size = pixel.Sz(v[0], v[1])
	return c, nil
}

func (c *resizeCmd) Run() error {
	st, err := c.openProject(c.project)
	if err != nil {
		return err
	}
	eff, err := st.Execute(editor.ResizeCanvas{Size: c.size})
	if err != nil {
		return err
	}
	if eff == editor.EffectNone {
		fmt.Fprintf(c.errOut(), "canvas is already %s\n", c.size)
		return nil
	}
	return c.saveProject(st, c.project)
}

// transformCmd applies a whole-layer transform.
type transformCmd struct {
	*root
	fs        *flag.FlagSet
	project   string
	layer     int
	transform editor.Transform
}

func (c *transformCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

// Transforms lists the transform names for help output.
func (c *transformCmd) Transforms() string {
	var names []string
	for t := editor.TransformSilhouette; t <= editor.TransformFlipVertical; t++ {
		names = append(names, t.String())
	}
	return strings.Join(names, ", ")
}

func parseTransformCmd(args []string, r *root) (*transformCmd, error) {
	fs := flag.NewFlagSet("transform", flag.ExitOnError)
	c := &transformCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.project, "project", "", "project file to transform")
	fs.IntVar(&c.layer, "layer", -1, "layer index (defaults to the active layer)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.project == "" || fs.NArg() != 1 {
		return nil, &UsageError{of: c}
	}
	t, err := editor.ParseTransform(fs.Arg(0))
	if err != nil {
		return nil, err
	}
	c.transform = t
	return c, nil
}

func (c *transformCmd) Run() error {
	st, err := c.openProject(c.project)
	if err != nil {
		return err
	}
	if c.layer >= 0 {
		if _, err := st.Execute(editor.SetActiveLayer{Index: c.layer}); err != nil {
			return err
		}
		if st.ActiveLayer() != c.layer {
			return fmt.Errorf("layer %d out of range", c.layer)
		}
	}
	eff, err := st.Execute(editor.ApplyTransform{Transform: c.transform})
	if err != nil {
		return err
	}
	if eff == editor.EffectNone {
		fmt.Fprintf(c.errOut(), "%s left the layer unchanged\n", c.transform)
		return nil
	}
	return c.saveProject(st, c.project)
}
