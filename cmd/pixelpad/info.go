package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/example/pixelpad/internal/editor"
)

// infoCmd prints a summary of a project.
type infoCmd struct {
	*root
	fs      *flag.FlagSet
	project string
}

func (i *infoCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func parseInfoCmd(args []string, r *root) (*infoCmd, error) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	i := &infoCmd{root: r, fs: fs}
	fs.Usage = usageFunc(i)
	fs.StringVar(&i.project, "project", "", "project file to describe")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() == 1 && i.project == "" {
		i.project = fs.Arg(0)
	} else if fs.NArg() != 0 || i.project == "" {
		return nil, &UsageError{of: i}
	}
	return i, nil
}

func (i *infoCmd) Run() error {
	st, err := i.openProject(i.project)
	if err != nil {
		return err
	}
	printInfo(i.out(), st)
	return nil
}

func printInfo(w io.Writer, st *editor.State) {
	fmt.Fprintf(w, "id:          %s\n", st.ID())
	fmt.Fprintf(w, "size:        %s\n", st.Size())
	fmt.Fprintf(w, "spritesheet: %s (%d frames)\n", st.Spritesheet(), len(st.SpriteFrames()))
	fmt.Fprintf(w, "main colour: %s\n", st.MainColor().Hex())
	fmt.Fprintf(w, "palette:     %d colours\n", len(st.Palette()))
	if sel, ok := st.Selection(); ok {
		fmt.Fprintf(w, "selection:   %v\n", sel)
	}
	fmt.Fprintln(w, "layers (* marks the active layer):")
	for idx, l := range st.Layers() {
		marker := " "
		if idx == st.ActiveLayer() {
			marker = "*"
		}
		vis := "visible"
		if !l.Visible {
			vis = "hidden"
		}
		fmt.Fprintf(w, "%s %2d: %-16s %-7s alpha %3d\n", marker, idx, l.Name, vis, l.Alpha)
	}
}
