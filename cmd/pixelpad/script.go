package main

import (
	"bufio"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/example/pixelpad/internal/editor"
	"github.com/example/pixelpad/internal/palette"
	"github.com/example/pixelpad/internal/pixel"
)

// scriptCmd replays a text script of editing commands against a project.
type scriptCmd struct {
	*root
	fs      *flag.FlagSet
	project string
	output  string
	create  bool
	execs   commandList
	source  string
}

func (s *scriptCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func parseScriptCmd(args []string, r *root) (*scriptCmd, error) {
	fs := flag.NewFlagSet("script", flag.ExitOnError)
	s := &scriptCmd{root: r, fs: fs}
	fs.Usage = usageFunc(s)
	fs.StringVar(&s.project, "project", "", "project file to edit")
	fs.StringVar(&s.output, "o", "", "write the project here instead of back to -project")
	fs.BoolVar(&s.create, "create", false, "start from a blank canvas when -project does not exist")
	fs.Var(&s.execs, "e", "execute a script line (may be specified multiple times)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if s.project == "" {
		return nil, &UsageError{of: s}
	}
	switch fs.NArg() {
	case 0:
		if len(s.execs) == 0 {
			s.source = "-"
		}
	case 1:
		s.source = fs.Arg(0)
	default:
		return nil, &UsageError{of: s}
	}
	if s.output == "" {
		s.output = s.project
	}
	return s, nil
}

func (s *scriptCmd) Run() error {
	st, err := s.load()
	if err != nil {
		return err
	}
	for i, line := range s.execs {
		if err := execScriptLine(st, line, s.out()); err != nil {
			return fmt.Errorf("-e %d: %w", i+1, err)
		}
	}
	if s.source != "" {
		in := io.Reader(os.Stdin)
		name := "stdin"
		if s.source != "-" {
			f, err := os.Open(s.source)
			if err != nil {
				return err
			}
			defer f.Close()
			in, name = f, s.source
		}
		if err := runScript(st, in, s.out()); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return s.saveProject(st, s.output)
}

func (s *scriptCmd) load() (*editor.State, error) {
	if s.create {
		if _, err := os.Stat(s.project); os.IsNotExist(err) {
			return s.newState(s.cfg().Size())
		}
	}
	return s.openProject(s.project)
}

// runScript executes every line of r. Errors carry the line number.
func runScript(st *editor.State, r io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := execScriptLine(st, scanner.Text(), out); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	return scanner.Err()
}

// execScriptLine runs one script line. Query commands print to out.
func execScriptLine(st *editor.State, line string, out io.Writer) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	switch strings.ToLower(fields[0]) {
	case "pick":
		p, err := expectPoint(fields[1:], "pick")
		if err != nil {
			return err
		}
		if _, err := st.Execute(editor.Eyedropper{P: p}); err != nil {
			return err
		}
		fmt.Fprintln(out, st.MainColor().Hex())
		return nil
	case "print":
		printInfo(out, st)
		return nil
	}
	events, err := parseScriptLine(fields)
	if err != nil {
		return err
	}
	for _, ev := range events {
		if _, err := st.Execute(ev); err != nil {
			return err
		}
	}
	return nil
}

// parseScriptLine turns one tokenised line into the events it stands for.
func parseScriptLine(fields []string) ([]editor.Event, error) {
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "color", "colour":
		if len(args) != 1 {
			return nil, fmt.Errorf("%s requires a colour", cmd)
		}
		c, err := palette.ParseColor(args[0])
		if err != nil {
			return nil, err
		}
		return []editor.Event{editor.SetMainColor{Color: c}}, nil
	case "tool":
		if len(args) != 1 {
			return nil, fmt.Errorf("tool requires a name")
		}
		t, err := editor.ParseTool(args[0])
		if err != nil {
			return nil, err
		}
		return []editor.Event{editor.SetTool{Tool: t}}, nil
	case "brush", "pixel", "erase":
		return parseStroke(cmd, args)
	case "line", "rect", "ellipse", "select", "move":
		return parseTwoPoint(cmd, args)
	case "fill", "bucket":
		p, err := expectPoint(args, cmd)
		if err != nil {
			return nil, err
		}
		return []editor.Event{editor.Bucket{P: p}}, nil
	case "paste":
		p, err := expectPoint(args, cmd)
		if err != nil {
			return nil, err
		}
		return []editor.Event{editor.Paste{P: p}}, nil
	case "deselect":
		return noArgs(cmd, args, editor.ClearSelection{})
	case "delete":
		return noArgs(cmd, args, editor.DeleteSelection{})
	case "copy":
		return noArgs(cmd, args, editor.Copy{})
	case "clear":
		return noArgs(cmd, args, editor.ClearCanvas{})
	case "undo":
		return noArgs(cmd, args, editor.Undo{})
	case "redo":
		return noArgs(cmd, args, editor.Redo{})
	case "resize", "spritesheet":
		v, err := expectInts(args, 2, cmd)
		if err != nil {
			return nil, err
		}
		size := pixel.Sz(v[0], v[1])
		if cmd == "resize" {
			return []editor.Event{editor.ResizeCanvas{Size: size}}, nil
		}
		return []editor.Event{editor.SetSpritesheet{Size: size}}, nil
	case "transform":
		if len(args) != 1 {
			return nil, fmt.Errorf("transform requires a name")
		}
		t, err := editor.ParseTransform(args[0])
		if err != nil {
			return nil, err
		}
		return []editor.Event{editor.ApplyTransform{Transform: t}}, nil
	case "palette":
		return parsePaletteLine(args)
	case "layer":
		return parseLayerLine(args)
	case "save", "export", "open", "load", "saveproject":
		if len(args) != 1 {
			return nil, fmt.Errorf("%s requires a path", cmd)
		}
		path := args[0]
		switch cmd {
		case "save", "export":
			return []editor.Event{editor.Save{Path: path}}, nil
		case "open":
			return []editor.Event{editor.OpenFile{Path: path}}, nil
		case "load":
			return []editor.Event{editor.LoadProject{Path: path}}, nil
		}
		return []editor.Event{editor.SaveProject{Path: path}}, nil
	}
	return nil, fmt.Errorf("unknown command %q", fields[0])
}

func noArgs(cmd string, args []string, ev editor.Event) ([]editor.Event, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("%s takes no arguments", cmd)
	}
	return []editor.Event{ev}, nil
}

// parseStroke reads "brush X Y [X Y ...]" into one stroke.
func parseStroke(cmd string, args []string) ([]editor.Event, error) {
	if len(args) == 0 || len(args)%2 != 0 {
		return nil, fmt.Errorf("%s requires x y pairs", cmd)
	}
	erase := cmd == "erase"
	var events []editor.Event
	if erase {
		events = append(events, editor.EraseStart{})
	} else {
		events = append(events, editor.BrushStart{})
	}
	for i := 0; i < len(args); i += 2 {
		p, err := expectPoint(args[i:i+2], cmd)
		if err != nil {
			return nil, err
		}
		if erase {
			events = append(events, editor.Erase{P: p})
		} else {
			events = append(events, editor.Brush{P: p})
		}
	}
	if erase {
		return append(events, editor.EraseEnd{}), nil
	}
	return append(events, editor.BrushEnd{}), nil
}

// parseTwoPoint reads "CMD X0 Y0 X1 Y1 [fill]".
func parseTwoPoint(cmd string, args []string) ([]editor.Event, error) {
	filled := false
	if n := len(args); n == 5 && (cmd == "rect" || cmd == "ellipse") && strings.EqualFold(args[4], "fill") {
		filled = true
		args = args[:4]
	}
	v, err := expectInts(args, 4, cmd)
	if err != nil {
		return nil, err
	}
	p0, p1 := image.Pt(v[0], v[1]), image.Pt(v[2], v[3])
	switch cmd {
	case "line":
		return []editor.Event{editor.LineStart{P: p0}, editor.LineEnd{P: p1}}, nil
	case "rect":
		return []editor.Event{editor.RectStart{P: p0}, editor.RectEnd{P: p1, Filled: filled}}, nil
	case "ellipse":
		return []editor.Event{editor.EllipseStart{P: p0}, editor.EllipseEnd{P: p1, Filled: filled}}, nil
	case "select":
		return []editor.Event{editor.SelectionStart{P: p0}, editor.SelectionEnd{P: p1}}, nil
	}
	return []editor.Event{editor.MoveStart{P: p0}, editor.Move{P: p1}, editor.MoveEnd{}}, nil
}

func parsePaletteLine(args []string) ([]editor.Event, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("palette requires add|remove|load and an argument")
	}
	switch strings.ToLower(args[0]) {
	case "add", "remove":
		c, err := palette.ParseColor(args[1])
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(args[0], "add") {
			return []editor.Event{editor.AddToPalette{Color: c}}, nil
		}
		return []editor.Event{editor.RemoveFromPalette{Color: c}}, nil
	case "load":
		return []editor.Event{editor.LoadPalette{Path: args[1]}}, nil
	}
	return nil, fmt.Errorf("unknown palette action %q", args[0])
}

func parseLayerLine(args []string) ([]editor.Event, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("layer requires an action")
	}
	action, rest := strings.ToLower(args[0]), args[1:]
	if action == "new" {
		switch {
		case len(rest) == 0:
			return []editor.Event{editor.NewLayerAbove{}}, nil
		case len(rest) == 1 && strings.EqualFold(rest[0], "below"):
			return []editor.Event{editor.NewLayerBelow{}}, nil
		}
		return nil, fmt.Errorf("layer new takes an optional \"below\"")
	}
	if len(rest) == 0 {
		return nil, fmt.Errorf("layer %s requires an index", action)
	}
	index, err := strconv.Atoi(rest[0])
	if err != nil {
		return nil, fmt.Errorf("invalid layer index %q", rest[0])
	}
	rest = rest[1:]
	switch action {
	case "delete":
		return layerNoArgs(action, rest, editor.DeleteLayer{Index: index})
	case "select":
		return layerNoArgs(action, rest, editor.SetActiveLayer{Index: index})
	case "show":
		return layerNoArgs(action, rest, editor.SetLayerVisibility{Index: index, Visible: true})
	case "hide":
		return layerNoArgs(action, rest, editor.SetLayerVisibility{Index: index, Visible: false})
	case "up":
		return layerNoArgs(action, rest, editor.MoveLayerUp{Index: index})
	case "down":
		return layerNoArgs(action, rest, editor.MoveLayerDown{Index: index})
	case "alpha":
		if len(rest) != 1 {
			return nil, fmt.Errorf("layer alpha requires a value")
		}
		a, err := strconv.ParseUint(rest[0], 10, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid alpha %q", rest[0])
		}
		return []editor.Event{editor.SetLayerAlpha{Index: index, Alpha: uint8(a)}}, nil
	case "rename":
		if len(rest) == 0 {
			return nil, fmt.Errorf("layer rename requires a name")
		}
		return []editor.Event{editor.RenameLayer{Index: index, Name: strings.Join(rest, " ")}}, nil
	}
	return nil, fmt.Errorf("unknown layer action %q", action)
}

func layerNoArgs(action string, rest []string, ev editor.Event) ([]editor.Event, error) {
	if len(rest) != 0 {
		return nil, fmt.Errorf("layer %s takes an index only", action)
	}
	return []editor.Event{ev}, nil
}
