package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/example/pixelpad/internal/bitmap"
	"github.com/example/pixelpad/internal/config"
	"github.com/example/pixelpad/internal/editor"
	"github.com/example/pixelpad/internal/notify"
	"github.com/example/pixelpad/internal/palette"
	"github.com/example/pixelpad/internal/pixel"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs           *flag.FlagSet
	program      string
	notifier     *notify.Notifier
	config       *config.Config
	saveAlerts   bool
	exportAlerts bool
	copyAlerts   bool
	paletteName  string
	backendName  string
	verbose      bool
	stdout       io.Writer
	stderr       io.Writer
}

func (r *root) Program() string {
	if r == nil {
		return "pixelpad"
	}
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("pixelpad", flag.ExitOnError),
		program:  "pixelpad",
		notifier: notify.New(prefs),
		config:   cfg,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving a project")
	r.fs.BoolVar(&r.exportAlerts, "notify-export", cfg.Notify.Export, "show a desktop notification after exporting an image")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")

	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.paletteName, "palette", "", "palette for new documents (built-in name, config palette or file)")
	r.fs.StringVar(&r.backendName, "backend", "nrgba", "pixel storage backend (nrgba, buffer)")
	r.fs.BoolVar(&r.verbose, "verbose", false, "log editor operations to stderr")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventExport, r.exportAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	}
	if r.verbose {
		editor.SetLogger(slog.New(slog.NewTextHandler(r.errOut(), &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "new":
		cmd, err = parseNewCmd(subArgs, r)
	case "draw":
		cmd, err = parseDrawCmd(subArgs, r)
	case "script":
		cmd, err = parseScriptCmd(subArgs, r)
	case "resize":
		cmd, err = parseResizeCmd(subArgs, r)
	case "transform":
		cmd, err = parseTransformCmd(subArgs, r)
	case "palette":
		cmd, err = parsePaletteCmd(subArgs, r)
	case "export":
		cmd, err = parseExportCmd(subArgs, r)
	case "import":
		cmd, err = parseImportCmd(subArgs, r)
	case "info":
		cmd, err = parseInfoCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{root: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (r *root) out() io.Writer {
	if r == nil || r.stdout == nil {
		return os.Stdout
	}
	return r.stdout
}

func (r *root) errOut() io.Writer {
	if r == nil || r.stderr == nil {
		return os.Stderr
	}
	return r.stderr
}

func (r *root) cfg() *config.Config {
	if r == nil || r.config == nil {
		return config.New()
	}
	return r.config
}

func (r *root) backend() (pixel.Backend, error) {
	name := "nrgba"
	if r != nil && r.backendName != "" {
		name = r.backendName
	}
	switch strings.ToLower(name) {
	case "nrgba":
		return bitmap.NRGBA, nil
	case "buffer":
		return bitmap.Buffer, nil
	}
	return nil, fmt.Errorf("unknown backend %q", name)
}

// paletteLoader resolves palette names against the config's [palette.NAME]
// sections before the built-in and on-disk palettes.
func (r *root) paletteLoader() *palette.Loader {
	l := palette.NewLoader()
	l.Named = r.cfg().Palettes
	return l
}

// startPalette resolves the palette new documents begin with.
func (r *root) startPalette() ([]pixel.Color, error) {
	cfg := r.cfg()
	flagValue := ""
	if r != nil {
		flagValue = r.paletteName
	}
	name := cfg.PaletteName(flagValue)
	colors, err := r.paletteLoader().Load(name)
	if err != nil {
		return nil, fmt.Errorf("palette %q: %w", name, err)
	}
	return colors, nil
}

// editorOptions builds the options every State is created with.
func (r *root) editorOptions() ([]editor.Option, error) {
	backend, err := r.backend()
	if err != nil {
		return nil, err
	}
	colors, err := r.startPalette()
	if err != nil {
		return nil, err
	}
	cfg := r.cfg()
	return []editor.Option{
		editor.WithBackend(backend),
		editor.WithUndoLimit(cfg.UndoLimit),
		editor.WithMainColor(cfg.MainColor),
		editor.WithBackground(cfg.Background),
		editor.WithSpritesheet(cfg.Grid()),
		editor.WithPalette(colors),
		editor.WithPaletteLoader(r.paletteLoader()),
	}, nil
}

func (r *root) newState(size pixel.Size) (*editor.State, error) {
	opts, err := r.editorOptions()
	if err != nil {
		return nil, err
	}
	return editor.New(size, opts...), nil
}

// openProject loads the project at path into a fresh State.
func (r *root) openProject(path string) (*editor.State, error) {
	if path == "" {
		return nil, fmt.Errorf("-project is required")
	}
	s, err := r.newState(pixel.Sz(1, 1))
	if err != nil {
		return nil, err
	}
	if _, err := s.Execute(editor.LoadProject{Path: path}); err != nil {
		return nil, err
	}
	return s, nil
}

// saveProject writes s to path and reports it.
func (r *root) saveProject(s *editor.State, path string) error {
	if _, err := s.Execute(editor.SaveProject{Path: path}); err != nil {
		return err
	}
	saved := absPath(path)
	fmt.Fprintf(r.errOut(), "saved %s\n", saved)
	r.notifySave(saved, s.Composite())
	return nil
}

func (r *root) notifySave(path string, composite image.Image) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(path, composite)
}

func (r *root) notifyExport(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Export(path)
}

func (r *root) notifyCopy(detail string, img image.Image) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Copy(detail, img)
}
