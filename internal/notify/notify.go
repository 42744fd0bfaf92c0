package notify

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/pixelpad/internal/platform"
	"github.com/example/pixelpad/internal/render"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSave emits a notification when a project is written to disk.
	EventSave Event = "save"
	// EventExport emits a notification when an image is exported.
	EventExport Event = "export"
	// EventCopy emits a notification when an image is copied to the clipboard.
	EventCopy Event = "copy"
)

// previewSize is the smallest edge a notification preview is scaled up to.
const previewSize = 64

// EventPreference describes formatting for a notification event.
type EventPreference struct {
	Template string
}

// Preferences describes notification behaviour loaded from configuration.
type Preferences struct {
	Title  string
	Events map[Event]EventPreference
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: platform.AppName,
		Events: map[Event]EventPreference{
			EventSave:   {Template: "Saved %s"},
			EventExport: {Template: "Exported %s"},
			EventCopy:   {Template: "Copied %s to clipboard"},
		},
	}
}

// LoadPreferences reads configuration from environment variables.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("PIXELPAD_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	apply := func(key string, event Event) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			eventPrefs := prefs.Events[event]
			eventPrefs.Template = v
			prefs.Events[event] = eventPrefs
		}
	}
	apply("PIXELPAD_NOTIFY_SAVE_TEXT", EventSave)
	apply("PIXELPAD_NOTIFY_EXPORT_TEXT", EventExport)
	apply("PIXELPAD_NOTIFY_COPY_TEXT", EventCopy)
	return prefs
}

// Notifier sends OS-level notifications based on the configured preferences.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	send    func(title, body string, opts platform.Options) error
}

// New creates a new Notifier using the provided preferences.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Events: make(map[Event]EventPreference, len(prefs.Events))}
	for k, v := range prefs.Events {
		cloned.Events[k] = v
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool), send: platform.Notify}
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	if n.enabled == nil {
		n.enabled = make(map[Event]bool)
	}
	n.enabled[event] = enabled
}

// Save sends a project save notification. The composite, when given, is
// shown as a preview.
func (n *Notifier) Save(path string, composite image.Image) {
	if !n.enabledFor(EventSave) {
		return
	}
	n.withPreview(composite, func(opts platform.Options) {
		n.dispatch(EventSave, absPath(path), opts)
	})
}

// Export sends an export notification, using the written file as the icon
// when it exists.
func (n *Notifier) Export(path string) {
	if !n.enabledFor(EventExport) {
		return
	}
	detail := absPath(path)
	opts := platform.Options{}
	if _, err := os.Stat(detail); err == nil {
		opts.IconPath = detail
	}
	n.dispatch(EventExport, detail, opts)
}

// Copy sends a clipboard notification.
func (n *Notifier) Copy(detail string, img image.Image) {
	if !n.enabledFor(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "image"
	}
	n.withPreview(img, func(opts platform.Options) {
		n.dispatch(EventCopy, detail, opts)
	})
}

func (n *Notifier) enabledFor(event Event) bool {
	if n == nil {
		return false
	}
	if n.enabled == nil {
		return false
	}
	return n.enabled[event]
}

func (n *Notifier) withPreview(img image.Image, f func(platform.Options)) {
	opts := platform.Options{}
	if img != nil && !img.Bounds().Empty() {
		if path, cleanup, err := createPreview(img); err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	f(opts)
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	if !n.enabledFor(event) {
		return
	}
	template := strings.TrimSpace(n.template(event))
	if template == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(template, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	send := n.send
	if send == nil {
		send = platform.Notify
	}
	if err := send(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

func (n *Notifier) template(event Event) string {
	if n == nil {
		return ""
	}
	if pref, ok := n.prefs.Events[event]; ok {
		return pref.Template
	}
	return ""
}

func absPath(path string) string {
	detail := strings.TrimSpace(path)
	if abs, err := filepath.Abs(detail); err == nil {
		return abs
	}
	return detail
}

// previewScale returns the integer factor that brings the longest edge of a
// size up to previewSize.
func previewScale(b image.Rectangle) int {
	edge := max(b.Dx(), b.Dy())
	if edge <= 0 || edge >= previewSize {
		return 1
	}
	return (previewSize + edge - 1) / edge
}

// previewImage fits img to the notification icon: small canvases are
// enlarged pixel for pixel and large ones are smoothed down.
func previewImage(img image.Image) image.Image {
	b := img.Bounds()
	if max(b.Dx(), b.Dy()) > previewSize {
		return render.Thumbnail(img, previewSize)
	}
	return render.Scale(img, previewScale(b))
}

func createPreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "pixelpad-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, previewImage(img)); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}
	return path, cleanup, nil
}
