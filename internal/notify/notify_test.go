package notify

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/pixelpad/internal/platform"
)

type sent struct {
	title, body string
	icon        string
	iconExisted bool
}

func recorder(n *Notifier) *[]sent {
	var got []sent
	n.send = func(title, body string, opts platform.Options) error {
		_, err := os.Stat(opts.IconPath)
		got = append(got, sent{title: title, body: body, icon: opts.IconPath, iconExisted: opts.IconPath != "" && err == nil})
		return nil
	}
	return &got
}

func TestDisabledEventsAreSilent(t *testing.T) {
	n := New(DefaultPreferences())
	got := recorder(n)
	n.Save("a.pxp", nil)
	n.Export("a.png")
	n.Copy("a", nil)
	if len(*got) != 0 {
		t.Fatalf("sent %d notifications while disabled", len(*got))
	}

	var nilNotifier *Notifier
	nilNotifier.Enable(EventSave, true)
	nilNotifier.Save("a.pxp", nil)
}

func TestCopyUsesPreview(t *testing.T) {
	n := New(DefaultPreferences())
	got := recorder(n)
	n.Enable(EventCopy, true)
	n.Copy("", image.NewNRGBA(image.Rect(0, 0, 8, 4)))
	if len(*got) != 1 {
		t.Fatalf("sent %d notifications", len(*got))
	}
	s := (*got)[0]
	if s.title != platform.AppName || s.body != "Copied image to clipboard" {
		t.Fatalf("notification = %+v", s)
	}
	if !s.iconExisted {
		t.Fatalf("preview %q was not present while notifying", s.icon)
	}
	if _, err := os.Stat(s.icon); !os.IsNotExist(err) {
		t.Fatalf("preview %q was not removed: %v", s.icon, err)
	}
}

func TestExportUsesFileIcon(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sprite.png")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	n := New(DefaultPreferences())
	got := recorder(n)
	n.Enable(EventExport, true)
	n.Export(path)
	if len(*got) != 1 || (*got)[0].icon != path || (*got)[0].body != "Exported "+path {
		t.Fatalf("notifications = %+v", *got)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("PIXELPAD_NOTIFY_TITLE", "Art")
	t.Setenv("PIXELPAD_NOTIFY_SAVE_TEXT", "Wrote %s")
	prefs := LoadPreferences()
	if prefs.Title != "Art" || prefs.Events[EventSave].Template != "Wrote %s" {
		t.Fatalf("prefs = %+v", prefs)
	}
	if prefs.Events[EventExport].Template != "Exported %s" {
		t.Fatalf("export template = %q", prefs.Events[EventExport].Template)
	}
}

func TestPreviewScale(t *testing.T) {
	tests := []struct {
		w, h int
		want int
	}{
		{8, 4, 8},
		{10, 3, 7},
		{64, 64, 1},
		{200, 10, 1},
		{0, 0, 1},
	}
	for _, tt := range tests {
		if got := previewScale(image.Rect(0, 0, tt.w, tt.h)); got != tt.want {
			t.Errorf("previewScale(%dx%d) = %d, want %d", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestPreviewImage(t *testing.T) {
	tests := []struct {
		w, h int
		want image.Rectangle
	}{
		{8, 4, image.Rect(0, 0, 64, 32)},
		{64, 10, image.Rect(0, 0, 64, 10)},
		{200, 10, image.Rect(0, 0, 64, 3)},
	}
	for _, tt := range tests {
		if got := previewImage(image.NewNRGBA(image.Rect(0, 0, tt.w, tt.h))).Bounds(); got != tt.want {
			t.Errorf("previewImage(%dx%d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}
