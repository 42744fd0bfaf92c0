//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && cgo

package clipboard

import (
	"sync"

	"golang.design/x/clipboard"
)

var (
	initOnce sync.Once
	initErr  error
)

func ensureInit() error {
	initOnce.Do(func() {
		if !hasDisplay() {
			initErr = errNoDisplay
			return
		}
		initErr = clipboard.Init()
	})
	return initErr
}

// format maps a payload onto the library's clipboard formats. Palettes share
// the text format.
func format(k kind) clipboard.Format {
	if k == kindImage {
		return clipboard.FmtImage
	}
	return clipboard.FmtText
}

func publish(o offer) error {
	if err := ensureInit(); err != nil {
		return err
	}
	clipboard.Write(format(o.kind), o.data)
	return nil
}

func fetch(k kind) ([]byte, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	return clipboard.Read(format(k)), nil
}
