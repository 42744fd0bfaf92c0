//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import "errors"

var errUnsupported = errors.New("clipboard operations are not supported on this platform")

func publish(offer) error {
	return errUnsupported
}

func fetch(kind) ([]byte, error) {
	return nil, errUnsupported
}
