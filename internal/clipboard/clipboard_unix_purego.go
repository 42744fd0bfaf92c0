//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"encoding/binary"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Without cgo PixelPad owns the X11 CLIPBOARD selection itself. Wayland
// sessions are served through XWayland.

// paletteTarget carries a palette between PixelPad processes. Other programs
// are offered the same bytes as text.
const paletteTarget = "application/x-pixelpad-palette"

// readTimeout bounds the wait for another selection owner to answer.
const readTimeout = 2 * time.Second

var (
	initOnce sync.Once
	initErr  error
	owner    *x11Owner
)

var (
	errNotOwner = errors.New("another client kept the clipboard")
	errTooLarge = errors.New("clipboard owner sent an incremental transfer, which is not supported")
	errClosed   = errors.New("X connection closed")
)

func ensureInit() error {
	initOnce.Do(func() {
		if !hasDisplay() {
			initErr = errNoDisplay
			return
		}
		owner, initErr = newX11Owner()
	})
	return initErr
}

func publish(o offer) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return owner.own(o)
}

func fetch(k kind) ([]byte, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	if o, ok := owner.held(); ok {
		if o.kind != k {
			return nil, nil
		}
		return o.data, nil
	}
	for _, target := range owner.atoms.targetsFor(k) {
		data, err := owner.request(target)
		if err != nil {
			return nil, err
		}
		if len(data) > 0 {
			return data, nil
		}
	}
	return nil, nil
}

// atoms holds the interned atoms PixelPad uses, in atomNames order.
type atoms struct {
	clipboard xproto.Atom
	targets   xproto.Atom
	incr      xproto.Atom
	utf8      xproto.Atom
	textPlain xproto.Atom
	png       xproto.Atom
	palette   xproto.Atom
	property  xproto.Atom
}

var atomNames = []string{
	"CLIPBOARD",
	"TARGETS",
	"INCR",
	"UTF8_STRING",
	"text/plain;charset=utf-8",
	"image/png",
	paletteTarget,
	"PIXELPAD_SELECTION",
}

func internAtoms(conn *xgb.Conn) (atoms, error) {
	cookies := make([]xproto.InternAtomCookie, len(atomNames))
	for i, name := range atomNames {
		cookies[i] = xproto.InternAtom(conn, false, uint16(len(name)), name)
	}
	ids := make([]xproto.Atom, len(atomNames))
	for i, cookie := range cookies {
		reply, err := cookie.Reply()
		if err != nil {
			return atoms{}, fmt.Errorf("intern %s: %w", atomNames[i], err)
		}
		ids[i] = reply.Atom
	}
	return atoms{
		clipboard: ids[0],
		targets:   ids[1],
		incr:      ids[2],
		utf8:      ids[3],
		textPlain: ids[4],
		png:       ids[5],
		palette:   ids[6],
		property:  ids[7],
	}, nil
}

// targetsFor lists the targets a payload is offered as, preferred first.
// Reads try them in the same order.
func (a atoms) targetsFor(k kind) []xproto.Atom {
	switch k {
	case kindImage:
		return []xproto.Atom{a.png}
	case kindPalette:
		return []xproto.Atom{a.palette, a.utf8, a.textPlain, xproto.AtomString}
	}
	return nil
}

// convert answers a conversion of o to target. ok is false when o cannot be
// converted to it.
func (a atoms) convert(o offer, target xproto.Atom) (typ xproto.Atom, format byte, data []byte, ok bool) {
	if target == a.targets {
		list := []xproto.Atom{a.targets}
		if len(o.data) > 0 {
			list = append(list, a.targetsFor(o.kind)...)
		}
		return xproto.AtomAtom, 32, atomsToBytes(list), true
	}
	if len(o.data) == 0 || !slices.Contains(a.targetsFor(o.kind), target) {
		return xproto.AtomNone, 0, nil, false
	}
	return target, 8, o.data, true
}

func atomsToBytes(list []xproto.Atom) []byte {
	buf := make([]byte, 4*len(list))
	for i, atom := range list {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(atom))
	}
	return buf
}

// x11Owner holds the CLIPBOARD selection for this process and answers
// conversion requests from other clients.
type x11Owner struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  atoms

	mu    sync.Mutex
	offer offer
	owned bool
}

func newX11Owner() (*x11Owner, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	window, err := createWindow(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	a, err := internAtoms(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	o := &x11Owner{conn: conn, window: window, atoms: a}
	go o.serve()
	return o, nil
}

func createWindow(conn *xgb.Conn) (xproto.Window, error) {
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		return 0, fmt.Errorf("allocate window: %w", err)
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	err = xproto.CreateWindowChecked(conn, 0, window, screen.Root,
		0, 0, 1, 1, 0, xproto.WindowClassInputOnly, 0,
		xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange}).Check()
	if err != nil {
		return 0, fmt.Errorf("create window: %w", err)
	}
	return window, nil
}

func (o *x11Owner) own(off offer) error {
	o.mu.Lock()
	o.offer = off
	o.owned = true
	o.mu.Unlock()

	err := xproto.SetSelectionOwnerChecked(o.conn, o.window, o.atoms.clipboard, xproto.TimeCurrentTime).Check()
	if err == nil {
		var reply *xproto.GetSelectionOwnerReply
		reply, err = xproto.GetSelectionOwner(o.conn, o.atoms.clipboard).Reply()
		if err == nil && reply.Owner != o.window {
			err = errNotOwner
		}
	}
	if err != nil {
		o.release()
		return fmt.Errorf("own clipboard: %w", err)
	}
	return nil
}

func (o *x11Owner) held() (offer, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.offer, o.owned
}

func (o *x11Owner) release() {
	o.mu.Lock()
	o.offer = offer{}
	o.owned = false
	o.mu.Unlock()
}

func (o *x11Owner) serve() {
	for {
		ev, err := o.conn.WaitForEvent()
		if ev == nil && err == nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			o.answer(e)
		case xproto.SelectionClearEvent:
			o.release()
		}
	}
}

func (o *x11Owner) answer(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}
	off, _ := o.held()
	typ, format, data, ok := o.atoms.convert(off, e.Target)
	if ok {
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, property,
			typ, format, uint32(len(data)*8/int(format)), data)
	} else {
		property = xproto.AtomNone
	}
	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	xproto.SendEvent(o.conn, false, e.Requestor, xproto.EventMaskNoEvent, string(notify.Bytes()))
}

// request converts the CLIPBOARD selection to target on a private
// connection. A refused conversion yields no data and no error.
func (o *x11Owner) request(target xproto.Atom) ([]byte, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	defer conn.Close()
	window, err := createWindow(conn)
	if err != nil {
		return nil, err
	}
	defer xproto.DestroyWindow(conn, window)

	err = xproto.ConvertSelectionChecked(conn, window, o.atoms.clipboard, target,
		o.atoms.property, xproto.TimeCurrentTime).Check()
	if err != nil {
		return nil, fmt.Errorf("convert selection: %w", err)
	}

	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := o.awaitSelection(conn, window)
		done <- result{data, err}
	}()
	select {
	case r := <-done:
		return r.data, r.err
	case <-time.After(readTimeout):
		return nil, fmt.Errorf("clipboard owner did not answer within %v", readTimeout)
	}
}

func (o *x11Owner) awaitSelection(conn *xgb.Conn, window xproto.Window) ([]byte, error) {
	for {
		ev, err := conn.WaitForEvent()
		if err != nil {
			return nil, err
		}
		if ev == nil {
			return nil, errClosed
		}
		e, ok := ev.(xproto.SelectionNotifyEvent)
		if !ok || e.Requestor != window {
			continue
		}
		if e.Property == xproto.AtomNone {
			return nil, nil
		}
		reply, perr := xproto.GetProperty(conn, true, window, e.Property,
			xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
		if perr != nil {
			return nil, fmt.Errorf("read selection: %w", perr)
		}
		if reply.Type == o.atoms.incr {
			return nil, errTooLarge
		}
		return append([]byte(nil), reply.Value...), nil
	}
}
