package x11

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Conn is an X connection with an atom cache. It is safe for concurrent use.
type Conn struct {
	X    *xgb.Conn
	root xproto.Window

	mu    sync.Mutex
	atoms map[string]xproto.Atom

	closeOnce sync.Once
}

// Dial connects to display. An empty display uses $DISPLAY.
func Dial(display string) (*Conn, error) {
	X, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("connect to X display %q: %w", display, err)
	}
	return &Conn{
		X:     X,
		root:  xproto.Setup(X).DefaultScreen(X).Root,
		atoms: make(map[string]xproto.Atom),
	}, nil
}

// Root returns the root window of the default screen.
func (c *Conn) Root() xproto.Window { return c.root }

// Close closes the connection. Extra calls are no-ops.
func (c *Conn) Close() error {
	c.closeOnce.Do(c.X.Close)
	return nil
}

func (c *Conn) atom(name string) (xproto.Atom, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if a, ok := c.atoms[name]; ok {
		return a, nil
	}
	reply, err := xproto.InternAtom(c.X, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("intern atom %s: %w", name, err)
	}
	c.atoms[name] = reply.Atom
	return reply.Atom, nil
}

func (c *Conn) atomSet(names ...string) (map[string]xproto.Atom, error) {
	set := make(map[string]xproto.Atom, len(names))
	for _, name := range names {
		a, err := c.atom(name)
		if err != nil {
			return nil, err
		}
		set[name] = a
	}
	return set, nil
}

// property reads a whole property of any type. A missing property yields an
// empty value, not an error.
func (c *Conn) property(win xproto.Window, name string) ([]byte, error) {
	a, err := c.atom(name)
	if err != nil {
		return nil, err
	}
	reply, err := xproto.GetProperty(c.X, false, win, a, xproto.GetPropertyTypeAny, 0, maxPropertyLength).Reply()
	if err != nil {
		return nil, fmt.Errorf("get property %s of window 0x%x: %w", name, uint32(win), err)
	}
	if reply == nil {
		return nil, nil
	}
	return reply.Value, nil
}

// selectPropertyChanges subscribes this connection to PropertyNotify on win.
func (c *Conn) selectPropertyChanges(win xproto.Window) error {
	err := xproto.ChangeWindowAttributesChecked(c.X, win, xproto.CwEventMask,
		[]uint32{xproto.EventMaskPropertyChange}).Check()
	if err != nil {
		return fmt.Errorf("select property changes on window 0x%x: %w", uint32(win), err)
	}
	return nil
}

// sendClientMessage sends a 32-bit client message about window to the root
// window, where the window manager picks it up.
func (c *Conn) sendClientMessage(window xproto.Window, typeName string, data []uint32, mask uint32) error {
	typ, err := c.atom(typeName)
	if err != nil {
		return err
	}
	err = xproto.SendEventChecked(c.X, false, c.root, mask, clientMessage(window, typ, data)).Check()
	if err != nil {
		return fmt.Errorf("send %s for window 0x%x: %w", typeName, uint32(window), err)
	}
	return nil
}

var errConnClosed = errors.New("x11: connection closed")
