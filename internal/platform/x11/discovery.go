package x11

import (
	"context"
	"log/slog"

	"github.com/jezek/xgb/xproto"
	"github.com/mj1618/switcher/internal/model"
	"github.com/mj1618/switcher/internal/platform"
)

// Discovery lists and watches the windows in _NET_CLIENT_LIST.
type Discovery struct {
	conn    *Conn
	display string
	logger  *slog.Logger
}

// NewDiscovery creates a Discovery. conn serves ListWindows; Watch opens its
// own connection to display so it can be torn down independently.
func NewDiscovery(conn *Conn, display string, logger *slog.Logger) *Discovery {
	if logger == nil {
		logger = slog.Default()
	}
	return &Discovery{conn: conn, display: display, logger: logger.With("component", "x11-discovery")}
}

func (d *Discovery) ListWindows(ctx context.Context) ([]model.Window, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return listWindows(d.conn, d.logger)
}

func listWindows(c *Conn, logger *slog.Logger) ([]model.Window, error) {
	atoms, err := c.atomSet(atomStateSkipTaskbar, atomTypeDock, atomTypeDesktop)
	if err != nil {
		return nil, err
	}
	filter := switchableAtoms{
		skipTaskbar: atoms[atomStateSkipTaskbar],
		dock:        atoms[atomTypeDock],
		desktop:     atoms[atomTypeDesktop],
	}

	raw, err := c.property(c.root, atomClientList)
	if err != nil {
		return nil, err
	}

	ids := decodeUint32s(raw)
	windows := make([]model.Window, 0, len(ids))
	for _, id := range ids {
		w, ok, err := describe(c, xproto.Window(id), filter)
		if err != nil {
			// Windows can vanish between reading the list and their properties.
			logger.Debug("skipping window", "window", id, "error", err)
			continue
		}
		if ok {
			windows = append(windows, w)
		}
	}
	return windows, nil
}

// describe reads the properties of win. ok is false for windows that do not
// belong in the switcher.
func describe(c *Conn, win xproto.Window, filter switchableAtoms) (model.Window, bool, error) {
	states, err := c.property(win, atomWMState)
	if err != nil {
		return model.Window{}, false, err
	}
	types, err := c.property(win, atomWindowType)
	if err != nil {
		return model.Window{}, false, err
	}
	if !filter.switchable(decodeUint32s(states), decodeUint32s(types)) {
		return model.Window{}, false, nil
	}

	title, err := windowTitle(c, win)
	if err != nil {
		return model.Window{}, false, err
	}

	w := model.Window{ID: model.WindowID(win), Title: title}
	if raw, err := c.property(win, atomWMPID); err == nil {
		if pids := decodeUint32s(raw); len(pids) > 0 {
			w.PID = int(pids[0])
		}
	}
	if raw, err := c.property(win, atomClass); err == nil {
		_, w.App = decodeClass(raw)
	}
	return w, true, nil
}

// windowTitle prefers the UTF-8 _NET_WM_NAME and falls back to WM_NAME.
func windowTitle(c *Conn, win xproto.Window) (string, error) {
	raw, err := c.property(win, atomWMName)
	if err != nil {
		return "", err
	}
	if len(raw) > 0 {
		return decodeText(raw), nil
	}
	raw, err = c.property(win, atomLegacyName)
	if err != nil {
		return "", err
	}
	return decodeText(raw), nil
}

// Watch emits the current window list, then a new list on every change of
// _NET_CLIENT_LIST and a title event on every title change of a listed window.
func (d *Discovery) Watch(ctx context.Context, events chan<- platform.Event) error {
	c, err := Dial(d.display)
	if err != nil {
		return err
	}
	stop := context.AfterFunc(ctx, func() { c.Close() })
	defer stop()
	defer c.Close()

	atoms, err := c.atomSet(atomClientList, atomWMName, atomLegacyName)
	if err != nil {
		return err
	}
	if err := c.selectPropertyChanges(c.root); err != nil {
		return err
	}

	send := func(ev platform.Event) bool {
		select {
		case events <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	watched := make(map[model.WindowID]bool)
	publishList := func() bool {
		windows, err := listWindows(c, d.logger)
		if err != nil {
			d.logger.Warn("failed to list windows", "error", err)
			return true
		}
		current := make(map[model.WindowID]bool, len(windows))
		for _, w := range windows {
			current[w.ID] = true
			if !watched[w.ID] {
				if err := c.selectPropertyChanges(xproto.Window(w.ID)); err != nil {
					d.logger.Debug("cannot watch window", "window", w.ID, "error", err)
				}
			}
		}
		watched = current
		return send(platform.WindowListEvent(windows))
	}

	if !publishList() {
		return nil
	}

	for {
		ev, xerr := c.X.WaitForEvent()
		if ev == nil && xerr == nil {
			if ctx.Err() != nil {
				return nil
			}
			return errConnClosed
		}
		if xerr != nil {
			d.logger.Debug("x11 error event", "error", xerr)
			continue
		}

		pe, ok := ev.(xproto.PropertyNotifyEvent)
		if !ok {
			continue
		}
		switch {
		case pe.Window == c.root && pe.Atom == atoms[atomClientList]:
			if !publishList() {
				return nil
			}
		case pe.Window != c.root && (pe.Atom == atoms[atomWMName] || pe.Atom == atoms[atomLegacyName]):
			if !watched[model.WindowID(pe.Window)] {
				continue
			}
			title, err := windowTitle(c, pe.Window)
			if err != nil {
				d.logger.Debug("failed to read title", "window", uint32(pe.Window), "error", err)
				continue
			}
			if !send(platform.WindowTitleEvent(model.WindowID(pe.Window), title)) {
				return nil
			}
		}
	}
}
