package x11

import (
	"context"

	"github.com/jezek/xgb/xproto"
	"github.com/mj1618/switcher/internal/model"
)

// Activator sends EWMH activation and close requests to the window manager.
type Activator struct {
	conn *Conn
}

// NewActivator creates an Activator using conn.
func NewActivator(conn *Conn) *Activator {
	return &Activator{conn: conn}
}

func (a *Activator) Activate(ctx context.Context, window model.WindowID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return a.conn.sendClientMessage(xproto.Window(window), atomActiveWindow, activateData(),
		xproto.EventMaskStructureNotify)
}

func (a *Activator) RequestClose(ctx context.Context, window model.WindowID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return a.conn.sendClientMessage(xproto.Window(window), atomCloseWindow, closeData(a.conn.root),
		xproto.EventMaskSubstructureRedirect)
}
