package platform

import (
	"context"

	"github.com/mj1618/switcher/internal/model"
)

// Discovery reports the switchable windows of the desktop.
type Discovery interface {
	// ListWindows returns the current switchable windows in stacking-independent
	// client order.
	ListWindows(ctx context.Context) ([]model.Window, error)

	// Watch streams window list and title events into events until ctx is
	// cancelled or the connection to the window system is lost. The first
	// event is always a full window list.
	Watch(ctx context.Context, events chan<- Event) error
}

// Activator asks the window manager to act on a window. Requests are fire and
// forget: a nil error only means the request was sent.
type Activator interface {
	Activate(ctx context.Context, window model.WindowID) error
	RequestClose(ctx context.Context, window model.WindowID) error
}
