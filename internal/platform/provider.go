package platform

import (
	"fmt"
	"runtime"
)

// Provider bundles the window-system backends for the current OS.
type Provider struct {
	Discovery Discovery
	Activator Activator

	// Close releases the backend connection. May be nil.
	Close func() error
}

// Options configures backend construction.
type Options struct {
	Display string // Window-system display name; empty uses the environment default
}

// ErrUnsupported is returned when no backend is registered for this platform.
var ErrUnsupported = fmt.Errorf("switcher is not supported on %s/%s; supported: X11 desktops with an EWMH window manager", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/x11/init.go for the X11 registration.
var NewProviderFunc func(opts Options) (*Provider, error)

// NewProvider returns a Provider for the current OS.
func NewProvider(opts Options) (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc(opts)
}
