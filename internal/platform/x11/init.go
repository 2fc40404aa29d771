//go:build linux || freebsd || openbsd || netbsd || dragonfly

package x11

import (
	"log/slog"

	"github.com/mj1618/switcher/internal/platform"
)

func init() {
	platform.NewProviderFunc = func(opts platform.Options) (*platform.Provider, error) {
		conn, err := Dial(opts.Display)
		if err != nil {
			return nil, err
		}
		return &platform.Provider{
			Discovery: NewDiscovery(conn, opts.Display, slog.Default()),
			Activator: NewActivator(conn),
			Close:     conn.Close,
		}, nil
	}
}
