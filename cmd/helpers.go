package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mj1618/switcher/internal/logging"
	"github.com/mj1618/switcher/internal/model"
	"github.com/mj1618/switcher/internal/platform"
	"github.com/mj1618/switcher/internal/switcher"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// newProvider connects to the configured display.
func newProvider() (*platform.Provider, error) {
	provider, err := platform.NewProvider(platform.Options{Display: appConfig.Display})
	if err != nil {
		return nil, err
	}
	return provider, nil
}

func closeProvider(p *platform.Provider) {
	if p.Close == nil {
		return
	}
	if err := p.Close(); err != nil {
		logging.Logger.Debug("failed to close window system connection", "error", err)
	}
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// windowIDFlag reads and validates the --window-id flag.
func windowIDFlag(cmd *cobra.Command) (model.WindowID, error) {
	s, _ := cmd.Flags().GetString("window-id")
	if s == "" {
		return 0, fmt.Errorf("--window-id is required")
	}
	return platform.ParseWindowID(s)
}

// runLive runs a switcher fed by the live window system until ctx is
// cancelled or attach returns. attach may be nil.
func runLive(ctx context.Context, opts switcher.Options, attach func(ctx context.Context, sw *switcher.Switcher, p *platform.Provider) error) error {
	provider, err := newProvider()
	if err != nil {
		return err
	}
	defer closeProvider(provider)

	events := make(chan platform.Event, 16)
	opts.Events = events
	opts.Activator = provider.Activator
	if opts.Delay == 0 {
		opts.Delay = appConfig.UpdateDelay
	}
	if opts.Logger == nil {
		opts.Logger = logging.Logger
	}
	sw := switcher.New(opts)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sw.Run(gctx)
	})
	g.Go(func() error {
		if err := provider.Discovery.Watch(gctx, events); err != nil {
			return fmt.Errorf("watch windows: %w", err)
		}
		return nil
	})
	if attach != nil {
		g.Go(func() error {
			defer cancel()
			return attach(gctx, sw, provider)
		})
	}
	return g.Wait()
}
