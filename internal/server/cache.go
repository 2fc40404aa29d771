package server

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mj1618/switcher/internal/model"
	"github.com/mj1618/switcher/internal/platform"
)

// WindowCache provides a TTL-based cache over window discovery, so that
// agents polling list_windows do not hit the window system on every call.
type WindowCache struct {
	discovery platform.Discovery
	clock     clockwork.Clock
	ttl       time.Duration

	mu      sync.Mutex
	windows []model.Window
	fetched time.Time
	valid   bool
}

// NewWindowCache creates a new cache. A ttl of 0 disables caching.
func NewWindowCache(discovery platform.Discovery, ttl time.Duration, clock clockwork.Clock) *WindowCache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &WindowCache{discovery: discovery, clock: clock, ttl: ttl}
}

// ListWindows returns the cached list if within TTL, otherwise lists fresh.
func (c *WindowCache) ListWindows(ctx context.Context) ([]model.Window, error) {
	if c.ttl == 0 {
		return c.discovery.ListWindows(ctx)
	}

	c.mu.Lock()
	if c.valid && c.clock.Since(c.fetched) < c.ttl {
		windows := c.windows
		c.mu.Unlock()
		return windows, nil
	}
	c.mu.Unlock()

	windows, err := c.discovery.ListWindows(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.windows, c.fetched, c.valid = windows, c.clock.Now(), true
	c.mu.Unlock()

	return windows, nil
}

// Invalidate drops the cached list.
func (c *WindowCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.windows, c.valid = nil, false
}
