package switcher

import (
	"context"
	"log/slog"
	"time"

	"github.com/mj1618/switcher/internal/model"
	"github.com/mj1618/switcher/internal/platform"
)

// DefaultUpdateDelay is how long a grown window list waits before buttons are
// rebuilt, so a launching application can settle its real title first.
const DefaultUpdateDelay = 700 * time.Millisecond

const (
	triggerImmediate = "immediate"
	triggerDelayed   = "delayed"
)

// AfterFunc arms a one-shot timer that calls fn after d. Timers are never
// cancelled. fn must run on the same goroutine as every other Scheduler call.
type AfterFunc func(d time.Duration, fn func())

// Publisher receives every new button sequence. It is called on the goroutine
// that owns the Scheduler and must not retain the slice past the call unless
// it only reads buttons from that goroutine.
type Publisher func(buttons []*model.Button)

// TitlePublisher receives a button whose title changed through the title fast
// path, without a new button sequence.
type TitlePublisher func(button *model.Button)

// SchedulerConfig configures a Scheduler.
type SchedulerConfig struct {
	Delay        time.Duration // Debounce delay for grown lists (0 = DefaultUpdateDelay)
	AfterFunc    AfterFunc
	Activator    platform.Activator // May be nil; requests are then dropped
	Publish      Publisher
	PublishTitle TitlePublisher
	Metrics      *Metrics
	Logger       *slog.Logger

	// Dispatch runs activation requests. Defaults to a new goroutine per
	// request so the owner never blocks on the window system.
	Dispatch func(fn func())
}

// Scheduler decides when the window list is reconciled into buttons and owns
// the resulting button state. It is not safe for concurrent use: all methods,
// including timer callbacks, must run on one goroutine.
type Scheduler struct {
	delay        time.Duration
	afterFunc    AfterFunc
	activator    platform.Activator
	publish      Publisher
	publishTitle TitlePublisher
	metrics      *Metrics
	logger       *slog.Logger
	dispatch     func(fn func())

	pending       bool
	previousCount int
	windows       []model.Window

	buttons  []*model.Button
	byWindow model.ButtonMap
}

// NewScheduler creates an idle Scheduler with no buttons.
func NewScheduler(cfg SchedulerConfig) *Scheduler {
	s := &Scheduler{
		delay:        cfg.Delay,
		afterFunc:    cfg.AfterFunc,
		activator:    cfg.Activator,
		publish:      cfg.Publish,
		publishTitle: cfg.PublishTitle,
		metrics:      cfg.Metrics,
		logger:       cfg.Logger,
		dispatch:     cfg.Dispatch,
		byWindow:     make(model.ButtonMap),
	}
	if s.delay <= 0 {
		s.delay = DefaultUpdateDelay
	}
	if s.afterFunc == nil {
		s.afterFunc = func(d time.Duration, fn func()) { time.AfterFunc(d, fn) }
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.dispatch == nil {
		s.dispatch = func(fn func()) { go fn() }
	}
	return s
}

// OnWindowListChanged records a new window list. If the list did not grow the
// buttons are rebuilt right away; otherwise the rebuild is delayed because a
// new window's title is usually not final yet.
func (s *Scheduler) OnWindowListChanged(windows []model.Window) {
	grew := len(windows) > s.previousCount
	s.previousCount = len(windows)
	s.windows = windows
	s.pending = true

	if !grew {
		s.runUpdate(triggerImmediate)
		return
	}
	s.logger.Debug("window list grew, delaying button update", "windows", len(windows), "delay", s.delay)
	s.ScheduleUpdate()
}

// ScheduleUpdate arms a delayed update attempt. It does not mark new data as
// pending, so the attempt is a no-op unless a list change is still unconsumed.
func (s *Scheduler) ScheduleUpdate() {
	s.afterFunc(s.delay, func() { s.runUpdate(triggerDelayed) })
}

// OnViewportChanged reacts to a viewport or layout change of the render layer.
func (s *Scheduler) OnViewportChanged() {
	s.ScheduleUpdate()
}

// RunUpdate reconciles the latest window list into buttons if a list change is
// pending. It reports whether a reconciliation ran.
func (s *Scheduler) RunUpdate() bool {
	return s.runUpdate(triggerImmediate)
}

func (s *Scheduler) runUpdate(trigger string) bool {
	if !s.pending {
		s.metrics.staleUpdate()
		return false
	}
	s.pending = false

	prev := model.Snapshot(s.buttons)
	s.buttons, s.byWindow = model.Reconcile(s.windows, s.buttons, s.byWindow)

	added, removed, retitled := model.CountChanges(model.DiffButtons(prev, model.Snapshot(s.buttons)))
	s.metrics.reconciled(trigger, added, removed, retitled, len(s.buttons))
	s.logger.Debug("reconciled window buttons",
		"trigger", trigger,
		"buttons", len(s.buttons),
		"added", added,
		"removed", removed,
		"retitled", retitled)

	if s.publish != nil {
		s.publish(s.buttons)
	}
	return true
}

// OnTitleChanged updates the title of the button bound to window in place.
// Unknown windows are ignored; set membership and order never change here.
func (s *Scheduler) OnTitleChanged(window model.WindowID, title string) {
	b, ok := s.byWindow[window]
	if !ok {
		s.metrics.titleUpdate(false)
		return
	}
	s.metrics.titleUpdate(true)
	if b.Title == title {
		return
	}
	b.Title = title
	if s.publishTitle != nil {
		s.publishTitle(b)
	}
}

// OnActivateRequested asks the window manager to raise and focus window.
func (s *Scheduler) OnActivateRequested(ctx context.Context, window model.WindowID) {
	s.request(ctx, actionActivate, window)
}

// OnCloseRequested asks the window manager to close window.
func (s *Scheduler) OnCloseRequested(ctx context.Context, window model.WindowID) {
	s.request(ctx, actionClose, window)
}

func (s *Scheduler) request(ctx context.Context, action string, window model.WindowID) {
	if s.activator == nil {
		s.logger.Warn("no window activator, dropping request", "action", action, "window", window)
		s.metrics.request(action, resultUnavailable)
		return
	}
	activator, logger, metrics := s.activator, s.logger, s.metrics
	s.dispatch(func() {
		var err error
		switch action {
		case actionActivate:
			err = activator.Activate(ctx, window)
		case actionClose:
			err = activator.RequestClose(ctx, window)
		}
		if err != nil {
			logger.Warn("window request failed", "action", action, "window", window, "error", err)
			metrics.request(action, resultError)
			return
		}
		metrics.request(action, resultSent)
	})
}

// Pending reports whether a list change is waiting to be reconciled.
func (s *Scheduler) Pending() bool { return s.pending }

// PreviousCount is the size of the most recently received window list.
func (s *Scheduler) PreviousCount() int { return s.previousCount }

// Buttons returns the current button sequence. The slice must not be modified.
func (s *Scheduler) Buttons() []*model.Button { return s.buttons }

// ButtonFor returns the button bound to window.
func (s *Scheduler) ButtonFor(window model.WindowID) (*model.Button, bool) {
	b, ok := s.byWindow[window]
	return b, ok
}
