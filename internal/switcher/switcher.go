package switcher

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mj1618/switcher/internal/model"
	"github.com/mj1618/switcher/internal/platform"
)

// ErrStopped is returned when posting to a Switcher whose loop has exited.
var ErrStopped = errors.New("switcher: stopped")

// ErrAlreadyRunning is returned by Run when the loop is already running.
var ErrAlreadyRunning = errors.New("switcher: already running")

const defaultQueueSize = 64

// Options configures a Switcher.
type Options struct {
	Delay     time.Duration   // Debounce delay for grown lists (0 = DefaultUpdateDelay)
	Clock     clockwork.Clock // nil = real clock
	Activator platform.Activator

	// Events is the discovery subscription. It is drained by Run until the
	// context is cancelled; a closed channel just stops event intake.
	Events <-chan platform.Event

	// Publish and PublishTitle run on the loop goroutine. They may read the
	// buttons they are given but must not call back into the Switcher.
	Publish      Publisher
	PublishTitle TitlePublisher

	Metrics   *Metrics
	Logger    *slog.Logger
	QueueSize int
}

// State is a point-in-time copy of the switcher's state.
type State struct {
	Pending       bool                `yaml:"pending" json:"pending"`
	PreviousCount int                 `yaml:"windows" json:"windows"`
	Buttons       []model.ButtonState `yaml:"buttons" json:"buttons"`
}

// Switcher runs a Scheduler on a single dedicated goroutine. Discovery
// events, timer firings and caller requests are all queued to that goroutine
// and execute one at a time, so the scheduler needs no locking.
type Switcher struct {
	sched  *Scheduler
	clock  clockwork.Clock
	events <-chan platform.Event
	logger *slog.Logger

	queue   chan func(ctx context.Context)
	done    chan struct{}
	running atomic.Bool
}

// New creates a Switcher. Call Run to start processing.
func New(opts Options) *Switcher {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}

	s := &Switcher{
		clock:  opts.Clock,
		events: opts.Events,
		logger: opts.Logger.With("component", "switcher"),
		queue:  make(chan func(ctx context.Context), opts.QueueSize),
		done:   make(chan struct{}),
	}
	s.sched = NewScheduler(SchedulerConfig{
		Delay:        opts.Delay,
		AfterFunc:    s.afterFunc,
		Activator:    opts.Activator,
		Publish:      opts.Publish,
		PublishTitle: opts.PublishTitle,
		Metrics:      opts.Metrics,
		Logger:       s.logger,
	})
	return s
}

// afterFunc arms a clock timer whose callback is queued back onto the loop.
// A firing after the loop exited is dropped.
func (s *Switcher) afterFunc(d time.Duration, fn func()) {
	s.clock.AfterFunc(d, func() {
		_ = s.post(func(context.Context) { fn() })
	})
}

// Run processes events and requests until ctx is cancelled. It returns nil on
// cancellation. A Switcher can only be run once.
func (s *Switcher) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer close(s.done)

	s.logger.Debug("switcher loop started")
	events := s.events
	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("switcher loop stopped")
			return nil
		case ev, ok := <-events:
			if !ok {
				s.logger.Debug("discovery events closed")
				events = nil
				continue
			}
			s.handleEvent(ev)
		case fn := <-s.queue:
			fn(ctx)
		}
	}
}

// Done is closed when Run returns.
func (s *Switcher) Done() <-chan struct{} { return s.done }

func (s *Switcher) handleEvent(ev platform.Event) {
	switch ev.Kind {
	case platform.EventWindowList:
		s.sched.OnWindowListChanged(ev.Windows)
	case platform.EventWindowTitle:
		s.sched.OnTitleChanged(ev.Window, ev.Title)
	default:
		s.logger.Warn("ignoring unknown discovery event", "kind", ev.Kind)
	}
}

func (s *Switcher) post(fn func(ctx context.Context)) error {
	return s.postContext(context.Background(), fn)
}

// postContext queues fn on the loop, giving up when ctx ends first.
func (s *Switcher) postContext(ctx context.Context, fn func(ctx context.Context)) error {
	select {
	case <-s.done:
		return ErrStopped
	default:
	}
	select {
	case <-s.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	case s.queue <- fn:
		return nil
	}
}

// WindowListChanged delivers a new window list, as a discovery event would.
func (s *Switcher) WindowListChanged(windows []model.Window) error {
	return s.post(func(context.Context) { s.handleEvent(platform.WindowListEvent(windows)) })
}

// WindowTitleChanged delivers a title change, as a discovery event would.
func (s *Switcher) WindowTitleChanged(window model.WindowID, title string) error {
	return s.post(func(context.Context) { s.handleEvent(platform.WindowTitleEvent(window, title)) })
}

// ScheduleUpdate arms a delayed update attempt.
func (s *Switcher) ScheduleUpdate() error {
	return s.post(func(context.Context) { s.sched.ScheduleUpdate() })
}

// ViewportChanged notifies the switcher of a viewport or layout change.
func (s *Switcher) ViewportChanged() error {
	return s.post(func(context.Context) { s.sched.OnViewportChanged() })
}

// Activate requests that window be raised and focused.
func (s *Switcher) Activate(window model.WindowID) error {
	return s.post(func(ctx context.Context) { s.sched.OnActivateRequested(ctx, window) })
}

// CloseWindow requests that window be closed.
func (s *Switcher) CloseWindow(window model.WindowID) error {
	return s.post(func(ctx context.Context) { s.sched.OnCloseRequested(ctx, window) })
}

// State returns a copy of the current state, taken on the loop.
func (s *Switcher) State(ctx context.Context) (State, error) {
	reply := make(chan State, 1)
	err := s.postContext(ctx, func(context.Context) {
		reply <- State{
			Pending:       s.sched.Pending(),
			PreviousCount: s.sched.PreviousCount(),
			Buttons:       model.Snapshot(s.sched.Buttons()),
		}
	})
	if err != nil {
		return State{}, err
	}
	select {
	case st := <-reply:
		return st, nil
	case <-ctx.Done():
		return State{}, ctx.Err()
	case <-s.done:
		return State{}, ErrStopped
	}
}

// Buttons returns a copy of the current button sequence.
func (s *Switcher) Buttons(ctx context.Context) ([]model.ButtonState, error) {
	st, err := s.State(ctx)
	if err != nil {
		return nil, err
	}
	return st.Buttons, nil
}
