package replay

import (
	"context"
	"log/slog"
	"time"

	"github.com/mj1618/switcher/internal/model"
	"github.com/mj1618/switcher/internal/switcher"
)

// Frame kinds.
const (
	FrameButtons = "buttons"
	FrameTitle   = "title"
)

// Frame is one publication observed during a replay.
type Frame struct {
	At      time.Duration       `yaml:"at"      json:"at"`
	Kind    string              `yaml:"kind"    json:"kind"`
	Buttons []model.ButtonState `yaml:"buttons" json:"buttons"`
}

// Request is an activate or close request the switcher sent.
type Request struct {
	At     time.Duration  `yaml:"at"     json:"at"`
	Action string         `yaml:"action" json:"action"`
	Window model.WindowID `yaml:"window" json:"window"`
}

// Result is the full record of a replay.
type Result struct {
	Frames   []Frame             `yaml:"frames"   json:"frames"`
	Requests []Request           `yaml:"requests" json:"requests"`
	Final    []model.ButtonState `yaml:"final"    json:"final"`
	Pending  bool                `yaml:"pending"  json:"pending"`
}

// Options configures a replay.
type Options struct {
	Delay   time.Duration // 0 = switcher.DefaultUpdateDelay
	Metrics *switcher.Metrics
	Logger  *slog.Logger
}

// recorder stands in for the window manager and records requests.
type recorder struct {
	clock    *virtualClock
	requests []Request
}

func (r *recorder) Activate(_ context.Context, w model.WindowID) error {
	r.requests = append(r.requests, Request{At: r.clock.now, Action: "activate", Window: w})
	return nil
}

func (r *recorder) RequestClose(_ context.Context, w model.WindowID) error {
	r.requests = append(r.requests, Request{At: r.clock.now, Action: "close", Window: w})
	return nil
}

// Run plays script through a fresh scheduler. Timers due at a step's offset
// fire before that step; timers still armed after the last step fire at
// their deadlines.
func Run(ctx context.Context, script *Script, opts Options) (*Result, error) {
	if err := script.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	clock := &virtualClock{}
	rec := &recorder{clock: clock}
	res := &Result{}

	sched := switcher.NewScheduler(switcher.SchedulerConfig{
		Delay:     opts.Delay,
		AfterFunc: clock.afterFunc,
		Activator: rec,
		Publish: func(buttons []*model.Button) {
			res.Frames = append(res.Frames, Frame{At: clock.now, Kind: FrameButtons, Buttons: model.Snapshot(buttons)})
		},
		PublishTitle: func(b *model.Button) {
			res.Frames = append(res.Frames, Frame{At: clock.now, Kind: FrameTitle, Buttons: model.Snapshot([]*model.Button{b})})
		},
		Metrics:  opts.Metrics,
		Logger:   logger.With("component", "replay"),
		Dispatch: func(fn func()) { fn() },
	})

	for _, step := range script.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		clock.advanceTo(step.At)
		apply(ctx, sched, step)
	}
	clock.drain()

	res.Requests = rec.requests
	res.Final = model.Snapshot(sched.Buttons())
	res.Pending = sched.Pending()
	return res, nil
}

func apply(ctx context.Context, sched *switcher.Scheduler, step Step) {
	if step.Windows != nil {
		sched.OnWindowListChanged(*step.Windows)
	}
	if step.Title != nil {
		sched.OnTitleChanged(step.Title.ID, step.Title.Title)
	}
	if step.Activate != nil {
		sched.OnActivateRequested(ctx, *step.Activate)
	}
	if step.Close != nil {
		sched.OnCloseRequested(ctx, *step.Close)
	}
	if step.Viewport {
		sched.OnViewportChanged()
	}
}
