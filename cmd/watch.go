package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mj1618/switcher/internal/model"
	"github.com/mj1618/switcher/internal/output"
	"github.com/mj1618/switcher/internal/switcher"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the switcher and stream button changes as JSONL",
	Long: `Run the switcher against the live window system and emit every button change
(added, removed, retitled) as JSONL to stdout.

Each line is a JSON object representing one change. A "snapshot" line is
written when the first button set is published and a "done" line on exit.
Output is always JSONL regardless of the --format flag.

Use Ctrl+C or --duration to stop watching.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Duration("delay", 0, "Debounce delay for new windows (default from SWITCHER_UPDATE_DELAY)")
	watchCmd.Flags().Int("duration", 0, "Max seconds to watch (0 = until Ctrl+C)")
}

// watchEvent is a non-change line of the watch stream.
type watchEvent struct {
	Type    string              `json:"type"`
	TS      int64               `json:"ts"`
	Count   int                 `json:"count,omitempty"`
	Buttons []model.ButtonState `json:"buttons,omitempty"`
	Elapsed string              `json:"elapsed,omitempty"`
	Events  int                 `json:"events,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// changeStream turns publications into JSONL change lines. It is driven from
// the switcher loop goroutine.
type changeStream struct {
	stream *output.Stream
	clock  clockwork.Clock
	prev   []model.ButtonState
	seen   bool
	events int
}

func newChangeStream(s *output.Stream, clock clockwork.Clock) *changeStream {
	return &changeStream{stream: s, clock: clock}
}

func (c *changeStream) publish(buttons []*model.Button) {
	curr := model.Snapshot(buttons)
	if !c.seen {
		c.seen = true
		c.prev = curr
		c.emit(watchEvent{Type: "snapshot", TS: c.clock.Now().Unix(), Count: len(curr), Buttons: curr})
		return
	}
	for _, change := range model.DiffButtons(c.prev, curr) {
		c.emit(change)
		c.events++
	}
	c.prev = curr
}

func (c *changeStream) publishTitle(b *model.Button) {
	state := model.Snapshot([]*model.Button{b})[0]
	for i, p := range c.prev {
		if p.ID != b.ID {
			continue
		}
		c.emit(model.ButtonChange{Type: model.ChangeRetitled, Button: state, Position: i, OldTitle: p.Title})
		c.events++
		c.prev[i] = state
		return
	}
}

func (c *changeStream) emit(v interface{}) {
	if err := c.stream.Emit(v); err != nil {
		fmt.Fprintf(os.Stderr, "watch: %v\n", err)
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	delay, _ := cmd.Flags().GetDuration("delay")
	durationSec, _ := cmd.Flags().GetInt("duration")

	ctx := cmd.Context()
	if durationSec > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(durationSec)*time.Second)
		defer cancel()
	}

	clock := clockwork.NewRealClock()
	stream := output.NewStream(os.Stdout)
	changes := newChangeStream(stream, clock)
	start := clock.Now()

	err := runLive(ctx, switcher.Options{
		Delay:        delay,
		Clock:        clock,
		Publish:      changes.publish,
		PublishTitle: changes.publishTitle,
	}, nil)
	if err != nil {
		_ = stream.Emit(watchEvent{Type: "error", TS: clock.Now().Unix(), Error: err.Error()})
		return err
	}

	return stream.Emit(watchEvent{
		Type:    "done",
		TS:      clock.Now().Unix(),
		Elapsed: fmt.Sprintf("%.1fs", clock.Since(start).Seconds()),
		Events:  changes.events,
	})
}
