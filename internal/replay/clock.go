package replay

import (
	"sort"
	"time"
)

type timer struct {
	at  time.Duration
	seq int
	fn  func()
}

// virtualClock is a manually advanced clock whose timers fire synchronously,
// in deadline order and then arming order, on the caller's goroutine.
type virtualClock struct {
	now    time.Duration
	seq    int
	timers []timer
}

func (c *virtualClock) afterFunc(d time.Duration, fn func()) {
	t := timer{at: c.now + d, seq: c.seq, fn: fn}
	c.seq++
	i := sort.Search(len(c.timers), func(i int) bool {
		o := c.timers[i]
		return o.at > t.at || (o.at == t.at && o.seq > t.seq)
	})
	c.timers = append(c.timers, timer{})
	copy(c.timers[i+1:], c.timers[i:])
	c.timers[i] = t
}

// advanceTo fires every timer due at or before until, moving now to each
// deadline as it goes. Timers armed by a firing are honoured.
func (c *virtualClock) advanceTo(until time.Duration) {
	for len(c.timers) > 0 && c.timers[0].at <= until {
		t := c.timers[0]
		c.timers = c.timers[1:]
		c.now = t.at
		t.fn()
	}
	if until > c.now {
		c.now = until
	}
}

// drain fires every remaining timer.
func (c *virtualClock) drain() {
	for len(c.timers) > 0 {
		c.advanceTo(c.timers[len(c.timers)-1].at)
	}
}
