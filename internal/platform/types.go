package platform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mj1618/switcher/internal/model"
)

// EventKind distinguishes discovery events.
type EventKind int

const (
	// EventWindowList carries the full, ordered list of switchable windows.
	EventWindowList EventKind = iota
	// EventWindowTitle carries a title change of a single window.
	EventWindowTitle
)

func (k EventKind) String() string {
	switch k {
	case EventWindowList:
		return "window-list"
	case EventWindowTitle:
		return "window-title"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a discovery notification.
type Event struct {
	Kind    EventKind
	Windows []model.Window // EventWindowList
	Window  model.WindowID // EventWindowTitle
	Title   string         // EventWindowTitle
}

// WindowListEvent builds an EventWindowList.
func WindowListEvent(windows []model.Window) Event {
	return Event{Kind: EventWindowList, Windows: windows}
}

// WindowTitleEvent builds an EventWindowTitle.
func WindowTitleEvent(window model.WindowID, title string) Event {
	return Event{Kind: EventWindowTitle, Window: window, Title: title}
}

// ParseWindowID parses a window ID given in decimal or as 0x-prefixed hex,
// the form xprop and wmctrl print.
func ParseWindowID(s string) (model.WindowID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid window id: empty")
	}
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid window id %q: %w", s, err)
	}
	if v == 0 {
		return 0, fmt.Errorf("invalid window id %q: must be non-zero", s)
	}
	return model.WindowID(v), nil
}
