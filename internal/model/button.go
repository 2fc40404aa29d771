package model

import "github.com/google/uuid"

// Button is one on-screen switcher button bound to a window.
//
// A *Button is shared between the switcher's window map and the published
// button sequence. Only the switcher loop writes to it.
type Button struct {
	ID     uuid.UUID
	Window WindowID
	Title  string
}

// NewButton creates a button bound to w.
func NewButton(w Window) *Button {
	return &Button{
		ID:     uuid.New(),
		Window: w.ID,
		Title:  w.Title,
	}
}

// ButtonMap maps a window to the button currently bound to it.
type ButtonMap map[WindowID]*Button

// ButtonState is a value copy of a Button, safe to hand to other goroutines.
type ButtonState struct {
	ID     uuid.UUID `yaml:"id"     json:"id"`
	Window WindowID  `yaml:"window" json:"window"`
	Title  string    `yaml:"title"  json:"title"`
}

// Snapshot copies buttons into values, preserving order.
func Snapshot(buttons []*Button) []ButtonState {
	states := make([]ButtonState, len(buttons))
	for i, b := range buttons {
		states[i] = ButtonState{ID: b.ID, Window: b.Window, Title: b.Title}
	}
	return states
}
