package model

// WindowID is the opaque window-system handle of a top-level window.
type WindowID uint32

// Window describes one open, switchable window as reported by discovery.
// Only ID takes part in identity; the other fields are informational.
type Window struct {
	ID    WindowID `yaml:"id"              json:"id"`
	Title string   `yaml:"title"           json:"title"`
	App   string   `yaml:"app,omitempty"   json:"app,omitempty"`
	PID   int      `yaml:"pid,omitempty"   json:"pid,omitempty"`
}
