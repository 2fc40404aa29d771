// Package replay feeds a scripted sequence of window-system events through a
// switcher scheduler on a virtual clock and records what it publishes.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mj1618/switcher/internal/model"
	"gopkg.in/yaml.v3"
)

// ErrUnordered is returned when step offsets decrease.
var ErrUnordered = errors.New("replay: step offsets must be non-decreasing")

// Script is a list of timed steps.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// Step is one scripted moment. Every action set on a step is applied at At,
// in field order.
type Step struct {
	At       time.Duration   `yaml:"at"`
	Windows  *[]model.Window `yaml:"windows,omitempty"`
	Title    *TitleChange    `yaml:"title,omitempty"`
	Activate *model.WindowID `yaml:"activate,omitempty"`
	Close    *model.WindowID `yaml:"close,omitempty"`
	Viewport bool            `yaml:"viewport,omitempty"`
}

// TitleChange renames one window.
type TitleChange struct {
	ID    model.WindowID `yaml:"id"`
	Title string         `yaml:"title"`
}

func (s Step) empty() bool {
	return s.Windows == nil && s.Title == nil && s.Activate == nil && s.Close == nil && !s.Viewport
}

// Validate checks offsets and that every step does something.
func (s *Script) Validate() error {
	var last time.Duration
	for i, step := range s.Steps {
		if step.At < 0 {
			return fmt.Errorf("step %d: negative offset %s", i, step.At)
		}
		if step.At < last {
			return fmt.Errorf("step %d at %s after %s: %w", i, step.At, last, ErrUnordered)
		}
		if step.empty() {
			return fmt.Errorf("step %d: no action", i)
		}
		last = step.At
	}
	return nil
}

// Parse decodes and validates a YAML script.
func Parse(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("decode script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads a script from path.
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	return Parse(f)
}
