package output

import (
	"encoding/json"
	"io"
	"sync"
)

// Stream writes one compact JSON object per line. It is safe for concurrent use.
type Stream struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewStream creates a JSONL stream on w.
func NewStream(w io.Writer) *Stream {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Stream{enc: enc}
}

// Emit writes v as a single line.
func (s *Stream) Emit(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc.Encode(v)
}
