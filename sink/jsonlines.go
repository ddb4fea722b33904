package sink

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/labrat-0/event-ticket-scraper/types"
)

// JSONLines writes one JSON object per record and line.
// Every batch is flushed before Push returns.
type JSONLines struct {
	mu  sync.Mutex
	buf *bufio.Writer
	enc *json.Encoder
}

var _ Sink = &JSONLines{}

func NewJSONLines(w io.Writer) *JSONLines {
	buf := bufio.NewWriter(w)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	return &JSONLines{buf: buf, enc: enc}
}

func (s *JSONLines) Push(records []types.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range records {
		if err := s.enc.Encode(rec); err != nil {
			return fmt.Errorf("encode %s record: %w", rec.Kind(), err)
		}
	}
	return s.buf.Flush()
}

// Close flushes. The underlying writer belongs to the caller.
func (s *JSONLines) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.buf.Flush()
}
