package sink

import (
	"sync"

	"github.com/labrat-0/event-ticket-scraper/types"
)

// Sink is the ordered destination of scraped records.
// Push is called once per batch; batches arrive in record order unless
// the batch processor runs async.
type Sink interface {
	Push(records []types.Record) error
	Close() error
}

// Memory keeps every pushed record. It is safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	records []types.Record
	batches int
	closed  bool
}

var _ Sink = &Memory{}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Push(records []types.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = append(m.records, records...)
	m.batches++
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	return nil
}

// Records returns a copy of everything pushed so far.
func (m *Memory) Records() []types.Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]types.Record, len(m.records))
	copy(out, m.records)
	return out
}

// Batches is the number of Push calls.
func (m *Memory) Batches() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.batches
}

func (m *Memory) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.closed
}
