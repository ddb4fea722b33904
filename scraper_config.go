package ticketscraper

import (
	"time"

	"github.com/labrat-0/event-ticket-scraper/batch"
	"github.com/labrat-0/event-ticket-scraper/logger"
	"github.com/labrat-0/event-ticket-scraper/retry"
	"github.com/labrat-0/event-ticket-scraper/state"
)

const (
	DefaultFreeTierLimit = 25
	DefaultBatchSize     = batch.DefaultFlushQueueSize
)

// StatusReporter receives the human-readable progress of a run.
type StatusReporter interface {
	SetStatus(msg string)
}

// RecordObserver is told how many records of a kind reached the sink.
type RecordObserver interface {
	ObserveRecords(kind string, n int)
}

type scraperConfig struct {
	// freeTier caps every run at freeTierLimit
	// default: false
	freeTier bool

	// default: 25
	freeTierLimit int

	// store keeps total_pushed between restarts
	// default: state.NewMemoryStore()
	store state.Store

	// status receives progress messages
	// default: logs them at info
	status StatusReporter

	// batchSize is the number of records per sink push
	// default: 25
	batchSize int

	// flushInterval pushes a partial batch after this long
	// default: 5 seconds
	flushInterval time.Duration

	// maxRetries is the number of attempts of one sink push
	// default: 1
	maxRetries int

	// pushRetry drives retries of failed sink pushes
	// default: batch processor default (exponential)
	pushRetry retry.Retry

	// recordObserver counts records pushed
	// default: none
	recordObserver RecordObserver

	// logger for the run itself
	// default: the client's logger
	logger logger.Logger
}

func defaultScraperConfig() *scraperConfig {
	return &scraperConfig{
		freeTierLimit: DefaultFreeTierLimit,
		store:         state.NewMemoryStore(),
		batchSize:     DefaultBatchSize,
		flushInterval: 5 * time.Second,
		maxRetries:    1,
	}
}

type ScraperOption func(c *scraperConfig)

func WithFreeTier(enabled bool) ScraperOption {
	return func(c *scraperConfig) {
		c.freeTier = enabled
	}
}

func WithFreeTierLimit(limit int) ScraperOption {
	return func(c *scraperConfig) {
		if limit > 0 {
			c.freeTierLimit = limit
		}
	}
}

func WithStateStore(store state.Store) ScraperOption {
	return func(c *scraperConfig) {
		c.store = store
	}
}

func WithStatusReporter(status StatusReporter) ScraperOption {
	return func(c *scraperConfig) {
		c.status = status
	}
}

func WithBatchSize(size int) ScraperOption {
	return func(c *scraperConfig) {
		c.batchSize = size
	}
}

func WithFlushInterval(interval time.Duration) ScraperOption {
	return func(c *scraperConfig) {
		c.flushInterval = interval
	}
}

func WithMaxRetries(n int) ScraperOption {
	return func(c *scraperConfig) {
		c.maxRetries = n
	}
}

func WithPushRetry(r retry.Retry) ScraperOption {
	return func(c *scraperConfig) {
		c.pushRetry = r
	}
}

func WithRecordObserver(o RecordObserver) ScraperOption {
	return func(c *scraperConfig) {
		c.recordObserver = o
	}
}

func WithScraperLogger(l logger.Logger) ScraperOption {
	return func(c *scraperConfig) {
		c.logger = l
	}
}

type logStatus struct {
	logger logger.Logger
}

func (s logStatus) SetStatus(msg string) {
	s.logger.Infof("status: %s", msg)
}
