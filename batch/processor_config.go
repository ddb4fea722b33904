package batch

import (
	"time"

	"github.com/labrat-0/event-ticket-scraper/logger"
	"github.com/labrat-0/event-ticket-scraper/retry"
)

const DefaultFlushQueueSize = 25

type ProcessorConfig struct {
	// FlushQueueSize defines the maximum number of records
	// to accumulate before triggering a batch flush
	// default: 25
	FlushQueueSize int

	// FlushInterval specifies the maximum time to wait
	// before flushing a batch, even if FlushQueueSize hasn't been reached
	// default: 5 seconds
	FlushInterval time.Duration

	// MaxRetries sets the maximum number of attempts
	// for one Sink.Push
	// default: 1
	MaxRetries int

	// Retry configures the retry strategy (exponential backoff, delays, etc.)
	// for failed pushes
	// default: retry.NewExponentialRetry
	Retry retry.Retry

	// MaxBufferSize determines the buffer size of the internal record channel
	// to prevent blocking on Add() calls
	// default: 2000
	MaxBufferSize int

	// async is an internal field that stores the resolved async mode
	// from the Async function
	// default: false
	async bool

	// Async is a function that determines whether batches are pushed
	// from separate goroutines. Async pushes may reach the sink out of order.
	// default: false
	Async BoolFunc

	// MaxAsyncRequests limits the number of concurrent goroutines
	// when processing batches asynchronously.
	// default: 50
	MaxAsyncRequests int

	// Logger provides logging functionality for debugging
	// and monitoring batch processing operations
	// default: logger.Noop
	Logger logger.Logger
}

type BoolFunc func() bool

var IsFalse BoolFunc = func() bool { return false }
var IsTrue BoolFunc = func() bool { return true }

func defaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		FlushQueueSize: DefaultFlushQueueSize,
		FlushInterval:  5 * time.Second,
		MaxRetries:     1,
		Retry: retry.NewExponentialRetry(
			retry.WithInitialDuration(100*time.Millisecond),
			retry.WithLogger(&logger.Noop{}),
		),
		MaxBufferSize:    2000,
		async:            false,
		MaxAsyncRequests: 50,
		Logger:           &logger.Noop{},
	}
}

func applyProcessorConfig(inConfig ProcessorConfig) ProcessorConfig {
	outConfig := defaultProcessorConfig()
	if inConfig.FlushQueueSize > 0 {
		outConfig.FlushQueueSize = inConfig.FlushQueueSize
	}
	if inConfig.FlushInterval > 0 {
		outConfig.FlushInterval = inConfig.FlushInterval
	}
	if inConfig.MaxRetries > 0 {
		outConfig.MaxRetries = inConfig.MaxRetries
	}
	if inConfig.Retry != nil {
		outConfig.Retry = inConfig.Retry
	}
	if inConfig.MaxBufferSize > 0 {
		outConfig.MaxBufferSize = inConfig.MaxBufferSize
	}
	if inConfig.Async != nil {
		outConfig.async = inConfig.Async()
	}
	if inConfig.MaxAsyncRequests > 1 {
		// processor needs at least 2 goroutines:
		// 1 - for the listener itself
		// 2 - for the async request
		outConfig.MaxAsyncRequests = inConfig.MaxAsyncRequests
	}
	if inConfig.Logger != nil {
		outConfig.Logger = inConfig.Logger
	}

	return outConfig
}
