package batch

import (
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/labrat-0/event-ticket-scraper/logger"
	"github.com/labrat-0/event-ticket-scraper/retry"
	"github.com/labrat-0/event-ticket-scraper/sink"
	"github.com/labrat-0/event-ticket-scraper/types"
)

// Processor accumulates records and pushes them to a sink.Sink in batches,
// based on size or time thresholds, with retries and an optional
// response channel reporting every flushed batch.
//
// Usage Example:
//
//	processor := batch.NewProcessor(
//	    sink.NewJSONLines(os.Stdout),
//	    responseChan,        // Optional channel to receive one Response per batch
//	    batch.ProcessorConfig{
//	        FlushQueueSize: 25,              // Push when 25 records accumulate
//	        FlushInterval:  5*time.Second,   // Or every 5 seconds
//	        MaxRetries:     3,               // Try a failed push up to 3 times
//	    },
//	)
//
//	processor.Start()
//	for rec := range pager.All() {
//	    processor.Add(rec)
//	}
//	processor.Stop() // pushes the last partial batch
type Processor interface {
	// Start begins the batch processing loop. The processor
	// will start listening for records and automatically flush batches
	// when FlushQueueSize is reached or FlushInterval elapses.
	// This method is idempotent - calling Start() multiple times
	// has no effect if already running.
	Start()

	// Stop gracefully shuts down the processor. It closes the record channel,
	// flushes what is left, waits for all in-flight pushes to complete
	// (both sync and async), and prepares for potential restart.
	// This method is idempotent - calling Stop() multiple times
	// has no effect if already stopped.
	Stop()

	// Add queues a record for batch processing.
	// This method is thread-safe and will block if the internal buffer is full.
	Add(rec types.Record)
}

type processor struct {
	sink     sink.Sink
	reqChan  chan types.Record
	respChan chan<- Response
	config   ProcessorConfig
	logger   logger.Logger
	retry    retry.Retry
	syncReq  sync.WaitGroup
	asyncReq errgroup.Group
	mu       sync.RWMutex
	running  bool
}

func NewProcessor(
	s sink.Sink,
	respChan chan<- Response,
	config ProcessorConfig,
) Processor {
	config = applyProcessorConfig(config)

	return &processor{
		sink:     s,
		reqChan:  make(chan types.Record, config.MaxBufferSize),
		respChan: respChan,
		config:   config,
		logger:   config.Logger,
		retry:    config.Retry,
	}
}

func (p *processor) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return
	}

	p.asyncReq.SetLimit(p.config.MaxAsyncRequests)
	p.asyncReq.Go(func() error {
		p.listen()
		return nil
	})
	p.running = true
}

func (p *processor) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	// initiate exit from the "listen" loop
	close(p.reqChan)

	// wait for all goroutines to finish
	err := p.asyncReq.Wait()
	if err != nil {
		p.logger.Errorf("batch.Processor: failed to wait for all in-flight pushes: %v", err)
	}

	// wait for all sync calls to finish
	p.syncReq.Wait()

	// override reqChan to handle a Start->Stop->Start case
	// as next call to Add() will panic if the channel is closed
	p.reqChan = make(chan types.Record, p.config.MaxBufferSize)
	p.running = false
	p.logger.Debugf("batch.Processor: processed last batch")
}

func (p *processor) Add(rec types.Record) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	p.reqChan <- rec
}

func (p *processor) listen() {
	var batch []types.Record
	t := time.NewTicker(p.config.FlushInterval)
	defer t.Stop()

	p.logger.Debugf("batch.Processor: listening...")

	var process func(batch []types.Record)
	if p.config.async {
		process = p.processAsync
	} else {
		process = p.process
	}

	for {
		select {
		case rec, ok := <-p.reqChan:
			if !ok {
				if len(batch) > 0 {
					process(batch)
				}
				return
			}
			batch = append(batch, rec)
			if len(batch) >= p.config.FlushQueueSize {
				process(batch)
				batch = nil
				t.Reset(p.config.FlushInterval)
			}
		case <-t.C:
			if len(batch) > 0 {
				process(batch)
				batch = nil
			}
		}
	}
}

func (p *processor) processAsync(batch []types.Record) {
	p.asyncReq.Go(func() error {
		p.process(batch)
		return nil
	})
}

func (p *processor) process(batch []types.Record) {
	p.syncReq.Add(1)
	defer p.syncReq.Done()

	if len(batch) == 0 {
		return
	}

	err := p.retry.Do(
		p.config.MaxRetries,
		"batch.Processor.process",
		func(attempt int) (error, retry.ExitStrategy) {
			if err := p.sink.Push(batch); err != nil {
				return err, retry.Continue
			}
			return nil, retry.StopNow
		},
	)
	if err != nil {
		p.logger.Errorf("batch.Processor: failed to push %d record(s): %v", len(batch), err)
	} else {
		p.logger.Debugf("batch.Processor: pushed %d record(s)", len(batch))
	}

	p.sendResponse(Response{
		Count:   len(batch),
		Records: batch,
		Error:   err,
	})
}

func (p *processor) sendResponse(r Response) {
	if p.respChan != nil {
		p.respChan <- r
	}
}
