package ticketscraper

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/labrat-0/event-ticket-scraper/api"
	"github.com/labrat-0/event-ticket-scraper/batch"
	"github.com/labrat-0/event-ticket-scraper/logger"
	"github.com/labrat-0/event-ticket-scraper/parsers"
	"github.com/labrat-0/event-ticket-scraper/sink"
	"github.com/labrat-0/event-ticket-scraper/state"
	"github.com/labrat-0/event-ticket-scraper/types"
)

// Scraper runs one mode of the scraper end to end: validation, the result
// cap, batching into a sink.Sink and the resume checkpoint.
//
// Usage Example:
//
//	client := ticketscraper.NewClient(apiKey)
//	s := ticketscraper.NewScraper(client, sink.NewJSONLines(os.Stdout))
//	res, err := s.Run(ctx, input)
type Scraper struct {
	client *Client
	sink   sink.Sink
	config *scraperConfig
	logger logger.Logger
	status StatusReporter
}

// RunResult describes how a run ended. Err is the API failure that cut
// the record sequence short, if any; it does not fail the run.
type RunResult struct {
	RunID  uuid.UUID
	Mode   string
	Pushed int
	Reason api.StopReason
	Err    error
}

func NewScraper(client *Client, s sink.Sink, opts ...ScraperOption) *Scraper {
	cfg := defaultScraperConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.batchSize <= 0 {
		cfg.batchSize = DefaultBatchSize
	}

	l := cfg.logger
	if l == nil {
		l = client.config.logger
	}
	status := cfg.status
	if status == nil {
		status = logStatus{logger: l}
	}

	return &Scraper{
		client: client,
		sink:   s,
		config: cfg,
		logger: l,
		status: status,
	}
}

// Run validates in before anything is sent, then pushes up to the
// effective cap of records to the sink. Only invalid input, a failing
// checkpoint store, a failing sink or ctx end the run with an error.
func (s *Scraper) Run(ctx context.Context, in types.ScraperInput) (*RunResult, error) {
	res := &RunResult{
		RunID: uuid.New(),
		Mode:  in.Mode,
	}

	if err := in.Validate(); err != nil {
		s.status.SetStatus("Error: " + err.Error())
		return res, err
	}

	maxResults := in.MaxResults
	if s.config.freeTier {
		maxResults = min(maxResults, s.config.freeTierLimit)
		s.logger.Infof("Free tier: limiting to %d results", maxResults)
	}

	s.status.SetStatus(fmt.Sprintf("%s (max %d results)...", describeMode(in), maxResults))

	st, err := s.config.store.Load()
	if err != nil {
		return res, fmt.Errorf("load state: %w", err)
	}
	s.logger.Infof("run %s: mode=%s total_pushed=%d", res.RunID, in.Mode, st.TotalPushed)

	client := s.client.forInput(in)
	records, result := s.source(client, in, max(maxResults-st.TotalPushed, 0))

	// handled counts records whose batch came back, stored or not.
	var (
		mu      sync.Mutex
		acked   = sync.NewCond(&mu)
		pushed  = st.TotalPushed
		handled int
		pushErr error
		saveErr error
	)
	respChan := make(chan batch.Response)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for r := range respChan {
			mu.Lock()
			handled += r.Count
			acked.Broadcast()
			if r.Error != nil {
				if pushErr == nil {
					pushErr = r.Error
				}
				mu.Unlock()
				continue
			}
			pushed += r.Count
			if err := s.config.store.Save(state.State{TotalPushed: pushed}); err != nil && saveErr == nil {
				saveErr = err
			}
			total := pushed
			mu.Unlock()

			if s.config.recordObserver != nil && r.Count > 0 {
				s.config.recordObserver.ObserveRecords(r.Records[0].Kind(), r.Count)
			}
			s.status.SetStatus(fmt.Sprintf("Found %d %s...", total, itemType(in.Mode)))
			s.logger.Infof("Pushed batch of %d (total: %d)", r.Count, total)
		}
	}()

	processor := batch.NewProcessor(s.sink, respChan, batch.ProcessorConfig{
		FlushQueueSize: s.config.batchSize,
		FlushInterval:  s.config.flushInterval,
		MaxRetries:     s.config.maxRetries,
		Retry:          s.config.pushRetry,
		Logger:         s.logger,
	})
	processor.Start()

	// pushFailed waits until less than a full batch is outstanding, so a
	// failed push is seen before the next page is requested.
	pushFailed := func(added int) bool {
		mu.Lock()
		defer mu.Unlock()
		for added-handled >= s.config.batchSize {
			acked.Wait()
		}
		return pushErr != nil
	}

	added := 0
	var ctxErr error
	for rec := range records {
		if err := ctx.Err(); err != nil {
			ctxErr = err
			s.logger.Warnf("run %s cancelled: %v", res.RunID, err)
			break
		}
		if st.TotalPushed+added >= maxResults {
			s.logger.Infof("Reached max results (%d), stopping", maxResults)
			break
		}
		processor.Add(rec)
		added++
		if pushFailed(added) {
			s.logger.Errorf("run %s: pushing to the sink failed, stopping", res.RunID)
			break
		}
	}

	processor.Stop()
	close(respChan)
	<-done

	res.Pushed = pushed
	res.Reason, res.Err = result()
	if res.Err != nil {
		s.logger.Warnf("run %s: record sequence ended early (%s): %v", res.RunID, res.Reason, res.Err)
	}

	s.logger.Infof("Scraping complete. Total records: %d", pushed)
	s.status.SetStatus(fmt.Sprintf("Done! Found %d %s.", pushed, itemType(in.Mode)))

	switch {
	case pushErr != nil:
		return res, fmt.Errorf("push records: %w", pushErr)
	case saveErr != nil:
		return res, fmt.Errorf("save state: %w", saveErr)
	case ctxErr != nil:
		return res, ctxErr
	}
	return res, nil
}

// source picks the record sequence of in.Mode. result reports how the
// sequence ended once it has been consumed.
func (s *Scraper) source(
	c *Client,
	in types.ScraperInput,
	maxResults int,
) (records iter.Seq[types.Record], result func() (api.StopReason, error)) {
	switch in.Mode {
	case types.ModeGetEvent:
		return lookupSource(c.Events(), in.EventId, maxResults)
	case types.ModeVenues:
		return pagerSource(c.Venues().Search(in.SearchQuery(maxResults)))
	default:
		return pagerSource(c.Events().Search(in.SearchQuery(maxResults)))
	}
}

func pagerSource[T types.Record](p *api.Pager[T]) (iter.Seq[types.Record], func() (api.StopReason, error)) {
	records := func(yield func(types.Record) bool) {
		for rec := range p.All() {
			if !yield(rec) {
				return
			}
		}
	}
	return records, func() (api.StopReason, error) {
		return p.Reason(), p.Err()
	}
}

// lookupSource yields the event, its placeholder on 404, or nothing.
func lookupSource(events *api.Events, eventId string, maxResults int) (iter.Seq[types.Record], func() (api.StopReason, error)) {
	var (
		reason api.StopReason
		err    error
	)
	records := func(yield func(types.Record) bool) {
		if maxResults <= 0 {
			reason = api.ReasonCapReached
			return
		}
		var (
			rec   *types.EventRecord
			found bool
		)
		rec, found, err = events.GetById(eventId)
		switch {
		case err != nil:
			reason = api.ReasonFor(err)
		case !found:
			reason = api.ReasonNotFound
			yield(parsers.NotFoundEventRecord(strings.TrimSpace(eventId)))
		default:
			reason = api.ReasonFound
			yield(*rec)
		}
	}
	return records, func() (api.StopReason, error) {
		return reason, err
	}
}

func describeMode(in types.ScraperInput) string {
	switch in.Mode {
	case types.ModeSearch:
		return fmt.Sprintf("Searching events for '%s'", in.Keyword)
	case types.ModeGetEvent:
		return fmt.Sprintf("Looking up event: %s", in.EventId)
	case types.ModeVenues:
		return fmt.Sprintf("Searching venues for '%s'", in.Keyword)
	default:
		return "Processing"
	}
}

func itemType(mode string) string {
	if mode == types.ModeVenues {
		return "venue(s)"
	}
	return "event(s)"
}
