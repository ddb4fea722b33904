package batch

import (
	"github.com/labrat-0/event-ticket-scraper/types"
)

// Response reports the outcome of one flushed batch.
//
// Usage Example:
//
//	for res := range respChan {
//	    if res.Error != nil {
//	        log.Printf("lost %d records: %v", res.Count, res.Error)
//	        continue
//	    }
//	    pushed += res.Count
//	}
type Response struct {
	// Count is len(Records)
	Count int
	// Records is the batch as it was handed to the sink
	Records []types.Record
	// Error is the last sink error after all retries,
	// or nil if the batch was stored
	Error error
}
