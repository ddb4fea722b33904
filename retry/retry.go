package retry

import "time"

// Retry provides a standardized interface for implementing retry logic
// with different strategies.
//
// It is used in two places:
// - the API client retries throttled (429) requests with a fixed schedule
// - the batch processor retries failed sink pushes with exponential backoff
//
// Usage Example:
//
//	r := retry.NewScheduleRetry(
//	    retry.WithSchedule(5*time.Second, 15*time.Second, 30*time.Second),
//	    retry.WithScheduleLogger(myLogger),
//	)
//
//	err := r.Do(4, "events.json", func(attempt int) (error, retry.ExitStrategy) {
//	    res, err := send()
//	    if err != nil {
//	        return err, retry.StopNow    // Don't retry this error
//	    }
//	    if res.StatusCode == http.StatusTooManyRequests {
//	        return throttled, retry.Continue // Retry this error
//	    }
//	    return nil, retry.StopNow
//	})
//
// The RetriableFn function receives the current attempt number (0-based) and returns
// an error and an ExitStrategy. The ExitStrategy determines whether to continue
// retrying (Continue) or stop immediately (StopNow), regardless of remaining attempts.
//
// NOTE: if attempts is 0, the fn is never called.
type Retry interface {
	Do(attempts int, fnName string, fn RetriableFn) error
}

type RetriableFn func(attempt int) (error, ExitStrategy)

type ExitStrategy bool

var StopNow ExitStrategy = true
var Continue ExitStrategy = false

// Delayer is implemented by errors that carry a server-supplied wait,
// e.g. a Retry-After header. Policies that support hints use it
// instead of their own backoff for the next attempt.
type Delayer interface {
	RetryAfter() (time.Duration, bool)
}
