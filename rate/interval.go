package rate

import (
	"context"
	"net/http"
	"time"

	xrate "golang.org/x/time/rate"
)

// IntervalLimiter guarantees at least `interval` between the starts of
// two permitted requests. It is a single pacing gate: callers are
// admitted one at a time in the order they reserved a slot, so
// concurrent callers cannot bypass the interval.
// The first request goes out immediately.
type IntervalLimiter struct {
	interval time.Duration
	limiter  *xrate.Limiter
}

var _ Limiter = &IntervalLimiter{}

// NewIntervalLimiter creates a limiter owned by a single client.
// A non-positive interval disables pacing.
func NewIntervalLimiter(interval time.Duration) *IntervalLimiter {
	limit := xrate.Inf
	if interval > 0 {
		limit = xrate.Every(interval)
	}
	return &IntervalLimiter{
		interval: interval,
		limiter:  xrate.NewLimiter(limit, 1),
	}
}

// NewIntervalLimiterSecs is NewIntervalLimiter for the
// requestIntervalSecs input value.
func NewIntervalLimiterSecs(secs float64) *IntervalLimiter {
	return NewIntervalLimiter(time.Duration(secs * float64(time.Second)))
}

func (l *IntervalLimiter) Interval() time.Duration {
	return l.interval
}

func (l *IntervalLimiter) Limit(req *http.Request) {
	ctx := context.Background()
	if req != nil {
		ctx = req.Context()
	}
	// Wait only fails when ctx is done; the request then fails on its own.
	_ = l.limiter.Wait(ctx)
}
