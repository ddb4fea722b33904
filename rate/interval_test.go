package rate

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_IntervalLimiter_first_call_is_immediate(t *testing.T) {
	l := NewIntervalLimiter(time.Second)

	start := time.Now()
	l.Limit(nil)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func Test_IntervalLimiter_sequential(t *testing.T) {
	interval := 40 * time.Millisecond
	l := NewIntervalLimiter(interval)

	start := time.Now()
	for range 4 {
		l.Limit(nil)
	}
	assert.GreaterOrEqual(t, time.Since(start), 3*interval)
}

func Test_IntervalLimiter_concurrent_callers_share_the_gate(t *testing.T) {
	interval := 30 * time.Millisecond
	l := NewIntervalLimiter(interval)
	req, err := http.NewRequest(http.MethodGet, "https://app.ticketmaster.com/discovery/v2/events.json", nil)
	require.NoError(t, err)

	start := time.Now()
	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Limit(req)
		}()
	}
	wg.Wait()

	assert.GreaterOrEqual(t, time.Since(start), 4*interval)
}

func Test_IntervalLimiter_disabled(t *testing.T) {
	l := NewIntervalLimiter(0)

	start := time.Now()
	for range 100 {
		l.Limit(nil)
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func Test_NewIntervalLimiterSecs(t *testing.T) {
	l := NewIntervalLimiterSecs(0.5)
	assert.Equal(t, 500*time.Millisecond, l.Interval())
}

func Test_NoopLimiter(t *testing.T) {
	var l Limiter = &NoopLimiter{}
	l.Limit(nil)
}
