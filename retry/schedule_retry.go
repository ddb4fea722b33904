package retry

import (
	"errors"
	"fmt"
	"time"

	"github.com/labrat-0/event-ticket-scraper/logger"
)

// DefaultSchedule is the wait before the 1st, 2nd and 3rd retry of a
// throttled Ticketmaster request.
var DefaultSchedule = []time.Duration{
	5 * time.Second,
	15 * time.Second,
	30 * time.Second,
}

type scheduleConfig struct {
	schedule []time.Duration
	logger   logger.Logger
	sleep    func(d time.Duration)
}

func defaultScheduleConfig() scheduleConfig {
	return scheduleConfig{
		schedule: DefaultSchedule,
		logger:   &logger.Noop{},
		sleep:    time.Sleep,
	}
}

type ScheduleConfigOption func(c *scheduleConfig)

// WithSchedule replaces DefaultSchedule. Attempts beyond the schedule
// reuse its last entry; an empty schedule never waits.
func WithSchedule(schedule ...time.Duration) ScheduleConfigOption {
	return func(c *scheduleConfig) {
		c.schedule = schedule
	}
}

func WithScheduleLogger(log logger.Logger) ScheduleConfigOption {
	return func(c *scheduleConfig) {
		c.logger = log
	}
}

// WithSleep swaps time.Sleep, mostly for tests.
func WithSleep(sleep func(d time.Duration)) ScheduleConfigOption {
	return func(c *scheduleConfig) {
		c.sleep = sleep
	}
}

type scheduleRetry struct {
	config scheduleConfig
}

var _ Retry = &scheduleRetry{}

// NewScheduleRetry waits a fixed, attempt-indexed duration between attempts.
// When the failed attempt's error implements Delayer and reports a wait,
// that wait is used instead. There is no jitter.
func NewScheduleRetry(opts ...ScheduleConfigOption) Retry {
	var config = defaultScheduleConfig()
	for _, opt := range opts {
		opt(&config)
	}

	return &scheduleRetry{config}
}

func (r *scheduleRetry) Do(
	attempts int,
	fnName string,
	fn RetriableFn,
) error {
	if attempts < 1 {
		return fmt.Errorf("attempts must be > 0")
	}

	var err error
	for i := 0; i < attempts; i++ {
		var exitNow ExitStrategy
		if err, exitNow = fn(i); err == nil {
			return nil
		}
		if exitNow {
			return err
		}
		if i == attempts-1 {
			break
		}

		wait := r.delay(i, err)
		r.config.logger.Warnf(
			"Error during retry %s; retrying. retry=%d/%d, backoff=%v, error=%v",
			fnName, i+1, attempts-1, wait, err,
		)
		r.config.sleep(wait)
	}

	r.config.logger.Errorf(
		"Exhausted all retry attempts for %s; giving up after %d retries. error=%v",
		fnName, attempts-1, err,
	)

	return err
}

func (r *scheduleRetry) delay(attempt int, err error) time.Duration {
	var d Delayer
	if errors.As(err, &d) {
		if wait, ok := d.RetryAfter(); ok {
			return wait
		}
	}

	schedule := r.config.schedule
	if len(schedule) == 0 {
		return 0
	}
	if attempt >= len(schedule) {
		return schedule[len(schedule)-1]
	}
	return schedule[attempt]
}
