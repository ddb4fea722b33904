package rate

import "net/http"

// NoopLimiter never waits. Useful in tests.
type NoopLimiter struct {
}

var _ Limiter = &NoopLimiter{}

func (n NoopLimiter) Limit(_ *http.Request) {
}
