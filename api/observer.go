package api

import "time"

// Observer receives one call per HTTP exchange and one per 429 retry.
// status is 0 when the request never got a response.
type Observer interface {
	ObserveRequest(route string, status int, elapsed time.Duration)
	ObserveRetry(route string)
}

type NoopObserver struct{}

var _ Observer = NoopObserver{}

func (NoopObserver) ObserveRequest(string, int, time.Duration) {}

func (NoopObserver) ObserveRetry(string) {}
