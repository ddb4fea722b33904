package rate

import "net/http"

// Limiter paces requests to the Ticketmaster API.
//
// The Limit method is called before every attempt of every request,
// retries included, and must block until the request may be sent.
// Implementations must be safe for concurrent use: two goroutines sharing
// one Limiter must never both pass within a single pacing window.
//
// Example usage:
//
//	limiter := rate.NewIntervalLimiter(500 * time.Millisecond)
//	client := ticketscraper.NewClient(apiKey, ticketscraper.WithRateLimiter(limiter))
type Limiter interface {
	// Limit blocks until req may be sent. The request context bounds the wait.
	Limit(req *http.Request)
}
