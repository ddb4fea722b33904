package ticketscraper

import (
	"net/http"
	"time"

	"github.com/labrat-0/event-ticket-scraper/api"
	"github.com/labrat-0/event-ticket-scraper/logger"
	"github.com/labrat-0/event-ticket-scraper/rate"
	"github.com/labrat-0/event-ticket-scraper/retry"
)

type config struct {
	// transport specifies the HTTP transport mechanism
	// for making requests.
	// It's useful for mocking or if customers
	// want to add extra logging, headers, etc.
	// default: http.DefaultTransport
	transport http.RoundTripper

	// timeout sets the maximum duration for HTTP requests
	// before they are cancelled
	// default: 30 seconds
	timeout time.Duration

	// logger provides logging functionality for all internal
	// client operations
	// default: logger.Noop
	logger logger.Logger

	// limiter paces every request, retries included.
	// When nil, a Scraper run derives one from requestIntervalSecs.
	// default: rate.NewIntervalLimiterSecs(0.5)
	limiter rate.Limiter

	// retry drives the 429 back-off
	// default: retry.NewScheduleRetry (5s, 15s, 30s)
	retry retry.Retry

	// baseUrl of the Discovery API
	// default: api.DefaultBaseUrl
	baseUrl string

	// userAgent sent with every request
	// default: api.DefaultUserAgent
	userAgent string

	// observer receives request and retry metrics
	// default: api.NoopObserver
	observer api.Observer
}

func defaultConfig() *config {
	return &config{
		transport: http.DefaultTransport,
		timeout:   30 * time.Second,
		logger:    &logger.Noop{},
		baseUrl:   api.DefaultBaseUrl,
		userAgent: api.DefaultUserAgent,
		observer:  api.NoopObserver{},
	}
}

type ConfigOption func(c *config)

func WithTransport(transport http.RoundTripper) ConfigOption {
	return func(c *config) {
		c.transport = transport
	}
}

func WithTimeout(timeout time.Duration) ConfigOption {
	return func(c *config) {
		c.timeout = timeout
	}
}

func WithLogger(logger logger.Logger) ConfigOption {
	return func(c *config) {
		c.logger = logger
	}
}

func WithRateLimiter(limiter rate.Limiter) ConfigOption {
	return func(c *config) {
		c.limiter = limiter
	}
}

func WithRetry(r retry.Retry) ConfigOption {
	return func(c *config) {
		c.retry = r
	}
}

func WithBaseUrl(baseUrl string) ConfigOption {
	return func(c *config) {
		c.baseUrl = baseUrl
	}
}

func WithUserAgent(userAgent string) ConfigOption {
	return func(c *config) {
		c.userAgent = userAgent
	}
}

func WithObserver(observer api.Observer) ConfigOption {
	return func(c *config) {
		c.observer = observer
	}
}
