// Package ticketscraper collects events and venues from the Ticketmaster
// Discovery API and hands them, normalized, to a sink.
package ticketscraper

import (
	"net/http"
	"strings"

	"github.com/labrat-0/event-ticket-scraper/api"
	"github.com/labrat-0/event-ticket-scraper/rate"
	"github.com/labrat-0/event-ticket-scraper/types"
)

type Client struct {
	httpClient *http.Client
	limiter    rate.Limiter
	config     *config
	apiKey     string

	events *api.Events
	venues *api.Venues
}

func NewClient(apiKey string, opts ...ConfigOption) *Client {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	httpClient := &http.Client{}
	httpClient.Transport = cfg.transport
	httpClient.Timeout = cfg.timeout

	limiter := cfg.limiter
	if limiter == nil {
		limiter = rate.NewIntervalLimiterSecs(types.DefaultRequestIntervalSecs)
	}

	return newClient(apiKey, httpClient, limiter, cfg)
}

func newClient(apiKey string, httpClient *http.Client, limiter rate.Limiter, cfg *config) *Client {
	apiCfg := api.Config{
		ApiKey:     apiKey,
		BaseUrl:    cfg.baseUrl,
		UserAgent:  cfg.userAgent,
		HttpClient: httpClient,
		Logger:     cfg.logger,
		Limiter:    limiter,
		Retry:      cfg.retry,
		Observer:   cfg.observer,
	}

	return &Client{
		httpClient: httpClient,
		limiter:    limiter,
		config:     cfg,
		apiKey:     apiKey,
		events:     api.NewEventsApi(apiCfg),
		venues:     api.NewVenuesApi(apiCfg),
	}
}

// forInput returns a client bound to the key and pacing of one run.
// The http.Client is shared. An explicit WithRateLimiter wins over
// requestIntervalSecs.
func (c *Client) forInput(in types.ScraperInput) *Client {
	apiKey := c.apiKey
	if key := strings.TrimSpace(in.ApiKey); key != "" {
		apiKey = key
	}

	limiter := c.config.limiter
	if limiter == nil {
		limiter = rate.NewIntervalLimiterSecs(in.RequestIntervalSecs)
	}

	return newClient(apiKey, c.httpClient, limiter, c.config)
}

func (c *Client) Events() *api.Events {
	return c.events
}

func (c *Client) Venues() *api.Venues {
	return c.venues
}
