package api

import (
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/labrat-0/event-ticket-scraper/errors"
	"github.com/labrat-0/event-ticket-scraper/logger"
	"github.com/labrat-0/event-ticket-scraper/rate"
	"github.com/labrat-0/event-ticket-scraper/retry"
)

const (
	DefaultBaseUrl   = "https://app.ticketmaster.com/discovery/v2"
	DefaultUserAgent = "EventTicketScraper/1.0 (Apify Actor; https://apify.com/labrat011/event-ticket-scraper)"

	// maxAttempts is the initial request plus 3 retries on 429.
	maxAttempts = 4

	excerptLen = 500
)

// Config carries everything the resource APIs share.
// Zero values are replaced with defaults.
type Config struct {
	ApiKey     string
	BaseUrl    string
	UserAgent  string
	HttpClient *http.Client
	Logger     logger.Logger
	Limiter    rate.Limiter
	Retry      retry.Retry
	Observer   Observer
}

type apiClient struct {
	apiKey     string
	baseUrl    string
	userAgent  string
	httpClient *http.Client
	logger     logger.Logger
	limiter    rate.Limiter
	retry      retry.Retry
	observer   Observer
}

func newApiClient(cfg Config) *apiClient {
	c := &apiClient{
		apiKey:     cfg.ApiKey,
		baseUrl:    strings.TrimRight(cfg.BaseUrl, "/"),
		userAgent:  cfg.UserAgent,
		httpClient: cfg.HttpClient,
		logger:     cfg.Logger,
		limiter:    cfg.Limiter,
		retry:      cfg.Retry,
		observer:   cfg.Observer,
	}
	if c.baseUrl == "" {
		c.baseUrl = DefaultBaseUrl
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if c.logger == nil {
		c.logger = &logger.Noop{}
	}
	if c.limiter == nil {
		c.limiter = &rate.NoopLimiter{}
	}
	if c.retry == nil {
		c.retry = retry.NewScheduleRetry(retry.WithScheduleLogger(c.logger))
	}
	if c.observer == nil {
		c.observer = NoopObserver{}
	}
	return c
}

// response is any completed HTTP exchange that was not classified as a
// failure. Callers decide what its status means.
type response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// get issues a rate-limited GET of baseUrl/path with params and the API key.
// A non-nil *errors.ApiError means no usable response: transport error,
// 401, 400 or 429 after all retries. Any other status is returned as is.
// route labels the request for the Observer and must have low cardinality.
func (c *apiClient) get(route, path string, params url.Values) (*response, *errors.ApiError) {
	endpoint := c.endpoint(path, params)

	var res *response
	var failure *errors.ApiError
	err := c.retry.Do(maxAttempts, route, func(attempt int) (error, retry.ExitStrategy) {
		res, failure = c.send(route, endpoint)
		if failure != nil {
			c.logger.Errorf("Ticketmaster request failed: %v", failure.SourceErr)
			return failure, retry.StopNow
		}

		switch res.StatusCode {
		case http.StatusUnauthorized:
			c.logger.Errorf("Ticketmaster API returned 401 Unauthorized. Check that your API key is valid.")
			failure = statusError(errors.TYPE_AUTH, res)
			return failure, retry.StopNow
		case http.StatusBadRequest:
			c.logger.Errorf("Ticketmaster API returned 400 Bad Request: %s", excerpt(res.Body))
			failure = statusError(errors.TYPE_BAD_REQUEST, res)
			return failure, retry.StopNow
		case http.StatusTooManyRequests:
			if attempt < maxAttempts-1 {
				c.observer.ObserveRetry(route)
			}
			return &throttled{retryAfter: res.Header.Get("Retry-After")}, retry.Continue
		}
		return nil, retry.StopNow
	})

	if failure != nil {
		return nil, failure
	}
	if err != nil {
		c.logger.Errorf("Ticketmaster rate limited after %d retries, giving up.", maxAttempts-1)
		rateLimited := &errors.ApiError{
			Stage:     errors.STAGE_AFTER_REQUEST,
			Type:      errors.TYPE_RATE_LIMITED,
			SourceErr: err,
		}
		if res != nil {
			rateLimited.Body = res.Body
			rateLimited.HttpStatusCode = res.StatusCode
		}
		return nil, rateLimited
	}
	return res, nil
}

func (c *apiClient) endpoint(path string, params url.Values) string {
	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("apikey", c.apiKey)
	return c.baseUrl + "/" + path + "?" + query.Encode()
}

func (c *apiClient) send(route, endpoint string) (*response, *errors.ApiError) {
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &errors.ApiError{
			Stage:     errors.STAGE_BEFORE_REQUEST,
			Type:      errors.TYPE_REQUEST_PREP,
			SourceErr: err,
		}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	c.limiter.Limit(req)

	start := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		c.observer.ObserveRequest(route, 0, time.Since(start))
		return nil, &errors.ApiError{
			Stage:     errors.STAGE_REQUEST,
			Type:      errors.TYPE_IO,
			SourceErr: err,
		}
	}

	var body []byte
	if res.Body != nil {
		body, err = io.ReadAll(res.Body)
		defer func() { _ = res.Body.Close() }()
	}
	c.observer.ObserveRequest(route, res.StatusCode, time.Since(start))
	if err != nil {
		return nil, &errors.ApiError{
			Stage:          errors.STAGE_AFTER_REQUEST,
			Type:           errors.TYPE_IO,
			SourceErr:      err,
			Body:           body,
			HttpStatusCode: res.StatusCode,
		}
	}

	return &response{
		StatusCode: res.StatusCode,
		Header:     res.Header,
		Body:       body,
	}, nil
}

func statusError(errType string, res *response) *errors.ApiError {
	return &errors.ApiError{
		Stage:          errors.STAGE_AFTER_REQUEST,
		Type:           errType,
		Body:           res.Body,
		HttpStatusCode: res.StatusCode,
	}
}

// throttled is the retryable outcome of a 429 response.
type throttled struct {
	retryAfter string
}

var _ retry.Delayer = &throttled{}

func (t *throttled) Error() string {
	return "429 Too Many Requests"
}

// RetryAfter reads Retry-After as (possibly fractional) seconds.
// HTTP dates, negative and non-finite values are ignored.
func (t *throttled) RetryAfter() (time.Duration, bool) {
	v := strings.TrimSpace(t.retryAfter)
	if v == "" {
		return 0, false
	}
	secs, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(secs) || secs < 0 ||
		secs > float64(math.MaxInt64)/float64(time.Second) {
		return 0, false
	}
	return time.Duration(secs * float64(time.Second)), true
}

// excerpt returns at most the first 500 characters of a response body.
func excerpt(body []byte) string {
	if utf8.RuneCount(body) <= excerptLen {
		return string(body)
	}
	runes := []rune(string(body))
	return string(runes[:excerptLen])
}
