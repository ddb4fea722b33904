package api

import (
	"encoding/json"
	"iter"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labrat-0/event-ticket-scraper/errors"
	"github.com/labrat-0/event-ticket-scraper/parsers"
	"github.com/labrat-0/event-ticket-scraper/types"
)

const (
	// pageSizeMax is the largest page Ticketmaster serves.
	pageSizeMax = 200
	// deepPagingLimit: size * page must stay below it.
	deepPagingLimit = 1000
)

// StopReason says why a record sequence ended.
type StopReason string

const (
	ReasonNone StopReason = ""

	// ReasonCapReached: the requested number of results was yielded.
	ReasonCapReached StopReason = "exhausted-results"
	// ReasonProviderExhausted: no more pages or no results at all.
	ReasonProviderExhausted StopReason = "exhausted-provider"
	ReasonDeepPagingLimit   StopReason = "deep-paging-limit"
	ReasonRequestFailed     StopReason = "request-failed"
	ReasonBadStatus         StopReason = "bad-status"
	ReasonDecodeFailed      StopReason = "decode-failed"
	// ReasonConsumerStopped: the caller stopped ranging early.
	ReasonConsumerStopped StopReason = "end-of-stream"

	// Single-event lookups end with one of these when the request succeeded.
	ReasonFound    StopReason = "found"
	ReasonNotFound StopReason = "not-found"
)

// ReasonFor maps the error that ended a sequence to its StopReason.
func ReasonFor(err error) StopReason {
	switch {
	case err == nil:
		return ReasonCapReached
	case errors.IsType(err, errors.TYPE_HTTP_STATUS):
		return ReasonBadStatus
	case errors.IsType(err, errors.TYPE_JSON_PARSE):
		return ReasonDecodeFailed
	default:
		return ReasonRequestFailed
	}
}

// envelope is the body of a collection endpoint.
type envelope struct {
	Embedded map[string][]json.RawMessage `json:"_embedded"`
	Page     types.PageInfo               `json:"page"`
}

// Pager walks the pages of one search lazily.
// It is single-use and not safe for concurrent use.
//
// Usage:
//
//	pager := client.Events().Search(query)
//	for rec := range pager.All() {
//		...
//	}
//	if pager.Err() != nil {
//		log.Printf("search ended early: %s", pager.Reason())
//	}
type Pager[T any] struct {
	api        *apiClient
	route      string
	params     url.Values
	key        string
	noun       string
	maxResults int
	normalize  func(raw []byte) (T, error)

	started bool
	count   int
	reason  StopReason
	err     error
}

func newPager[T any](
	api *apiClient,
	route string,
	key string,
	noun string,
	params url.Values,
	maxResults int,
	normalize func(raw []byte) (T, error),
) *Pager[T] {
	return &Pager[T]{
		api:        api,
		route:      route,
		params:     params,
		key:        key,
		noun:       noun,
		maxResults: maxResults,
		normalize:  normalize,
	}
}

// All returns the lazy record sequence. Only the first iteration
// fetches anything; later ones yield nothing.
func (p *Pager[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if p.started {
			return
		}
		p.started = true

		p.reason, p.err = p.run(yield)
		p.api.logger.Infof(
			"Ticketmaster %s search complete: %d %s yielded (%s)",
			p.key, p.count, p.noun, p.reason,
		)
	}
}

// Reason is ReasonNone until the sequence has ended.
func (p *Pager[T]) Reason() StopReason {
	return p.reason
}

// Err is the *errors.ApiError that ended the sequence, if any.
func (p *Pager[T]) Err() error {
	return p.err
}

// Count is the number of records yielded so far.
func (p *Pager[T]) Count() int {
	return p.count
}

func (p *Pager[T]) run(yield func(T) bool) (StopReason, error) {
	page := 0
	for p.count < p.maxResults {
		size := min(pageSizeMax, p.maxResults-p.count)
		if size*page >= deepPagingLimit {
			p.api.logger.Infof(
				"Reached Ticketmaster deep paging limit (%d). Try narrowing your search with filters.",
				deepPagingLimit,
			)
			return ReasonDeepPagingLimit, nil
		}

		params := url.Values{}
		for k, v := range p.params {
			params[k] = v
		}
		params.Set("size", strconv.Itoa(size))
		params.Set("page", strconv.Itoa(page))

		res, failure := p.api.get(p.route, p.route, params)
		if failure != nil {
			return ReasonRequestFailed, failure
		}
		if res.StatusCode != http.StatusOK {
			p.api.logger.Errorf(
				"Ticketmaster %s search returned %d: %s",
				p.key, res.StatusCode, excerpt(res.Body),
			)
			return ReasonBadStatus, statusError(errors.TYPE_HTTP_STATUS, res)
		}

		var env envelope
		if err := parsers.UnmarshalLenient(res.Body, &env); err != nil {
			p.api.logger.Errorf("Ticketmaster %s search returned malformed JSON: %v", p.key, err)
			return ReasonDecodeFailed, &errors.ApiError{
				Stage:          errors.STAGE_AFTER_REQUEST,
				Type:           errors.TYPE_JSON_PARSE,
				SourceErr:      err,
				Body:           res.Body,
				HttpStatusCode: res.StatusCode,
			}
		}

		items, ok := env.Embedded[p.key]
		if !ok {
			if page == 0 {
				p.api.logger.Infof("No %s found matching your search criteria.", p.noun)
			}
			return ReasonProviderExhausted, nil
		}

		p.api.logger.Infof(
			"Ticketmaster %s search page %d: got %d %s (total available: %d)",
			p.key, page, len(items), p.noun, env.Page.TotalElements,
		)

		for _, raw := range items {
			if p.count >= p.maxResults {
				return ReasonCapReached, nil
			}
			rec, err := p.normalize(raw)
			if err != nil {
				return ReasonDecodeFailed, &errors.ApiError{
					Stage:          errors.STAGE_AFTER_REQUEST,
					Type:           errors.TYPE_JSON_PARSE,
					SourceErr:      err,
					Body:           raw,
					HttpStatusCode: res.StatusCode,
				}
			}
			p.count++
			if !yield(rec) {
				return ReasonConsumerStopped, nil
			}
		}

		if p.count >= p.maxResults {
			return ReasonCapReached, nil
		}
		page++
		if page >= env.Page.TotalPages {
			return ReasonProviderExhausted, nil
		}
	}
	return ReasonCapReached, nil
}
