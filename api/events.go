package api

import (
	"iter"
	"net/http"
	"net/url"
	"strings"

	"github.com/labrat-0/event-ticket-scraper/errors"
	"github.com/labrat-0/event-ticket-scraper/parsers"
	"github.com/labrat-0/event-ticket-scraper/types"
)

const (
	pathEvents    = "events.json"
	pathEventById = "events/{id}.json"
)

// Events implements the Discovery API event endpoints.
// See: https://developer.ticketmaster.com/products-and-docs/apis/discovery-api/v2/#search-events-v2
type Events struct {
	api *apiClient
}

func NewEventsApi(cfg Config) *Events {
	return &Events{
		api: newApiClient(cfg),
	}
}

// Search pages through events.json until q.MaxResults events were yielded
// or the provider runs out.
func (e *Events) Search(q types.SearchQuery) *Pager[types.EventRecord] {
	e.api.logger.Infof(
		"Searching events: keyword='%s', city='%s', state='%s', country='%s', classification='%s'",
		q.Keyword, q.City, q.StateCode, q.CountryCode, q.ClassificationName,
	)
	return newPager(
		e.api, pathEvents, "events", "event(s)",
		eventSearchParams(q), q.MaxResults,
		func(raw []byte) (types.EventRecord, error) {
			event, err := parsers.DecodeEvent(raw)
			if err != nil {
				return types.EventRecord{}, err
			}
			return parsers.EventToRecord(event), nil
		},
	)
}

// GetById returns the event, or false when Ticketmaster answers 404.
func (e *Events) GetById(eventId string) (*types.EventRecord, bool, error) {
	eventId = strings.TrimSpace(eventId)
	e.api.logger.Infof("Looking up event: %s", eventId)

	res, failure := e.api.get(
		pathEventById,
		strings.Replace(pathEventById, "{id}", url.PathEscape(eventId), 1),
		nil,
	)
	if failure != nil {
		return nil, false, failure
	}

	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		e.api.logger.Warnf("Event not found: %s", eventId)
		return nil, false, nil
	default:
		e.api.logger.Errorf("Event lookup returned %d: %s", res.StatusCode, excerpt(res.Body))
		return nil, false, statusError(errors.TYPE_HTTP_STATUS, res)
	}

	event, err := parsers.DecodeEvent(res.Body)
	if err != nil {
		e.api.logger.Errorf("Event lookup returned malformed JSON: %v", err)
		return nil, false, &errors.ApiError{
			Stage:          errors.STAGE_AFTER_REQUEST,
			Type:           errors.TYPE_JSON_PARSE,
			SourceErr:      err,
			Body:           res.Body,
			HttpStatusCode: res.StatusCode,
		}
	}

	rec := parsers.EventToRecord(event)
	return &rec, true, nil
}

// Lookup yields at most one record for eventId: the event itself, or a
// placeholder when it does not exist. Failures yield nothing.
func (e *Events) Lookup(eventId string) iter.Seq[types.EventRecord] {
	return func(yield func(types.EventRecord) bool) {
		rec, found, err := e.GetById(eventId)
		switch {
		case err != nil:
			return
		case !found:
			yield(parsers.NotFoundEventRecord(strings.TrimSpace(eventId)))
		default:
			yield(*rec)
		}
	}
}
