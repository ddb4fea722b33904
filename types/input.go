package types

import (
	"fmt"
	"math"
	"strings"

	"github.com/labrat-0/event-ticket-scraper/errors"
)

const (
	ModeSearch   = "search"
	ModeGetEvent = "get_event"
	ModeVenues   = "venues"

	UnitMiles = "miles"
	UnitKm    = "km"

	DefaultMaxResults          = 100
	MinMaxResults              = 1
	MaxMaxResults              = 1000
	DefaultRequestIntervalSecs = 0.5
	MinRequestIntervalSecs     = 0.2
	MaxRequestIntervalSecs     = 5.0
)

// ScraperInput is the validated configuration of one scraper run.
// It is built once and never mutated afterwards.
type ScraperInput struct {
	ApiKey string
	Mode   string

	Keyword string
	EventId string

	City        string
	StateCode   string
	CountryCode string
	PostalCode  string
	LatLong     string
	Radius      *int
	Unit        string

	ClassificationName string
	StartDateTime      string
	EndDateTime        string
	Sort               string
	Source             string
	IncludeFamily      string

	MaxResults          int
	RequestIntervalSecs float64
}

func DefaultScraperInput() ScraperInput {
	return ScraperInput{
		Mode:                ModeSearch,
		Unit:                UnitMiles,
		Sort:                "relevance,desc",
		MaxResults:          DefaultMaxResults,
		RequestIntervalSecs: DefaultRequestIntervalSecs,
	}
}

type inputField struct {
	key string
	set func(in *ScraperInput, value any) error
}

func stringField(key string, dst func(in *ScraperInput) *string) inputField {
	return inputField{key: key, set: func(in *ScraperInput, value any) error {
		s, ok := value.(string)
		if !ok {
			return errors.NewValidationError("Invalid value for '%s': expected a string, got %T.", key, value)
		}
		*dst(in) = s
		return nil
	}}
}

func intValue(key string, value any) (int, error) {
	var f float64
	switch v := value.(type) {
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case float64:
		f = v
	default:
		return 0, errors.NewValidationError("Invalid value for '%s': expected an integer, got %T.", key, value)
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, errors.NewValidationError("Invalid value for '%s': expected an integer, got %v.", key, value)
	}
	return int(f), nil
}

func floatValue(key string, value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, errors.NewValidationError("Invalid value for '%s': expected a number, got %T.", key, value)
}

// actorInputFields maps camelCase input keys to ScraperInput fields.
// The order is the order in which type errors are reported.
var actorInputFields = []inputField{
	stringField("apiKey", func(in *ScraperInput) *string { return &in.ApiKey }),
	stringField("mode", func(in *ScraperInput) *string { return &in.Mode }),
	stringField("keyword", func(in *ScraperInput) *string { return &in.Keyword }),
	stringField("eventId", func(in *ScraperInput) *string { return &in.EventId }),
	stringField("city", func(in *ScraperInput) *string { return &in.City }),
	stringField("stateCode", func(in *ScraperInput) *string { return &in.StateCode }),
	stringField("countryCode", func(in *ScraperInput) *string { return &in.CountryCode }),
	stringField("postalCode", func(in *ScraperInput) *string { return &in.PostalCode }),
	stringField("latlong", func(in *ScraperInput) *string { return &in.LatLong }),
	{key: "radius", set: func(in *ScraperInput, value any) error {
		r, err := intValue("radius", value)
		if err != nil {
			return err
		}
		in.Radius = &r
		return nil
	}},
	stringField("unit", func(in *ScraperInput) *string { return &in.Unit }),
	stringField("classificationName", func(in *ScraperInput) *string { return &in.ClassificationName }),
	stringField("startDateTime", func(in *ScraperInput) *string { return &in.StartDateTime }),
	stringField("endDateTime", func(in *ScraperInput) *string { return &in.EndDateTime }),
	stringField("sort", func(in *ScraperInput) *string { return &in.Sort }),
	stringField("source", func(in *ScraperInput) *string { return &in.Source }),
	stringField("includeFamily", func(in *ScraperInput) *string { return &in.IncludeFamily }),
	{key: "maxResults", set: func(in *ScraperInput, value any) (err error) {
		in.MaxResults, err = intValue("maxResults", value)
		return err
	}},
	{key: "requestIntervalSecs", set: func(in *ScraperInput, value any) (err error) {
		in.RequestIntervalSecs, err = floatValue("requestIntervalSecs", value)
		return err
	}},
}

// FromActorInput maps a decoded actor input object onto a ScraperInput.
// Missing and null keys keep their defaults, unknown keys are ignored.
// A value of the wrong JSON type yields a *errors.ValidationError.
func FromActorInput(raw map[string]any) (ScraperInput, error) {
	in := DefaultScraperInput()
	for _, field := range actorInputFields {
		value, ok := raw[field.key]
		if !ok || value == nil {
			continue
		}
		if err := field.set(&in, value); err != nil {
			return ScraperInput{}, err
		}
	}
	return in, nil
}

// Validate returns nil or the first *errors.ValidationError found.
func (in ScraperInput) Validate() error {
	if strings.TrimSpace(in.ApiKey) == "" {
		return errors.NewValidationError(
			"Ticketmaster API key is required. Get one for free at https://developer.ticketmaster.com/",
		)
	}

	switch in.Mode {
	case ModeSearch, ModeGetEvent, ModeVenues:
	default:
		return errors.NewValidationError("Invalid mode: '%s'. Use 'search', 'get_event', or 'venues'.", in.Mode)
	}

	if in.Mode == ModeGetEvent && strings.TrimSpace(in.EventId) == "" {
		return errors.NewValidationError("Event ID is required for 'get_event' mode.")
	}

	if in.Mode == ModeSearch && !in.hasSearchFilter() {
		return errors.NewValidationError(
			"Provide at least one search filter: keyword, city, stateCode, countryCode, postalCode, latlong, or classificationName.",
		)
	}

	if in.Unit != UnitMiles && in.Unit != UnitKm {
		return errors.NewValidationError("Invalid unit: '%s'. Use 'miles' or 'km'.", in.Unit)
	}

	if in.Radius != nil && *in.Radius < 0 {
		return errors.NewValidationError("Invalid radius: %d. Use a value of 0 or more.", *in.Radius)
	}

	if in.MaxResults < MinMaxResults || in.MaxResults > MaxMaxResults {
		return errors.NewValidationError(
			"Invalid maxResults: %d. Use a value between %d and %d.", in.MaxResults, MinMaxResults, MaxMaxResults,
		)
	}

	if math.IsNaN(in.RequestIntervalSecs) ||
		in.RequestIntervalSecs < MinRequestIntervalSecs ||
		in.RequestIntervalSecs > MaxRequestIntervalSecs {
		return errors.NewValidationError(
			"Invalid requestIntervalSecs: %s. Use a value between %.1f and %.1f.",
			fmt.Sprint(in.RequestIntervalSecs), MinRequestIntervalSecs, MaxRequestIntervalSecs,
		)
	}

	return nil
}

func (in ScraperInput) hasSearchFilter() bool {
	for _, f := range []string{
		in.Keyword, in.City, in.StateCode, in.CountryCode,
		in.PostalCode, in.LatLong, in.ClassificationName,
	} {
		if strings.TrimSpace(f) != "" {
			return true
		}
	}
	return false
}

// SearchQuery is the filter set of one search run.
// Empty fields are not sent to the API.
type SearchQuery struct {
	Keyword            string
	City               string
	StateCode          string
	CountryCode        string
	PostalCode         string
	LatLong            string
	Radius             *int
	Unit               string
	ClassificationName string
	StartDateTime      string
	EndDateTime        string
	Sort               string
	Source             string
	IncludeFamily      string

	// MaxResults caps the number of records a pager yields.
	MaxResults int
}

// SearchQuery returns the filters of in, capped at maxResults.
func (in ScraperInput) SearchQuery(maxResults int) SearchQuery {
	return SearchQuery{
		Keyword:            in.Keyword,
		City:               in.City,
		StateCode:          in.StateCode,
		CountryCode:        in.CountryCode,
		PostalCode:         in.PostalCode,
		LatLong:            in.LatLong,
		Radius:             in.Radius,
		Unit:               in.Unit,
		ClassificationName: in.ClassificationName,
		StartDateTime:      in.StartDateTime,
		EndDateTime:        in.EndDateTime,
		Sort:               in.Sort,
		Source:             in.Source,
		IncludeFamily:      in.IncludeFamily,
		MaxResults:         maxResults,
	}
}
