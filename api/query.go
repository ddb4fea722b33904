package api

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/labrat-0/event-ticket-scraper/types"
)

func eventSearchParams(q types.SearchQuery) url.Values {
	params := locationParams(q)
	setTrimmed(params, "classificationName", q.ClassificationName)
	setTrimmed(params, "startDateTime", q.StartDateTime)
	setTrimmed(params, "endDateTime", q.EndDateTime)
	setTrimmed(params, "sort", q.Sort)
	setTrimmed(params, "source", q.Source)
	setTrimmed(params, "includeFamily", q.IncludeFamily)
	return params
}

func venueSearchParams(q types.SearchQuery) url.Values {
	return locationParams(q)
}

func locationParams(q types.SearchQuery) url.Values {
	params := url.Values{}
	setTrimmed(params, "keyword", q.Keyword)
	setTrimmed(params, "city", q.City)
	setTrimmed(params, "stateCode", q.StateCode)
	setTrimmed(params, "countryCode", q.CountryCode)
	setTrimmed(params, "postalCode", q.PostalCode)
	setTrimmed(params, "latlong", q.LatLong)
	if q.Radius != nil {
		params.Set("radius", strconv.Itoa(*q.Radius))
		params.Set("unit", q.Unit)
	}
	return params
}

func setTrimmed(params url.Values, key, value string) {
	if v := strings.TrimSpace(value); v != "" {
		params.Set(key, v)
	}
}
