package api

import (
	"github.com/labrat-0/event-ticket-scraper/parsers"
	"github.com/labrat-0/event-ticket-scraper/types"
)

const pathVenues = "venues.json"

// Venues implements the Discovery API venue search.
// See: https://developer.ticketmaster.com/products-and-docs/apis/discovery-api/v2/#search-venues-v2
type Venues struct {
	api *apiClient
}

func NewVenuesApi(cfg Config) *Venues {
	return &Venues{
		api: newApiClient(cfg),
	}
}

func (v *Venues) Search(q types.SearchQuery) *Pager[types.VenueRecord] {
	v.api.logger.Infof(
		"Searching venues: keyword='%s', city='%s', state='%s', country='%s'",
		q.Keyword, q.City, q.StateCode, q.CountryCode,
	)
	return newPager(
		v.api, pathVenues, "venues", "venue(s)",
		venueSearchParams(q), q.MaxResults,
		func(raw []byte) (types.VenueRecord, error) {
			venue, err := parsers.DecodeVenue(raw)
			if err != nil {
				return types.VenueRecord{}, err
			}
			return parsers.VenueToRecord(venue), nil
		},
	)
}
