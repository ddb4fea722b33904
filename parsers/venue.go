package parsers

import (
	"github.com/labrat-0/event-ticket-scraper/types"
)

func VenueToRecord(venue types.Venue) types.VenueRecord {
	rec := types.NewVenueRecord()

	rec.VenueName = venue.Name
	rec.VenueId = venue.Id
	rec.VenueUrl = venue.Url

	rec.City = venue.City.Name
	rec.State = venue.State.Name
	rec.Country = venue.Country.Name
	rec.Address = venue.Address.Line1
	rec.PostalCode = venue.PostalCode
	rec.Latitude = venue.Location.Latitude.Float64()
	rec.Longitude = venue.Location.Longitude.Float64()
	rec.Timezone = venue.Timezone

	// Ticketmaster sends parkingDetail at the top level; some payloads
	// nest it under generalInfo instead.
	rec.ParkingDetail = venue.GeneralInfo.ParkingDetail
	if rec.ParkingDetail == "" {
		rec.ParkingDetail = venue.ParkingDetail
	}
	rec.GeneralInfo = venue.GeneralInfo.GeneralRule
	rec.ChildRule = venue.GeneralInfo.ChildRule
	rec.AccessibleSeatingDetail = venue.AccessibleSeatingDetail
	rec.UpcomingEventsCount = venue.UpcomingEvents.Total

	for _, img := range venue.Images {
		if img.Url != "" {
			rec.Images = append(rec.Images, img.Url)
		}
	}

	rec.ScrapedAt = scrapedAt()
	return rec
}
