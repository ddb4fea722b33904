package parsers

import (
	"sort"

	"github.com/labrat-0/event-ticket-scraper/types"
)

// undefined is the provider's placeholder for a missing classification.
const undefined = "Undefined"

// EventToRecord flattens a provider event into an EventRecord.
// It never fails: anything missing is left empty.
func EventToRecord(event types.Event) types.EventRecord {
	rec := types.NewEventRecord()

	rec.EventName = event.Name
	rec.EventId = event.Id
	rec.EventUrl = event.Url

	rec.LocalDate = event.Dates.Start.LocalDate
	rec.LocalTime = event.Dates.Start.LocalTime
	rec.DatetimeUtc = event.Dates.Start.DateTime
	rec.Timezone = event.Dates.Timezone
	rec.Status = event.Dates.Status.Code

	if len(event.PriceRanges) > 0 {
		pr := event.PriceRanges[0]
		rec.PriceMin = pr.Min.Float64()
		rec.PriceMax = pr.Max.Float64()
		rec.PriceCurrency = pr.Currency
	}

	if len(event.Embedded.Venues) > 0 {
		venue := event.Embedded.Venues[0]
		rec.VenueName = venue.Name
		rec.VenueId = venue.Id
		rec.VenueCity = venue.City.Name
		rec.VenueState = venue.State.Name
		rec.VenueCountry = venue.Country.Name
		rec.VenueAddress = venue.Address.Line1
		rec.VenuePostalCode = venue.PostalCode
		rec.VenueLatitude = venue.Location.Latitude.Float64()
		rec.VenueLongitude = venue.Location.Longitude.Float64()
	}

	for _, a := range event.Embedded.Attractions {
		if a.Name != "" {
			rec.Attractions = append(rec.Attractions, a.Name)
		}
	}

	if len(event.Classifications) > 0 {
		c := event.Classifications[0]
		rec.Segment = definedOrEmpty(c.Segment.Name)
		rec.Genre = definedOrEmpty(c.Genre.Name)
		rec.SubGenre = definedOrEmpty(c.SubGenre.Name)
	}

	rec.PublicSaleStart = event.Sales.Public.StartDateTime
	rec.PublicSaleEnd = event.Sales.Public.EndDateTime
	for _, ps := range event.Sales.Presales {
		rec.Presales = append(rec.Presales, types.PresaleRecord{
			Name:          ps.Name,
			StartDateTime: ps.StartDateTime,
			EndDateTime:   ps.EndDateTime,
			Description:   ps.Description,
			Url:           ps.Url,
		})
	}

	rec.Promoter = event.Promoter.Name
	rec.SeatmapUrl = event.Seatmap.StaticUrl
	rec.Images = bestImagePerRatio(event.Images)

	rec.Info = event.Info
	rec.PleaseNote = event.PleaseNote
	rec.TicketLimit = event.TicketLimit.Info
	rec.AccessibilityInfo = event.Accessibility.Info

	rec.ScrapedAt = scrapedAt()
	return rec
}

// NotFoundEventRecord is emitted when an event lookup returns 404.
func NotFoundEventRecord(eventId string) types.EventRecord {
	rec := types.NewEventRecord()
	rec.EventId = eventId
	rec.EventName = "Event not found: " + eventId
	rec.ScrapedAt = scrapedAt()
	return rec
}

func definedOrEmpty(name string) string {
	if name == undefined {
		return ""
	}
	return name
}

// bestImagePerRatio keeps the widest image of every ratio, widest first.
// Ties keep provider order. Images without a URL never claim a ratio.
func bestImagePerRatio(images []types.Image) []string {
	sorted := make([]types.Image, len(images))
	copy(sorted, images)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Width > sorted[j].Width
	})

	urls := make([]string, 0, len(sorted))
	seen := make(map[string]struct{}, len(sorted))
	for _, img := range sorted {
		if img.Url == "" {
			continue
		}
		if _, ok := seen[img.Ratio]; ok {
			continue
		}
		seen[img.Ratio] = struct{}{}
		urls = append(urls, img.Url)
	}
	return urls
}
