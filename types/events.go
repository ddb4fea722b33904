package types

// Event is one element of _embedded.events, and the body of events/{id}.json.
// See: https://developer.ticketmaster.com/products-and-docs/apis/discovery-api/v2/#event-details-v2
type Event struct {
	Name            string           `json:"name"`
	Id              string           `json:"id"`
	Url             string           `json:"url"`
	Info            string           `json:"info"`
	PleaseNote      string           `json:"pleaseNote"`
	Dates           EventDates       `json:"dates"`
	PriceRanges     []PriceRange     `json:"priceRanges"`
	Classifications []Classification `json:"classifications"`
	Sales           Sales            `json:"sales"`
	Promoter        Named            `json:"promoter"`
	Seatmap         Seatmap          `json:"seatmap"`
	Images          []Image          `json:"images"`
	TicketLimit     InfoText         `json:"ticketLimit"`
	Accessibility   InfoText         `json:"accessibility"`
	Embedded        EventEmbedded    `json:"_embedded"`
}

type EventDates struct {
	Start    EventStart  `json:"start"`
	Timezone string      `json:"timezone"`
	Status   EventStatus `json:"status"`
}

type EventStart struct {
	LocalDate string `json:"localDate"`
	LocalTime string `json:"localTime"`
	DateTime  string `json:"dateTime"`
}

type EventStatus struct {
	Code string `json:"code"`
}

type PriceRange struct {
	Type     string    `json:"type"`
	Currency string    `json:"currency"`
	Min      FlexFloat `json:"min"`
	Max      FlexFloat `json:"max"`
}

type Classification struct {
	Primary  bool  `json:"primary"`
	Segment  Named `json:"segment"`
	Genre    Named `json:"genre"`
	SubGenre Named `json:"subGenre"`
}

type Sales struct {
	Public   SaleWindow `json:"public"`
	Presales []Presale  `json:"presales"`
}

type SaleWindow struct {
	StartDateTime string `json:"startDateTime"`
	EndDateTime   string `json:"endDateTime"`
}

type Presale struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Url           string `json:"url"`
	StartDateTime string `json:"startDateTime"`
	EndDateTime   string `json:"endDateTime"`
}

type Seatmap struct {
	StaticUrl string `json:"staticUrl"`
}

type InfoText struct {
	Info string `json:"info"`
}

type EventEmbedded struct {
	Venues      []Venue      `json:"venues"`
	Attractions []Attraction `json:"attractions"`
}

type Attraction struct {
	Name string `json:"name"`
	Id   string `json:"id"`
	Url  string `json:"url"`
}

// PresaleRecord is one presale window of an EventRecord.
type PresaleRecord struct {
	Name          string `json:"name"`
	StartDateTime string `json:"start_date_time"`
	EndDateTime   string `json:"end_date_time"`
	Description   string `json:"description"`
	Url           string `json:"url"`
}

// EventRecord is the flat output row for one event.
// Every field is always present; lists are never null.
type EventRecord struct {
	SchemaVersion string `json:"schema_version"`
	Type          string `json:"type"`

	EventName string `json:"event_name"`
	EventId   string `json:"event_id"`
	EventUrl  string `json:"event_url"`

	LocalDate   string `json:"local_date"`   // YYYY-MM-DD
	LocalTime   string `json:"local_time"`   // HH:MM:SS
	DatetimeUtc string `json:"datetime_utc"` // ISO 8601
	Timezone    string `json:"timezone"`
	Status      string `json:"status"` // onsale, offsale, canceled, postponed, rescheduled

	PriceMin      float64 `json:"price_min"`
	PriceMax      float64 `json:"price_max"`
	PriceCurrency string  `json:"price_currency"`

	VenueName       string  `json:"venue_name"`
	VenueId         string  `json:"venue_id"`
	VenueCity       string  `json:"venue_city"`
	VenueState      string  `json:"venue_state"`
	VenueCountry    string  `json:"venue_country"`
	VenueAddress    string  `json:"venue_address"`
	VenuePostalCode string  `json:"venue_postal_code"`
	VenueLatitude   float64 `json:"venue_latitude"`
	VenueLongitude  float64 `json:"venue_longitude"`

	Attractions []string `json:"attractions"`

	Segment  string `json:"segment"`
	Genre    string `json:"genre"`
	SubGenre string `json:"sub_genre"`

	PublicSaleStart string          `json:"public_sale_start"`
	PublicSaleEnd   string          `json:"public_sale_end"`
	Presales        []PresaleRecord `json:"presales"`

	Promoter   string   `json:"promoter"`
	SeatmapUrl string   `json:"seatmap_url"`
	Images     []string `json:"images"`

	Info              string `json:"info"`
	PleaseNote        string `json:"please_note"`
	TicketLimit       string `json:"ticket_limit"`
	AccessibilityInfo string `json:"accessibility_info"`

	Source    string `json:"source"`
	ScrapedAt string `json:"scraped_at"`
}

var _ Record = EventRecord{}

// NewEventRecord returns a record with the header fields set and
// every list initialized.
func NewEventRecord() EventRecord {
	return EventRecord{
		SchemaVersion: SchemaVersion,
		Type:          KindEvent,
		Attractions:   []string{},
		Presales:      []PresaleRecord{},
		Images:        []string{},
		Source:        SourceTag,
	}
}

func (r EventRecord) Kind() string {
	return KindEvent
}
