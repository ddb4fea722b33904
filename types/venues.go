package types

// Venue is one element of _embedded.venues, also embedded in events.
// See: https://developer.ticketmaster.com/products-and-docs/apis/discovery-api/v2/#venue-details-v2
type Venue struct {
	Name                    string           `json:"name"`
	Id                      string           `json:"id"`
	Url                     string           `json:"url"`
	PostalCode              string           `json:"postalCode"`
	Timezone                string           `json:"timezone"`
	City                    Named            `json:"city"`
	State                   Named            `json:"state"`
	Country                 Named            `json:"country"`
	Address                 Address          `json:"address"`
	Location                Location         `json:"location"`
	ParkingDetail           string           `json:"parkingDetail"`
	AccessibleSeatingDetail string           `json:"accessibleSeatingDetail"`
	GeneralInfo             VenueGeneralInfo `json:"generalInfo"`
	UpcomingEvents          UpcomingEvents   `json:"upcomingEvents"`
	Images                  []Image          `json:"images"`
}

type VenueGeneralInfo struct {
	GeneralRule   string `json:"generalRule"`
	ChildRule     string `json:"childRule"`
	ParkingDetail string `json:"parkingDetail"`
}

type UpcomingEvents struct {
	Total int `json:"_total"`
}

// VenueRecord is the flat output row for one venue.
type VenueRecord struct {
	SchemaVersion string `json:"schema_version"`
	Type          string `json:"type"`

	VenueName string `json:"venue_name"`
	VenueId   string `json:"venue_id"`
	VenueUrl  string `json:"venue_url"`

	City       string  `json:"city"`
	State      string  `json:"state"`
	Country    string  `json:"country"`
	Address    string  `json:"address"`
	PostalCode string  `json:"postal_code"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Timezone   string  `json:"timezone"`

	ParkingDetail           string `json:"parking_detail"`
	GeneralInfo             string `json:"general_info"`
	ChildRule               string `json:"child_rule"`
	AccessibleSeatingDetail string `json:"accessible_seating_detail"`
	UpcomingEventsCount     int    `json:"upcoming_events_count"`

	Images []string `json:"images"`

	Source    string `json:"source"`
	ScrapedAt string `json:"scraped_at"`
}

var _ Record = VenueRecord{}

func NewVenueRecord() VenueRecord {
	return VenueRecord{
		SchemaVersion: SchemaVersion,
		Type:          KindVenue,
		Images:        []string{},
		Source:        SourceTag,
	}
}

func (r VenueRecord) Kind() string {
	return KindVenue
}
