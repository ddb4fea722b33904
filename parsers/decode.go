package parsers

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/labrat-0/event-ticket-scraper/types"
)

// scrapedAtLayout renders UTC as "+00:00" with microseconds.
const scrapedAtLayout = "2006-01-02T15:04:05.000000-07:00"

// Now is the clock used to stamp scraped_at. Tests replace it.
var Now = time.Now

func scrapedAt() string {
	return Now().UTC().Format(scrapedAtLayout)
}

// DecodeEvent decodes one provider event object.
// Fields with an unexpected JSON type are left at their zero value;
// only malformed JSON is an error.
func DecodeEvent(data []byte) (types.Event, error) {
	var event types.Event
	if err := UnmarshalLenient(data, &event); err != nil {
		return types.Event{}, err
	}
	return event, nil
}

// DecodeVenue is DecodeEvent for venue objects.
func DecodeVenue(data []byte) (types.Venue, error) {
	var venue types.Venue
	if err := UnmarshalLenient(data, &venue); err != nil {
		return types.Venue{}, err
	}
	return venue, nil
}

// UnmarshalLenient relies on encoding/json continuing past type
// mismatches: the offending field is skipped and the rest is filled in.
func UnmarshalLenient(data []byte, v any) error {
	err := json.Unmarshal(data, v)
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return nil
	}
	return err
}
