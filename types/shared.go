package types

import (
	"math"
	"strconv"
	"strings"
)

const (
	SchemaVersion = "1.0"
	SourceTag     = "ticketmaster"

	KindEvent = "event"
	KindVenue = "venue"
)

// Record is one flat output row. EventRecord and VenueRecord implement it
// so a sink can take a mixed, ordered stream.
type Record interface {
	Kind() string
}

// PageInfo is the "page" object of every collection response.
type PageInfo struct {
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
}

type Named struct {
	Name string `json:"name"`
}

type Image struct {
	Ratio    string `json:"ratio"`
	Url      string `json:"url"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Fallback bool   `json:"fallback"`
}

type Address struct {
	Line1 string `json:"line1"`
	Line2 string `json:"line2"`
}

type Location struct {
	Longitude FlexFloat `json:"longitude"`
	Latitude  FlexFloat `json:"latitude"`
}

// FlexFloat decodes a JSON number, a numeric string, null or anything
// else into a float64 and never fails. Values that do not parse, NaN
// and ±Inf all decode to 0.
// Ticketmaster sends coordinates as strings ("34.0430").
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	*f = FlexFloat(ParseFloat(string(data)))
	return nil
}

func (f FlexFloat) Float64() float64 {
	return float64(f)
}

// ParseFloat converts a raw JSON value to float64, returning 0 on
// null, missing or unparsable input.
func ParseFloat(raw string) float64 {
	s := strings.TrimSpace(raw)
	switch s {
	case "", "null", "false":
		return 0
	case "true":
		return 1
	}
	if s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return 0
		}
		s = strings.TrimSpace(unquoted)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
