package sink

import (
	"fmt"
	"io"
	"sync"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-runewidth"

	"github.com/labrat-0/event-ticket-scraper/types"
)

const cellWidth = 40

// Table renders all records as one table when closed.
// It is meant for interactive use, not for large result sets.
type Table struct {
	mu   sync.Mutex
	t    table.Writer
	rows int
}

var _ Sink = &Table{}

func NewTable(w io.Writer) *Table {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Footer = text.FormatDefault
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Type", "Name", "ID", "When", "Where", "Details"})
	return &Table{t: t}
}

func (s *Table) Push(records []types.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range records {
		s.rows++
		row := table.Row{s.rows, rec.Kind()}
		switch r := rec.(type) {
		case types.EventRecord:
			row = append(row,
				truncate(r.EventName),
				r.EventId,
				joinNonEmpty(" ", r.LocalDate, r.LocalTime),
				truncate(joinNonEmpty(", ", r.VenueName, r.VenueCity, r.VenueState)),
				eventDetails(r),
			)
		case types.VenueRecord:
			row = append(row,
				truncate(r.VenueName),
				r.VenueId,
				r.Timezone,
				truncate(joinNonEmpty(", ", r.City, r.State, r.Country)),
				fmt.Sprintf("%d upcoming", r.UpcomingEventsCount),
			)
		default:
			return fmt.Errorf("table sink: unsupported record kind %q", rec.Kind())
		}
		s.t.AppendRow(row)
	}
	return nil
}

func (s *Table) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d record(s)", s.rows)})
	s.t.Render()
	return nil
}

func eventDetails(r types.EventRecord) string {
	details := r.Status
	if r.PriceCurrency != "" {
		details = joinNonEmpty(" ", details,
			fmt.Sprintf("%.2f-%.2f %s", r.PriceMin, r.PriceMax, r.PriceCurrency))
	}
	return truncate(details)
}

// truncate caps s at cellWidth display columns; wide runes count double.
func truncate(s string) string {
	return runewidth.Truncate(s, cellWidth, "…")
}

func joinNonEmpty(sep string, parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += sep
		}
		out += p
	}
	return out
}
