package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/labrat-0/event-ticket-scraper/types"
)

// filterFlags are the actor input keys settable from the command line.
// Only flags the user set end up in the input, so defaults stay with
// types.FromActorInput.
type filterFlags struct {
	apiKey              string
	keyword             string
	city                string
	stateCode           string
	countryCode         string
	postalCode          string
	latlong             string
	radius              int
	unit                string
	classificationName  string
	startDateTime       string
	endDateTime         string
	sort                string
	source              string
	includeFamily       string
	maxResults          int
	requestIntervalSecs float64
}

func (f *filterFlags) register(fs *pflag.FlagSet, search bool) {
	fs.StringVar(&f.apiKey, "api-key", "", "Ticketmaster API key, defaults to $TICKETMASTER_API_KEY.")
	fs.StringVarP(&f.keyword, "keyword", "k", "", "Search keyword.")
	fs.StringVar(&f.city, "city", "", "City filter.")
	fs.StringVar(&f.stateCode, "state-code", "", "State code filter, e.g. NY.")
	fs.StringVar(&f.countryCode, "country-code", "", "ISO country code filter, e.g. US.")
	fs.StringVar(&f.postalCode, "postal-code", "", "Postal code filter.")
	fs.StringVar(&f.latlong, "latlong", "", "Latitude,longitude center of a radius search.")
	fs.IntVar(&f.radius, "radius", 0, "Search radius around latlong.")
	fs.StringVar(&f.unit, "unit", types.UnitMiles, "Radius unit, miles or km.")
	fs.StringVar(&f.sort, "sort", "relevance,desc", "Sort order.")
	fs.StringVar(&f.source, "source", "", "Source filter, e.g. ticketmaster.")
	fs.IntVarP(&f.maxResults, "max-results", "n", types.DefaultMaxResults, "Maximum number of records.")
	fs.Float64Var(&f.requestIntervalSecs, "interval", types.DefaultRequestIntervalSecs, "Seconds between requests.")
	if search {
		fs.StringVar(&f.classificationName, "classification", "", "Classification, e.g. music or sports.")
		fs.StringVar(&f.startDateTime, "start", "", "Earliest start, ISO 8601 e.g. 2025-01-01T00:00:00Z.")
		fs.StringVar(&f.endDateTime, "end", "", "Latest start, ISO 8601.")
		fs.StringVar(&f.includeFamily, "include-family", "", "Family friendly filter: yes, no or only.")
	}
}

// actorInput maps the changed flags of fs onto actor input keys.
func (f *filterFlags) actorInput(fs *pflag.FlagSet, mode string) map[string]any {
	raw := map[string]any{"mode": mode}
	set := func(flag, key string, value any) {
		if fl := fs.Lookup(flag); fl != nil && fl.Changed {
			raw[key] = value
		}
	}
	set("api-key", "apiKey", f.apiKey)
	set("keyword", "keyword", f.keyword)
	set("city", "city", f.city)
	set("state-code", "stateCode", f.stateCode)
	set("country-code", "countryCode", f.countryCode)
	set("postal-code", "postalCode", f.postalCode)
	set("latlong", "latlong", f.latlong)
	set("radius", "radius", f.radius)
	set("unit", "unit", f.unit)
	set("classification", "classificationName", f.classificationName)
	set("start", "startDateTime", f.startDateTime)
	set("end", "endDateTime", f.endDateTime)
	set("sort", "sort", f.sort)
	set("source", "source", f.source)
	set("include-family", "includeFamily", f.includeFamily)
	set("max-results", "maxResults", f.maxResults)
	set("interval", "requestIntervalSecs", f.requestIntervalSecs)
	return raw
}

var searchFlags filterFlags

func init() {
	searchFlags.register(searchCmd.Flags(), true)
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search [--keyword <kw>] [filters...]",
	Short: "Searches events.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw := searchFlags.actorInput(cmd.Flags(), types.ModeSearch)
		return execute(cmd.Context(), global, raw, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}
