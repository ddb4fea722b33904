package api

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labrat-0/event-ticket-scraper/errors"
	"github.com/labrat-0/event-ticket-scraper/types"
)

func testQuery() types.SearchQuery {
	in := types.DefaultScraperInput()
	in.Keyword = "rock"
	return in.SearchQuery(0)
}

func queryWithCap(maxResults int) types.SearchQuery {
	q := testQuery()
	q.MaxResults = maxResults
	return q
}

// collectionPage renders n items named "<key>-<offset+i>" under _embedded.<key>.
func collectionPage(key string, n, offset, totalPages int) string {
	items := make([]string, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, fmt.Sprintf(`{"id":"%s-%d","name":"Item %d"}`, key, offset+i, offset+i))
	}
	return fmt.Sprintf(
		`{"_embedded":{"%s":[%s]},"page":{"size":%d,"totalElements":%d,"totalPages":%d,"number":0}}`,
		key, strings.Join(items, ","), n, n*totalPages, totalPages,
	)
}

func collect[T any](p *Pager[T]) []T {
	var out []T
	for rec := range p.All() {
		out = append(out, rec)
	}
	return out
}

func Test_Pager_noEmbedded(t *testing.T) {
	tr := staticTransport(http.StatusOK, `{"page":{"size":0,"totalElements":0,"totalPages":0,"number":0}}`, nil)
	events := NewEventsApi(testConfig(tr, nil))

	pager := events.Search(queryWithCap(100))
	recs := collect(pager)

	assert.Empty(t, recs)
	assert.Len(t, tr.reqs, 1)
	assert.Equal(t, ReasonProviderExhausted, pager.Reason())
	assert.NoError(t, pager.Err())
	assert.Equal(t, 0, pager.Count())
}

func Test_Pager_capBelowPageSize(t *testing.T) {
	tr := staticTransport(http.StatusOK, collectionPage("events", 150, 0, 7), nil)
	events := NewEventsApi(testConfig(tr, nil))

	pager := events.Search(queryWithCap(150))
	recs := collect(pager)

	assert.Len(t, recs, 150)
	require.Len(t, tr.reqs, 1)
	assert.Equal(t, "150", tr.query(0, "size"))
	assert.Equal(t, "0", tr.query(0, "page"))
	assert.Equal(t, ReasonCapReached, pager.Reason())
	assert.Equal(t, 150, pager.Count())
}

func Test_Pager_capOnLastItemOfLastPage(t *testing.T) {
	tr := staticTransport(http.StatusOK, collectionPage("events", 20, 0, 1), nil)
	events := NewEventsApi(testConfig(tr, nil))

	pager := events.Search(queryWithCap(20))
	recs := collect(pager)

	assert.Len(t, recs, 20)
	assert.Len(t, tr.reqs, 1)
	assert.Equal(t, ReasonCapReached, pager.Reason())
}

func Test_Pager_stopsMidPageAtCap(t *testing.T) {
	// The provider may ignore size and return more than asked for.
	tr := staticTransport(http.StatusOK, collectionPage("events", 50, 0, 3), nil)
	events := NewEventsApi(testConfig(tr, nil))

	pager := events.Search(queryWithCap(20))
	recs := collect(pager)

	assert.Len(t, recs, 20)
	assert.Len(t, tr.reqs, 1)
	assert.Equal(t, ReasonCapReached, pager.Reason())
	assert.Equal(t, "events-19", recs[19].EventId)
}

func Test_Pager_pagesUntilTotalPages(t *testing.T) {
	tr := &testTransport{handler: func(n int, _ *http.Request) (int, string, http.Header, error) {
		return http.StatusOK, collectionPage("events", 10, n*10, 2), nil, nil
	}}
	events := NewEventsApi(testConfig(tr, nil))

	pager := events.Search(queryWithCap(100))
	recs := collect(pager)

	require.Len(t, recs, 20)
	assert.Len(t, tr.reqs, 2)
	assert.Equal(t, "0", tr.query(0, "page"))
	assert.Equal(t, "1", tr.query(1, "page"))
	assert.Equal(t, "100", tr.query(0, "size"))
	assert.Equal(t, "90", tr.query(1, "size"))
	assert.Equal(t, ReasonProviderExhausted, pager.Reason())
	for i, rec := range recs {
		assert.Equal(t, fmt.Sprintf("events-%d", i), rec.EventId)
	}
}

func Test_Pager_emptyPageContinues(t *testing.T) {
	tr := &testTransport{handler: func(n int, _ *http.Request) (int, string, http.Header, error) {
		if n == 0 {
			return http.StatusOK, `{"_embedded":{"events":[]},"page":{"totalPages":2}}`, nil, nil
		}
		return http.StatusOK, collectionPage("events", 3, 0, 2), nil, nil
	}}
	events := NewEventsApi(testConfig(tr, nil))

	pager := events.Search(queryWithCap(10))
	assert.Len(t, collect(pager), 3)
	assert.Len(t, tr.reqs, 2)
	assert.Equal(t, ReasonProviderExhausted, pager.Reason())
}

func Test_Pager_deepPagingLimit(t *testing.T) {
	tr := &testTransport{handler: func(n int, _ *http.Request) (int, string, http.Header, error) {
		return http.StatusOK, collectionPage("events", 100, n*100, 100), nil, nil
	}}
	events := NewEventsApi(testConfig(tr, nil))

	pager := events.Search(queryWithCap(1000))
	recs := collect(pager)

	// size stays 200; page 5 would make size*page reach 1000.
	assert.Len(t, tr.reqs, 5)
	assert.Len(t, recs, 500)
	for i := range tr.reqs {
		assert.Equal(t, "200", tr.query(i, "size"))
	}
	assert.Equal(t, ReasonDeepPagingLimit, pager.Reason())
	assert.NoError(t, pager.Err())
}

func Test_Pager_deepPagingLimitNeverRequested(t *testing.T) {
	tr := &testTransport{handler: func(n int, _ *http.Request) (int, string, http.Header, error) {
		return http.StatusOK, collectionPage("events", 1, n, 10000), nil, nil
	}}
	events := NewEventsApi(testConfig(tr, nil))

	pager := events.Search(queryWithCap(1000))
	_ = collect(pager)

	for i := range tr.reqs {
		var size, page int
		_, _ = fmt.Sscan(tr.query(i, "size"), &size)
		_, _ = fmt.Sscan(tr.query(i, "page"), &page)
		assert.Less(t, size*page, deepPagingLimit)
	}
	assert.Equal(t, ReasonDeepPagingLimit, pager.Reason())
}

func Test_Pager_failures(t *testing.T) {
	testCases := []struct {
		name         string
		secondCode   int
		secondBody   string
		expectReason StopReason
		expectType   string
	}{
		{
			name:         "bad status",
			secondCode:   http.StatusInternalServerError,
			secondBody:   `{"fault":"boom"}`,
			expectReason: ReasonBadStatus,
			expectType:   errors.TYPE_HTTP_STATUS,
		},
		{
			name:         "unauthorized",
			secondCode:   http.StatusUnauthorized,
			expectReason: ReasonRequestFailed,
			expectType:   errors.TYPE_AUTH,
		},
		{
			name:         "bad request",
			secondCode:   http.StatusBadRequest,
			expectReason: ReasonRequestFailed,
			expectType:   errors.TYPE_BAD_REQUEST,
		},
		{
			name:         "malformed json",
			secondCode:   http.StatusOK,
			secondBody:   `{"_embedded":`,
			expectReason: ReasonDecodeFailed,
			expectType:   errors.TYPE_JSON_PARSE,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			tr := &testTransport{handler: func(n int, _ *http.Request) (int, string, http.Header, error) {
				if n == 0 {
					return http.StatusOK, collectionPage("events", 5, 0, 3), nil, nil
				}
				return tt.secondCode, tt.secondBody, nil, nil
			}}
			events := NewEventsApi(testConfig(tr, nil))

			pager := events.Search(queryWithCap(100))
			recs := collect(pager)

			assert.Len(t, recs, 5, "records before the failure are kept")
			assert.Len(t, tr.reqs, 2)
			assert.Equal(t, tt.expectReason, pager.Reason())
			require.Error(t, pager.Err())
			assert.True(t, errors.IsType(pager.Err(), tt.expectType))
			assert.Equal(t, tt.expectReason, ReasonFor(pager.Err()))
		})
	}
}

func Test_Pager_transportFailure(t *testing.T) {
	tr := &testTransport{handler: func(_ int, _ *http.Request) (int, string, http.Header, error) {
		return 0, "", nil, fmt.Errorf("dial tcp: no route to host")
	}}
	events := NewEventsApi(testConfig(tr, nil))

	pager := events.Search(queryWithCap(10))
	assert.Empty(t, collect(pager))
	assert.Equal(t, ReasonRequestFailed, pager.Reason())
	assert.True(t, errors.IsType(pager.Err(), errors.TYPE_IO))
}

func Test_Pager_consumerStops(t *testing.T) {
	tr := staticTransport(http.StatusOK, collectionPage("events", 10, 0, 5), nil)
	events := NewEventsApi(testConfig(tr, nil))

	pager := events.Search(queryWithCap(100))
	for range pager.All() {
		break
	}

	assert.Len(t, tr.reqs, 1)
	assert.Equal(t, 1, pager.Count())
	assert.Equal(t, ReasonConsumerStopped, pager.Reason())
}

func Test_Pager_notRestartable(t *testing.T) {
	tr := staticTransport(http.StatusOK, collectionPage("events", 3, 0, 1), nil)
	events := NewEventsApi(testConfig(tr, nil))

	pager := events.Search(queryWithCap(10))
	assert.Len(t, collect(pager), 3)
	assert.Empty(t, collect(pager))
	assert.Len(t, tr.reqs, 1)
	assert.Equal(t, 3, pager.Count())
}

func Test_Pager_lazy(t *testing.T) {
	tr := staticTransport(http.StatusOK, collectionPage("events", 3, 0, 1), nil)
	events := NewEventsApi(testConfig(tr, nil))

	pager := events.Search(queryWithCap(10))
	assert.Empty(t, tr.reqs)
	assert.Equal(t, ReasonNone, pager.Reason())
}

func Test_Venues_Search(t *testing.T) {
	radius := 15
	q := types.SearchQuery{
		Keyword:    "  arena ",
		City:       "   ",
		Radius:     &radius,
		Unit:       "km",
		Sort:       "name,asc",
		MaxResults: 5,
	}
	tr := staticTransport(http.StatusOK, collectionPage("venues", 2, 0, 1), nil)
	venues := NewVenuesApi(testConfig(tr, nil))

	pager := venues.Search(q)
	recs := collect(pager)

	require.Len(t, recs, 2)
	assert.Equal(t, "venues-0", recs[0].VenueId)
	assert.Equal(t, "venue", recs[0].Type)
	assert.Equal(t, ReasonProviderExhausted, pager.Reason())

	require.Len(t, tr.reqs, 1)
	assert.Equal(t, "/discovery/v2/venues.json", tr.reqs[0].URL.Path)
	query := tr.reqs[0].URL.Query()
	assert.Equal(t, "arena", query.Get("keyword"))
	assert.False(t, query.Has("city"))
	assert.Equal(t, "15", query.Get("radius"))
	assert.Equal(t, "km", query.Get("unit"))
	assert.False(t, query.Has("sort"), "venue search does not send event filters")
	assert.Equal(t, "5", query.Get("size"))
}

func Test_eventSearchParams(t *testing.T) {
	radius := 30
	q := types.SearchQuery{
		Keyword:            "jazz",
		City:               "New Orleans",
		StateCode:          "LA",
		CountryCode:        "US",
		PostalCode:         "70112",
		LatLong:            "29.95,-90.07",
		Radius:             &radius,
		Unit:               "miles",
		ClassificationName: "music",
		StartDateTime:      "2026-04-01T00:00:00Z",
		EndDateTime:        " ",
		Sort:               "date,asc",
		Source:             "ticketmaster",
		IncludeFamily:      "only",
	}

	params := eventSearchParams(q)
	assert.Equal(t, "jazz", params.Get("keyword"))
	assert.Equal(t, "New Orleans", params.Get("city"))
	assert.Equal(t, "LA", params.Get("stateCode"))
	assert.Equal(t, "US", params.Get("countryCode"))
	assert.Equal(t, "70112", params.Get("postalCode"))
	assert.Equal(t, "29.95,-90.07", params.Get("latlong"))
	assert.Equal(t, "30", params.Get("radius"))
	assert.Equal(t, "miles", params.Get("unit"))
	assert.Equal(t, "music", params.Get("classificationName"))
	assert.Equal(t, "2026-04-01T00:00:00Z", params.Get("startDateTime"))
	assert.False(t, params.Has("endDateTime"))
	assert.Equal(t, "date,asc", params.Get("sort"))
	assert.Equal(t, "ticketmaster", params.Get("source"))
	assert.Equal(t, "only", params.Get("includeFamily"))

	q.Radius = nil
	params = eventSearchParams(q)
	assert.False(t, params.Has("radius"))
	assert.False(t, params.Has("unit"), "unit is only sent with radius")
}
