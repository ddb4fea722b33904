package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ticketscraper"

// Collector exports API and record counters. It satisfies api.Observer
// and the scraper's record observer.
type Collector struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	retries  *prometheus.CounterVec
	records  *prometheus.CounterVec
}

// NewCollector registers all collectors on reg; it panics on duplicates.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Ticketmaster API requests by route and HTTP status (\"error\" when no response).",
		}, []string{"route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Ticketmaster API request latency, rate limiting excluded.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_retries_total",
			Help:      "Retries after a 429 response.",
		}, []string{"route"}),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_total",
			Help:      "Records pushed to the sink by kind.",
		}, []string{"kind"}),
	}
	reg.MustRegister(c.requests, c.duration, c.retries, c.records)
	return c
}

func (c *Collector) ObserveRequest(route string, status int, elapsed time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	c.requests.WithLabelValues(route, label).Inc()
	c.duration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (c *Collector) ObserveRetry(route string) {
	c.retries.WithLabelValues(route).Inc()
}

func (c *Collector) ObserveRecords(kind string, n int) {
	c.records.WithLabelValues(kind).Add(float64(n))
}

// Handler serves /metrics from g and a trivial /healthz.
func Handler(g prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}
