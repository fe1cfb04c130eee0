package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the gateway collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	CatalogRequests *prometheus.CounterVec
	CatalogDuration *prometheus.HistogramVec
	CacheLookups    *prometheus.CounterVec
	TripUpdates     *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		CatalogRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gateway",
				Subsystem: "catalog",
				Name:      "requests_total",
				Help:      "Catalog fetches by endpoint and outcome (ok, not_found, degraded, unavailable)",
			},
			[]string{"endpoint", "outcome"},
		),

		CatalogDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "gateway",
				Subsystem: "catalog",
				Name:      "request_duration_seconds",
				Help:      "Catalog round trip duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),

		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gateway",
				Subsystem: "catalog",
				Name:      "cache_lookups_total",
				Help:      "Catalog response cache lookups by result (hit, miss)",
			},
			[]string{"result"},
		),

		TripUpdates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gateway",
				Subsystem: "trips",
				Name:      "updates_total",
				Help:      "Trip bookings and cancellations by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
	}

	m.registry.MustRegister(
		m.CatalogRequests,
		m.CatalogDuration,
		m.CacheLookups,
		m.TripUpdates,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *Metrics) CatalogRequest(endpoint, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.CatalogRequests.WithLabelValues(endpoint, outcome).Inc()
	m.CatalogDuration.WithLabelValues(endpoint).Observe(seconds)
}

// CatalogOutcome counts a catalog result that made no round trip of its own,
// such as a cached body that decoded to nothing usable.
func (m *Metrics) CatalogOutcome(endpoint, outcome string) {
	if m == nil {
		return
	}
	m.CatalogRequests.WithLabelValues(endpoint, outcome).Inc()
}

func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) TripUpdate(operation string, success bool) {
	if m == nil {
		return
	}
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.TripUpdates.WithLabelValues(operation, outcome).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		Registry:          m.registry,
		EnableOpenMetrics: false,
	})
}
