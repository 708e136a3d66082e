// Package metrics exposes the gateway's prometheus instrumentation
// (SPEC_FULL.md supplemented feature 4): scrape outcomes and lookup
// volume. Unlike the teacher's dynamic, string-keyed Stats map, the
// gateway's metric set is small and known up front, so each metric is
// a concrete, registered collector rather than a generic gauge table.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector registered against one registry.
type Metrics struct {
	registry *prometheus.Registry

	ScrapeCycles  *prometheus.CounterVec
	ScrapeSeconds prometheus.Histogram
	Lookups       *prometheus.CounterVec
	Generation    prometheus.Gauge
}

// New builds and registers the gateway's metric set.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewBuildInfoCollector())
	registry.MustRegister(collectors.NewGoCollector())

	m := &Metrics{
		registry: registry,
		ScrapeCycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rdap_gateway",
			Subsystem: "bootstrap",
			Name:      "scrape_cycles_total",
			Help:      "Bootstrap scrape cycles by outcome.",
		}, []string{"outcome"}),
		ScrapeSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rdap_gateway",
			Subsystem: "bootstrap",
			Name:      "scrape_duration_seconds",
			Help:      "Duration of a bootstrap scrape cycle.",
			Buckets:   prometheus.DefBuckets,
		}),
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rdap_gateway",
			Subsystem: "directory",
			Name:      "lookups_total",
			Help:      "Directory authority lookups by resource kind and outcome.",
		}, []string{"kind", "outcome"}),
		Generation: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rdap_gateway",
			Subsystem: "bootstrap",
			Name:      "generation_sequence",
			Help:      "Sequence number of the live routing generation.",
		}),
	}

	registry.MustRegister(m.ScrapeCycles, m.ScrapeSeconds, m.Lookups, m.Generation)
	return m
}

// Handler returns the HTTP handler serving this registry's metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// ObserveScrape records one completed bootstrap cycle.
func (m *Metrics) ObserveScrape(seconds float64, committed bool) {
	outcome := "committed"
	if !committed {
		outcome = "abandoned"
	}
	m.ScrapeCycles.WithLabelValues(outcome).Inc()
	m.ScrapeSeconds.Observe(seconds)
}

// ObserveLookup records one directory lookup.
func (m *Metrics) ObserveLookup(kind string, found bool) {
	outcome := "found"
	if !found {
		outcome = "not_found"
	}
	m.Lookups.WithLabelValues(kind, outcome).Inc()
}

// SetGeneration records the live generation's sequence number.
func (m *Metrics) SetGeneration(seq uint64) {
	m.Generation.Set(float64(seq))
}
