// Package metrics implements ports.Metrics with Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.trai.ch/ikon/internal/core/ports"
)

// Result labels of IconsResolved.
const (
	ResultLoaded  = "loaded"
	ResultMissing = "missing"
)

// Metrics provides observability for the icon engine.
// Tracks API queries per provider and the icons delivered to callers.
type Metrics struct {
	registry *prometheus.Registry

	QueriesTotal       *prometheus.CounterVec
	QueriesInFlight    *prometheus.GaugeVec
	QueryDuration      *prometheus.HistogramVec
	AttemptsTotal      *prometheus.CounterVec
	IconsResolvedTotal *prometheus.CounterVec
	RendersTotal       prometheus.Counter
}

var _ ports.Metrics = (*Metrics)(nil)

// New creates a Metrics instance with every collector registered on its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		QueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ikon_queries_total",
			Help: "Total number of API queries by provider and terminal status",
		}, []string{"provider", "status"}),
		QueriesInFlight: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ikon_queries_in_flight",
			Help: "Number of API queries that have not reached a terminal status",
		}, []string{"provider"}),
		QueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ikon_query_duration_seconds",
			Help:    "Duration of API queries, from the first attempt to the terminal status",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 0.75, 1, 2.5, 5, 10},
		}, []string{"provider"}),
		AttemptsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ikon_attempts_total",
			Help: "Total number of requests sent to API hosts",
		}, []string{"provider"}),
		IconsResolvedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ikon_icons_resolved_total",
			Help: "Total number of requested icons delivered as loaded or missing",
		}, []string{"result"}),
		RendersTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "ikon_renders_total",
			Help: "Total number of icons rendered to SVG",
		}),
	}
}

// QueryStarted tracks a query of provider as in flight.
func (m *Metrics) QueryStarted(provider string) {
	m.QueriesInFlight.WithLabelValues(label(provider)).Inc()
}

// AttemptSent counts a request sent to one host of provider.
func (m *Metrics) AttemptSent(provider string) {
	m.AttemptsTotal.WithLabelValues(label(provider)).Inc()
}

// QueryFinished records the terminal status and duration of a query.
func (m *Metrics) QueryFinished(provider, status string, seconds float64) {
	m.QueriesInFlight.WithLabelValues(label(provider)).Dec()
	m.QueriesTotal.WithLabelValues(label(provider), status).Inc()
	m.QueryDuration.WithLabelValues(label(provider)).Observe(seconds)
}

// IconsResolved counts icons delivered to callers.
func (m *Metrics) IconsResolved(loaded, missing int) {
	m.IconsResolvedTotal.WithLabelValues(ResultLoaded).Add(float64(loaded))
	m.IconsResolvedTotal.WithLabelValues(ResultMissing).Add(float64(missing))
}

// IconRendered counts a rendered icon.
func (m *Metrics) IconRendered() {
	m.RendersTotal.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the registry holding the engine collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// label names the default provider, which has an empty name.
func label(provider string) string {
	if provider == "" {
		return "default"
	}
	return provider
}
