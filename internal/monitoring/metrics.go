package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tracekit/otellink/splice"
)

var _ splice.Observer = (*Metrics)(nil)

// Metrics holds all Prometheus metrics. It implements splice.Observer.
type Metrics struct {
	// Splice outcome metrics
	SplicedTotal     prometheus.Counter
	PassthroughTotal prometheus.Counter
	DegradedTotal    prometheus.Counter

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates a metrics collector registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SplicedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "otellink_requests_spliced_total",
				Help: "Requests detached into a new root trace",
			},
		),
		PassthroughTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "otellink_requests_passthrough_total",
				Help: "Requests without upstream trace context, delegated untouched",
			},
		),
		DegradedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "otellink_requests_degraded_total",
				Help: "Requests with upstream context whose active span did not support splicing",
			},
		),
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otellink_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "otellink_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
	}
}

// Spliced records a request detached into a new root trace.
func (m *Metrics) Spliced() {
	m.SplicedTotal.Inc()
}

// PassedThrough records a request delegated without splicing.
func (m *Metrics) PassedThrough() {
	m.PassthroughTotal.Inc()
}

// Degraded records a splice candidate whose active span lacked name access.
func (m *Metrics) Degraded() {
	m.DegradedTotal.Inc()
}
