package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the extraction pipeline.
type Metrics struct {
	ProxyAttempts      *prometheus.CounterVec
	Extractions        *prometheus.CounterVec
	FieldMatches       *prometheus.CounterVec
	CacheLookups       *prometheus.CounterVec
	ExtractionDuration *prometheus.HistogramVec

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics registers the pipeline metrics with reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ProxyAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dealscout_proxy_attempts_total",
			Help: "Proxy fetch attempts by provider and outcome",
		}, []string{"provider", "outcome"}),
		Extractions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dealscout_extractions_total",
			Help: "Completed extractions by store and record source",
		}, []string{"store", "source"}),
		FieldMatches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dealscout_field_matches_total",
			Help: "Field extraction results by field and outcome",
		}, []string{"field", "outcome"}), // outcome: matched, missing
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dealscout_cache_lookups_total",
			Help: "Result cache lookups by outcome",
		}, []string{"outcome"}),
		ExtractionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dealscout_extraction_duration_seconds",
			Help:    "End to end extraction latency",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"store"}),

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dealscout_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dealscout_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
}
