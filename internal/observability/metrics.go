// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Chart metrics
	ChartsComputed    *prometheus.CounterVec
	ChartDuration     prometheus.Histogram
	HashFallbacks     prometheus.Counter
	TimezoneEstimates prometheus.Counter

	// Solver metrics
	SolverIterations   prometheus.Histogram
	SolverNonConverged prometheus.Counter

	// HTTP metrics
	RequestDuration *prometheus.HistogramVec
	RequestErrors   *prometheus.CounterVec

	// Reference data metrics
	GeneKeyLookups *prometheus.CounterVec

	// Transit metrics
	TransitClients prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "humandesign"
	}

	return &Metrics{
		// Chart metrics
		ChartsComputed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chart",
			Name:      "computed_total",
			Help:      "Total number of charts computed by type",
		}, []string{"type"}),
		ChartDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "chart",
			Name:      "duration_seconds",
			Help:      "Chart computation duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		HashFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chart",
			Name:      "hash_fallbacks_total",
			Help:      "Total number of readings produced by the hash fallback generator",
		}),
		TimezoneEstimates: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chart",
			Name:      "timezone_estimates_total",
			Help:      "Total number of charts computed with longitude-estimated timezones",
		}),

		// Solver metrics
		SolverIterations: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "solver",
			Name:      "iterations",
			Help:      "Newton iterations per design time solve",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 50, 100, 200},
		}),
		SolverNonConverged: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "solver",
			Name:      "non_converged_total",
			Help:      "Total number of design time solves that did not converge",
		}),

		// HTTP metrics
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "status"}),
		RequestErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_errors_total",
			Help:      "Total number of HTTP error responses by route",
		}, []string{"route"}),

		// Reference data metrics
		GeneKeyLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "genekeys",
			Name:      "lookups_total",
			Help:      "Total number of gene key lookups by result",
		}, []string{"result"}),

		// Transit metrics
		TransitClients: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "transit",
			Name:      "clients",
			Help:      "Current number of connected transit WebSocket clients",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordChart records one chart computation.
func RecordChart(chartType string, durationSeconds float64) {
	DefaultMetrics.ChartsComputed.WithLabelValues(chartType).Inc()
	DefaultMetrics.ChartDuration.Observe(durationSeconds)
}

// RecordHashFallbacks adds to the hash fallback counter.
func RecordHashFallbacks(n int) {
	if n > 0 {
		DefaultMetrics.HashFallbacks.Add(float64(n))
	}
}

// RecordTimezoneEstimate increments the estimated-timezone counter.
func RecordTimezoneEstimate() {
	DefaultMetrics.TimezoneEstimates.Inc()
}

// RecordSolve records solver iterations and convergence.
func RecordSolve(iterations int, converged bool) {
	DefaultMetrics.SolverIterations.Observe(float64(iterations))
	if !converged {
		DefaultMetrics.SolverNonConverged.Inc()
	}
}

// RecordRequest records an HTTP request.
func RecordRequest(route, status string, seconds float64) {
	DefaultMetrics.RequestDuration.WithLabelValues(route, status).Observe(seconds)
	if len(status) > 0 && (status[0] == '4' || status[0] == '5') {
		DefaultMetrics.RequestErrors.WithLabelValues(route).Inc()
	}
}

// RecordGeneKeyLookup records a gene key lookup outcome ("hit" or "miss").
func RecordGeneKeyLookup(result string) {
	DefaultMetrics.GeneKeyLookups.WithLabelValues(result).Inc()
}

// SetTransitClients updates the connected transit client gauge.
func SetTransitClients(n int) {
	DefaultMetrics.TransitClients.Set(float64(n))
}
