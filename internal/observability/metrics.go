package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "flare_viewer"

// Metrics holds the Prometheus counters, histograms, and gauges for the flare viewer.
type Metrics struct {
	ServiceRunning prometheus.Gauge

	// Refresh cycle metrics.
	Fetches        *prometheus.CounterVec // labels: outcome={success,error,superseded}
	FetchDuration  prometheus.Histogram
	FlaresReceived prometheus.Counter
	SelectedScore  prometheus.Gauge

	// DONKI client metrics.
	APIRequests *prometheus.CounterVec // labels: status={2xx,4xx,5xx,error}
	APIDuration prometheus.Histogram

	// Selection publishing metrics.
	SelectionsPublished prometheus.Counter
	PublishErrors       prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ServiceRunning,
		m.Fetches,
		m.FetchDuration,
		m.FlaresReceived,
		m.SelectedScore,
		m.APIRequests,
		m.APIDuration,
		m.SelectionsPublished,
		m.PublishErrors,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewUnregisteredMetrics()
}

// NewUnregisteredMetrics creates Metrics that are never exposed, for
// one-shot tools that have no /metrics endpoint.
func NewUnregisteredMetrics() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ServiceRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "service_running",
			Help:      "1 when the refresh loop is active, 0 when shut down.",
		}),
		Fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_total",
			Help:      "Flare refreshes by outcome.",
		}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of a complete fetch-rank-apply cycle.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		FlaresReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flares_received_total",
			Help:      "Total flare records received from DONKI.",
		}),
		SelectedScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "selected_severity_score",
			Help:      "Severity score of the currently selected flare, 0 when none.",
		}),
		APIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "donki_requests_total",
			Help:      "DONKI API requests by status class.",
		}, []string{"status"}),
		APIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "donki_request_duration_seconds",
			Help:      "DONKI API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SelectionsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selections_published_total",
			Help:      "Applied selections published to Kafka.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Failed selection publications.",
		}),
	}
}
