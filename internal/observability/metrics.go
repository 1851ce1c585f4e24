package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// input file generator.
type Metrics struct {
	RendersTotal   *prometheus.CounterVec   // labels: format, outcome={success,error}
	RenderDuration *prometheus.HistogramVec // labels: format

	FilesWritten       prometheus.Counter
	BackendsRegistered prometheus.Gauge
}

// NewMetrics creates and registers all generator metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RendersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wavedeck",
			Name:      "renders_total",
			Help:      "Render requests by solver format and outcome.",
		}, []string{"format", "outcome"}),
		RenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "wavedeck",
			Name:      "render_duration_seconds",
			Help:      "Duration of a complete resolve-and-render cycle.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}, []string{"format"}),
		FilesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wavedeck",
			Name:      "files_written_total",
			Help:      "Total input files persisted to disk.",
		}),
		BackendsRegistered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wavedeck",
			Name:      "backends_registered",
			Help:      "Number of solver backends available in the registry.",
		}),
	}

	prometheus.MustRegister(
		m.RendersTotal,
		m.RenderDuration,
		m.FilesWritten,
		m.BackendsRegistered,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RendersTotal:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "wavedeck", Name: "renders_total"}, []string{"format", "outcome"}),
		RenderDuration:     prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "wavedeck", Name: "render_duration_seconds"}, []string{"format"}),
		FilesWritten:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "wavedeck", Name: "files_written_total"}),
		BackendsRegistered: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "wavedeck", Name: "backends_registered"}),
	}
}
