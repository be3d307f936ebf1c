package infrastructure

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PipelineMetrics holds the Prometheus collectors for correction runs.
type PipelineMetrics struct {
	registry *prometheus.Registry

	RunsTotal     *prometheus.CounterVec
	RunDuration   prometheus.Histogram
	RowsProcessed prometheus.Counter
	AnomaliesSeen prometheus.Counter
	CappedPct     prometheus.Gauge
}

// NewPipelineMetrics creates and registers the pipeline collectors on a
// dedicated registry, along with the standard Go and process collectors.
func NewPipelineMetrics() *PipelineMetrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &PipelineMetrics{
		registry: registry,
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "acelab",
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Correction pipeline runs by outcome.",
		}, []string{"status"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "acelab",
			Subsystem: "pipeline",
			Name:      "run_duration_seconds",
			Help:      "Wall time of one correction pipeline run.",
			Buckets:   prometheus.DefBuckets,
		}),
		RowsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "acelab",
			Subsystem: "pipeline",
			Name:      "rows_processed_total",
			Help:      "Signal rows processed across all runs.",
		}),
		AnomaliesSeen: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "acelab",
			Subsystem: "pipeline",
			Name:      "anomalies_total",
			Help:      "Rows classified as anomalous across all runs.",
		}),
		CappedPct: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "acelab",
			Subsystem: "pipeline",
			Name:      "capped_error_pct",
			Help:      "Capped average error percentage of the last run.",
		}),
	}

	registry.MustRegister(
		m.RunsTotal,
		m.RunDuration,
		m.RowsProcessed,
		m.AnomaliesSeen,
		m.CappedPct,
	)
	return m
}

// Handler returns the HTTP handler exposing the registry in the
// Prometheus text format.
func (m *PipelineMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRun records the outcome and duration of one pipeline run.
func (m *PipelineMetrics) ObserveRun(status string, seconds float64) {
	m.RunsTotal.WithLabelValues(status).Inc()
	m.RunDuration.Observe(seconds)
}

// ObserveTables records the table-level figures of a successful run.
func (m *PipelineMetrics) ObserveTables(rows, anomalies int, cappedPct float64) {
	m.RowsProcessed.Add(float64(rows))
	m.AnomaliesSeen.Add(float64(anomalies))
	m.CappedPct.Set(cappedPct)
}
