// Package metrics exposes Prometheus counters for dataset loading and
// comparison. Each Collector owns a private registry so several runs (or
// tests) never collide on the default registerer.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector provides metrics collection for one comparison run.
type Collector struct {
	registry *prometheus.Registry

	// Ingestion metrics
	RowsTotal       *prometheus.CounterVec
	RejectionsTotal *prometheus.CounterVec
	StatesLoaded    *prometheus.GaugeVec
	LoadDuration    *prometheus.HistogramVec

	// Comparison metrics
	ComparedStates prometheus.Gauge
	MaxAbsDelta    prometheus.Gauge
}

// NewCollector creates a collector whose metric names are prefixed with namespace.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,

		RowsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rows_total",
				Help:      "Data rows read per dataset, by outcome (valid, skipped)",
			},
			[]string{"dataset", "outcome"},
		),

		RejectionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "row_rejections_total",
				Help:      "Rejected data rows per dataset, by reason",
			},
			[]string{"dataset", "reason"},
		),

		StatesLoaded: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "states_loaded",
				Help:      "States with at least one accepted row per dataset",
			},
			[]string{"dataset"},
		),

		LoadDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "load_duration_seconds",
				Help:      "Time spent loading one dataset",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"dataset"},
		),

		ComparedStates: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "compared_states",
				Help:      "States present with nonzero generation in both years",
			},
		),

		MaxAbsDelta: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "max_abs_delta",
				Help:      "Largest absolute efficiency change across compared states",
			},
		),
	}
}

// RowAccepted records one accepted data row.
func (c *Collector) RowAccepted(dataset string) {
	c.RowsTotal.WithLabelValues(dataset, "valid").Inc()
}

// RowRejected records one skipped data row and its reason.
func (c *Collector) RowRejected(dataset, reason string) {
	c.RowsTotal.WithLabelValues(dataset, "skipped").Inc()
	c.RejectionsTotal.WithLabelValues(dataset, reason).Inc()
}

// DatasetLoaded records the outcome of a completed load.
func (c *Collector) DatasetLoaded(dataset string, states int, elapsed time.Duration) {
	c.StatesLoaded.WithLabelValues(dataset).Set(float64(states))
	c.LoadDuration.WithLabelValues(dataset).Observe(elapsed.Seconds())
}

// RecordComparison records the size and spread of a comparison.
func (c *Collector) RecordComparison(states int, maxAbsDelta float64) {
	c.ComparedStates.Set(float64(states))
	c.MaxAbsDelta.Set(maxAbsDelta)
}

// Registry returns the collector's private registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteTextfile writes all metrics in the Prometheus text format to path,
// suitable for the node_exporter textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
