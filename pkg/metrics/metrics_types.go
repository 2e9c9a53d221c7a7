package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for one pipeline run. Every run builds its own
// Registry so separate runs never share counters.
type Registry struct {
	// Ingestion Metrics
	FilesTotal        *prometheus.CounterVec
	RowsReadTotal     prometheus.Counter
	RowsMergedTotal   prometheus.Counter
	DuplicatesDropped *prometheus.CounterVec
	WarningsTotal     *prometheus.CounterVec

	// Graph Metrics
	GraphNodes        prometheus.Gauge
	GraphEdges        prometheus.Gauge
	RowsSkippedTotal  prometheus.Counter
	TargetNodes       prometheus.Gauge
	CommunitiesTotal  prometheus.Gauge
	PartitionQuality  prometheus.Gauge
	StageDuration     *prometheus.HistogramVec
	StageRunsTotal    *prometheus.CounterVec
	LastRunTimestamp  prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initIngestMetrics()
	r.initGraphMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
