package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "strongties_graph_nodes",
			Help: "Number of nodes in the connection graph",
		},
	)

	r.GraphEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "strongties_graph_edges",
			Help: "Number of edges in the connection graph",
		},
	)

	r.RowsSkippedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "strongties_graph_rows_skipped_total",
			Help: "Rows skipped during graph construction because an endpoint was null",
		},
	)

	r.TargetNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "strongties_graph_target_nodes",
			Help: "Nodes matching the configured target companies or roles",
		},
	)

	r.CommunitiesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "strongties_graph_communities",
			Help: "Communities found by greedy modularity maximization",
		},
	)

	r.PartitionQuality = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "strongties_graph_modularity",
			Help: "Modularity score of the detected community partition",
		},
	)

	r.StageDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "strongties_stage_duration_seconds",
			Help:    "Pipeline stage duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"stage"},
	)

	r.StageRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "strongties_stage_runs_total",
			Help: "Pipeline stage executions, by outcome",
		},
		[]string{"stage", "status"},
	)

	r.LastRunTimestamp = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "strongties_last_run_timestamp_seconds",
			Help: "Unix time at which the last pipeline run finished",
		},
	)
}
