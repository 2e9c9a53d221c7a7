package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initIngestMetrics() {
	r.FilesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "strongties_ingest_files_total",
			Help: "Connection files seen during a directory merge, by outcome",
		},
		[]string{"status"},
	)

	r.RowsReadTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "strongties_ingest_rows_read_total",
			Help: "Raw rows read from connection files",
		},
	)

	r.RowsMergedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "strongties_ingest_rows_merged_total",
			Help: "Rows in the merged connection table after deduplication",
		},
	)

	r.DuplicatesDropped = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "strongties_ingest_duplicates_dropped_total",
			Help: "Duplicate rows removed, by deduplication pass",
		},
		[]string{"pass"},
	)

	r.WarningsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "strongties_ingest_warnings_total",
			Help: "Data quality warnings raised during normalization",
		},
		[]string{"kind"},
	)
}
