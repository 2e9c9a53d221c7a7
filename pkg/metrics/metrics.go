package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// File outcomes recorded by RecordFile
const (
	FileLoaded   = "loaded"
	FileSkipped  = "skipped"
	FileRejected = "rejected"
)

// All Record* methods are safe on a nil *Registry so callers that do not
// collect metrics can pass nil.

// RecordFile records the outcome of loading one connection file
func (r *Registry) RecordFile(status string, rows int) {
	if r == nil {
		return
	}
	r.FilesTotal.WithLabelValues(status).Inc()
	if rows > 0 {
		r.RowsReadTotal.Add(float64(rows))
	}
}

// RecordDuplicates records rows removed by a deduplication pass ("file" or "merge")
func (r *Registry) RecordDuplicates(pass string, dropped int) {
	if r == nil || dropped <= 0 {
		return
	}
	r.DuplicatesDropped.WithLabelValues(pass).Add(float64(dropped))
}

// RecordMerged records the size of the merged table
func (r *Registry) RecordMerged(rows int) {
	if r == nil {
		return
	}
	r.RowsMergedTotal.Add(float64(rows))
}

// RecordWarning records a data quality warning
func (r *Registry) RecordWarning(kind string) {
	if r == nil {
		return
	}
	r.WarningsTotal.WithLabelValues(kind).Inc()
}

// RecordGraph records graph size and the number of skipped rows
func (r *Registry) RecordGraph(nodes, edges, skippedRows int) {
	if r == nil {
		return
	}
	r.GraphNodes.Set(float64(nodes))
	r.GraphEdges.Set(float64(edges))
	if skippedRows > 0 {
		r.RowsSkippedTotal.Add(float64(skippedRows))
	}
}

// RecordTargets records how many nodes matched target preferences
func (r *Registry) RecordTargets(matched int) {
	if r == nil {
		return
	}
	r.TargetNodes.Set(float64(matched))
}

// RecordCommunities records the community partition summary
func (r *Registry) RecordCommunities(count int, modularity float64) {
	if r == nil {
		return
	}
	r.CommunitiesTotal.Set(float64(count))
	r.PartitionQuality.Set(modularity)
}

// RecordStage records one pipeline stage execution with its duration
func (r *Registry) RecordStage(stage string, err error, duration time.Duration) {
	if r == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	r.StageRunsTotal.WithLabelValues(stage, status).Inc()
	r.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// MarkFinished stamps the completion time of the run
func (r *Registry) MarkFinished(now time.Time) {
	if r == nil {
		return
	}
	r.LastRunTimestamp.Set(float64(now.Unix()))
}

// WriteTextfile writes every metric in Prometheus text format to path,
// atomically, for pickup by a node-exporter textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
