package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var metric dto.Metric
	if err := g.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Gauge.GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r.FilesTotal == nil || r.GraphNodes == nil || r.StageDuration == nil {
		t.Fatal("metrics not initialized")
	}
	if r.GetPrometheusRegistry() == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestRegistriesAreIndependent(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()
	a.RecordFile(FileLoaded, 10)

	if got := counterValue(t, b.RowsReadTotal); got != 0 {
		t.Errorf("second registry rows = %v, want 0", got)
	}
}

func TestRecordFile(t *testing.T) {
	r := NewRegistry()
	r.RecordFile(FileLoaded, 3)
	r.RecordFile(FileLoaded, 2)
	r.RecordFile(FileSkipped, 0)

	if got := counterValue(t, r.FilesTotal.WithLabelValues(FileLoaded)); got != 2 {
		t.Errorf("loaded files = %v, want 2", got)
	}
	if got := counterValue(t, r.FilesTotal.WithLabelValues(FileSkipped)); got != 1 {
		t.Errorf("skipped files = %v, want 1", got)
	}
	if got := counterValue(t, r.RowsReadTotal); got != 5 {
		t.Errorf("rows read = %v, want 5", got)
	}
}

func TestRecordGraphAndCommunities(t *testing.T) {
	r := NewRegistry()
	r.RecordGraph(5, 3, 1)
	r.RecordCommunities(2, 0.5)
	r.RecordTargets(4)
	r.RecordDuplicates("merge", 1)
	r.RecordDuplicates("merge", 0)

	tests := []struct {
		name     string
		gauge    prometheus.Gauge
		expected float64
	}{
		{"GraphNodes", r.GraphNodes, 5},
		{"GraphEdges", r.GraphEdges, 3},
		{"CommunitiesTotal", r.CommunitiesTotal, 2},
		{"PartitionQuality", r.PartitionQuality, 0.5},
		{"TargetNodes", r.TargetNodes, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gaugeValue(t, tt.gauge); got != tt.expected {
				t.Errorf("%s = %v, want %v", tt.name, got, tt.expected)
			}
		})
	}

	if got := counterValue(t, r.RowsSkippedTotal); got != 1 {
		t.Errorf("rows skipped = %v, want 1", got)
	}
	if got := counterValue(t, r.DuplicatesDropped.WithLabelValues("merge")); got != 1 {
		t.Errorf("duplicates dropped = %v, want 1", got)
	}
}

func TestRecordStage(t *testing.T) {
	r := NewRegistry()
	r.RecordStage("build_graph", nil, 10*time.Millisecond)
	r.RecordStage("build_graph", errors.New("bad"), time.Millisecond)

	if got := counterValue(t, r.StageRunsTotal.WithLabelValues("build_graph", "success")); got != 1 {
		t.Errorf("success runs = %v, want 1", got)
	}
	if got := counterValue(t, r.StageRunsTotal.WithLabelValues("build_graph", "error")); got != 1 {
		t.Errorf("error runs = %v, want 1", got)
	}
}

func TestNilRegistryIsNoop(t *testing.T) {
	var r *Registry
	r.RecordFile(FileLoaded, 1)
	r.RecordGraph(1, 1, 1)
	r.RecordStage("x", nil, time.Second)
	r.MarkFinished(time.Now())
	if err := r.WriteTextfile("ignored.prom"); err != nil {
		t.Errorf("WriteTextfile on nil registry = %v", err)
	}
}

func TestWriteTextfile(t *testing.T) {
	r := NewRegistry()
	r.RecordGraph(7, 9, 0)

	path := filepath.Join(t.TempDir(), "strongties.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(data), "strongties_graph_nodes 7") {
		t.Errorf("textfile missing node gauge:\n%s", data)
	}
}
