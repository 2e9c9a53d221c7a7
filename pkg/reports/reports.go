// Package reports writes analysis results as CSV files and renders the
// human-readable run summary.
package reports

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/dd0wney/strongties/pkg/algorithms"
	"github.com/dd0wney/strongties/pkg/table"
	"github.com/dd0wney/strongties/pkg/targets"
)

// Report file names
const (
	NetworkMetricsFile   = "network_metrics.csv"
	TopConnectorsFile    = "top_connectors.csv"
	CommunitiesFile      = "communities.csv"
	TargetConnectorsFile = "target_connectors.csv"
)

// Report is everything one analysis run produces.
type Report struct {
	Metrics       algorithms.NetworkMetrics
	TopConnectors []algorithms.Connector
	Communities   *algorithms.CommunityDetectionResult
	AvgClustering float64

	// TargetConnectors is nil when no target preferences were supplied.
	TargetConnectors []targets.TargetConnector
	TargetNodes      int
}

// HasTargets reports whether target matching ran.
func (r *Report) HasTargets() bool {
	return r.TargetConnectors != nil
}

// FormatFloat renders f in its shortest exact form.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// WriteNetworkMetrics writes the single-row metrics table.
func WriteNetworkMetrics(w io.Writer, m algorithms.NetworkMetrics) error {
	t := table.New("num_nodes", "num_edges", "avg_degree", "density")
	if err := t.AppendStrings(
		strconv.Itoa(m.NumNodes),
		strconv.Itoa(m.NumEdges),
		FormatFloat(m.AvgDegree),
		FormatFloat(m.Density),
	); err != nil {
		return err
	}
	return t.WriteCSV(w)
}

// WriteTopConnectors writes one row per connector in rank order.
func WriteTopConnectors(w io.Writer, connectors []algorithms.Connector) error {
	t := table.New("name", "degree")
	for _, c := range connectors {
		if err := t.AppendStrings(c.Name, strconv.Itoa(c.Degree)); err != nil {
			return err
		}
	}
	return t.WriteCSV(w)
}

// WriteCommunities writes one row per node membership, ordered by
// community id and then member order.
func WriteCommunities(w io.Writer, result *algorithms.CommunityDetectionResult) error {
	t := table.New("community_id", "name")
	if result != nil {
		communities := append([]*algorithms.Community(nil), result.Communities...)
		sort.SliceStable(communities, func(i, j int) bool {
			return communities[i].ID < communities[j].ID
		})
		for _, c := range communities {
			id := strconv.Itoa(c.ID)
			for _, n := range c.Nodes {
				if err := t.AppendStrings(id, n); err != nil {
					return err
				}
			}
		}
	}
	return t.WriteCSV(w)
}

// WriteTargetConnectors writes connectors with their match result. Missing
// company or role values are written as empty fields.
func WriteTargetConnectors(w io.Writer, connectors []targets.TargetConnector) error {
	t := table.New("name", "degree", "matches_target", "company", "role")
	for _, c := range connectors {
		if err := t.Append(
			table.Str(c.Name),
			table.Str(strconv.Itoa(c.Degree)),
			table.Str(strconv.FormatBool(c.MatchesTarget)),
			optional(c.Company),
			optional(c.Role),
		); err != nil {
			return err
		}
	}
	return t.WriteCSV(w)
}

func optional(s string) table.Cell {
	if s == "" {
		return table.Null()
	}
	return table.Str(s)
}

// WriteAll writes every report into dir, creating it if needed, and
// returns the paths written. The target report is only written when
// target matching ran.
func WriteAll(dir string, r *Report) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report directory %s: %w", dir, err)
	}

	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{NetworkMetricsFile, func(w io.Writer) error { return WriteNetworkMetrics(w, r.Metrics) }},
		{TopConnectorsFile, func(w io.Writer) error { return WriteTopConnectors(w, r.TopConnectors) }},
		{CommunitiesFile, func(w io.Writer) error { return WriteCommunities(w, r.Communities) }},
	}
	if r.HasTargets() {
		files = append(files, struct {
			name  string
			write func(io.Writer) error
		}{TargetConnectorsFile, func(w io.Writer) error { return WriteTargetConnectors(w, r.TargetConnectors) }})
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := writeFile(path, f.write); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close report %s: %w", path, cerr)
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
