package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/strongties/pkg/config"
	"github.com/dd0wney/strongties/pkg/graph"
	"github.com/dd0wney/strongties/pkg/logging"
	"github.com/dd0wney/strongties/pkg/metrics"
	"github.com/dd0wney/strongties/pkg/reports"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// seedData writes two users' exports that share one connection.
func seedData(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	writeFile(t, filepath.Join(dir, "alice_connections.csv"),
		"First Name,Last Name,Company,Position\n"+
			"Jane,Doe,Acme,Engineer\n"+
			"John,Roe,Globex,CTO\n")
	writeFile(t, filepath.Join(dir, "bob_connections.csv"),
		"First Name,Last Name,Company,Position\n"+
			"Jane,Doe,Acme,Engineer\n"+
			"Max,Moe,Initech,Analyst\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a csv")
	return dir
}

func TestConstructGraph(t *testing.T) {
	dataDir := seedData(t)
	output := filepath.Join(t.TempDir(), "figures", "network.graphml")
	var out bytes.Buffer

	g, err := ConstructGraph(context.Background(), ConstructOptions{
		DataDir: dataDir,
		Output:  output,
	}, Deps{Out: &out})
	require.NoError(t, err)

	assert.Equal(t, "Graph has 5 nodes and 3 edges.\n", out.String())
	assert.True(t, g.HasEdge("alice", "Jane Doe"))
	assert.True(t, g.HasEdge("alice", "John Roe"))
	assert.True(t, g.HasEdge("bob", "Max Moe"))
	assert.Equal(t, "Acme", g.Attributes("Jane Doe").Company)

	saved, err := graph.ReadGraphMLFile(output)
	require.NoError(t, err)
	assert.Equal(t, g.Nodes(), saved.Nodes())
	assert.Equal(t, g.EdgeCount(), saved.EdgeCount())
}

func TestConstructGraph_WithTargets(t *testing.T) {
	dataDir := seedData(t)
	targetsPath := filepath.Join(t.TempDir(), "targets.json")
	writeFile(t, targetsPath, `{"companies":["Acme"],"roles":["CTO"]}`)
	output := filepath.Join(t.TempDir(), "network.graphml")

	g, err := ConstructGraph(context.Background(), ConstructOptions{
		DataDir:     dataDir,
		Output:      output,
		TargetsPath: targetsPath,
	}, Deps{})
	require.NoError(t, err)

	require.NotNil(t, g.Attributes("Jane Doe").IsTarget)
	assert.True(t, *g.Attributes("Jane Doe").IsTarget)
	assert.True(t, *g.Attributes("John Roe").IsTarget)
	assert.False(t, *g.Attributes("Max Moe").IsTarget)

	saved, err := graph.ReadGraphMLFile(output)
	require.NoError(t, err)
	require.NotNil(t, saved.Attributes("John Roe").IsTarget)
	assert.True(t, *saved.Attributes("John Roe").IsTarget)
}

func TestConstructGraph_BadTargetsIsNotFatal(t *testing.T) {
	dataDir := seedData(t)
	targetsPath := filepath.Join(t.TempDir(), "targets.json")
	writeFile(t, targetsPath, `{"companies": [`)
	rec := logging.NewRecorder()

	g, err := ConstructGraph(context.Background(), ConstructOptions{
		DataDir:     dataDir,
		Output:      filepath.Join(t.TempDir(), "g.graphml"),
		TargetsPath: targetsPath,
	}, Deps{Logger: rec})
	require.NoError(t, err)

	assert.Nil(t, g.Attributes("Jane Doe").IsTarget)
	assert.Contains(t, rec.Messages(logging.WarnLevel), "ignoring target preferences")
}

func TestConstructGraph_Errors(t *testing.T) {
	t.Run("missing data dir", func(t *testing.T) {
		_, err := ConstructGraph(context.Background(), ConstructOptions{
			DataDir: filepath.Join(t.TempDir(), "absent"),
			Output:  filepath.Join(t.TempDir(), "g.graphml"),
		}, Deps{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "absent")
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := ConstructGraph(ctx, ConstructOptions{
			DataDir: seedData(t),
			Output:  filepath.Join(t.TempDir(), "g.graphml"),
		}, Deps{})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("unknown column", func(t *testing.T) {
		cfg := config.Default()
		cfg.SourceColumn = "manager"
		_, err := ConstructGraph(context.Background(), ConstructOptions{
			DataDir: seedData(t),
			Output:  filepath.Join(t.TempDir(), "g.graphml"),
			Config:  cfg,
		}, Deps{})
		assert.ErrorIs(t, err, graph.ErrGraphConstruction)
	})
}

func TestConstructGraph_EmptyDir(t *testing.T) {
	var out bytes.Buffer
	_, err := ConstructGraph(context.Background(), ConstructOptions{
		DataDir: t.TempDir(),
		Output:  filepath.Join(t.TempDir(), "g.graphml"),
	}, Deps{Out: &out})
	require.NoError(t, err)
	assert.Equal(t, "Graph has 0 nodes and 0 edges.\n", out.String())
}

func constructFixture(t *testing.T, targetsPath string) string {
	t.Helper()
	output := filepath.Join(t.TempDir(), "network.graphml")
	_, err := ConstructGraph(context.Background(), ConstructOptions{
		DataDir:     seedData(t),
		Output:      output,
		TargetsPath: targetsPath,
	}, Deps{})
	require.NoError(t, err)
	return output
}

func TestAnalyzeNetwork(t *testing.T) {
	graphPath := constructFixture(t, "")
	outDir := filepath.Join(t.TempDir(), "reports")
	var out bytes.Buffer

	report, err := AnalyzeNetwork(context.Background(), AnalyzeOptions{
		GraphPath: graphPath,
		OutputDir: outDir,
	}, Deps{Out: &out})
	require.NoError(t, err)

	assert.Equal(t, 5, report.Metrics.NumNodes)
	assert.Equal(t, 3, report.Metrics.NumEdges)
	assert.Equal(t, "alice", report.TopConnectors[0].Name)
	assert.Len(t, report.Communities.Communities, 2)
	assert.False(t, report.HasTargets())

	metricsCSV, err := os.ReadFile(filepath.Join(outDir, reports.NetworkMetricsFile))
	require.NoError(t, err)
	assert.Equal(t, "num_nodes,num_edges,avg_degree,density\n5,3,1.2,0.3\n", string(metricsCSV))

	_, err = os.Stat(filepath.Join(outDir, reports.TargetConnectorsFile))
	assert.True(t, os.IsNotExist(err))

	assert.Contains(t, out.String(), "Top 10 connectors")
}

func TestAnalyzeNetwork_WithTargets(t *testing.T) {
	graphPath := constructFixture(t, "")
	targetsPath := filepath.Join(t.TempDir(), "targets.json")
	writeFile(t, targetsPath, `{"roles":["CTO"]}`)
	outDir := t.TempDir()

	report, err := AnalyzeNetwork(context.Background(), AnalyzeOptions{
		GraphPath:   graphPath,
		OutputDir:   outDir,
		TargetsPath: targetsPath,
		TopN:        2,
	}, Deps{})
	require.NoError(t, err)

	assert.Len(t, report.TopConnectors, 2)
	assert.Equal(t, 1, report.TargetNodes)

	data, err := os.ReadFile(filepath.Join(outDir, reports.TargetConnectorsFile))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "name,degree,matches_target,company,role", lines[0])
	assert.Len(t, lines, 3)
}

func TestAnalyzeNetwork_StoredAnnotations(t *testing.T) {
	targetsPath := filepath.Join(t.TempDir(), "targets.json")
	writeFile(t, targetsPath, `{"companies":["Acme"]}`)
	graphPath := constructFixture(t, targetsPath)
	var out bytes.Buffer

	report, err := AnalyzeNetwork(context.Background(), AnalyzeOptions{
		GraphPath: graphPath,
		OutputDir: t.TempDir(),
	}, Deps{Out: &out})
	require.NoError(t, err)

	assert.Equal(t, 1, report.TargetNodes)
	assert.Nil(t, report.TargetConnectors)
	assert.Contains(t, out.String(), "Target nodes")
}

func TestAnalyzeNetwork_MissingGraph(t *testing.T) {
	_, err := AnalyzeNetwork(context.Background(), AnalyzeOptions{
		GraphPath: filepath.Join(t.TempDir(), "absent.graphml"),
		OutputDir: t.TempDir(),
	}, Deps{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.graphml")
}

func TestMetricsTextfile(t *testing.T) {
	cfg := config.Default()
	cfg.MetricsFile = filepath.Join(t.TempDir(), "strongties.prom")
	reg := metrics.NewRegistry()

	_, err := ConstructGraph(context.Background(), ConstructOptions{
		DataDir: seedData(t),
		Output:  filepath.Join(t.TempDir(), "g.graphml"),
		Config:  cfg,
	}, Deps{Metrics: reg})
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "strongties_graph_nodes 5")
	assert.Contains(t, string(data), `strongties_stage_runs_total{stage="build",status="success"} 1`)
}
