package graph

import (
	"errors"
	"sort"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/strongties/pkg/logging"
	"github.com/dd0wney/strongties/pkg/table"
)

func newTable(t *testing.T, cols []string, rows ...[]table.Cell) *table.Table {
	t.Helper()
	tbl := table.New(cols...)
	for _, r := range rows {
		require.NoError(t, tbl.Append(r...))
	}
	return tbl
}

func cells(values ...string) []table.Cell {
	out := make([]table.Cell, len(values))
	for i, v := range values {
		out[i] = table.Str(v)
	}
	return out
}

func sortedNodes(g *Graph) []string {
	n := g.Nodes()
	sort.Strings(n)
	return n
}

func TestBuild_ExplicitColumns(t *testing.T) {
	tbl := newTable(t, []string{"source", "target"},
		cells("A", "B"), cells("B", "C"), cells("C", "D"))

	g, err := NewBuilder(nil, nil).Build(tbl, BuildOptions{SourceColumn: "source", TargetColumn: "target"})
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C", "D"}, sortedNodes(g))
	assert.Equal(t, 3, g.EdgeCount())
	assert.True(t, g.HasEdge("C", "D"))
}

func TestBuild_InfersFirstTwoColumns(t *testing.T) {
	tbl := newTable(t, []string{"foo", "bar", "baz"},
		cells("X", "Y", "1"), cells("Y", "Z", "2"))

	g, err := NewBuilder(nil, nil).Build(tbl, BuildOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"X", "Y", "Z"}, sortedNodes(g))
	assert.True(t, g.HasEdge("X", "Y"))
	assert.True(t, g.HasEdge("Y", "Z"))
}

func TestBuild_EmptyTable(t *testing.T) {
	g, err := NewBuilder(nil, nil).Build(table.New("only_one"), BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, g.NodeCount())
	assert.Equal(t, 0, g.EdgeCount())
}

func TestBuild_TooFewColumns(t *testing.T) {
	tbl := newTable(t, []string{"only_one"}, cells("A"), cells("B"))

	_, err := NewBuilder(nil, nil).Build(tbl, BuildOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGraphConstruction))
	assert.True(t, errors.Is(err, ErrTooFewColumns))

	var schemaErr *InvalidSchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"only_one"}, schemaErr.Columns)
}

func TestBuild_UnknownColumn(t *testing.T) {
	tbl := newTable(t, []string{"a", "b"}, cells("A", "B"))

	_, err := NewBuilder(nil, nil).Build(tbl, BuildOptions{SourceColumn: "a", TargetColumn: "missing"})
	assert.ErrorIs(t, err, ErrUnknownColumn)
	assert.ErrorIs(t, err, ErrGraphConstruction)
}

func TestBuild_SkipsNullEndpoints(t *testing.T) {
	rec := logging.NewRecorder()
	tbl := newTable(t, []string{"source", "target"},
		cells("A", "B"),
		[]table.Cell{table.Null(), table.Str("C")},
		[]table.Cell{table.Str("C"), table.Null()},
	)

	g, err := NewBuilder(rec, nil).Build(tbl, BuildOptions{SourceColumn: "source", TargetColumn: "target"})
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, sortedNodes(g))
	assert.Equal(t, 1, g.EdgeCount())
	assert.Contains(t, rec.Messages(logging.WarnLevel), "skipped rows with missing endpoints")
}

func TestBuild_NumericLookingIDsCollide(t *testing.T) {
	tbl := newTable(t, []string{"source", "target"}, cells("1", "2"), cells("2", "3"))

	g, err := NewBuilder(nil, nil).Build(tbl, BuildOptions{SourceColumn: "source", TargetColumn: "target"})
	require.NoError(t, err)
	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 2, g.Degree("2"))
}

func TestBuild_TargetNodeCarriesRowAttributes(t *testing.T) {
	tbl := newTable(t, []string{"name", "company", "position", "owner_user_id", "email"},
		cells("Alice Smith", "Acme", "Engineer", "alice", "a@example.com"),
		[]table.Cell{table.Str("Alice Smith"), table.Str("Initech"), table.Null(), table.Str("bob"), table.Null()},
	)

	g, err := NewBuilder(nil, nil).Build(tbl, BuildOptions{SourceColumn: "owner_user_id", TargetColumn: "name"})
	require.NoError(t, err)

	attrs := g.Attributes("Alice Smith")
	require.NotNil(t, attrs)
	assert.Equal(t, "Initech", attrs.Company, "later row wins")
	assert.Equal(t, "Engineer", attrs.Position, "null cells do not clear values")
	assert.Equal(t, "bob", attrs.OwnerUserID)
	_, hasEmail := attrs.Get(AttrEmail)
	assert.False(t, hasEmail, "e-mail addresses stay out of the graph")

	assert.Empty(t, g.Attributes("alice").Keys(), "source nodes carry no row attributes")
}

func TestBuild_ContactColumnsNotWritten(t *testing.T) {
	tbl := newTable(t, []string{"owner_user_id", "name", "email_address", "note"},
		cells("alice", "Ann Lee", "ann@example.com", "met at conf"),
	)

	g, err := NewBuilder(nil, nil).Build(tbl, BuildOptions{SourceColumn: "owner_user_id", TargetColumn: "name"})
	require.NoError(t, err)

	attrs := g.Attributes("Ann Lee")
	assert.Equal(t, []string{"owner_user_id", "note"}, attrs.Keys())
}

func TestBuild_DeterministicTopology(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	ids := []string{"a", "b", "c", "d", "e"}

	properties.Property("building the same table twice gives the same nodes and edges", prop.ForAll(
		func(src, dst []int) bool {
			tbl := table.New("s", "t")
			for i := 0; i < min(len(src), len(dst)); i++ {
				_ = tbl.AppendStrings(ids[src[i]], ids[dst[i]])
			}
			b := NewBuilder(nil, nil)
			g1, err1 := b.Build(tbl, BuildOptions{})
			g2, err2 := b.Build(tbl, BuildOptions{})
			if err1 != nil || err2 != nil {
				return false
			}
			if len(g1.Nodes()) != len(g2.Nodes()) || g1.EdgeCount() != g2.EdgeCount() {
				return false
			}
			for i, n := range g1.Nodes() {
				if g2.Nodes()[i] != n {
					return false
				}
			}
			for _, e := range g1.Edges() {
				if !g2.HasEdge(e.From, e.To) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, len(ids)-1)),
		gen.SliceOf(gen.IntRange(0, len(ids)-1)),
	))

	properties.TestingRun(t)
}
