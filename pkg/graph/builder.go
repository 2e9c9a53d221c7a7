package graph

import (
	"github.com/dd0wney/strongties/pkg/logging"
	"github.com/dd0wney/strongties/pkg/metrics"
	"github.com/dd0wney/strongties/pkg/table"
)

// BuildOptions name the endpoint columns. When either is empty both
// defaults come from the table's first two columns.
type BuildOptions struct {
	SourceColumn string
	TargetColumn string
}

// Builder converts connection tables into graphs.
type Builder struct {
	logger  logging.Logger
	metrics *metrics.Registry
}

// NewBuilder creates a Builder. logger and reg may be nil.
func NewBuilder(logger logging.Logger, reg *metrics.Registry) *Builder {
	return &Builder{
		logger:  logging.OrNop(logger).With(logging.Component("graph_builder")),
		metrics: reg,
	}
}

// resolveColumns applies column inference.
func resolveColumns(t *table.Table, opts BuildOptions) (string, string, error) {
	src, dst := opts.SourceColumn, opts.TargetColumn
	if src == "" || dst == "" {
		cols := t.Columns()
		if len(cols) < 2 {
			return "", "", &ConstructionError{Op: "infer columns", Columns: cols, Cause: ErrTooFewColumns}
		}
		if src == "" {
			src = cols[0]
		}
		if dst == "" {
			dst = cols[1]
		}
	}
	for _, c := range []string{src, dst} {
		if !t.Has(c) {
			return "", "", &ConstructionError{Op: "select columns", Columns: []string{c}, Cause: ErrUnknownColumn}
		}
	}
	return src, dst, nil
}

// contactColumns stay in the connection tables and never reach the graph.
var contactColumns = map[string]bool{AttrEmail: true, "email_address": true}

// Build adds one edge per row between the source and target values. Rows
// with a null endpoint are skipped. Every other non-null column of a row,
// except e-mail addresses, is copied onto the target node; when a node
// appears in several rows the later row's values win.
//
// An empty table yields an empty graph.
func (b *Builder) Build(t *table.Table, opts BuildOptions) (*Graph, error) {
	g := New()
	if t == nil || t.Empty() {
		b.metrics.RecordGraph(0, 0, 0)
		return g, nil
	}

	src, dst, err := resolveColumns(t, opts)
	if err != nil {
		b.logger.Error("cannot build graph", logging.Error(err))
		return nil, err
	}

	cols := t.Columns()
	si, di := t.Index(src), t.Index(dst)
	skipped := 0

	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		s, d := row[si], row[di]
		if !s.Valid || !d.Valid {
			skipped++
			continue
		}
		g.AddEdge(s.Value, d.Value)

		attrs := g.Attributes(d.Value)
		for ci, c := range row {
			if ci == di || !c.Valid || contactColumns[cols[ci]] {
				continue
			}
			attrs.Set(cols[ci], c.Value)
		}
	}

	if skipped > 0 {
		b.logger.Warn("skipped rows with missing endpoints",
			logging.Count(skipped), logging.String("source_column", src), logging.String("target_column", dst))
	}
	b.logger.Info("graph built",
		logging.Int("nodes", g.NodeCount()), logging.Int("edges", g.EdgeCount()))
	b.metrics.RecordGraph(g.NodeCount(), g.EdgeCount(), skipped)

	return g, nil
}
