package targets

import (
	"github.com/dd0wney/strongties/pkg/algorithms"
	"github.com/dd0wney/strongties/pkg/graph"
)

// TargetConnector is a ranked connector annotated with its match result.
type TargetConnector struct {
	Name          string
	Degree        int
	MatchesTarget bool
	Company       string
	Role          string
}

// Annotate sets is_target on every node and returns how many matched.
// Nil preferences leave the graph untouched.
func Annotate(g *graph.Graph, prefs *Preferences) int {
	if prefs == nil {
		return 0
	}
	matched := 0
	for _, n := range g.Nodes() {
		attrs := g.Attributes(n)
		hit := prefs.Matches(attrs)
		attrs.SetTarget(hit)
		if hit {
			matched++
		}
	}
	return matched
}

// CountAnnotated counts nodes already flagged is_target=true.
func CountAnnotated(g *graph.Graph) int {
	count := 0
	for _, n := range g.Nodes() {
		if t := g.Attributes(n).IsTarget; t != nil && *t {
			count++
		}
	}
	return count
}

// RankConnectors pairs each connector with its match result and raw
// company and role. Order follows connectors. Nil preferences return nil.
func RankConnectors(g *graph.Graph, connectors []algorithms.Connector, prefs *Preferences) []TargetConnector {
	if prefs == nil {
		return nil
	}
	out := make([]TargetConnector, 0, len(connectors))
	for _, c := range connectors {
		attrs := g.Attributes(c.Name)
		tc := TargetConnector{
			Name:          c.Name,
			Degree:        c.Degree,
			MatchesTarget: prefs.Matches(attrs),
		}
		tc.Company, _ = attrs.Get(graph.AttrCompany)
		tc.Role, _ = attrs.Get(graph.AttrRole)
		out = append(out, tc)
	}
	return out
}
