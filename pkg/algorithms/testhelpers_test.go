package algorithms

import (
	"sort"

	"github.com/dd0wney/strongties/pkg/graph"
)

// buildGraph creates a graph from "u-v" edge pairs
func buildGraph(edges ...[2]string) *graph.Graph {
	g := graph.New()
	for _, e := range edges {
		g.AddEdge(e[0], e[1])
	}
	return g
}

// partitionSets turns a partition into sorted member lists sorted by first
// member, so tests compare membership without relying on community ids.
func partitionSets(p map[int][]string) [][]string {
	out := make([][]string, 0, len(p))
	for _, members := range p {
		m := append([]string(nil), members...)
		sort.Strings(m)
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}
