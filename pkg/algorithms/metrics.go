package algorithms

import (
	"sort"

	"github.com/dd0wney/strongties/pkg/graph"
)

// NetworkMetrics summarizes the size and connectivity of a graph
type NetworkMetrics struct {
	NumNodes  int
	NumEdges  int
	AvgDegree float64
	Density   float64
}

// BasicMetrics computes node and edge counts, average degree and density.
// A self-loop adds 2 to its node's degree and counts as one edge. Average
// degree is 0 for an empty graph; density is 2m / (n(n-1)) and 0 when
// n <= 1.
func BasicMetrics(g *graph.Graph) NetworkMetrics {
	m := NetworkMetrics{
		NumNodes: g.NodeCount(),
		NumEdges: g.EdgeCount(),
	}
	if m.NumNodes == 0 {
		return m
	}

	total := 0
	for _, n := range g.Nodes() {
		total += g.Degree(n)
	}
	m.AvgDegree = float64(total) / float64(m.NumNodes)

	if m.NumNodes > 1 {
		m.Density = 2 * float64(m.NumEdges) / float64(m.NumNodes*(m.NumNodes-1))
	}
	return m
}

// Connector is a node ranked by degree
type Connector struct {
	Name   string
	Degree int
}

// TopConnectors returns up to k nodes by degree, highest first. Nodes of
// equal degree keep their insertion order. k <= 0 yields nothing.
func TopConnectors(g *graph.Graph, k int) []Connector {
	if k <= 0 || g.NodeCount() == 0 {
		return []Connector{}
	}

	ranked := make([]Connector, 0, g.NodeCount())
	for _, n := range g.Nodes() {
		ranked = append(ranked, Connector{Name: n, Degree: g.Degree(n)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Degree > ranked[j].Degree
	})

	if k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked
}
