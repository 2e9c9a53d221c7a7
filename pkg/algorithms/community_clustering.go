package algorithms

import "github.com/dd0wney/strongties/pkg/graph"

// ClusteringCoefficient computes local clustering coefficient for all nodes
// Measures how close a node's neighbors are to being a complete graph
func ClusteringCoefficient(g *graph.Graph) map[string]float64 {
	return CountTriangles(g).ClusteringCoefficients
}

// AverageClusteringCoefficient averages the local coefficient over every
// node, isolated nodes included. An empty graph averages to 0.
func AverageClusteringCoefficient(g *graph.Graph) float64 {
	coefficients := ClusteringCoefficient(g)
	if len(coefficients) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, n := range g.Nodes() {
		sum += coefficients[n]
	}
	return sum / float64(len(coefficients))
}
