package algorithms

import "github.com/dd0wney/strongties/pkg/graph"

// TriangleCountResult holds per-node and global triangle counts along with
// the local clustering coefficient of every node.
type TriangleCountResult struct {
	PerNode                map[string]int
	GlobalCount            int
	ClusteringCoefficients map[string]float64
}

// CountTriangles counts triangles, ignoring self-loops. Each triangle is
// counted once per participating node, so GlobalCount = sum(PerNode) / 3.
func CountTriangles(g *graph.Graph) *TriangleCountResult {
	nodes := g.Nodes()

	// Build undirected neighbor sets without self-loops
	neighborSets := make(map[string]map[string]bool, len(nodes))
	for _, n := range nodes {
		set := make(map[string]bool)
		for _, nb := range g.Neighbors(n) {
			if nb != n {
				set[nb] = true
			}
		}
		neighborSets[n] = set
	}

	result := &TriangleCountResult{
		PerNode:                make(map[string]int, len(nodes)),
		ClusteringCoefficients: make(map[string]float64, len(nodes)),
	}
	sum := 0

	for _, u := range nodes {
		neighbors := make([]string, 0, len(neighborSets[u]))
		for _, nb := range g.Neighbors(u) {
			if nb != u {
				neighbors = append(neighbors, nb)
			}
		}

		triangles := 0
		for i := 0; i < len(neighbors); i++ {
			for j := i + 1; j < len(neighbors); j++ {
				if neighborSets[neighbors[i]][neighbors[j]] {
					triangles++
				}
			}
		}
		result.PerNode[u] = triangles
		sum += triangles

		k := len(neighbors)
		if possible := k * (k - 1) / 2; possible > 0 {
			result.ClusteringCoefficients[u] = float64(triangles) / float64(possible)
		} else {
			result.ClusteringCoefficients[u] = 0
		}
	}

	result.GlobalCount = sum / 3
	return result
}
