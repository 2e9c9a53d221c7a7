package algorithms

import (
	"container/list"

	"github.com/dd0wney/strongties/pkg/graph"
)

// ConnectedComponents finds all connected components in the graph,
// numbered in node insertion order. Isolated nodes form their own component.
func ConnectedComponents(g *graph.Graph) *CommunityDetectionResult {
	visited := make(map[string]bool, g.NodeCount())
	nodeCommunity := make(map[string]int, g.NodeCount())
	communities := make([]*Community, 0)

	for _, start := range g.Nodes() {
		if visited[start] {
			continue
		}

		component := &Community{ID: len(communities)}

		queue := list.New()
		queue.PushBack(start)
		visited[start] = true

		for queue.Len() > 0 {
			id := queue.Remove(queue.Front()).(string)
			component.Nodes = append(component.Nodes, id)
			nodeCommunity[id] = component.ID

			for _, n := range g.Neighbors(id) {
				if !visited[n] {
					visited[n] = true
					queue.PushBack(n)
				}
			}
		}

		component.Size = len(component.Nodes)
		component.Density = communityDensity(g, component.Nodes)
		communities = append(communities, component)
	}

	result := &CommunityDetectionResult{
		Communities:   communities,
		NodeCommunity: nodeCommunity,
	}
	result.Modularity = Modularity(g, nodeCommunity)
	return result
}

// communityDensity is 2L / (n(n-1)) over the edges inside members.
func communityDensity(g *graph.Graph, members []string) float64 {
	n := len(members)
	if n <= 1 {
		return 0
	}
	in := make(map[string]bool, n)
	for _, m := range members {
		in[m] = true
	}
	endpoints := 0
	for _, m := range members {
		for _, nb := range g.Neighbors(m) {
			if nb != m && in[nb] {
				endpoints++
			}
		}
	}
	return float64(endpoints) / float64(n*(n-1))
}
