package algorithms

import (
	"sort"

	"github.com/dd0wney/strongties/pkg/graph"
)

// GreedyModularity partitions the graph by greedy modularity maximization
// (Clauset, Newman and Moore). Every node with at least one edge starts in
// its own community; the adjacent pair whose merge raises modularity the
// most is merged until no merge raises it. Merges only ever join adjacent
// communities, so each connected component is partitioned on its own.
//
// Isolated nodes belong to no community, and a graph without edges yields
// an empty partition. Communities are numbered by size, largest first, ties
// in node insertion order. Ties between equal gains go to the pair of
// lowest node indexes.
func GreedyModularity(g *graph.Graph) *CommunityDetectionResult {
	result := &CommunityDetectionResult{
		Communities:   make([]*Community, 0),
		NodeCommunity: make(map[string]int),
	}
	if g.EdgeCount() == 0 {
		return result
	}

	nodes := g.Nodes()
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		index[n] = i
	}

	twoM := 2 * float64(g.EdgeCount())
	share := make([]float64, len(nodes)) // a_i: fraction of edge endpoints in community i
	members := make([][]int, len(nodes))
	alive := make([]bool, len(nodes))
	for i, n := range nodes {
		if d := g.Degree(n); d > 0 {
			alive[i] = true
			share[i] = float64(d) / twoM
			members[i] = []int{i}
		}
	}

	// gain[i][j] is the modularity change of merging adjacent communities i and j.
	gain := make([]map[int]float64, len(nodes))
	for i, n := range nodes {
		if !alive[i] {
			continue
		}
		gain[i] = make(map[int]float64)
		for _, nb := range g.Neighbors(n) {
			j := index[nb]
			if j != i {
				gain[i][j] = 2 * (1/twoM - share[i]*share[j])
			}
		}
	}

	for {
		bi, bj, best := -1, -1, 0.0
		for i := range gain {
			if !alive[i] {
				continue
			}
			for j, v := range gain[i] {
				if j <= i || v <= 0 {
					continue
				}
				if bi < 0 || v > best || (v == best && (i < bi || (i == bi && j < bj))) {
					bi, bj, best = i, j, v
				}
			}
		}
		if bi < 0 {
			break
		}
		mergeCommunities(gain, share, bi, bj)
		members[bi] = append(members[bi], members[bj]...)
		members[bj] = nil
		alive[bj] = false
	}

	var groups [][]int
	for i := range members {
		if alive[i] {
			sort.Ints(members[i])
			groups = append(groups, members[i])
		}
	}
	sort.SliceStable(groups, func(x, y int) bool {
		if len(groups[x]) != len(groups[y]) {
			return len(groups[x]) > len(groups[y])
		}
		return groups[x][0] < groups[y][0]
	})

	for id, grp := range groups {
		c := &Community{ID: id, Size: len(grp)}
		for _, i := range grp {
			c.Nodes = append(c.Nodes, nodes[i])
			result.NodeCommunity[nodes[i]] = id
		}
		c.Density = communityDensity(g, c.Nodes)
		result.Communities = append(result.Communities, c)
	}
	result.Modularity = Modularity(g, result.NodeCommunity)
	return result
}

// mergeCommunities folds community j into i and updates the gains of
// every community adjacent to either.
func mergeCommunities(gain []map[int]float64, share []float64, i, j int) {
	merged := make(map[int]float64, len(gain[i])+len(gain[j]))
	for k, v := range gain[i] {
		if k == j {
			continue
		}
		if vj, ok := gain[j][k]; ok {
			merged[k] = v + vj
		} else {
			merged[k] = v - 2*share[j]*share[k]
		}
	}
	for k, v := range gain[j] {
		if k == i {
			continue
		}
		if _, ok := gain[i][k]; !ok {
			merged[k] = v - 2*share[i]*share[k]
		}
	}

	gain[i] = merged
	gain[j] = nil
	for k, v := range merged {
		delete(gain[k], j)
		gain[k][i] = v
	}
	share[i] += share[j]
	share[j] = 0
}

// DetectCommunities returns the greedy modularity partition as a map from
// community id to member names.
func DetectCommunities(g *graph.Graph) map[int][]string {
	return GreedyModularity(g).Partition()
}
