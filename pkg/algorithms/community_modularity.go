package algorithms

import (
	"github.com/dd0wney/strongties/pkg/graph"
)

// Modularity scores a partition: the sum over communities of
// L_c/m - (d_c/2m)^2, where L_c counts edges inside c and d_c sums member
// degrees. Nodes absent from nodeCommunity count as singletons. A graph
// without edges scores 0.
func Modularity(g *graph.Graph, nodeCommunity map[string]int) float64 {
	m := float64(g.EdgeCount())
	if m == 0 {
		return 0
	}

	type key struct {
		id     int
		member bool
	}
	label := func(n string) key {
		if c, ok := nodeCommunity[n]; ok {
			return key{id: c, member: true}
		}
		return key{}
	}

	internal := make(map[key]float64)
	degrees := make(map[key]float64)
	singletons := 0.0

	for _, n := range g.Nodes() {
		k := label(n)
		d := float64(g.Degree(n))
		if !k.member {
			// A singleton's own term: self-loop edges minus its squared share.
			loops := 0.0
			if g.HasSelfLoop(n) {
				loops = 1
			}
			singletons += loops/m - (d/(2*m))*(d/(2*m))
			continue
		}
		degrees[k] += d
	}

	for _, e := range g.Edges() {
		a, b := label(e.From), label(e.To)
		if a.member && a == b {
			internal[a]++
		}
	}

	q := singletons
	for k, d := range degrees {
		share := d / (2 * m)
		q += internal[k]/m - share*share
	}
	return q
}
