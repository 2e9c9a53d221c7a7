// Package graph holds the undirected connection graph, its builder and
// GraphML persistence.
package graph

// Edge is an undirected edge. From and To keep the orientation in which
// the edge was first added.
type Edge struct {
	From string
	To   string
}

// Graph is an undirected simple graph over string node ids. Parallel edges
// are collapsed; self-loops are allowed. Node and edge order follow
// insertion order.
type Graph struct {
	ids   []string
	index map[string]int
	adj   [][]int
	attrs []*NodeAttributes

	edges   []Edge
	edgeSet map[[2]int]struct{}
	loops   []bool
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		index:   make(map[string]int),
		edgeSet: make(map[[2]int]struct{}),
	}
}

// AddNode adds id if absent and returns its attributes.
func (g *Graph) AddNode(id string) *NodeAttributes {
	if i, ok := g.index[id]; ok {
		return g.attrs[i]
	}
	g.index[id] = len(g.ids)
	g.ids = append(g.ids, id)
	g.adj = append(g.adj, nil)
	g.loops = append(g.loops, false)
	a := &NodeAttributes{}
	g.attrs = append(g.attrs, a)
	return a
}

func edgeKey(u, v int) [2]int {
	if u > v {
		u, v = v, u
	}
	return [2]int{u, v}
}

// AddEdge connects u and v, adding missing nodes. Adding an existing edge
// in either orientation is a no-op.
func (g *Graph) AddEdge(u, v string) {
	g.AddNode(u)
	g.AddNode(v)
	ui, vi := g.index[u], g.index[v]

	key := edgeKey(ui, vi)
	if _, ok := g.edgeSet[key]; ok {
		return
	}
	g.edgeSet[key] = struct{}{}
	g.edges = append(g.edges, Edge{From: u, To: v})

	if ui == vi {
		g.loops[ui] = true
		g.adj[ui] = append(g.adj[ui], ui)
		return
	}
	g.adj[ui] = append(g.adj[ui], vi)
	g.adj[vi] = append(g.adj[vi], ui)
}

// HasNode reports whether id is a node.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// HasEdge reports whether u and v are adjacent.
func (g *Graph) HasEdge(u, v string) bool {
	ui, ok := g.index[u]
	if !ok {
		return false
	}
	vi, ok := g.index[v]
	if !ok {
		return false
	}
	_, ok = g.edgeSet[edgeKey(ui, vi)]
	return ok
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.ids) }

// EdgeCount returns the number of edges, self-loops included.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Nodes returns node ids in insertion order.
func (g *Graph) Nodes() []string {
	return append([]string(nil), g.ids...)
}

// Edges returns edges in insertion order.
func (g *Graph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// Neighbors returns the nodes adjacent to id in the order the edges were
// added. A node with a self-loop lists itself once.
func (g *Graph) Neighbors(id string) []string {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	out := make([]string, len(g.adj[i]))
	for k, j := range g.adj[i] {
		out[k] = g.ids[j]
	}
	return out
}

// Degree returns the number of edge endpoints at id; a self-loop counts twice.
func (g *Graph) Degree(id string) int {
	i, ok := g.index[id]
	if !ok {
		return 0
	}
	d := len(g.adj[i])
	if g.loops[i] {
		d++
	}
	return d
}

// HasSelfLoop reports whether id is connected to itself.
func (g *Graph) HasSelfLoop(id string) bool {
	i, ok := g.index[id]
	return ok && g.loops[i]
}

// Attributes returns the attributes of id, or nil for an unknown node. The
// returned value is live: changes are visible through the graph.
func (g *Graph) Attributes(id string) *NodeAttributes {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	return g.attrs[i]
}
