package algebra

import (
	"sort"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

// =============================================================================
// CONVERSION GRAPH - Base units as nodes, one-hop conversions as edges
// =============================================================================

// edge is a one-hop conversion from one base unit to another.
//
// Edges come from three sources: declared rules (forward), scaled unit
// derivations (child to parent and parent to child) and the implied inverse
// of reversible rules. Implied edges rank after declared ones, so a rule
// declared in a direction shadows the inverse of the opposite rule.
type edge struct {
	from, to BaseUnitID
	factor   ConversionFactor
	implied  bool
	seq      int // declaration order
}

func (e edge) affine() bool { return e.factor.IsAffine() }

// unitEdge adapts edge to graph.Edge.
type unitEdge struct{ edge }

func (e unitEdge) From() graph.Node { return simple.Node(e.edge.from) }
func (e unitEdge) To() graph.Node   { return simple.Node(e.edge.to) }

func (e unitEdge) ReversedEdge() graph.Edge {
	r := e.edge
	r.from, r.to = r.to, r.from
	r.factor = r.factor.Inverse()
	return unitEdge{r}
}

type conversionGraph struct {
	adj map[BaseUnitID][]edge
}

func newConversionGraph() *conversionGraph {
	return &conversionGraph{adj: make(map[BaseUnitID][]edge)}
}

func (g *conversionGraph) add(e edge) {
	out := append(g.adj[e.from], e)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].implied != out[j].implied {
			return !out[i].implied
		}
		return out[i].seq < out[j].seq
	})
	g.adj[e.from] = out
}

// addDerivation links a scaled unit to its parent in both directions.
func (g *conversionGraph) addDerivation(u BaseUnit, seq int) {
	f := newFactor(u.Scale, decimal.Zero)
	g.add(edge{from: u.ID, to: u.Parent, factor: f, seq: seq})
	g.add(edge{from: u.Parent, to: u.ID, factor: f.Inverse(), seq: seq})
}

func (g *conversionGraph) addRule(r ConversionRule, seq int) {
	f := r.Factor()
	g.add(edge{from: r.From, to: r.To, factor: f, seq: seq})
	if r.Reversible {
		g.add(edge{from: r.To, to: r.From, factor: f.Inverse(), implied: true, seq: seq})
	}
}

// view restricts the graph to the edges accepted by keep. The zero keep
// accepts every edge.
type view struct {
	g    *conversionGraph
	keep func(edge) bool
}

// neighbors returns the first accepted edge to each distinct target, in
// rank order.
func (v view) neighbors(id BaseUnitID) []edge {
	var out []edge
	seen := make(map[BaseUnitID]bool)
	for _, e := range v.g.adj[id] {
		if seen[e.to] || (v.keep != nil && !v.keep(e)) {
			continue
		}
		seen[e.to] = true
		out = append(out, e)
	}
	return out
}

// From implements traverse.Graph. Nodes come back in rank order, which is
// what makes the breadth-first tie break deterministic.
func (v view) From(id int64) graph.Nodes {
	edges := v.neighbors(BaseUnitID(id))
	nodes := make([]graph.Node, len(edges))
	for i, e := range edges {
		nodes[i] = simple.Node(e.to)
	}
	return iterator.NewOrderedNodes(nodes)
}

// Edge implements traverse.Graph.
func (v view) Edge(uid, vid int64) graph.Edge {
	for _, e := range v.neighbors(BaseUnitID(uid)) {
		if e.to == BaseUnitID(vid) {
			return unitEdge{e}
		}
	}
	return nil
}

// shortestPath runs a breadth-first search from one unit to another and
// returns the edges of the first shortest path found.
func (v view) shortestPath(from, to BaseUnitID) ([]edge, bool) {
	if from == to {
		return nil, true
	}
	parent := make(map[BaseUnitID]edge)
	var via edge
	bf := traverse.BreadthFirst{
		Traverse: func(e graph.Edge) bool {
			ue, ok := e.(unitEdge)
			if !ok {
				return false
			}
			via = ue.edge
			return true
		},
		Visit: func(n graph.Node) {
			if id := BaseUnitID(n.ID()); id != from {
				parent[id] = via
			}
		},
	}
	found := bf.Walk(v, simple.Node(from), func(n graph.Node, _ int) bool {
		return BaseUnitID(n.ID()) == to
	})
	if found == nil {
		return nil, false
	}

	var path []edge
	for cur := to; cur != from; {
		e := parent[cur]
		path = append(path, e)
		cur = e.from
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}

// composePath folds the edge factors of a path into one factor.
func composePath(path []edge) ConversionFactor {
	f := Identity()
	for _, e := range path {
		f = f.Then(e.factor)
	}
	return f
}
