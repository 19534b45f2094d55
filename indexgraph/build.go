// Package indexgraph - graph construction and read accessors.
package indexgraph

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/katalvlaran/cotengo/expr"
)

// Build derives the index co-occurrence graph of e.
//
// Vertices: one per unique index label, numbered 0..n-1 by ascending label.
// Edges: every pair of indices appearing together in a single leaf's index
// list or in the expression's output list. No self-loops; parallel
// co-occurrences collapse into one edge.
//
// An expression whose leaves carry no indices yields a valid empty graph.
//
// Contract:
//   - e must be non-nil and structurally sound (expr.Leaves' contracts).
//
// Complexity: O(Σ arity²) time over all operands, O(V + E) space.
func Build(e expr.Expr) (*Graph, error) {
	if e == nil {
		return nil, expr.ErrNilExpression
	}
	leaves, err := expr.Leaves(e)
	if err != nil {
		return nil, err
	}

	// Stage 1: collect unique labels from every operand and the output.
	seen := make(map[expr.Index]struct{})
	var labels []expr.Index
	collect := func(ixs []expr.Index) {
		for _, ix := range ixs {
			if _, ok := seen[ix]; !ok {
				seen[ix] = struct{}{}
				labels = append(labels, ix)
			}
		}
	}
	for _, l := range leaves {
		collect(l.Ixs)
	}
	collect(e.OutIxs())

	// Stage 2: stable numbering by ascending label.
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })

	g := &Graph{
		Vertex: make(map[expr.Index]int, len(labels)),
		Label:  labels,
		und:    simple.NewUndirectedGraph(),
	}
	for v, ix := range labels {
		g.Vertex[ix] = v
		g.und.AddNode(simple.Node(v))
	}

	// Stage 3: clique per co-occurrence group.
	for _, l := range leaves {
		g.addClique(l.Ixs)
	}
	g.addClique(e.OutIxs())

	return g, nil
}

// addClique connects all pairs of ixs, skipping self-loops and duplicates.
func (g *Graph) addClique(ixs []expr.Index) {
	var (
		i, j, u, v int
	)
	for i = 0; i < len(ixs); i++ {
		u = g.Vertex[ixs[i]]
		for j = i + 1; j < len(ixs); j++ {
			v = g.Vertex[ixs[j]]
			if u == v || g.und.HasEdgeBetween(int64(u), int64(v)) {
				continue
			}
			g.und.SetEdge(simple.Edge{F: simple.Node(u), T: simple.Node(v)})
		}
	}
}

// Order returns the vertex count.
func (g *Graph) Order() int { return len(g.Label) }

// Size returns the edge count.
func (g *Graph) Size() int {
	var m int
	for it := g.und.Edges(); it.Next(); {
		m++
	}

	return m
}

// HasEdge reports whether vertices u and v are adjacent.
// Out-of-range ids report false.
func (g *Graph) HasEdge(u, v int) bool {
	n := g.Order()
	if u < 0 || u >= n || v < 0 || v >= n || u == v {
		return false
	}

	return g.und.HasEdgeBetween(int64(u), int64(v))
}

// Neighbors returns v's adjacent vertex ids in ascending order.
// Out-of-range ids yield nil.
func (g *Graph) Neighbors(v int) []int {
	if v < 0 || v >= g.Order() {
		return nil
	}
	var out []int
	for it := g.und.From(int64(v)); it.Next(); {
		out = append(out, int(it.Node().ID()))
	}
	sort.Ints(out)

	return out
}

// Connected reports whether the graph has at most one component.
// The empty graph counts as connected.
func (g *Graph) Connected() bool {
	n := g.Order()
	if n <= 1 {
		return true
	}

	return len(componentOf(g, 0)) == n
}

// Components returns the vertex sets of all connected components, each
// sorted ascending, ordered by their smallest vertex.
func (g *Graph) Components() [][]int {
	n := g.Order()
	assigned := make([]bool, n)

	var comps [][]int
	for v := 0; v < n; v++ {
		if assigned[v] {
			continue
		}
		comp := componentOf(g, v)
		for _, u := range comp {
			assigned[u] = true
		}
		comps = append(comps, comp)
	}

	return comps
}

// componentOf returns the sorted component containing start (BFS).
func componentOf(g *Graph, start int) []int {
	visited := map[int]struct{}{start: {}}
	queue := []int{start}

	var v int
	for len(queue) > 0 {
		v, queue = queue[0], queue[1:]
		for _, u := range g.Neighbors(v) {
			if _, ok := visited[u]; !ok {
				visited[u] = struct{}{}
				queue = append(queue, u)
			}
		}
	}

	comp := make([]int, 0, len(visited))
	for v = range visited {
		comp = append(comp, v)
	}
	sort.Ints(comp)

	return comp
}
