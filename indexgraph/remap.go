// Package indexgraph - order remapping between graph generations.
//
// After slicing removes vertices (or a graph is otherwise relabeled), an
// elimination order computed on the old graph can be reused on the residual
// graph without recomputation: survivors keep their relative order, removed
// vertices drop out.
package indexgraph

import "github.com/katalvlaran/cotengo/expr"

// RemapOrder maps oldOrder onto a reduced/relabeled graph.
//
// vmap is an injective partial map old-id → new-id; vertices absent from
// vmap are dropped, survivors are emitted in their original relative order
// under their new ids.
//
// Pure; the inputs are never mutated.
//
// Complexity: O(len(oldOrder)) time, O(survivors) space.
func RemapOrder(oldOrder []int, vmap map[int]int) []int {
	out := make([]int, 0, len(oldOrder))

	var (
		v, nv int
		ok    bool
	)
	for _, v = range oldOrder {
		if nv, ok = vmap[v]; ok {
			out = append(out, nv)
		}
	}

	return out
}

// IdentityMap returns the identity vertex map over 0..n-1.
// Convenience for callers that relabel nothing.
//
// Complexity: O(n).
func IdentityMap(n int) map[int]int {
	m := make(map[int]int, n)
	for v := 0; v < n; v++ {
		m[v] = v
	}

	return m
}

// VertexOrder translates an index-label order into vertex ids under g's
// numbering. An unknown label yields ErrUnknownIndex.
//
// Complexity: O(len(ixOrder)).
func (g *Graph) VertexOrder(ixOrder []expr.Index) ([]int, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	out := make([]int, len(ixOrder))

	var (
		v  int
		ok bool
	)
	for i, ix := range ixOrder {
		if v, ok = g.Vertex[ix]; !ok {
			return nil, ErrUnknownIndex
		}
		out[i] = v
	}

	return out, nil
}

// LabelOrder translates a vertex-id order back into index labels.
// An out-of-range id yields ErrUnknownIndex.
//
// Complexity: O(len(vOrder)).
func (g *Graph) LabelOrder(vOrder []int) ([]expr.Index, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	out := make([]expr.Index, len(vOrder))
	for i, v := range vOrder {
		if v < 0 || v >= len(g.Label) {
			return nil, ErrUnknownIndex
		}
		out[i] = g.Label[v]
	}

	return out, nil
}
