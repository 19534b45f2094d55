// Package contree - materializing a contraction tree as an expression.
package contree

import (
	"sort"

	"github.com/katalvlaran/cotengo/expr"
)

// Express materializes a binary contraction tree as an expr.Expr.
//
// Each leaf becomes an expr.Leaf with the index labels the incidence
// records for it. Each internal node becomes a binary expr.Contract whose
// output indices are exactly those of its subtree that still matter
// upstream: an index survives a node if it also occurs on a leaf outside
// the subtree or belongs to out (the expression's final output). The root
// node's output is out itself, order preserved.
//
// Contract:
//   - n non-nil with ≥1 leaf; every leaf id present in inc (ErrUnknownLeaf).
//   - every label in out must occur on some leaf (ErrUnknownIndex).
//
// The produced expression is numerically equivalent to any other expression
// over the same leaves and output: only the association of pairwise
// contractions differs, never the summation set.
//
// Complexity: O(nodes · indices) time in the worst case.
func Express(n *Node, inc expr.Incidence, out []expr.Index) (expr.Expr, error) {
	if n == nil {
		return nil, expr.ErrNilExpression
	}

	// Total occurrences per index across all leaves of the tree; an index
	// is "alive" at a node while occurrences outside the subtree remain.
	total := make(map[expr.Index]int)
	for _, id := range Leaves(n) {
		ixs, ok := inc.LeafIxs[id]
		if !ok {
			return nil, ErrUnknownLeaf
		}
		for _, ix := range ixs {
			total[ix]++
		}
	}

	keep := make(map[expr.Index]struct{}, len(out))
	for _, ix := range out {
		if _, ok := total[ix]; !ok {
			return nil, ErrUnknownIndex
		}
		keep[ix] = struct{}{}
	}

	e, _, err := express(n, inc, total, keep)
	if err != nil {
		return nil, err
	}

	// Pin the root's output to the caller's order.
	if c, ok := e.(*expr.Contract); ok {
		c.Out = append([]expr.Index(nil), out...)
	}

	return e, nil
}

// express builds the expression for n's subtree and returns the occurrence
// count of each index inside it.
func express(n *Node, inc expr.Incidence, total map[expr.Index]int, keep map[expr.Index]struct{}) (expr.Expr, map[expr.Index]int, error) {
	if n.IsLeaf() {
		ixs, ok := inc.LeafIxs[n.ID]
		if !ok {
			return nil, nil, ErrUnknownLeaf
		}
		cnt := make(map[expr.Index]int, len(ixs))
		for _, ix := range ixs {
			cnt[ix]++
		}
		leafIxs := append([]expr.Index(nil), ixs...)

		return &expr.Leaf{ID: n.ID, Ixs: leafIxs}, cnt, nil
	}

	le, lc, err := express(n.Left, inc, total, keep)
	if err != nil {
		return nil, nil, err
	}
	re, rc, err := express(n.Right, inc, total, keep)
	if err != nil {
		return nil, nil, err
	}

	// Merge occurrence counts; reuse the larger side's map.
	if len(lc) < len(rc) {
		lc, rc = rc, lc
	}
	for ix, c := range rc {
		lc[ix] += c
	}

	// Survivors: seen inside, still referenced outside or kept for output.
	var outIxs []expr.Index
	for ix, c := range lc {
		if _, pinned := keep[ix]; pinned || c < total[ix] {
			outIxs = append(outIxs, ix)
		}
	}
	sort.Slice(outIxs, func(i, j int) bool { return outIxs[i] < outIxs[j] })

	return &expr.Contract{Args: []expr.Expr{le, re}, Out: outIxs}, lc, nil
}
