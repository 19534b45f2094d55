// Package contree - grouped-order assembly.
package contree

import (
	"sort"

	"github.com/katalvlaran/cotengo/expr"
)

// Assemble rebuilds a binary contraction tree from a grouped elimination
// order.
//
// groups is an ordered partition of eliminated indices (e.g. one group per
// slicing round, or one group per index). Each group resolves, through the
// incidence structure, to the leaf tensors reachable at that step in
// first-occurrence order; leaves already consumed by an earlier group are
// skipped. Per group, a pairwise-balanced binary tree is built over its
// leaves (merge adjacent pairs, carry an odd leftover unmerged to the next
// level), then the per-group trees are folded with the same combinator.
// Leaves reachable through no group (index-free scalars or indices missing
// from every group) are appended as one trailing group so leaf conservation
// holds unconditionally.
//
// Contract:
//   - groups non-empty (ErrEmptyOrder) and every group non-empty
//     (ErrEmptyGroup); at least one leaf must be reachable overall
//     (ErrEmptyOrder).
//
// Guarantee: the output tree's leaf set equals the set of leaf ids in inc,
// each appearing exactly once.
//
// Complexity: O(Σ group fan-out + leaves) time and space.
func Assemble(groups [][]expr.Index, inc expr.Incidence) (*Node, error) {
	if len(groups) == 0 {
		return nil, ErrEmptyOrder
	}

	consumed := make(map[int]struct{}, len(inc.LeafIxs))

	var (
		trees  []*Node
		leaves []*Node
		id     int
		ok     bool
	)
	for _, grp := range groups {
		if len(grp) == 0 {
			return nil, ErrEmptyGroup
		}
		leaves = leaves[:0]
		for _, ix := range grp {
			for _, id = range inc.IxLeaves[ix] {
				if _, ok = consumed[id]; ok {
					continue
				}
				consumed[id] = struct{}{}
				leaves = append(leaves, &Node{ID: id})
			}
		}
		if len(leaves) == 0 {
			// Every leaf of this group was merged by an earlier one.
			continue
		}
		trees = append(trees, pairwiseReduce(leaves))
	}

	// Trailing group: leaves no group ever reached.
	if len(consumed) < len(inc.LeafIxs) {
		rest := make([]int, 0, len(inc.LeafIxs)-len(consumed))
		for id = range inc.LeafIxs {
			if _, ok = consumed[id]; !ok {
				rest = append(rest, id)
			}
		}
		sort.Ints(rest)
		leaves = leaves[:0]
		for _, id = range rest {
			leaves = append(leaves, &Node{ID: id})
		}
		trees = append(trees, pairwiseReduce(leaves))
	}

	if len(trees) == 0 {
		return nil, ErrEmptyOrder
	}

	return pairwiseReduce(trees), nil
}

// pairwiseReduce folds nodes into one tree by repeated adjacent pairing:
// while more than one node remains, merge consecutive pairs left to right,
// carrying an odd trailing node unmerged to the next level. Depth stays
// within ceil(log2(len(nodes))).
//
// The input slice is consumed; callers must not reuse it.
//
// Complexity: O(len(nodes)).
func pairwiseReduce(nodes []*Node) *Node {
	if len(nodes) == 0 {
		return nil
	}

	var (
		w, i int
	)
	for len(nodes) > 1 {
		w = 0
		for i = 0; i+1 < len(nodes); i += 2 {
			nodes[w] = &Node{Left: nodes[i], Right: nodes[i+1]}
			w++
		}
		if i < len(nodes) {
			// Odd leftover rides up one level unmerged.
			nodes[w] = nodes[i]
			w++
		}
		nodes = nodes[:w]
	}

	return nodes[0]
}
