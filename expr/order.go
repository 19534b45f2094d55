// Package expr - elimination-order extraction.
//
// ExtractOrder walks an expression in post-order and records which indices
// each contraction step sums out. The emitted list is reversed before being
// returned, so order[0] is the index eliminated *last* (closest to the
// output/root). Downstream, the tree-decomposition builder consumes order[0]
// first; this convention keeps the decomposition root aligned with the
// expression's output indices.
package expr

import "sort"

// ExtractOrder returns the elimination order implied by e's structure.
//
// For each internal node (children before parent) the eliminated indices are
// the union of its operands' output indices minus the node's own output
// indices, emitted in ascending label order for stability. Leaves contribute
// nothing; a single-leaf expression yields an empty order.
//
// The function is pure and idempotent: calling it twice on an unmodified
// expression yields identical output.
//
// Contract:
//   - e must be non-nil (ErrNilExpression otherwise).
//
// Complexity: O(nodes · max arity · log) time, O(indices) space.
func ExtractOrder(e Expr) ([]Index, error) {
	if e == nil {
		return nil, ErrNilExpression
	}

	var order []Index
	if err := emitEliminated(e, &order); err != nil {
		return nil, err
	}

	// Reverse so the first entry is the index eliminated last.
	for l, r := 0, len(order)-1; l < r; l, r = l+1, r-1 {
		order[l], order[r] = order[r], order[l]
	}

	return order, nil
}

// emitEliminated appends the indices eliminated at each internal node of e,
// children before parent.
func emitEliminated(e Expr, order *[]Index) error {
	c, ok := e.(*Contract)
	if !ok {
		// Leaves eliminate nothing.
		return nil
	}

	var err error
	for _, a := range c.Args {
		if a == nil {
			return ErrNilExpression
		}
		if err = emitEliminated(a, order); err != nil {
			return err
		}
	}

	// Eliminated here = union(args' outputs) \ this node's output.
	keep := make(map[Index]struct{}, len(c.Out))
	for _, ix := range c.Out {
		keep[ix] = struct{}{}
	}

	var gone []Index
	for _, ix := range unionIxs(c.Args) {
		if _, ok = keep[ix]; !ok {
			gone = append(gone, ix)
		}
	}
	sort.Slice(gone, func(i, j int) bool { return gone[i] < gone[j] })

	*order = append(*order, gone...)

	return nil
}
