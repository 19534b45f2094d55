// Package expr - structural helpers over expression trees.
//
// This file provides leaf enumeration and the incidence structure: the
// bidirectional mapping between leaf tensors and the index labels touching
// them. Both are pure derivations; the expression is never mutated.
package expr

import "sort"

// Leaves returns the expression's leaf nodes in post-order (left to right).
//
// Contract:
//   - e must be non-nil; nil yields ErrNilExpression.
//
// Complexity: O(nodes) time, O(leaves) space.
func Leaves(e Expr) ([]*Leaf, error) {
	if e == nil {
		return nil, ErrNilExpression
	}
	var out []*Leaf
	if err := walkLeaves(e, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// walkLeaves appends e's leaves to out in post-order.
func walkLeaves(e Expr, out *[]*Leaf) error {
	switch n := e.(type) {
	case *Leaf:
		*out = append(*out, n)
	case *Contract:
		var err error
		for _, a := range n.Args {
			if a == nil {
				return ErrNilExpression
			}
			if err = walkLeaves(a, out); err != nil {
				return err
			}
		}
	}

	return nil
}

// Incidence maps leaf tensors to the index labels touching them and back.
// Both directions use deterministic slice order: LeafIxs preserves each
// leaf's storage order, IxLeaves lists leaf ids ascending.
// Read-only after construction.
type Incidence struct {
	// LeafIxs maps a leaf tensor id to its index labels.
	LeafIxs map[int][]Index

	// IxLeaves maps an index label to the leaf ids it touches.
	IxLeaves map[Index][]int
}

// NewIncidence derives the incidence structure of e.
//
// Contract:
//   - e must contain at least one leaf (ErrNoLeaves otherwise).
//   - leaf ids must be unique (ErrDuplicateLeaf otherwise).
//
// Complexity: O(Σ leaf arity · log) time, O(Σ leaf arity) space
// (the log factor comes from sorting each index's leaf list).
func NewIncidence(e Expr) (Incidence, error) {
	leaves, err := Leaves(e)
	if err != nil {
		return Incidence{}, err
	}
	if len(leaves) == 0 {
		return Incidence{}, ErrNoLeaves
	}

	inc := Incidence{
		LeafIxs:  make(map[int][]Index, len(leaves)),
		IxLeaves: make(map[Index][]int),
	}

	var (
		l  *Leaf
		ix Index
		ok bool
	)
	for _, l = range leaves {
		if _, ok = inc.LeafIxs[l.ID]; ok {
			return Incidence{}, ErrDuplicateLeaf
		}
		// Copy to decouple the incidence from later mutations of the leaf.
		ixs := make([]Index, len(l.Ixs))
		copy(ixs, l.Ixs)
		inc.LeafIxs[l.ID] = ixs

		for _, ix = range l.Ixs {
			inc.IxLeaves[ix] = append(inc.IxLeaves[ix], l.ID)
		}
	}

	// Canonical ascending order per index; append order above follows
	// post-order leaf discovery, which is stable but not sorted.
	for ix = range inc.IxLeaves {
		sort.Ints(inc.IxLeaves[ix])
	}

	return inc, nil
}

// unionIxs returns the sorted union of the arguments' output indices.
//
// Complexity: O(k log k) where k is the total arity of args.
func unionIxs(args []Expr) []Index {
	seen := make(map[Index]struct{})
	var u []Index
	for _, a := range args {
		for _, ix := range a.OutIxs() {
			if _, ok := seen[ix]; !ok {
				seen[ix] = struct{}{}
				u = append(u, ix)
			}
		}
	}
	sort.Slice(u, func(i, j int) bool { return u[i] < u[j] })

	return u
}
