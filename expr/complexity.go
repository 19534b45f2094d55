// Package expr - complexity scoring.
//
// Score computes the two cost figures of a contraction expression against a
// size map, both in log2 units:
//
//   - SC (space complexity) — log2 of the peak tensor size across the tree,
//     i.e. the maximum over all nodes of Σ log2(size) of the node's output
//     indices. Leaf tensors count: the inputs live in memory too.
//   - TC (time complexity)  — log2 of the total arithmetic operation count:
//     each internal node contributes 2^(Σ log2 size over the union of its
//     operands' indices) element operations; contributions are folded with
//     a numerically stable log-sum-exp.
//
// Design:
//   - Pure, side-effect free; the expression is never mutated.
//   - Strict sentinels: an index absent from the SizeMap is ErrUnknownIndex.
//   - Stable across platforms: folding goes through gonum's LogSumExp.
package expr

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Score computes the Complexity of e under sizes.
//
// Contract:
//   - e non-nil (ErrNilExpression), every index present in sizes
//     (ErrUnknownIndex), all dimensions ≥ 1.
//   - A single-leaf expression has TC = -Inf (no operations) and SC equal to
//     the leaf's own log2 size.
//
// Complexity: O(nodes · max arity) time, O(nodes) space.
func Score(e Expr, sizes SizeMap) (Complexity, error) {
	if e == nil {
		return Complexity{}, ErrNilExpression
	}

	acc := scoreAcc{sizes: sizes, sc: math.Inf(-1)}
	if err := acc.visit(e); err != nil {
		return Complexity{}, err
	}

	tc := math.Inf(-1)
	if len(acc.steps) > 0 {
		tc = log2SumExp2(acc.steps)
	}

	return Complexity{TC: tc, SC: acc.sc}, nil
}

// scoreAcc accumulates per-node contributions during the post-order walk.
type scoreAcc struct {
	sizes SizeMap
	sc    float64   // running max of per-node output weights
	steps []float64 // per-internal-node log2 operation counts
}

// visit scores node e and recurses into its children first.
func (a *scoreAcc) visit(e Expr) error {
	var (
		w   float64
		err error
	)

	switch n := e.(type) {
	case *Leaf:
		if w, err = a.weight(n.Ixs); err != nil {
			return err
		}
		if w > a.sc {
			a.sc = w
		}

	case *Contract:
		for _, arg := range n.Args {
			if arg == nil {
				return ErrNilExpression
			}
			if err = a.visit(arg); err != nil {
				return err
			}
		}

		// Output weight bounds the intermediate produced at this node.
		if w, err = a.weight(n.Out); err != nil {
			return err
		}
		if w > a.sc {
			a.sc = w
		}

		// Operation count spans the union of the operands' indices.
		if w, err = a.weight(unionIxs(n.Args)); err != nil {
			return err
		}
		a.steps = append(a.steps, w)

	default:
		return ErrNilExpression
	}

	return nil
}

// weight returns Σ log2(size) over ixs; 0 for an empty list (a scalar).
func (a *scoreAcc) weight(ixs []Index) (float64, error) {
	var (
		w  float64
		d  int64
		ok bool
	)
	for _, ix := range ixs {
		if d, ok = a.sizes[ix]; !ok {
			return 0, ErrUnknownIndex
		}
		w += math.Log2(float64(d))
	}

	return w, nil
}

// log2SumExp2 returns log2(Σ 2^x_i) via the natural-log LogSumExp.
func log2SumExp2(xs []float64) float64 {
	scaled := make([]float64, len(xs))
	for i, x := range xs {
		scaled[i] = x * math.Ln2
	}

	return floats.LogSumExp(scaled) / math.Ln2
}
