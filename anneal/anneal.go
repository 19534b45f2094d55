// Package anneal - the annealing search itself.
package anneal

import (
	"math"
	"math/rand"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/cotengo/contree"
	"github.com/katalvlaran/cotengo/expr"
	"github.com/katalvlaran/cotengo/indexgraph"
)

// Reorder implements refine.Reorderer: it perturbs e's contraction order by
// simulated annealing over the elimination order of its index graph and
// returns a binary expression realizing the best order found.
//
// Trial 0 starts from e's own elimination order, remaining trials from
// random shuffles; every trial runs on its own goroutine with an
// independent RNG stream, and a sequential reduction picks the winner by
// (SC, TC). An expression with no indices is returned unchanged.
//
// Contract:
//   - e non-nil (expr.ErrNilExpression); betas non-empty, positive,
//     ascending (ErrBadSchedule); ntrials, niters ≥ 1 (ErrBadBudget);
//     every index present in sizes (expr.ErrUnknownIndex).
//
// Deterministic for a fixed seed regardless of goroutine scheduling: trial
// streams are derived up front and the reduction is order-stable.
//
// Complexity: O(ntrials · len(betas) · niters · n²·d) time in the worst
// case, where n is the index count and d the largest bag size; O(ntrials·n)
// space.
func (a *Annealer) Reorder(e expr.Expr, sizes expr.SizeMap, betas []float64, ntrials, niters int, seed int64) (expr.Expr, error) {
	if e == nil {
		return nil, expr.ErrNilExpression
	}
	if err := validateSchedule(betas); err != nil {
		return nil, err
	}
	if ntrials < 1 || niters < 1 {
		return nil, ErrBadBudget
	}

	g, err := indexgraph.Build(e)
	if err != nil {
		return nil, err
	}
	if g.Order() == 0 {
		// Nothing to reorder; the expression is already canonical.
		return e, nil
	}

	inc, err := expr.NewIncidence(e)
	if err != nil {
		return nil, err
	}

	// Per-vertex log2 sizes; fail fast on a size-map miss.
	weights := make([]float64, g.Order())
	for v, ix := range g.Label {
		d, ok := sizes[ix]
		if !ok {
			return nil, expr.ErrUnknownIndex
		}
		weights[v] = math.Log2(float64(d))
	}

	base, err := baseOrder(e, g)
	if err != nil {
		return nil, err
	}

	// Independent trials, fork-join: each owns a copy of the order and an
	// RNG stream derived before launch; results land in per-trial slots.
	results := make([]trialResult, ntrials)
	var eg errgroup.Group
	for t := 0; t < ntrials; t++ {
		rng := rngFromSeed(trialSeed(seed, uint64(t)))
		ord := append([]int(nil), base...)
		if t > 0 {
			shuffleInPlace(ord, rng)
		}
		slot := &results[t]
		eg.Go(func() error {
			*slot = a.anneal(ord, g, weights, betas, niters, rng)

			return nil
		})
	}
	if err = eg.Wait(); err != nil {
		return nil, err
	}

	// Sequential min-reduction; never worse than the input's own order.
	best := trialResult{order: base}
	best.sc, best.tc = evalOrder(base, g, weights)
	for _, r := range results {
		if r.sc < best.sc || (r.sc == best.sc && r.tc < best.tc) {
			best = r
		}
	}

	return materialize(best.order, g, inc, e.OutIxs())
}

// trialResult is one trial's winning order and its measured complexities.
type trialResult struct {
	order []int
	sc    float64
	tc    float64
}

// anneal runs the Metropolis sweep schedule over ord in place and returns
// the best state visited. ord is owned by the caller goroutine.
func (a *Annealer) anneal(ord []int, g *indexgraph.Graph, weights, betas []float64, niters int, rng *rand.Rand) trialResult {
	n := len(ord)

	sc, tc := evalOrder(ord, g, weights)
	cur := a.energy(sc, tc)

	best := trialResult{order: append([]int(nil), ord...), sc: sc, tc: tc}
	if n < 2 {
		return best
	}

	var (
		p          int
		nsc, ntc   float64
		cand, diff float64
	)
	for _, beta := range betas {
		for it := 0; it < niters; it++ {
			// One sweep = n-1 proposed adjacent transpositions.
			for m := 0; m < n-1; m++ {
				p = rng.Intn(n - 1)
				ord[p], ord[p+1] = ord[p+1], ord[p]

				nsc, ntc = evalOrder(ord, g, weights)
				cand = a.energy(nsc, ntc)
				diff = cand - cur

				if diff <= 0 || rng.Float64() < math.Exp(-beta*diff) {
					cur = cand
					if nsc < best.sc || (nsc == best.sc && ntc < best.tc) {
						best.sc, best.tc = nsc, ntc
						copy(best.order, ord)
					}
				} else {
					// Reject: undo the transposition.
					ord[p], ord[p+1] = ord[p+1], ord[p]
				}
			}
		}
	}

	return best
}

// energy collapses (sc, tc) into the scalar the Metropolis rule compares.
func (a *Annealer) energy(sc, tc float64) float64 {
	return tc + a.scWeight*sc
}

// evalOrder streams the perfect elimination of ord over g and returns the
// order's space and time complexity in log2 units: SC is the heaviest bag
// (sum of member log2 sizes), TC folds the per-step contraction costs with
// a log-sum-exp.
//
// Complexity: O(n·d²) time per call, O(n·d) space.
func evalOrder(ord []int, g *indexgraph.Graph, weights []float64) (sc, tc float64) {
	n := len(ord)
	pos := make([]int, n)
	for i, v := range ord {
		pos[v] = i
	}

	adj := make([]map[int]struct{}, n)
	for _, v := range ord {
		nb := make(map[int]struct{})
		for _, u := range g.Neighbors(v) {
			nb[u] = struct{}{}
		}
		adj[v] = nb
	}

	sc = math.Inf(-1)
	steps := make([]float64, 0, n)

	var (
		i, v, u, w, j, k int
		rem              []int
		bagW             float64
	)
	for i = 0; i < n; i++ {
		v = ord[i]
		rem = rem[:0]
		for u = range adj[v] {
			if pos[u] > i {
				rem = append(rem, u)
			}
		}

		bagW = weights[v]
		for _, u = range rem {
			bagW += weights[u]
		}
		if bagW > sc {
			sc = bagW
		}
		steps = append(steps, bagW)

		for j = 0; j < len(rem); j++ {
			for k = j + 1; k < len(rem); k++ {
				u, w = rem[j], rem[k]
				adj[u][w] = struct{}{}
				adj[w][u] = struct{}{}
			}
		}
	}

	if len(steps) == 0 {
		return 0, math.Inf(-1)
	}
	scaled := make([]float64, len(steps))
	for i, x := range steps {
		scaled[i] = x * math.Ln2
	}
	tc = floats.LogSumExp(scaled) / math.Ln2

	return sc, tc
}

// baseOrder derives the starting vertex order from e: output-side indices
// first (ascending), then e's extracted elimination order. The result is a
// permutation of g's vertices.
func baseOrder(e expr.Expr, g *indexgraph.Graph) ([]int, error) {
	extracted, err := expr.ExtractOrder(e)
	if err != nil {
		return nil, err
	}
	tail, err := g.VertexOrder(extracted)
	if err != nil {
		return nil, err
	}

	inTail := make([]bool, g.Order())
	for _, v := range tail {
		inTail[v] = true
	}

	ord := make([]int, 0, g.Order())
	for v := 0; v < g.Order(); v++ {
		// Never-eliminated indices (the output) are consumed first, so the
		// decomposition root stays aligned with the expression's output.
		if !inTail[v] {
			ord = append(ord, v)
		}
	}
	ord = append(ord, tail...)

	return ord, nil
}

// materialize rebuilds a binary expression realizing ord: indices are
// grouped one per elimination step in contraction-time order (the reverse
// of the decomposition-consumption order) and handed to the assembler.
func materialize(ord []int, g *indexgraph.Graph, inc expr.Incidence, out []expr.Index) (expr.Expr, error) {
	labels, err := g.LabelOrder(ord)
	if err != nil {
		return nil, err
	}

	groups := make([][]expr.Index, 0, len(labels))
	for i := len(labels) - 1; i >= 0; i-- {
		groups = append(groups, []expr.Index{labels[i]})
	}

	tree, err := contree.Assemble(groups, inc)
	if err != nil {
		return nil, err
	}

	return contree.Express(tree, inc, out)
}

// validateSchedule enforces a non-empty, positive, strictly ascending
// β schedule.
//
// Complexity: O(len(betas)).
func validateSchedule(betas []float64) error {
	if len(betas) == 0 {
		return ErrBadSchedule
	}
	var prev float64
	for i, b := range betas {
		if b <= 0 || math.IsNaN(b) || math.IsInf(b, 0) {
			return ErrBadSchedule
		}
		if i > 0 && b <= prev {
			return ErrBadSchedule
		}
		prev = b
	}

	return nil
}
