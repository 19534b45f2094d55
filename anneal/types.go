// Package anneal is the default stochastic reordering primitive behind
// refine.Reorderer: a temperature-scheduled local search over elimination
// orders of an expression's index graph.
//
// Search model:
//
//   - State: a vertex elimination order (permutation).
//   - Energy: TC + SCWeight·SC, both measured by streaming the perfect
//     elimination of the order and weighting bags with log2 index sizes.
//   - Moves: random adjacent transpositions, Metropolis-accepted at each
//     inverse temperature β of the schedule.
//   - Restarts: ntrials independent trials, each with its own derived RNG
//     stream, run in parallel and reduced sequentially to the minimum.
//
// The winning order is materialized back into a binary expression through
// the contraction-tree assembler, so the result contracts exactly the same
// summation set as the input: only the association of pairwise steps moves.
//
// Errors (sentinel):
//
//	– ErrBadSchedule if the β schedule is empty, non-positive, or descending.
//	– ErrBadBudget   if ntrials or niters is below 1.
package anneal

import "errors"

// Sentinel errors returned by the anneal package.
var (
	// ErrBadSchedule indicates an empty, non-positive, or non-ascending
	// β schedule.
	ErrBadSchedule = errors.New("anneal: invalid beta schedule")

	// ErrBadBudget indicates ntrials or niters below 1.
	ErrBadBudget = errors.New("anneal: ntrials and niters must be >= 1")
)

// defaultSCWeight balances space against time complexity in the scalar
// energy. 1.0 treats one log2 unit of memory as one log2 unit of work.
const defaultSCWeight = 1.0

// Annealer is a reusable, immutable reorderer. Safe for concurrent use:
// all per-call state lives on the stack of Reorder.
type Annealer struct {
	scWeight float64
}

// Option is a functional option over Annealer construction.
type Option func(*Annealer)

// New returns an Annealer with the given options applied.
func New(opts ...Option) *Annealer {
	a := &Annealer{scWeight: defaultSCWeight}
	for _, o := range opts {
		o(a)
	}

	return a
}

// WithSCWeight sets the space-complexity weight in the scalar energy.
// Non-positive values are ignored (the default stands).
func WithSCWeight(w float64) Option {
	return func(a *Annealer) {
		if w > 0 {
			a.scWeight = w
		}
	}
}
