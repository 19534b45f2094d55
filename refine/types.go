// Package refine drives iterative contraction-order refinement: it calls a
// stochastic reordering primitive round after round, adopting candidates
// that fit a space-complexity budget and improve on the best seen, and
// performs one escalated retry with widened search parameters when the
// budget was never met.
//
// The reordering primitive itself is a collaborator behind the Reorderer
// interface (package anneal ships the default); this package only
// orchestrates how often and with which parameters it runs.
//
// Errors (sentinel):
//
//	– ErrNilReorderer if no reordering primitive is supplied.
//	– ErrBadConfig    if the configuration is internally inconsistent.
//
// A round sequence that never meets the budget is NOT an error: the best
// expression found (possibly the input, unchanged) comes back with
// MetTarget=false, and the caller decides whether to accept, re-slice, or
// escalate further.
package refine

import (
	"errors"

	"github.com/katalvlaran/cotengo/expr"
)

// Sentinel errors returned by the refine package.
var (
	// ErrNilReorderer indicates a nil Reorderer was supplied.
	ErrNilReorderer = errors.New("refine: reorderer is nil")

	// ErrBadConfig indicates an internally inconsistent Config.
	ErrBadConfig = errors.New("refine: invalid configuration")
)

// Reorderer is the stochastic contraction-reordering primitive: given an
// expression and a size map it returns a candidate expression over the same
// leaves and the same summation set, searched under the given temperature
// schedule (betas), number of independent trials and iterations per trial.
// seed makes the search reproducible; implementations must be deterministic
// for a fixed seed.
type Reorderer interface {
	Reorder(e expr.Expr, sizes expr.SizeMap, betas []float64, ntrials, niters int, seed int64) (expr.Expr, error)
}

// Config holds the refinement search parameters. It is immutable by
// convention: Refine never mutates it, and escalation produces a derived
// copy via the Escalate hook.
type Config struct {
	// Betas is the annealing temperature schedule (inverse temperatures,
	// ascending). Passed through to the Reorderer.
	Betas []float64

	// NTrials is the number of independent restarts per round.
	NTrials int

	// NIters is the number of iterations (sweeps) per trial.
	NIters int

	// MaxRounds bounds the number of base refinement rounds.
	MaxRounds int

	// Reoptimize enables one escalated round with widened parameters when
	// no base round meets the space-complexity target.
	Reoptimize bool

	// Bipartite reserves a future bipartition-aware search mode.
	// Currently unread.
	Bipartite bool

	// Seed drives per-round seed derivation; 0 selects a fixed default so
	// results stay reproducible.
	Seed int64

	// Escalate derives the widened configuration for the escalated round.
	// Nil selects DefaultEscalation.
	Escalate func(Config) Config
}

// Option is a functional option over Config.
type Option func(*Config)

// Default search parameters. Conventional values for medium tensor
// networks; override per instance via options.
const (
	defaultBetaMin  = 0.1
	defaultBetaMax  = 10.0
	defaultBetaStep = 0.5
	defaultNTrials  = 4
	defaultNIters   = 20
	defaultRounds   = 3
)

// DefaultConfig returns a Config with conventional defaults: a 0.1..10
// β schedule with step 0.5, 4 trials, 20 iterations, 3 rounds, escalated
// re-optimization enabled.
func DefaultConfig(opts ...Option) Config {
	cfg := Config{
		Betas:      BetaRange(defaultBetaMin, defaultBetaMax, defaultBetaStep),
		NTrials:    defaultNTrials,
		NIters:     defaultNIters,
		MaxRounds:  defaultRounds,
		Reoptimize: true,
	}
	for _, o := range opts {
		o(&cfg)
	}

	return cfg
}

// BetaRange returns the ascending schedule lo, lo+step, … capped at hi.
// Returns nil on a non-positive step or an empty range.
func BetaRange(lo, hi, step float64) []float64 {
	if step <= 0 || hi < lo {
		return nil
	}
	var betas []float64
	for b := lo; b <= hi+1e-12; b += step {
		betas = append(betas, b)
	}

	return betas
}

// WithBetas sets the temperature schedule.
func WithBetas(betas []float64) Option {
	return func(c *Config) { c.Betas = betas }
}

// WithTrials sets the number of independent restarts per round.
func WithTrials(n int) Option {
	return func(c *Config) { c.NTrials = n }
}

// WithIters sets the iterations per trial.
func WithIters(n int) Option {
	return func(c *Config) { c.NIters = n }
}

// WithRounds sets the number of base refinement rounds.
func WithRounds(n int) Option {
	return func(c *Config) { c.MaxRounds = n }
}

// WithReoptimize toggles the escalated retry on stagnation.
func WithReoptimize(on bool) Option {
	return func(c *Config) { c.Reoptimize = on }
}

// WithSeed sets the base seed (0 keeps the reproducible default stream).
func WithSeed(seed int64) Option {
	return func(c *Config) { c.Seed = seed }
}

// WithEscalation replaces the escalation hook (nil restores the default).
func WithEscalation(fn func(Config) Config) Option {
	return func(c *Config) { c.Escalate = fn }
}

// Result is the outcome of one Refine call. Budget-unmet states propagate
// here as data, never as an error.
type Result struct {
	// Expr is the best expression found; the input itself when no round
	// improved on it.
	Expr expr.Expr

	// TC and SC are the returned expression's complexities (log2 units).
	TC float64
	SC float64

	// Rounds is the number of base rounds executed.
	Rounds int

	// Escalated reports whether the escalated round ran.
	Escalated bool

	// MetTarget reports whether the final SC is within the requested budget.
	MetTarget bool
}
