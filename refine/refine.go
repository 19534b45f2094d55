// Package refine - the refinement round loop.
//
// State machine per call:
//
//	Initial → RoundInProgress → (Improved | Stagnant)
//	        → [more rounds? RoundInProgress : Reoptimize? EscalatedRound : Done]
//
// Acceptance rule: a candidate is adopted iff its space complexity fits the
// target budget AND it strictly improves the best seen (lower SC, or equal
// SC with lower TC). The escalated round drops the budget condition and
// adopts any strict improvement. The input expression is the floor: the
// returned result is never worse than what came in.
package refine

import (
	"math"

	"github.com/katalvlaran/cotengo/expr"
)

// Refine searches for a contraction order of e meeting scTarget (log2
// memory budget) with minimal time complexity.
//
// currentSC is the caller's best-known space complexity baseline (log2
// units); candidates must beat min(currentSC, score(e).SC) to be adopted.
// On exhausting cfg.MaxRounds without fitting the budget, and if
// cfg.Reoptimize holds, exactly one escalated round with widened parameters
// runs (cfg.Escalate, default DefaultEscalation).
//
// Contract:
//   - e non-nil, sizes covering every index (errors from expr.Score).
//   - r non-nil (ErrNilReorderer); cfg valid (ErrBadConfig).
//
// Budget-unmet is not an error: Result.MetTarget=false with the best-effort
// expression.
//
// Complexity: MaxRounds (+1 escalated) reorderer invocations plus one
// expression scoring per round.
func Refine(e expr.Expr, sizes expr.SizeMap, r Reorderer, cfg Config, scTarget, currentSC float64) (Result, error) {
	if e == nil {
		return Result{}, expr.ErrNilExpression
	}
	if r == nil {
		return Result{}, ErrNilReorderer
	}
	if err := validateConfig(cfg); err != nil {
		return Result{}, err
	}

	base, err := expr.Score(e, sizes)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Expr: e,
		TC:   base.TC,
		SC:   math.Min(currentSC, base.SC),
	}

	var (
		round int
		cand  expr.Expr
		cc    expr.Complexity
	)
	for round = 1; round <= cfg.MaxRounds; round++ {
		cand, err = r.Reorder(res.Expr, sizes, cfg.Betas, cfg.NTrials, cfg.NIters, roundSeed(cfg.Seed, uint64(round)))
		if err != nil {
			return Result{}, err
		}
		res.Rounds++

		if cc, err = expr.Score(cand, sizes); err != nil {
			return Result{}, err
		}

		// Adopt only candidates inside the budget that strictly improve.
		if cc.SC <= scTarget && improves(cc, res) {
			res.Expr, res.SC, res.TC = cand, cc.SC, cc.TC
		}
	}

	// One escalated retry when the budget was never met.
	if res.SC > scTarget && cfg.Reoptimize {
		esc := cfg.Escalate
		if esc == nil {
			esc = DefaultEscalation
		}
		wide := esc(cfg)
		if err = validateConfig(wide); err != nil {
			return Result{}, err
		}

		cand, err = r.Reorder(res.Expr, sizes, wide.Betas, wide.NTrials, wide.NIters, roundSeed(cfg.Seed, uint64(cfg.MaxRounds+1)))
		if err != nil {
			return Result{}, err
		}
		res.Escalated = true

		if cc, err = expr.Score(cand, sizes); err != nil {
			return Result{}, err
		}
		// Escalation adopts the best seen regardless of the budget.
		if improves(cc, res) {
			res.Expr, res.SC, res.TC = cand, cc.SC, cc.TC
		}
	}

	res.MetTarget = res.SC <= scTarget

	return res, nil
}

// improves reports whether cand strictly beats the running best:
// lower space complexity, or equal space with lower time complexity.
func improves(cand expr.Complexity, best Result) bool {
	if cand.SC < best.SC {
		return true
	}

	return cand.SC == best.SC && cand.TC < best.TC
}

// DefaultEscalation derives the conventional widened retry configuration:
// the β schedule is re-sampled at half the base step (finer cooling), plus
// two extra trials and ten extra iterations.
func DefaultEscalation(cfg Config) Config {
	out := cfg
	out.NTrials = cfg.NTrials + 2
	out.NIters = cfg.NIters + 10

	if n := len(cfg.Betas); n >= 2 {
		lo, hi := cfg.Betas[0], cfg.Betas[n-1]
		step := (hi - lo) / float64(n-1) / 2
		if step > 0 {
			out.Betas = BetaRange(lo, hi, step)
		}
	}

	return out
}

// roundSeed derives a per-round seed from the base seed via a
// SplitMix64-style finalizer, so rounds explore distinct random streams
// while staying reproducible. Seed 0 maps to a fixed default.
func roundSeed(seed int64, round uint64) int64 {
	if seed == 0 {
		seed = 1
	}
	x := uint64(seed) ^ (round + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}
