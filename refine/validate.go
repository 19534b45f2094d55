// Package refine - configuration validation.
//
// Deterministic, side-effect free checks; only sentinel errors, wrapped with
// detail at the option boundary.
package refine

import "fmt"

// validateConfig checks internal consistency of cfg.
//
// Rules:
//   - Betas non-empty, strictly positive, ascending.
//   - NTrials, NIters, MaxRounds ≥ 1.
//
// Complexity: O(len(Betas)).
func validateConfig(cfg Config) error {
	if len(cfg.Betas) == 0 {
		return fmt.Errorf("%w: empty beta schedule", ErrBadConfig)
	}

	var prev float64
	for i, b := range cfg.Betas {
		if b <= 0 {
			return fmt.Errorf("%w: beta[%d]=%v must be positive", ErrBadConfig, i, b)
		}
		if i > 0 && b <= prev {
			return fmt.Errorf("%w: beta schedule must be strictly ascending", ErrBadConfig)
		}
		prev = b
	}

	if cfg.NTrials < 1 {
		return fmt.Errorf("%w: NTrials=%d must be >= 1", ErrBadConfig, cfg.NTrials)
	}
	if cfg.NIters < 1 {
		return fmt.Errorf("%w: NIters=%d must be >= 1", ErrBadConfig, cfg.NIters)
	}
	if cfg.MaxRounds < 1 {
		return fmt.Errorf("%w: MaxRounds=%d must be >= 1", ErrBadConfig, cfg.MaxRounds)
	}

	return nil
}
