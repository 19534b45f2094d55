// Package indexgraph - density-based structure estimation.
package indexgraph

// Density returns 2E / (V·(V−1)), the fraction of realized edges.
// Graphs with fewer than two vertices have density 0.
//
// Complexity: O(E).
func (g *Graph) Density() float64 {
	n := g.Order()
	if n < 2 {
		return 0
	}

	return 2 * float64(g.Size()) / (float64(n) * float64(n-1))
}

// EstimateStructure classifies g's density regime against the fixed
// thresholds:
//
//	density > DenseThreshold             → RankPreferred
//	SparseThreshold ≤ density ≤ Dense…   → ContextDependent
//	density < SparseThreshold            → TreePreferred
//
// The result is advisory: it helps a caller pick search-aggressiveness
// presets and never affects correctness of any contraction order.
//
// Complexity: O(E).
func EstimateStructure(g *Graph) Structure {
	if g == nil {
		return TreePreferred
	}

	d := g.Density()
	switch {
	case d > DenseThreshold:
		return RankPreferred
	case d < SparseThreshold:
		return TreePreferred
	default:
		return ContextDependent
	}
}
