// Package indexgraph builds and queries the index co-occurrence graph of a
// tensor-contraction expression.
//
// Vertices are the expression's unique index labels, numbered 0..n-1 in
// ascending label order; an edge connects two indices that co-occur in some
// tensor operand's index list or in the final output list. The graph is the
// structural substrate for tree decomposition and order refinement.
//
// The vertex numbering is explicit and caller-visible: Graph carries both
// directions of the index↔vertex map and every function that consumes or
// produces vertex ids threads them through these maps. The underlying
// gonum container never leaks past this package.
//
// Errors (sentinel):
//
//	– ErrNilGraph     if a nil *Graph is passed where one is required.
//	– ErrUnknownIndex if an index label has no vertex in the graph.
package indexgraph

import (
	"errors"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/katalvlaran/cotengo/expr"
)

// Sentinel errors returned by the indexgraph package.
var (
	// ErrNilGraph indicates a nil *Graph was passed where one is required.
	ErrNilGraph = errors.New("indexgraph: graph is nil")

	// ErrUnknownIndex indicates an index label with no vertex in the graph.
	ErrUnknownIndex = errors.New("indexgraph: index not present in graph")
)

// Graph is a simple undirected graph over tensor indices together with the
// explicit vertex-numbering maps. Read-only after Build.
type Graph struct {
	// Vertex maps an index label to its vertex id in 0..n-1.
	Vertex map[expr.Index]int

	// Label maps a vertex id back to its index label (Label[Vertex[ix]]==ix).
	Label []expr.Index

	und *simple.UndirectedGraph
}

// Structure is the advisory classification of a graph's density regime,
// used by callers to pick search-aggressiveness presets. It carries no
// correctness weight.
type Structure int

const (
	// TreePreferred marks sparse graphs (density < SparseThreshold) where
	// tree-width-oriented orders tend to win.
	TreePreferred Structure = iota

	// ContextDependent marks the middle band where neither regime clearly
	// dominates and callers should probe both.
	ContextDependent

	// RankPreferred marks dense graphs (density > DenseThreshold) where
	// rank-width-friendly orders tend to win.
	RankPreferred
)

// String implements fmt.Stringer for diagnostics.
func (s Structure) String() string {
	switch s {
	case TreePreferred:
		return "tree-preferred"
	case ContextDependent:
		return "context-dependent"
	case RankPreferred:
		return "rank-preferred"
	default:
		return "unknown"
	}
}

// Density thresholds for EstimateStructure. These are tuned heuristics, not
// contractual boundaries; adjust per workload if profiling suggests so.
const (
	// DenseThreshold is the density above which a graph classifies RankPreferred.
	DenseThreshold = 0.3

	// SparseThreshold is the density below which a graph classifies TreePreferred.
	SparseThreshold = 0.1
)
