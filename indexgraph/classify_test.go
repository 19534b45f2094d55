// Package indexgraph_test - density classifier boundary cases.
package indexgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cotengo/expr"
	"github.com/katalvlaran/cotengo/indexgraph"
)

// completeNetwork puts n indices on one leaf: its co-occurrence graph is K_n.
func completeNetwork(n int) expr.Expr {
	ixs := make([]expr.Index, n)
	for i := range ixs {
		ixs[i] = expr.Index(i + 1)
	}

	return &expr.Contract{
		Args: []expr.Expr{&expr.Leaf{ID: 0, Ixs: ixs}},
		Out:  nil,
	}
}

// isolatedNetwork gives each of n leaves its own index: no edges at all.
func isolatedNetwork(n int) expr.Expr {
	args := make([]expr.Expr, n)
	for i := range args {
		args[i] = &expr.Leaf{ID: i, Ixs: []expr.Index{expr.Index(i + 1)}}
	}

	return &expr.Contract{Args: args, Out: nil}
}

// starNetwork builds a star: one center index co-occurring pairwise with
// n-1 satellite indices.
func starNetwork(n int) expr.Expr {
	const center expr.Index = 1
	args := make([]expr.Expr, 0, n-1)
	for i := 1; i < n; i++ {
		args = append(args, &expr.Leaf{ID: i, Ixs: []expr.Index{center, expr.Index(i + 1)}})
	}

	return &expr.Contract{Args: args, Out: nil}
}

func TestEstimateStructure_CompleteGraphRankPreferred(t *testing.T) {
	g, err := indexgraph.Build(completeNetwork(10))
	require.NoError(t, err)

	assert.InDelta(t, 1.0, g.Density(), 1e-12)
	assert.Equal(t, indexgraph.RankPreferred, indexgraph.EstimateStructure(g))
}

func TestEstimateStructure_EmptyGraphTreePreferred(t *testing.T) {
	g, err := indexgraph.Build(isolatedNetwork(10))
	require.NoError(t, err)

	assert.Zero(t, g.Density())
	assert.Equal(t, indexgraph.TreePreferred, indexgraph.EstimateStructure(g))
}

func TestEstimateStructure_StarContextDependent(t *testing.T) {
	// Star on 10 vertices: density 2·9/(10·9) = 0.2, inside the middle band.
	g, err := indexgraph.Build(starNetwork(10))
	require.NoError(t, err)

	assert.InDelta(t, 0.2, g.Density(), 1e-12)
	assert.Equal(t, indexgraph.ContextDependent, indexgraph.EstimateStructure(g))
}

func TestEstimateStructure_NilGraph(t *testing.T) {
	assert.Equal(t, indexgraph.TreePreferred, indexgraph.EstimateStructure(nil))
}

func TestStructure_String(t *testing.T) {
	assert.Equal(t, "rank-preferred", indexgraph.RankPreferred.String())
	assert.Equal(t, "context-dependent", indexgraph.ContextDependent.String())
	assert.Equal(t, "tree-preferred", indexgraph.TreePreferred.String())
}
