// Package contree_test - materialization contracts and order round-trips.
package contree_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cotengo/contree"
	"github.com/katalvlaran/cotengo/expr"
)

// matrixChain builds A[1,2]·B[2,3]·C[3,4] as a flat contraction to [1,4].
func matrixChain() expr.Expr {
	return &expr.Contract{
		Args: []expr.Expr{
			&expr.Leaf{ID: 0, Ixs: []expr.Index{1, 2}},
			&expr.Leaf{ID: 1, Ixs: []expr.Index{2, 3}},
			&expr.Leaf{ID: 2, Ixs: []expr.Index{3, 4}},
		},
		Out: []expr.Index{1, 4},
	}
}

func TestExpress_RootOutputPinned(t *testing.T) {
	inc, err := expr.NewIncidence(matrixChain())
	require.NoError(t, err)

	tree, err := contree.Assemble([][]expr.Index{{2}, {3}}, inc)
	require.NoError(t, err)

	// Caller's output order is preserved verbatim, even unsorted.
	e, err := contree.Express(tree, inc, []expr.Index{4, 1})
	require.NoError(t, err)
	assert.Equal(t, []expr.Index{4, 1}, e.OutIxs())
}

func TestExpress_IntermediateOutputs(t *testing.T) {
	inc, err := expr.NewIncidence(matrixChain())
	require.NoError(t, err)

	// Left-deep tree ((A·B)·C).
	tree := &contree.Node{
		Left:  &contree.Node{Left: &contree.Node{ID: 0}, Right: &contree.Node{ID: 1}},
		Right: &contree.Node{ID: 2},
	}

	e, err := contree.Express(tree, inc, []expr.Index{1, 4})
	require.NoError(t, err)

	root, ok := e.(*expr.Contract)
	require.True(t, ok)
	require.Len(t, root.Args, 2)

	// A·B sums index 2 and keeps 1 (pinned) and 3 (needed by C).
	inner, ok := root.Args[0].(*expr.Contract)
	require.True(t, ok)
	assert.Equal(t, []expr.Index{1, 3}, inner.Out)
}

func TestExpress_OrderRoundTrip(t *testing.T) {
	e := matrixChain()
	inc, err := expr.NewIncidence(e)
	require.NoError(t, err)

	orig, err := expr.ExtractOrder(e)
	require.NoError(t, err)

	// One group per eliminated index, fed back through assemble+express.
	groups := make([][]expr.Index, len(orig))
	for i, ix := range orig {
		groups[i] = []expr.Index{ix}
	}
	tree, err := contree.Assemble(groups, inc)
	require.NoError(t, err)

	rebuilt, err := contree.Express(tree, inc, []expr.Index{1, 4})
	require.NoError(t, err)

	got, err := expr.ExtractOrder(rebuilt)
	require.NoError(t, err)

	// The eliminated-index multiset survives the round trip; only the
	// association of pairwise steps may change.
	sortIxs := func(s []expr.Index) []expr.Index {
		out := append([]expr.Index(nil), s...)
		sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

		return out
	}
	assert.Equal(t, sortIxs(orig), sortIxs(got))
}

func TestExpress_LeafOnly(t *testing.T) {
	inc, err := expr.NewIncidence(&expr.Contract{
		Args: []expr.Expr{&expr.Leaf{ID: 7, Ixs: []expr.Index{1, 2}}},
		Out:  []expr.Index{1, 2},
	})
	require.NoError(t, err)

	e, err := contree.Express(&contree.Node{ID: 7}, inc, nil)
	require.NoError(t, err)

	leaf, ok := e.(*expr.Leaf)
	require.True(t, ok)
	assert.Equal(t, 7, leaf.ID)
	assert.Equal(t, []expr.Index{1, 2}, leaf.Ixs)
}

func TestExpress_Errors(t *testing.T) {
	inc, err := expr.NewIncidence(matrixChain())
	require.NoError(t, err)

	_, err = contree.Express(nil, inc, nil)
	assert.ErrorIs(t, err, expr.ErrNilExpression)

	// Leaf id 9 is not in the incidence.
	_, err = contree.Express(&contree.Node{ID: 9}, inc, nil)
	assert.ErrorIs(t, err, contree.ErrUnknownLeaf)

	// Output index 42 occurs on no leaf.
	tree := &contree.Node{Left: &contree.Node{ID: 0}, Right: &contree.Node{ID: 1}}
	_, err = contree.Express(tree, inc, []expr.Index{42})
	assert.ErrorIs(t, err, contree.ErrUnknownIndex)
}
