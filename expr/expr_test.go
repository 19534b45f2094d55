// Package expr_test exercises the expression model via the public API:
// leaf enumeration, incidence construction, and their error contracts.
package expr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cotengo/expr"
)

// chainExpr builds (A[i,j] · B[j,k]) · C[k,l] → out [i,l].
func chainExpr() expr.Expr {
	ab := &expr.Contract{
		Args: []expr.Expr{
			&expr.Leaf{ID: 0, Ixs: []expr.Index{1, 2}},
			&expr.Leaf{ID: 1, Ixs: []expr.Index{2, 3}},
		},
		Out: []expr.Index{1, 3},
	}

	return &expr.Contract{
		Args: []expr.Expr{
			ab,
			&expr.Leaf{ID: 2, Ixs: []expr.Index{3, 4}},
		},
		Out: []expr.Index{1, 4},
	}
}

func TestLeaves_PostOrder(t *testing.T) {
	leaves, err := expr.Leaves(chainExpr())
	require.NoError(t, err)

	ids := make([]int, len(leaves))
	for i, l := range leaves {
		ids[i] = l.ID
	}
	assert.Equal(t, []int{0, 1, 2}, ids, "leaves must arrive in post-order")
}

func TestLeaves_NilExpression(t *testing.T) {
	_, err := expr.Leaves(nil)
	assert.ErrorIs(t, err, expr.ErrNilExpression)
}

func TestNewIncidence_Mappings(t *testing.T) {
	inc, err := expr.NewIncidence(chainExpr())
	require.NoError(t, err)

	assert.Equal(t, []expr.Index{1, 2}, inc.LeafIxs[0])
	assert.Equal(t, []expr.Index{2, 3}, inc.LeafIxs[1])
	assert.Equal(t, []expr.Index{3, 4}, inc.LeafIxs[2])

	assert.Equal(t, []int{0}, inc.IxLeaves[1])
	assert.Equal(t, []int{0, 1}, inc.IxLeaves[2])
	assert.Equal(t, []int{1, 2}, inc.IxLeaves[3])
	assert.Equal(t, []int{2}, inc.IxLeaves[4])
}

func TestNewIncidence_DuplicateLeaf(t *testing.T) {
	e := &expr.Contract{
		Args: []expr.Expr{
			&expr.Leaf{ID: 7, Ixs: []expr.Index{1}},
			&expr.Leaf{ID: 7, Ixs: []expr.Index{2}},
		},
	}
	_, err := expr.NewIncidence(e)
	assert.ErrorIs(t, err, expr.ErrDuplicateLeaf)
}

func TestNewIncidence_CopiesLeafIndices(t *testing.T) {
	l := &expr.Leaf{ID: 0, Ixs: []expr.Index{1, 2}}
	inc, err := expr.NewIncidence(l)
	require.NoError(t, err)

	// Mutating the leaf afterwards must not reach the incidence.
	l.Ixs[0] = 99
	assert.Equal(t, []expr.Index{1, 2}, inc.LeafIxs[0])
}
