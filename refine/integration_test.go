// Package refine_test - end-to-end numerical check.
//
// A 2×3 grid graph is encoded as a tensor network whose full contraction
// counts the graph's independent sets: one [1,1] tensor per vertex and one
// [[1,1],[1,0]] tensor per edge. The flat network, an annealed binary
// rendition, and the refined result must all contract to the same scalar,
// which in turn must match a brute-force subset count.
package refine_test

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cotengo/anneal"
	"github.com/katalvlaran/cotengo/expr"
	"github.com/katalvlaran/cotengo/refine"
)

// gridEdges lists the edges of a rows×cols grid graph over vertices
// 0..rows·cols-1 in row-major layout.
func gridEdges(rows, cols int) [][2]int {
	var edges [][2]int
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := r*cols + c
			if c+1 < cols {
				edges = append(edges, [2]int{v, v + 1})
			}
			if r+1 < rows {
				edges = append(edges, [2]int{v, v + cols})
			}
		}
	}

	return edges
}

// misNetwork encodes independent-set counting on the given graph: index v+1
// (size 2) carries vertex v's in/out state, vertex tensors are [1,1], edge
// tensors [[1,1],[1,0]] forbid adjacent pairs.
func misNetwork(nvert int, edges [][2]int) (expr.Expr, expr.SizeMap, map[int]tensor) {
	var (
		args  []expr.Expr
		data  = make(map[int]tensor)
		sizes = make(expr.SizeMap, nvert)
		id    int
	)
	for v := 0; v < nvert; v++ {
		ix := expr.Index(v + 1)
		sizes[ix] = 2
		args = append(args, &expr.Leaf{ID: id, Ixs: []expr.Index{ix}})
		data[id] = tensor{ixs: []expr.Index{ix}, data: []float64{1, 1}}
		id++
	}
	for _, e := range edges {
		u, v := expr.Index(e[0]+1), expr.Index(e[1]+1)
		args = append(args, &expr.Leaf{ID: id, Ixs: []expr.Index{u, v}})
		data[id] = tensor{ixs: []expr.Index{u, v}, data: []float64{1, 1, 1, 0}}
		id++
	}

	return &expr.Contract{Args: args, Out: nil}, sizes, data
}

// countIndependentSets brute-forces all vertex subsets.
func countIndependentSets(nvert int, edges [][2]int) int {
	count := 0
	for mask := 0; mask < 1<<nvert; mask++ {
		ok := true
		for _, e := range edges {
			if mask&(1<<e[0]) != 0 && mask&(1<<e[1]) != 0 {
				ok = false
				break
			}
		}
		if ok {
			count++
		}
	}

	return count
}

// tensor is a dense array in row-major order over its index list.
type tensor struct {
	ixs  []expr.Index
	data []float64
}

// at reads the entry selected by a full index assignment.
func (t tensor) at(assign map[expr.Index]int, sizes expr.SizeMap) float64 {
	pos := 0
	for _, ix := range t.ixs {
		pos = pos*int(sizes[ix]) + assign[ix]
	}

	return t.data[pos]
}

// evaluate contracts e numerically against the leaf tensors: a direct
// sum-over-all-assignments einsum, exponential but exact.
func evaluate(t *testing.T, e expr.Expr, data map[int]tensor, sizes expr.SizeMap) tensor {
	t.Helper()

	switch n := e.(type) {
	case *expr.Leaf:
		td, ok := data[n.ID]
		require.True(t, ok, "leaf %d has no tensor", n.ID)

		return td

	case *expr.Contract:
		operands := make([]tensor, len(n.Args))
		for i, arg := range n.Args {
			operands[i] = evaluate(t, arg, data, sizes)
		}

		return contractAll(operands, n.Out, sizes)

	default:
		t.Fatalf("unknown expression node %T", e)

		return tensor{}
	}
}

// contractAll sums the product of the operands over every index not in out.
func contractAll(operands []tensor, out []expr.Index, sizes expr.SizeMap) tensor {
	seen := make(map[expr.Index]struct{})
	var union []expr.Index
	for _, op := range operands {
		for _, ix := range op.ixs {
			if _, ok := seen[ix]; !ok {
				seen[ix] = struct{}{}
				union = append(union, ix)
			}
		}
	}
	sort.Slice(union, func(i, j int) bool { return union[i] < union[j] })

	outSize := 1
	for _, ix := range out {
		outSize *= int(sizes[ix])
	}
	res := tensor{ixs: append([]expr.Index(nil), out...), data: make([]float64, outSize)}

	assign := make(map[expr.Index]int, len(union))
	counters := make([]int, len(union))
	for {
		for i, ix := range union {
			assign[ix] = counters[i]
		}

		val := 1.0
		for _, op := range operands {
			val *= op.at(assign, sizes)
		}

		pos := 0
		for _, ix := range out {
			pos = pos*int(sizes[ix]) + assign[ix]
		}
		res.data[pos] += val

		// Odometer step over the union assignment space.
		i := len(counters) - 1
		for ; i >= 0; i-- {
			counters[i]++
			if counters[i] < int(sizes[union[i]]) {
				break
			}
			counters[i] = 0
		}
		if i < 0 {
			break
		}
	}

	return res
}

func TestRefine_GridNetworkNumericalEquivalence(t *testing.T) {
	const (
		rows, cols = 2, 3
		nvert      = rows * cols
	)
	edges := gridEdges(rows, cols)
	e, sizes, data := misNetwork(nvert, edges)

	want := float64(countIndependentSets(nvert, edges))

	// The flat network evaluates to the independent-set count.
	flat := evaluate(t, e, data, sizes)
	require.Len(t, flat.data, 1)
	require.InDelta(t, want, flat.data[0], 1e-9)

	// Annealing rewrites the association, never the value.
	a := anneal.New()
	binary, err := a.Reorder(e, sizes, []float64{0.5, 1, 2, 4}, 2, 4, 3)
	require.NoError(t, err)

	got := evaluate(t, binary, data, sizes)
	require.Len(t, got.data, 1)
	assert.InDelta(t, want, got.data[0], 1e-9)

	// Refinement keeps the value and never regresses the space bound.
	baseline, err := expr.Score(binary, sizes)
	require.NoError(t, err)

	cfg := refine.DefaultConfig(
		refine.WithBetas([]float64{0.5, 1, 2, 4}),
		refine.WithTrials(2),
		refine.WithIters(4),
		refine.WithRounds(2),
		refine.WithSeed(11),
	)
	res, err := refine.Refine(binary, sizes, a, cfg, float64(nvert), math.Inf(1))
	require.NoError(t, err)

	assert.True(t, res.MetTarget, "SC can never exceed the full index set")
	assert.LessOrEqual(t, res.SC, baseline.SC)

	final := evaluate(t, res.Expr, data, sizes)
	require.Len(t, final.data, 1)
	assert.InDelta(t, want, final.data[0], 1e-9)
}
