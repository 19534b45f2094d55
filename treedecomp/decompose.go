// Package treedecomp - elimination-order decomposition construction.
//
// Decompose implements the classic perfect-elimination construction:
// consume the order front to back; for each vertex its bag is the vertex
// itself plus all still-unprocessed neighbors in the evolving graph, where
// processing a vertex adds fill edges between all pairs of its remaining
// neighbors (chordal completion). Each bag links to the bag of the
// earliest-processed remaining neighbor; the resulting undirected tree is
// rooted at the bag of order[0], which by the extractor's convention holds
// the expression's output indices.
//
// Design:
//   - Deterministic: bags sorted ascending, children ordered by processing
//     position; no map-iteration order leaks into results.
//   - Strict sentinels only; no logging, no panics on user input.
package treedecomp

import (
	"sort"

	"github.com/katalvlaran/cotengo/indexgraph"
)

// Decompose builds a single decomposition tree for a connected graph.
//
// Contract:
//   - g non-nil; order a permutation of 0..g.Order()-1 (ErrBadOrder).
//   - g connected (ErrDisconnectedGraph otherwise); the empty graph is
//     accepted and yields a single empty root bag with Width == -1.
//
// Complexity: O(n · d²) time where d is the largest bag size (fill pass),
// O(n + fill) space.
func Decompose(g *indexgraph.Graph, order []int) (*Tree, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if err := validateOrder(order, g.Order()); err != nil {
		return nil, err
	}
	if g.Order() == 0 {
		return &Tree{Root: &Bag{}, Width: -1}, nil
	}
	if !g.Connected() {
		return nil, ErrDisconnectedGraph
	}

	return decomposeComponent(g, order), nil
}

// DecomposeForest builds one decomposition tree per connected component.
// Each component consumes the subsequence of order that falls inside it,
// preserving relative order; trees are returned in ascending order of each
// component's smallest vertex.
//
// Contract: as Decompose, minus the connectivity requirement.
//
// Complexity: O(n · d²) time overall.
func DecomposeForest(g *indexgraph.Graph, order []int) ([]*Tree, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if err := validateOrder(order, g.Order()); err != nil {
		return nil, err
	}
	if g.Order() == 0 {
		return []*Tree{{Root: &Bag{}, Width: -1}}, nil
	}

	comps := g.Components()
	trees := make([]*Tree, 0, len(comps))

	var (
		member []bool
		sub    []int
		v      int
	)
	for _, comp := range comps {
		// Restrict the order to this component, keeping relative order.
		member = make([]bool, g.Order())
		for _, v = range comp {
			member[v] = true
		}
		sub = sub[:0]
		for _, v = range order {
			if member[v] {
				sub = append(sub, v)
			}
		}
		trees = append(trees, decomposeComponent(g, sub))
	}

	return trees, nil
}

// MaxBag returns the largest bag of t by cardinality, breaking ties by
// first encounter in post-order. This is the quantity the refiner minimizes.
//
// Complexity: O(bags).
func MaxBag(t *Tree) *Bag {
	if t == nil || t.Root == nil {
		return nil
	}

	var (
		best *Bag
		walk func(b *Bag)
	)
	walk = func(b *Bag) {
		for _, c := range b.Children {
			walk(c)
		}
		if best == nil || len(b.Vertices) > len(best.Vertices) {
			best = b
		}
	}
	walk(t.Root)

	return best
}

// validateOrder checks that order is a permutation of 0..n-1.
func validateOrder(order []int, n int) error {
	if len(order) != n {
		return ErrBadOrder
	}
	seen := make([]bool, n)
	for _, v := range order {
		if v < 0 || v >= n || seen[v] {
			return ErrBadOrder
		}
		seen[v] = true
	}

	return nil
}

// decomposeComponent runs the elimination construction over the vertices in
// order (one connected component; order non-empty) and roots the tree at
// order[0]'s bag.
func decomposeComponent(g *indexgraph.Graph, order []int) *Tree {
	// Processing position per vertex; vertices outside the component stay
	// absent and are ignored by the remaining-neighbor scan.
	pos := make(map[int]int, len(order))
	for i, v := range order {
		pos[v] = i
	}

	// Evolving adjacency: seeded from g, grows by fill edges.
	adj := make(map[int]map[int]struct{}, len(order))
	for _, v := range order {
		nb := make(map[int]struct{})
		for _, u := range g.Neighbors(v) {
			if _, ok := pos[u]; ok {
				nb[u] = struct{}{}
			}
		}
		adj[v] = nb
	}

	var (
		bags  = make(map[int]*Bag, len(order))
		next  = make(map[int]int, len(order)) // v -> earliest-processed remaining neighbor
		width = -1
	)

	var (
		i, v, u, w, p int
		rem           []int
		j, k          int
	)
	for i, v = range order {
		// Remaining neighbors: still unprocessed under the current fill graph.
		rem = rem[:0]
		for u = range adj[v] {
			if pos[u] > i {
				rem = append(rem, u)
			}
		}
		sort.Ints(rem)

		// Current bag: v plus its remaining neighbors.
		vs := make([]int, 0, len(rem)+1)
		vs = append(vs, v)
		vs = append(vs, rem...)
		sort.Ints(vs)
		bags[v] = &Bag{Vertices: vs}
		if len(vs)-1 > width {
			width = len(vs) - 1
		}

		// Chordal completion: remaining neighbors become pairwise adjacent.
		for j = 0; j < len(rem); j++ {
			for k = j + 1; k < len(rem); k++ {
				u, w = rem[j], rem[k]
				adj[u][w] = struct{}{}
				adj[w][u] = struct{}{}
			}
		}

		// Link target: the remaining neighbor processed earliest.
		if len(rem) > 0 {
			p = rem[0]
			for _, u = range rem[1:] {
				if pos[u] < pos[p] {
					p = u
				}
			}
			next[v] = p
		}
	}

	// The links form an undirected tree; orient it away from order[0] so the
	// root bag holds the first consumed step's alive set.
	nbr := make(map[int][]int, len(order))
	for v, u = range next {
		nbr[v] = append(nbr[v], u)
		nbr[u] = append(nbr[u], v)
	}

	root := order[0]
	visited := map[int]struct{}{root: {}}
	stack := []int{root}
	for len(stack) > 0 {
		v, stack = stack[len(stack)-1], stack[:len(stack)-1]
		// Children ordered by processing position for determinism.
		kids := append([]int(nil), nbr[v]...)
		sort.Slice(kids, func(a, b int) bool { return pos[kids[a]] < pos[kids[b]] })
		for _, u = range kids {
			if _, ok := visited[u]; ok {
				continue
			}
			visited[u] = struct{}{}
			bags[v].Children = append(bags[v].Children, bags[u])
			stack = append(stack, u)
		}
	}

	return &Tree{Root: bags[root], Width: width}
}
