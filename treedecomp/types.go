// Package treedecomp builds tree decompositions of index graphs from
// elimination orders.
//
// A decomposition is a tree of "bags": each bag holds the set of vertices
// simultaneously alive at one elimination step. The standard properties
// hold by construction: every graph edge is covered by at least one bag,
// and the bags containing any vertex form a connected subtree. The maximum
// bag size bounds peak contraction memory as 2^(max bag size) for binary
// index dimensions, which is why the refiner minimizes it.
//
// Errors (sentinel):
//
//	– ErrNilGraph          if a nil graph is passed.
//	– ErrBadOrder          if the order is not a permutation of the vertices.
//	– ErrDisconnectedGraph if Decompose is asked to produce one tree for a
//	  graph with several components (use DecomposeForest instead).
package treedecomp

import "errors"

// Sentinel errors returned by the treedecomp package.
var (
	// ErrNilGraph indicates a nil graph was passed.
	ErrNilGraph = errors.New("treedecomp: graph is nil")

	// ErrBadOrder indicates the elimination order is not a permutation of
	// the graph's vertices (wrong length, out of range, or duplicates).
	ErrBadOrder = errors.New("treedecomp: order is not a vertex permutation")

	// ErrDisconnectedGraph indicates a single decomposition tree was
	// requested for a graph with more than one connected component.
	ErrDisconnectedGraph = errors.New("treedecomp: graph is disconnected")
)

// Bag is one decomposition-tree node: the set of vertices alive at one
// elimination step plus exclusively owned children.
type Bag struct {
	// Vertices holds the bag's vertex ids in ascending order.
	Vertices []int

	// Children are the bags attached under this one.
	Children []*Bag
}

// Tree is a rooted tree decomposition. The root's bag corresponds to the
// vertices alive at the first consumed elimination step, which by the
// extractor's convention are the expression's output indices.
type Tree struct {
	// Root is the top bag; never nil on a Tree returned by this package.
	Root *Bag

	// Width is max bag size − 1 (the tree-width witnessed by this order).
	Width int
}
