// Package contree assembles binary contraction trees from grouped
// elimination orders and materializes them back into expressions.
//
// A contraction tree is a binary tree over leaf tensor ids: a leaf names one
// input tensor, an internal node owns exactly two children and represents a
// pairwise contraction. Assembly keeps tree depth near log2 of the group
// size by merging adjacent pairs level by level, bounding the serial
// dependency chain handed to the executor.
//
// The critical correctness invariant: the assembled tree's leaf set equals
// the union of all leaves reachable through the input groups, each exactly
// once. A violation would silently change the contraction result, so the
// assembler enforces it structurally (a leaf is consumed the first time a
// group reaches it and never revisited).
//
// Errors (sentinel):
//
//	– ErrEmptyOrder   if the grouped order has no groups or reaches no leaves.
//	– ErrEmptyGroup   if any group is empty.
//	– ErrUnknownLeaf  if a tree references a leaf id absent from the incidence.
//	– ErrUnknownIndex if a requested output index occurs on no leaf.
package contree

import "errors"

// Sentinel errors returned by the contree package.
var (
	// ErrEmptyOrder indicates an empty grouped order (or one that reaches no
	// leaf tensors at all).
	ErrEmptyOrder = errors.New("contree: grouped order is empty")

	// ErrEmptyGroup indicates a group with no indices.
	ErrEmptyGroup = errors.New("contree: group is empty")

	// ErrUnknownLeaf indicates a leaf id with no entry in the incidence.
	ErrUnknownLeaf = errors.New("contree: leaf id not present in incidence")

	// ErrUnknownIndex indicates an output index touching no leaf.
	ErrUnknownIndex = errors.New("contree: output index not present on any leaf")
)

// Node is a binary contraction-tree node. A leaf has both children nil and
// carries a tensor id; an internal node owns exactly two children and its ID
// is meaningless. Nodes are never shared between parents.
type Node struct {
	// ID is the leaf tensor id; valid only when Left and Right are nil.
	ID int

	// Left and Right are the contracted operands; both nil for a leaf,
	// both non-nil for an internal node.
	Left  *Node
	Right *Node
}

// IsLeaf reports whether n is a leaf node.
func (n *Node) IsLeaf() bool { return n.Left == nil && n.Right == nil }

// Leaves returns the tree's leaf ids left to right.
//
// Complexity: O(nodes).
func Leaves(n *Node) []int {
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		return []int{n.ID}
	}

	return append(Leaves(n.Left), Leaves(n.Right)...)
}

// Depth returns the tree height in edges; 0 for a single leaf.
func Depth(n *Node) int {
	if n == nil || n.IsLeaf() {
		return 0
	}
	l, r := Depth(n.Left), Depth(n.Right)
	if l > r {
		return l + 1
	}

	return r + 1
}
