// Package expr defines the tensor-contraction expression model shared by
// every other cotengo package.
//
// An expression is a tagged union over two node kinds:
//
//   - Leaf     — a concrete input tensor: an id plus the index labels on it.
//   - Contract — an n-ary pairing of sub-expressions plus the index labels
//     that survive the contraction (its output).
//
// Indices are opaque integer labels; each label is unique within one
// expression and denotes a single tensor dimension to be summed out at
// exactly one contraction step (or kept, if it appears in the final output).
//
// Ownership: a node is never shared between two parents. Transformations
// (reordering, assembly) always build fresh trees; expressions handed to
// cotengo functions are treated as read-only.
//
// Errors (sentinel):
//
//	– ErrNilExpression if a nil expression is passed where one is required.
//	– ErrNoLeaves      if an expression contains no leaf tensors.
//	– ErrDuplicateLeaf if two leaves share the same tensor id.
//	– ErrUnknownIndex  if an index has no entry in the supplied SizeMap.
package expr

import "errors"

// Sentinel errors returned by the expr package.
var (
	// ErrNilExpression indicates a nil Expr was passed where one is required.
	ErrNilExpression = errors.New("expr: expression is nil")

	// ErrNoLeaves indicates the expression contains no leaf tensors.
	ErrNoLeaves = errors.New("expr: expression has no leaves")

	// ErrDuplicateLeaf indicates two leaves carry the same tensor id.
	ErrDuplicateLeaf = errors.New("expr: duplicate leaf tensor id")

	// ErrUnknownIndex indicates an index label is missing from the SizeMap.
	ErrUnknownIndex = errors.New("expr: index not present in size map")
)

// Index is an opaque identifier for one tensor dimension subject to
// summation or kept in the output. Labels are immutable once assigned and
// unique within a single expression.
type Index int

// SizeMap maps an index label to its dimension. Supplied by the caller,
// read-only; complexity scoring fails with ErrUnknownIndex on a miss.
type SizeMap map[Index]int64

// Expr is the sealed sum type over expression nodes.
// The only implementations are *Leaf and *Contract.
type Expr interface {
	// OutIxs returns the index labels visible on this subtree's result.
	// The returned slice is owned by the node and must not be mutated.
	OutIxs() []Index

	isExpr()
}

// Leaf is a concrete input tensor: a tensor id plus its index labels.
type Leaf struct {
	// ID identifies the tensor within the expression (unique across leaves).
	ID int

	// Ixs lists the index labels touching this tensor, in storage order.
	Ixs []Index
}

// OutIxs returns the leaf's index labels.
func (l *Leaf) OutIxs() []Index { return l.Ixs }

func (l *Leaf) isExpr() {}

// Contract is an internal node: it contracts its arguments and keeps Out.
// Indices present in the arguments but absent from Out are summed out
// ("eliminated") at this step.
type Contract struct {
	// Args are the operands, each exclusively owned by this node.
	Args []Expr

	// Out lists the index labels surviving this contraction.
	Out []Index
}

// OutIxs returns the contraction's surviving index labels.
func (c *Contract) OutIxs() []Index { return c.Out }

func (c *Contract) isExpr() {}

// Complexity carries the two cost figures of an expression, both in log2
// units: TC is log2 of the total arithmetic operation count, SC is log2 of
// the peak intermediate tensor size.
type Complexity struct {
	TC float64
	SC float64
}
