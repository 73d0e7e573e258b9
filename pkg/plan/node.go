// Package plan models slicing floorplans as binary trees and implements the
// geometric passes that turn a serialized plan into placed rectangles.
//
// A slicing floorplan is a rectangle recursively partitioned by horizontal and
// vertical straight cuts into non-overlapping blocks. The plan is encoded as a
// post-order token sequence: each leaf block appears as `label(width,height)`
// and each cut operator (`H` or `V`) appears after both of its operand
// subtrees.
//
// # Pipeline
//
// A plan moves through three phases:
//
//  1. Build: reconstruct the tree from the token sequence (see [Build])
//  2. Measure: compute enclosing-rectangle dimensions bottom-up (see [Measure])
//  3. Place: assign absolute block coordinates top-down (see [Place])
//
// Measure must complete for the whole tree before Place runs anywhere in it:
// placing a cut's children reads the sibling subtree's computed dimensions.
//
// After the passes the tree is read-only; the report emitters in this package
// (Structure, Dimensions, Coordinates) traverse it without mutating it.
package plan

// Orientation distinguishes the two cut directions of a slicing tree.
type Orientation byte

const (
	// Horizontal stacks the left subtree above the right subtree.
	Horizontal Orientation = 'H'
	// Vertical places the left subtree to the left of the right subtree.
	Vertical Orientation = 'V'
)

// String returns the single-character operator form ("H" or "V").
func (o Orientation) String() string { return string(byte(o)) }

// Node is either a *Leaf or a *Cut. The two variants make invalid states
// unrepresentable: a leaf carries no orientation and a cut always has exactly
// two children.
type Node interface {
	// Size returns the node's width and height. For a Leaf these are the
	// intrinsic block dimensions from the input; for a Cut they are the
	// smallest enclosing rectangle, defined only after Measure.
	Size() (width, height int)

	isNode()
}

// Leaf is a terminal block with a positive integer label and intrinsic
// dimensions. X and Y hold the bottom-left corner of the block and are
// assigned exactly once by Place.
type Leaf struct {
	Label  int
	Width  int
	Height int
	X      int
	Y      int
}

// Cut is an internal node partitioning its children's combined area. Child
// order is significant: it encodes stacking order (see Place). Width and
// Height are assigned exactly once by Measure.
type Cut struct {
	Dir    Orientation
	Left   Node
	Right  Node
	Width  int
	Height int
}

func (l *Leaf) Size() (int, int) { return l.Width, l.Height }
func (c *Cut) Size() (int, int)  { return c.Width, c.Height }

func (*Leaf) isNode() {}
func (*Cut) isNode()  {}

// Leaves appends every leaf of the subtree rooted at n to dst in pre-order
// and returns the extended slice.
func Leaves(n Node, dst []*Leaf) []*Leaf {
	switch v := n.(type) {
	case *Leaf:
		dst = append(dst, v)
	case *Cut:
		dst = Leaves(v.Left, dst)
		dst = Leaves(v.Right, dst)
	}
	return dst
}

// Count returns the total number of nodes in the subtree rooted at n.
func Count(n Node) int {
	if c, ok := n.(*Cut); ok {
		return 1 + Count(c.Left) + Count(c.Right)
	}
	return 1
}
