package plan

// Measure assigns the smallest enclosing rectangle to every cut node,
// bottom-up. Leaves keep their intrinsic dimensions.
//
// A horizontal cut stacks left over right, so its width is the wider of the
// two children and its height is their sum. A vertical cut places left beside
// right, so its width is the sum and its height the taller of the two.
//
// Measure mutates the tree in place and must run before Place.
func Measure(n Node) {
	c, ok := n.(*Cut)
	if !ok {
		return
	}
	Measure(c.Left)
	Measure(c.Right)

	lw, lh := c.Left.Size()
	rw, rh := c.Right.Size()
	switch c.Dir {
	case Horizontal:
		c.Width = max(lw, rw)
		c.Height = lh + rh
	case Vertical:
		c.Width = lw + rw
		c.Height = max(lh, rh)
	}
}

// Place assigns absolute bottom-left coordinates to every leaf, top-down
// from origin (0,0). The whole tree must already be measured: placing a
// cut's children reads the computed dimensions of their siblings.
func Place(n Node) {
	PlaceAt(n, 0, 0)
}

// PlaceAt places the subtree rooted at n with its bottom-left corner at
// (x, y).
//
// For a horizontal cut the right subtree keeps the origin and the left
// subtree stacks above it, offset by the right subtree's height. For a
// vertical cut the left subtree keeps the origin and the right subtree sits
// beside it, offset by the left subtree's width.
func PlaceAt(n Node, x, y int) {
	switch v := n.(type) {
	case *Leaf:
		v.X = x
		v.Y = y
	case *Cut:
		switch v.Dir {
		case Horizontal:
			_, rh := v.Right.Size()
			PlaceAt(v.Left, x, y+rh)
			PlaceAt(v.Right, x, y)
		case Vertical:
			lw, _ := v.Left.Size()
			PlaceAt(v.Left, x, y)
			PlaceAt(v.Right, x+lw, y)
		}
	}
}
