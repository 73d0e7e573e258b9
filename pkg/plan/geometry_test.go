package plan

import (
	"strings"
	"testing"
)

func settle(t *testing.T, input string) Node {
	t.Helper()
	root := build(t, input)
	Measure(root)
	Place(root)
	return root
}

func TestMeasure_TwoBlockStack(t *testing.T) {
	root := settle(t, "1(2,3)\n2(4,5)\nH\n")

	w, h := root.Size()
	if w != 4 || h != 8 {
		t.Errorf("enclosing rectangle = %dx%d, want 4x8", w, h)
	}
}

func TestMeasure_Rules(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		w, h    int
	}{
		{"horizontal max width sum height", "1(2,3)\n2(4,5)\nH\n", 4, 8},
		{"vertical sum width max height", "1(2,3)\n2(4,5)\nV\n", 6, 5},
		{"nested", "1(2,2)\n2(2,2)\nV\n3(4,1)\nH\n", 4, 3},
		{"single leaf untouched", "7(10,20)\n", 10, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := build(t, tt.input)
			Measure(root)
			w, h := root.Size()
			if w != tt.w || h != tt.h {
				t.Errorf("Size = %dx%d, want %dx%d", w, h, tt.w, tt.h)
			}
		})
	}
}

// checkDimensions verifies the measure rules recursively for every cut.
func checkDimensions(t *testing.T, n Node) {
	t.Helper()
	c, ok := n.(*Cut)
	if !ok {
		return
	}
	lw, lh := c.Left.Size()
	rw, rh := c.Right.Size()

	switch c.Dir {
	case Horizontal:
		if c.Width != max(lw, rw) || c.Height != lh+rh {
			t.Errorf("H cut %dx%d, want %dx%d", c.Width, c.Height, max(lw, rw), lh+rh)
		}
	case Vertical:
		if c.Width != lw+rw || c.Height != max(lh, rh) {
			t.Errorf("V cut %dx%d, want %dx%d", c.Width, c.Height, lw+rw, max(lh, rh))
		}
	}

	checkDimensions(t, c.Left)
	checkDimensions(t, c.Right)
}

// checkTiling verifies the coordinate tiling invariant for every cut: the
// two children of a horizontal cut share an x and stack by the right
// child's height; the children of a vertical cut share a y and abut by the
// left child's width.
func checkTiling(t *testing.T, n Node) (x, y int) {
	t.Helper()
	switch v := n.(type) {
	case *Leaf:
		return v.X, v.Y
	case *Cut:
		lx, ly := checkTiling(t, v.Left)
		rx, ry := checkTiling(t, v.Right)
		switch v.Dir {
		case Horizontal:
			_, rh := v.Right.Size()
			if lx != rx {
				t.Errorf("H cut children x: left %d, right %d", lx, rx)
			}
			if ly != ry+rh {
				t.Errorf("H cut stacking: left y %d, want right y %d + height %d", ly, ry, rh)
			}
			return rx, ry
		case Vertical:
			lw, _ := v.Left.Size()
			if ly != ry {
				t.Errorf("V cut children y: left %d, right %d", ly, ry)
			}
			if rx != lx+lw {
				t.Errorf("V cut abutment: right x %d, want left x %d + width %d", rx, lx, lw)
			}
			return lx, ly
		}
	}
	return 0, 0
}

const complexPlan = "1(2,3)\n2(4,5)\nH\n3(3,2)\n4(1,4)\nV\nV\n5(8,2)\nH\n"

func TestPlace_TwoBlockStack(t *testing.T) {
	root := settle(t, "1(2,3)\n2(4,5)\nH\n")

	leaves := Leaves(root, nil)
	want := map[int][2]int{
		1: {0, 5},
		2: {0, 0},
	}
	for _, l := range leaves {
		if got := [2]int{l.X, l.Y}; got != want[l.Label] {
			t.Errorf("leaf %d at %v, want %v", l.Label, got, want[l.Label])
		}
	}
}

func TestPlace_SingleLeafAtOrigin(t *testing.T) {
	root := settle(t, "7(10,20)\n")
	leaf := root.(*Leaf)
	if leaf.X != 0 || leaf.Y != 0 {
		t.Errorf("leaf at (%d,%d), want origin", leaf.X, leaf.Y)
	}
}

func TestGeometry_Invariants(t *testing.T) {
	root := settle(t, complexPlan)
	checkDimensions(t, root)
	checkTiling(t, root)
}

func TestPlace_NoOverlap(t *testing.T) {
	root := settle(t, complexPlan)

	leaves := Leaves(root, nil)
	for i := 0; i < len(leaves); i++ {
		for j := i + 1; j < len(leaves); j++ {
			a, b := leaves[i], leaves[j]
			overlapX := a.X < b.X+b.Width && b.X < a.X+a.Width
			overlapY := a.Y < b.Y+b.Height && b.Y < a.Y+a.Height
			if overlapX && overlapY {
				t.Errorf("blocks %d and %d overlap: (%d,%d %dx%d) vs (%d,%d %dx%d)",
					a.Label, b.Label, a.X, a.Y, a.Width, a.Height, b.X, b.Y, b.Width, b.Height)
			}
		}
	}
}

func TestPlaceAt_Offset(t *testing.T) {
	root := build(t, "1(2,3)\n2(4,5)\nV\n")
	Measure(root)
	PlaceAt(root, 10, 7)

	leaves := Leaves(root, nil)
	if leaves[0].X != 10 || leaves[0].Y != 7 {
		t.Errorf("leaf 1 at (%d,%d), want (10,7)", leaves[0].X, leaves[0].Y)
	}
	if leaves[1].X != 12 || leaves[1].Y != 7 {
		t.Errorf("leaf 2 at (%d,%d), want (12,7)", leaves[1].X, leaves[1].Y)
	}
}

// Idempotence matters for staged invocations that re-run the passes on an
// already annotated plan.
func TestGeometry_Idempotent(t *testing.T) {
	root := settle(t, complexPlan)
	before, _ := MarshalPlan(root)

	Measure(root)
	Place(root)
	after, _ := MarshalPlan(root)

	if string(before) != string(after) {
		t.Error("re-running the passes changed the annotated plan")
	}
}

func TestGeometry_DeepRecursion(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("1(1,1)\n")
	for i := 0; i < 2000; i++ {
		sb.WriteString("1(1,1)\nV\n")
	}
	root := settle(t, sb.String())

	w, h := root.Size()
	if w != 2001 || h != 1 {
		t.Errorf("Size = %dx%d, want 2001x1", w, h)
	}
}
