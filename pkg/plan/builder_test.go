package plan

import (
	"strings"
	"testing"

	"github.com/floorslice/floorslice/pkg/errors"
)

func build(t *testing.T, input string) Node {
	t.Helper()
	root, err := Build(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	return root
}

func TestBuild_SingleLeaf(t *testing.T) {
	root := build(t, "7(10,20)\n")

	leaf, ok := root.(*Leaf)
	if !ok {
		t.Fatalf("root = %T, want *Leaf", root)
	}
	if leaf.Label != 7 || leaf.Width != 10 || leaf.Height != 20 {
		t.Errorf("leaf = %+v, want label 7, 10x20", leaf)
	}
}

func TestBuild_PostOrderPair(t *testing.T) {
	root := build(t, "1(2,3)\n2(4,5)\nH\n")

	cut, ok := root.(*Cut)
	if !ok {
		t.Fatalf("root = %T, want *Cut", root)
	}
	if cut.Dir != Horizontal {
		t.Errorf("Dir = %v, want Horizontal", cut.Dir)
	}

	left, ok := cut.Left.(*Leaf)
	if !ok || left.Label != 1 {
		t.Errorf("left = %v, want leaf 1", cut.Left)
	}
	right, ok := cut.Right.(*Leaf)
	if !ok || right.Label != 2 {
		t.Errorf("right = %v, want leaf 2", cut.Right)
	}
}

func TestBuild_ChildOrder(t *testing.T) {
	// The most recently pushed subtree becomes the right child.
	root := build(t, "1(1,1)\n2(1,1)\nV\n3(1,1)\nH\n")

	cut := root.(*Cut)
	if cut.Dir != Horizontal {
		t.Fatalf("root Dir = %v, want Horizontal", cut.Dir)
	}
	if _, ok := cut.Left.(*Cut); !ok {
		t.Errorf("left = %T, want the earlier V subtree", cut.Left)
	}
	if leaf, ok := cut.Right.(*Leaf); !ok || leaf.Label != 3 {
		t.Errorf("right = %v, want leaf 3", cut.Right)
	}
}

func TestBuild_SkipsBlankLines(t *testing.T) {
	root := build(t, "\n1(2,3)\n\n2(4,5)\nH\n\n")
	if Count(root) != 3 {
		t.Errorf("Count = %d, want 3", Count(root))
	}
}

func TestBuild_DeepPlan(t *testing.T) {
	// Left-leaning chain far beyond any fixed stack would allow.
	var sb strings.Builder
	sb.WriteString("1(1,1)\n")
	for i := 2; i <= 5000; i++ {
		// Alternate orientations to exercise both cut kinds.
		op := "H"
		if i%2 == 0 {
			op = "V"
		}
		sb.WriteString("2(1,1)\n")
		sb.WriteString(op + "\n")
	}

	root := build(t, sb.String())
	if got, want := Count(root), 2*4999+1; got != want {
		t.Errorf("Count = %d, want %d", got, want)
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"empty input", "", errors.ErrCodeStructure},
		{"blank only", "\n\n", errors.ErrCodeStructure},
		{"operator without operands", "H\n", errors.ErrCodeStructure},
		{"operator with one operand", "1(2,3)\nV\n", errors.ErrCodeStructure},
		{"multiple roots", "1(2,3)\n2(4,5)\n", errors.ErrCodeStructure},
		{"garbage token", "1(2,3)\nwhat\n", errors.ErrCodeParse},
		{"missing parens", "1 2 3\n", errors.ErrCodeParse},
		{"zero width", "1(0,3)\n", errors.ErrCodeParse},
		{"zero label", "0(2,3)\n", errors.ErrCodeParse},
		{"negative height", "1(2,-3)\n", errors.ErrCodeParse},
		{"lowercase operator", "1(2,3)\n2(4,5)\nh\n", errors.ErrCodeParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Build should fail")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error code = %v, want %v (err: %v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestBuild_ErrorMentionsLine(t *testing.T) {
	_, err := Build(strings.NewReader("1(2,3)\nbogus\n"))
	if err == nil {
		t.Fatal("Build should fail")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error should name the offending line: %v", err)
	}
}
