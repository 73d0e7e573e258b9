package plan

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/floorslice/floorslice/pkg/errors"
)

// leafToken matches a leaf descriptor of the form `label(width,height)`.
// All three fields are unsigned decimal integers; positivity is checked
// separately so zero values get a precise error message.
var leafToken = regexp.MustCompile(`^([0-9]+)\(([0-9]+),([0-9]+)\)$`)

// Build reconstructs a slicing tree from its post-order token encoding.
//
// The input carries one token per line: either a leaf descriptor
// `label(width,height)` (three positive integers) or a single operator
// character `H` or `V`. Blank lines are ignored. The returned tree is the
// unique binary tree whose post-order traversal reproduces the token
// sequence.
//
// Build maintains a stack of already-built subtrees. A leaf descriptor pushes
// a new *Leaf; an operator pops the two most recent subtrees (the newest
// becomes the right child) and pushes a *Cut. After the last token exactly
// one subtree must remain: the root.
//
// Build fails fast with errors.ErrCodeParse for a malformed token and
// errors.ErrCodeStructure for an operator with fewer than two operands,
// more than one root at end of input, or empty input. The error message
// includes the offending line number.
func Build(r io.Reader) (Node, error) {
	// The stack grows as needed; the encoding imposes no node-count ceiling.
	var stack []Node

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		switch line {
		case "H", "V":
			if len(stack) < 2 {
				return nil, errors.New(errors.ErrCodeStructure,
					"line %d: operator %s needs two operand subtrees, have %d", lineNo, line, len(stack))
			}
			right := stack[len(stack)-1]
			left := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			stack = append(stack, &Cut{Dir: Orientation(line[0]), Left: left, Right: right})
		default:
			leaf, err := parseLeaf(line, lineNo)
			if err != nil {
				return nil, err
			}
			stack = append(stack, leaf)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read plan input")
	}

	switch len(stack) {
	case 0:
		return nil, errors.New(errors.ErrCodeStructure, "empty input: no root node")
	case 1:
		return stack[0], nil
	default:
		return nil, errors.New(errors.ErrCodeStructure,
			"%d subtrees remain after full input, want exactly one root", len(stack))
	}
}

// parseLeaf parses a `label(width,height)` descriptor into a Leaf.
func parseLeaf(line string, lineNo int) (*Leaf, error) {
	m := leafToken.FindStringSubmatch(line)
	if m == nil {
		return nil, errors.New(errors.ErrCodeParse,
			"line %d: %q is neither an operator nor a leaf descriptor label(width,height)", lineNo, line)
	}

	fields := [3]int{}
	names := [3]string{"label", "width", "height"}
	for i, s := range m[1:] {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "line %d: %s out of range", lineNo, names[i])
		}
		if v <= 0 {
			return nil, errors.New(errors.ErrCodeParse,
				"line %d: %s must be a positive integer, got %d", lineNo, names[i], v)
		}
		fields[i] = v
	}

	return &Leaf{Label: fields[0], Width: fields[1], Height: fields[2]}, nil
}
