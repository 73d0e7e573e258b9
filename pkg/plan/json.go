package plan

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// jsonNode is the wire form of a plan node. Exactly one of the two variants
// is populated: a leaf carries Label (and X/Y once placed), a cut carries
// Cut/Left/Right. Width and Height are shared by both.
type jsonNode struct {
	Label  int       `json:"label,omitempty"`
	Cut    string    `json:"cut,omitempty"`
	Width  int       `json:"width"`
	Height int       `json:"height"`
	X      *int      `json:"x,omitempty"`
	Y      *int      `json:"y,omitempty"`
	Left   *jsonNode `json:"left,omitempty"`
	Right  *jsonNode `json:"right,omitempty"`
}

func toJSONNode(n Node, placed bool) *jsonNode {
	switch v := n.(type) {
	case *Leaf:
		out := &jsonNode{Label: v.Label, Width: v.Width, Height: v.Height}
		if placed {
			x, y := v.X, v.Y
			out.X = &x
			out.Y = &y
		}
		return out
	case *Cut:
		return &jsonNode{
			Cut:    v.Dir.String(),
			Width:  v.Width,
			Height: v.Height,
			Left:   toJSONNode(v.Left, placed),
			Right:  toJSONNode(v.Right, placed),
		}
	}
	return nil
}

func fromJSONNode(jn *jsonNode) (Node, error) {
	switch {
	case jn.Cut != "":
		if jn.Cut != "H" && jn.Cut != "V" {
			return nil, fmt.Errorf("unknown cut orientation %q", jn.Cut)
		}
		if jn.Left == nil || jn.Right == nil {
			return nil, fmt.Errorf("cut node %s is missing a child", jn.Cut)
		}
		left, err := fromJSONNode(jn.Left)
		if err != nil {
			return nil, err
		}
		right, err := fromJSONNode(jn.Right)
		if err != nil {
			return nil, err
		}
		return &Cut{
			Dir:    Orientation(jn.Cut[0]),
			Left:   left,
			Right:  right,
			Width:  jn.Width,
			Height: jn.Height,
		}, nil
	case jn.Label > 0:
		leaf := &Leaf{Label: jn.Label, Width: jn.Width, Height: jn.Height}
		if jn.X != nil {
			leaf.X = *jn.X
		}
		if jn.Y != nil {
			leaf.Y = *jn.Y
		}
		return leaf, nil
	default:
		return nil, fmt.Errorf("node is neither a cut nor a labelled leaf")
	}
}

// WriteJSON encodes the tree rooted at n as indented JSON and writes it to w.
// If placed is true, leaf coordinates are included. The output can be
// re-imported with [ReadJSON] for staged processing.
func WriteJSON(n Node, placed bool, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toJSONNode(n, placed)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalPlan returns the JSON encoding of the tree, including leaf
// coordinates. Used for cache storage and content hashing.
func MarshalPlan(n Node) ([]byte, error) {
	return json.Marshal(toJSONNode(n, true))
}

// ReadJSON decodes a JSON plan from r.
//
// The input is a nested node object: a leaf has "label", "width", "height"
// and optional "x"/"y"; a cut has "cut" ("H" or "V"), "left", "right" and
// its measured "width"/"height". ReadJSON returns an error if the JSON is
// malformed, an orientation is unknown, or a cut is missing a child.
//
// The returned tree is independent of r and safe to mutate. ReadJSON does
// not close r.
func ReadJSON(r io.Reader) (Node, error) {
	var jn jsonNode
	if err := json.NewDecoder(r).Decode(&jn); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return fromJSONNode(&jn)
}

// UnmarshalPlan decodes a plan from its JSON encoding.
func UnmarshalPlan(data []byte) (Node, error) {
	var jn jsonNode
	if err := json.Unmarshal(data, &jn); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return fromJSONNode(&jn)
}

// ExportJSON writes the tree to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(n Node, placed bool, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(n, placed, f)
}

// ImportJSON reads a JSON file at path and returns the decoded plan.
func ImportJSON(path string) (Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
