package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/floorslice/floorslice/pkg/plan"
)

// ToDOT converts a slicing tree to Graphviz DOT format for node-link
// visualization. Cut nodes are drawn as filled circles labelled with their
// operator (and, once measured, their enclosing rectangle); leaves are boxes
// labelled with block number and dimensions.
//
// The resulting DOT string can be rendered with [GraphSVG] or [GraphPNG].
func ToDOT(root plan.Node) string {
	var buf bytes.Buffer
	buf.WriteString("digraph plan {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("\n")

	nextID := 0
	writeDOTNode(&buf, root, &nextID)

	buf.WriteString("}\n")
	return buf.String()
}

// writeDOTNode emits the subtree rooted at n and returns its DOT node name.
func writeDOTNode(buf *bytes.Buffer, n plan.Node, nextID *int) string {
	id := fmt.Sprintf("n%d", *nextID)
	*nextID++

	switch v := n.(type) {
	case *plan.Leaf:
		fmt.Fprintf(buf, "  %s [shape=box, style=\"rounded,filled\", fillcolor=white, label=%q];\n",
			id, fmt.Sprintf("%d\n%dx%d", v.Label, v.Width, v.Height))
	case *plan.Cut:
		label := v.Dir.String()
		if v.Width > 0 && v.Height > 0 {
			label = fmt.Sprintf("%s\n%dx%d", v.Dir, v.Width, v.Height)
		}
		fmt.Fprintf(buf, "  %s [shape=circle, style=filled, fillcolor=lightgrey, label=%q];\n", id, label)
		left := writeDOTNode(buf, v.Left, nextID)
		right := writeDOTNode(buf, v.Right, nextID)
		fmt.Fprintf(buf, "  %s -> %s [label=\"L\", fontsize=10];\n", id, left)
		fmt.Fprintf(buf, "  %s -> %s [label=\"R\", fontsize=10];\n", id, right)
	}
	return id
}

// GraphSVG renders a DOT graph to SVG using Graphviz.
func GraphSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.SVG)
}

// GraphPNG renders a DOT graph to PNG using Graphviz.
func GraphPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", strings.ToLower(string(format)), err)
	}
	return buf.Bytes(), nil
}
