// Package render turns settled slicing plans into visual artifacts.
//
// Two sinks are provided: an SVG floorplan drawing every placed block as a
// labelled rectangle, and a Graphviz node-link rendering of the slicing tree
// itself (DOT text, or SVG/PNG rasterized through the graphviz engine).
// Both sinks read the tree without mutating it and require the geometry
// passes to have run.
package render

import (
	"bytes"
	"fmt"

	"github.com/floorslice/floorslice/pkg/plan"
)

// DefaultScale is the default number of SVG user units per plan unit.
const DefaultScale = 10

// palette cycles block fill colors so adjacent blocks are distinguishable.
var palette = []string{
	"#a8dadc", "#f4a261", "#e9c46a", "#90be6d", "#f28482", "#b5c7eb",
}

// SVGOption configures the floorplan SVG sink.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale      int
	showLabels bool
}

// WithScale sets the number of SVG user units per plan unit.
func WithScale(scale int) SVGOption {
	return func(r *svgRenderer) {
		if scale > 0 {
			r.scale = scale
		}
	}
}

// WithoutLabels suppresses the block label text.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.showLabels = false } }

// FloorplanSVG renders the placed blocks of a measured plan as SVG.
//
// Plan coordinates put the origin at the bottom-left with y growing upward;
// SVG puts it at the top-left with y growing downward, so block y positions
// are flipped against the enclosing rectangle's height.
func FloorplanSVG(root plan.Node, opts ...SVGOption) []byte {
	r := svgRenderer{scale: DefaultScale, showLabels: true}
	for _, opt := range opts {
		opt(&r)
	}

	totalW, totalH := root.Size()
	w, h := totalW*r.scale, totalH*r.scale

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		w, h, w, h)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%d" height="%d" fill="white" stroke="none"/>`+"\n", w, h)

	leaves := plan.Leaves(root, nil)
	for i, l := range leaves {
		x := l.X * r.scale
		y := (totalH - l.Y - l.Height) * r.scale
		bw := l.Width * r.scale
		bh := l.Height * r.scale
		fill := palette[i%len(palette)]
		fmt.Fprintf(&buf, `  <rect x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="#1d3557" stroke-width="1"/>`+"\n",
			x, y, bw, bh, fill)
	}

	if r.showLabels {
		for _, l := range leaves {
			cx := (l.X*2 + l.Width) * r.scale / 2
			cy := (totalH*2 - l.Y*2 - l.Height) * r.scale / 2
			fmt.Fprintf(&buf, `  <text x="%d" y="%d" font-family="sans-serif" font-size="%d" fill="#1d3557" text-anchor="middle" dominant-baseline="central">%d</text>`+"\n",
				cx, cy, r.scale, l.Label)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
