package plan

import (
	"bufio"
	"fmt"
	"io"
)

// The three report emitters below generate output lines one at a time via
// callback, in the same lazy style as iterating permutations elsewhere:
// emit is called for each line and returns false to stop early. Each emitter
// reports whether the traversal ran to completion. None of them mutates the
// tree, but Dimensions must run after Measure and Coordinates after Place,
// since they read the values those passes compute.

// Structure emits the pre-order structure report: one line per node, the
// leaf descriptor `label(width,height)` with the intrinsic input dimensions
// for a leaf, or the bare operator character for a cut.
//
// Leaf dimensions are immutable after Build, so this report echoes the input
// geometry regardless of whether Measure has run.
func Structure(n Node, emit func(line string) bool) bool {
	switch v := n.(type) {
	case *Leaf:
		return emit(fmt.Sprintf("%d(%d,%d)", v.Label, v.Width, v.Height))
	case *Cut:
		return emit(v.Dir.String()) && Structure(v.Left, emit) && Structure(v.Right, emit)
	}
	return true
}

// Dimensions emits the post-order dimension report: `label(width,height)`
// for a leaf, `operator(width,height)` for a cut, using the enclosing
// rectangles computed by Measure.
func Dimensions(n Node, emit func(line string) bool) bool {
	switch v := n.(type) {
	case *Leaf:
		return emit(fmt.Sprintf("%d(%d,%d)", v.Label, v.Width, v.Height))
	case *Cut:
		return Dimensions(v.Left, emit) && Dimensions(v.Right, emit) &&
			emit(fmt.Sprintf("%s(%d,%d)", v.Dir, v.Width, v.Height))
	}
	return true
}

// Coordinates emits the pre-order coordinate report. Only leaves produce
// lines, in the form `label((width,height)(x,y))`; cuts are traversed
// silently. Requires Place to have run.
func Coordinates(n Node, emit func(line string) bool) bool {
	switch v := n.(type) {
	case *Leaf:
		return emit(fmt.Sprintf("%d((%d,%d)(%d,%d))", v.Label, v.Width, v.Height, v.X, v.Y))
	case *Cut:
		return Coordinates(v.Left, emit) && Coordinates(v.Right, emit)
	}
	return true
}

// Report identifies one of the three traversal reports.
type Report string

const (
	ReportStructure   Report = "structure"
	ReportDimensions  Report = "dimensions"
	ReportCoordinates Report = "coordinates"
)

// Reports lists all report kinds in their batch emission order.
var Reports = []Report{ReportStructure, ReportDimensions, ReportCoordinates}

// emitters maps each report kind to its traversal.
var emitters = map[Report]func(Node, func(string) bool) bool{
	ReportStructure:   Structure,
	ReportDimensions:  Dimensions,
	ReportCoordinates: Coordinates,
}

// WriteReport writes the given report for the tree rooted at n to w, one
// line per emitted entry.
func WriteReport(w io.Writer, n Node, kind Report) error {
	emitFn, ok := emitters[kind]
	if !ok {
		return fmt.Errorf("unknown report kind: %s", kind)
	}

	bw := bufio.NewWriter(w)
	var writeErr error
	emitFn(n, func(line string) bool {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			writeErr = err
			return false
		}
		return true
	})
	if writeErr != nil {
		return writeErr
	}
	return bw.Flush()
}

// RenderReport returns the full report as a byte slice.
func RenderReport(n Node, kind Report) ([]byte, error) {
	var buf []byte
	emitFn, ok := emitters[kind]
	if !ok {
		return nil, fmt.Errorf("unknown report kind: %s", kind)
	}
	emitFn(n, func(line string) bool {
		buf = append(buf, line...)
		buf = append(buf, '\n')
		return true
	})
	return buf, nil
}
