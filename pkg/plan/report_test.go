package plan

import (
	"bytes"
	"strings"
	"testing"
)

func collect(emitter func(Node, func(string) bool) bool, n Node) []string {
	var lines []string
	emitter(n, func(line string) bool {
		lines = append(lines, line)
		return true
	})
	return lines
}

func TestStructure_PreOrder(t *testing.T) {
	root := build(t, complexPlan)

	got := collect(Structure, root)
	want := []string{"H", "V", "H", "1(2,3)", "2(4,5)", "V", "3(3,2)", "4(1,4)", "5(8,2)"}
	if !equalLines(got, want) {
		t.Errorf("structure lines = %v, want %v", got, want)
	}
}

func TestDimensions_PostOrder(t *testing.T) {
	root := settle(t, "1(2,3)\n2(4,5)\nH\n")

	got := collect(Dimensions, root)
	want := []string{"1(2,3)", "2(4,5)", "H(4,8)"}
	if !equalLines(got, want) {
		t.Errorf("dimension lines = %v, want %v", got, want)
	}
}

func TestCoordinates_LeavesOnly(t *testing.T) {
	root := settle(t, "1(2,3)\n2(4,5)\nH\n")

	got := collect(Coordinates, root)
	want := []string{"1((2,3)(0,5))", "2((4,5)(0,0))"}
	if !equalLines(got, want) {
		t.Errorf("coordinate lines = %v, want %v", got, want)
	}
}

func TestCoordinates_SingleLeaf(t *testing.T) {
	root := settle(t, "7(10,20)\n")

	got := collect(Coordinates, root)
	want := []string{"7((10,20)(0,0))"}
	if !equalLines(got, want) {
		t.Errorf("coordinate lines = %v, want %v", got, want)
	}
}

func TestEmitters_EarlyStop(t *testing.T) {
	root := settle(t, complexPlan)

	for name, emitter := range map[string]func(Node, func(string) bool) bool{
		"structure":   Structure,
		"dimensions":  Dimensions,
		"coordinates": Coordinates,
	} {
		t.Run(name, func(t *testing.T) {
			var seen int
			done := emitter(root, func(string) bool {
				seen++
				return seen < 2
			})
			if done {
				t.Error("emitter reported completion after early stop")
			}
			if seen != 2 {
				t.Errorf("callback invoked %d times, want 2", seen)
			}
		})
	}
}

func TestWriteReport(t *testing.T) {
	root := settle(t, "1(2,3)\n2(4,5)\nH\n")

	var buf bytes.Buffer
	if err := WriteReport(&buf, root, ReportDimensions); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	want := "1(2,3)\n2(4,5)\nH(4,8)\n"
	if buf.String() != want {
		t.Errorf("WriteReport output = %q, want %q", buf.String(), want)
	}
}

func TestWriteReport_UnknownKind(t *testing.T) {
	root := settle(t, "7(10,20)\n")
	if err := WriteReport(&bytes.Buffer{}, root, Report("bogus")); err == nil {
		t.Error("expected error for unknown report kind")
	}
}

func TestRenderReport_MatchesWrite(t *testing.T) {
	root := settle(t, complexPlan)

	for _, kind := range Reports {
		var buf bytes.Buffer
		if err := WriteReport(&buf, root, kind); err != nil {
			t.Fatalf("WriteReport(%s): %v", kind, err)
		}
		data, err := RenderReport(root, kind)
		if err != nil {
			t.Fatalf("RenderReport(%s): %v", kind, err)
		}
		if !bytes.Equal(data, buf.Bytes()) {
			t.Errorf("RenderReport(%s) differs from WriteReport output", kind)
		}
	}
}

// The structure report is a pre-order rendering of exactly the tokens the
// builder consumed, so feeding it back through Build must reproduce an
// isomorphic plan.
func TestStructure_RoundTrip(t *testing.T) {
	root := settle(t, complexPlan)

	data, err := RenderReport(root, ReportDimensions)
	if err != nil {
		t.Fatalf("RenderReport: %v", err)
	}
	// The dimension report is post-order with cut sizes; strip the sizes
	// back to bare operators to recover the original token stream.
	var sb strings.Builder
	for _, line := range strings.Split(strings.TrimSuffix(string(data), "\n"), "\n") {
		if line[0] == 'H' || line[0] == 'V' {
			sb.WriteByte(line[0])
			sb.WriteByte('\n')
			continue
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	rebuilt := settle(t, sb.String())
	orig, err := MarshalPlan(root)
	if err != nil {
		t.Fatalf("MarshalPlan: %v", err)
	}
	again, err := MarshalPlan(rebuilt)
	if err != nil {
		t.Fatalf("MarshalPlan: %v", err)
	}
	if !bytes.Equal(orig, again) {
		t.Error("rebuilt plan differs from original")
	}
}

func equalLines(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
