package outline

import (
	"testing"

	"github.com/inkwell-gfx/schrift/internal/sfnt"
)

func put16(b []byte, off int, v uint16) {
	b[off], b[off+1] = byte(v>>8), byte(v)
}

// buildSimpleGlyph assembles the body of a simple glyph (everything after
// the 10-byte numContours+bbox header) for one contour whose points are
// all on-curve, using int16 deltas throughout for simplicity.
func buildSimpleGlyph(dxs, dys []int16) []byte {
	n := len(dxs)
	var b []byte
	endPts := make([]byte, 2)
	put16(endPts, 0, uint16(n-1))
	b = append(b, endPts...)
	b = append(b, 0, 0) // instructionLength = 0

	flags := make([]byte, n)
	for i := range flags {
		flags[i] = flagOnCurve
	}
	b = append(b, flags...)

	for _, dx := range dxs {
		buf := make([]byte, 2)
		put16(buf, 0, uint16(dx))
		b = append(b, buf...)
	}
	for _, dy := range dys {
		buf := make([]byte, 2)
		put16(buf, 0, uint16(dy))
		b = append(b, buf...)
	}
	return b
}

func TestSimpleOutlineTriangle(t *testing.T) {
	body := buildSimpleGlyph([]int16{0, 10, -5}, []int16{0, 0, 10})
	o := New()
	if err := simpleOutline(sfnt.Data(body), 0, 1, o); err != nil {
		t.Fatalf("simpleOutline: %v", err)
	}
	if len(o.Points) != 3 {
		t.Fatalf("got %d points, want 3", len(o.Points))
	}
	want := []Point{{0, 0}, {10, 0}, {5, 10}}
	for i, p := range want {
		if o.Points[i] != p {
			t.Errorf("point %d: got %+v, want %+v", i, o.Points[i], p)
		}
	}
	if len(o.Lines) != 3 {
		t.Errorf("got %d lines, want 3 (closed triangle)", len(o.Lines))
	}
	if len(o.Curves) != 0 {
		t.Errorf("got %d curves, want 0 for an all-on-curve contour", len(o.Curves))
	}
}

func TestSimpleOutlineRejectsNonMonotoneEndpoints(t *testing.T) {
	// Two contours whose endPts go backwards: [2, 1].
	b := []byte{0, 2, 0, 1, 0, 0}
	o := New()
	// Need enough points for offset math; endPts say contour0 ends at 2
	// (3 pts) and contour1 ends at 1, which is before contour0's end.
	if err := simpleOutline(sfnt.Data(b), 0, 2, o); err == nil {
		t.Errorf("simpleOutline with non-monotone endpoints: got nil error")
	}
}

func TestDecodeContourOffCurveProducesCurve(t *testing.T) {
	o := New()
	// on, off, on: a single quadratic curve from point 0 to point 2 via
	// control point 1.
	o.Points = []Point{{0, 0}, {5, 10}, {10, 0}}
	flags := []byte{flagOnCurve, 0, flagOnCurve}
	if err := decodeContour(o, flags, 0, 3); err != nil {
		t.Fatalf("decodeContour: %v", err)
	}
	if len(o.Curves) != 1 {
		t.Fatalf("got %d curves, want 1", len(o.Curves))
	}
	c := o.Curves[0]
	if c.Beg != 0 || c.Ctrl != 1 || c.End != 2 {
		t.Errorf("curve: got %+v, want {Beg:0 Ctrl:1 End:2}", c)
	}
}

func TestDecodeContourShortSkipped(t *testing.T) {
	o := New()
	o.Points = []Point{{0, 0}}
	if err := decodeContour(o, []byte{flagOnCurve}, 0, 1); err != nil {
		t.Fatalf("decodeContour: %v", err)
	}
	if len(o.Lines) != 0 || len(o.Curves) != 0 {
		t.Errorf("single-point contour should add nothing")
	}
}

func TestCompoundOutlineRejectsPointMatching(t *testing.T) {
	b := make([]byte, 4)
	put16(b, 0, 0) // flags: no ACTUAL_XY_OFFSETS, no MORE_COMPONENTS
	put16(b, 2, 0) // glyph index 0
	src := Source{Data: sfnt.Data(b)}
	o := New()
	if err := compoundOutline(src, 0, 0, o); err == nil {
		t.Errorf("compoundOutline without ACTUAL_XY_OFFSETS: got nil error")
	}
}

func TestCompoundOutlineRecursionLimit(t *testing.T) {
	b := make([]byte, 4)
	put16(b, 0, compActualXYOffsets)
	put16(b, 2, 0)
	src := Source{Data: sfnt.Data(b)}
	o := New()
	if err := compoundOutline(src, 0, maxCompoundDepth, o); err == nil {
		t.Errorf("compoundOutline at max depth: got nil error")
	}
}
