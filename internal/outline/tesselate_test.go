package outline

import "testing"

func TestIsFlatStraightControlPoint(t *testing.T) {
	o := New()
	o.Points = []Point{{0, 0}, {10, 0}, {5, 0}}
	c := Curve{Beg: 0, End: 1, Ctrl: 2}
	if !isFlat(o, c) {
		t.Errorf("control point on the chord midpoint should be flat")
	}
}

func TestIsFlatSharpCurve(t *testing.T) {
	o := New()
	o.Points = []Point{{0, 0}, {10, 0}, {5, 100}}
	c := Curve{Beg: 0, End: 1, Ctrl: 2}
	if isFlat(o, c) {
		t.Errorf("far-off control point should not be flat")
	}
}

func TestTesselateCurveProducesLines(t *testing.T) {
	o := New()
	o.Points = []Point{{0, 0}, {10, 0}, {5, 100}}
	o.Curves = []Curve{{Beg: 0, End: 1, Ctrl: 2}}
	Tesselate(o)
	if len(o.Lines) == 0 {
		t.Fatalf("expected at least one flattened line segment")
	}
	// The flattened path must start at Beg and end at End.
	first := o.Points[o.Lines[0].Beg]
	if first != (Point{0, 0}) {
		t.Errorf("first line segment should start at curve.Beg, got %+v", first)
	}
	last := o.Points[o.Lines[len(o.Lines)-1].End]
	if last != (Point{10, 0}) {
		t.Errorf("last line segment should end at curve.End, got %+v", last)
	}
}

func TestTesselateCurveAlreadyFlat(t *testing.T) {
	o := New()
	o.Points = []Point{{0, 0}, {10, 0}, {5, 0}}
	o.Curves = []Curve{{Beg: 0, End: 1, Ctrl: 2}}
	Tesselate(o)
	if len(o.Lines) != 1 {
		t.Errorf("flat curve should tesselate to exactly one line, got %d", len(o.Lines))
	}
}
