package outline

const (
	tesselateStackSize = 10
	flatness           = 0.5
)

// isFlat reports whether curve's control point deviates from the
// midpoint of its endpoints by no more than flatness, in which case the
// curve is visually indistinguishable from the straight line between
// its endpoints.
func isFlat(o *Outline, c Curve) bool {
	beg, end, ctrl := o.Points[c.Beg], o.Points[c.End], o.Points[c.Ctrl]
	mid := midpoint(beg, end)
	x := ctrl.X - mid.X
	y := ctrl.Y - mid.Y
	return x*x+y*y <= flatness*flatness
}

// Tesselate flattens every quadratic curve in o into line segments via
// recursive midpoint subdivision, appending the segments to o.Lines. The
// curve list itself is left untouched; callers that only want line
// segments should consult o.Lines after calling Tesselate.
func Tesselate(o *Outline) {
	for _, c := range o.Curves {
		tesselateCurve(o, c)
	}
}

// tesselateCurve subdivides c using an explicit stack rather than
// recursion, bounded to a depth that comfortably covers any font size
// worth rendering.
func tesselateCurve(o *Outline, c Curve) {
	var stack [tesselateStackSize]Curve
	top := 0
	for {
		if isFlat(o, c) || top >= tesselateStackSize {
			o.addLine(Line{Beg: c.Beg, End: c.End})
			if top == 0 {
				return
			}
			top--
			c = stack[top]
			continue
		}
		ctrl0 := o.addPoint(midpoint(o.Points[c.Beg], o.Points[c.Ctrl]))
		ctrl1 := o.addPoint(midpoint(o.Points[c.Ctrl], o.Points[c.End]))
		pivot := o.addPoint(midpoint(o.Points[ctrl0], o.Points[ctrl1]))

		stack[top] = Curve{Beg: pivot, End: c.End, Ctrl: ctrl1}
		top++
		c = Curve{Beg: c.Beg, End: pivot, Ctrl: ctrl0}
	}
}
