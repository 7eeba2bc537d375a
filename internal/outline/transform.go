package outline

import "math"

// Affine is a row-major 2x3 affine transform: [a b c d e f] maps
// (x,y) -> (x*a + y*c + e, x*b + y*d + f).
type Affine = affine

// NewAffine builds an Affine from its six components.
func NewAffine(a, b, c, d, e, f float64) Affine {
	return Affine{a, b, c, d, e, f}
}

// Transform applies m to every point in o, in place.
func Transform(o *Outline, m Affine) {
	transformPoints(o.Points, m)
}

// Clip clamps every point in o to the half-open rectangle
// [0, width) x [0, height), which the rasterizer's cell buffer covers.
// A coordinate exactly at the upper bound is pulled in to the largest
// representable value strictly below it, so the subsequent integer pixel
// index never reads past the buffer.
func Clip(o *Outline, width, height int) {
	w, h := float64(width), float64(height)
	maxX := math.Nextafter(w, 0)
	maxY := math.Nextafter(h, 0)
	for i, p := range o.Points {
		if p.X < 0 {
			p.X = 0
		} else if p.X >= w {
			p.X = maxX
		}
		if p.Y < 0 {
			p.Y = 0
		} else if p.Y >= h {
			p.Y = maxY
		}
		o.Points[i] = p
	}
}
