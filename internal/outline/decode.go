package outline

import "github.com/inkwell-gfx/schrift/internal/sfnt"

const maxCompoundDepth = 4

// simple glyph flag bits.
const (
	flagOnCurve      = 0x01
	flagXShort       = 0x02
	flagYShort       = 0x04
	flagRepeat       = 0x08
	flagXSameOrPos   = 0x10
	flagYSameOrPos   = 0x20
)

// compound glyph component flag bits.
const (
	compOffsetsAreLarge     = 0x0001
	compActualXYOffsets     = 0x0002
	compSingleScale         = 0x0008
	compMoreComponents      = 0x0020
	compXAndYScale          = 0x0040
	compScaleMatrix         = 0x0080
)

// Source bundles the table offsets Decode needs to resolve component
// glyph outlines while walking a compound glyph.
type Source struct {
	Data       sfnt.Data
	Glyf       int
	Loca       int
	LocaFormat sfnt.LocaFormat
}

// Decode appends glyph g's outline (located at the absolute glyf offset
// glyphOffset) onto out. Composite components are decoded recursively,
// up to a depth of 4; deeper nesting is treated as malformed input
// rather than a crash risk.
func Decode(src Source, glyphOffset int, out *Outline) error {
	return decodeOutline(src, glyphOffset, 0, out)
}

func decodeOutline(src Source, offset, depth int, out *Outline) error {
	d := src.Data
	if err := d.Need(offset, 10); err != nil {
		return CorruptOutlineError("glyph header truncated")
	}
	numContours, err := d.I16(offset)
	if err != nil {
		return err
	}
	if numContours >= 0 {
		return simpleOutline(d, offset+10, int(numContours), out)
	}
	return compoundOutline(src, offset+10, depth, out)
}

func simpleOutline(d sfnt.Data, offset int, numContours int, out *Outline) error {
	basePoint := len(out.Points)

	if err := d.Need(offset, numContours*2+2); err != nil {
		return CorruptOutlineError("simple glyph truncated")
	}
	last, err := d.U16(offset + (numContours-1)*2)
	if err != nil {
		return err
	}
	numPts := int(last) + 1

	endPts := make([]int, numContours)
	o := offset
	for i := 0; i < numContours; i++ {
		v, err := d.U16(o)
		if err != nil {
			return err
		}
		endPts[i] = int(v)
		o += 2
	}
	for i := 0; i < numContours-1; i++ {
		if endPts[i+1] < endPts[i]+1 {
			return CorruptOutlineError("non-monotone contour endpoints")
		}
	}

	insLen, err := d.U16(o)
	if err != nil {
		return err
	}
	o += 2 + int(insLen)

	flags := make([]byte, numPts)
	o, err = simpleFlags(d, o, numPts, flags)
	if err != nil {
		return err
	}

	pts, err := simplePoints(d, o, numPts, flags)
	if err != nil {
		return err
	}
	out.Points = append(out.Points, pts...)

	contourBase := 0
	flagsOff := 0
	pointBase := basePoint
	for c := 0; c < numContours; c++ {
		count := endPts[c] - contourBase + 1
		if err := decodeContour(out, flags[flagsOff:flagsOff+count], pointBase, count); err != nil {
			return err
		}
		flagsOff += count
		pointBase += count
		contourBase += count
	}
	return nil
}

// simpleFlags run-length decodes numPts glyph flags starting at offset,
// returning the offset immediately after the flags stream.
func simpleFlags(d sfnt.Data, offset, numPts int, flags []byte) (int, error) {
	value := byte(0)
	repeat := 0
	for i := 0; i < numPts; i++ {
		if repeat > 0 {
			repeat--
		} else {
			v, err := d.U8(offset)
			if err != nil {
				return 0, err
			}
			offset++
			value = v
			if value&flagRepeat != 0 {
				r, err := d.U8(offset)
				if err != nil {
					return 0, err
				}
				offset++
				repeat = int(r)
			}
		}
		flags[i] = value
	}
	return offset, nil
}

// simplePoints decodes the X and Y delta-coordinate streams following
// the flags, returning absolute point coordinates in font units.
func simplePoints(d sfnt.Data, offset, numPts int, flags []byte) ([]Point, error) {
	pts := make([]Point, numPts)

	accum := 0
	for i := 0; i < numPts; i++ {
		switch {
		case flags[i]&flagXShort != 0:
			v, err := d.U8(offset)
			if err != nil {
				return nil, err
			}
			offset++
			if flags[i]&flagXSameOrPos != 0 {
				accum += int(v)
			} else {
				accum -= int(v)
			}
		case flags[i]&flagXSameOrPos == 0:
			v, err := d.I16(offset)
			if err != nil {
				return nil, err
			}
			offset += 2
			accum += int(v)
		}
		pts[i].X = float64(accum)
	}

	accum = 0
	for i := 0; i < numPts; i++ {
		switch {
		case flags[i]&flagYShort != 0:
			v, err := d.U8(offset)
			if err != nil {
				return nil, err
			}
			offset++
			if flags[i]&flagYSameOrPos != 0 {
				accum += int(v)
			} else {
				accum -= int(v)
			}
		case flags[i]&flagYSameOrPos == 0:
			v, err := d.I16(offset)
			if err != nil {
				return nil, err
			}
			offset += 2
			accum += int(v)
		}
		pts[i].Y = float64(accum)
	}

	return pts, nil
}

// decodeContour converts one contour's run of on/off-curve points,
// already appended to out.Points at [basePoint, basePoint+count), into
// lines and quadratic curves. Contours with fewer than two points carry
// no area and are skipped, matching the reference decoder.
func decodeContour(out *Outline, flags []byte, basePoint, count int) error {
	if count < 2 {
		return nil
	}

	var looseEnd int
	if flags[0]&flagOnCurve != 0 {
		looseEnd = basePoint
		basePoint++
		flags = flags[1:]
		count--
	} else if flags[count-1]&flagOnCurve != 0 {
		count--
		looseEnd = basePoint + count
	} else {
		looseEnd = out.addPoint(midpoint(out.Points[basePoint], out.Points[basePoint+count-1]))
	}

	beg := looseEnd
	gotCtrl := false
	ctrl := 0
	for i := 0; i < count; i++ {
		if flags[i]&flagOnCurve != 0 {
			if gotCtrl {
				out.addCurve(Curve{Beg: beg, End: basePoint + i, Ctrl: ctrl})
			} else {
				out.addLine(Line{Beg: beg, End: basePoint + i})
			}
			beg = basePoint + i
			gotCtrl = false
		} else {
			if gotCtrl {
				center := out.addPoint(midpoint(out.Points[ctrl], out.Points[basePoint+i]))
				out.addCurve(Curve{Beg: beg, End: center, Ctrl: ctrl})
				beg = center
			}
			ctrl = basePoint + i
			gotCtrl = true
		}
	}
	if gotCtrl {
		out.addCurve(Curve{Beg: beg, End: looseEnd, Ctrl: ctrl})
	} else {
		out.addLine(Line{Beg: beg, End: looseEnd})
	}
	return nil
}

// affine is a row-major 2x3 affine transform: [a b c d e f] maps
// (x,y) -> (x*a + y*c + e, x*b + y*d + f).
type affine [6]float64

func transformPoints(pts []Point, m affine) {
	for i, p := range pts {
		pts[i] = Point{
			X: p.X*m[0] + p.Y*m[2] + m[4],
			Y: p.X*m[1] + p.Y*m[3] + m[5],
		}
	}
}

func compoundOutline(src Source, offset, depth int, out *Outline) error {
	if depth >= maxCompoundDepth {
		return CorruptOutlineError("compound glyph recursion too deep")
	}
	d := src.Data
	for {
		local := affine{}
		if err := d.Need(offset, 4); err != nil {
			return CorruptOutlineError("compound component header truncated")
		}
		flagsU, err := d.U16(offset)
		if err != nil {
			return err
		}
		glyph, err := d.U16(offset + 2)
		if err != nil {
			return err
		}
		offset += 4
		flags := int(flagsU)

		if flags&compActualXYOffsets == 0 {
			return sfnt.UnsupportedError("point-matched compound components")
		}
		if flags&compOffsetsAreLarge != 0 {
			if err := d.Need(offset, 4); err != nil {
				return CorruptOutlineError("compound component offsets truncated")
			}
			x, err := d.I16(offset)
			if err != nil {
				return err
			}
			y, err := d.I16(offset + 2)
			if err != nil {
				return err
			}
			local[4], local[5] = float64(x), float64(y)
			offset += 4
		} else {
			if err := d.Need(offset, 2); err != nil {
				return CorruptOutlineError("compound component offsets truncated")
			}
			x, err := d.I8(offset)
			if err != nil {
				return err
			}
			y, err := d.I8(offset + 1)
			if err != nil {
				return err
			}
			local[4], local[5] = float64(x), float64(y)
			offset += 2
		}

		switch {
		case flags&compSingleScale != 0:
			if err := d.Need(offset, 2); err != nil {
				return CorruptOutlineError("compound scale truncated")
			}
			v, err := d.I16(offset)
			if err != nil {
				return err
			}
			local[0] = float64(v) / 16384.0
			local[3] = local[0]
			offset += 2
		case flags&compXAndYScale != 0:
			if err := d.Need(offset, 4); err != nil {
				return CorruptOutlineError("compound scale truncated")
			}
			vx, err := d.I16(offset)
			if err != nil {
				return err
			}
			vy, err := d.I16(offset + 2)
			if err != nil {
				return err
			}
			local[0] = float64(vx) / 16384.0
			local[3] = float64(vy) / 16384.0
			offset += 4
		case flags&compScaleMatrix != 0:
			if err := d.Need(offset, 8); err != nil {
				return CorruptOutlineError("compound matrix truncated")
			}
			a, err := d.I16(offset)
			if err != nil {
				return err
			}
			b, err := d.I16(offset + 2)
			if err != nil {
				return err
			}
			c, err := d.I16(offset + 4)
			if err != nil {
				return err
			}
			e, err := d.I16(offset + 6)
			if err != nil {
				return err
			}
			local[0] = float64(a) / 16384.0
			local[1] = float64(b) / 16384.0
			local[2] = float64(c) / 16384.0
			local[3] = float64(e) / 16384.0
			offset += 8
		default:
			local[0] = 1.0
			local[3] = 1.0
		}

		// Apple's spec says to normalize this matrix by its L1 norm; FreeType
		// doesn't normalize at all. We follow FreeType.
		componentOffset, err := sfnt.OutlineOffset(d, src.Loca, src.Glyf, src.LocaFormat, int(glyph))
		if err != nil {
			return err
		}
		if componentOffset != 0 {
			base := len(out.Points)
			if err := decodeOutline(src, componentOffset, depth+1, out); err != nil {
				return err
			}
			transformPoints(out.Points[base:], local)
		}

		if flags&compMoreComponents == 0 {
			break
		}
	}
	return nil
}
