package sfnt

// LocaFormat selects how the loca table encodes glyph offsets.
type LocaFormat int

const (
	LocaShort LocaFormat = iota // offsets are stored /2, i.e. multiply by 2 to get bytes
	LocaLong
)

// Head holds the fields of the head table this package needs.
type Head struct {
	UnitsPerEm int
	LocaFormat LocaFormat
}

// ParseHead reads the head table at offset.
func ParseHead(d Data, offset int) (Head, error) {
	if err := d.need(offset, 54); err != nil {
		return Head{}, FormatError("head table truncated")
	}
	upe, err := d.U16(offset + 18)
	if err != nil {
		return Head{}, err
	}
	format, err := d.I16(offset + 50)
	if err != nil {
		return Head{}, err
	}
	var lf LocaFormat
	switch format {
	case 0:
		lf = LocaShort
	case 1:
		lf = LocaLong
	default:
		return Head{}, UnsupportedError("indexToLocFormat")
	}
	return Head{UnitsPerEm: int(upe), LocaFormat: lf}, nil
}

// Hhea holds the fields of the hhea table this package needs.
type Hhea struct {
	Ascent, Descent, LineGap int16
	NumberOfHMetrics         int
}

// ParseHhea reads the hhea table at offset.
func ParseHhea(d Data, offset int) (Hhea, error) {
	if err := d.need(offset, 36); err != nil {
		return Hhea{}, FormatError("hhea table truncated")
	}
	ascent, err := d.I16(offset + 4)
	if err != nil {
		return Hhea{}, err
	}
	descent, err := d.I16(offset + 6)
	if err != nil {
		return Hhea{}, err
	}
	gap, err := d.I16(offset + 8)
	if err != nil {
		return Hhea{}, err
	}
	numLong, err := d.U16(offset + 34)
	if err != nil {
		return Hhea{}, err
	}
	return Hhea{Ascent: ascent, Descent: descent, LineGap: gap, NumberOfHMetrics: int(numLong)}, nil
}

// NumGlyphs reads maxp.numGlyphs, used to bound glyph id lookups.
func NumGlyphs(d Data, offset int) (int, error) {
	if err := d.need(offset, 6); err != nil {
		return 0, FormatError("maxp table truncated")
	}
	n, err := d.U16(offset + 4)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// HMetric holds a glyph's horizontal advance and left side bearing.
type HMetric struct {
	AdvanceWidth    int
	LeftSideBearing int
}

// HorMetrics returns the horizontal metrics for glyph id g, given the
// hmtx table offset and the hhea.NumberOfHMetrics partition.
func HorMetrics(d Data, hmtx int, numLong int, g int) (HMetric, error) {
	if g < numLong {
		off := hmtx + 4*g
		if err := d.need(off, 4); err != nil {
			return HMetric{}, FormatError("hmtx table truncated")
		}
		adv, err := d.U16(off)
		if err != nil {
			return HMetric{}, err
		}
		lsb, err := d.I16(off + 2)
		if err != nil {
			return HMetric{}, err
		}
		return HMetric{AdvanceWidth: int(adv), LeftSideBearing: int(lsb)}, nil
	}
	boundary := hmtx + 4*numLong
	if boundary < 4 {
		return HMetric{}, FormatError("bad hmtx partition")
	}
	advOff := boundary - 4
	if err := d.need(advOff, 4); err != nil {
		return HMetric{}, FormatError("hmtx table truncated")
	}
	adv, err := d.U16(advOff)
	if err != nil {
		return HMetric{}, err
	}
	lsbOff := boundary + 2*(g-numLong)
	if err := d.need(lsbOff, 2); err != nil {
		return HMetric{}, FormatError("hmtx table truncated")
	}
	lsb, err := d.I16(lsbOff)
	if err != nil {
		return HMetric{}, err
	}
	return HMetric{AdvanceWidth: int(adv), LeftSideBearing: int(lsb)}, nil
}

// OutlineOffset returns the offset into glyf at which glyph g's outline
// begins, or 0 if the glyph has an empty outline (loca[g] == loca[g+1]).
func OutlineOffset(d Data, loca, glyf int, lf LocaFormat, g int) (int, error) {
	var this, next uint32
	if lf == LocaShort {
		base := loca + 2*g
		if err := d.need(base, 4); err != nil {
			return 0, FormatError("loca table truncated")
		}
		a, err := d.U16(base)
		if err != nil {
			return 0, err
		}
		b, err := d.U16(base + 2)
		if err != nil {
			return 0, err
		}
		this, next = 2*uint32(a), 2*uint32(b)
	} else {
		base := loca + 4*g
		if err := d.need(base, 8); err != nil {
			return 0, FormatError("loca table truncated")
		}
		a, err := d.U32(base)
		if err != nil {
			return 0, err
		}
		b, err := d.U32(base + 4)
		if err != nil {
			return 0, err
		}
		this, next = a, b
	}
	if this == next {
		return 0, nil
	}
	return glyf + int(this), nil
}
