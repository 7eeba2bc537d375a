package sfnt

const (
	kernHorizontal   = 0x01
	kernMinimum      = 0x02
	kernCrossStream  = 0x04
	kernOverride     = 0x08 // unused by format 0, kept for documentation parity with schrift.c
)

// Kern holds the two accumulated kerning axes: the regular horizontal
// value and the cross-stream value, both in font units.
type Kern struct {
	X, Y int
}

// WalkKern accumulates the kerning correction for the (left, right) glyph
// pair across every version-0 kern subtable. Format-0 subtables flagged
// HORIZONTAL and not MINIMUM contribute to X (or Y, if CROSS_STREAM is
// set). The absence of a matching pair yields zeros rather than an
// error; data too short for the kern header is a FormatError, and a kern
// version other than 0 is an UnsupportedError.
func WalkKern(d Data, kern int, left, right uint16) (Kern, error) {
	var out Kern
	if err := d.need(kern, 4); err != nil {
		return out, FormatError("kern table truncated")
	}
	version, err := d.U16(kern)
	if err != nil {
		return out, err
	}
	if version != 0 {
		// kern v1 (Apple, AAT) uses a different header layout entirely.
		return out, UnsupportedError("kern table version")
	}
	numTables, err := d.U16(kern + 2)
	if err != nil {
		return out, err
	}
	offset := kern + 4
	for i := 0; i < int(numTables); i++ {
		if err := d.need(offset, 6); err != nil {
			return out, FormatError("kern subtable header truncated")
		}
		start := offset
		length, err := d.U16(offset + 2)
		if err != nil {
			return out, err
		}
		format, err := d.U8(offset + 4)
		if err != nil {
			return out, err
		}
		flags, err := d.U8(offset + 5)
		if err != nil {
			return out, err
		}
		offset += 6

		if format == 0 && flags&kernHorizontal != 0 && flags&kernMinimum == 0 {
			value, found, err := searchKernPairs(d, offset, left, right)
			if err != nil {
				return out, err
			}
			if found {
				if flags&kernCrossStream != 0 {
					out.Y += value
				} else {
					out.X += value
				}
			}
		}

		// A subtable's length field counts its own 6-byte header.
		offset = start + int(length)
	}
	return out, nil
}

// searchKernPairs binary-searches a format-0 subtable's sorted pair list
// (6-byte records: left uint16, right uint16, value int16) for the
// (left, right) key. offset points at the subtable body, starting with
// nPairs and three search-acceleration fields schrift.c never reads.
func searchKernPairs(d Data, offset int, left, right uint16) (value int, found bool, err error) {
	if err := d.need(offset, 8); err != nil {
		return 0, false, FormatError("kern format 0 header truncated")
	}
	numPairs, err := d.U16(offset)
	if err != nil {
		return 0, false, err
	}
	pairs := offset + 8
	if err := d.need(pairs, int(numPairs)*6); err != nil {
		return 0, false, FormatError("kern pair list truncated")
	}
	key := uint32(left)<<16 | uint32(right)
	lo, hi := 0, int(numPairs)
	for lo < hi {
		mid := lo + (hi-lo)/2
		rec := pairs + mid*6
		l, err := d.U16(rec)
		if err != nil {
			return 0, false, err
		}
		r, err := d.U16(rec + 2)
		if err != nil {
			return 0, false, err
		}
		cand := uint32(l)<<16 | uint32(r)
		switch {
		case cand < key:
			lo = mid + 1
		case cand > key:
			hi = mid
		default:
			v, err := d.I16(rec + 4)
			if err != nil {
				return 0, false, err
			}
			return int(v), true, nil
		}
	}
	return 0, false, nil
}
