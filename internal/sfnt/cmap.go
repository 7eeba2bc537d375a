package sfnt

// GlyphID resolves a Unicode code point to a glyph id using the cmap
// table at the given offset. It picks the first encoding record whose
// (platform, encoding) pair is {0,3} (Unicode BMP) or {3,1} (Microsoft
// Unicode BMP), and dispatches to the subtable's format. Code points
// above 0xFFFF always yield glyph 0 (this package covers the BMP only).
func GlyphID(d Data, cmap int, code uint32) (int, error) {
	if code > 0xFFFF {
		return 0, nil
	}
	format, table, err := unicodeBMPSubtable(d, cmap)
	if err != nil {
		return 0, err
	}
	switch format {
	case 4:
		return cmapFormat4(d, table+6, code)
	case 6:
		return cmapFormat6(d, table+6, code)
	default:
		return 0, UnsupportedError("cmap subtable format")
	}
}

// Coverage reports how many code points the font's cmap table at offset
// covers: for format 4, every code point of every segment except the
// 0xFFFF terminator, including any that map to glyph 0; for format 6,
// the entries with a non-zero glyph id. It is a reporting aid
// (see cmd/schriftdump), not something the rasterization pipeline
// itself needs.
func Coverage(d Data, cmap int) (int, error) {
	format, table, err := unicodeBMPSubtable(d, cmap)
	if err != nil {
		return 0, err
	}
	switch format {
	case 4:
		return cmapFormat4Coverage(d, table+6)
	case 6:
		return cmapFormat6Coverage(d, table+6)
	default:
		return 0, UnsupportedError("cmap subtable format")
	}
}

// unicodeBMPSubtable finds the cmap table's first Unicode BMP encoding
// record ({0,3} or {3,1}) and returns its subtable format and offset.
func unicodeBMPSubtable(d Data, cmap int) (format uint16, table int, err error) {
	if err := d.need(cmap, 4); err != nil {
		return 0, 0, FormatError("cmap table truncated")
	}
	numTables, err := d.U16(cmap + 2)
	if err != nil {
		return 0, 0, err
	}
	if err := d.need(cmap+4, int(numTables)*8); err != nil {
		return 0, 0, FormatError("cmap table truncated")
	}
	for i := 0; i < int(numTables); i++ {
		entry := cmap + 4 + i*8
		platform, err := d.U16(entry)
		if err != nil {
			return 0, 0, err
		}
		encoding, err := d.U16(entry + 2)
		if err != nil {
			return 0, 0, err
		}
		if !((platform == 0 && encoding == 3) || (platform == 3 && encoding == 1)) {
			continue
		}
		rel, err := d.U32(entry + 4)
		if err != nil {
			return 0, 0, err
		}
		table := cmap + int(rel)
		if err := d.need(table, 2); err != nil {
			return 0, 0, FormatError("cmap subtable truncated")
		}
		format, err := d.U16(table)
		if err != nil {
			return 0, 0, err
		}
		return format, table, nil
	}
	return 0, 0, UnsupportedError("no Unicode BMP cmap subtable")
}

// cmapFormat4 resolves code via the segment-mapping table format.
func cmapFormat4(d Data, table int, code uint32) (int, error) {
	segCountX2, err := d.U16(table)
	if err != nil {
		return 0, err
	}
	if segCountX2&1 != 0 || segCountX2 == 0 {
		return 0, FormatError("bad segCountX2")
	}
	segCount := int(segCountX2) / 2
	endCodes := table + 8
	startCodes := endCodes + int(segCountX2) + 2
	idDeltas := startCodes + int(segCountX2)
	idRangeOffsets := idDeltas + int(segCountX2)
	if err := d.need(idRangeOffsets, int(segCountX2)); err != nil {
		return 0, FormatError("cmap format 4 truncated")
	}

	// Binary search over endCodes for the smallest entry >= code.
	lo, hi := 0, segCount-1
	for lo < hi {
		mid := lo + (hi-lo)/2
		end, err := d.U16(endCodes + 2*mid)
		if err != nil {
			return 0, err
		}
		if uint32(end) < code {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	seg := lo

	startCode, err := d.U16(startCodes + 2*seg)
	if err != nil {
		return 0, err
	}
	if uint32(startCode) > code {
		return 0, nil
	}
	idDelta, err := d.I16(idDeltas + 2*seg)
	if err != nil {
		return 0, err
	}
	idRangeOffset, err := d.U16(idRangeOffsets + 2*seg)
	if err != nil {
		return 0, err
	}
	if idRangeOffset == 0 {
		return int(uint16(code + uint32(idDelta))), nil
	}
	idOffset := idRangeOffsets + 2*seg + int(idRangeOffset) + 2*int(code-uint32(startCode))
	id, err := d.U16(idOffset)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, nil
	}
	return int(uint16(uint32(id) + uint32(idDelta))), nil
}

// cmapFormat6 resolves code via the trimmed table mapping format.
func cmapFormat6(d Data, table int, code uint32) (int, error) {
	firstCode, err := d.U16(table)
	if err != nil {
		return 0, err
	}
	entryCount, err := d.U16(table + 2)
	if err != nil {
		return 0, err
	}
	if err := d.need(table+4, 2*int(entryCount)); err != nil {
		return 0, FormatError("cmap format 6 truncated")
	}
	if code < uint32(firstCode) {
		return 0, FormatError("code point below cmap format 6 range")
	}
	idx := code - uint32(firstCode)
	if idx >= uint32(entryCount) {
		return 0, FormatError("code point above cmap format 6 range")
	}
	id, err := d.U16(table + 4 + 2*int(idx))
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

// cmapFormat4Coverage counts the code points covered by every segment
// except the mandatory 0xFFFF terminator, independent of whether each
// individual code point within a segment maps to glyph 0.
func cmapFormat4Coverage(d Data, table int) (int, error) {
	segCountX2, err := d.U16(table)
	if err != nil {
		return 0, err
	}
	if segCountX2&1 != 0 || segCountX2 == 0 {
		return 0, FormatError("bad segCountX2")
	}
	segCount := int(segCountX2) / 2
	endCodes := table + 8
	startCodes := endCodes + int(segCountX2) + 2

	total := 0
	for seg := 0; seg < segCount; seg++ {
		end, err := d.U16(endCodes + 2*seg)
		if err != nil {
			return 0, err
		}
		if end == 0xFFFF {
			continue
		}
		start, err := d.U16(startCodes + 2*seg)
		if err != nil {
			return 0, err
		}
		total += int(end) - int(start) + 1
	}
	return total, nil
}

// cmapFormat6Coverage counts the code points in [firstCode, firstCode+
// entryCount) whose glyph array entry is non-zero.
func cmapFormat6Coverage(d Data, table int) (int, error) {
	entryCount, err := d.U16(table + 2)
	if err != nil {
		return 0, err
	}
	if err := d.need(table+4, 2*int(entryCount)); err != nil {
		return 0, FormatError("cmap format 6 truncated")
	}
	total := 0
	for i := 0; i < int(entryCount); i++ {
		id, err := d.U16(table + 4 + 2*i)
		if err != nil {
			return 0, err
		}
		if id != 0 {
			total++
		}
	}
	return total, nil
}
