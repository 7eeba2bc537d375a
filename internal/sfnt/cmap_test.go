package sfnt

import "testing"

func put16(b []byte, off int, v uint16) {
	b[off], b[off+1] = byte(v>>8), byte(v)
}

// buildFormat4 builds the bytes of a format-4 cmap subtable body (the
// part starting at segCountX2, i.e. what GlyphID passes as table+6) with
// a single mapped segment [start,end] plus the mandatory 0xFFFF
// terminator segment.
func buildFormat4(start, end uint16, delta int16) Data {
	b := make([]byte, 26)
	put16(b, 0, 4) // segCountX2 = 4 (2 segments)
	// bytes 2..7: searchRange/entrySelector/rangeShift, unused
	put16(b, 8, end)
	put16(b, 10, 0xFFFF)
	// bytes 12..13: reservedPad
	put16(b, 14, start)
	put16(b, 16, 0xFFFF)
	put16(b, 18, uint16(delta))
	put16(b, 20, 1)
	put16(b, 22, 0) // idRangeOffset[0]
	put16(b, 24, 0) // idRangeOffset[1]
	return Data(b)
}

func TestCmapFormat4(t *testing.T) {
	d := buildFormat4(65, 65, -55) // glyph = code + delta = 65 - 55 = 10
	got, err := cmapFormat4(d, 0, 65)
	if err != nil || got != 10 {
		t.Fatalf("cmapFormat4(65): got (%d, %v), want (10, nil)", got, err)
	}
	got, err = cmapFormat4(d, 0, 66)
	if err != nil || got != 0 {
		t.Fatalf("cmapFormat4(66, absent): got (%d, %v), want (0, nil)", got, err)
	}
}

func buildFormat6(firstCode uint16, entries []uint16) Data {
	b := make([]byte, 4+2*len(entries))
	put16(b, 0, firstCode)
	put16(b, 2, uint16(len(entries)))
	for i, e := range entries {
		put16(b, 4+2*i, e)
	}
	return Data(b)
}

func TestCmapFormat6(t *testing.T) {
	d := buildFormat6(32, []uint16{1, 2, 3})
	got, err := cmapFormat6(d, 0, 33)
	if err != nil || got != 2 {
		t.Fatalf("cmapFormat6(33): got (%d, %v), want (2, nil)", got, err)
	}
	if _, err := cmapFormat6(d, 0, 31); err == nil {
		t.Errorf("cmapFormat6(31, below range): got nil error")
	}
	if _, err := cmapFormat6(d, 0, 35); err == nil {
		t.Errorf("cmapFormat6(35, above range): got nil error")
	}
}

func TestGlyphIDAboveBMP(t *testing.T) {
	d := buildFormat4(65, 65, -55)
	got, err := GlyphID(d, 0, 0x10000+65)
	if err != nil || got != 0 {
		t.Errorf("GlyphID above BMP: got (%d, %v), want (0, nil)", got, err)
	}
}
