package schrift

import (
	"testing"

	"golang.org/x/image/math/fixed"
)

func TestFaceGlyphAdvance(t *testing.T) {
	font, err := LoadMemory(buildTestFont())
	if err != nil {
		t.Fatalf("LoadMemory: %v", err)
	}
	fc := NewFace(font, &Options{Size: 1000 * 72 / 72, DPI: 72}) // 1:1 with unitsPerEm

	adv, ok := fc.GlyphAdvance('A')
	if !ok {
		t.Fatalf("GlyphAdvance: not ok")
	}
	if adv != fixed.Int26_6(600<<6) {
		t.Errorf("GlyphAdvance: got %v, want %v", adv, fixed.Int26_6(600<<6))
	}
}

func TestFaceGlyphProducesMask(t *testing.T) {
	font, err := LoadMemory(buildTestFont())
	if err != nil {
		t.Fatalf("LoadMemory: %v", err)
	}
	fc := NewFace(font, &Options{Size: 64, DPI: 72})

	dr, mask, _, _, ok := fc.Glyph(fixed.Point26_6{}, 'A')
	if !ok {
		t.Fatalf("Glyph: not ok")
	}
	if dr.Dx() <= 0 || dr.Dy() <= 0 {
		t.Errorf("Glyph bounds empty: %v", dr)
	}
	if mask == nil {
		t.Errorf("Glyph mask is nil")
	}
}

func TestFaceMetrics(t *testing.T) {
	font, err := LoadMemory(buildTestFont())
	if err != nil {
		t.Fatalf("LoadMemory: %v", err)
	}
	fc := NewFace(font, nil)
	m := fc.Metrics()
	if m.Ascent <= 0 {
		t.Errorf("Metrics().Ascent: got %v, want > 0", m.Ascent)
	}
}
