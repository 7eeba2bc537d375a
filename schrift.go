// Package schrift is a compact, self-contained TrueType glyph
// rasterizer: given a font binary and a Unicode code point at a
// requested pixel size, it produces per-glyph metrics and an optional
// 8-bit grayscale anti-aliased bitmap.
package schrift

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/inkwell-gfx/schrift/internal/outline"
	"github.com/inkwell-gfx/schrift/internal/raster"
	"github.com/inkwell-gfx/schrift/internal/sfnt"
)

// Version identifies this package's implementation of the rasterization
// pipeline, independent of the Go module's own version tag.
const Version = "1.0.0"

// Well-known name table identifiers accepted by Font.Name.
const (
	NameFamily      = sfnt.NameFamily
	NameSubfamily   = sfnt.NameSubfamily
	NameFullName    = sfnt.NameFullName
	NamePostScript  = sfnt.NamePostScript
	NameTypographic = sfnt.NameTypographic
)

// ErrMissingGlyph is returned by Font.Char when Config.Flags has
// FlagCatchMissing set and the requested code point resolves to glyph 0
// (.notdef).
var ErrMissingGlyph = errors.New("schrift: code point has no glyph")

// Flags selects optional Char behavior.
type Flags uint8

const (
	// FlagRenderImage requests that Char populate CharacterResult.Image.
	// Without it, Char still computes metrics, just no bitmap.
	FlagRenderImage Flags = 1 << iota
	// FlagDownwardY treats +Y as pointing down the screen: the rendered
	// image is vertically flipped and the reported Y coordinate negated.
	FlagDownwardY
	// FlagCatchMissing makes Char report ErrMissingGlyph instead of
	// silently rendering .notdef when a code point resolves to glyph 0.
	FlagCatchMissing
)

// Config selects the target em-size, sub-pixel origin, and behavior
// flags for a single LineMetrics, Kerning, or Char call.
type Config struct {
	XScale, YScale float64
	X, Y           float64
	Flags          Flags
}

// LineMetrics holds whole-font vertical metrics scaled to device units.
type LineMetrics struct {
	Ascent, Descent, Gap float64
}

// Kerning holds the horizontal and cross-stream kerning correction
// between a pair of glyphs, scaled to device units.
type Kerning struct {
	X, Y float64
}

// CharacterResult is the outcome of rasterizing one code point: its
// device-pixel bounding box, its rounded advance, and — if requested —
// its alpha bitmap.
type CharacterResult struct {
	X, Y, Width, Height int
	Advance             int
	// Image is Width*Height bytes, one per pixel, row-major, present
	// only when Config.Flags had FlagRenderImage set and the glyph has
	// a non-empty outline.
	Image []byte
}

// Font is an immutable, loaded TrueType font: a byte range plus the
// table offsets and derived constants the rasterization pipeline needs.
// A *Font is safe for concurrent use by multiple goroutines; it holds no
// mutable state after Load returns.
type Font struct {
	data       sfnt.Data
	unitsPerEm int
	numGlyphs  int
	locaFormat sfnt.LocaFormat

	cmap          int
	hheaOff       int
	hmtx          int
	numLongHMetrx int
	loca          int
	glyf          int
	kern          int // 0 if absent
	hasKern       bool

	name    int // 0 if absent
	hasName bool
}

// LoadMemory parses a TrueType font already resident in memory. The
// returned Font borrows mem; the caller must keep it alive and must not
// mutate it for the lifetime of the Font.
func LoadMemory(mem []byte) (*Font, error) {
	d := sfnt.Data(mem)
	if err := d.CheckMagic(); err != nil {
		return nil, err
	}
	f := &Font{data: d}
	if err := f.init(); err != nil {
		return nil, err
	}
	return f, nil
}

// LoadFile reads an entire font file into memory and parses it. Unlike
// libschrift's mmap-backed loader, the returned Font owns a private copy
// of the bytes: no file descriptor or mapping is held past LoadFile's
// return.
func LoadFile(path string) (*Font, error) {
	mem, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schrift: %w", err)
	}
	return LoadMemory(mem)
}

// Close releases resources held by f. Since LoadMemory and LoadFile both
// leave byte ownership to Go's garbage collector, Close is currently a
// no-op; it exists so callers can write symmetric load/close code and so
// a future mmap-backed loader can add real teardown without an API
// break.
func (f *Font) Close() error { return nil }

func (f *Font) init() error {
	d := f.data

	head, err := d.Table("head")
	if err != nil {
		return err
	}
	h, err := sfnt.ParseHead(d, head)
	if err != nil {
		return err
	}
	f.unitsPerEm = h.UnitsPerEm
	f.locaFormat = h.LocaFormat

	hhea, err := d.Table("hhea")
	if err != nil {
		return err
	}
	f.hheaOff = hhea
	hh, err := sfnt.ParseHhea(d, hhea)
	if err != nil {
		return err
	}
	f.numLongHMetrx = hh.NumberOfHMetrics

	maxp, err := d.Table("maxp")
	if err != nil {
		return err
	}
	f.numGlyphs, err = sfnt.NumGlyphs(d, maxp)
	if err != nil {
		return err
	}

	f.hmtx, err = d.Table("hmtx")
	if err != nil {
		return err
	}
	f.cmap, err = d.Table("cmap")
	if err != nil {
		return err
	}
	f.loca, err = d.Table("loca")
	if err != nil {
		return err
	}
	f.glyf, err = d.Table("glyf")
	if err != nil {
		return err
	}
	if kern, err := d.Table("kern"); err == nil {
		f.kern = kern
		f.hasKern = true
	}
	if name, err := d.Table("name"); err == nil {
		f.name = name
		f.hasName = true
	}
	return nil
}

// Name returns a human-readable string from the font's naming table,
// such as sfnt.NameFamily or sfnt.NamePostScript. It returns "" if the
// font has no name table or no record for nameID.
func (f *Font) Name(nameID uint16) (string, error) {
	if !f.hasName {
		return "", nil
	}
	return sfnt.Name(f.data, f.name, nameID)
}

// glyphID resolves code through the cmap table and bounds-checks the
// result against maxp.numGlyphs: a malformed cmap can otherwise point
// past the end of hmtx/loca/glyf.
func (f *Font) glyphID(code uint32) (int, error) {
	id, err := sfnt.GlyphID(f.data, f.cmap, code)
	if err != nil {
		return 0, err
	}
	if id < 0 || id >= f.numGlyphs {
		return 0, sfnt.FormatError("cmap resolved to an out-of-range glyph id")
	}
	return id, nil
}

// HasKern reports whether the font carries a kern table.
func (f *Font) HasKern() bool { return f.hasKern }

// HasName reports whether the font carries a name table.
func (f *Font) HasName() bool { return f.hasName }

// CmapCoverage reports how many code points the font's cmap covers, as
// counted by sfnt.Coverage (for a format 4 cmap this includes code points
// inside a segment that map to glyph 0).
func (f *Font) CmapCoverage() (int, error) {
	return sfnt.Coverage(f.data, f.cmap)
}

// LineMetrics returns the font's ascent, descent and line gap scaled by
// cfg.YScale.
func (f *Font) LineMetrics(cfg Config) (LineMetrics, error) {
	hh, err := sfnt.ParseHhea(f.data, f.hheaOff)
	if err != nil {
		return LineMetrics{}, err
	}
	factor := cfg.YScale / float64(f.unitsPerEm)
	return LineMetrics{
		Ascent:  float64(hh.Ascent) * factor,
		Descent: float64(hh.Descent) * factor,
		Gap:     float64(hh.LineGap) * factor,
	}, nil
}

// Kerning returns the kerning correction between leftCode and
// rightCode, scaled to device units. A font without a kern table, or a
// pair absent from it, yields zeros — not an error.
func (f *Font) Kerning(cfg Config, leftCode, rightCode uint32) (Kerning, error) {
	if !f.hasKern {
		return Kerning{}, nil
	}
	left, err := f.glyphID(leftCode)
	if err != nil {
		return Kerning{}, err
	}
	right, err := f.glyphID(rightCode)
	if err != nil {
		return Kerning{}, err
	}
	k, err := sfnt.WalkKern(f.data, f.kern, uint16(left), uint16(right))
	if err != nil {
		return Kerning{}, err
	}
	upe := float64(f.unitsPerEm)
	return Kerning{
		X: float64(k.X) / upe * cfg.XScale,
		Y: float64(k.Y) / upe * cfg.YScale,
	}, nil
}

// Char resolves code to a glyph and returns its metrics (and, if
// cfg.Flags has FlagRenderImage set, its rasterized bitmap). If
// cfg.Flags has FlagCatchMissing set and code resolves to glyph 0
// (.notdef), Char returns ErrMissingGlyph instead of the .notdef glyph's
// metrics.
func (f *Font) Char(cfg Config, code uint32) (CharacterResult, error) {
	glyph, err := f.glyphID(code)
	if err != nil {
		return CharacterResult{}, err
	}
	if glyph == 0 && cfg.Flags&FlagCatchMissing != 0 {
		return CharacterResult{}, ErrMissingGlyph
	}

	outlineOff, err := sfnt.OutlineOffset(f.data, f.loca, f.glyf, f.locaFormat, glyph)
	if err != nil {
		return CharacterResult{}, err
	}

	xScale := cfg.XScale / float64(f.unitsPerEm)
	yScale := cfg.YScale / float64(f.unitsPerEm)
	xOff, yOff := cfg.X, cfg.Y

	hm, err := sfnt.HorMetrics(f.data, f.hmtx, f.numLongHMetrx, glyph)
	if err != nil {
		return CharacterResult{}, err
	}

	var result CharacterResult
	result.Advance = int(math.Round(float64(hm.AdvanceWidth) * xScale))

	if outlineOff == 0 {
		return result, nil
	}

	if err := f.data.Need(outlineOff, 10); err != nil {
		return CharacterResult{}, err
	}
	x1i, _ := f.data.I16(outlineOff + 2)
	y1i, _ := f.data.I16(outlineOff + 4)
	x2i, _ := f.data.I16(outlineOff + 6)
	y2i, _ := f.data.I16(outlineOff + 8)
	if x2i <= x1i || y2i <= y1i {
		return CharacterResult{}, outline.CorruptOutlineError("degenerate glyph bounding box")
	}

	// Shift X so leftSideBearing and x1 line up: (lsb - x1) * xScale.
	xOff += (float64(hm.LeftSideBearing) - float64(x1i)) * xScale

	x1 := math.Floor(float64(x1i)*xScale + xOff)
	y1 := math.Floor(float64(y1i)*yScale + yOff)
	x2 := math.Ceil(float64(x2i)*xScale+xOff) + 1
	y2 := math.Ceil(float64(y2i)*yScale+yOff) + 1

	result.X = int(x1)
	if cfg.Flags&FlagDownwardY != 0 {
		result.Y = -int(y2)
	} else {
		result.Y = int(y1)
	}
	result.Width = int(x2 - x1)
	result.Height = int(y2 - y1)

	if cfg.Flags&FlagRenderImage == 0 {
		return result, nil
	}

	m := outline.NewAffine(xScale, 0, 0, yScale, xOff-x1, yOff-y1)

	o := outline.New()
	src := outline.Source{Data: f.data, Glyf: f.glyf, Loca: f.loca, LocaFormat: f.locaFormat}
	if err := outline.Decode(src, outlineOff, o); err != nil {
		return CharacterResult{}, err
	}
	outline.Transform(o, m)
	outline.Clip(o, result.Width, result.Height)
	outline.Tesselate(o)

	buf := raster.NewBuffer(result.Width, result.Height)
	lines := make([]raster.Line, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = raster.Line{
			Beg: raster.Point{X: o.Points[l.Beg].X, Y: o.Points[l.Beg].Y},
			End: raster.Point{X: o.Points[l.End].X, Y: o.Points[l.End].Y},
		}
	}
	raster.DrawLines(buf, lines)
	if cfg.Flags&FlagDownwardY != 0 {
		buf.Flip()
	}
	result.Image = raster.Integrate(buf)

	return result, nil
}
