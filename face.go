package schrift

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Options configures a Face built from a Font.
type Options struct {
	// Size is the target font size in points. Zero selects 12.
	Size float64
	// DPI is the resolution to render at. Zero selects 72.
	DPI float64
}

func (o *Options) size() float64 {
	if o == nil || o.Size == 0 {
		return 12
	}
	return o.Size
}

func (o *Options) dpi() float64 {
	if o == nil || o.DPI == 0 {
		return 72
	}
	return o.DPI
}

// face adapts a Font to golang.org/x/image/font.Face, rendering glyphs
// downward-Y (screen space) at a fixed point size and DPI.
type face struct {
	font  *Font
	scale float64 // device pixels per font unit's em-size, already folded with DPI
}

// NewFace returns a font.Face backed by f, rendering at the given
// options. The returned Face is safe for concurrent use precisely when
// f is: Char, like the rest of this package, holds no shared mutable
// state.
func NewFace(f *Font, opts *Options) font.Face {
	px := opts.size() * opts.dpi() / 72
	return &face{font: f, scale: px}
}

func (fc *face) Close() error { return nil }

func (fc *face) config() Config {
	return Config{
		XScale: fc.scale,
		YScale: fc.scale,
		Flags:  FlagDownwardY,
	}
}

func (fc *face) Glyph(dot fixed.Point26_6, r rune) (dr image.Rectangle, mask image.Image, maskp image.Point, advance fixed.Int26_6, ok bool) {
	cfg := fc.config()
	cfg.Flags |= FlagRenderImage
	cfg.X = float64(dot.X) / 64
	cfg.Y = float64(dot.Y) / 64
	res, err := fc.font.Char(cfg, uint32(r))
	if err != nil {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}
	dr = image.Rect(res.X, res.Y, res.X+res.Width, res.Y+res.Height)
	img := &image.Alpha{
		Pix:    res.Image,
		Stride: res.Width,
		Rect:   image.Rect(0, 0, res.Width, res.Height),
	}
	return dr, img, image.Point{}, fixed.Int26_6(res.Advance << 6), true
}

func (fc *face) GlyphBounds(r rune) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, ok bool) {
	res, err := fc.font.Char(fc.config(), uint32(r))
	if err != nil {
		return fixed.Rectangle26_6{}, 0, false
	}
	bounds = fixed.Rectangle26_6{
		Min: fixed.Point26_6{X: fixed.Int26_6(res.X << 6), Y: fixed.Int26_6(res.Y << 6)},
		Max: fixed.Point26_6{X: fixed.Int26_6((res.X + res.Width) << 6), Y: fixed.Int26_6((res.Y + res.Height) << 6)},
	}
	return bounds, fixed.Int26_6(res.Advance << 6), true
}

func (fc *face) GlyphAdvance(r rune) (advance fixed.Int26_6, ok bool) {
	res, err := fc.font.Char(fc.config(), uint32(r))
	if err != nil {
		return 0, false
	}
	return fixed.Int26_6(res.Advance << 6), true
}

func (fc *face) Kern(r0, r1 rune) fixed.Int26_6 {
	k, err := fc.font.Kerning(fc.config(), uint32(r0), uint32(r1))
	if err != nil {
		return 0
	}
	return fixed.Int26_6(k.X * 64)
}

func (fc *face) Metrics() font.Metrics {
	lm, err := fc.font.LineMetrics(fc.config())
	if err != nil {
		return font.Metrics{}
	}
	return font.Metrics{
		Height:  fixed.Int26_6((lm.Ascent - lm.Descent + lm.Gap) * 64),
		Ascent:  fixed.Int26_6(lm.Ascent * 64),
		Descent: fixed.Int26_6(-lm.Descent * 64),
	}
}
