// Command schriftdump prints a font's line metrics, cmap coverage and
// kern-table presence, and, for one code point, its resolved glyph
// metrics.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/inkwell-gfx/schrift"
)

var (
	fontFile = flag.String("font", "", "filename of the font to dump")
	size     = flag.Float64("size", 32, "em size in device pixels")
	char     = flag.String("char", "A", "the character to report glyph metrics for")
)

func main() {
	flag.Parse()

	if *fontFile == "" {
		fmt.Fprintln(os.Stderr, "schriftdump: -font is required")
		os.Exit(1)
	}
	if len(*char) == 0 {
		fmt.Fprintln(os.Stderr, "schriftdump: -char must not be empty")
		os.Exit(1)
	}

	f, err := schrift.LoadFile(*fontFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "schriftdump: failed to load %s: %v\n", *fontFile, err)
		os.Exit(1)
	}
	defer f.Close()

	cfg := schrift.Config{XScale: *size, YScale: *size}

	lm, err := f.LineMetrics(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "schriftdump: line metrics: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("ascent=%.3f descent=%.3f gap=%.3f\n", lm.Ascent, lm.Descent, lm.Gap)

	coverage, err := f.CmapCoverage()
	if err != nil {
		fmt.Fprintf(os.Stderr, "schriftdump: cmap coverage: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("cmap: %d code points covered\n", coverage)
	fmt.Printf("kern: %v\n", f.HasKern())
	fmt.Printf("name: %v\n", f.HasName())

	r := []rune(*char)[0]
	res, err := f.Char(cfg, uint32(r))
	if err != nil {
		fmt.Fprintf(os.Stderr, "schriftdump: char %q: %v\n", r, err)
		os.Exit(1)
	}
	fmt.Printf("char=%q x=%d y=%d width=%d height=%d advance=%d\n",
		r, res.X, res.Y, res.Width, res.Height, res.Advance)
}
