// Command schriftrender rasterizes a single character to a grayscale
// PNG file.
package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"os"

	"github.com/inkwell-gfx/schrift"
)

var (
	fontFile = flag.String("font", "", "filename of the font to render")
	out      = flag.String("out", "out.png", "output PNG path")
	size     = flag.Float64("size", 64, "em size in device pixels")
	char     = flag.String("char", "A", "the character to render")
	downward = flag.Bool("downward-y", true, "treat +Y as pointing down the screen")
)

func main() {
	flag.Parse()

	if *fontFile == "" {
		log.Fatal("schriftrender: -font is required")
	}
	r := []rune(*char)
	if len(r) == 0 {
		log.Fatal("schriftrender: -char must not be empty")
	}

	f, err := schrift.LoadFile(*fontFile)
	if err != nil {
		log.Fatalf("schriftrender: failed to load %s: %v", *fontFile, err)
	}
	defer f.Close()

	cfg := schrift.Config{XScale: *size, YScale: *size, Flags: schrift.FlagRenderImage}
	if *downward {
		cfg.Flags |= schrift.FlagDownwardY
	}

	res, err := f.Char(cfg, uint32(r[0]))
	if err != nil {
		log.Fatalf("schriftrender: char %q: %v", r[0], err)
	}
	if res.Image == nil {
		log.Fatalf("schriftrender: char %q has an empty outline, nothing to render", r[0])
	}

	img := &image.Alpha{
		Pix:    res.Image,
		Stride: res.Width,
		Rect:   image.Rect(0, 0, res.Width, res.Height),
	}

	w, err := os.Create(*out)
	if err != nil {
		log.Fatalf("schriftrender: %v", err)
	}
	defer w.Close()
	if err := png.Encode(w, img); err != nil {
		log.Fatalf("schriftrender: encoding PNG: %v", err)
	}
	log.Printf("wrote %s (%dx%d)", *out, res.Width, res.Height)
}
