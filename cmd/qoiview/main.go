// Command qoiview is a thin, non-interactive stand-in for the interactive
// QOI viewer described by the codec's design documents — windowing,
// mouse pan/zoom, and live redraw are out of scope for this module. It
// exists so the codec and its image.Image adapter have a runnable
// consumer: decode QOI to PNG, encode an arbitrary image to QOI, or
// roundtrip one through the codec, plus a -blit mode that performs the
// same per-pixel "pixel -> 0x00RRGGBB framebuffer word" transform a real
// viewer's software blit would, dumped to a BMP file instead of a
// window surface.
package main

import (
	"bytes"
	"errors"
	"flag"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"log"
	"os"

	"golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/go-qoi/qoi"
)

var (
	decodeFlag    = flag.Bool("decode", false, "decode a QOI file and write PNG to stdout")
	encodeFlag    = flag.Bool("encode", false, "encode an image file (PNG/GIF/JPEG/BMP/TIFF) and write QOI to stdout")
	roundtripFlag = flag.Bool("roundtrip", false, "encode then decode, and write PNG to stdout")
	blitFlag      = flag.Bool("blit", false, "decode a QOI file and write a BMP framebuffer blit to stdout")
)

const usageStr = `qoiview - non-interactive stand-in for an interactive QOI viewer

Usage: choose exactly one of

    qoiview -decode    [path]
    qoiview -encode    [path]
    qoiview -roundtrip [path]
    qoiview -blit      [path]

The path to the input file is optional; if omitted, stdin is read.
Output is always written to stdout.
`

func main() {
	if err := run(); err != nil {
		log.Fatalf("qoiview: %v", err)
	}
}

func run() error {
	flag.Usage = func() { os.Stderr.WriteString(usageStr) }
	flag.Parse()

	var in io.Reader = os.Stdin
	switch flag.NArg() {
	case 0:
	case 1:
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	default:
		return errors.New("too many filenames; the maximum is one")
	}

	switch {
	case *decodeFlag && !*encodeFlag && !*roundtripFlag && !*blitFlag:
		return decode(os.Stdout, in)
	case !*decodeFlag && *encodeFlag && !*roundtripFlag && !*blitFlag:
		return encode(os.Stdout, in)
	case !*decodeFlag && !*encodeFlag && *roundtripFlag && !*blitFlag:
		return roundtrip(os.Stdout, in)
	case !*decodeFlag && !*encodeFlag && !*roundtripFlag && *blitFlag:
		return blit(os.Stdout, in)
	default:
		return errors.New("must specify exactly one of -decode, -encode, -roundtrip, -blit")
	}
}

func decode(out io.Writer, in io.Reader) error {
	img, err := qoi.DecodeImage(in)
	if err != nil {
		return err
	}
	return png.Encode(out, img)
}

func encode(out io.Writer, in io.Reader) error {
	src, _, err := image.Decode(in)
	if err != nil {
		return err
	}
	return qoi.EncodeImage(out, src)
}

func roundtrip(out io.Writer, in io.Reader) error {
	src, _, err := image.Decode(in)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := qoi.EncodeImage(&buf, src); err != nil {
		return err
	}
	dst, err := qoi.DecodeImage(&buf)
	if err != nil {
		return err
	}
	return png.Encode(out, dst)
}

// blit mirrors the per-pixel transform an interactive viewer's software
// framebuffer blit performs (copy pixels[y*width+x] into a 32-bit
// 0x00RRGGBB word), writing the result as a BMP instead of presenting it
// to a window surface.
func blit(out io.Writer, in io.Reader) error {
	img, err := qoi.DecodeImage(in)
	if err != nil {
		return err
	}
	b := img.Bounds()
	fb := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bch, _ := img.At(x, y).RGBA()
			fb.Set(x, y, color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bch >> 8), A: 255})
		}
	}
	return bmp.Encode(out, fb)
}
