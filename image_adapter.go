package qoi

import (
	"fmt"
	"image"
	"image/color"
	"io"
)

func init() {
	image.RegisterFormat("qoi", "qoif", DecodeImage, DecodeConfig)
}

// DecodeImage reads a whole QOI stream from r and returns it as an
// *image.NRGBA. It is the io.Reader-based counterpart of the byte-slice
// Decode, and the function registered with image.RegisterFormat so that
// image.Decode recognizes QOI data once this package is imported.
func DecodeImage(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("qoi: reading stream: %w", err)
	}
	img, err := Decode(data)
	if err != nil {
		return nil, err
	}

	dst := image.NewNRGBA(image.Rect(0, 0, int(img.Width), int(img.Height)))
	for i, pix := range img.Pixels {
		off := i * 4
		dst.Pix[off+0] = pix.R
		dst.Pix[off+1] = pix.G
		dst.Pix[off+2] = pix.B
		dst.Pix[off+3] = pix.A
	}
	return dst, nil
}

// DecodeConfig reads just the 14-byte QOI header from r and returns the
// image dimensions without touching the operator stream.
func DecodeConfig(r io.Reader) (image.Config, error) {
	buf := make([]byte, headerLen)
	if _, err := io.ReadFull(r, buf); err != nil {
		return image.Config{}, fmt.Errorf("%w: %v", ErrBadMagic, err)
	}
	if string(buf[0:4]) != "qoif" {
		return image.Config{}, ErrBadMagic
	}
	width := int(buf[4])<<24 | int(buf[5])<<16 | int(buf[6])<<8 | int(buf[7])
	height := int(buf[8])<<24 | int(buf[9])<<16 | int(buf[10])<<8 | int(buf[11])
	return image.Config{
		Width:      width,
		Height:     height,
		ColorModel: color.NRGBAModel,
	}, nil
}

// EncodeImage writes m to w in QOI format. An *image.NRGBA source is read
// directly off its Pix buffer; any other concrete type is converted pixel
// by pixel via its color.Color and color.NRGBAModel, the same fallback
// conversion used throughout this codec's sibling image libraries.
func EncodeImage(w io.Writer, m image.Image) error {
	bounds := m.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]Pixel, 0, width*height)

	if nrgba, ok := m.(*image.NRGBA); ok {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				off := nrgba.PixOffset(x, y)
				p := nrgba.Pix[off : off+4 : off+4]
				pixels = append(pixels, Pixel{R: p[0], G: p[1], B: p[2], A: p[3]})
			}
		}
	} else {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
				pixels = append(pixels, Pixel{R: c.R, G: c.G, B: c.B, A: c.A})
			}
		}
	}

	data, err := Encode(uint32(width), uint32(height), pixels)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
