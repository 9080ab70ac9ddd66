package qoi

import (
	"encoding/binary"
	"fmt"
)

const headerLen = 14

// Decoder holds the predictor state for one Decode call. Most callers
// should use the package-level Decode function; the type exists for
// symmetry with Encoder. Its per-operator predictor update is unexported,
// so code outside this package that calls ParseOperator directly gets no
// predictor bookkeeping from a Decoder.
type Decoder struct {
	pred predictor
}

// NewDecoder returns a Decoder with freshly-initialized predictor state.
func NewDecoder() *Decoder {
	d := &Decoder{pred: newPredictor()}
	return d
}

// Decode is the package-level, one-shot entry point: it builds a fresh
// Decoder and decodes data in one call.
func Decode(data []byte) (*Image, error) {
	return NewDecoder().Decode(data)
}

// Decode parses a full QOI byte stream: 14-byte header, an operator
// stream producing exactly Width*Height pixels, and an 8-byte footer.
func (d *Decoder) Decode(data []byte) (*Image, error) {
	d.pred = newPredictor()
	if len(data) < headerLen {
		return nil, ErrBadMagic
	}
	if string(data[0:4]) != "qoif" {
		return nil, ErrBadMagic
	}
	width := binary.BigEndian.Uint32(data[4:8])
	height := binary.BigEndian.Uint32(data[8:12])
	// data[12] (channels) and data[13] (colorspace) are parsed but never
	// influence pixel reconstruction; see SPEC_FULL.md §4.3.

	want := uint64(width) * uint64(height)
	rest := data[headerLen:]
	// Each remaining byte yields at most 62 pixels (one Run), which bounds
	// the preallocation for headers that declare huge dimensions.
	capHint := uint64(len(rest)) * 62
	if want < capHint {
		capHint = want
	}
	pixels := make([]Pixel, 0, capHint)

	for uint64(len(pixels)) < want {
		op, tail, err := ParseOperator(rest)
		if err != nil {
			return nil, err
		}
		rest = tail

		pix, count, err := d.applyOperator(op)
		if err != nil {
			return nil, err
		}
		if uint64(len(pixels))+uint64(count) > want {
			return nil, ErrOverflowRun
		}
		for i := uint32(0); i < count; i++ {
			pixels = append(pixels, pix)
		}
	}

	if len(rest) != len(footer) || !equalBytes(rest, footer[:]) {
		return nil, ErrBadFooter
	}

	return &Image{Width: width, Height: height, Pixels: pixels}, nil
}

// applyOperator reconstructs the pixel (and repeat count) an operator
// produces, applying it to and then updating the predictor exactly as
// the encoder does.
func (d *Decoder) applyOperator(op Operator) (Pixel, uint32, error) {
	prev := d.pred.prev

	switch op.Kind {
	case OpRGB:
		pix := Pixel{R: op.R, G: op.G, B: op.B, A: prev.A}
		d.pred.observe(pix)
		return pix, 1, nil

	case OpRGBA:
		pix := Pixel{R: op.R, G: op.G, B: op.B, A: op.A}
		d.pred.observe(pix)
		return pix, 1, nil

	case OpIndex:
		if op.Index >= 64 {
			return Pixel{}, 0, ErrBadIndex
		}
		pix := d.pred.cache[op.Index]
		d.pred.observe(pix)
		return pix, 1, nil

	case OpDiff:
		pix := Pixel{
			R: prev.R + op.DR - 2,
			G: prev.G + op.DG - 2,
			B: prev.B + op.DB - 2,
			A: prev.A,
		}
		d.pred.observe(pix)
		return pix, 1, nil

	case OpLuma:
		dg := op.DGreen - 32
		dr := op.DRDGreen + dg - 8
		db := op.DBDGreen + dg - 8
		pix := Pixel{
			R: prev.R + dr,
			G: prev.G + dg,
			B: prev.B + db,
			A: prev.A,
		}
		d.pred.observe(pix)
		return pix, 1, nil

	case OpRun:
		pix := prev
		d.pred.observe(pix)
		return pix, uint32(op.RunLength), nil

	default:
		return Pixel{}, 0, fmt.Errorf("qoi: unknown operator kind %d", op.Kind)
	}
}

func equalBytes(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
