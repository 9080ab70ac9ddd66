package qoi

import "encoding/binary"

const (
	channels   uint8 = 4
	colorspace uint8 = 0
)

var footer = [8]byte{0, 0, 0, 0, 0, 0, 0, 1}

// Encoder holds the predictor state for one Encode call. It exists as a
// type of its own (rather than folding straight into the Encode function)
// so callers who want the predictor-object shape get it, matching the
// reference implementation's Encoder; most callers should just use the
// package-level Encode function.
type Encoder struct {
	width, height uint32
	pred          predictor

	running   bool
	runLength uint8
}

// NewEncoder returns an Encoder ready to encode a width x height image.
// Predictor state always starts fresh; there is no carry-over across
// Encoder values or across repeated calls to Encode.
func NewEncoder(width, height uint32) *Encoder {
	return &Encoder{width: width, height: height, pred: newPredictor()}
}

// Encode is the package-level, one-shot entry point: it builds a fresh
// Encoder for the given dimensions and encodes pixels in one call.
func Encode(width, height uint32, pixels []Pixel) ([]byte, error) {
	return NewEncoder(width, height).Encode(pixels)
}

// Encode walks pixels in row-major order, choosing for each one the
// shortest legal operator under the fixed priority order (run, index,
// diff, luma, rgb, rgba), and returns the framed QOI byte stream: magic,
// header, operator stream, footer.
func (e *Encoder) Encode(pixels []Pixel) ([]byte, error) {
	e.pred = newPredictor()
	buf := make([]byte, 0, 14+len(pixels)+8)
	buf = append(buf, 'q', 'o', 'i', 'f')
	buf = binary.BigEndian.AppendUint32(buf, e.width)
	buf = binary.BigEndian.AppendUint32(buf, e.height)
	buf = append(buf, channels, colorspace)

	for _, pix := range pixels {
		buf = e.encodePixel(buf, pix)
	}
	if e.running {
		buf = Operator{Kind: OpRun, RunLength: e.runLength}.AppendTo(buf)
		e.running = false
		e.runLength = 0
	}

	buf = append(buf, footer[:]...)
	return buf, nil
}

// encodePixel consumes one input pixel, updating predictor and run state,
// and appends whatever operator bytes that pixel causes to be flushed (it
// may append nothing, if the pixel only extends a pending run).
func (e *Encoder) encodePixel(buf []byte, pix Pixel) []byte {
	prev := e.pred.prev
	e.pred.prev = pix // prev always reflects the last consumed input pixel

	if pix == prev {
		if e.running {
			if e.runLength == 62 {
				buf = Operator{Kind: OpRun, RunLength: 62}.AppendTo(buf)
				e.runLength = 0
				// A fresh run segment begins here; the decoder updates
				// its cache once per Run operator it applies, so the
				// encoder mirrors that here rather than per pixel.
				e.pred.cache[pix.hash()] = pix
			}
		} else {
			e.running = true
			e.runLength = 0
			e.pred.cache[pix.hash()] = pix
		}
		e.runLength++
		return buf
	}

	if e.running {
		buf = Operator{Kind: OpRun, RunLength: e.runLength}.AppendTo(buf)
		e.running = false
		e.runLength = 0
	}

	h := pix.hash()
	if e.pred.cache[h] == pix {
		buf = Operator{Kind: OpIndex, Index: h}.AppendTo(buf)
		e.pred.cache[h] = pix
		return buf
	}

	if pix.A == prev.A {
		dr := pix.R - prev.R + 2
		dg := pix.G - prev.G + 2
		db := pix.B - prev.B + 2
		if dr <= 3 && dg <= 3 && db <= 3 {
			buf = Operator{Kind: OpDiff, DR: dr, DG: dg, DB: db}.AppendTo(buf)
			e.pred.cache[h] = pix
			return buf
		}

		rawDG := pix.G - prev.G
		drdg := (pix.R-prev.R)-rawDG + 8
		dbdg := (pix.B-prev.B)-rawDG + 8
		biasedDG := rawDG + 32
		if biasedDG <= 63 && drdg <= 15 && dbdg <= 15 {
			buf = Operator{Kind: OpLuma, DGreen: biasedDG, DRDGreen: drdg, DBDGreen: dbdg}.AppendTo(buf)
			e.pred.cache[h] = pix
			return buf
		}

		buf = Operator{Kind: OpRGB, R: pix.R, G: pix.G, B: pix.B}.AppendTo(buf)
		e.pred.cache[h] = pix
		return buf
	}

	buf = Operator{Kind: OpRGBA, R: pix.R, G: pix.G, B: pix.B, A: pix.A}.AppendTo(buf)
	e.pred.cache[h] = pix
	return buf
}
