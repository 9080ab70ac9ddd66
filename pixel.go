package qoi

// Pixel is an RGBA quadruple. Equality is componentwise; pixels are
// plain values with no shared ownership.
type Pixel struct {
	R, G, B, A uint8
}

// hash returns the 6-bit cache slot for p, per the QOI hash function. All
// arithmetic wraps at 8 bits before the final reduction mod 64, matching
// the reference implementation's use of wrapping byte math.
func (p Pixel) hash() uint8 {
	return (p.R*3 + p.G*5 + p.B*7 + p.A*11) % 64
}

// startPixel is the initial value of both the encoder's and the decoder's
// predictor "prev" pixel, and the value every cache slot is seeded with.
var startPixel = Pixel{R: 0, G: 0, B: 0, A: 255}

// predictor is the running state both the encoder and decoder maintain:
// the last pixel produced or consumed, and a 64-entry hash-indexed cache
// of recently seen pixels. It is plain value state, reset fresh on every
// Encode/Decode call — there is no carry-over between invocations.
type predictor struct {
	prev  Pixel
	cache [64]Pixel
}

func newPredictor() predictor {
	p := predictor{prev: startPixel}
	for i := range p.cache {
		p.cache[i] = startPixel
	}
	return p
}

// observe records pix as the most recently produced pixel, updating both
// prev and its cache slot. The decoder calls it once per operator it
// applies; for a Run that single call covers every pixel of the run,
// since the pixel does not change within the run.
func (p *predictor) observe(pix Pixel) {
	p.prev = pix
	p.cache[pix.hash()] = pix
}
