package qoi_test

import (
	"bytes"
	"testing"

	"github.com/go-qoi/qoi"
)

func header(width, height uint32) []byte {
	return []byte{
		'q', 'o', 'i', 'f',
		byte(width >> 24), byte(width >> 16), byte(width >> 8), byte(width),
		byte(height >> 24), byte(height >> 16), byte(height >> 8), byte(height),
		4, 0,
	}
}

var footer = []byte{0, 0, 0, 0, 0, 0, 0, 1}

func wantStream(width, height uint32, body ...byte) []byte {
	out := append([]byte{}, header(width, height)...)
	out = append(out, body...)
	out = append(out, footer...)
	return out
}

func black() qoi.Pixel { return qoi.Pixel{R: 0, G: 0, B: 0, A: 255} }

// TestSingleBlackPixel is spec scenario 1: a single pixel equal to the
// initial predictor collapses to one Run{1}.
func TestSingleBlackPixel(t *testing.T) {
	got, err := qoi.Encode(1, 1, []qoi.Pixel{black()})
	if err != nil {
		t.Fatal(err)
	}
	want := wantStream(1, 1, 0xC0)
	if !bytes.Equal(got, want) {
		t.Fatalf("got % X, want % X", got, want)
	}
}

// TestTwoIdenticalPixels is spec scenario 2.
func TestTwoIdenticalPixels(t *testing.T) {
	got, err := qoi.Encode(1, 2, []qoi.Pixel{black(), black()})
	if err != nil {
		t.Fatal(err)
	}
	want := wantStream(1, 2, 0xC1)
	if !bytes.Equal(got, want) {
		t.Fatalf("got % X, want % X", got, want)
	}
}

// TestRunSplit is spec scenario 4: a run of 100 identical pixels (equal
// to the initial predictor) splits into Run{62} then Run{38}.
func TestRunSplit(t *testing.T) {
	pixels := make([]qoi.Pixel, 100)
	for i := range pixels {
		pixels[i] = black()
	}
	got, err := qoi.Encode(100, 1, pixels)
	if err != nil {
		t.Fatal(err)
	}
	want := wantStream(100, 1, 0xFD, 0xE5)
	if !bytes.Equal(got, want) {
		t.Fatalf("got % X, want % X", got, want)
	}
}

// TestLumaSelection is spec scenario 5: a delta that fits Luma but not
// Diff is encoded as Luma{42, 6, 10}.
func TestLumaSelection(t *testing.T) {
	start := qoi.Pixel{R: 100, G: 100, B: 100, A: 255}
	next := qoi.Pixel{R: 108, G: 110, B: 112, A: 255}

	// Seed the predictor to `start` via a preceding RGB pixel (distinct
	// from the image's initial state), then encode `next`.
	got, err := qoi.Encode(2, 1, []qoi.Pixel{start, next})
	if err != nil {
		t.Fatal(err)
	}
	// start != initial prev (0,0,0,255) and isn't a cache hit, alpha
	// unchanged, and its own deltas from (0,0,0,255) exceed Diff/Luma
	// range, so it is RGB. next is then Luma{42,6,10} = 0xAA 0x6A.
	want := wantStream(2, 1, 0xFE, 100, 100, 100, 0xAA, 0x6A)
	if !bytes.Equal(got, want) {
		t.Fatalf("got % X, want % X", got, want)
	}
}

// TestRoundTrip covers spec §8's round-trip property across a handful of
// synthetic images exercising every operator.
func TestRoundTrip(t *testing.T) {
	images := map[string][]qoi.Pixel{
		"empty": {},
		"solid": repeat(qoi.Pixel{R: 10, G: 20, B: 30, A: 255}, 10),
		"gradient": func() []qoi.Pixel {
			p := make([]qoi.Pixel, 16)
			for i := range p {
				p[i] = qoi.Pixel{R: uint8(i * 7), G: uint8(i * 3), B: uint8(i), A: 255}
			}
			return p
		}(),
		"with alpha changes": {
			{R: 1, G: 2, B: 3, A: 255},
			{R: 1, G: 2, B: 3, A: 128},
			{R: 1, G: 2, B: 3, A: 0},
		},
		"repeats then changes": {
			black(), black(), black(),
			{R: 10, G: 10, B: 10, A: 255},
			{R: 10, G: 10, B: 10, A: 255},
			black(),
		},
	}

	for name, pixels := range images {
		t.Run(name, func(t *testing.T) {
			w, h := uint32(len(pixels)), uint32(1)
			if len(pixels) == 0 {
				w, h = 0, 0
			}
			data, err := qoi.Encode(w, h, pixels)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			img, err := qoi.Decode(data)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if img.Width != w || img.Height != h {
				t.Fatalf("dims = %dx%d, want %dx%d", img.Width, img.Height, w, h)
			}
			if len(img.Pixels) != len(pixels) {
				t.Fatalf("got %d pixels, want %d", len(img.Pixels), len(pixels))
			}
			for i := range pixels {
				if img.Pixels[i] != pixels[i] {
					t.Fatalf("pixel %d = %v, want %v", i, img.Pixels[i], pixels[i])
				}
			}

			// Re-encode stability: encoding the decode must reproduce
			// the original bytes exactly.
			reEncoded, err := qoi.Encode(img.Width, img.Height, img.Pixels)
			if err != nil {
				t.Fatalf("re-Encode: %v", err)
			}
			if !bytes.Equal(reEncoded, data) {
				t.Fatalf("re-encode mismatch:\ngot  % X\nwant % X", reEncoded, data)
			}
		})
	}
}

func repeat(p qoi.Pixel, n int) []qoi.Pixel {
	out := make([]qoi.Pixel, n)
	for i := range out {
		out[i] = p
	}
	return out
}
