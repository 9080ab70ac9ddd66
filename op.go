package qoi

import "fmt"

// OpKind tags which of the six QOI operator variants an Operator holds.
// Selection is done by switching on Kind, never by virtual dispatch.
type OpKind uint8

const (
	OpRGB OpKind = iota
	OpRGBA
	OpIndex
	OpDiff
	OpLuma
	OpRun
)

const (
	tagRGB  byte = 0b11111110
	tagRGBA byte = 0b11111111

	tag2Mask byte = 0b11000000
	tagIndex byte = 0b00000000
	tagDiff  byte = 0b01000000
	tagLuma  byte = 0b10000000
	tagRun   byte = 0b11000000
)

// Operator is a tagged variant of the six QOI byte-stream operators. Only
// the fields relevant to Kind are meaningful; it is struct-of-tag-plus-
// payload rather than an interface hierarchy, so selection is a switch on
// Kind rather than virtual dispatch.
type Operator struct {
	Kind OpKind

	// RGB, RGBA.
	R, G, B, A uint8

	// Index: cache slot, 0..63.
	Index uint8

	// Diff: biased deltas, each 0..3 (actual = stored-2).
	DR, DG, DB uint8

	// Luma: biased green delta (0..63, actual = stored-32) and biased
	// red/blue-relative-to-green deltas (0..15 each, actual = stored-8).
	DGreen, DRDGreen, DBDGreen uint8

	// Run: repeat length, 1..62.
	RunLength uint8
}

// AppendTo serializes op and appends its bytes to buf, returning the
// extended slice. Fields outside the bounds documented on Operator are a
// programmer error: AppendTo panics rather than silently producing a
// corrupt stream, since a conforming encoder never constructs an
// out-of-range Operator in the first place.
func (op Operator) AppendTo(buf []byte) []byte {
	switch op.Kind {
	case OpRGB:
		return append(buf, tagRGB, op.R, op.G, op.B)
	case OpRGBA:
		return append(buf, tagRGBA, op.R, op.G, op.B, op.A)
	case OpIndex:
		if op.Index > 63 {
			panic(fmt.Sprintf("qoi: Index out of range: %d", op.Index))
		}
		return append(buf, tagIndex|op.Index)
	case OpDiff:
		if op.DR > 3 || op.DG > 3 || op.DB > 3 {
			panic(fmt.Sprintf("qoi: Diff deltas out of range: %d,%d,%d", op.DR, op.DG, op.DB))
		}
		return append(buf, tagDiff|op.DR<<4|op.DG<<2|op.DB)
	case OpLuma:
		if op.DGreen > 63 || op.DRDGreen > 15 || op.DBDGreen > 15 {
			panic(fmt.Sprintf("qoi: Luma deltas out of range: %d,%d,%d", op.DGreen, op.DRDGreen, op.DBDGreen))
		}
		return append(buf, tagLuma|op.DGreen, op.DRDGreen<<4|op.DBDGreen)
	case OpRun:
		if op.RunLength < 1 || op.RunLength > 62 {
			panic(fmt.Sprintf("qoi: Run length out of range: %d", op.RunLength))
		}
		return append(buf, tagRun|(op.RunLength-1))
	default:
		panic(fmt.Sprintf("qoi: unknown operator kind %d", op.Kind))
	}
}

// ParseOperator reads one Operator from the front of data, returning it
// along with the unconsumed remainder. It is pure: it never consults
// predictor state, only the bytes in front of it. It fails with
// ErrTruncatedStream if any byte the tag requires is missing.
func ParseOperator(data []byte) (Operator, []byte, error) {
	if len(data) < 1 {
		return Operator{}, nil, ErrTruncatedStream
	}
	tag := data[0]
	rest := data[1:]

	switch {
	case tag == tagRGB:
		if len(rest) < 3 {
			return Operator{}, nil, ErrTruncatedStream
		}
		return Operator{Kind: OpRGB, R: rest[0], G: rest[1], B: rest[2]}, rest[3:], nil

	case tag == tagRGBA:
		if len(rest) < 4 {
			return Operator{}, nil, ErrTruncatedStream
		}
		return Operator{Kind: OpRGBA, R: rest[0], G: rest[1], B: rest[2], A: rest[3]}, rest[4:], nil

	case tag&tag2Mask == tagIndex:
		return Operator{Kind: OpIndex, Index: tag & 0b00111111}, rest, nil

	case tag&tag2Mask == tagDiff:
		return Operator{
			Kind: OpDiff,
			DR:   (tag >> 4) & 0b11,
			DG:   (tag >> 2) & 0b11,
			DB:   tag & 0b11,
		}, rest, nil

	case tag&tag2Mask == tagLuma:
		if len(rest) < 1 {
			return Operator{}, nil, ErrTruncatedStream
		}
		rb := rest[0]
		return Operator{
			Kind:     OpLuma,
			DGreen:   tag & 0b00111111,
			DRDGreen: (rb >> 4) & 0b1111,
			DBDGreen: rb & 0b1111,
		}, rest[1:], nil

	default: // tag&tag2Mask == tagRun
		return Operator{Kind: OpRun, RunLength: (tag & 0b00111111) + 1}, rest, nil
	}
}
