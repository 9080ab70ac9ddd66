package qoi

import "errors"

// Decoder error kinds. The encoder has none of its own — every input is
// valid by construction, modulo a caller hand-building an out-of-range
// Operator (see Operator.AppendTo).
var (
	// ErrBadMagic is returned when the input is shorter than the 14-byte
	// header or the first four header bytes are not "qoif".
	ErrBadMagic = errors.New("qoi: bad magic bytes")

	// ErrTruncatedStream is returned when an operator runs off the end
	// of the input before width*height pixels have been produced.
	ErrTruncatedStream = errors.New("qoi: truncated stream")

	// ErrOverflowRun is returned when a Run's length would push the
	// decoded pixel count past width*height.
	ErrOverflowRun = errors.New("qoi: run overflows image bounds")

	// ErrBadFooter is returned when the bytes following the last pixel
	// are not the 8-byte footer.
	ErrBadFooter = errors.New("qoi: bad footer")

	// ErrBadIndex is returned for an Index operator whose slot is out
	// of range. This is defensive: ParseOperator can never produce an
	// Index >= 64 since the tag only carries 6 bits, but Decode guards
	// it anyway because Operator values can also arrive hand-built.
	ErrBadIndex = errors.New("qoi: index out of range")
)
