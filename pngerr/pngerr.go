// Package pngerr defines the error kinds reported while decoding a PNG stream.
//
// Every error returned by the decoder wraps exactly one of the five kinds
// below, so callers can classify failures with errors.Is:
//
//	img, err := rasterpng.Decode(data)
//	if errors.Is(err, pngerr.ErrFormat) {
//	    // malformed input
//	}
//
// The refined errors (ErrInvalidSignature, ErrUnexpectedEOF, ...) wrap their
// kind, so errors.Is(err, pngerr.ErrBounds) also matches ErrUnexpectedEOF.
package pngerr

import (
	"errors"
	"fmt"
)

// Error kinds.
var (
	// ErrFormat reports a structurally invalid stream: bad signature, bad
	// header fields, palette violations or an unknown filter type.
	ErrFormat = errors.New("png: format error")

	// ErrBounds reports a read past the end of the input or a pixel
	// coordinate outside the image.
	ErrBounds = errors.New("png: out of bounds")

	// ErrUnsupported reports a valid feature this decoder does not implement.
	ErrUnsupported = errors.New("png: unsupported feature")

	// ErrDecompression reports a failure inflating the IDAT payload.
	ErrDecompression = errors.New("png: decompression failed")

	// ErrState reports an operation that is invalid for the image's state,
	// such as reading pixels from a header-only result.
	ErrState = errors.New("png: invalid state")
)

// Refined errors.
var (
	ErrInvalidSignature  = fmt.Errorf("%w: invalid signature", ErrFormat)
	ErrInvalidFilterType = fmt.Errorf("%w: invalid filter type", ErrFormat)
	ErrChecksum          = fmt.Errorf("%w: chunk checksum mismatch", ErrFormat)
	ErrUnexpectedEOF     = fmt.Errorf("%w: unexpected end of data", ErrBounds)
	ErrOutOfBounds       = fmt.Errorf("%w: pixel coordinates outside image", ErrBounds)
	ErrInterlaced        = fmt.Errorf("%w: Adam7 interlacing", ErrUnsupported)
	ErrEmptyPixelData    = fmt.Errorf("%w: no pixel data", ErrState)
)
