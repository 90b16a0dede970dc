package rasterpng

import "github.com/tsawler/rasterpng/pngerr"

// Error kinds, re-exported from package pngerr. Every error returned by
// this package matches exactly one of them under errors.Is.
var (
	ErrFormat        = pngerr.ErrFormat
	ErrBounds        = pngerr.ErrBounds
	ErrUnsupported   = pngerr.ErrUnsupported
	ErrDecompression = pngerr.ErrDecompression
	ErrState         = pngerr.ErrState
)
