package rasterpng

import "github.com/rs/zerolog"

// DecodeOptions holds configuration for a decode session.
type DecodeOptions struct {
	// Integrity checks
	verifyCRC bool
	strict    bool // enforce chunk ordering rules

	// Resource limits
	maxPixels uint64 // 0 means unlimited

	// Diagnostics
	logger zerolog.Logger
}

// defaultOptions returns the default decode options.
func defaultOptions() DecodeOptions {
	return DecodeOptions{
		verifyCRC: false,
		strict:    false,
		maxPixels: 0,
		logger:    zerolog.Nop(),
	}
}

// clone creates a copy of DecodeOptions.
func (o DecodeOptions) clone() DecodeOptions {
	return DecodeOptions{
		verifyCRC: o.verifyCRC,
		strict:    o.strict,
		maxPixels: o.maxPixels,
		logger:    o.logger,
	}
}
