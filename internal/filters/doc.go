// Package filters reverses the two encoding stages applied to PNG image
// data: zlib compression and per-scanline prediction.
//
// # Inflate
//
// The IDAT payload is a single zlib stream once all chunks are joined:
//
//	filtered, err := filters.Inflate(payload, expectedLen)
//
// A positive limit bounds the inflated size; a stream that produces more
// data fails rather than allocating without bound.
//
// # Unfilter
//
// Each scanline of the inflated data starts with a filter-type byte that
// selects one of five predictors:
//   - 0: None
//   - 1: Sub (left neighbour)
//   - 2: Up (neighbour above)
//   - 3: Average (floor of the mean of left and above)
//   - 4: Paeth (left, above or upper-left, whichever is closest to left+above-upperLeft)
//
// Unfilter strips the filter bytes and returns the reconstructed rows:
//
//	raw, err := filters.Unfilter(filtered, rows, rowBytes, bytesPerPixel)
//
// All sample arithmetic wraps modulo 256.
package filters
