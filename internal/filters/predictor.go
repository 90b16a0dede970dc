package filters

import (
	"fmt"

	"github.com/tsawler/rasterpng/internal/cursor"
	"github.com/tsawler/rasterpng/pngerr"
)

// FilterType is the per-scanline predictor selector.
type FilterType byte

// Filter types, as per the PNG specification.
const (
	FilterNone    FilterType = 0
	FilterSub     FilterType = 1
	FilterUp      FilterType = 2
	FilterAverage FilterType = 3
	FilterPaeth   FilterType = 4
)

// Unfilter reverses PNG scanline filtering. data holds rows scanlines, each a
// filter-type byte followed by rowBytes filtered bytes. bpp is the distance
// in bytes to the corresponding byte of the pixel on the left.
//
// The result holds rows*rowBytes bytes with the filter bytes removed.
// Trailing data after the last row is ignored. Data too short for rows
// scanlines fails with pngerr.ErrUnexpectedEOF before the output is
// allocated.
func Unfilter(data []byte, rows, rowBytes, bpp int) ([]byte, error) {
	if rows < 0 || rowBytes < 0 || bpp < 1 {
		return nil, fmt.Errorf("invalid geometry rows=%d rowBytes=%d bpp=%d: %w", rows, rowBytes, bpp, pngerr.ErrFormat)
	}

	// rows*(rowBytes+1) may overflow int.
	if rows > 0 && rows > len(data)/(rowBytes+1) {
		return nil, fmt.Errorf("%d rows of %d bytes exceed the %d bytes available: %w",
			rows, rowBytes+1, len(data), pngerr.ErrUnexpectedEOF)
	}

	cur := cursor.New(data)
	out := make([]byte, rows*rowBytes)

	var prev []byte // nil for the first row, read as all zero
	for row := 0; row < rows; row++ {
		ft, err := cur.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("row %d filter type: %w", row, err)
		}
		src, err := cur.ReadBytes(rowBytes)
		if err != nil {
			return nil, fmt.Errorf("row %d data: %w", row, err)
		}

		of := row * rowBytes
		dst := out[of : of+rowBytes]
		copy(dst, src)

		if err := unfilterRow(FilterType(ft), dst, prev, bpp); err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		prev = dst
	}

	return out, nil
}

// unfilterRow reconstructs cur in place. prev is the already reconstructed
// row above, or nil on the first row.
func unfilterRow(ft FilterType, cur, prev []byte, bpp int) error {
	switch ft {
	case FilterNone:

	case FilterSub:
		for i := bpp; i < len(cur); i++ {
			cur[i] += cur[i-bpp]
		}

	case FilterUp:
		if prev == nil {
			return nil
		}
		for i := range cur {
			cur[i] += prev[i]
		}

	case FilterAverage:
		if prev == nil {
			for i := bpp; i < len(cur); i++ {
				cur[i] += cur[i-bpp] >> 1
			}
			return nil
		}
		for i := 0; i < bpp && i < len(cur); i++ {
			cur[i] += prev[i] >> 1
		}
		for i := bpp; i < len(cur); i++ {
			cur[i] += uint8((int(cur[i-bpp]) + int(prev[i])) / 2)
		}

	case FilterPaeth:
		for i := range cur {
			var left, up, upLeft byte
			if i >= bpp {
				left = cur[i-bpp]
			}
			if prev != nil {
				up = prev[i]
				if i >= bpp {
					upLeft = prev[i-bpp]
				}
			}
			cur[i] += paethPredictor(left, up, upLeft)
		}

	default:
		return fmt.Errorf("filter type %d: %w", ft, pngerr.ErrInvalidFilterType)
	}

	return nil
}

// paethPredictor implements the Paeth predictor algorithm from the PNG specification.
// It selects the neighbor (left, above, or upper-left) closest to a linear prediction,
// preferring a, then b, then c on ties.
func paethPredictor(a, b, c byte) byte {
	// a = left, b = above, c = upper left
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))

	if pa <= pb && pa <= pc {
		return a
	} else if pb <= pc {
		return b
	}
	return c
}

// abs returns the absolute value of an integer.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
