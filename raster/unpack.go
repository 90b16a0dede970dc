package raster

import (
	"fmt"

	"github.com/tsawler/rasterpng/pngerr"
)

// Unpack widens packed 1, 2 or 4 bit samples to one byte per sample. rows
// of rowBytes bytes each are read MSB first and width samples are taken from
// each row; padding bits at the end of a row are dropped. Sample values are
// not scaled.
func Unpack(packed []byte, width, rows, rowBytes, bitDepth int) ([]byte, error) {
	switch bitDepth {
	case 1, 2, 4:
	default:
		return nil, fmt.Errorf("cannot unpack %d-bit samples: %w", bitDepth, pngerr.ErrFormat)
	}

	perByte := 8 / bitDepth
	if rowBytes*perByte < width {
		return nil, fmt.Errorf("%d-byte rows hold fewer than %d samples: %w", rowBytes, width, pngerr.ErrFormat)
	}
	if len(packed) < rows*rowBytes {
		return nil, fmt.Errorf("packed data holds %d bytes, expected %d: %w", len(packed), rows*rowBytes, pngerr.ErrUnexpectedEOF)
	}

	mask := byte(1<<bitDepth - 1)
	out := make([]byte, width*rows)
	for y := 0; y < rows; y++ {
		rowStart := y * rowBytes
		for x := 0; x < width; x++ {
			b := packed[rowStart+x/perByte]
			shift := 8 - bitDepth*(x%perByte+1) // MSB first
			out[y*width+x] = (b >> shift) & mask
		}
	}
	return out, nil
}
