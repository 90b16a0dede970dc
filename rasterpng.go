// Package rasterpng decodes PNG images into an in-memory raster.
//
// Basic usage:
//
//	img, err := rasterpng.Decode(data)
//	if err != nil {
//	    // handle error
//	}
//	c, err := img.Pixel(0, 0) // color.NRGBA
//
// With options:
//
//	img, err := rasterpng.New(data).
//	    VerifyCRC().
//	    Strict().
//	    MaxPixels(64 << 20).
//	    WithLogger(logger).
//	    Decode()
//
// Reading only the header stops after the first IHDR chunk:
//
//	hdr, err := rasterpng.New(data).Header()
//	fmt.Println(hdr.Width(), hdr.Height())
//
// Adam7-interlaced images are reported with ErrUnsupported. The chunk,
// header, filters and raster packages expose the individual stages.
package rasterpng

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"

	"github.com/tsawler/rasterpng/raster"
)

// New creates a Decoder for data. The Decoder takes ownership of data; the
// caller must not modify it afterwards.
//
// Example:
//
//	img, err := rasterpng.New(data).Decode()
func New(data []byte) *Decoder {
	return &Decoder{
		data:    data,
		options: defaultOptions(),
	}
}

// NewFromString creates a Decoder from a string in which every character
// stands for one byte (U+0000 to U+00FF). A conversion failure is reported
// by the terminal operation.
func NewFromString(s string) *Decoder {
	data, err := FromString(s)
	d := New(data)
	d.err = err
	return d
}

// FromString converts a string whose characters are each in the range
// U+0000 to U+00FF into the bytes they stand for.
func FromString(s string) ([]byte, error) {
	data, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("string holds invalid UTF-8 or a character above U+00FF: %w", ErrFormat)
	}
	return data, nil
}

// Decode decodes a complete PNG image with default options.
func Decode(data []byte) (*raster.Image, error) {
	return New(data).Decode()
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	img := rasterpng.Must(rasterpng.Decode(data))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
