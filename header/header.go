// Package header decodes the descriptive chunks of a PNG stream: the IHDR
// image header, the PLTE palette and the tRNS transparency table.
package header

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/tsawler/rasterpng/pngerr"
)

// Length is the size of an IHDR payload.
const Length = 13

// ColorType is the PNG color type.
type ColorType uint8

// Color types, as per the PNG specification.
const (
	Grayscale      ColorType = 0
	Truecolor      ColorType = 2
	Indexed        ColorType = 3
	GrayscaleAlpha ColorType = 4
	TruecolorAlpha ColorType = 6
)

// colorInfo describes the sample layout of a color type.
type colorInfo struct {
	channels int
	alpha    bool
	depths   []uint8 // permitted bit depths
}

var colorTable = map[ColorType]colorInfo{
	Grayscale:      {channels: 1, alpha: false, depths: []uint8{1, 2, 4, 8, 16}},
	Truecolor:      {channels: 3, alpha: false, depths: []uint8{8, 16}},
	Indexed:        {channels: 1, alpha: false, depths: []uint8{1, 2, 4, 8}},
	GrayscaleAlpha: {channels: 2, alpha: true, depths: []uint8{8, 16}},
	TruecolorAlpha: {channels: 4, alpha: true, depths: []uint8{8, 16}},
}

// Valid reports whether c is one of the five defined color types.
func (c ColorType) Valid() bool {
	_, ok := colorTable[c]
	return ok
}

// Channels returns the number of samples per pixel. An indexed pixel has a
// single sample, the palette index. Invalid color types report 0.
func (c ColorType) Channels() int {
	return colorTable[c].channels
}

// HasAlpha reports whether pixels carry an alpha sample.
func (c ColorType) HasAlpha() bool {
	return colorTable[c].alpha
}

// String returns a short name for the color type.
func (c ColorType) String() string {
	switch c {
	case Grayscale:
		return "Grayscale"
	case Truecolor:
		return "Truecolor"
	case Indexed:
		return "Indexed"
	case GrayscaleAlpha:
		return "GrayscaleAlpha"
	case TruecolorAlpha:
		return "TruecolorAlpha"
	default:
		return fmt.Sprintf("ColorType(%d)", uint8(c))
	}
}

// Interlace is the PNG interlace method.
type Interlace uint8

const (
	// InterlaceNone stores scanlines in order.
	InterlaceNone Interlace = 0
	// InterlaceAdam7 stores the image as seven reduced passes.
	InterlaceAdam7 Interlace = 1
)

// Header holds the fields of the IHDR chunk.
type Header struct {
	Width             uint32
	Height            uint32
	BitDepth          uint8
	ColorType         ColorType
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   Interlace
}

// wireHeader is the on-disk layout of IHDR.
type wireHeader struct {
	Width       uint32
	Height      uint32
	BitDepth    uint8
	ColorType   uint8
	Compression uint8
	Filter      uint8
	Interlace   uint8
}

// Parse decodes a 13-byte IHDR payload. Each field is checked as it is
// set and the first violation is returned, wrapping pngerr.ErrFormat.
func Parse(data []byte) (Header, error) {
	if len(data) != Length {
		return Header{}, fmt.Errorf("IHDR length %d, expected %d: %w", len(data), Length, pngerr.ErrFormat)
	}

	var w wireHeader
	if err := binary.Read(bytes.NewReader(data), binary.BigEndian, &w); err != nil {
		return Header{}, fmt.Errorf("reading IHDR: %w", pngerr.ErrUnexpectedEOF)
	}

	var h Header
	steps := []func() error{
		func() error { return h.setDimensions(w.Width, w.Height) },
		func() error { return h.setColorType(w.ColorType) },
		func() error { return h.setBitDepth(w.BitDepth) },
		func() error { return h.setCompressionMethod(w.Compression) },
		func() error { return h.setFilterMethod(w.Filter) },
		func() error { return h.setInterlaceMethod(w.Interlace) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return Header{}, err
		}
	}
	return h, nil
}

func (h *Header) setDimensions(width, height uint32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("invalid dimensions %dx%d: %w", width, height, pngerr.ErrFormat)
	}
	h.Width, h.Height = width, height
	return nil
}

func (h *Header) setColorType(v uint8) error {
	ct := ColorType(v)
	if !ct.Valid() {
		return fmt.Errorf("invalid color type %d: %w", v, pngerr.ErrFormat)
	}
	h.ColorType = ct
	return nil
}

// setBitDepth must run after setColorType.
func (h *Header) setBitDepth(v uint8) error {
	for _, d := range colorTable[h.ColorType].depths {
		if d == v {
			h.BitDepth = v
			return nil
		}
	}
	return fmt.Errorf("bit depth %d not allowed for color type %d: %w", v, h.ColorType, pngerr.ErrFormat)
}

func (h *Header) setCompressionMethod(v uint8) error {
	if v != 0 {
		return fmt.Errorf("invalid compression method %d, expected 0: %w", v, pngerr.ErrFormat)
	}
	h.CompressionMethod = v
	return nil
}

func (h *Header) setFilterMethod(v uint8) error {
	if v != 0 {
		return fmt.Errorf("invalid filter method %d, expected 0: %w", v, pngerr.ErrFormat)
	}
	h.FilterMethod = v
	return nil
}

func (h *Header) setInterlaceMethod(v uint8) error {
	if Interlace(v) != InterlaceNone && Interlace(v) != InterlaceAdam7 {
		return fmt.Errorf("invalid interlace method %d, expected 0 or 1: %w", v, pngerr.ErrFormat)
	}
	h.InterlaceMethod = Interlace(v)
	return nil
}

// Channels returns the number of samples per pixel.
func (h Header) Channels() int {
	return h.ColorType.Channels()
}

// HasAlpha reports whether pixels carry an alpha sample.
func (h Header) HasAlpha() bool {
	return h.ColorType.HasAlpha()
}

// BytesPerPixel returns max(1, channels*bitDepth/8). This is both the
// filter distance used by Sub, Average and Paeth and the size of one pixel
// in the decoded raster buffer.
func (h Header) BytesPerPixel() int {
	bpp := h.Channels() * int(h.BitDepth) / 8
	if bpp < 1 {
		return 1
	}
	return bpp
}

// RowBytes returns the length of one filtered scanline, excluding the
// filter-type byte. Samples narrower than a byte are packed.
func (h Header) RowBytes() int {
	bits := uint64(h.Width) * uint64(h.Channels()) * uint64(h.BitDepth)
	return int((bits + 7) / 8)
}
