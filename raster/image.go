package raster

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/tsawler/rasterpng/header"
	"github.com/tsawler/rasterpng/pngerr"
)

// Image is a decoded PNG raster. It is immutable once created.
type Image struct {
	header       header.Header
	palette      header.Palette
	transparency header.Transparency
	pix          []byte // nil for header-only results
}

var _ image.Image = (*Image)(nil)

// New assembles an Image. pix is nil when only the header was decoded,
// otherwise it must hold BytesPerPixel × width × height bytes. New takes
// ownership of its arguments.
func New(h header.Header, palette header.Palette, trns header.Transparency, pix []byte) (*Image, error) {
	if pix != nil {
		want := uint64(h.BytesPerPixel()) * uint64(h.Width) * uint64(h.Height)
		if uint64(len(pix)) != want {
			return nil, fmt.Errorf("pixel buffer holds %d bytes, expected %d: %w", len(pix), want, pngerr.ErrFormat)
		}
	}
	return &Image{
		header:       h,
		palette:      palette,
		transparency: trns,
		pix:          pix,
	}, nil
}

// Header returns the IHDR fields.
func (m *Image) Header() header.Header { return m.header }

// Width returns the width in pixels.
func (m *Image) Width() int { return int(m.header.Width) }

// Height returns the height in pixels.
func (m *Image) Height() int { return int(m.header.Height) }

// BitDepth returns the number of bits per sample.
func (m *Image) BitDepth() int { return int(m.header.BitDepth) }

// ColorType returns the PNG color type.
func (m *Image) ColorType() header.ColorType { return m.header.ColorType }

// CompressionMethod returns the IHDR compression method (always 0).
func (m *Image) CompressionMethod() int { return int(m.header.CompressionMethod) }

// FilterMethod returns the IHDR filter method (always 0).
func (m *Image) FilterMethod() int { return int(m.header.FilterMethod) }

// InterlaceMethod returns the IHDR interlace method.
func (m *Image) InterlaceMethod() header.Interlace { return m.header.InterlaceMethod }

// Channels returns the number of samples per pixel.
func (m *Image) Channels() int { return m.header.Channels() }

// HasAlpha reports whether the color type carries an alpha sample.
func (m *Image) HasAlpha() bool { return m.header.HasAlpha() }

// BytesPerPixel returns the size of one pixel in the sample buffer.
func (m *Image) BytesPerPixel() int { return m.header.BytesPerPixel() }

// Palette returns a copy of the palette, or nil.
func (m *Image) Palette() header.Palette {
	if m.palette == nil {
		return nil
	}
	return append(header.Palette(nil), m.palette...)
}

// Transparency returns a copy of the raw tRNS payload, or nil.
func (m *Image) Transparency() header.Transparency {
	if m.transparency == nil {
		return nil
	}
	return append(header.Transparency(nil), m.transparency...)
}

// HasPixelData reports whether the sample buffer was decoded.
func (m *Image) HasPixelData() bool {
	return m.pix != nil
}

// Pix returns a copy of the sample buffer, or nil for header-only images.
func (m *Image) Pix() []byte {
	if m.pix == nil {
		return nil
	}
	return append([]byte(nil), m.pix...)
}

// Pixel returns the color at (x, y). It fails with pngerr.ErrOutOfBounds
// outside the image and pngerr.ErrEmptyPixelData when no samples were
// decoded.
//
// Gray samples of 1, 2 or 4 bits are scaled to the full 0..255 range
// (×255, ×85, ×17) rather than returned as the raw sample value, so a
// 1-bit white pixel reads as 255, not 1. 16-bit samples report their
// high byte. Palette indices are never scaled.
func (m *Image) Pixel(x, y int) (color.NRGBA, error) {
	if x < 0 || y < 0 || x >= m.Width() || y >= m.Height() {
		return color.NRGBA{}, fmt.Errorf("pixel (%d, %d) in %dx%d image: %w", x, y, m.Width(), m.Height(), pngerr.ErrOutOfBounds)
	}
	if m.pix == nil {
		return color.NRGBA{}, pngerr.ErrEmptyPixelData
	}

	off := m.BytesPerPixel() * (y*m.Width() + x)

	switch m.header.ColorType {
	case header.Grayscale:
		s := m.gray(off)
		return color.NRGBA{R: s, G: s, B: s, A: 255}, nil

	case header.Truecolor:
		return color.NRGBA{R: m.sample(off, 0), G: m.sample(off, 1), B: m.sample(off, 2), A: 255}, nil

	case header.Indexed:
		idx := int(m.pix[off])
		c, ok := m.palette.Lookup(idx)
		if !ok {
			return color.NRGBA{}, fmt.Errorf("palette index %d at (%d, %d), palette has %d entries: %w",
				idx, x, y, len(m.palette), pngerr.ErrFormat)
		}
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: m.transparency.Alpha(idx)}, nil

	case header.GrayscaleAlpha:
		s := m.sample(off, 0)
		return color.NRGBA{R: s, G: s, B: s, A: m.sample(off, 1)}, nil

	case header.TruecolorAlpha:
		return color.NRGBA{R: m.sample(off, 0), G: m.sample(off, 1), B: m.sample(off, 2), A: m.sample(off, 3)}, nil

	default:
		return color.NRGBA{}, fmt.Errorf("color type %d: %w", m.header.ColorType, pngerr.ErrFormat)
	}
}

// sample returns the most significant byte of sample i of the pixel at off.
func (m *Image) sample(off, i int) uint8 {
	bytesPerSample := int(m.header.BitDepth) / 8
	if bytesPerSample < 1 {
		bytesPerSample = 1
	}
	return m.pix[off+i*bytesPerSample]
}

// gray returns a grayscale sample scaled to 8 bits.
func (m *Image) gray(off int) uint8 {
	switch m.header.BitDepth {
	case 1:
		return m.pix[off] * 0xFF
	case 2:
		return m.pix[off] * 0x55
	case 4:
		return m.pix[off] * 0x11 // 17 = 255/15
	default:
		return m.sample(off, 0)
	}
}

// RGBA returns the image as interleaved R, G, B, A bytes, row by row.
func (m *Image) RGBA() ([]byte, error) {
	if m.pix == nil {
		return nil, pngerr.ErrEmptyPixelData
	}

	w, h := m.Width(), m.Height()
	out := make([]byte, 0, 4*w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c, err := m.Pixel(x, y)
			if err != nil {
				return nil, err
			}
			out = append(out, c.R, c.G, c.B, c.A)
		}
	}
	return out, nil
}

// ToNRGBA converts the image to an *image.NRGBA.
func (m *Image) ToNRGBA() (*image.NRGBA, error) {
	rgba, err := m.RGBA()
	if err != nil {
		return nil, err
	}

	goImg := image.NewNRGBA(m.Bounds())
	copy(goImg.Pix, rgba)
	return goImg, nil
}

// ToRGBA converts the image to an alpha-premultiplied *image.RGBA.
func (m *Image) ToRGBA() (*image.RGBA, error) {
	src, err := m.ToNRGBA()
	if err != nil {
		return nil, err
	}

	dst := image.NewRGBA(m.Bounds())
	draw.Draw(dst, dst.Bounds(), src, image.Point{}, draw.Src)
	return dst, nil
}

// ColorModel implements image.Image.
func (m *Image) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements image.Image.
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width(), m.Height())
}

// At implements image.Image. Pixels that cannot be read are transparent.
func (m *Image) At(x, y int) color.Color {
	c, err := m.Pixel(x, y)
	if err != nil {
		return color.NRGBA{}
	}
	return c
}
