package header

import (
	"fmt"

	"github.com/tsawler/rasterpng/pngerr"
)

// RGB is one palette entry.
type RGB struct {
	R, G, B uint8
}

// Palette is the ordered list of PLTE entries.
type Palette []RGB

// MaxPaletteEntries returns min(2^bitDepth, 256), the largest palette a
// given depth can use. A bit depth of 0 means the depth is not known yet
// and yields the format-wide limit of 256.
func MaxPaletteEntries(bitDepth uint8) int {
	if bitDepth == 0 || bitDepth > 8 {
		return 256
	}
	return 1 << bitDepth
}

// ParsePalette decodes a PLTE payload. The length must be a multiple of 3
// and hold at most MaxPaletteEntries(bitDepth) entries: 2^bitDepth for
// depths up to 8, and 256 for 16-bit or not yet known depths.
func ParsePalette(data []byte, bitDepth uint8) (Palette, error) {
	if len(data)%3 != 0 {
		return nil, fmt.Errorf("PLTE length %d is not a multiple of 3: %w", len(data), pngerr.ErrFormat)
	}
	if err := checkPaletteSize(len(data)/3, bitDepth); err != nil {
		return nil, err
	}

	p := make(Palette, len(data)/3)
	for i := range p {
		p[i] = RGB{R: data[3*i], G: data[3*i+1], B: data[3*i+2]}
	}
	return p, nil
}

// Validate re-checks the palette size against a bit depth learned after
// the palette was read.
func (p Palette) Validate(bitDepth uint8) error {
	return checkPaletteSize(len(p), bitDepth)
}

func checkPaletteSize(n int, bitDepth uint8) error {
	if limit := MaxPaletteEntries(bitDepth); n > limit {
		return fmt.Errorf("PLTE has %d entries, bit depth %d allows %d: %w", n, bitDepth, limit, pngerr.ErrFormat)
	}
	return nil
}

// Lookup returns entry i.
func (p Palette) Lookup(i int) (RGB, bool) {
	if i < 0 || i >= len(p) {
		return RGB{}, false
	}
	return p[i], true
}

// Bytes returns the palette in its on-disk form.
func (p Palette) Bytes() []byte {
	out := make([]byte, 0, 3*len(p))
	for _, c := range p {
		out = append(out, c.R, c.G, c.B)
	}
	return out
}

// Transparency is the raw tRNS payload. For indexed images byte i is the
// alpha of palette entry i. For other color types the payload holds a
// transparent sample value, which is kept but not applied.
type Transparency []byte

// ParseTransparency copies a tRNS payload.
func ParseTransparency(data []byte) Transparency {
	return append(Transparency(nil), data...)
}

// Alpha returns the alpha of palette index i, or 255 when the table does
// not cover it.
func (t Transparency) Alpha(i int) uint8 {
	if i < 0 || i >= len(t) {
		return 255
	}
	return t[i]
}
