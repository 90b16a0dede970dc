package header

import (
	"bytes"
	"errors"
	"testing"

	"github.com/tsawler/rasterpng/pngerr"
)

// ihdr builds an IHDR payload.
func ihdr(width, height uint32, depth, ct, comp, filter, interlace uint8) []byte {
	return []byte{
		byte(width >> 24), byte(width >> 16), byte(width >> 8), byte(width),
		byte(height >> 24), byte(height >> 16), byte(height >> 8), byte(height),
		depth, ct, comp, filter, interlace,
	}
}

func TestColorTypeTable(t *testing.T) {
	tests := []struct {
		ct       ColorType
		channels int
		alpha    bool
	}{
		{Grayscale, 1, false},
		{Truecolor, 3, false},
		{Indexed, 1, false},
		{GrayscaleAlpha, 2, true},
		{TruecolorAlpha, 4, true},
	}

	for _, tt := range tests {
		if !tt.ct.Valid() {
			t.Errorf("%v should be valid", tt.ct)
		}
		if got := tt.ct.Channels(); got != tt.channels {
			t.Errorf("%v.Channels() = %d, want %d", tt.ct, got, tt.channels)
		}
		if got := tt.ct.HasAlpha(); got != tt.alpha {
			t.Errorf("%v.HasAlpha() = %v, want %v", tt.ct, got, tt.alpha)
		}
	}
}

func TestColorTypeRejectsUndefinedValues(t *testing.T) {
	for v := 0; v < 256; v++ {
		ct := ColorType(v)
		defined := v == 0 || v == 2 || v == 3 || v == 4 || v == 6
		if ct.Valid() != defined {
			t.Errorf("ColorType(%d).Valid() = %v, want %v", v, ct.Valid(), defined)
		}
		if defined {
			continue
		}
		_, err := Parse(ihdr(1, 1, 8, uint8(v), 0, 0, 0))
		if !errors.Is(err, pngerr.ErrFormat) {
			t.Errorf("color type %d: expected ErrFormat, got %v", v, err)
		}
	}
}

func TestColorTypeString(t *testing.T) {
	if got := Indexed.String(); got != "Indexed" {
		t.Errorf("Indexed.String() = %q", got)
	}
	if got := ColorType(5).String(); got != "ColorType(5)" {
		t.Errorf("ColorType(5).String() = %q", got)
	}
}

func TestParse(t *testing.T) {
	h, err := Parse(ihdr(640, 480, 8, 6, 0, 0, 1))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := Header{
		Width:             640,
		Height:            480,
		BitDepth:          8,
		ColorType:         TruecolorAlpha,
		CompressionMethod: 0,
		FilterMethod:      0,
		InterlaceMethod:   InterlaceAdam7,
	}
	if h != want {
		t.Errorf("Parse = %+v, want %+v", h, want)
	}
	if h.Channels() != 4 || !h.HasAlpha() {
		t.Errorf("channels=%d alpha=%v, want 4 true", h.Channels(), h.HasAlpha())
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short payload", ihdr(1, 1, 8, 0, 0, 0, 0)[:12]},
		{"long payload", append(ihdr(1, 1, 8, 0, 0, 0, 0), 0)},
		{"zero width", ihdr(0, 1, 8, 0, 0, 0, 0)},
		{"zero height", ihdr(1, 0, 8, 0, 0, 0, 0)},
		{"color type 1", ihdr(1, 1, 8, 1, 0, 0, 0)},
		{"color type 7", ihdr(1, 1, 8, 7, 0, 0, 0)},
		{"compression 1", ihdr(1, 1, 8, 0, 1, 0, 0)},
		{"filter method 1", ihdr(1, 1, 8, 0, 0, 1, 0)},
		{"interlace 2", ihdr(1, 1, 8, 0, 0, 0, 2)},
		{"truecolor depth 4", ihdr(1, 1, 4, 2, 0, 0, 0)},
		{"indexed depth 16", ihdr(1, 1, 16, 3, 0, 0, 0)},
		{"grayscale depth 3", ihdr(1, 1, 3, 0, 0, 0, 0)},
		{"gray alpha depth 1", ihdr(1, 1, 1, 4, 0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.data); !errors.Is(err, pngerr.ErrFormat) {
				t.Errorf("expected ErrFormat, got %v", err)
			}
		})
	}
}

func TestBytesPerPixelAndRowBytes(t *testing.T) {
	tests := []struct {
		width    uint32
		depth    uint8
		ct       ColorType
		bpp      int
		rowBytes int
	}{
		{1, 8, Grayscale, 1, 1},
		{10, 8, Truecolor, 3, 30},
		{10, 8, TruecolorAlpha, 4, 40},
		{10, 16, TruecolorAlpha, 8, 80},
		{10, 16, GrayscaleAlpha, 4, 40},
		{10, 1, Indexed, 1, 2},
		{8, 1, Grayscale, 1, 1},
		{9, 2, Grayscale, 1, 3},
		{3, 4, Indexed, 1, 2},
	}

	for _, tt := range tests {
		h := Header{Width: tt.width, Height: 1, BitDepth: tt.depth, ColorType: tt.ct}
		if got := h.BytesPerPixel(); got != tt.bpp {
			t.Errorf("%v depth %d: BytesPerPixel() = %d, want %d", tt.ct, tt.depth, got, tt.bpp)
		}
		if got := h.RowBytes(); got != tt.rowBytes {
			t.Errorf("%v depth %d width %d: RowBytes() = %d, want %d", tt.ct, tt.depth, tt.width, got, tt.rowBytes)
		}
	}
}

func TestParsePalette(t *testing.T) {
	data := []byte{10, 20, 30, 40, 50, 60}
	p, err := ParsePalette(data, 8)
	if err != nil {
		t.Fatalf("ParsePalette failed: %v", err)
	}
	if len(p) != 2 || p[0] != (RGB{10, 20, 30}) || p[1] != (RGB{40, 50, 60}) {
		t.Errorf("ParsePalette = %v", p)
	}
	if !bytes.Equal(p.Bytes(), data) {
		t.Errorf("Bytes() = %v, want %v", p.Bytes(), data)
	}

	data[0] = 99
	if p[0].R != 10 {
		t.Errorf("palette aliases its input")
	}

	if c, ok := p.Lookup(1); !ok || c != (RGB{40, 50, 60}) {
		t.Errorf("Lookup(1) = %v, %v", c, ok)
	}
	if _, ok := p.Lookup(2); ok {
		t.Errorf("Lookup(2) should miss")
	}
	if _, ok := p.Lookup(-1); ok {
		t.Errorf("Lookup(-1) should miss")
	}
}

func TestParsePaletteLimits(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		depth   uint8
		wantErr bool
	}{
		{"empty", 0, 8, false},
		{"not multiple of 3", 4, 8, true},
		{"one entry depth 1", 3, 1, false},
		{"two entries depth 1", 6, 1, false},
		{"three entries depth 1", 9, 1, true},
		{"four entries depth 2", 12, 2, false},
		{"five entries depth 2", 15, 2, true},
		{"sixteen entries depth 4", 48, 4, false},
		{"seventeen entries depth 4", 51, 4, true},
		{"256 entries depth 8", 768, 8, false},
		{"257 entries depth 8", 771, 8, true},
		{"unknown depth", 768, 0, false},
		{"unknown depth too long", 771, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePalette(make([]byte, tt.length), tt.depth)
			if tt.wantErr {
				if !errors.Is(err, pngerr.ErrFormat) {
					t.Errorf("expected ErrFormat, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestPaletteValidate(t *testing.T) {
	p, err := ParsePalette(make([]byte, 9), 0)
	if err != nil {
		t.Fatalf("ParsePalette failed: %v", err)
	}
	if err := p.Validate(2); err != nil {
		t.Errorf("3 entries at depth 2: %v", err)
	}
	if err := p.Validate(1); !errors.Is(err, pngerr.ErrFormat) {
		t.Errorf("3 entries at depth 1: expected ErrFormat, got %v", err)
	}
}

func TestTransparency(t *testing.T) {
	src := []byte{0, 128}
	tr := ParseTransparency(src)
	src[0] = 7

	tests := []struct {
		index int
		want  uint8
	}{
		{0, 0},
		{1, 128},
		{2, 255},
		{-1, 255},
	}
	for _, tt := range tests {
		if got := tr.Alpha(tt.index); got != tt.want {
			t.Errorf("Alpha(%d) = %d, want %d", tt.index, got, tt.want)
		}
	}

	var empty Transparency
	if got := empty.Alpha(0); got != 255 {
		t.Errorf("empty table Alpha(0) = %d, want 255", got)
	}
}
