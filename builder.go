package rasterpng

import (
	"bytes"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/tsawler/rasterpng/chunk"
	"github.com/tsawler/rasterpng/header"
	"github.com/tsawler/rasterpng/internal/filters"
	"github.com/tsawler/rasterpng/pngerr"
	"github.com/tsawler/rasterpng/raster"
)

// builder accumulates validated chunk contents during one decode session.
// Nothing leaves the builder until finish produces an immutable Image.
type builder struct {
	strict    bool
	maxPixels uint64
	log       zerolog.Logger

	header       *header.Header
	palette      header.Palette
	transparency header.Transparency
	data         bytes.Buffer // concatenated IDAT payloads

	count int                // chunks added so far
	seen  map[chunk.Kind]int // occurrences per kind
	last  chunk.Kind
	ended bool
}

type chunkHandler func(*builder, chunk.Chunk) error

// handlers dispatches known chunk kinds. Kinds without an entry are skipped.
var handlers = map[chunk.Kind]chunkHandler{
	chunk.IHDR: (*builder).setHeader,
	chunk.PLTE: (*builder).setPalette,
	chunk.IDAT: (*builder).appendData,
	chunk.TRNS: (*builder).setTransparency,
	chunk.IEND: (*builder).end,
}

func newBuilder(opts DecodeOptions) *builder {
	return &builder{
		strict:    opts.strict,
		maxPixels: opts.maxPixels,
		log:       opts.logger,
		seen:      make(map[chunk.Kind]int),
	}
}

// add applies one chunk.
func (b *builder) add(c chunk.Chunk) error {
	handle, ok := handlers[c.Kind]
	if !ok {
		handle = (*builder).skip
	}
	if err := handle(b, c); err != nil {
		return err
	}

	b.count++
	b.seen[c.Kind]++
	b.last = c.Kind
	return nil
}

// orderError reports a chunk that breaks the format's ordering rules.
func orderError(c chunk.Chunk, rule string) error {
	return fmt.Errorf("chunk %s at offset %d: %s: %w", c.Tag, c.Offset, rule, pngerr.ErrFormat)
}

func (b *builder) setHeader(c chunk.Chunk) error {
	if b.header != nil {
		if b.strict {
			return orderError(c, "duplicate IHDR")
		}
		b.log.Debug().Int("offset", c.Offset).Msg("ignoring repeated IHDR")
		return nil
	}
	if b.strict && b.count > 0 {
		return orderError(c, "IHDR must be the first chunk")
	}

	h, err := header.Parse(c.Data)
	if err != nil {
		return err
	}
	b.header = &h

	b.log.Debug().
		Uint32("width", h.Width).
		Uint32("height", h.Height).
		Uint8("bit_depth", h.BitDepth).
		Stringer("color_type", h.ColorType).
		Uint8("interlace", uint8(h.InterlaceMethod)).
		Msg("header decoded")
	return nil
}

func (b *builder) setPalette(c chunk.Chunk) error {
	var depth uint8
	if b.header != nil {
		depth = b.header.BitDepth
	}

	if b.strict {
		switch {
		case b.header == nil:
			return orderError(c, "PLTE before IHDR")
		case b.seen[chunk.PLTE] > 0:
			return orderError(c, "duplicate PLTE")
		case b.seen[chunk.IDAT] > 0:
			return orderError(c, "PLTE after IDAT")
		case b.seen[chunk.TRNS] > 0:
			return orderError(c, "PLTE after tRNS")
		case b.header.ColorType == header.Grayscale || b.header.ColorType == header.GrayscaleAlpha:
			return orderError(c, "PLTE not allowed for grayscale images")
		}
	}

	p, err := header.ParsePalette(c.Data, depth)
	if err != nil {
		return err
	}
	b.palette = p
	return nil
}

func (b *builder) setTransparency(c chunk.Chunk) error {
	if b.strict {
		switch {
		case b.header == nil:
			return orderError(c, "tRNS before IHDR")
		case b.seen[chunk.TRNS] > 0:
			return orderError(c, "duplicate tRNS")
		case b.seen[chunk.IDAT] > 0:
			return orderError(c, "tRNS after IDAT")
		case b.header.ColorType == header.Indexed && b.palette == nil:
			return orderError(c, "tRNS before PLTE")
		}
	}

	b.transparency = header.ParseTransparency(c.Data)
	return nil
}

func (b *builder) appendData(c chunk.Chunk) error {
	if b.strict {
		switch {
		case b.header == nil:
			return orderError(c, "IDAT before IHDR")
		case b.header.ColorType == header.Indexed && b.palette == nil:
			return orderError(c, "IDAT before PLTE")
		case b.seen[chunk.IDAT] > 0 && b.last != chunk.IDAT:
			return orderError(c, "IDAT chunks must be consecutive")
		}
	}

	b.data.Write(c.Data)
	return nil
}

func (b *builder) end(c chunk.Chunk) error {
	b.ended = true
	return nil
}

func (b *builder) skip(c chunk.Chunk) error {
	if b.strict && c.Tag.Critical() {
		return fmt.Errorf("unknown critical chunk %s at offset %d: %w", c.Tag, c.Offset, pngerr.ErrUnsupported)
	}
	b.log.Debug().
		Str("tag", c.Tag.String()).
		Int("offset", c.Offset).
		Msg("skipping chunk")
	return nil
}

// finish validates what was gathered and builds the Image. With
// includePixelData set, the IDAT payload is inflated, unfiltered and, for
// sub-byte depths, unpacked to one byte per sample.
func (b *builder) finish(includePixelData bool) (*raster.Image, error) {
	if b.header == nil {
		return nil, fmt.Errorf("missing IHDR chunk: %w", pngerr.ErrFormat)
	}
	h := *b.header

	if b.palette != nil {
		if err := b.palette.Validate(h.BitDepth); err != nil {
			return nil, err
		}
	}

	if !includePixelData {
		return raster.New(h, b.palette, b.transparency, nil)
	}

	if b.strict {
		switch {
		case h.ColorType == header.Indexed && b.palette == nil:
			return nil, fmt.Errorf("indexed image without PLTE: %w", pngerr.ErrFormat)
		case b.seen[chunk.IDAT] == 0:
			return nil, fmt.Errorf("missing IDAT chunk: %w", pngerr.ErrFormat)
		case !b.ended:
			return nil, fmt.Errorf("missing IEND chunk: %w", pngerr.ErrFormat)
		}
	}

	if h.InterlaceMethod == header.InterlaceAdam7 {
		return nil, pngerr.ErrInterlaced
	}

	pixels := uint64(h.Width) * uint64(h.Height)
	if b.maxPixels > 0 && pixels > b.maxPixels {
		return nil, fmt.Errorf("%dx%d image exceeds the %d pixel limit: %w", h.Width, h.Height, b.maxPixels, pngerr.ErrUnsupported)
	}

	rowBytes := h.RowBytes()
	filteredLen := uint64(h.Height) * (uint64(rowBytes) + 1)
	rasterLen := pixels * uint64(h.BytesPerPixel())
	if filteredLen > math.MaxInt32 || rasterLen > math.MaxInt32 {
		return nil, fmt.Errorf("%dx%d image is too large: %w", h.Width, h.Height, pngerr.ErrUnsupported)
	}

	filtered, err := filters.Inflate(b.data.Bytes(), int(filteredLen))
	if err != nil {
		return nil, err
	}

	pix, err := filters.Unfilter(filtered, int(h.Height), rowBytes, h.BytesPerPixel())
	if err != nil {
		return nil, err
	}

	if h.BitDepth < 8 {
		pix, err = raster.Unpack(pix, int(h.Width), int(h.Height), rowBytes, int(h.BitDepth))
		if err != nil {
			return nil, err
		}
	}

	b.log.Debug().
		Int("compressed", b.data.Len()).
		Int("inflated", len(filtered)).
		Msg("image decoded")

	return raster.New(h, b.palette, b.transparency, pix)
}
