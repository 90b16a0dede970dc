package rasterpng

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/tsawler/rasterpng/chunk"
	"github.com/tsawler/rasterpng/format"
	"github.com/tsawler/rasterpng/raster"
)

// Decoder decodes one PNG byte stream. Configuration methods return a new
// Decoder, so a configured Decoder can be shared; each terminal operation
// runs its own decode session over the same input.
type Decoder struct {
	data    []byte
	options DecodeOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Decoder with its own options.
func (d *Decoder) clone() *Decoder {
	return &Decoder{
		data:    d.data,
		options: d.options.clone(),
		err:     d.err,
	}
}

// VerifyCRC enables CRC-32 verification of every chunk.
func (d *Decoder) VerifyCRC() *Decoder {
	nd := d.clone()
	nd.options.verifyCRC = true
	return nd
}

// Strict enforces the chunk ordering rules of the PNG format: IHDR first,
// a single PLTE before IDAT, contiguous IDAT chunks, a closing IEND, and no
// unknown critical chunks.
func (d *Decoder) Strict() *Decoder {
	nd := d.clone()
	nd.options.strict = true
	return nd
}

// MaxPixels rejects images whose width × height exceeds n before any data
// is inflated. Zero removes the limit.
func (d *Decoder) MaxPixels(n uint64) *Decoder {
	nd := d.clone()
	nd.options.maxPixels = n
	return nd
}

// WithLogger sets the logger used for chunk-level diagnostics.
func (d *Decoder) WithLogger(logger zerolog.Logger) *Decoder {
	nd := d.clone()
	nd.options.logger = logger
	return nd
}

// Header decodes the image header only. Parsing stops right after the
// first IHDR chunk; the result has no pixel data.
func (d *Decoder) Header() (*raster.Image, error) {
	return d.Parse(false)
}

// Decode decodes the whole image.
func (d *Decoder) Decode() (*raster.Image, error) {
	return d.Parse(true)
}

// Parse runs a decode session. When includePixelData is false, parsing
// stops after the first IHDR chunk and the returned image carries only
// header information. Otherwise chunks are read until IEND or the end of
// input, and the IDAT payload is inflated and unfiltered.
func (d *Decoder) Parse(includePixelData bool) (*raster.Image, error) {
	if d.err != nil {
		return nil, d.err
	}

	if format.DetectFromMagic(d.data) == format.CgBI {
		return nil, fmt.Errorf("Apple CgBI PNG variant: %w", ErrUnsupported)
	}

	var readerOpts []chunk.Option
	if d.options.verifyCRC {
		readerOpts = append(readerOpts, chunk.VerifyCRC())
	}
	r, err := chunk.NewReader(d.data, readerOpts...)
	if err != nil {
		return nil, err
	}

	log := d.options.logger
	b := newBuilder(d.options)

	for {
		c, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		log.Trace().
			Str("tag", c.Tag.String()).
			Int("length", len(c.Data)).
			Int("offset", c.Offset).
			Msg("chunk")

		if err := b.add(c); err != nil {
			return nil, err
		}

		if c.Kind == chunk.IEND {
			break
		}
		if !includePixelData && c.Kind == chunk.IHDR {
			break
		}
	}

	return b.finish(includePixelData)
}
