package filters

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/tsawler/rasterpng/pngerr"
)

// Inflate decompresses a zlib stream (2-byte header, deflate data, Adler-32
// trailer). When limit is positive, at most limit bytes may be produced;
// the stream is still read to its end so the checksum is verified. Memory
// use follows the inflated output, not limit.
// Every failure wraps pngerr.ErrDecompression.
func Inflate(data []byte, limit int) ([]byte, error) {
	reader, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pngerr.ErrDecompression, err)
	}
	defer reader.Close()

	// The buffer grows with the output actually produced, never from limit.
	var src io.Reader = reader
	var buf bytes.Buffer
	if limit > 0 {
		// One extra byte distinguishes "exactly limit" from "too much".
		src = io.LimitReader(reader, int64(limit)+1)
	}

	if _, err := io.Copy(&buf, src); err != nil {
		return nil, fmt.Errorf("%w: %w", pngerr.ErrDecompression, err)
	}
	if limit > 0 && buf.Len() > limit {
		return nil, fmt.Errorf("%w: inflated data exceeds %d bytes", pngerr.ErrDecompression, limit)
	}

	return buf.Bytes(), nil
}
