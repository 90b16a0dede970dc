package chunk

import (
	"bytes"
	"fmt"
	"io"

	"github.com/tsawler/rasterpng/internal/cursor"
	"github.com/tsawler/rasterpng/pngerr"
)

// Signature is the fixed 8-byte prefix of every PNG stream.
var Signature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

// Option configures a Reader.
type Option func(*Reader)

// VerifyCRC makes Next check every chunk's CRC-32 and fail with
// pngerr.ErrChecksum on mismatch.
func VerifyCRC() Option {
	return func(r *Reader) {
		r.verifyCRC = true
	}
}

// Reader walks the chunks of a PNG stream.
type Reader struct {
	cur       *cursor.Cursor
	verifyCRC bool
}

// NewReader checks the PNG signature at the start of data and returns a
// Reader positioned at the first chunk.
func NewReader(data []byte, opts ...Option) (*Reader, error) {
	r := &Reader{cur: cursor.New(data)}
	for _, opt := range opts {
		opt(r)
	}

	sig, err := r.cur.ReadBytes(len(Signature))
	if err != nil {
		return nil, fmt.Errorf("reading signature: %w", err)
	}
	if !bytes.Equal(sig, Signature[:]) {
		return nil, fmt.Errorf("got % x: %w", sig, pngerr.ErrInvalidSignature)
	}
	return r, nil
}

// Next reads the next chunk. It returns io.EOF when no input remains, and
// an error wrapping pngerr.ErrUnexpectedEOF when a chunk is truncated.
func (r *Reader) Next() (Chunk, error) {
	if r.cur.Remaining() == 0 {
		return Chunk{}, io.EOF
	}

	offset := r.cur.Offset()
	length, err := r.cur.ReadUint32()
	if err != nil {
		return Chunk{}, fmt.Errorf("chunk length at offset %d: %w", offset, err)
	}

	tagBytes, err := r.cur.ReadBytes(4)
	if err != nil {
		return Chunk{}, fmt.Errorf("chunk type at offset %d: %w", offset+4, err)
	}
	var tag Tag
	copy(tag[:], tagBytes)

	// Compare in uint64 so huge lengths cannot wrap on 32-bit platforms.
	if uint64(length) > uint64(r.cur.Remaining()) {
		return Chunk{}, fmt.Errorf("chunk %s at offset %d declares %d bytes, %d remain: %w",
			tag, offset, length, r.cur.Remaining(), pngerr.ErrUnexpectedEOF)
	}
	data, err := r.cur.ReadBytes(int(length))
	if err != nil {
		return Chunk{}, fmt.Errorf("chunk %s data: %w", tag, err)
	}

	crc, err := r.cur.ReadUint32()
	if err != nil {
		return Chunk{}, fmt.Errorf("chunk %s CRC: %w", tag, err)
	}

	c := Chunk{
		Tag:    tag,
		Kind:   KindOf(tag),
		Data:   data,
		CRC:    crc,
		Offset: offset,
	}
	if r.verifyCRC {
		if err := c.Verify(); err != nil {
			return Chunk{}, err
		}
	}
	return c, nil
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.cur.Offset()
}
