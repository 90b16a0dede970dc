// Package cursor provides a bounds-checked sequential reader over a byte slice.
package cursor

import (
	"encoding/binary"
	"fmt"

	"github.com/tsawler/rasterpng/pngerr"
)

// Cursor reads forward through an immutable byte slice. The offset only
// ever grows and never passes the end of the data.
type Cursor struct {
	data []byte
	off  int
}

// New creates a Cursor positioned at the start of data.
func New(data []byte) *Cursor {
	return &Cursor{data: data}
}

// ReadBytes returns the next n bytes and advances past them. The returned
// slice aliases the underlying data; callers that keep it must copy it.
// It fails with pngerr.ErrUnexpectedEOF if fewer than n bytes remain, in
// which case the offset is left unchanged.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative read of %d bytes at offset %d: %w", n, c.off, pngerr.ErrBounds)
	}
	if n > c.Remaining() {
		return nil, fmt.Errorf("need %d bytes at offset %d, have %d: %w", n, c.off, c.Remaining(), pngerr.ErrUnexpectedEOF)
	}
	b := c.data[c.off : c.off+n : c.off+n]
	c.off += n
	return b, nil
}

// ReadByte returns the next byte.
func (c *Cursor) ReadByte() (byte, error) {
	b, err := c.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint32 returns the next four bytes as a big-endian integer.
func (c *Cursor) ReadUint32() (uint32, error) {
	b, err := c.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.off
}

// Offset returns the current read position.
func (c *Cursor) Offset() int {
	return c.off
}
