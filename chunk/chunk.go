package chunk

import (
	"fmt"
	"hash/crc32"

	"github.com/tsawler/rasterpng/pngerr"
)

// Kind identifies the chunk types the decoder understands.
type Kind int

const (
	// Unknown is any chunk type not listed below. Such chunks are skipped.
	Unknown Kind = iota
	// IHDR is the image header.
	IHDR
	// PLTE is the palette.
	PLTE
	// IDAT carries a fragment of the compressed image data.
	IDAT
	// TRNS is the tRNS transparency chunk.
	TRNS
	// IEND terminates the stream.
	IEND
)

// String returns the chunk type name for the kind.
func (k Kind) String() string {
	switch k {
	case IHDR:
		return "IHDR"
	case PLTE:
		return "PLTE"
	case IDAT:
		return "IDAT"
	case TRNS:
		return "tRNS"
	case IEND:
		return "IEND"
	default:
		return "Unknown"
	}
}

// Tag is the 4-byte chunk type code.
type Tag [4]byte

// kinds maps every recognised tag to its Kind.
var kinds = map[Tag]Kind{
	{'I', 'H', 'D', 'R'}: IHDR,
	{'P', 'L', 'T', 'E'}: PLTE,
	{'I', 'D', 'A', 'T'}: IDAT,
	{'t', 'R', 'N', 'S'}: TRNS,
	{'I', 'E', 'N', 'D'}: IEND,
}

// KindOf returns the Kind for a tag, or Unknown.
func KindOf(tag Tag) Kind {
	return kinds[tag]
}

// String returns the tag as text.
func (t Tag) String() string {
	return string(t[:])
}

// Critical reports whether the chunk is critical, i.e. the ancillary bit
// (bit 5 of the first byte) is clear. A decoder that does not understand a
// critical chunk cannot safely render the image.
func (t Tag) Critical() bool {
	return t[0]&0x20 == 0
}

// Chunk is a single record of the container.
type Chunk struct {
	Tag    Tag
	Kind   Kind
	Data   []byte // aliases the reader's input
	CRC    uint32 // stored CRC-32, as read
	Offset int    // offset of the length field in the input
}

// Verify compares the stored CRC against the CRC-32 of the type and data.
func (c Chunk) Verify() error {
	h := crc32.NewIEEE()
	h.Write(c.Tag[:])
	h.Write(c.Data)
	if sum := h.Sum32(); sum != c.CRC {
		return fmt.Errorf("chunk %s at offset %d: stored %08x, computed %08x: %w",
			c.Tag, c.Offset, c.CRC, sum, pngerr.ErrChecksum)
	}
	return nil
}
