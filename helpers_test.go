package rasterpng

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"

	"github.com/klauspost/compress/zlib"
)

// testChunk is one chunk of a synthesized PNG stream.
type testChunk struct {
	tag  string
	data []byte
}

var signature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

// buildPNG assembles a PNG stream with correct lengths and CRCs.
func buildPNG(chunks ...testChunk) []byte {
	buf := append([]byte(nil), signature...)
	for _, c := range chunks {
		buf = appendChunk(buf, c.tag, c.data)
	}
	return buf
}

func appendChunk(buf []byte, tag string, data []byte) []byte {
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(data)))
	buf = append(buf, n[:]...)
	buf = append(buf, tag...)
	buf = append(buf, data...)
	crc := crc32.NewIEEE()
	crc.Write([]byte(tag))
	crc.Write(data)
	binary.BigEndian.PutUint32(n[:], crc.Sum32())
	return append(buf, n[:]...)
}

func ihdrData(width, height uint32, depth, colorType, interlace uint8) []byte {
	b := make([]byte, 13)
	binary.BigEndian.PutUint32(b[0:4], width)
	binary.BigEndian.PutUint32(b[4:8], height)
	b[8] = depth
	b[9] = colorType
	b[12] = interlace
	return b
}

// zlibBytes compresses data for testing
func zlibBytes(data []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	w.Write(data)
	w.Close()
	return buf.Bytes()
}

func ihdr(width, height uint32, depth, colorType uint8) testChunk {
	return testChunk{"IHDR", ihdrData(width, height, depth, colorType, 0)}
}

func idat(filtered []byte) testChunk {
	return testChunk{"IDAT", zlibBytes(filtered)}
}

var iend = testChunk{"IEND", nil}
