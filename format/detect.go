// Package format provides image format detection for the rasterpng library.
package format

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a raster image format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PNG indicates a standard PNG stream.
	PNG
	// CgBI indicates Apple's CgBI PNG variant, which carries a CgBI chunk
	// before IHDR, raw deflate data and BGRA sample order.
	CgBI
	// JPEG indicates a JPEG/JFIF image.
	JPEG
	// GIF indicates a GIF image.
	GIF
	// QOI indicates a Quite OK Image.
	QOI
	// WebP indicates a WebP image.
	WebP
)

// magicLen is the number of leading bytes needed to tell every format apart.
const magicLen = 16

var (
	pngMagic  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}
	cgbiTag   = []byte("CgBI")
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
	qoiMagic  = []byte("qoif")
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PNG:
		return "PNG"
	case CgBI:
		return "CgBI"
	case JPEG:
		return "JPEG"
	case GIF:
		return "GIF"
	case QOI:
		return "QOI"
	case WebP:
		return "WebP"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PNG, CgBI:
		return ".png"
	case JPEG:
		return ".jpg"
	case GIF:
		return ".gif"
	case QOI:
		return ".qoi"
	case WebP:
		return ".webp"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
// A .png file may still turn out to be CgBI; only the content tells.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".apng":
		return PNG
	case ".jpg", ".jpeg", ".jpe":
		return JPEG
	case ".gif":
		return GIF
	case ".qoi":
		return QOI
	case ".webp":
		return WebP
	default:
		return Unknown
	}
}

// DetectFromMagic checks leading magic bytes to determine format.
// This provides more reliable detection than extension-based detection.
func DetectFromMagic(data []byte) Format {
	if bytes.HasPrefix(data, pngMagic) {
		// The first chunk type sits after the signature and a 4-byte length.
		if len(data) >= 16 && bytes.Equal(data[12:16], cgbiTag) {
			return CgBI
		}
		return PNG
	}

	if bytes.HasPrefix(data, jpegMagic) {
		return JPEG
	}

	if bytes.HasPrefix(data, []byte("GIF87a")) || bytes.HasPrefix(data, []byte("GIF89a")) {
		return GIF
	}

	if bytes.HasPrefix(data, qoiMagic) {
		return QOI
	}

	// RIFF container: "RIFF" <size> "WEBP"
	if len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")) {
		return WebP
	}

	return Unknown
}

// DetectFromReader inspects the leading bytes of r to determine format.
func DetectFromReader(r io.ReaderAt) (Format, error) {
	magic := make([]byte, magicLen)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	return DetectFromMagic(magic[:n]), nil
}
