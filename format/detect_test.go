package format

import (
	"bytes"
	"errors"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PNG, "PNG"},
		{CgBI, "CgBI"},
		{JPEG, "JPEG"},
		{GIF, "GIF"},
		{QOI, "QOI"},
		{WebP, "WebP"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PNG, ".png"},
		{CgBI, ".png"},
		{JPEG, ".jpg"},
		{GIF, ".gif"},
		{QOI, ".qoi"},
		{WebP, ".webp"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"image.png", PNG},
		{"image.PNG", PNG},
		{"image.Png", PNG},
		{"anim.apng", PNG},
		{"photo.jpg", JPEG},
		{"photo.JPEG", JPEG},
		{"photo.jpe", JPEG},
		{"clip.gif", GIF},
		{"tile.qoi", QOI},
		{"tile.webp", WebP},
		{"notes.txt", Unknown},
		{"image", Unknown},
		{"", Unknown},
		{"/path/to/file.png", PNG},
		{"/path.png/file", Unknown},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}
	cgbi := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n', 0, 0, 0, 4, 'C', 'g', 'B', 'I'}

	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"png", png, PNG},
		{"png signature only", png[:8], PNG},
		{"cgbi", cgbi, CgBI},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0x10, 'J', 'F', 'I', 'F'}, JPEG},
		{"gif87a", []byte("GIF87a\x01\x00"), GIF},
		{"gif89a", []byte("GIF89a\x01\x00"), GIF},
		{"qoi", []byte("qoif\x00\x00\x00\x01"), QOI},
		{"webp", []byte("RIFF\x24\x00\x00\x00WEBPVP8 "), WebP},
		{"riff wave", []byte("RIFF\x24\x00\x00\x00WAVEfmt "), Unknown},
		{"corrupt png", append([]byte{0x88}, png[1:]...), Unknown},
		{"empty", nil, Unknown},
		{"short", []byte{0x89, 'P'}, Unknown},
	}

	for _, tt := range tests {
		if got := DetectFromMagic(tt.data); got != tt.want {
			t.Errorf("%s: DetectFromMagic = %v, want %v", tt.name, got, tt.want)
		}
	}
}

type failingReaderAt struct{}

func (failingReaderAt) ReadAt(p []byte, off int64) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestDetectFromReader(t *testing.T) {
	data := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R', 0, 0, 0, 1}
	got, err := DetectFromReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DetectFromReader failed: %v", err)
	}
	if got != PNG {
		t.Errorf("DetectFromReader = %v, want PNG", got)
	}

	// Shorter than the magic window.
	got, err = DetectFromReader(bytes.NewReader([]byte("GIF89a")))
	if err != nil || got != GIF {
		t.Errorf("short input = %v, %v; want GIF, nil", got, err)
	}

	if _, err := DetectFromReader(failingReaderAt{}); err == nil {
		t.Errorf("expected read error")
	}
}
