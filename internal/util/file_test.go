package util

import (
	"bytes"
	"strings"
	"testing"
)

func TestValidateMimeType(t *testing.T) {
	// Minimal PNG header is enough for content sniffing.
	png := append([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, make([]byte, 100)...)

	mime, err := ValidateMimeType(bytes.NewReader(png), []string{MimeImage})
	if err != nil {
		t.Fatal(err)
	}
	if mime != "image/png" {
		t.Errorf("mime = %q, want image/png", mime)
	}

	if _, err := ValidateMimeType(strings.NewReader("%PDF-1.4 ..."), []string{MimeImage}); err == nil {
		t.Fatal("pdf content must be rejected when only images are allowed")
	}
}

func TestIsImageIsAudio(t *testing.T) {
	if !IsImage("image/jpeg") || IsImage("audio/mpeg") {
		t.Error("IsImage misclassified")
	}
	if !IsAudio("audio/mpeg") || IsAudio("image/png") {
		t.Error("IsAudio misclassified")
	}
}
