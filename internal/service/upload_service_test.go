package service

import "testing"

func TestThumbKeyFor(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"2026/08/28/abc.png", "2026/08/28/abc_thumb.jpg"},
		{"abc.jpeg", "abc_thumb.jpg"},
		{"noext", "noext_thumb.jpg"},
	}

	for _, tt := range tests {
		if got := thumbKeyFor(tt.key); got != tt.want {
			t.Errorf("thumbKeyFor(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestAllowedExtension(t *testing.T) {
	for _, ext := range []string{".pdf", ".mp3", ".png", ".docx"} {
		if !allowedExtension(ext) {
			t.Errorf("%q should be allowed", ext)
		}
	}
	for _, ext := range []string{".exe", ".sh", "", ".PNG"} {
		if allowedExtension(ext) {
			t.Errorf("%q should be rejected", ext)
		}
	}
}
