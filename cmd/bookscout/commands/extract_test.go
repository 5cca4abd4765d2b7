// ABOUTME: Tests for extract command helpers
// ABOUTME: Verifies MIME type detection from file extensions
package commands

import "testing"

func TestMimeTypeForFile(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"shelf.jpg", "image/jpeg"},
		{"shelf.JPEG", "image/jpeg"},
		{"list.png", "image/png"},
		{"cover.webp", "image/webp"},
		{"notes.txt", "application/octet-stream"},
		{"noext", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := mimeTypeForFile(tt.path); got != tt.want {
				t.Errorf("mimeTypeForFile(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
