package storage

import "testing"

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"abc/anterior.svg": "image/svg+xml",
		"abc/index.html":   "text/html; charset=utf-8",
		"abc/blob":         "application/octet-stream",
	}
	for in, want := range tests {
		if got := ContentType(in); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", in, got, want)
		}
	}
}
