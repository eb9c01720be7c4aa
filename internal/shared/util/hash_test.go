package util

import (
	"errors"
	"testing"
)

func TestContentDigest(t *testing.T) {
	got := ContentDigest([]byte("title,company\n"))
	if got != ContentDigest([]byte("title,company\n")) {
		t.Fatalf("expected stable digest, got %s", got)
	}
	if got == ContentDigest([]byte("title,company")) {
		t.Fatalf("expected different content to produce a different digest")
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("digest contains non-hex character: %c", ch)
		}
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
	if want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"; ContentDigest(nil) != want {
		t.Fatalf("unexpected empty digest %s", ContentDigest(nil))
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  bool
	}{
		{in: "resume.pdf", want: "resume.pdf"},
		{in: "  cv final.docx ", want: "cv final.docx"},
		{in: "dir/sub\\cv.pdf", want: "dir_sub_cv.pdf"},
		{in: "../etc/passwd", err: true},
		{in: "   ", err: true},
	}
	for _, tt := range tests {
		got, err := SanitizeFileName(tt.in)
		if tt.err {
			if !errors.Is(err, ErrInvalidFileName) {
				t.Fatalf("%q: expected ErrInvalidFileName, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("%q: got %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}
