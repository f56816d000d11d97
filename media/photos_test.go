package media

import (
	"errors"
	"testing"
)

var (
	jpegHead = []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
	pngHead  = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	pdfHead  = []byte("%PDF-1.7\n")
)

func TestValidatePhoto(t *testing.T) {
	tests := []struct {
		name string
		size int64
		head []byte
		want error
	}{
		{"1 MiB jpeg", 1 << 20, jpegHead, nil},
		{"png at limit", MaxPhotoSize, pngHead, nil},
		{"3 MiB jpeg", 3 << 20, jpegHead, ErrTooLarge},
		{"one byte over", MaxPhotoSize + 1, jpegHead, ErrTooLarge},
		{"pdf", 1 << 20, pdfHead, ErrBadFormat},
		{"plain text", 100, []byte("hello there"), ErrBadFormat},
		{"empty file", 0, nil, ErrBadFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePhoto(tt.size, tt.head)
			if !errors.Is(err, tt.want) {
				t.Errorf("ValidatePhoto(%d) = %v, want %v", tt.size, err, tt.want)
			}
		})
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"portrait.jpg", "portrait.jpg"},
		{"my photo (1).png", "my-photo-1-.png"},
		{"../../etc/passwd", "..-..-etc-passwd"},
		{"", "photo"},
	}

	for _, tt := range tests {
		if got := sanitizeName(tt.in); got != tt.want {
			t.Errorf("sanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
