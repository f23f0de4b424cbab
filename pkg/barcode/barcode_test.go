package barcode

import (
	"encoding/base64"
	"testing"
)

func TestCheckDigit(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"4006381333931", 1},
		{"5901234123457", 7},
		{"9780201379624", 4},
		{"0000000000000", 0},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := CheckDigit(tt.code); got != tt.want {
				t.Errorf("CheckDigit(%s) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestIsValidEAN13(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{"valid", "4006381333931", true},
		{"wrong check digit", "4006381333930", false},
		{"too short", "400638133393", false},
		{"too long", "40063813339311", false},
		{"non-digit", "400638133393a", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidEAN13(tt.code); got != tt.want {
				t.Errorf("IsValidEAN13(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestCodeImage(t *testing.T) {
	for _, code := range []string{"4006381333931", "GIFT-2024-XYZ"} {
		img, err := CodeImage(code)
		if err != nil {
			t.Fatalf("CodeImage(%q): %v", code, err)
		}

		raw, err := base64.StdEncoding.DecodeString(img)
		if err != nil {
			t.Fatalf("CodeImage(%q) returned invalid base64: %v", code, err)
		}

		// PNG magic bytes
		if len(raw) < 8 || raw[1] != 'P' || raw[2] != 'N' || raw[3] != 'G' {
			t.Errorf("CodeImage(%q) did not produce a PNG", code)
		}
	}
}
