package colorspace

import (
	"errors"
	"math"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RGB
		wantErr bool
	}{
		{name: "with hash", input: "#FF0000", want: RGB{255, 0, 0}},
		{name: "without hash", input: "AB12CD", want: RGB{0xAB, 0x12, 0xCD}},
		{name: "lowercase", input: "#34546d", want: RGB{52, 84, 109}},
		{name: "black", input: "000000", want: RGB{0, 0, 0}},
		{name: "three digits", input: "#FFF", wantErr: true},
		{name: "seven digits", input: "#1234567", wantErr: true},
		{name: "alpha channel", input: "#FF0000FF", wantErr: true},
		{name: "non hex", input: "#GG0000", wantErr: true},
		{name: "double hash", input: "##FF0000", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "spaces", input: " FF0000", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFormat) {
					t.Fatalf("ParseHex(%q) error = %v, want ErrInvalidFormat", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHex(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestHexRoundTripAllChannels(t *testing.T) {
	for v := 0; v <= 255; v++ {
		// Sweep each channel fully while the others vary too.
		in := RGB{R: float64(v), G: float64(255 - v), B: float64((v * 7) % 256)}
		got, err := ParseHex(FormatHex(in.R, in.G, in.B))
		if err != nil {
			t.Fatalf("round trip %v: %v", in, err)
		}
		if got != in {
			t.Fatalf("round trip %v -> %v", in, got)
		}
	}
}

func TestFormatHexClampsAndRounds(t *testing.T) {
	tests := []struct {
		r, g, b float64
		want    string
	}{
		{255, 0, 0, "#FF0000"},
		{300, -20, 16, "#FF0010"},
		{127.6, 0.4, 254.5, "#8000FF"},
		{10, 11, 12, "#0A0B0C"},
	}
	for _, tt := range tests {
		if got := FormatHex(tt.r, tt.g, tt.b); got != tt.want {
			t.Errorf("FormatHex(%v,%v,%v) = %s, want %s", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}

func TestNormalizeHex(t *testing.T) {
	got, err := NormalizeHex("abcdef")
	if err != nil {
		t.Fatal(err)
	}
	if got != "#ABCDEF" {
		t.Errorf("NormalizeHex = %s, want #ABCDEF", got)
	}
	if _, err := NormalizeHex("xyz"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("NormalizeHex(xyz) error = %v", err)
	}
}

func TestToLabReferenceColors(t *testing.T) {
	tests := []struct {
		name string
		in   RGB
		want Lab
	}{
		{"black", RGB{0, 0, 0}, Lab{0, 0, 0}},
		{"white", RGB{255, 255, 255}, Lab{100, 0, 0}},
		{"red", RGB{255, 0, 0}, Lab{53.24, 80.09, 67.20}},
		{"green", RGB{0, 255, 0}, Lab{87.73, -86.18, 83.18}},
		{"blue", RGB{0, 0, 255}, Lab{32.30, 79.19, -107.86}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToLab(tt.in)
			if !near(got.L, tt.want.L, 0.05) || !near(got.A, tt.want.A, 0.05) || !near(got.B, tt.want.B, 0.05) {
				t.Errorf("ToLab(%v) = %+v, want ~%+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestToLabLinearSegment(t *testing.T) {
	// Very dark colors fall under both the gamma and Lab linear breakpoints.
	got := ToLab(RGB{1, 1, 1})
	if got.L <= 0 || got.L > 1 {
		t.Errorf("ToLab(1,1,1).L = %v, want small positive", got.L)
	}
	if !near(got.A, 0, 1e-3) || !near(got.B, 0, 1e-3) {
		t.Errorf("gray should be achromatic, got %+v", got)
	}
}

func TestRoundAndClamp(t *testing.T) {
	c := RGB{R: -3, G: 127.5, B: 300.2}
	if got := c.Clamp(); got != (RGB{0, 127.5, 255}) {
		t.Errorf("Clamp = %v", got)
	}
	if got := c.Clamp().Round(); got != (RGB{0, 128, 255}) {
		t.Errorf("Round = %v", got)
	}
}

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }
