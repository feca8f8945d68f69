// internal/colorspace/colorspace.go
//
// Conversions between hex codes, RGB triples and CIE Lab.
// Responsibilities:
//   - Parse and format "#RRGGBB" codes (strict: exactly 6 hex digits).
//   - Convert sRGB to Lab (D65) for the distance metrics in internal/deltae.
//
// Notes:
//   - RGB channels are float64 because the continuous solver walks the cube
//     in sub-integer steps; hex formatting rounds and clamps.
//   - Lab is derived on demand and never stored on a color.
package colorspace

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidFormat is returned for anything that is not an optional '#'
// followed by exactly six hex digits.
var ErrInvalidFormat = errors.New("invalid hex color")

// RGB is an sRGB triple with channels nominally in [0,255].
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Lab is a CIE L*a*b* coordinate (L in [0,100]).
type Lab struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// Midpoint is the neutral center of the RGB cube.
var Midpoint = RGB{R: 128, G: 128, B: 128}

// ParseHex parses "#RRGGBB" or "RRGGBB" (any case).
func ParseHex(hex string) (RGB, error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidFormat, hex)
	}
	var ch [3]float64
	for i := 0; i < 3; i++ {
		hi, ok1 := hexVal(s[2*i])
		lo, ok2 := hexVal(s[2*i+1])
		if !ok1 || !ok2 {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidFormat, hex)
		}
		ch[i] = float64(hi<<4 | lo)
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// NormalizeHex returns the canonical "#RRGGBB" form of hex.
func NormalizeHex(hex string) (string, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	return c.Hex(), nil
}

// FormatHex encodes a triple as "#RRGGBB". Channels are rounded to the
// nearest integer and clamped to [0,255].
func FormatHex(r, g, b float64) string {
	return fmt.Sprintf("#%02X%02X%02X", channel(r), channel(g), channel(b))
}

// Hex is FormatHex on the receiver.
func (c RGB) Hex() string { return FormatHex(c.R, c.G, c.B) }

// Clamp limits every channel to [0,255].
func (c RGB) Clamp() RGB {
	return RGB{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B)}
}

// Round rounds every channel to the nearest integer.
func (c RGB) Round() RGB {
	return RGB{R: math.Round(c.R), G: math.Round(c.G), B: math.Round(c.B)}
}

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%g, %g, %g)", c.R, c.G, c.B)
}

// D65 reference white, XYZ scaled to Y=100.
const (
	whiteX = 95.047
	whiteY = 100.0
	whiteZ = 108.883
)

// ToLab converts sRGB to Lab: gamma expansion, linear sRGB→XYZ, then the
// Lab cube-root/linear split at 0.008856.
func ToLab(c RGB) Lab {
	r := linearize(c.R / 255)
	g := linearize(c.G / 255)
	b := linearize(c.B / 255)

	x := (r*0.4124 + g*0.3576 + b*0.1805) * 100
	y := (r*0.2126 + g*0.7152 + b*0.0722) * 100
	z := (r*0.0193 + g*0.1192 + b*0.9505) * 100

	fx := labF(x / whiteX)
	fy := labF(y / whiteY)
	fz := labF(z / whiteZ)

	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

// linearize undoes the sRGB transfer curve.
func linearize(v float64) float64 {
	if v > 0.04045 {
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return v / 12.92
}

func labF(t float64) float64 {
	if t > 0.008856 {
		return math.Cbrt(t)
	}
	return 7.787*t + 16.0/116.0
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(255, v))
}

func channel(v float64) uint8 {
	return uint8(clamp(math.Round(v)))
}

func hexVal(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	}
	return 0, false
}
