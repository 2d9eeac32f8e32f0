// Package colour provides colour-space conversion, WCAG contrast maths and the
// palette types shared by the scheme generators, plugins and CLI.
package colour

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidHex is returned when a string cannot be parsed as a hex colour.
var ErrInvalidHex = errors.New("invalid hex colour")

// RGB represents a colour in 8-bit RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB color as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the colour as an upper-case hex string (e.g., "#1A2B3C").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", rgb.R, rgb.G, rgb.B)
}

// HSL is a colour in hue/saturation/lightness form.
// H is in degrees [0, 360), S and L are percentages [0, 100].
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// Rounded returns the value rounded to whole degrees and percent.
func (c HSL) Rounded() HSL {
	return HSL{H: math.Mod(math.Round(c.H), 360), S: math.Round(c.S), L: math.Round(c.L)}
}

// Hex converts the colour to a hex string.
func (c HSL) Hex() string {
	return HSLToHex(c.H, c.S, c.L)
}

// String formats the colour as a CSS hsl() function.
func (c HSL) String() string {
	r := c.Rounded()
	return fmt.Sprintf("hsl(%.0f, %.0f%%, %.0f%%)", r.H, r.S, r.L)
}

// ParseHex parses "#RRGGBB", "RRGGBB", "#RGB" or "RGB".
func ParseHex(s string) (RGB, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil // #nosec G115 -- masked to 24 bits
}

// NormaliseHex parses and re-formats a hex colour as "#RRGGBB".
func NormaliseHex(s string) (string, error) {
	rgb, err := ParseHex(s)
	if err != nil {
		return "", err
	}
	return rgb.Hex(), nil
}

// IsHex reports whether s parses as a hex colour.
func IsHex(s string) bool {
	_, err := ParseHex(s)
	return err == nil
}

// HSLToHex converts HSL to a hex string. Hue is taken mod 360, saturation and
// lightness are clamped to [0, 100].
func HSLToHex(h, s, l float64) string {
	return HSLToRGB(h, s, l).Hex()
}

// HSLToRGB converts HSL to RGB colour space.
func HSLToRGB(h, s, l float64) RGB {
	h = NormaliseHue(h)
	s = clamp(s, 0, 100) / 100
	l = clamp(l, 0, 100) / 100

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return RGB{R: toByte(r + m), G: toByte(g + m), B: toByte(b + m)}
}

// HexToHSL converts a hex colour to HSL. Values are not rounded; use
// HSL.Rounded for display.
func HexToHSL(hex string) (HSL, error) {
	rgb, err := ParseHex(hex)
	if err != nil {
		return HSL{}, err
	}
	return RGBToHSL(rgb), nil
}

// RGBToHSL converts RGB to HSL colour space.
func RGBToHSL(rgb RGB) HSL {
	r := float64(rgb.R) / 255.0
	g := float64(rgb.G) / 255.0
	b := float64(rgb.B) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	delta := maxVal - minVal

	l := (maxVal + minVal) / 2.0
	if delta == 0 {
		return HSL{H: 0, S: 0, L: l * 100}
	}

	var s float64
	if l < 0.5 {
		s = delta / (maxVal + minVal)
	} else {
		s = delta / (2.0 - maxVal - minVal)
	}

	var h float64
	switch maxVal {
	case r:
		h = (g - b) / delta
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}

	return HSL{H: NormaliseHue(h * 60), S: s * 100, L: l * 100}
}

// NormaliseHue wraps any angle into [0, 360).
func NormaliseHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(c RGB) float64 {
	r := gammaCorrect(float64(c.R) / 255.0)
	g := gammaCorrect(float64(c.G) / 255.0)
	b := gammaCorrect(float64(c.B) / 255.0)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// gammaCorrect linearises an sRGB channel.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// gammaEncode is the inverse of gammaCorrect.
func gammaEncode(v float64) float64 {
	if v <= 0.03928/12.92 {
		return v * 12.92
	}
	return 1.055*math.Pow(v, 1/2.4) - 0.055
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(c1, c2 RGB) float64 {
	l1 := Luminance(c1)
	l2 := Luminance(c2)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// Contrast is ContrastRatio for hex strings.
func Contrast(hexA, hexB string) (float64, error) {
	a, err := ParseHex(hexA)
	if err != nil {
		return 0, err
	}
	b, err := ParseHex(hexB)
	if err != nil {
		return 0, err
	}
	return ContrastRatio(a, b), nil
}

// HexLuminance is Luminance for a hex string.
func HexLuminance(hex string) (float64, error) {
	rgb, err := ParseHex(hex)
	if err != nil {
		return 0, err
	}
	return Luminance(rgb), nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func toByte(v float64) uint8 {
	return uint8(math.Round(clamp(v, 0, 1) * 255))
}
