package colour

import "math"

// WCAG contrast thresholds.
const (
	// MinContrastAA is the WCAG AA threshold for normal text.
	MinContrastAA = 4.5
	// MinContrastAALarge is the WCAG AA threshold for large text.
	MinContrastAALarge = 3.0
	// MinContrastAAA is the WCAG AAA threshold for normal text.
	MinContrastAAA = 7.0
)

// Pole colours used as the last-resort text colours.
const (
	Black = "#000000"
	White = "#FFFFFF"
)

var (
	blackRGB = RGB{}
	whiteRGB = RGB{R: 255, G: 255, B: 255}

	// Candidates are ordered softest first so the gentlest legible tone wins.
	darkTextCandidates  = []string{"#3D3D3D", "#2B2B2B", "#1A1A1A", "#0D0D0D"}
	lightTextCandidates = []string{"#D6D6D6", "#E5E5E5", "#F2F2F2", "#FAFAFA"}
)

// ReadableTextColor returns a text colour for background that meets minContrast.
//
// The preferred colour is returned unchanged when it is already legible. Otherwise
// pure black or pure white is returned, whichever contrasts more with the
// background; one of them always reaches at least 4.58:1. A background that cannot
// be parsed yields black.
func ReadableTextColor(background, preferred string, minContrast float64) string {
	bg, err := ParseHex(background)
	if err != nil {
		return Black
	}
	if minContrast <= 0 {
		minContrast = MinContrastAA
	}

	if p, err := ParseHex(preferred); err == nil && ContrastRatio(p, bg) >= minContrast {
		return preferred
	}

	return pole(bg)
}

// ContrastText returns a near-neutral text colour for an HSL-sourced design token.
//
// It tries a short list of near-black (light backgrounds) or near-white (dark
// backgrounds) greys, softest first. When none reach minContrast it solves the WCAG
// ratio for the exact luminance required and returns that grey, falling back to the
// pole colour when the target is unreachable.
func ContrastText(background HSL, minContrast float64) string {
	if minContrast <= 0 {
		minContrast = MinContrastAA
	}
	bg := HSLToRGB(background.H, background.S, background.L)
	darkText := prefersDarkText(bg)

	candidates := lightTextCandidates
	if darkText {
		candidates = darkTextCandidates
	}
	for _, hex := range candidates {
		c, _ := ParseHex(hex)
		if ContrastRatio(c, bg) >= minContrast {
			return hex
		}
	}

	bgLum := Luminance(bg)
	var target float64
	if darkText {
		target = (bgLum+0.05)/minContrast - 0.05
	} else {
		target = minContrast*(bgLum+0.05) - 0.05
	}
	if target < 0 || target > 1 {
		return pole(bg)
	}

	v := gammaEncode(target) * 255
	if darkText {
		v = math.Floor(v)
	} else {
		v = math.Ceil(v)
	}
	g := uint8(clamp(v, 0, 255))
	grey := RGB{R: g, G: g, B: g}
	if ContrastRatio(grey, bg) < minContrast {
		return pole(bg)
	}
	return grey.Hex()
}

// MeetsContrast reports whether two hex colours reach minContrast.
// Unparseable colours never meet it.
func MeetsContrast(fg, bg string, minContrast float64) bool {
	ratio, err := Contrast(fg, bg)
	if err != nil {
		return false
	}
	return ratio >= minContrast
}

// prefersDarkText reports whether black contrasts at least as well as white.
func prefersDarkText(bg RGB) bool {
	return ContrastRatio(blackRGB, bg) >= ContrastRatio(whiteRGB, bg)
}

func pole(bg RGB) string {
	if prefersDarkText(bg) {
		return Black
	}
	return White
}
