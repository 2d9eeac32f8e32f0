package scheme

import (
	"math"

	"github.com/jmylchreest/swatch/internal/colour"
)

// tone places a role on one of a scheme's hues with fixed saturation and lightness.
type tone struct {
	hue  int // index into the scheme's hue list
	s, l float64
}

// recipe is the per-role table for one mode of one scheme. Text roles are not
// listed; they are derived from the backgrounds by resolveText.
type recipe map[colour.Role]tone

// layout says which hue each hue-dependent background role uses.
type layout struct {
	offsets   []float64
	accent    int
	highlight int
	bg2       int
	bg3       int
	secondary int
}

// MonoJitter carries the random variation of a monochromatic palette. Saturation
// is expected in [60, 90], Lightness in [45, 60] (light) or [55, 70] (dark) and
// AccentShift in [0, 20].
type MonoJitter struct {
	Saturation  float64
	Lightness   float64
	AccentShift float64
}

// Monochromatic builds a single-hue palette. The accent is the only role that
// moves away from the base saturation.
func Monochromatic(hue float64, dark bool, j MonoJitter) colour.Palette {
	r := baseRecipe(layout{offsets: []float64{0}}, dark)

	r[colour.RoleBrand] = tone{0, j.Saturation, j.Lightness}
	r[colour.RoleButtonPrimary] = tone{0, j.Saturation, j.Lightness}
	accentSat := math.Max(0, j.Saturation-j.AccentShift)
	if dark {
		r[colour.RoleAccent] = tone{0, accentSat, math.Min(85, j.Lightness+12)}
		r[colour.RoleHighlight] = tone{0, j.Saturation * 0.6, 30}
	} else {
		r[colour.RoleAccent] = tone{0, accentSat, math.Max(20, j.Lightness-15)}
		r[colour.RoleHighlight] = tone{0, j.Saturation, 88}
	}

	return build(hue, []float64{0}, r, dark)
}

var (
	analogousLayout     = layout{offsets: []float64{0, 30, 60}, accent: 1, highlight: 2, bg2: 1, bg3: 1, secondary: 1}
	complementaryLayout = layout{offsets: []float64{0, 180}, accent: 1, highlight: 1}
	triadicLayout       = layout{offsets: []float64{0, 120, 240}, accent: 1, highlight: 2, bg2: 1, bg3: 2, secondary: 1}
	tetradicLayout      = layout{offsets: []float64{0, 90, 180, 270}, accent: 2, highlight: 1, bg2: 1, bg3: 3, secondary: 3}
)

// Analogous uses hues at +0°, +30° and +60°.
func Analogous(hue float64, dark bool) colour.Palette {
	return fromLayout(hue, analogousLayout, dark)
}

// Complementary uses the base hue and its complement at +180°. Brand and
// backgrounds come from the base, accent and highlight from the complement.
func Complementary(hue float64, dark bool) colour.Palette {
	return fromLayout(hue, complementaryLayout, dark)
}

// Triadic uses hues at +0°, +120° and +240°.
func Triadic(hue float64, dark bool) colour.Palette {
	return fromLayout(hue, triadicLayout, dark)
}

// Tetradic uses the four rectangle hues at +0°, +90°, +180° and +270°.
func Tetradic(hue float64, dark bool) colour.Palette {
	return fromLayout(hue, tetradicLayout, dark)
}

func fromLayout(hue float64, lay layout, dark bool) colour.Palette {
	return build(hue, lay.offsets, baseRecipe(lay, dark), dark)
}

// baseRecipe returns the shared light or dark table for a layout.
func baseRecipe(lay layout, dark bool) recipe {
	if dark {
		return recipe{
			colour.RoleBrand:           {0, 75, 62},
			colour.RoleButtonPrimary:   {0, 75, 60},
			colour.RoleAccent:          {lay.accent, 70, 65},
			colour.RoleHighlight:       {lay.highlight, 60, 35},
			colour.RoleButtonSecondary: {lay.secondary, 25, 24},
			colour.RoleSectionBg1:      {0, 25, 8},
			colour.RoleSectionBg2:      {lay.bg2, 22, 12},
			colour.RoleSectionBg3:      {lay.bg3, 20, 16},
			colour.RoleBorder:          {0, 18, 26},
			colour.RoleInputBg:         {0, 20, 13},
		}
	}
	return recipe{
		colour.RoleBrand:           {0, 80, 40},
		colour.RoleButtonPrimary:   {0, 80, 38},
		colour.RoleAccent:          {lay.accent, 75, 50},
		colour.RoleHighlight:       {lay.highlight, 90, 85},
		colour.RoleButtonSecondary: {lay.secondary, 40, 92},
		colour.RoleSectionBg1:      {0, 30, 98},
		colour.RoleSectionBg2:      {lay.bg2, 35, 95},
		colour.RoleSectionBg3:      {lay.bg3, 30, 91},
		colour.RoleBorder:          {0, 20, 85},
		colour.RoleInputBg:         {0, 20, 99},
	}
}

// build renders a recipe on concrete hues and fills in the text roles.
func build(base float64, offsets []float64, r recipe, dark bool) colour.Palette {
	hues := make([]float64, len(offsets))
	for i, off := range offsets {
		hues[i] = colour.NormaliseHue(base + off)
	}

	var p colour.Palette
	for role, t := range r {
		p = p.With(role, colour.HSLToHex(hues[t.hue], t.s, t.l))
	}
	return resolveText(p, hues[0], dark)
}

// textBackgrounds maps each text role to the background it is read against.
var textBackgrounds = []struct {
	text, bg colour.Role
}{
	{colour.RoleTextPrimary, colour.RoleSectionBg1},
	{colour.RoleTextSecondary, colour.RoleSectionBg1},
	{colour.RoleButtonText, colour.RoleButtonPrimary},
	{colour.RoleButtonSecondaryText, colour.RoleButtonSecondary},
	{colour.RoleInputText, colour.RoleInputBg},
}

// resolveText sets each text role to the scheme's preferred tint when it is
// legible on its background, and to the readable pole colour otherwise.
func resolveText(p colour.Palette, hue float64, dark bool) colour.Palette {
	var primary, secondary, onButton string
	if dark {
		primary = colour.HSLToHex(hue, 20, 92)
		secondary = colour.HSLToHex(hue, 12, 72)
		onButton = colour.HSLToHex(hue, 40, 10)
	} else {
		primary = colour.HSLToHex(hue, 25, 15)
		secondary = colour.HSLToHex(hue, 15, 35)
		onButton = colour.White
	}

	preferred := map[colour.Role]string{
		colour.RoleTextPrimary:         primary,
		colour.RoleTextSecondary:       secondary,
		colour.RoleButtonText:          onButton,
		colour.RoleButtonSecondaryText: primary,
		colour.RoleInputText:           primary,
	}

	for _, tb := range textBackgrounds {
		bg := p.Get(tb.bg)
		p = p.With(tb.text, colour.ReadableTextColor(bg, preferred[tb.text], colour.MinContrastAA))
	}
	return p
}
