package scheme

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/swatch/internal/colour"
)

// Mood is a named, curated starting point whose variations stay recognisable.
type Mood struct {
	ID          string
	Name        string
	Description string
	Curated     string // name of the curated palette the mood starts from
}

var moods = []Mood{
	{ID: "fresh", Name: "Fresh", Description: "Spring greens with a violet spark", Curated: "Meadow"},
	{ID: "calm", Name: "Calm", Description: "Cool blues with a warm call to action", Curated: "Ocean"},
	{ID: "earthy", Name: "Earthy", Description: "Baked clay and teal on warm paper", Curated: "Terracotta"},
	{ID: "midnight", Name: "Midnight", Description: "Night-sky blues with neon pink", Curated: "Midnight"},
	{ID: "bold", Name: "Bold", Description: "Fiery orange on charcoal", Curated: "Ember"},
	{ID: "gothic", Name: "Gothic", Description: "Deep violets and mint on near-black", Curated: "Orchid"},
}

// moodAnchors are the mood-defining roles that are never jittered.
var moodAnchors = map[colour.Role]bool{
	colour.RoleSectionBg1:    true,
	colour.RoleTextPrimary:   true,
	colour.RoleTextSecondary: true,
}

// Jitter ranges applied by MoodVariation.
const (
	moodHueSpread        = 15.0
	moodSaturationSpread = 10.0
	moodLightnessSpread  = 10.0
	moodMinLightness     = 10.0
	moodMaxLightness     = 90.0
)

// Moods returns the mood catalogue.
func Moods() []Mood {
	return append([]Mood(nil), moods...)
}

// LookupMood finds a mood by ID.
func LookupMood(id string) (Mood, error) {
	for _, m := range moods {
		if strings.EqualFold(m.ID, strings.TrimSpace(id)) {
			return m, nil
		}
	}
	return Mood{}, fmt.Errorf("unknown mood: %s", id)
}

// Palette returns the mood's starting palette.
func (m Mood) Palette() (colour.Palette, bool, error) {
	c, err := LookupCurated(m.Curated)
	if err != nil {
		return colour.Palette{}, false, err
	}
	return c.Palette, c.Dark, nil
}

// MoodVariation nudges every role of current except section-bg-1, text-primary,
// text-secondary and the locked roles: hue by up to ±15°, saturation by up to
// ±10pp and lightness by up to ±10pp, with lightness kept in [10, 90].
// Roles that do not parse are left as they are.
func (g *Generator) MoodVariation(current colour.Palette, locked LockSet) colour.Palette {
	out := current
	for _, role := range colour.AllRoles() {
		if moodAnchors[role] || locked.Has(role) {
			continue
		}
		hsl, err := colour.HexToHSL(current.Get(role))
		if err != nil {
			continue
		}

		h := hsl.H + g.uniform(moodHueSpread)
		s := clampRange(hsl.S+g.uniform(moodSaturationSpread), 0, 100)
		l := clampRange(hsl.L+g.uniform(moodLightnessSpread), moodMinLightness, moodMaxLightness)
		out = out.With(role, colour.HSLToHex(h, s, l))
	}
	return out
}

// moodBase returns the palette a mood variation starts from: the current palette
// when it is complete, otherwise the mood's own palette.
func moodBase(id string, current colour.Palette) (colour.Palette, error) {
	m, err := LookupMood(id)
	if err != nil {
		return colour.Palette{}, err
	}
	if current.Validate() == nil {
		return current, nil
	}
	p, _, err := m.Palette()
	return p, err
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
