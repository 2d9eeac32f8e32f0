package scheme

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jmylchreest/swatch/internal/colour"
)

// Curated is a hand-authored palette.
type Curated struct {
	Name    string
	Dark    bool
	Palette colour.Palette
}

var curatedLight = []Curated{
	{
		Name: "Ocean",
		Palette: colour.Palette{
			Brand: "#0B5394", Accent: "#F59E0B", ButtonPrimary: "#0B5394", ButtonText: "#FFFFFF",
			ButtonSecondary: "#E0ECF8", ButtonSecondaryText: "#0B2A4A", TextPrimary: "#0F172A",
			TextSecondary: "#475569", SectionBg1: "#FFFFFF", SectionBg2: "#F1F5F9", SectionBg3: "#E2E8F0",
			Border: "#CBD5E1", Highlight: "#FEF3C7", InputBg: "#FFFFFF", InputText: "#0F172A",
		},
	},
	{
		Name: "Terracotta",
		Palette: colour.Palette{
			Brand: "#9A3412", Accent: "#0F766E", ButtonPrimary: "#9A3412", ButtonText: "#FFFFFF",
			ButtonSecondary: "#FDE7D9", ButtonSecondaryText: "#431407", TextPrimary: "#292524",
			TextSecondary: "#57534E", SectionBg1: "#FFFBF5", SectionBg2: "#FAF0E6", SectionBg3: "#F3E4D3",
			Border: "#E7D3BF", Highlight: "#CCFBF1", InputBg: "#FFFFFF", InputText: "#292524",
		},
	},
	{
		Name: "Meadow",
		Palette: colour.Palette{
			Brand: "#166534", Accent: "#7C3AED", ButtonPrimary: "#166534", ButtonText: "#FFFFFF",
			ButtonSecondary: "#DCFCE7", ButtonSecondaryText: "#14532D", TextPrimary: "#1C1917",
			TextSecondary: "#44403C", SectionBg1: "#F7FEE7", SectionBg2: "#ECFCCB", SectionBg3: "#D9F99D",
			Border: "#BEF264", Highlight: "#EDE9FE", InputBg: "#FFFFFF", InputText: "#1C1917",
		},
	},
}

var curatedDark = []Curated{
	{
		Name: "Midnight",
		Dark: true,
		Palette: colour.Palette{
			Brand: "#60A5FA", Accent: "#F472B6", ButtonPrimary: "#60A5FA", ButtonText: "#0B1120",
			ButtonSecondary: "#1F2937", ButtonSecondaryText: "#E2E8F0", TextPrimary: "#E2E8F0",
			TextSecondary: "#94A3B8", SectionBg1: "#0B1120", SectionBg2: "#111827", SectionBg3: "#1F2937",
			Border: "#334155", Highlight: "#FBBF24", InputBg: "#1E293B", InputText: "#E2E8F0",
		},
	},
	{
		Name: "Ember",
		Dark: true,
		Palette: colour.Palette{
			Brand: "#F97316", Accent: "#22D3EE", ButtonPrimary: "#F97316", ButtonText: "#1C0A00",
			ButtonSecondary: "#292524", ButtonSecondaryText: "#F5F5F4", TextPrimary: "#FAFAF9",
			TextSecondary: "#A8A29E", SectionBg1: "#1C1917", SectionBg2: "#292524", SectionBg3: "#44403C",
			Border: "#57534E", Highlight: "#FDE047", InputBg: "#292524", InputText: "#FAFAF9",
		},
	},
	{
		Name: "Orchid",
		Dark: true,
		Palette: colour.Palette{
			Brand: "#C084FC", Accent: "#34D399", ButtonPrimary: "#C084FC", ButtonText: "#1E0B36",
			ButtonSecondary: "#2E1F47", ButtonSecondaryText: "#EDE9FE", TextPrimary: "#F5F3FF",
			TextSecondary: "#C4B5FD", SectionBg1: "#130B1F", SectionBg2: "#1E1530", SectionBg3: "#2A1F42",
			Border: "#3F3160", Highlight: "#FBBF24", InputBg: "#1E1530", InputText: "#F5F3FF",
		},
	},
}

// CuratedPalettes returns the hand-authored palettes for one mode.
func CuratedPalettes(dark bool) []Curated {
	if dark {
		return slices.Clone(curatedDark)
	}
	return slices.Clone(curatedLight)
}

// LookupCurated finds a curated palette by case-insensitive name.
func LookupCurated(name string) (Curated, error) {
	for _, c := range append(CuratedPalettes(false), CuratedPalettes(true)...) {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return Curated{}, fmt.Errorf("unknown curated palette: %s", name)
}
