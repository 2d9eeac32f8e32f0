package colour

import (
	"encoding/json"
	"testing"
)

func TestMapPaletteToRolesCompleteness(t *testing.T) {
	palettes := map[string]Palette{
		"light": testPalette(),
		"dark": {
			Brand: "#7AA2F7", Accent: "#BB9AF7", ButtonPrimary: "#7AA2F7", ButtonText: "#000000",
			ButtonSecondary: "#2A2F45", ButtonSecondaryText: "#C0CAF5", TextPrimary: "#C0CAF5",
			TextSecondary: "#A9B1D6", SectionBg1: "#1A1B26", SectionBg2: "#16161E", SectionBg3: "#24283B",
			Border: "#414868", Highlight: "#E0AF68", InputBg: "#1F2335", InputText: "#C0CAF5",
		},
		"mid tones": {
			Brand: "#808080", Accent: "#3FA34D", ButtonPrimary: "#E05A2B", ButtonText: "#E05A2B",
			ButtonSecondary: "#6C7A89", ButtonSecondaryText: "#6C7A89", TextPrimary: "#999999",
			TextSecondary: "#999999", SectionBg1: "#999999", SectionBg2: "#777777", SectionBg3: "#5C5C5C",
			Border: "#888888", Highlight: "#FFD700", InputBg: "#AAAAAA", InputText: "#AAAAAA",
		},
	}

	for name, p := range palettes {
		t.Run(name, func(t *testing.T) {
			roles := MapPaletteToRoles(p)
			for _, pair := range roles.Pairs() {
				if pair.Foreground == "" {
					t.Errorf("%s is empty", pair.Name)
					continue
				}
				bg := p.Get(pair.Background)
				if !MeetsContrast(pair.Foreground, bg, MinContrastAA) {
					t.Errorf("%s = %s is not legible on %s", pair.Name, pair.Foreground, bg)
				}
			}
		})
	}
}

func TestMapPaletteToRolesOverwritesLegacyText(t *testing.T) {
	p := testPalette()
	p.ButtonText = "#1A66B3" // invisible on the button
	p.TextPrimary = "#F8FAFC"

	roles := MapPaletteToRoles(p)

	checks := []struct {
		name string
		got  string
		want string
	}{
		{"button-text", roles.ButtonText, roles.OnPrimary},
		{"button-secondary-text", roles.ButtonSecondaryText, roles.OnSecondary},
		{"text-primary", roles.TextPrimary, roles.OnBg1},
		{"text-secondary", roles.TextSecondary, roles.OnBg2},
		{"input-text", roles.InputText, roles.OnInput},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %s, want derived %s", c.name, c.got, c.want)
		}
	}

	// Background roles pass through untouched.
	if roles.Brand != p.Brand || roles.SectionBg1 != p.SectionBg1 {
		t.Error("background roles must not change")
	}
}

func TestMapPaletteToRolesSectionBg3Fallback(t *testing.T) {
	p := testPalette()
	p.SectionBg2 = "#111111"
	p.SectionBg3 = ""

	roles := MapPaletteToRoles(p)
	if roles.OnBg3 != roles.OnBg2 {
		t.Errorf("OnBg3 = %s, want OnBg2 %s", roles.OnBg3, roles.OnBg2)
	}
	if roles.OnBg2 != White {
		t.Errorf("OnBg2 = %s, want %s", roles.OnBg2, White)
	}
}

func TestMapPaletteToRolesPersistedRoundTrip(t *testing.T) {
	p := testPalette()
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	reloaded, err := ParsePalette(data)
	if err != nil {
		t.Fatalf("ParsePalette() error = %v", err)
	}

	if MapPaletteToRoles(reloaded) != MapPaletteToRoles(p) {
		t.Error("reloaded palette derived different roles")
	}
}

func TestColorRolesJSON(t *testing.T) {
	data, err := json.Marshal(MapPaletteToRoles(testPalette()))
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"brand", "section-bg-3", "onBrand", "onBg3", "onInput"} {
		if m[key] == "" {
			t.Errorf("JSON missing %s", key)
		}
	}
}
