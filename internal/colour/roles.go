package colour

// ColorRoles extends a Palette with derived foreground ("on-X") colours. It is
// always computed by MapPaletteToRoles and never persisted.
type ColorRoles struct {
	Palette

	OnBrand     string `json:"onBrand"`
	OnAccent    string `json:"onAccent"`
	OnHighlight string `json:"onHighlight"`
	OnPrimary   string `json:"onPrimary"`
	OnSecondary string `json:"onSecondary"`
	OnBg1       string `json:"onBg1"`
	OnBg2       string `json:"onBg2"`
	OnBg3       string `json:"onBg3"`
	OnInput     string `json:"onInput"`
}

// OnPair is a background role together with its derived foreground.
type OnPair struct {
	Name       string
	Background Role
	Foreground string
}

// MapPaletteToRoles derives every on-X colour from palette and overwrites the
// legacy text roles with them, so editors and previews share one computation path.
func MapPaletteToRoles(palette Palette) ColorRoles {
	on := func(bg string) string {
		return ReadableTextColor(bg, Black, MinContrastAA)
	}

	roles := ColorRoles{
		Palette:     palette,
		OnBrand:     on(palette.Brand),
		OnAccent:    on(palette.Accent),
		OnHighlight: on(palette.Highlight),
		OnPrimary:   on(palette.ButtonPrimary),
		OnSecondary: on(palette.ButtonSecondary),
		OnBg1:       on(palette.SectionBg1),
		OnBg2:       on(palette.SectionBg2),
		OnInput:     on(palette.InputBg),
	}

	// section-bg-3 is optional in older saved palettes.
	if palette.SectionBg3 != "" {
		roles.OnBg3 = on(palette.SectionBg3)
	} else {
		roles.OnBg3 = roles.OnBg2
	}

	roles.ButtonText = roles.OnPrimary
	roles.ButtonSecondaryText = roles.OnSecondary
	roles.TextPrimary = roles.OnBg1
	roles.TextSecondary = roles.OnBg2
	roles.InputText = roles.OnInput

	return roles
}

// Pairs lists each background role with its derived foreground.
func (r ColorRoles) Pairs() []OnPair {
	return []OnPair{
		{Name: "onBrand", Background: RoleBrand, Foreground: r.OnBrand},
		{Name: "onAccent", Background: RoleAccent, Foreground: r.OnAccent},
		{Name: "onHighlight", Background: RoleHighlight, Foreground: r.OnHighlight},
		{Name: "onPrimary", Background: RoleButtonPrimary, Foreground: r.OnPrimary},
		{Name: "onSecondary", Background: RoleButtonSecondary, Foreground: r.OnSecondary},
		{Name: "onBg1", Background: RoleSectionBg1, Foreground: r.OnBg1},
		{Name: "onBg2", Background: RoleSectionBg2, Foreground: r.OnBg2},
		{Name: "onBg3", Background: RoleSectionBg3, Foreground: r.OnBg3},
		{Name: "onInput", Background: RoleInputBg, Foreground: r.OnInput},
	}
}
