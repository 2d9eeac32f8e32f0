package colour

import "fmt"

// Token is an HSL design token with a contrast-safe foreground.
type Token struct {
	Name       string
	Role       Role
	Value      HSL
	Foreground string
}

// CSSValue formats the token in the space-separated "H S% L%" form used by
// shadcn/ui style CSS variables.
func (t Token) CSSValue() string {
	r := t.Value.Rounded()
	return fmt.Sprintf("%.0f %.0f%% %.0f%%", r.H, r.S, r.L)
}

var tokenRoles = []struct {
	name       string
	role       Role
	foreground bool
}{
	{"background", RoleSectionBg1, true},
	{"muted", RoleSectionBg2, true},
	{"card", RoleSectionBg3, true},
	{"brand", RoleBrand, true},
	{"primary", RoleButtonPrimary, true},
	{"secondary", RoleButtonSecondary, true},
	{"accent", RoleAccent, true},
	{"highlight", RoleHighlight, true},
	{"input", RoleInputBg, true},
	{"border", RoleBorder, false},
}

// DesignTokens converts the background roles of p into HSL tokens whose
// foregrounds come from ContrastText. Roles that fail to parse are skipped.
func DesignTokens(p Palette, minContrast float64) []Token {
	tokens := make([]Token, 0, len(tokenRoles))
	for _, tr := range tokenRoles {
		hsl, err := HexToHSL(p.Get(tr.role))
		if err != nil {
			continue
		}
		t := Token{Name: tr.name, Role: tr.role, Value: hsl}
		if tr.foreground {
			t.Foreground = ContrastText(hsl, minContrast)
		}
		tokens = append(tokens, t)
	}
	return tokens
}
