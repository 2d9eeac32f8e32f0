package colour

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Role is a named semantic colour slot that templates bind to.
type Role string

// Palette roles, in display order.
const (
	RoleBrand               Role = "brand"
	RoleAccent              Role = "accent"
	RoleButtonPrimary       Role = "button-primary"
	RoleButtonText          Role = "button-text"
	RoleButtonSecondary     Role = "button-secondary"
	RoleButtonSecondaryText Role = "button-secondary-text"
	RoleTextPrimary         Role = "text-primary"
	RoleTextSecondary       Role = "text-secondary"
	RoleSectionBg1          Role = "section-bg-1"
	RoleSectionBg2          Role = "section-bg-2"
	RoleSectionBg3          Role = "section-bg-3"
	RoleBorder              Role = "border"
	RoleHighlight           Role = "highlight"
	RoleInputBg             Role = "input-bg"
	RoleInputText           Role = "input-text"
)

var allRoles = []Role{
	RoleBrand,
	RoleAccent,
	RoleButtonPrimary,
	RoleButtonText,
	RoleButtonSecondary,
	RoleButtonSecondaryText,
	RoleTextPrimary,
	RoleTextSecondary,
	RoleSectionBg1,
	RoleSectionBg2,
	RoleSectionBg3,
	RoleBorder,
	RoleHighlight,
	RoleInputBg,
	RoleInputText,
}

// AllRoles returns the 15 palette roles in display order.
func AllRoles() []Role {
	return append([]Role(nil), allRoles...)
}

// ParseRole converts a string to a Role. Case, hyphens and underscores are
// ignored, so "section-bg-1", "section_bg_1" and "sectionBg1" are equivalent.
func ParseRole(s string) (Role, error) {
	want := squashRole(s)
	for _, known := range allRoles {
		if squashRole(string(known)) == want {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown colour role: %s", strings.TrimSpace(s))
}

func squashRole(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "")
	return strings.ReplaceAll(s, "-", "")
}

// MissingRoleError reports a palette payload without one of the required roles.
type MissingRoleError struct {
	Role Role
}

func (e *MissingRoleError) Error() string {
	return fmt.Sprintf("Missing color role: %s", e.Role)
}

// Palette maps the 15 roles to "#RRGGBB" hex strings. It is a value type; every
// transformation returns a new Palette.
type Palette struct {
	Brand               string `json:"brand" yaml:"brand"`
	Accent              string `json:"accent" yaml:"accent"`
	ButtonPrimary       string `json:"button-primary" yaml:"button-primary"`
	ButtonText          string `json:"button-text" yaml:"button-text"`
	ButtonSecondary     string `json:"button-secondary" yaml:"button-secondary"`
	ButtonSecondaryText string `json:"button-secondary-text" yaml:"button-secondary-text"`
	TextPrimary         string `json:"text-primary" yaml:"text-primary"`
	TextSecondary       string `json:"text-secondary" yaml:"text-secondary"`
	SectionBg1          string `json:"section-bg-1" yaml:"section-bg-1"`
	SectionBg2          string `json:"section-bg-2" yaml:"section-bg-2"`
	SectionBg3          string `json:"section-bg-3" yaml:"section-bg-3"`
	Border              string `json:"border" yaml:"border"`
	Highlight           string `json:"highlight" yaml:"highlight"`
	InputBg             string `json:"input-bg" yaml:"input-bg"`
	InputText           string `json:"input-text" yaml:"input-text"`
}

func (p *Palette) field(r Role) *string {
	switch r {
	case RoleBrand:
		return &p.Brand
	case RoleAccent:
		return &p.Accent
	case RoleButtonPrimary:
		return &p.ButtonPrimary
	case RoleButtonText:
		return &p.ButtonText
	case RoleButtonSecondary:
		return &p.ButtonSecondary
	case RoleButtonSecondaryText:
		return &p.ButtonSecondaryText
	case RoleTextPrimary:
		return &p.TextPrimary
	case RoleTextSecondary:
		return &p.TextSecondary
	case RoleSectionBg1:
		return &p.SectionBg1
	case RoleSectionBg2:
		return &p.SectionBg2
	case RoleSectionBg3:
		return &p.SectionBg3
	case RoleBorder:
		return &p.Border
	case RoleHighlight:
		return &p.Highlight
	case RoleInputBg:
		return &p.InputBg
	case RoleInputText:
		return &p.InputText
	}
	return nil
}

// Get returns the hex value of a role, or "" for an unknown role.
func (p Palette) Get(r Role) string {
	if f := p.field(r); f != nil {
		return *f
	}
	return ""
}

// With returns a copy of p with role r set to hex. Unknown roles are ignored.
func (p Palette) With(r Role, hex string) Palette {
	if f := p.field(r); f != nil {
		*f = hex
	}
	return p
}

// Map returns the palette as a role-keyed map.
func (p Palette) Map() map[Role]string {
	m := make(map[Role]string, len(allRoles))
	for _, r := range allRoles {
		m[r] = p.Get(r)
	}
	return m
}

// Validate checks that every role holds a parseable hex colour.
func (p Palette) Validate() error {
	for _, r := range allRoles {
		v := p.Get(r)
		if v == "" {
			return &MissingRoleError{Role: r}
		}
		if !IsHex(v) {
			return fmt.Errorf("role %s: %w: %q", r, ErrInvalidHex, v)
		}
	}
	return nil
}

// Normalise returns a copy with every parseable value formatted as "#RRGGBB".
func (p Palette) Normalise() Palette {
	out := p
	for _, r := range allRoles {
		if hex, err := NormaliseHex(p.Get(r)); err == nil {
			out = out.With(r, hex)
		}
	}
	return out
}

// ParsePalette decodes a JSON object and requires all 15 roles to be present.
func ParsePalette(data []byte) (Palette, error) {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return Palette{}, fmt.Errorf("failed to parse palette JSON: %w", err)
	}
	return PaletteFromMap(raw)
}

// PaletteFromMap builds a Palette from a string map, requiring every role.
func PaletteFromMap(raw map[string]string) (Palette, error) {
	var p Palette
	for _, r := range allRoles {
		v, ok := raw[string(r)]
		if !ok || strings.TrimSpace(v) == "" {
			return Palette{}, &MissingRoleError{Role: r}
		}
		p = p.With(r, v)
	}
	if err := p.Validate(); err != nil {
		return Palette{}, err
	}
	return p.Normalise(), nil
}

// ToJSON converts the palette to indented JSON.
func (p Palette) ToJSON() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// String returns a human-readable listing of the palette.
func (p Palette) String() string {
	var sb strings.Builder
	for _, r := range allRoles {
		fmt.Fprintf(&sb, "  %-22s %s\n", r, p.Get(r))
	}
	return sb.String()
}
