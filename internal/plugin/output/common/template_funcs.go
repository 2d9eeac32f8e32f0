// Package common provides shared utilities for output plugins.
package common

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/plugin/output"
	"github.com/jmylchreest/swatch/internal/util"
)

// TemplateFuncs returns the functions available to every output template.
//
//	{{ get . "brand" }}            -> #1A66B3
//	{{ on . "brand" }}             -> readable text colour on brand
//	{{ get . "brand" | rgb }}      -> rgb(26, 102, 179)
//	{{ get . "brand" | hsl }}      -> 210 75% 40%
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// Role access.
		"get":   getFunc,
		"on":    onFunc,
		"roles": rolesFunc,

		// Format conversion.
		"hexNoHash": util.StripHash,
		"rgb":       rgbFunc,
		"rgbSpaces": rgbSpacesFunc,
		"hsl":       hslFunc,

		// String manipulation (pipe-friendly argument order).
		"camel":      util.CamelCase,
		"trimPrefix": trimPrefixFunc,
		"replace":    replaceFunc,
		"toLower":    strings.ToLower,
		"toUpper":    strings.ToUpper,
	}
}

// getFunc returns the hex value of a role. Unknown roles are a template error.
func getFunc(theme *output.Theme, roleName string) (string, error) {
	role, err := colour.ParseRole(roleName)
	if err != nil {
		return "", err
	}
	return theme.Palette.Get(role), nil
}

// onFunc returns the derived foreground for a background role.
func onFunc(theme *output.Theme, roleName string) (string, error) {
	role, err := colour.ParseRole(roleName)
	if err != nil {
		return "", err
	}
	for _, pair := range theme.Roles.Pairs() {
		if pair.Background == role {
			return pair.Foreground, nil
		}
	}
	return "", fmt.Errorf("role %q has no derived foreground", roleName)
}

func rolesFunc(_ *output.Theme) []colour.Role {
	return colour.AllRoles()
}

func rgbFunc(hex string) (string, error) {
	c, err := colour.ParseHex(hex)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B), nil
}

func rgbSpacesFunc(hex string) (string, error) {
	c, err := colour.ParseHex(hex)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d %d %d", c.R, c.G, c.B), nil
}

func hslFunc(hex string) (string, error) {
	c, err := colour.HexToHSL(hex)
	if err != nil {
		return "", err
	}
	return colour.Token{Value: c}.CSSValue(), nil
}

// trimPrefixFunc takes the prefix first so it works in pipes:
//
//	{{ value | trimPrefix "#" }}
func trimPrefixFunc(prefix, s string) string {
	return strings.TrimPrefix(s, prefix)
}

// replaceFunc takes old and new first so it works in pipes:
//
//	{{ value | replace "-" "_" }}
func replaceFunc(old, new, s string) string {
	return strings.ReplaceAll(s, old, new)
}
