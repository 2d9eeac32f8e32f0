// Package util holds small string helpers shared by the output plugins.
package util

import "strings"

// StripHash removes the # prefix from a hex colour string.
func StripHash(hex string) string {
	return strings.TrimPrefix(hex, "#")
}

// CamelCase converts a kebab-case role name such as "section-bg-1" to "sectionBg1".
func CamelCase(s string) string {
	parts := strings.Split(s, "-")
	var sb strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i == 0 {
			sb.WriteString(p)
			continue
		}
		sb.WriteString(strings.ToUpper(p[:1]))
		sb.WriteString(p[1:])
	}
	return sb.String()
}
