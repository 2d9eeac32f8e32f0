package scheme

import (
	"github.com/jmylchreest/swatch/internal/colour"
)

// ContrastCheck is one foreground/background pair the accessibility loop checks.
type ContrastCheck struct {
	Foreground colour.Role
	Background colour.Role
	Ratio      float64
	Passed     bool
}

var accessibilityPairs = []struct {
	fg, bg colour.Role
}{
	{colour.RoleTextPrimary, colour.RoleSectionBg1},
	{colour.RoleTextSecondary, colour.RoleSectionBg1},
	{colour.RoleButtonText, colour.RoleButtonPrimary},
}

// CheckAccessibility measures text-primary and text-secondary on section-bg-1 and
// button-text on button-primary. Unparseable colours fail with a zero ratio.
func CheckAccessibility(p colour.Palette, minContrast float64) []ContrastCheck {
	checks := make([]ContrastCheck, 0, len(accessibilityPairs))
	for _, pair := range accessibilityPairs {
		ratio, err := colour.Contrast(p.Get(pair.fg), p.Get(pair.bg))
		if err != nil {
			ratio = 0
		}
		checks = append(checks, ContrastCheck{
			Foreground: pair.fg,
			Background: pair.bg,
			Ratio:      ratio,
			Passed:     ratio >= minContrast,
		})
	}
	return checks
}

// IsAccessible reports whether every CheckAccessibility pair passes.
func IsAccessible(p colour.Palette, minContrast float64) bool {
	for _, c := range CheckAccessibility(p, minContrast) {
		if !c.Passed {
			return false
		}
	}
	return true
}

// GenerateAccessible draws candidates exactly as GenerateWithLocks does, locks
// included, and returns the first one that passes CheckAccessibility. After
// MaxAttempts failures it returns an *AccessibilityExhaustedError.
func (g *Generator) GenerateAccessible(req Request) (colour.Palette, error) {
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		candidate, err := g.candidate(req)
		if err != nil {
			return colour.Palette{}, err
		}
		candidate = req.Locked.Apply(candidate, req.Current)

		if IsAccessible(candidate, g.minContrast) {
			g.logger.Debug("accessible palette found", "attempt", attempt, "scheme", req.Scheme)
			return candidate, nil
		}
		g.logger.Trace("accessibility attempt failed", "attempt", attempt)
	}

	g.logger.Warn("accessibility budget exhausted", "attempts", g.maxAttempts, "scheme", req.Scheme)
	return colour.Palette{}, &AccessibilityExhaustedError{
		Attempts:    g.maxAttempts,
		Scheme:      req.Scheme,
		MinContrast: g.minContrast,
	}
}
