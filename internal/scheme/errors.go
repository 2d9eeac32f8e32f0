package scheme

import (
	"errors"
	"fmt"
)

// ErrNoAccessiblePalette matches any AccessibilityExhaustedError via errors.Is.
var ErrNoAccessiblePalette = errors.New("No accessible palette found") //nolint:staticcheck // message text is matched by callers

// AccessibilityExhaustedError is returned when the accessibility loop spends its
// whole attempt budget without a passing candidate.
type AccessibilityExhaustedError struct {
	Attempts    int
	Scheme      Type
	MinContrast float64
}

func (e *AccessibilityExhaustedError) Error() string {
	return fmt.Sprintf("%s after %d attempts (scheme %s, minimum contrast %.1f:1)",
		ErrNoAccessiblePalette, e.Attempts, e.Scheme, e.MinContrast)
}

// Is reports whether target is ErrNoAccessiblePalette.
func (e *AccessibilityExhaustedError) Is(target error) bool {
	return target == ErrNoAccessiblePalette
}
