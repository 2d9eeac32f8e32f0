package colour

import (
	"fmt"
	"strings"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// DisableColourOutput turns swatch previews into plain text. The CLI sets it when
// stdout is not a terminal.
var DisableColourOutput = false

// ColourPreviewWithText returns a colour block with centred text drawn in fg.
func ColourPreviewWithText(bg, fg RGB, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	displayText := text
	if len(text) > width {
		displayText = text[:width]
	} else if len(text) < width {
		padding := (width - len(text)) / 2
		displayText = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
	}
	if DisableColourOutput {
		return displayText
	}

	bgColour := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, bg.R, bg.G, bg.B, ansiSuffix)
	fgColour := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, fg.R, fg.G, fg.B, ansiSuffix)
	return bgColour + fgColour + displayText + ansiReset
}

// PalettePreview renders every role as a swatch line. Each swatch carries a
// sample of its readable text colour.
func PalettePreview(p Palette) string {
	var sb strings.Builder
	for _, r := range allRoles {
		hex := p.Get(r)
		bg, err := ParseHex(hex)
		if err != nil {
			fmt.Fprintf(&sb, "  %-10s  %-22s %s\n", "??", r, hex)
			continue
		}
		fg, _ := ParseHex(ReadableTextColor(hex, Black, MinContrastAA))
		fmt.Fprintf(&sb, "%s  %-22s %s\n", ColourPreviewWithText(bg, fg, "Aa", 10), r, bg.Hex())
	}
	return sb.String()
}
