package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/scheme"
)

func (a *app) contrastCmd() *cobra.Command {
	var minContrast float64
	cmd := &cobra.Command{
		Use:   "contrast <foreground> <background>",
		Short: "Check the WCAG contrast ratio of two colours",
		Long: `Print the WCAG 2 contrast ratio of a foreground and background colour, the
AA and AAA verdicts, and a readable text colour for the background.`,
		Example: `  swatch contrast '#ffffff' '#1e66f5'
  swatch contrast 333 f5f5f5 --min 7`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fg, err := colour.NormaliseHex(args[0])
			if err != nil {
				return fmt.Errorf("foreground: %w", err)
			}
			bg, err := colour.NormaliseHex(args[1])
			if err != nil {
				return fmt.Errorf("background: %w", err)
			}
			if !cmd.Flags().Changed("min") {
				minContrast = a.cfg.MinContrast
			}
			printContrast(cmd.OutOrStdout(), fg, bg, minContrast)
			return nil
		},
	}
	cmd.Flags().Float64Var(&minContrast, "min", colour.MinContrastAA, "Contrast ratio the suggestion must reach (default: config)")
	return cmd
}

func printContrast(w io.Writer, fg, bg string, minContrast float64) {
	ratio, _ := colour.Contrast(fg, bg)
	fgRGB, _ := colour.ParseHex(fg)
	bgRGB, _ := colour.ParseHex(bg)

	fmt.Fprintf(w, "%s  %s on %s\n\n", colour.ColourPreviewWithText(bgRGB, fgRGB, "Sample", 12), fg, bg)
	fmt.Fprintf(w, "Contrast ratio: %.2f:1\n", ratio)
	fgLum, _ := colour.HexLuminance(fg)
	bgLum, _ := colour.HexLuminance(bg)
	fmt.Fprintf(w, "Luminance: %.3f on %.3f\n", fgLum, bgLum)

	table := NewTable("Level", "Minimum", "Result")
	table.AddRow("AA large text", "3.0:1", verdict(colour.MeetsContrast(fg, bg, colour.MinContrastAALarge)))
	table.AddRow("AA", "4.5:1", verdict(colour.MeetsContrast(fg, bg, colour.MinContrastAA)))
	table.AddRow("AAA", "7.0:1", verdict(colour.MeetsContrast(fg, bg, colour.MinContrastAAA)))
	fmt.Fprintln(w)
	table.Fprint(w)

	readable := colour.ReadableTextColor(bg, fg, minContrast)
	fmt.Fprintln(w)
	if readable == fg {
		fmt.Fprintf(w, "%s is readable on %s at %.1f:1\n", fg, bg, minContrast)
	} else {
		r, _ := colour.Contrast(readable, bg)
		fmt.Fprintf(w, "Suggested text colour: %s (%.2f:1)\n", readable, r)
	}

	hsl, _ := colour.HexToHSL(bg)
	soft := colour.ContrastText(hsl, minContrast)
	r, _ := colour.Contrast(soft, bg)
	fmt.Fprintf(w, "Softest neutral text: %s (%.2f:1)\n", soft, r)
}

// printChecks prints the accessibility loop's contrast checks for p.
func printChecks(w io.Writer, p colour.Palette, minContrast float64) {
	table := NewTable("Foreground", "Background", "Ratio", "Result")
	for _, c := range scheme.CheckAccessibility(p, minContrast) {
		table.AddRow(string(c.Foreground), string(c.Background), fmt.Sprintf("%.2f:1", c.Ratio), verdict(c.Passed))
	}
	table.Fprint(w)
}

func verdict(pass bool) string {
	if pass {
		return "✓ pass"
	}
	return "✗ fail"
}
