package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/config"
	"github.com/jmylchreest/swatch/internal/plugin/input"
	"github.com/jmylchreest/swatch/internal/plugin/output"
	"github.com/jmylchreest/swatch/internal/scheme"
	"github.com/jmylchreest/swatch/internal/seed"
	"github.com/jmylchreest/swatch/internal/store"
)

// generateFlags holds the generate command's own flags.
type generateFlags struct {
	input        string
	scheme       string
	mode         string
	locks        scheme.LockSet
	accessible   bool
	preserveMood string
	from         string
	seed         int64
	seedText     string
	name         string
	preview      bool
	asJSON       bool
	save         string
	outputs      outputFlags
}

func (a *app) generateCmd() *cobra.Command {
	f := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a palette and write theme files",
		Long: `Generate a 15-role palette and optionally write it out through output plugins.

Input plugins:
  scheme       - Colour-theory schemes and curated palettes (default)
  file         - Load roles from a JSON, YAML or role=hex file, with overrides
  remote-json  - Fetch roles from a remote JSON document
  remote-css   - Read roles from the custom properties of a stylesheet
  ai           - Ask Google Gen AI for a palette matching a description

Locked roles keep their value from the current palette (--from) on every
generation path. --accessible retries until text-primary, text-secondary and
button-text all reach the configured contrast on their backgrounds.`,
		Example: `  # Random scheme, light mode, preview only
  swatch generate

  # Dark triadic palette written as CSS and Tailwind
  swatch generate --scheme triadic --mode dark -o css,tailwind

  # Keep the brand and background of a saved palette, regenerate the rest
  swatch generate --from "Acme" --lock brand --lock section-bg-1 --accessible

  # Vary a saved palette without losing its mood
  swatch generate --from "Acme" --preserve-mood calm

  # Reproducible output from a brand name
  swatch generate --seed-text "Acme Corp" --save "Acme" -o all --output-dir web/theme`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runGenerate(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.input, "input", "i", "scheme", "Input plugin (scheme, file, remote-json, remote-css, ai)")
	flags.StringVarP(&f.scheme, "scheme", "s", "", "Scheme: monochromatic, analogous, complementary, triadic, tetradic, random (default: config)")
	flags.StringVarP(&f.mode, "mode", "m", "", "Mode: light or dark (default: the --from palette's mode, then config)")
	flags.Var(&f.locks, "lock", "Role to keep from the current palette (repeatable or comma-separated)")
	flags.BoolVarP(&f.accessible, "accessible", "a", false, "Retry until the palette passes the contrast checks")
	flags.StringVar(&f.preserveMood, "preserve-mood", "", "Vary the current palette within a mood instead of drawing a new scheme")
	flags.StringVarP(&f.from, "from", "f", "", "Current palette: a file, saved palette or preset (ID or name), or curated palette name")
	flags.Int64Var(&f.seed, "seed", 0, "Seed for reproducible generation")
	flags.StringVar(&f.seedText, "seed-text", "", "Derive the seed from text, such as a brand name")
	flags.StringVar(&f.name, "name", "", "Theme name used in generated files (default: --save name or \"swatch\")")
	flags.BoolVarP(&f.preview, "preview", "p", false, "Show the palette even when writing outputs")
	flags.BoolVar(&f.asJSON, "json", false, "Print the palette as JSON instead of a preview")
	flags.StringVar(&f.save, "save", "", "Save the palette under this name")
	cmd.MarkFlagsMutuallyExclusive("seed", "seed-text")
	cmd.MarkFlagsMutuallyExclusive("preview", "json")
	f.outputs.register(cmd.Flags())

	for _, p := range a.plugins.AllInputPlugins() {
		p.RegisterFlags(cmd)
	}
	for _, p := range a.plugins.AllOutputPlugins() {
		p.RegisterFlags(cmd)
	}
	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, f *generateFlags) error {
	var current loadedPalette
	if f.from != "" {
		var err error
		if current, err = a.loadPalette(f.from); err != nil {
			return err
		}
	}
	if f.locks.Len() > 0 && f.from == "" {
		return fmt.Errorf("--lock needs a current palette to keep roles from (use --from)")
	}

	dark, err := a.resolveMode(f.mode, current.Mode)
	if err != nil {
		return err
	}
	schemeName := f.scheme
	if schemeName == "" {
		schemeName = a.cfg.DefaultScheme
	}
	schemeType, err := scheme.ParseType(schemeName)
	if err != nil {
		return err
	}
	if f.preserveMood != "" {
		if _, err := scheme.LookupMood(f.preserveMood); err != nil {
			return err
		}
	}

	seedValue, err := a.resolveSeed(cmd, f)
	if err != nil {
		return err
	}
	gen := scheme.New(
		scheme.WithSeed(seedValue),
		scheme.WithMaxAttempts(a.cfg.MaxAttempts),
		scheme.WithMinContrast(a.cfg.MinContrast),
		scheme.WithLogger(a.logger.Named("scheme")),
	)

	if err := a.applyHTTPDefaults(cmd); err != nil {
		return err
	}
	plugin, err := a.plugins.EnabledInput(f.input)
	if err != nil {
		return err
	}
	if err := plugin.Validate(); err != nil {
		return fmt.Errorf("input plugin validation failed: %w", err)
	}

	opts := input.GenerateOptions{
		Request: scheme.Request{
			Scheme:       schemeType,
			Dark:         dark,
			Current:      current.Palette,
			Locked:       f.locks,
			Accessible:   f.accessible,
			PreserveMood: f.preserveMood,
		},
		Generator: gen,
		Logger:    a.logger.Named("input").Named(plugin.Name()),
	}
	a.logger.Debug("generating palette", "input", plugin.Name(), "scheme", schemeType,
		"mode", config.ModeName(dark), "seed", seedValue, "locked", f.locks.String())

	palette, err := plugin.Generate(cmd.Context(), opts)
	var exhausted *scheme.AccessibilityExhaustedError
	if errors.As(err, &exhausted) {
		a.logger.Warn("falling back to non-strict generation", "reason", err)
		a.status(cmd, "⚠ %v; generating without the accessibility check", err)
		opts.Request.Accessible = false
		palette, err = plugin.Generate(cmd.Context(), opts)
	}
	if err != nil {
		return fmt.Errorf("failed to generate palette: %w", err)
	}

	if err := palette.Validate(); err != nil {
		return fmt.Errorf("%s produced an incomplete palette: %w", plugin.Name(), err)
	}

	name := firstNonEmpty(f.name, f.save, current.Name, "swatch")
	theme, err := output.NewTheme(name, config.ModeName(dark), string(schemeType), palette, a.cfg.MinContrast)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case f.asJSON:
		if err := writeJSON(out, palette); err != nil {
			return err
		}
	case f.preview || !f.outputs.selected():
		fmt.Fprintf(out, "%s (%s, %s, seed %d)\n\n", theme.Name, theme.Scheme, theme.Mode, seedValue)
		fmt.Fprint(out, colour.PalettePreview(palette))
		fmt.Fprintln(out)
		printChecks(out, palette, a.cfg.MinContrast)
	}

	if f.save != "" {
		st, err := a.openStore()
		if err != nil {
			return err
		}
		rec, err := st.Save(store.SavedPalettes, store.Record{
			Name:            f.save,
			Scheme:          string(schemeType),
			Mood:            f.preserveMood,
			Mode:            config.ModeName(dark),
			OriginalPalette: palette,
		})
		if err != nil {
			return fmt.Errorf("failed to save palette: %w", err)
		}
		a.status(cmd, "✓ Saved palette %q (%s)", rec.Name, rec.ID)
	}

	if !f.outputs.selected() {
		return nil
	}
	return a.writeOutputs(cmd, theme, f.outputs)
}

// resolveMode picks the flag value, then the loaded palette's mode, then config.
func (a *app) resolveMode(flag, loaded string) (bool, error) {
	return config.ParseMode(firstNonEmpty(flag, loaded, a.cfg.DefaultMode))
}

// resolveSeed turns --seed or --seed-text into a generator seed, or draws one.
func (a *app) resolveSeed(cmd *cobra.Command, f *generateFlags) (uint64, error) {
	sc := seed.Config{Mode: seed.ModeRandom}
	switch {
	case cmd.Flags().Changed("seed"):
		sc = seed.Config{Mode: seed.ModeManual, Value: &f.seed}
	case f.seedText != "":
		sc = seed.Config{Mode: seed.ModeText, Text: f.seedText}
	}
	return seed.Calculate(sc)
}

// applyHTTPDefaults copies the configured HTTP settings into the remote input
// plugin flags the user did not set.
func (a *app) applyHTTPDefaults(cmd *cobra.Command) error {
	defaults := map[string]string{
		"remote-json.timeout":       a.cfg.HTTP.Timeout.String(),
		"remote-json.allow-private": fmt.Sprint(a.cfg.HTTP.AllowPrivate),
		"remote-css.timeout":        a.cfg.HTTP.Timeout.String(),
		"remote-css.allow-private":  fmt.Sprint(a.cfg.HTTP.AllowPrivate),
	}
	for name, value := range defaults {
		fl := cmd.Flags().Lookup(name)
		if fl == nil || fl.Changed {
			continue
		}
		if err := fl.Value.Set(value); err != nil {
			return fmt.Errorf("invalid http setting for %s: %w", name, err)
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
