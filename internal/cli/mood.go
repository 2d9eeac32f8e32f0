package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/config"
	"github.com/jmylchreest/swatch/internal/scheme"
	"github.com/jmylchreest/swatch/internal/seed"
)

func (a *app) moodCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mood",
		Aliases: []string{"moods"},
		Short:   "Browse the mood catalogue",
		Long: `Moods are curated starting points. "swatch generate --preserve-mood" varies a
palette within a mood: background and body text stay put while every other
unlocked role drifts a little in hue, saturation and lightness.`,
	}
	cmd.AddCommand(a.moodListCmd(), a.moodShowCmd())
	return cmd
}

func (a *app) moodListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List moods",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := NewTable("ID", "Name", "Mode", "Description")
			for _, m := range scheme.Moods() {
				_, dark, err := m.Palette()
				if err != nil {
					return err
				}
				table.AddRow(m.ID, m.Name, config.ModeName(dark), m.Description)
			}
			table.FitLastColumn(terminalWidth(cmd.OutOrStdout()))
			table.Fprint(cmd.OutOrStdout())
			return nil
		},
	}
}

func (a *app) moodShowCmd() *cobra.Command {
	var (
		vary      int
		seedValue int64
	)
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a mood's palette and optional variations",
		Example: `  swatch mood show calm
  swatch mood show calm --vary 3 --seed 7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := scheme.LookupMood(args[0])
			if err != nil {
				return err
			}
			p, dark, err := m.Palette()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s): %s\n\n", m.Name, config.ModeName(dark), m.Description)
			fmt.Fprint(out, colour.PalettePreview(p))

			if vary <= 0 {
				return nil
			}
			sc := seed.Config{Mode: seed.ModeRandom}
			if cmd.Flags().Changed("seed") {
				sc = seed.Config{Mode: seed.ModeManual, Value: &seedValue}
			}
			s, err := seed.Calculate(sc)
			if err != nil {
				return err
			}
			gen := scheme.New(scheme.WithSeed(s), scheme.WithLogger(a.logger.Named("scheme")))
			for i := 1; i <= vary; i++ {
				fmt.Fprintf(out, "\nVariation %d\n", i)
				fmt.Fprint(out, colour.PalettePreview(gen.MoodVariation(p, scheme.LockSet{})))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&vary, "vary", 0, "Also show this many variations")
	cmd.Flags().Int64Var(&seedValue, "seed", 0, "Seed for reproducible variations")
	return cmd
}
