package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/config"
	"github.com/jmylchreest/swatch/internal/plugin/output"
	"github.com/jmylchreest/swatch/internal/store"
)

func (a *app) paletteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "palette",
		Aliases: []string{"palettes"},
		Short:   "Manage saved palettes",
		Long: `List, show, import, export and delete palettes saved with
"swatch generate --save". Records may be addressed by ID, a unique ID prefix of
at least four characters, or name.`,
	}
	cc := collectionCmds{app: a, collection: store.SavedPalettes, noun: "palette"}
	cmd.AddCommand(cc.list(), cc.show(), cc.add("import"), cc.remove("delete"), a.paletteExportCmd())
	return cmd
}

func (a *app) presetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "preset",
		Aliases: []string{"presets"},
		Short:   "Manage admin colour presets",
		Long: `Manage the curated presets offered alongside saved palettes. Presets live in
their own collection in the data directory.`,
	}
	cc := collectionCmds{app: a, collection: store.AdminPresets, noun: "preset"}
	cmd.AddCommand(cc.list(), cc.show(), cc.add("add"), cc.remove("remove"))
	return cmd
}

// collectionCmds builds the commands shared by saved palettes and presets.
type collectionCmds struct {
	app        *app
	collection store.Collection
	noun       string
}

func (cc collectionCmds) list() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   fmt.Sprintf("List %ss, newest first", cc.noun),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := cc.app.openStore()
			if err != nil {
				return err
			}
			records, err := st.List(cc.collection)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if records == nil {
					records = []store.Record{}
				}
				return writeJSON(out, records)
			}
			if len(records) == 0 {
				fmt.Fprintf(out, "No %ss saved in %s\n", cc.noun, st.Dir())
				return nil
			}

			table := NewTable("ID", "Name", "Mode", "Scheme", "Created")
			for _, r := range records {
				table.AddRow(shortID(r.ID), r.Name, r.Mode, r.Scheme, r.CreatedAt.Local().Format("2006-01-02 15:04"))
			}
			table.Fprint(out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the records as JSON")
	return cmd
}

func (cc collectionCmds) show() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <id|name>",
		Short: fmt.Sprintf("Show a %s with its contrast checks", cc.noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := cc.app.openStore()
			if err != nil {
				return err
			}
			rec, err := findRecord(st, args[0], cc.collection)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, rec)
			}
			fmt.Fprintf(out, "%s  %s\n", rec.Name, rec.ID)
			fmt.Fprintf(out, "mode: %s  scheme: %s  created: %s\n", rec.Mode, valueOr(rec.Scheme, "-"), rec.CreatedAt.Local().Format("2006-01-02 15:04"))
			if rec.Mood != "" {
				fmt.Fprintf(out, "mood: %s\n", rec.Mood)
			}
			fmt.Fprintln(out)
			fmt.Fprint(out, colour.PalettePreview(rec.OriginalPalette))
			fmt.Fprintln(out)
			printChecks(out, rec.OriginalPalette, cc.app.cfg.MinContrast)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the record as JSON")
	return cmd
}

func (cc collectionCmds) add(use string) *cobra.Command {
	var name, mode string
	cmd := &cobra.Command{
		Use:   use + " <palette>",
		Short: fmt.Sprintf("Store a palette file, saved palette or curated palette as a %s", cc.noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := cc.app.loadPalette(args[0])
			if err != nil {
				return err
			}
			dark, err := cc.app.resolveMode(mode, loaded.Mode)
			if err != nil {
				return err
			}

			st, err := cc.app.openStore()
			if err != nil {
				return err
			}
			rec, err := st.Save(cc.collection, store.Record{
				Name:            firstNonEmpty(name, loaded.Name),
				Scheme:          loaded.Scheme,
				Mood:            loaded.Mood,
				Mode:            config.ModeName(dark),
				OriginalPalette: loaded.Palette,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved %s %q (%s)\n", cc.noun, rec.Name, rec.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Name to store it under (default: the source name)")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "light or dark (default: the source's mode, then config)")
	return cmd
}

func (cc collectionCmds) remove(use string) *cobra.Command {
	return &cobra.Command{
		Use:     use + " <id>",
		Aliases: []string{"rm"},
		Short:   fmt.Sprintf("Delete a %s by ID or unique ID prefix", cc.noun),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := cc.app.openStore()
			if err != nil {
				return err
			}
			rec, err := st.Get(cc.collection, args[0])
			if err != nil {
				return err
			}
			if err := st.Delete(cc.collection, rec.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %s %q (%s)\n", cc.noun, rec.Name, rec.ID)
			return nil
		},
	}
}

func (a *app) paletteExportCmd() *cobra.Command {
	var (
		outputs outputFlags
		name    string
	)
	cmd := &cobra.Command{
		Use:   "export <palette>",
		Short: "Write a saved palette through output plugins",
		Example: `  swatch palette export Acme -o css,tailwind --output-dir web/theme
  swatch palette export 1f2e -o all --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !outputs.selected() {
				outputs.names = []string{"all"}
			}
			loaded, err := a.loadPalette(args[0])
			if err != nil {
				return err
			}
			dark, err := a.resolveMode("", loaded.Mode)
			if err != nil {
				return err
			}
			theme, err := output.NewTheme(firstNonEmpty(name, loaded.Name), config.ModeName(dark), loaded.Scheme, loaded.Palette, a.cfg.MinContrast)
			if err != nil {
				return err
			}
			return a.writeOutputs(cmd, theme, outputs)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Theme name used in generated files (default: the palette name)")
	outputs.register(cmd.Flags())
	for _, p := range a.plugins.AllOutputPlugins() {
		p.RegisterFlags(cmd)
	}
	return cmd
}

// shortID abbreviates a UUID for tables.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
