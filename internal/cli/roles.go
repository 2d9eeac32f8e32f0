package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
)

func (a *app) rolesCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "roles <palette>",
		Short: "Show the derived on-colours of a palette",
		Long: `Derive the readable foreground ("on-X") colour of every background role and
print it with its contrast ratio. The palette may be a file, a saved palette or
preset (ID or name), or a curated palette name.`,
		Example: `  swatch roles theme.json
  swatch roles Ocean --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := a.loadPalette(args[0])
			if err != nil {
				return err
			}
			roles := colour.MapPaletteToRoles(loaded.Palette)

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), roles)
			}

			table := NewTable("Role", "Background", "On", "Ratio")
			for _, pair := range roles.Pairs() {
				bg := roles.Get(pair.Background)
				ratio, _ := colour.Contrast(pair.Foreground, bg)
				table.AddRow(pair.Name, bg, pair.Foreground, fmt.Sprintf("%.2f:1", ratio))
			}
			table.Fprint(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the palette and on-colours as JSON")
	return cmd
}
