// Package json provides an output plugin that exports the theme as JSON.
package json

import (
	stdjson "encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/plugin/output"
)

// Plugin implements the output.Plugin interface for JSON export.
type Plugin struct {
	outputDir   string
	filename    string
	paletteOnly bool
	compact     bool
}

// New creates a new JSON output plugin.
func New() *Plugin {
	return &Plugin{filename: "swatch.json"}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "json"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Export the palette, on-colours and design tokens as JSON"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.outputDir, "json.output-dir", "", "Output directory (default: --output-dir)")
	cmd.Flags().StringVar(&p.filename, "json.filename", p.filename, "Output file name")
	cmd.Flags().BoolVar(&p.paletteOnly, "json.palette-only", false, "Write only the 15 palette roles")
	cmd.Flags().BoolVar(&p.compact, "json.compact", false, "Write compact JSON without indentation")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if p.filename == "" {
		return fmt.Errorf("JSON file name must not be empty")
	}
	return nil
}

// DefaultOutputDir returns the plugin's output directory, or "" to use the
// command's --output-dir.
func (p *Plugin) DefaultOutputDir() string {
	return p.outputDir
}

// Generate encodes the theme.
func (p *Plugin) Generate(theme *output.Theme) (map[string][]byte, error) {
	if theme == nil {
		return nil, output.ErrNilTheme
	}

	var v any = theme.Document()
	if p.paletteOnly {
		v = theme.Palette
	}

	var (
		data []byte
		err  error
	)
	if p.compact {
		data, err = stdjson.Marshal(v)
	} else {
		data, err = stdjson.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode theme: %w", err)
	}
	return map[string][]byte{p.filename: append(data, '\n')}, nil
}
