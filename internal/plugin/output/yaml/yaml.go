// Package yaml provides an output plugin that exports the theme as YAML.
package yaml

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/jmylchreest/swatch/internal/plugin/output"
)

// Plugin implements the output.Plugin interface for YAML export.
type Plugin struct {
	outputDir   string
	filename    string
	paletteOnly bool
	indent      int
}

// New creates a new YAML output plugin.
func New() *Plugin {
	return &Plugin{filename: "swatch.yaml", indent: 2}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "yaml"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Export the palette, on-colours and design tokens as YAML"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.outputDir, "yaml.output-dir", "", "Output directory (default: --output-dir)")
	cmd.Flags().StringVar(&p.filename, "yaml.filename", p.filename, "Output file name")
	cmd.Flags().BoolVar(&p.paletteOnly, "yaml.palette-only", false, "Write only the 15 palette roles")
	cmd.Flags().IntVar(&p.indent, "yaml.indent", p.indent, "Indentation width")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if p.filename == "" {
		return fmt.Errorf("YAML file name must not be empty")
	}
	if p.indent < 2 || p.indent > 8 {
		return fmt.Errorf("invalid YAML indent: %d (must be between 2 and 8)", p.indent)
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

	var buf bytes.Buffer
	enc := yamlv3.NewEncoder(&buf)
	enc.SetIndent(p.indent)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode theme: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode theme: %w", err)
	}
	return map[string][]byte{p.filename: buf.Bytes()}, nil
}
