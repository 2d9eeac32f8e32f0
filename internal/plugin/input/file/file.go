// Package file provides an input plugin for loading palettes from files or manual
// role=hex specifications.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/plugin/input"
)

// Plugin implements the input.Plugin interface for file-based palette loading.
type Plugin struct {
	path            string
	colourOverrides []string
}

// New creates a new file input plugin.
func New() *Plugin {
	return &Plugin{
		colourOverrides: []string{},
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "file"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Load a palette from a JSON, YAML or role=hex text file"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.path, "file.path", "", "Path to palette file (JSON, YAML or role=hex text)")
	cmd.Flags().StringArrayVar(&p.colourOverrides, "colour", []string{}, "Colour override (role=hex, repeatable)")
}

// Validate checks if the plugin has all required inputs configured.
func (p *Plugin) Validate() error {
	if p.path == "" && len(p.colourOverrides) == 0 {
		return fmt.Errorf("must provide either --file.path or --colour specifications")
	}
	for _, override := range p.colourOverrides {
		if !strings.Contains(override, "=") {
			return fmt.Errorf("invalid colour format '%s': expected 'role=hex'", override)
		}
	}
	return nil
}

// Generate builds a palette from the current palette (when complete), the file
// and the overrides, in that order. The result must define every role.
func (p *Plugin) Generate(_ context.Context, opts input.GenerateOptions) (colour.Palette, error) {
	values := make(map[string]string)
	if current := opts.Request.Current; current.Validate() == nil {
		for role, hex := range current.Map() {
			values[string(role)] = hex
		}
	}

	if p.path != "" {
		loaded, err := LoadFile(p.path)
		if err != nil {
			return colour.Palette{}, fmt.Errorf("failed to load palette file: %w", err)
		}
		for role, hex := range loaded {
			values[string(role)] = hex
		}
		opts.Log().Debug("loaded palette file", "path", p.path, "roles", len(loaded))
	}

	overrides, err := ParseAssignments(p.colourOverrides)
	if err != nil {
		return colour.Palette{}, fmt.Errorf("failed to apply colour overrides: %w", err)
	}
	for role, hex := range overrides {
		values[string(role)] = hex
	}

	return colour.PaletteFromMap(values)
}

// LoadFile reads role colours from a file. JSON may be a flat role map or a saved
// record with an "originalPalette" object; .yaml and .yml files are role maps;
// anything else is parsed as role=hex lines.
func LoadFile(path string) (map[colour.Role]string, error) {
	data, err := os.ReadFile(path) // #nosec G304 - user-specified input file, intended to be read
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return parseJSON(data)
	case ".yaml", ".yml":
		var raw map[string]string
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse YAML palette: %w", err)
		}
		return rolesFromMap(raw)
	}

	// Unknown extension: JSON first, then text.
	if roles, err := parseJSON(data); err == nil {
		return roles, nil
	}
	return ParseText(string(data))
}

// LoadPalette reads a file with LoadFile and requires every role to be present.
func LoadPalette(path string) (colour.Palette, error) {
	roles, err := LoadFile(path)
	if err != nil {
		return colour.Palette{}, err
	}
	values := make(map[string]string, len(roles))
	for role, hex := range roles {
		values[string(role)] = hex
	}
	return colour.PaletteFromMap(values)
}

func parseJSON(data []byte) (map[colour.Role]string, error) {
	var record struct {
		OriginalPalette map[string]string `json:"originalPalette"`
	}
	if err := json.Unmarshal(data, &record); err == nil && len(record.OriginalPalette) > 0 {
		return rolesFromMap(record.OriginalPalette)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON palette: %w", err)
	}
	return rolesFromMap(raw)
}

func rolesFromMap(raw map[string]string) (map[colour.Role]string, error) {
	roles := make(map[colour.Role]string, len(raw))
	for name, hex := range raw {
		role, err := colour.ParseRole(name)
		if err != nil {
			return nil, err
		}
		norm, err := colour.NormaliseHex(hex)
		if err != nil {
			return nil, fmt.Errorf("role %s: %w", role, err)
		}
		roles[role] = norm
	}
	return roles, nil
}

// ParseText parses role=hex lines. Blank lines and lines starting with "#" or
// "//" are ignored.
func ParseText(content string) (map[colour.Role]string, error) {
	roles := make(map[colour.Role]string)
	for lineNum, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		name, hex, ok := strings.Cut(line, "=")
		if !ok {
			name, hex, ok = strings.Cut(line, ":")
		}
		if !ok {
			return nil, fmt.Errorf("line %d: invalid format, expected 'role=hex'", lineNum+1)
		}

		role, err := colour.ParseRole(name)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum+1, err)
		}
		norm, err := colour.NormaliseHex(strings.TrimSpace(hex))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid hex colour '%s': %w", lineNum+1, strings.TrimSpace(hex), err)
		}
		roles[role] = norm
	}
	return roles, nil
}

// ParseAssignments parses role=hex overrides.
func ParseAssignments(assignments []string) (map[colour.Role]string, error) {
	roles := make(map[colour.Role]string, len(assignments))
	for _, a := range assignments {
		name, hex, ok := strings.Cut(a, "=")
		if !ok {
			return nil, fmt.Errorf("invalid override format '%s': expected 'role=hex'", a)
		}
		role, err := colour.ParseRole(name)
		if err != nil {
			return nil, err
		}
		norm, err := colour.NormaliseHex(strings.TrimSpace(hex))
		if err != nil {
			return nil, fmt.Errorf("invalid hex colour '%s': %w", strings.TrimSpace(hex), err)
		}
		roles[role] = norm
	}
	return roles, nil
}
