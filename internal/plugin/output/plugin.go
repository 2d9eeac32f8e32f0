// Package output provides the interface and base types for output plugins.
package output

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
)

// Theme is everything an output plugin renders: the palette, its derived
// foregrounds and its HSL design tokens.
type Theme struct {
	Name        string
	Mode        string
	Scheme      string
	MinContrast float64
	Palette     colour.Palette
	Roles       colour.ColorRoles
	Tokens      []colour.Token
}

// NewTheme derives roles and tokens from a complete palette.
func NewTheme(name, mode, scheme string, p colour.Palette, minContrast float64) (*Theme, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if minContrast <= 0 {
		minContrast = colour.MinContrastAA
	}
	if name == "" {
		name = "swatch"
	}
	return &Theme{
		Name:        name,
		Mode:        mode,
		Scheme:      scheme,
		MinContrast: minContrast,
		Palette:     p,
		Roles:       colour.MapPaletteToRoles(p),
		Tokens:      colour.DesignTokens(p, minContrast),
	}, nil
}

// Dark reports whether the theme is a dark-mode theme.
func (t *Theme) Dark() bool {
	return t.Mode == "dark"
}

// Plugin renders a theme into one or more files.
type Plugin interface {
	// Name returns the plugin's name (e.g., "css", "tailwind").
	Name() string

	// Description returns a human-readable description of the plugin.
	Description() string

	// Generate returns a map of filename -> content.
	Generate(theme *Theme) (map[string][]byte, error)

	// RegisterFlags registers plugin-specific flags with cobra command.
	RegisterFlags(cmd *cobra.Command)

	// Validate checks if the plugin configuration is valid.
	Validate() error

	// DefaultOutputDir returns the default output directory for this plugin.
	DefaultOutputDir() string
}

// ErrNilTheme is returned by plugins asked to render nothing.
var ErrNilTheme = fmt.Errorf("theme cannot be nil")

// Registry holds all registered output plugins.
type Registry struct {
	plugins map[string]Plugin
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin to the registry.
func (r *Registry) Register(plugin Plugin) {
	r.plugins[plugin.Name()] = plugin
}

// Get retrieves a plugin by name.
func (r *Registry) Get(name string) (Plugin, bool) {
	plugin, ok := r.plugins[name]
	return plugin, ok
}

// List returns all registered plugin names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// All returns all registered plugins (including disabled ones).
func (r *Registry) All() map[string]Plugin {
	plugins := make(map[string]Plugin, len(r.plugins))
	for name, plugin := range r.plugins {
		plugins[name] = plugin
	}
	return plugins
}

// Document is the serialisable form of a theme used by the data exporters.
type Document struct {
	Name        string            `json:"name" yaml:"name"`
	Mode        string            `json:"mode" yaml:"mode"`
	Scheme      string            `json:"scheme,omitempty" yaml:"scheme,omitempty"`
	MinContrast float64           `json:"minContrast" yaml:"min_contrast"`
	Palette     colour.Palette    `json:"palette" yaml:"palette"`
	OnColours   map[string]string `json:"onColours" yaml:"on_colours"`
	Tokens      []TokenDocument   `json:"tokens" yaml:"tokens"`
}

// TokenDocument is one design token in a Document.
type TokenDocument struct {
	Name       string `json:"name" yaml:"name"`
	Role       string `json:"role" yaml:"role"`
	HSL        string `json:"hsl" yaml:"hsl"`
	Hex        string `json:"hex" yaml:"hex"`
	Foreground string `json:"foreground,omitempty" yaml:"foreground,omitempty"`
}

// Document flattens the theme for serialisation.
func (t *Theme) Document() Document {
	doc := Document{
		Name:        t.Name,
		Mode:        t.Mode,
		Scheme:      t.Scheme,
		MinContrast: t.MinContrast,
		Palette:     t.Palette,
		OnColours:   make(map[string]string),
	}
	for _, pair := range t.Roles.Pairs() {
		doc.OnColours[pair.Name] = pair.Foreground
	}
	for _, tok := range t.Tokens {
		doc.Tokens = append(doc.Tokens, TokenDocument{
			Name:       tok.Name,
			Role:       string(tok.Role),
			HSL:        tok.CSSValue(),
			Hex:        t.Palette.Get(tok.Role),
			Foreground: tok.Foreground,
		})
	}
	return doc
}
