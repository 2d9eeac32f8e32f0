// Package input defines the plugins that produce the palette a generate run starts from.
package input

import (
	"context"
	"slices"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/scheme"
)

// GenerateOptions holds the per-run state passed to input plugins.
type GenerateOptions struct {
	// Request carries scheme, mode, current palette, locks and accessibility.
	Request scheme.Request

	// Generator is the seeded palette generator for this run.
	Generator *scheme.Generator

	// Logger receives plugin diagnostics.
	Logger hclog.Logger
}

// Log returns the options' logger, or a null logger.
func (o GenerateOptions) Log() hclog.Logger {
	if o.Logger == nil {
		return hclog.NewNullLogger()
	}
	return o.Logger
}

// Plugin produces a complete palette.
type Plugin interface {
	// Name returns the plugin's name (e.g., "scheme", "file").
	Name() string

	// Description returns a human-readable description of the plugin.
	Description() string

	// Generate returns a palette with all 15 roles set.
	Generate(ctx context.Context, opts GenerateOptions) (colour.Palette, error)

	// RegisterFlags registers plugin-specific flags with the cobra command.
	RegisterFlags(cmd *cobra.Command)

	// Validate checks if the plugin has all required inputs configured.
	Validate() error
}

// Registry holds all registered input plugins.
type Registry struct {
	plugins map[string]Plugin
}

// NewRegistry creates a new input plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin to the registry, replacing any plugin with the same name.
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

// All returns a copy of the registered plugins keyed by name.
func (r *Registry) All() map[string]Plugin {
	plugins := make(map[string]Plugin, len(r.plugins))
	for name, plugin := range r.plugins {
		plugins[name] = plugin
	}
	return plugins
}
