// Package scheme provides the default input plugin, which draws palettes from the
// colour-theory generators.
package scheme

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/plugin/input"
	"github.com/jmylchreest/swatch/internal/scheme"
)

// Plugin generates palettes with scheme.Generator. Scheme, mode, locks and the
// accessibility flag arrive through GenerateOptions.Request.
type Plugin struct{}

// New creates a new scheme input plugin.
func New() *Plugin {
	return &Plugin{}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "scheme"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Generate a palette from a colour-theory scheme (default)"
}

// RegisterFlags has nothing to register; the generate command owns the scheme flags.
func (p *Plugin) RegisterFlags(_ *cobra.Command) {}

// Validate always succeeds.
func (p *Plugin) Validate() error {
	return nil
}

// Generate runs the lock-aware orchestrator.
func (p *Plugin) Generate(_ context.Context, opts input.GenerateOptions) (colour.Palette, error) {
	if opts.Generator == nil {
		return colour.Palette{}, fmt.Errorf("scheme input requires a generator")
	}
	req := opts.Request
	if req.Scheme == "" {
		req.Scheme = scheme.TypeRandom
	}

	opts.Log().Debug("generating palette",
		"scheme", req.Scheme,
		"dark", req.Dark,
		"locked", req.Locked.String(),
		"accessible", req.Accessible,
		"mood", req.PreserveMood,
	)
	return opts.Generator.GenerateWithLocks(req)
}
