// Package ai provides an input plugin that asks a generative model for a palette.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/ai"
	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/plugin/input"
)

// ServiceFactory builds the AI service on first use, so runs that never select
// this plugin need no credentials.
type ServiceFactory func(ctx context.Context) (ai.Service, error)

// Plugin implements the input.Plugin interface on top of an ai.Service.
type Plugin struct {
	prompt  string
	factory ServiceFactory
	service ai.Service
}

// New creates a new AI input plugin.
func New(factory ServiceFactory) *Plugin {
	return &Plugin{factory: factory}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "ai"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Generate a palette from a text description with Google Gen AI"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.prompt, "ai.prompt", "", "Description of the site or brand to design a palette for")
}

// Validate checks if the plugin has all required inputs configured.
func (p *Plugin) Validate() error {
	if strings.TrimSpace(p.prompt) == "" {
		return fmt.Errorf("--ai.prompt is required")
	}
	if p.factory == nil {
		return fmt.Errorf("AI service is not configured")
	}
	return nil
}

// Generate requests a palette and restores locked roles from the current palette.
func (p *Plugin) Generate(ctx context.Context, opts input.GenerateOptions) (colour.Palette, error) {
	if p.service == nil {
		if p.factory == nil {
			return colour.Palette{}, fmt.Errorf("AI service is not configured")
		}
		svc, err := p.factory(ctx)
		if err != nil {
			return colour.Palette{}, err
		}
		p.service = svc
	}

	opts.Log().Info("requesting palette from AI service", "dark", opts.Request.Dark)
	palette, err := p.service.GeneratePalette(ctx, p.prompt, opts.Request.Dark)
	if err != nil {
		return colour.Palette{}, err
	}
	return opts.Request.Locked.Apply(palette, opts.Request.Current), nil
}
