// Package remotejson provides an input plugin for fetching palettes from remote
// JSON documents.
package remotejson

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/plugin/input"
	"github.com/jmylchreest/swatch/internal/security"
	httputil "github.com/jmylchreest/swatch/internal/util/http"
)

// Plugin implements the input.Plugin interface for remote JSON palette fetching.
type Plugin struct {
	url          string
	query        string            // path to the palette object (optional)
	timeout      time.Duration
	mapping      map[string]string // source key -> role
	allowPrivate bool
}

// New creates a new remote-json input plugin.
func New() *Plugin {
	return &Plugin{
		timeout: httputil.DefaultTimeout,
		mapping: make(map[string]string),
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "remote-json"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Fetch a palette from a remote JSON document"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.url, "remote-json.url", "", "URL to fetch the JSON palette from (required)")
	cmd.Flags().StringVar(&p.query, "remote-json.query", "", "Path to the palette object (e.g. '$.theme.colors')")
	cmd.Flags().DurationVar(&p.timeout, "remote-json.timeout", p.timeout, "HTTP timeout")
	cmd.Flags().StringToStringVar(&p.mapping, "remote-json.map", map[string]string{}, "Map source keys to roles (e.g. primary=brand,base=section-bg-1)")
	cmd.Flags().BoolVar(&p.allowPrivate, "remote-json.allow-private", p.allowPrivate, "Allow http:// and private or loopback hosts")
}

// Validate checks if the plugin has all required inputs configured.
func (p *Plugin) Validate() error {
	if p.url == "" {
		return fmt.Errorf("--remote-json.url is required")
	}
	if err := security.ValidateHTTPURL(p.url, p.policy()); err != nil {
		return err
	}
	for source, role := range p.mapping {
		if _, err := colour.ParseRole(role); err != nil {
			return fmt.Errorf("invalid mapping %s=%s: %w", source, role, err)
		}
	}
	return nil
}

func (p *Plugin) policy() security.URLPolicy {
	return security.URLPolicy{AllowHTTP: p.allowPrivate, AllowPrivate: p.allowPrivate}
}

// Generate fetches the document and builds a palette from its colours. Roles the
// document does not define are taken from the current palette when it is complete.
func (p *Plugin) Generate(ctx context.Context, opts input.GenerateOptions) (colour.Palette, error) {
	log := opts.Log().With("url", p.url)
	log.Debug("fetching JSON palette")

	content, err := httputil.Fetch(ctx, p.url, httputil.FetchOptions{
		Timeout: p.timeout,
		Policy:  p.policy(),
	})
	if err != nil {
		return colour.Palette{}, fmt.Errorf("failed to fetch palette: %w", err)
	}

	colors, err := p.parseJSON(content)
	if err != nil {
		return colour.Palette{}, fmt.Errorf("failed to parse JSON: %w", err)
	}
	log.Debug("extracted colours", "bytes", len(content), "count", len(colors))

	values := make(map[string]string)
	if current := opts.Request.Current; current.Validate() == nil {
		for role, hex := range current.Map() {
			values[string(role)] = hex
		}
	}
	if err := p.applyColours(colors, values, log.Trace); err != nil {
		return colour.Palette{}, err
	}
	return colour.PaletteFromMap(values)
}

// parseJSON decodes content, applies the query and collects hex strings by key.
func (p *Plugin) parseJSON(content []byte) (map[string]string, error) {
	var data any
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, err
	}

	if p.query != "" {
		var err error
		data, err = applyQuery(data, p.query)
		if err != nil {
			return nil, fmt.Errorf("query failed: %w", err)
		}
	}

	colors := make(map[string]string)
	extractColors(data, "", colors)
	if len(colors) == 0 {
		return nil, fmt.Errorf("no colors extracted")
	}
	return colors, nil
}

// applyColours writes each extracted colour to its role: mapped keys first, then
// keys that are role names themselves.
func (p *Plugin) applyColours(colors, values map[string]string, trace func(string, ...any)) error {
	for source, target := range p.mapping {
		hex, ok := colors[source]
		if !ok {
			trace("mapped key not found in source", "key", source)
			continue
		}
		role, err := colour.ParseRole(target)
		if err != nil {
			return fmt.Errorf("invalid role '%s': %w", target, err)
		}
		norm, err := colour.NormaliseHex(hex)
		if err != nil {
			return fmt.Errorf("colour %s: %w", source, err)
		}
		values[string(role)] = norm
	}

	for key, hex := range colors {
		if _, mapped := p.mapping[key]; mapped {
			continue
		}
		role, err := colour.ParseRole(key)
		if err != nil {
			trace("skipping key with no role", "key", key)
			continue
		}
		norm, err := colour.NormaliseHex(hex)
		if err != nil {
			return fmt.Errorf("colour %s: %w", key, err)
		}
		values[string(role)] = norm
	}
	return nil
}

// applyQuery navigates a dotted path such as "$.theme.colors".
func applyQuery(data any, query string) (any, error) {
	query = strings.TrimPrefix(query, "$.")
	query = strings.TrimPrefix(query, "$")
	if query == "" {
		return data, nil
	}

	current := data
	for _, segment := range strings.Split(query, ".") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("cannot navigate into %T at segment '%s'", current, segment)
		}
		val, ok := obj[segment]
		if !ok {
			return nil, fmt.Errorf("path not found: %s", segment)
		}
		current = val
	}
	return current, nil
}

// extractColors collects hex strings keyed by the last path segment. Objects
// shaped like {"hex": "#..."} count as a single colour.
func extractColors(data any, key string, colors map[string]string) {
	switch v := data.(type) {
	case map[string]any:
		if hexVal, ok := v["hex"].(string); ok && colour.IsHex(hexVal) && key != "" {
			colors[key] = hexVal
			return
		}
		for k, value := range v {
			extractColors(value, k, colors)
		}
	case []any:
		for i, item := range v {
			extractColors(item, fmt.Sprintf("%s[%d]", key, i), colors)
		}
	case string:
		if key != "" && colour.IsHex(strings.TrimSpace(v)) && strings.HasPrefix(strings.TrimSpace(v), "#") {
			colors[key] = strings.TrimSpace(v)
		}
	}
}
