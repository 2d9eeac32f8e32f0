// Package manager provides plugin management with configuration support.
package manager

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/swatch/internal/plugin/input"
	aiinput "github.com/jmylchreest/swatch/internal/plugin/input/ai"
	"github.com/jmylchreest/swatch/internal/plugin/input/file"
	"github.com/jmylchreest/swatch/internal/plugin/input/remotecss"
	"github.com/jmylchreest/swatch/internal/plugin/input/remotejson"
	schemeinput "github.com/jmylchreest/swatch/internal/plugin/input/scheme"
	"github.com/jmylchreest/swatch/internal/plugin/output"
	"github.com/jmylchreest/swatch/internal/plugin/output/css"
	jsonoutput "github.com/jmylchreest/swatch/internal/plugin/output/json"
	"github.com/jmylchreest/swatch/internal/plugin/output/tailwind"
	yamloutput "github.com/jmylchreest/swatch/internal/plugin/output/yaml"
)

// Environment variables read by WithEnvConfig.
const (
	EnvDisabledPlugins = "SWATCH_DISABLED_PLUGINS"
	EnvEnabledPlugins  = "SWATCH_ENABLED_PLUGINS"
)

// Config holds plugin configuration.
type Config struct {
	// DisabledPlugins is a list of plugin names to disable.
	// Format: "plugin_type:plugin_name" (e.g., "output:tailwind", "input:ai").
	DisabledPlugins []string

	// EnabledPlugins is a list of plugin names to explicitly enable.
	// If set, only these plugins are enabled (whitelist mode).
	EnabledPlugins []string
}

// Builder provides a fluent interface for constructing a Manager with configuration.
type Builder struct {
	config         Config
	inputRegistry  *input.Registry
	outputRegistry *output.Registry
	useEnv         bool
	aiFactory      aiinput.ServiceFactory
	logger         hclog.Logger
}

// NewBuilder creates a new Manager builder with default settings.
func NewBuilder() *Builder {
	return &Builder{
		inputRegistry:  input.NewRegistry(),
		outputRegistry: output.NewRegistry(),
		logger:         hclog.NewNullLogger(),
	}
}

// WithConfig sets the configuration for the manager.
func (b *Builder) WithConfig(config Config) *Builder {
	b.config = config
	return b
}

// WithEnvConfig loads configuration from environment variables.
// Reads SWATCH_DISABLED_PLUGINS and SWATCH_ENABLED_PLUGINS.
func (b *Builder) WithEnvConfig() *Builder {
	b.useEnv = true
	return b
}

// WithCustomRegistries allows providing custom plugin registries (useful for testing).
func (b *Builder) WithCustomRegistries(inputReg *input.Registry, outputReg *output.Registry) *Builder {
	b.inputRegistry = inputReg
	b.outputRegistry = outputReg
	return b
}

// WithAIFactory sets how the ai input plugin obtains its palette service.
// Without it the ai plugin reports itself unconfigured.
func (b *Builder) WithAIFactory(factory aiinput.ServiceFactory) *Builder {
	b.aiFactory = factory
	return b
}

// WithLogger sets the logger handed to plugins that accept one.
func (b *Builder) WithLogger(logger hclog.Logger) *Builder {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// Build constructs the Manager with the configured settings.
// Environment lists replace the corresponding configured list.
func (b *Builder) Build() *Manager {
	config := b.config

	if b.useEnv {
		if disabled := os.Getenv(EnvDisabledPlugins); disabled != "" {
			config.DisabledPlugins = ParsePluginList(disabled)
		}
		if enabled := os.Getenv(EnvEnabledPlugins); enabled != "" {
			config.EnabledPlugins = ParsePluginList(enabled)
		}
	}

	m := &Manager{
		config:         config,
		inputRegistry:  b.inputRegistry,
		outputRegistry: b.outputRegistry,
	}
	m.registerBuiltinPlugins(b)
	return m
}

// Manager manages plugin enable/disable state and owns plugin registries.
type Manager struct {
	config         Config
	inputRegistry  *input.Registry
	outputRegistry *output.Registry
}

// loggerSetter is implemented by plugins that resolve templates.
type loggerSetter interface {
	SetLogger(hclog.Logger)
}

// registerBuiltinPlugins registers all built-in plugins.
func (m *Manager) registerBuiltinPlugins(b *Builder) {
	m.inputRegistry.Register(schemeinput.New())
	m.inputRegistry.Register(file.New())
	m.inputRegistry.Register(remotejson.New())
	m.inputRegistry.Register(remotecss.New())
	m.inputRegistry.Register(aiinput.New(b.aiFactory))

	outputs := []output.Plugin{
		css.New(),
		tailwind.New(),
		jsonoutput.New(),
		yamloutput.New(),
	}
	for _, p := range outputs {
		if ls, ok := p.(loggerSetter); ok {
			ls.SetLogger(b.logger.Named("output").Named(p.Name()))
		}
		m.outputRegistry.Register(p)
	}
}

// InputRegistry returns the input plugin registry.
func (m *Manager) InputRegistry() *input.Registry {
	return m.inputRegistry
}

// OutputRegistry returns the output plugin registry.
func (m *Manager) OutputRegistry() *output.Registry {
	return m.outputRegistry
}

// GetInputPlugin retrieves an input plugin by name.
func (m *Manager) GetInputPlugin(name string) (input.Plugin, bool) {
	return m.inputRegistry.Get(name)
}

// GetOutputPlugin retrieves an output plugin by name.
func (m *Manager) GetOutputPlugin(name string) (output.Plugin, bool) {
	return m.outputRegistry.Get(name)
}

// IsInputEnabled checks if an input plugin is enabled.
func (m *Manager) IsInputEnabled(plugin input.Plugin) bool {
	return m.isEnabled("input", plugin.Name())
}

// IsOutputEnabled checks if an output plugin is enabled.
func (m *Manager) IsOutputEnabled(plugin output.Plugin) bool {
	return m.isEnabled("output", plugin.Name())
}

// isEnabled determines if a plugin is enabled based on configuration.
// Without any lists every built-in plugin is enabled.
func (m *Manager) isEnabled(pluginType, name string) bool {
	fullName := fmt.Sprintf("%s:%s", pluginType, name)

	// "all" in the disabled list takes precedence over everything.
	if slices.Contains(m.config.DisabledPlugins, "all") {
		return false
	}

	for _, disabled := range m.config.DisabledPlugins {
		if disabled == fullName || disabled == name {
			return false
		}
	}

	if len(m.config.EnabledPlugins) == 0 || slices.Contains(m.config.EnabledPlugins, "all") {
		return true
	}

	for _, enabled := range m.config.EnabledPlugins {
		if enabled == fullName || enabled == name {
			return true
		}
	}
	return false
}

// ListOutputPlugins returns the sorted names of enabled output plugins.
func (m *Manager) ListOutputPlugins() []string {
	names := []string{}
	for _, name := range m.outputRegistry.List() {
		if p, _ := m.outputRegistry.Get(name); m.IsOutputEnabled(p) {
			names = append(names, name)
		}
	}
	return names
}

// EnabledInput returns the named input plugin, or an error when it is unknown
// or disabled.
func (m *Manager) EnabledInput(name string) (input.Plugin, error) {
	p, ok := m.inputRegistry.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown input plugin: %s (available: %s)", name, strings.Join(m.inputRegistry.List(), ", "))
	}
	if !m.IsInputEnabled(p) {
		return nil, fmt.Errorf("input plugin %s is disabled", name)
	}
	return p, nil
}

// EnabledOutputs resolves a list of output plugin names, rejecting unknown or
// disabled ones. Duplicates are removed.
func (m *Manager) EnabledOutputs(names []string) ([]output.Plugin, error) {
	var (
		plugins []output.Plugin
		seen    = make(map[string]bool)
	)
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		p, ok := m.outputRegistry.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown output plugin: %s (available: %s)", name, strings.Join(m.outputRegistry.List(), ", "))
		}
		if !m.IsOutputEnabled(p) {
			return nil, fmt.Errorf("output plugin %s is disabled", name)
		}
		plugins = append(plugins, p)
	}
	return plugins, nil
}

// AllInputPlugins returns all registered input plugins (including disabled).
func (m *Manager) AllInputPlugins() map[string]input.Plugin {
	return m.inputRegistry.All()
}

// AllOutputPlugins returns all registered output plugins (including disabled).
func (m *Manager) AllOutputPlugins() map[string]output.Plugin {
	return m.outputRegistry.All()
}

// UpdateConfig updates the manager's configuration without recreating plugin instances.
// This preserves flag bindings and other plugin state.
func (m *Manager) UpdateConfig(config Config) {
	m.config = config
}

// GetConfig returns the current configuration.
func (m *Manager) GetConfig() Config {
	return m.config
}

// SetDisabled disables a plugin. It is removed from the enabled list unless
// that would empty the list and leave whitelist mode.
func (m *Manager) SetDisabled(pluginType, name string) {
	fullName := fmt.Sprintf("%s:%s", pluginType, name)
	matches := func(s string) bool { return s == fullName || s == name }

	if remaining := slices.DeleteFunc(slices.Clone(m.config.EnabledPlugins), matches); len(remaining) > 0 {
		m.config.EnabledPlugins = remaining
	}
	if !slices.ContainsFunc(m.config.DisabledPlugins, matches) {
		m.config.DisabledPlugins = append(m.config.DisabledPlugins, fullName)
	}
}

// SetEnabled enables a plugin. Without a whitelist only the disabled list
// changes; with one the plugin is added to it. Enabling a plugin while "all"
// is disabled switches to a whitelist holding just that plugin.
func (m *Manager) SetEnabled(pluginType, name string) {
	fullName := fmt.Sprintf("%s:%s", pluginType, name)
	matches := func(s string) bool { return s == fullName || s == name }

	if slices.Contains(m.config.DisabledPlugins, "all") {
		m.config.DisabledPlugins = slices.DeleteFunc(m.config.DisabledPlugins, func(s string) bool { return s == "all" })
		m.config.EnabledPlugins = []string{fullName}
	}
	m.config.DisabledPlugins = slices.DeleteFunc(m.config.DisabledPlugins, matches)

	whitelist := len(m.config.EnabledPlugins) > 0 && !slices.Contains(m.config.EnabledPlugins, "all")
	if whitelist && !slices.ContainsFunc(m.config.EnabledPlugins, matches) {
		m.config.EnabledPlugins = append(m.config.EnabledPlugins, fullName)
	}
}

// Resolve splits a plugin reference ("yaml" or "output:yaml") into its type
// and name. A bare name registered as both an input and an output is ambiguous.
func (m *Manager) Resolve(ref string) (pluginType, name string, err error) {
	ref = strings.TrimSpace(ref)
	if typ, n, ok := strings.Cut(ref, ":"); ok {
		switch typ {
		case "input":
			if _, found := m.GetInputPlugin(n); !found {
				return "", "", fmt.Errorf("unknown input plugin: %s", n)
			}
		case "output":
			if _, found := m.GetOutputPlugin(n); !found {
				return "", "", fmt.Errorf("unknown output plugin: %s", n)
			}
		default:
			return "", "", fmt.Errorf("unknown plugin type %q in %s (use input or output)", typ, ref)
		}
		return typ, n, nil
	}

	_, isInput := m.GetInputPlugin(ref)
	_, isOutput := m.GetOutputPlugin(ref)
	switch {
	case isInput && isOutput:
		return "", "", fmt.Errorf("plugin %s is both an input and an output; use input:%s or output:%s", ref, ref, ref)
	case isInput:
		return "input", ref, nil
	case isOutput:
		return "output", ref, nil
	default:
		return "", "", fmt.Errorf("unknown plugin: %s", ref)
	}
}

// ParsePluginList parses a comma-separated list of plugin names.
// Handles formats like "tailwind", "output:tailwind", "input:ai,output:tailwind".
func ParsePluginList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
