package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/config"
	"github.com/jmylchreest/swatch/internal/plugin/manager"
	tmplloader "github.com/jmylchreest/swatch/internal/plugin/output/template"
)

// templateProvider is implemented by output plugins that render templates.
type templateProvider interface {
	Loader() *tmplloader.Loader
}

func (a *app) pluginsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "plugins",
		Aliases: []string{"plugin"},
		Short:   "Inspect, enable and disable input and output plugins",
		Long: `List the built-in plugins, enable or disable them, and manage output templates.

Plugins are enabled unless disabled in the config file ("plugins.disabled") or
through SWATCH_DISABLED_PLUGINS. Setting "plugins.enabled" or
SWATCH_ENABLED_PLUGINS switches to whitelist mode. Entries are plugin names,
optionally prefixed with their type ("output:yaml"), or "all".`,
	}
	cmd.AddCommand(
		a.pluginsListCmd(),
		a.pluginsToggleCmd(true),
		a.pluginsToggleCmd(false),
		a.pluginsTemplatesCmd(),
	)
	return cmd
}

func (a *app) pluginsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List plugins and whether they are enabled",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := NewTable("Type", "Name", "Status", "Description")

			inputs := a.plugins.InputRegistry()
			for _, name := range inputs.List() {
				p, _ := inputs.Get(name)
				table.AddRow("input", name, enabledLabel(a.plugins.IsInputEnabled(p)), p.Description())
			}
			outputs := a.plugins.OutputRegistry()
			for _, name := range outputs.List() {
				p, _ := outputs.Get(name)
				table.AddRow("output", name, enabledLabel(a.plugins.IsOutputEnabled(p)), p.Description())
			}

			table.FitLastColumn(terminalWidth(cmd.OutOrStdout()))
			table.Fprint(cmd.OutOrStdout())
			return nil
		},
	}
}

// pluginsToggleCmd builds "plugins enable" or "plugins disable". The change is
// written to the plugins section of the config file.
func (a *app) pluginsToggleCmd(enable bool) *cobra.Command {
	verb := "disable"
	if enable {
		verb = "enable"
	}
	return &cobra.Command{
		Use:   verb + " <plugin>...",
		Short: strings.ToUpper(verb[:1]) + verb[1:] + " plugins in the config file",
		Long: `Plugins are named as in "swatch plugins list", optionally prefixed with
their type ("output:yaml"). The change is saved to the config file; environment
lists (SWATCH_ENABLED_PLUGINS, SWATCH_DISABLED_PLUGINS) still take precedence.`,
		Example: fmt.Sprintf("  swatch plugins %[1]s ai\n  swatch plugins %[1]s output:yaml output:tailwind", verb),
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Environment lists are not persisted.
			a.plugins.UpdateConfig(manager.Config{
				EnabledPlugins:  slices.Clone(a.cfg.Plugins.Enabled),
				DisabledPlugins: slices.Clone(a.cfg.Plugins.Disabled),
			})
			for _, ref := range args {
				typ, name, err := a.plugins.Resolve(ref)
				if err != nil {
					return err
				}
				if enable {
					a.plugins.SetEnabled(typ, name)
				} else {
					a.plugins.SetDisabled(typ, name)
				}
			}

			pc := a.plugins.GetConfig()
			path := firstNonEmpty(a.cfg.Path, a.configPath, os.Getenv(config.EnvConfig), config.DefaultPath())
			if path == "" {
				return fmt.Errorf("no config file location; pass --config")
			}
			if err := config.SavePlugins(path, config.PluginConfig{Enabled: pc.EnabledPlugins, Disabled: pc.DisabledPlugins}); err != nil {
				return err
			}
			a.logger.Debug("saved plugin lists", "path", path, "enabled", pc.EnabledPlugins, "disabled", pc.DisabledPlugins)
			a.status(cmd, "✓ %sd %s in %s", verb, strings.Join(args, ", "), path)

			for _, key := range []string{manager.EnvEnabledPlugins, manager.EnvDisabledPlugins} {
				if os.Getenv(key) != "" {
					a.logger.Warn("environment plugin list overrides the config file", "env", key)
					a.status(cmd, "⚠ %s is set and overrides the config file", key)
				}
			}
			return nil
		},
	}
}

func (a *app) pluginsTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage output plugin templates",
		Long: `Templates can be customised by dumping them to
~/.config/swatch/templates/{plugin}/ and editing them. Custom templates are
used instead of the embedded ones.`,
	}

	var (
		selected []string
		force    bool
		location string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List embedded templates and their overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loaders, err := a.templateLoaders(selected, "")
			if err != nil {
				return err
			}
			table := NewTable("Plugin", "Template", "Source")
			for _, name := range sortedKeys(loaders) {
				templates, err := loaders[name].ListEmbeddedTemplates()
				if err != nil {
					return err
				}
				for _, tmpl := range templates {
					_, custom, err := loaders[name].Load(tmpl)
					if err != nil {
						return err
					}
					source := "embedded"
					if custom {
						source = loaders[name].CustomPath(tmpl)
					}
					table.AddRow(name, tmpl, source)
				}
			}
			table.Fprint(cmd.OutOrStdout())
			return nil
		},
	}

	dump := &cobra.Command{
		Use:   "dump",
		Short: "Copy embedded templates to the override directory",
		Example: `  swatch plugins templates dump
  swatch plugins templates dump -o css --force
  swatch plugins templates dump -l ./templates`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loaders, err := a.templateLoaders(selected, location)
			if err != nil {
				return err
			}
			total := 0
			for _, name := range sortedKeys(loaders) {
				dumped, err := loaders[name].DumpAllTemplates(force)
				for _, path := range dumped {
					fmt.Fprintf(cmd.OutOrStdout(), "  ├─ %s\n", path)
				}
				total += len(dumped)
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
			}
			a.status(cmd, "✓ Dumped %d template(s)", total)
			return nil
		},
	}

	for _, c := range []*cobra.Command{list, dump} {
		c.Flags().StringSliceVarP(&selected, "output-plugins", "o", nil, "Output plugins (default: all with templates)")
	}
	dump.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing custom templates")
	dump.Flags().StringVarP(&location, "location", "l", "", "Directory to dump templates to (default: ~/.config/swatch/templates)")

	cmd.AddCommand(list, dump)
	return cmd
}

// templateLoaders returns the loaders of the selected template-based plugins.
func (a *app) templateLoaders(selected []string, location string) (map[string]*tmplloader.Loader, error) {
	all := a.plugins.AllOutputPlugins()
	explicit := len(selected) > 0
	if !explicit {
		selected = sortedKeys(all)
	}

	loaders := make(map[string]*tmplloader.Loader)
	for _, name := range selected {
		p, ok := all[name]
		if !ok {
			return nil, fmt.Errorf("unknown output plugin: %s", name)
		}
		tp, ok := p.(templateProvider)
		if !ok {
			if explicit {
				return nil, fmt.Errorf("output plugin %s has no templates", name)
			}
			continue
		}
		loader := tp.Loader()
		if location != "" {
			loader = loader.WithCustomBase(expandHome(location))
		}
		loaders[name] = loader
	}
	return loaders, nil
}

func enabledLabel(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
