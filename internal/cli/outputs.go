package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/swatch/internal/plugin/output"
	"github.com/jmylchreest/swatch/internal/security"
)

// outputFlags selects and places output plugin files.
type outputFlags struct {
	names  []string
	dir    string
	dryRun bool
}

func (o *outputFlags) register(fs *pflag.FlagSet) {
	fs.StringSliceVarP(&o.names, "outputs", "o", nil, "Output plugins (comma-separated or 'all')")
	fs.StringVar(&o.dir, "output-dir", ".", "Directory for plugins without their own output directory")
	fs.BoolVar(&o.dryRun, "dry-run", false, "List the files that would be written without writing them")
}

func (o *outputFlags) selected() bool {
	return len(o.names) > 0
}

// writeOutputs renders theme with every selected output plugin and writes the
// files. A plugin that fails validation or rendering is reported and skipped;
// the command fails only when no plugin succeeds.
func (a *app) writeOutputs(cmd *cobra.Command, theme *output.Theme, o outputFlags) error {
	names := o.names
	if slices.Contains(names, "all") {
		names = a.plugins.ListOutputPlugins()
	}
	plugins, err := a.plugins.EnabledOutputs(names)
	if err != nil {
		return err
	}
	if len(plugins) == 0 {
		return fmt.Errorf("no output plugins selected")
	}

	out := cmd.OutOrStdout()
	succeeded := 0
	for _, p := range plugins {
		log := a.logger.Named("output").With("plugin", p.Name())
		if err := p.Validate(); err != nil {
			a.status(cmd, "⚠ Skipping %s: %v", p.Name(), err)
			continue
		}

		files, err := p.Generate(theme)
		if err != nil {
			a.status(cmd, "✗ %s failed: %v", p.Name(), err)
			continue
		}

		dir := p.DefaultOutputDir()
		if dir == "" {
			dir = o.dir
		}
		dir = expandHome(dir)

		filenames := make([]string, 0, len(files))
		for name := range files {
			filenames = append(filenames, name)
		}
		slices.Sort(filenames)

		for _, name := range filenames {
			if err := security.ValidateOutputPath(name, dir); err != nil {
				return fmt.Errorf("%s: %w", p.Name(), err)
			}
			path := filepath.Join(dir, name)
			content := files[name]

			if o.dryRun {
				fmt.Fprintf(out, "  Would write: %s (%d bytes)\n", path, len(content))
				continue
			}
			if err := writeFile(path, content); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			log.Debug("wrote file", "path", path, "bytes", len(content))
			fmt.Fprintf(out, "  ├─ %s (%d bytes)\n", path, len(content))
		}
		succeeded++
	}

	if succeeded == 0 {
		return fmt.Errorf("no output plugins succeeded")
	}
	if !o.dryRun {
		a.status(cmd, "✓ Generated %d output plugin(s)", succeeded)
	}
	return nil
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// writeFile writes content to path, creating parent directories as needed.
func writeFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil { // #nosec G306 -- generated stylesheets are meant to be readable
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
