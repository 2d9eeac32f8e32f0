// Package template loads output templates, preferring user overrides in
// ~/.config/swatch/templates/{plugin}/ over the embedded defaults.
package template

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	texttemplate "text/template"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/swatch/internal/plugin/output/common"
)

// Loader resolves template files for one plugin.
type Loader struct {
	pluginName string
	embedFS    embed.FS
	customBase string
	logger     hclog.Logger
}

// New creates a loader for pluginName backed by the plugin's embedded templates.
func New(pluginName string, embedFS embed.FS) *Loader {
	base := ""
	if dir, err := os.UserConfigDir(); err == nil {
		base = filepath.Join(dir, "swatch", "templates")
	}
	return &Loader{
		pluginName: pluginName,
		embedFS:    embedFS,
		customBase: base,
		logger:     hclog.NewNullLogger(),
	}
}

// WithCustomBase sets the directory searched for overrides.
func (l *Loader) WithCustomBase(customBase string) *Loader {
	l.customBase = customBase
	return l
}

// WithLogger sets the logger used to report which template was chosen.
func (l *Loader) WithLogger(logger hclog.Logger) *Loader {
	if logger != nil {
		l.logger = logger
	}
	return l
}

// Load reads a template, checking for a custom override first.
func (l *Loader) Load(filename string) (content []byte, fromCustom bool, err error) {
	if l.customBase != "" {
		customPath := l.CustomPath(filename)
		content, err := os.ReadFile(customPath) // #nosec G304 - user template directory
		if err == nil {
			l.logger.Debug("using custom template", "plugin", l.pluginName, "path", customPath)
			return content, true, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, false, fmt.Errorf("failed to read custom template %q: %w", customPath, err)
		}
	}

	content, err = l.embedFS.ReadFile(filename)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load template %q: %w", filename, err)
	}
	l.logger.Trace("using embedded template", "plugin", l.pluginName, "file", filename)
	return content, false, nil
}

// Render loads, parses and executes a template against data.
func (l *Loader) Render(filename string, data any) ([]byte, error) {
	content, _, err := l.Load(filename)
	if err != nil {
		return nil, err
	}

	tmpl, err := texttemplate.New(filename).Funcs(common.TemplateFuncs()).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %q: %w", filename, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template %q: %w", filename, err)
	}
	return buf.Bytes(), nil
}

// CustomPath returns where an override for filename would live.
func (l *Loader) CustomPath(filename string) string {
	return filepath.Join(l.customBase, l.pluginName, filename)
}

// ListEmbeddedTemplates returns the embedded .tmpl files.
func (l *Loader) ListEmbeddedTemplates() ([]string, error) {
	var templates []string
	err := fs.WalkDir(l.embedFS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".tmpl" {
			templates = append(templates, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded templates: %w", err)
	}
	return templates, nil
}

// DumpAllTemplates copies every embedded template to the override directory so
// it can be edited. Existing files are kept unless force is set.
func (l *Loader) DumpAllTemplates(force bool) ([]string, error) {
	if l.customBase == "" {
		return nil, fmt.Errorf("no template override directory available")
	}
	templates, err := l.ListEmbeddedTemplates()
	if err != nil {
		return nil, err
	}

	var dumped []string
	for _, name := range templates {
		path := l.CustomPath(name)
		if !force {
			if _, err := os.Stat(path); err == nil {
				l.logger.Info("custom template exists, skipping", "path", path)
				continue
			}
		}

		content, err := l.embedFS.ReadFile(name)
		if err != nil {
			return dumped, fmt.Errorf("failed to read embedded template %q: %w", name, err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return dumped, fmt.Errorf("failed to create directory: %w", err)
		}
		if err := os.WriteFile(path, content, 0o600); err != nil {
			return dumped, fmt.Errorf("failed to write template to %q: %w", path, err)
		}
		dumped = append(dumped, path)
	}
	return dumped, nil
}
