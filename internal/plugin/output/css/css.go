// Package css provides an output plugin that writes the palette as CSS custom properties.
package css

import (
	"embed"
	"fmt"
	"regexp"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/plugin/output"
	tmplloader "github.com/jmylchreest/swatch/internal/plugin/output/template"
)

//go:embed *.tmpl
var templates embed.FS

const templateName = "variables.css.tmpl"

var prefixPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// Plugin implements the output.Plugin interface for CSS variables.
type Plugin struct {
	outputDir string
	filename  string
	prefix    string
	selector  string
	utilities bool
	logger    hclog.Logger
}

// New creates a new CSS output plugin.
func New() *Plugin {
	return &Plugin{
		filename: "swatch.css",
		prefix:   "swatch",
		selector: ":root",
		logger:   hclog.NewNullLogger(),
	}
}

// SetLogger sets the logger used for template resolution.
func (p *Plugin) SetLogger(l hclog.Logger) {
	if l != nil {
		p.logger = l
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "css"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Write the palette as CSS custom properties"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.outputDir, "css.output-dir", "", "Output directory (default: --output-dir)")
	cmd.Flags().StringVar(&p.filename, "css.filename", p.filename, "Output file name")
	cmd.Flags().StringVar(&p.prefix, "css.prefix", p.prefix, "Custom property prefix")
	cmd.Flags().StringVar(&p.selector, "css.selector", p.selector, "Selector the properties are declared on")
	cmd.Flags().BoolVar(&p.utilities, "css.utilities", false, "Also emit utility classes for each surface")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if !prefixPattern.MatchString(p.prefix) {
		return fmt.Errorf("invalid CSS prefix %q: use lowercase letters, digits and hyphens", p.prefix)
	}
	if strings.TrimSpace(p.selector) == "" {
		return fmt.Errorf("CSS selector must not be empty")
	}
	if p.filename == "" {
		return fmt.Errorf("CSS file name must not be empty")
	}
	return nil
}

// DefaultOutputDir returns the plugin's output directory, or "" to use the
// command's --output-dir.
func (p *Plugin) DefaultOutputDir() string {
	return p.outputDir
}

type cssVar struct {
	Name  string
	Value string
}

type cssData struct {
	Theme     *output.Theme
	Prefix    string
	Selector  string
	Utilities bool
	Roles     []cssVar
	OnColours []cssVar
}

// Generate renders the CSS file.
func (p *Plugin) Generate(theme *output.Theme) (map[string][]byte, error) {
	if theme == nil {
		return nil, output.ErrNilTheme
	}

	data := cssData{
		Theme:     theme,
		Prefix:    p.prefix,
		Selector:  p.selector,
		Utilities: p.utilities,
	}
	for _, r := range colour.AllRoles() {
		data.Roles = append(data.Roles, cssVar{Name: string(r), Value: theme.Palette.Get(r)})
	}
	for _, pair := range theme.Roles.Pairs() {
		data.OnColours = append(data.OnColours, cssVar{Name: kebab(pair.Name), Value: pair.Foreground})
	}

	content, err := tmplloader.New(p.Name(), templates).WithLogger(p.logger).Render(templateName, data)
	if err != nil {
		return nil, err
	}
	return map[string][]byte{p.filename: content}, nil
}

// Loader exposes the template loader so the CLI can dump the embedded template.
func (p *Plugin) Loader() *tmplloader.Loader {
	return tmplloader.New(p.Name(), templates).WithLogger(p.logger)
}

// kebab converts "onBg1" to "on-bg-1".
func kebab(s string) string {
	var sb strings.Builder
	for i, r := range s {
		isUpper := r >= 'A' && r <= 'Z'
		isDigit := r >= '0' && r <= '9'
		if i > 0 && (isUpper || isDigit) {
			sb.WriteByte('-')
		}
		if isUpper {
			r += 'a' - 'A'
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
