// Package tailwind provides a Tailwind CSS / shadcn/ui output plugin.
package tailwind

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/plugin/output"
	tmplloader "github.com/jmylchreest/swatch/internal/plugin/output/template"
	"github.com/jmylchreest/swatch/internal/util"
)

//go:embed *.tmpl
var templates embed.FS

// Plugin implements the output.Plugin interface for Tailwind CSS.
type Plugin struct {
	format    string // "css" or "config"
	outputDir string
	namespace string
	radius    string
	logger    hclog.Logger
}

// New creates a new Tailwind CSS output plugin.
func New() *Plugin {
	return NewWithFormat("css")
}

// NewWithFormat creates a new Tailwind CSS output plugin with a specific format.
func NewWithFormat(format string) *Plugin {
	return &Plugin{
		format:    format,
		namespace: "swatch",
		radius:    "0.5rem",
		logger:    hclog.NewNullLogger(),
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
	return "tailwind"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Generate Tailwind CSS / shadcn/ui theme configuration"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.format, "tailwind.format", p.format, "Output format (css or config)")
	cmd.Flags().StringVar(&p.outputDir, "tailwind.output-dir", "", "Output directory (default: detected from project layout)")
	cmd.Flags().StringVar(&p.namespace, "tailwind.namespace", p.namespace, "Colour namespace in tailwind.config.js")
	cmd.Flags().StringVar(&p.radius, "tailwind.radius", p.radius, "Value of the --radius token in globals.css")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if p.format != "css" && p.format != "config" {
		return fmt.Errorf("invalid format: %s (must be 'css' or 'config')", p.format)
	}
	if p.namespace == "" {
		return fmt.Errorf("tailwind namespace must not be empty")
	}
	return nil
}

// DefaultOutputDir returns the default output directory for this plugin.
func (p *Plugin) DefaultOutputDir() string {
	if p.outputDir != "" {
		return p.outputDir
	}
	if p.format == "config" {
		return "."
	}

	// Next.js layouts keep globals.css under app/.
	if _, err := os.Stat("app"); err == nil {
		return "app"
	}
	if _, err := os.Stat("src"); err == nil {
		return filepath.Join("src", "app")
	}
	return "."
}

// Generate creates the Tailwind CSS configuration from the theme.
func (p *Plugin) Generate(theme *output.Theme) (map[string][]byte, error) {
	if theme == nil {
		return nil, output.ErrNilTheme
	}

	loader := tmplloader.New(p.Name(), templates).WithLogger(p.logger)
	if p.format == "config" {
		content, err := loader.Render("tailwind.config.js.tmpl", prepareConfigData(theme, p.namespace))
		if err != nil {
			return nil, err
		}
		return map[string][]byte{"tailwind.config.js": content}, nil
	}

	data, err := prepareCSSData(theme, p.radius)
	if err != nil {
		return nil, err
	}
	content, err := loader.Render("globals.css.tmpl", data)
	if err != nil {
		return nil, err
	}
	return map[string][]byte{"globals.css": content}, nil
}

// Variable is a name/value pair rendered into a template.
type Variable struct {
	Name  string
	Value string
}

// CSSData holds data for the globals.css template.
type CSSData struct {
	Theme    *output.Theme
	Selector string
	Radius   string
	Vars     []Variable
}

// ConfigData holds data for the tailwind.config.js template.
type ConfigData struct {
	Theme     *output.Theme
	Namespace string
	Colors    []Variable
}

// prepareCSSData maps design tokens onto shadcn/ui variable names. The page
// background's foreground becomes --foreground; card doubles as popover and
// brand as the focus ring.
func prepareCSSData(theme *output.Theme, radius string) (CSSData, error) {
	data := CSSData{Theme: theme, Selector: ":root", Radius: radius}
	if theme.Dark() {
		data.Selector = ".dark"
	}

	add := func(name string, hsl colour.HSL) {
		data.Vars = append(data.Vars, Variable{Name: name, Value: colour.Token{Value: hsl}.CSSValue()})
	}
	addHex := func(name, hex string) error {
		hsl, err := colour.HexToHSL(hex)
		if err != nil {
			return fmt.Errorf("token %s: %w", name, err)
		}
		add(name, hsl)
		return nil
	}

	for _, tok := range theme.Tokens {
		fgName := tok.Name + "-foreground"
		if tok.Name == "background" {
			fgName = "foreground"
		}
		add(tok.Name, tok.Value)
		if tok.Foreground != "" {
			if err := addHex(fgName, tok.Foreground); err != nil {
				return CSSData{}, err
			}
		}
		switch tok.Name {
		case "card":
			add("popover", tok.Value)
			if err := addHex("popover-foreground", tok.Foreground); err != nil {
				return CSSData{}, err
			}
		case "brand":
			add("ring", tok.Value)
		}
	}
	return data, nil
}

// prepareConfigData lists every role and derived foreground in camelCase.
func prepareConfigData(theme *output.Theme, namespace string) ConfigData {
	data := ConfigData{Theme: theme, Namespace: namespace}
	for _, r := range colour.AllRoles() {
		data.Colors = append(data.Colors, Variable{Name: util.CamelCase(string(r)), Value: theme.Palette.Get(r)})
	}
	for _, pair := range theme.Roles.Pairs() {
		data.Colors = append(data.Colors, Variable{Name: pair.Name, Value: pair.Foreground})
	}
	return data
}

// Loader exposes the template loader so the CLI can dump the embedded templates.
func (p *Plugin) Loader() *tmplloader.Loader {
	return tmplloader.New(p.Name(), templates).WithLogger(p.logger)
}
