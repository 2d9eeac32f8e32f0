// Package remotecss provides an input plugin that reads a palette back from the
// custom properties of a remote stylesheet.
package remotecss

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/plugin/input"
	"github.com/jmylchreest/swatch/internal/security"
	httputil "github.com/jmylchreest/swatch/internal/util/http"
)

var (
	customPropRegex = regexp.MustCompile(`--([a-zA-Z0-9_-]+)\s*:\s*([^;}]+)`)
	hexRegex        = regexp.MustCompile(`#([0-9a-fA-F]{6}|[0-9a-fA-F]{3})\b`)
	rgbRegex        = regexp.MustCompile(`rgba?\s*\(\s*([0-9.]+)\s*,?\s*([0-9.]+)\s*,?\s*([0-9.]+)`)
	hslRegex        = regexp.MustCompile(`hsla?\s*\(\s*([0-9.]+)(?:deg)?\s*,?\s*([0-9.]+)%\s*,?\s*([0-9.]+)%`)
	bareHSLRegex    = regexp.MustCompile(`^([0-9.]+)\s+([0-9.]+)%\s+([0-9.]+)%$`)
	oklchRegex      = regexp.MustCompile(`oklch\s*\(\s*([0-9.]+)(%?)\s+([0-9.]+)\s+([0-9.]+)`)
)

// Plugin implements the input.Plugin interface for remote CSS palette fetching.
type Plugin struct {
	url          string
	prefix       string
	timeout      time.Duration
	mapping      map[string]string // custom property name -> role
	allowPrivate bool
}

// New creates a new remote-css input plugin.
func New() *Plugin {
	return &Plugin{
		prefix:  "swatch",
		timeout: httputil.DefaultTimeout,
		mapping: make(map[string]string),
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "remote-css"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Read a palette from the custom properties of a remote stylesheet"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.url, "remote-css.url", "", "URL of the stylesheet (required)")
	cmd.Flags().StringVar(&p.prefix, "remote-css.prefix", p.prefix, "Custom property prefix to strip before matching role names")
	cmd.Flags().DurationVar(&p.timeout, "remote-css.timeout", p.timeout, "HTTP timeout")
	cmd.Flags().StringToStringVar(&p.mapping, "remote-css.map", map[string]string{}, "Map custom properties to roles (e.g. primary=brand,background=section-bg-1)")
	cmd.Flags().BoolVar(&p.allowPrivate, "remote-css.allow-private", p.allowPrivate, "Allow http:// and private or loopback hosts")
}

// Validate checks if the plugin has all required inputs configured.
func (p *Plugin) Validate() error {
	if p.url == "" {
		return fmt.Errorf("--remote-css.url is required")
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

// Generate fetches the stylesheet and builds a palette from its custom
// properties. Roles the stylesheet does not define are taken from the current
// palette when it is complete.
func (p *Plugin) Generate(ctx context.Context, opts input.GenerateOptions) (colour.Palette, error) {
	log := opts.Log().With("url", p.url)
	log.Debug("fetching stylesheet")

	content, err := httputil.Fetch(ctx, p.url, httputil.FetchOptions{
		Timeout: p.timeout,
		Policy:  p.policy(),
	})
	if err != nil {
		return colour.Palette{}, fmt.Errorf("failed to fetch palette: %w", err)
	}

	props := parseCustomProperties(string(content))
	if len(props) == 0 {
		return colour.Palette{}, fmt.Errorf("no colour custom properties found")
	}
	log.Debug("extracted custom properties", "bytes", len(content), "count", len(props))

	values := make(map[string]string)
	if current := opts.Request.Current; current.Validate() == nil {
		for role, hex := range current.Map() {
			values[string(role)] = hex
		}
	}

	for name, hex := range props {
		target, mapped := p.mapping[name]
		if !mapped {
			target = strings.TrimPrefix(name, p.prefix+"-")
		}
		role, err := colour.ParseRole(target)
		if err != nil {
			log.Trace("skipping property with no role", "property", name)
			continue
		}
		values[string(role)] = hex
	}
	for name := range p.mapping {
		if _, ok := props[name]; !ok {
			log.Warn("mapped property not found in stylesheet", "property", name)
		}
	}

	return colour.PaletteFromMap(values)
}

// parseCustomProperties returns the colour-valued custom properties of a
// stylesheet as normalised hex. The first declaration of a name wins.
func parseCustomProperties(css string) map[string]string {
	props := make(map[string]string)
	for _, m := range customPropRegex.FindAllStringSubmatch(css, -1) {
		name := m[1]
		if _, seen := props[name]; seen {
			continue
		}
		if hex, ok := parseColour(m[2]); ok {
			props[name] = hex
		}
	}
	return props
}

// parseColour converts a CSS colour value to "#RRGGBB". It understands hex,
// rgb(), hsl(), oklch() and the bare "H S% L%" triplets used by shadcn themes.
func parseColour(value string) (string, bool) {
	value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "!important"))

	if m := hexRegex.FindString(value); m != "" {
		hex, err := colour.NormaliseHex(m)
		return hex, err == nil
	}
	if m := rgbRegex.FindStringSubmatch(value); m != nil {
		r, g, b := atof(m[1]), atof(m[2]), atof(m[3])
		return colour.RGB{R: toByte(r), G: toByte(g), B: toByte(b)}.Hex(), true
	}
	if m := hslRegex.FindStringSubmatch(value); m != nil {
		return colour.HSLToHex(atof(m[1]), atof(m[2]), atof(m[3])), true
	}
	if m := bareHSLRegex.FindStringSubmatch(value); m != nil {
		return colour.HSLToHex(atof(m[1]), atof(m[2]), atof(m[3])), true
	}
	if m := oklchRegex.FindStringSubmatch(value); m != nil {
		l := atof(m[1])
		if m[2] == "%" {
			l /= 100
		}
		return oklchToRGB(l, atof(m[3]), atof(m[4])).Hex(), true
	}
	return "", false
}

// atof parses a number the regexes already matched.
func atof(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64) //nolint:errcheck
	return v
}

func toByte(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, v)))) // #nosec G115 -- clamped to 0-255
}

// oklchToRGB converts OKLCH (lightness 0-1, chroma, hue in degrees) to sRGB.
// Reference: https://bottosson.github.io/posts/oklab/.
func oklchToRGB(l, c, h float64) colour.RGB {
	hRad := h * math.Pi / 180.0
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	lv := l + 0.3963377774*a + 0.2158037573*b
	mv := l - 0.1055613458*a - 0.0638541728*b
	sv := l - 0.0894841775*a - 1.2914855480*b
	lv, mv, sv = lv*lv*lv, mv*mv*mv, sv*sv*sv

	r := +4.0767416621*lv - 3.3077115913*mv + 0.2309699292*sv
	g := -1.2684380046*lv + 2.6097574011*mv - 0.3413193965*sv
	bl := -0.0041960863*lv - 0.7034186147*mv + 1.7076147010*sv

	return colour.RGB{
		R: toByte(linearToSRGB(r) * 255),
		G: toByte(linearToSRGB(g) * 255),
		B: toByte(linearToSRGB(bl) * 255),
	}
}

func linearToSRGB(c float64) float64 {
	if c <= 0.0031308 {
		return 12.92 * c
	}
	return 1.055*math.Pow(c, 1.0/2.4) - 0.055
}
