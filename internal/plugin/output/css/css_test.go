package css

import (
	"strings"
	"testing"

	plugintesting "github.com/jmylchreest/swatch/internal/plugin/output/testing"
)

func TestPlugin(t *testing.T) {
	plugintesting.RunAllTests(t, New(), plugintesting.TestConfig{
		ExpectedName:  "css",
		ExpectedFiles: []string{"swatch.css"},
		ExpectedFlags: []string{"css.output-dir", "css.filename", "css.prefix", "css.selector", "css.utilities"},
	})
}

func TestGenerateContent(t *testing.T) {
	theme := plugintesting.CreateTestTheme(t, false)
	p := New()

	files, err := p.Generate(theme)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	css := string(files["swatch.css"])

	for _, want := range []string{
		":root {",
		"--swatch-brand: " + theme.Palette.Brand + ";",
		"--swatch-section-bg-1: " + theme.Palette.SectionBg1 + ";",
		"--swatch-input-text: " + theme.Palette.InputText + ";",
		"--swatch-on-brand: " + theme.Roles.OnBrand + ";",
		"--swatch-on-bg-3: " + theme.Roles.OnBg3 + ";",
		"4.5:1",
	} {
		if !strings.Contains(css, want) {
			t.Errorf("CSS missing %q\n%s", want, css)
		}
	}
	if strings.Contains(css, ".swatch-brand {") {
		t.Error("utility classes emitted without --css.utilities")
	}
}

func TestGenerateOptions(t *testing.T) {
	p := New()
	p.prefix = "site"
	p.selector = "[data-theme=dark]"
	p.utilities = true
	p.filename = "theme.css"

	files, err := p.Generate(plugintesting.CreateTestTheme(t, true))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	css, ok := files["theme.css"]
	if !ok {
		t.Fatalf("Generate() files = %v", files)
	}
	for _, want := range []string{"[data-theme=dark] {", "--site-brand:", ".site-button-primary {"} {
		if !strings.Contains(string(css), want) {
			t.Errorf("CSS missing %q", want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Plugin)
		wantErr bool
	}{
		{"defaults", func(*Plugin) {}, false},
		{"uppercase prefix", func(p *Plugin) { p.prefix = "Swatch" }, true},
		{"prefix with space", func(p *Plugin) { p.prefix = "a b" }, true},
		{"empty selector", func(p *Plugin) { p.selector = " " }, true},
		{"empty filename", func(p *Plugin) { p.filename = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			tt.mutate(p)
			if err := p.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestKebab(t *testing.T) {
	tests := map[string]string{
		"onBrand":     "on-brand",
		"onBg1":       "on-bg-1",
		"onSecondary": "on-secondary",
	}
	for in, want := range tests {
		if got := kebab(in); got != want {
			t.Errorf("kebab(%q) = %q, want %q", in, got, want)
		}
	}
}
