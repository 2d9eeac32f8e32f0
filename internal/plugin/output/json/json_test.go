package json

import (
	stdjson "encoding/json"
	"strings"
	"testing"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/plugin/output"
	plugintesting "github.com/jmylchreest/swatch/internal/plugin/output/testing"
)

func TestPlugin(t *testing.T) {
	plugintesting.RunAllTests(t, New(), plugintesting.TestConfig{
		ExpectedName:  "json",
		ExpectedFiles: []string{"swatch.json"},
		ExpectedFlags: []string{"json.output-dir", "json.filename", "json.palette-only", "json.compact"},
	})
}

func TestGenerateDocument(t *testing.T) {
	theme := plugintesting.CreateTestTheme(t, true)
	files, err := New().Generate(theme)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	var doc output.Document
	if err := stdjson.Unmarshal(files["swatch.json"], &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc.Name != "Midnight" || doc.Mode != "dark" {
		t.Errorf("name/mode = %s/%s, want Midnight/dark", doc.Name, doc.Mode)
	}
	if doc.Palette != theme.Palette {
		t.Error("palette did not survive encoding")
	}
	if doc.OnColours["onBrand"] != theme.Roles.OnBrand {
		t.Errorf("onBrand = %s, want %s", doc.OnColours["onBrand"], theme.Roles.OnBrand)
	}
	if len(doc.Tokens) != len(theme.Tokens) {
		t.Fatalf("got %d tokens, want %d", len(doc.Tokens), len(theme.Tokens))
	}
	if doc.Tokens[0].Name != "background" || doc.Tokens[0].Hex != theme.Palette.SectionBg1 {
		t.Errorf("first token = %+v", doc.Tokens[0])
	}
}

func TestGeneratePaletteOnly(t *testing.T) {
	theme := plugintesting.CreateTestTheme(t, false)
	p := New()
	p.paletteOnly = true
	p.compact = true

	files, err := p.Generate(theme)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	data := files["swatch.json"]
	if strings.Count(string(data), "\n") != 1 {
		t.Errorf("compact output should be a single line, got %q", data)
	}

	got, err := colour.ParsePalette(data)
	if err != nil {
		t.Fatalf("ParsePalette() error = %v", err)
	}
	if got != theme.Palette {
		t.Errorf("palette = %+v, want %+v", got, theme.Palette)
	}
}
