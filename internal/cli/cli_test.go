package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/jmylchreest/swatch/internal/ai"
	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/scheme"
	"github.com/jmylchreest/swatch/internal/store"
	"github.com/jmylchreest/swatch/internal/version"
)

// testEnv isolates config, data and template directories for one test.
type testEnv struct {
	t       *testing.T
	dataDir string
	aiSvc   *ai.StaticService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	for _, key := range []string{
		"SWATCH_CONFIG", "SWATCH_DATA_DIR", "SWATCH_MAX_ATTEMPTS", "SWATCH_MIN_CONTRAST",
		"SWATCH_DEFAULT_MODE", "SWATCH_DEFAULT_SCHEME", "SWATCH_AI_BACKEND", "SWATCH_AI_MODEL",
		"SWATCH_ENABLED_PLUGINS", "SWATCH_DISABLED_PLUGINS", "GOOGLE_API_KEY",
	} {
		t.Setenv(key, "")
	}
	return &testEnv{t: t, dataDir: filepath.Join(home, "data")}
}

// run executes the command tree and returns stdout and stderr.
func (e *testEnv) run(args ...string) (string, string, error) {
	e.t.Helper()
	a := newApp()
	if e.aiSvc != nil {
		a.newAIService = func(context.Context) (ai.Service, error) { return e.aiSvc, nil }
	}
	root := a.rootCmd()

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--data-dir", e.dataDir, "--quiet"}, args...))
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, stderr, err := e.run(args...)
	if err != nil {
		e.t.Fatalf("swatch %s: %v\nstderr: %s", strings.Join(args, " "), err, stderr)
	}
	return out
}

func (e *testEnv) generateJSON(args ...string) colour.Palette {
	e.t.Helper()
	out := e.mustRun(append([]string{"generate", "--json"}, args...)...)
	p, err := colour.ParsePalette([]byte(out))
	if err != nil {
		e.t.Fatalf("generate output is not a palette: %v\n%s", err, out)
	}
	return p
}

func curated(t *testing.T, name string) colour.Palette {
	t.Helper()
	c, err := scheme.LookupCurated(name)
	if err != nil {
		t.Fatal(err)
	}
	return c.Palette
}

func writePaletteFile(t *testing.T, p colour.Palette) string {
	t.Helper()
	data, err := p.ToJSON()
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "current.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGenerateSeedIsReproducible(t *testing.T) {
	env := newTestEnv(t)

	first := env.generateJSON("--seed", "42", "--scheme", "analogous")
	second := env.generateJSON("--seed", "42", "--scheme", "analogous")
	if first != second {
		t.Errorf("same seed produced different palettes:\n%+v\n%+v", first, second)
	}

	byText := env.generateJSON("--seed-text", "Acme Corp")
	if again := env.generateJSON("--seed-text", "  acme corp "); again != byText {
		t.Error("--seed-text should ignore case and surrounding space")
	}
}

func TestGenerateSchemesAndModes(t *testing.T) {
	env := newTestEnv(t)
	for _, typ := range scheme.ValidTypes() {
		for _, mode := range []string{"light", "dark"} {
			t.Run(string(typ)+"/"+mode, func(t *testing.T) {
				p := env.generateJSON("--scheme", string(typ), "--mode", mode, "--seed", "7")
				if err := p.Validate(); err != nil {
					t.Errorf("palette invalid: %v", err)
				}
			})
		}
	}
}

func TestGenerateAccessible(t *testing.T) {
	env := newTestEnv(t)
	for seed := range 5 {
		p := env.generateJSON("--accessible", "--mode", "dark", "--seed", strconv.Itoa(seed))
		if !scheme.IsAccessible(p, colour.MinContrastAA) {
			t.Errorf("seed %d: --accessible returned an inaccessible palette: %+v", seed, scheme.CheckAccessibility(p, colour.MinContrastAA))
		}
	}
}

func TestGenerateLocks(t *testing.T) {
	env := newTestEnv(t)
	current := curated(t, "Terracotta")
	path := writePaletteFile(t, current)

	for _, extra := range [][]string{
		{"--scheme", "tetradic"},
		{"--scheme", "random", "--accessible"},
		{"--preserve-mood", "earthy"},
	} {
		t.Run(strings.Join(extra, " "), func(t *testing.T) {
			args := append([]string{"--from", path, "--lock", "brand,accent", "--lock", "section_bg_1", "--seed", "3"}, extra...)
			p := env.generateJSON(args...)
			for _, r := range []colour.Role{colour.RoleBrand, colour.RoleAccent, colour.RoleSectionBg1} {
				if p.Get(r) != current.Get(r) {
					t.Errorf("locked role %s = %s, want %s", r, p.Get(r), current.Get(r))
				}
			}
		})
	}
}

func TestGenerateAccessibleFallsBackWithLocks(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("SWATCH_MAX_ATTEMPTS", "3")

	current := curated(t, "Ocean")
	current.TextPrimary = "#777777"
	current.SectionBg1 = "#888888"
	path := writePaletteFile(t, current)

	tests := []struct {
		name  string
		extra []string
	}{
		{"triadic", []string{"--scheme", "triadic"}},
		{"monochromatic", []string{"--scheme", "monochromatic"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--from", path, "--lock", "text-primary,section-bg-1", "--accessible", "--seed", "7"}, tt.extra...)
			p := env.generateJSON(args...)
			if p == current {
				t.Fatal("exhausted accessible generation returned the current palette unchanged")
			}
			if p.Brand == current.Brand {
				t.Errorf("brand = %s, want a regenerated brand", p.Brand)
			}
			if p.TextPrimary != "#777777" || p.SectionBg1 != "#888888" {
				t.Errorf("locked roles = %s / %s, want #777777 / #888888", p.TextPrimary, p.SectionBg1)
			}
		})
	}
}

func TestGenerateErrors(t *testing.T) {
	env := newTestEnv(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"lock without current", []string{"generate", "--lock", "brand"}, "--lock needs a current palette"},
		{"bad lock role", []string{"generate", "--lock", "foreground"}, "unknown colour role"},
		{"bad scheme", []string{"generate", "--scheme", "pastel"}, "invalid scheme"},
		{"bad mode", []string{"generate", "--mode", "dim"}, "invalid mode"},
		{"bad mood", []string{"generate", "--preserve-mood", "grumpy"}, "unknown mood"},
		{"unknown input", []string{"generate", "-i", "image"}, "unknown input plugin"},
		{"unknown output", []string{"generate", "-o", "kitty"}, "unknown output plugin"},
		{"missing from", []string{"generate", "--from", "nope"}, "no file, saved palette"},
		{"remote without url", []string{"generate", "-i", "remote-json"}, "--remote-json.url is required"},
		{"ai without key", []string{"generate", "-i", "ai", "--ai.prompt", "a bakery"}, "API key is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := env.run(tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestGenerateFileInputWithOverrides(t *testing.T) {
	env := newTestEnv(t)
	path := writePaletteFile(t, curated(t, "Ocean"))

	p := env.generateJSON("-i", "file", "--file.path", path, "--colour", "brand=#123456")
	if p.Brand != "#123456" {
		t.Errorf("brand = %s, want #123456", p.Brand)
	}
	if p.SectionBg1 != curated(t, "Ocean").SectionBg1 {
		t.Error("file input should keep the file's other roles")
	}
}

func TestGenerateAIInput(t *testing.T) {
	env := newTestEnv(t)
	env.aiSvc = &ai.StaticService{Light: curated(t, "Meadow"), Dark: curated(t, "Midnight")}

	p := env.generateJSON("-i", "ai", "--ai.prompt", "a night-time jazz club", "--mode", "dark")
	if p != curated(t, "Midnight") {
		t.Errorf("ai input returned %+v", p)
	}
	if len(env.aiSvc.Prompts) != 1 || env.aiSvc.Prompts[0] != "a night-time jazz club" {
		t.Errorf("prompts = %q", env.aiSvc.Prompts)
	}
}

func TestGenerateWritesOutputs(t *testing.T) {
	env := newTestEnv(t)
	outDir := filepath.Join(t.TempDir(), "theme")

	out, _, err := env.run("generate", "--seed", "9", "-o", "css,json,yaml", "--output-dir", outDir, "--css.prefix", "site")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, name := range []string{"swatch.css", "swatch.json", "swatch.yaml"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
		if !strings.Contains(out, name) {
			t.Errorf("output does not mention %s:\n%s", name, out)
		}
	}
	css, _ := os.ReadFile(filepath.Join(outDir, "swatch.css"))
	if !strings.Contains(string(css), "--site-brand:") {
		t.Errorf("css.prefix not applied:\n%s", css)
	}
}

func TestGenerateDryRun(t *testing.T) {
	env := newTestEnv(t)
	outDir := filepath.Join(t.TempDir(), "theme")

	out := env.mustRun("generate", "-o", "all", "--dry-run", "--output-dir", outDir, "--tailwind.output-dir", outDir)
	if !strings.Contains(out, "Would write:") {
		t.Errorf("dry run output = %q", out)
	}
	if _, err := os.Stat(outDir); !os.IsNotExist(err) {
		t.Error("dry run should not create the output directory")
	}
}

func TestGeneratePreview(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun("generate", "--seed", "5", "--name", "Acme")

	for _, want := range []string{"Acme (random, light, seed 5)", "section-bg-1", "text-primary", "button-text", "Ratio"} {
		if !strings.Contains(out, want) {
			t.Errorf("preview missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("preview to a non-terminal should not contain ANSI escapes")
	}
}

func TestSavedPaletteLifecycle(t *testing.T) {
	env := newTestEnv(t)

	env.mustRun("generate", "--seed", "11", "--scheme", "complementary", "--save", "Acme")

	st, err := store.New(env.dataDir, nil)
	if err != nil {
		t.Fatal(err)
	}
	records, err := st.List(store.SavedPalettes)
	if err != nil || len(records) != 1 {
		t.Fatalf("List() = %v, %v", records, err)
	}
	rec := records[0]
	if rec.Name != "Acme" || rec.Scheme != "complementary" || rec.Mode != "light" {
		t.Errorf("saved record = %+v", rec)
	}

	list := env.mustRun("palette", "list")
	if !strings.Contains(list, "Acme") || !strings.Contains(list, rec.ID[:8]) {
		t.Errorf("palette list:\n%s", list)
	}

	show := env.mustRun("palette", "show", "acme")
	if !strings.Contains(show, rec.ID) || !strings.Contains(show, "scheme: complementary") {
		t.Errorf("palette show:\n%s", show)
	}

	// A saved palette can be the current palette of the next generation.
	p := env.generateJSON("--from", "Acme", "--lock", "brand")
	if p.Brand != rec.OriginalPalette.Brand {
		t.Errorf("brand = %s, want %s", p.Brand, rec.OriginalPalette.Brand)
	}

	outDir := t.TempDir()
	env.mustRun("palette", "export", rec.ID[:6], "-o", "json", "--output-dir", outDir)
	data, err := os.ReadFile(filepath.Join(outDir, "swatch.json"))
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &doc); err != nil || doc.Name != "Acme" {
		t.Errorf("exported document name = %q, %v", doc.Name, err)
	}

	env.mustRun("palette", "delete", rec.ID[:6])
	if out := env.mustRun("palette", "list"); !strings.Contains(out, "No palettes saved") {
		t.Errorf("palette list after delete:\n%s", out)
	}
}

func TestPaletteImport(t *testing.T) {
	env := newTestEnv(t)
	path := writePaletteFile(t, curated(t, "Ember"))

	out := env.mustRun("palette", "import", path, "--name", "Imported", "--mode", "dark")
	if !strings.Contains(out, `Saved palette "Imported"`) {
		t.Errorf("import output = %q", out)
	}

	var records []store.Record
	if err := json.Unmarshal([]byte(env.mustRun("palette", "list", "--json")), &records); err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Mode != "dark" || records[0].OriginalPalette != curated(t, "Ember") {
		t.Errorf("records = %+v", records)
	}
}

func TestPresets(t *testing.T) {
	env := newTestEnv(t)

	env.mustRun("preset", "add", "Ocean", "--name", "House blue")
	list := env.mustRun("preset", "list")
	if !strings.Contains(list, "House blue") || !strings.Contains(list, "light") {
		t.Errorf("preset list:\n%s", list)
	}
	if out := env.mustRun("palette", "list"); !strings.Contains(out, "No palettes saved") {
		t.Error("presets should not appear among saved palettes")
	}

	p := env.generateJSON("--from", "House blue", "--lock", "brand")
	if p.Brand != curated(t, "Ocean").Brand {
		t.Errorf("generate --from preset: brand = %s", p.Brand)
	}

	var records []store.Record
	if err := json.Unmarshal([]byte(env.mustRun("preset", "list", "--json")), &records); err != nil || len(records) != 1 {
		t.Fatalf("preset list --json: %v, %v", records, err)
	}
	env.mustRun("preset", "remove", records[0].ID)
	if _, _, err := env.run("preset", "show", records[0].ID); err == nil {
		t.Error("preset show after remove should fail")
	}
}

func TestContrastCommand(t *testing.T) {
	env := newTestEnv(t)
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"black on white", []string{"#000000", "#ffffff"}, []string{"21.00:1", "Luminance: 0.000 on 1.000", "#000000 is readable"}},
		{"short hex", []string{"777", "fff"}, []string{"4.48:1", "✗ fail", "Suggested text colour: #000000"}},
		{"aaa minimum", []string{"#595959", "#ffffff", "--min", "7"}, []string{"7.00:1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := env.mustRun(append([]string{"contrast"}, tt.args...)...)
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}

	if _, _, err := env.run("contrast", "#zzzzzz", "#ffffff"); err == nil {
		t.Error("contrast should reject malformed hex")
	}
}

func TestRolesCommand(t *testing.T) {
	env := newTestEnv(t)
	ocean := curated(t, "Ocean")

	var roles colour.ColorRoles
	if err := json.Unmarshal([]byte(env.mustRun("roles", "Ocean", "--json")), &roles); err != nil {
		t.Fatal(err)
	}
	want := colour.MapPaletteToRoles(ocean)
	if roles.OnBrand != want.OnBrand || roles.OnBg3 != want.OnBg3 {
		t.Errorf("roles = %+v, want %+v", roles, want)
	}

	table := env.mustRun("roles", writePaletteFile(t, ocean))
	for _, name := range []string{"onBrand", "onInput", ocean.Brand} {
		if !strings.Contains(table, name) {
			t.Errorf("roles table missing %q:\n%s", name, table)
		}
	}
}

func TestMoodCommands(t *testing.T) {
	env := newTestEnv(t)

	list := env.mustRun("mood", "list")
	for _, m := range scheme.Moods() {
		if !strings.Contains(list, m.ID) {
			t.Errorf("mood list missing %s", m.ID)
		}
	}

	a := env.mustRun("mood", "show", "calm", "--vary", "2", "--seed", "4")
	b := env.mustRun("mood", "show", "calm", "--vary", "2", "--seed", "4")
	if a != b {
		t.Error("mood variations with the same seed differ")
	}
	if !strings.Contains(a, "Variation 2") {
		t.Errorf("mood show output:\n%s", a)
	}
	if _, _, err := env.run("mood", "show", "grumpy"); err == nil {
		t.Error("unknown mood should fail")
	}
}

func TestPluginsList(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("SWATCH_DISABLED_PLUGINS", "output:yaml")

	out := env.mustRun("plugins", "list")
	for _, name := range []string{"scheme", "file", "remote-json", "remote-css", "ai", "css", "tailwind", "json", "yaml"} {
		if !strings.Contains(out, name) {
			t.Errorf("plugins list missing %s", name)
		}
	}
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 3 && fields[1] == "yaml" && fields[2] != "disabled" {
			t.Errorf("yaml should be disabled: %q", line)
		}
	}

	if _, _, err := env.run("generate", "-o", "yaml"); err == nil || !strings.Contains(err.Error(), "disabled") {
		t.Errorf("disabled output plugin should be rejected, got %v", err)
	}
}

func TestPluginsConfigFile(t *testing.T) {
	env := newTestEnv(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("plugins:\n  disabled: [\"input:ai\"]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, _, err := env.run("--config", cfgPath, "generate", "-i", "ai", "--ai.prompt", "x")
	if err == nil || !strings.Contains(err.Error(), "input plugin ai is disabled") {
		t.Errorf("error = %v", err)
	}
}

func TestPluginsEnableDisable(t *testing.T) {
	env := newTestEnv(t)
	cfgPath := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "swatch", "config.yaml")

	status := func(t *testing.T, typ, name string) string {
		t.Helper()
		for _, line := range strings.Split(env.mustRun("plugins", "list"), "\n") {
			fields := strings.Fields(line)
			if len(fields) >= 3 && fields[0] == typ && fields[1] == name {
				return fields[2]
			}
		}
		t.Fatalf("plugins list has no %s:%s", typ, name)
		return ""
	}

	steps := []struct {
		name      string
		args      []string
		check     [][2]string
		want      string
		wantSaved string
	}{
		{"disable bare name", []string{"plugins", "disable", "ai"}, [][2]string{{"input", "ai"}}, "disabled", "input:ai"},
		{"disable typed names", []string{"plugins", "disable", "output:yaml", "tailwind"}, [][2]string{{"output", "yaml"}, {"output", "tailwind"}}, "disabled", "output:tailwind"},
		{"enable again", []string{"plugins", "enable", "input:ai", "yaml"}, [][2]string{{"input", "ai"}, {"output", "yaml"}}, "enabled", "output:tailwind"},
	}
	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			env.mustRun(step.args...)
			for _, c := range step.check {
				if got := status(t, c[0], c[1]); got != step.want {
					t.Errorf("%s:%s is %s, want %s", c[0], c[1], got, step.want)
				}
			}
			data, err := os.ReadFile(cfgPath)
			if err != nil {
				t.Fatalf("config file not written: %v", err)
			}
			if !strings.Contains(string(data), step.wantSaved) {
				t.Errorf("config file missing %s:\n%s", step.wantSaved, data)
			}
		})
	}

	if _, _, err := env.run("generate", "-o", "tailwind"); err == nil || !strings.Contains(err.Error(), "disabled") {
		t.Errorf("generate with a disabled output = %v, want disabled error", err)
	}

	for _, args := range [][]string{
		{"plugins", "enable", "kitty"},
		{"plugins", "disable", "theme:css"},
		{"plugins", "disable"},
	} {
		if _, _, err := env.run(args...); err == nil {
			t.Errorf("swatch %s should fail", strings.Join(args, " "))
		}
	}
}

func TestPluginsDisableIgnoresEnvironmentLists(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("SWATCH_DISABLED_PLUGINS", "output:json")
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("max_attempts: 12\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	env.mustRun("--config", cfgPath, "plugins", "disable", "css")

	data, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	saved := string(data)
	for _, want := range []string{"max_attempts: 12", "output:css"} {
		if !strings.Contains(saved, want) {
			t.Errorf("config file missing %q:\n%s", want, saved)
		}
	}
	if strings.Contains(saved, "output:json") {
		t.Errorf("environment list was written to the config file:\n%s", saved)
	}
}

func TestPluginTemplates(t *testing.T) {
	env := newTestEnv(t)
	dir := t.TempDir()

	out := env.mustRun("plugins", "templates", "dump", "-l", dir)
	for _, want := range []string{
		filepath.Join(dir, "css", "variables.css.tmpl"),
		filepath.Join(dir, "tailwind", "globals.css.tmpl"),
		filepath.Join(dir, "tailwind", "tailwind.config.js.tmpl"),
	} {
		if _, err := os.Stat(want); err != nil {
			t.Errorf("%s not dumped: %v", want, err)
		}
		if !strings.Contains(out, want) {
			t.Errorf("dump output missing %s", want)
		}
	}

	list := env.mustRun("plugins", "templates", "list")
	if !strings.Contains(list, "variables.css.tmpl") || !strings.Contains(list, "embedded") {
		t.Errorf("templates list:\n%s", list)
	}

	if _, _, err := env.run("plugins", "templates", "dump", "-o", "json", "-l", dir); err == nil {
		t.Error("dumping a plugin without templates should fail")
	}
}

func TestVersionCommand(t *testing.T) {
	env := newTestEnv(t)

	if out := env.mustRun("version", "--short"); strings.TrimSpace(out) != version.Version {
		t.Errorf("version --short = %q", out)
	}

	var info version.Info
	if err := json.Unmarshal([]byte(env.mustRun("version", "--json")), &info); err != nil {
		t.Fatal(err)
	}
	if info.Name != "swatch" {
		t.Errorf("info.Name = %q", info.Name)
	}
}
