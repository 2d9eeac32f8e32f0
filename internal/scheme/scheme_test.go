package scheme

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/seed"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		input   string
		want    Type
		wantErr bool
	}{
		{input: "monochromatic", want: TypeMonochromatic},
		{input: " Triadic ", want: TypeTriadic},
		{input: "RANDOM", want: TypeRandom},
		{input: "split-complementary", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseType(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewDefaults(t *testing.T) {
	g := New(WithMaxAttempts(0), WithMinContrast(0.5))
	if g.MaxAttempts() != DefaultMaxAttempts {
		t.Errorf("MaxAttempts() = %d, want %d", g.MaxAttempts(), DefaultMaxAttempts)
	}
	if g.MinContrast() != colour.MinContrastAA {
		t.Errorf("MinContrast() = %v, want %v", g.MinContrast(), colour.MinContrastAA)
	}
}

func TestGenerateSeededIsReproducible(t *testing.T) {
	for _, st := range ValidTypes() {
		a, err := New(WithSeed(99)).Generate(st, false)
		if err != nil {
			t.Fatalf("Generate(%s) error = %v", st, err)
		}
		b, _ := New(WithSeed(99)).Generate(st, false)
		if a != b {
			t.Errorf("Generate(%s) with the same seed differed", st)
		}
	}
}

func TestGenerateUnknownScheme(t *testing.T) {
	if _, err := New(WithSeed(1)).Generate("pastel", false); err == nil {
		t.Error("expected error for unknown scheme")
	}
}

func TestGenerateRandomMixesSources(t *testing.T) {
	g := New(WithSeed(2024))
	curated := map[colour.Palette]bool{}
	for _, c := range CuratedPalettes(true) {
		curated[c.Palette] = true
	}

	var fromCurated, generated int
	for i := 0; i < 200; i++ {
		p, err := g.Generate(TypeRandom, true)
		if err != nil {
			t.Fatalf("Generate(random) error = %v", err)
		}
		if err := p.Validate(); err != nil {
			t.Fatalf("Generate(random) produced invalid palette: %v", err)
		}
		if curated[p] {
			fromCurated++
		} else {
			generated++
		}
	}

	if fromCurated == 0 || generated == 0 {
		t.Errorf("random dispatch never mixed sources: curated=%d generated=%d", fromCurated, generated)
	}
	if fromCurated > generated {
		t.Errorf("curated palettes should be the minority: curated=%d generated=%d", fromCurated, generated)
	}
}

func TestGenerateRandomDrawsOneHue(t *testing.T) {
	for _, dark := range []bool{false, true} {
		for s := uint64(1); s <= 40; s++ {
			got, err := New(WithSeed(s)).Generate(TypeRandom, dark)
			if err != nil {
				t.Fatalf("seed %d: %v", s, err)
			}

			// Replay the dispatch: the chosen generator's hue is the next draw.
			rng := seed.NewRand(s)
			var want colour.Palette
			if rng.Float64() < curatedChance {
				set := CuratedPalettes(dark)
				want = set[rng.IntN(len(set))].Palette
			} else {
				typ := generatorTypes[rng.IntN(len(generatorTypes))]
				hue := float64(rng.IntN(360))
				if typ == TypeMonochromatic {
					lo := 45.0
					if dark {
						lo = 55.0
					}
					jitter := MonoJitter{Saturation: 60 + rng.Float64()*30}
					jitter.Lightness = lo + rng.Float64()*15
					jitter.AccentShift = rng.Float64() * 20
					want = Monochromatic(hue, dark, jitter)
				} else {
					want = allGenerators()[typ](hue, dark)
				}
			}
			if got != want {
				t.Errorf("seed %d dark=%v: Generate(random) = %+v, want %+v", s, dark, got, want)
			}
		}
	}
}

func TestLockSetFlagValue(t *testing.T) {
	var l LockSet
	if err := l.Set("brand, accent"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := l.Set("section-bg-1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got := l.String(); got != "brand,accent,section-bg-1" {
		t.Errorf("String() = %q", got)
	}
	if l.Type() != "roles" {
		t.Errorf("Type() = %q", l.Type())
	}
	if err := l.Set("logo"); err == nil {
		t.Error("expected error for unknown role")
	}

	l.Unlock(colour.RoleAccent)
	if l.Has(colour.RoleAccent) || l.Len() != 2 {
		t.Errorf("Unlock did not remove accent: %s", l.String())
	}
}

func TestGenerateWithLocksKeepsLockedRoles(t *testing.T) {
	current := Complementary(210, false)

	lockCombos := [][]colour.Role{
		{colour.RoleBrand},
		{colour.RoleBrand, colour.RoleTextPrimary, colour.RoleSectionBg1},
		colour.AllRoles(),
	}

	for _, roles := range lockCombos {
		locked := NewLockSet(roles...)
		for _, st := range ValidTypes() {
			g := New(WithSeed(5))
			for i := 0; i < 10; i++ {
				out, err := g.GenerateWithLocks(Request{Scheme: st, Current: current, Locked: locked, Dark: i%2 == 0})
				if err != nil {
					t.Fatalf("GenerateWithLocks(%s) error = %v", st, err)
				}
				for _, r := range roles {
					if out.Get(r) != current.Get(r) {
						t.Errorf("%s: locked role %s changed from %s to %s", st, r, current.Get(r), out.Get(r))
					}
				}
			}
		}
	}
}

func TestGenerateWithLocksBrandScenario(t *testing.T) {
	current := Complementary(210, false)
	g := New(WithSeed(11))

	out, err := g.GenerateWithLocks(Request{
		Scheme:  TypeTriadic,
		Current: current,
		Locked:  NewLockSet(colour.RoleBrand),
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Brand != current.Brand {
		t.Errorf("brand = %s, want locked %s", out.Brand, current.Brand)
	}
	if out == current {
		t.Error("unlocked roles should have been regenerated")
	}
}

func TestGenerateWithLocksPreserveMood(t *testing.T) {
	current := Complementary(120, false)
	g := New(WithSeed(3))

	out, err := g.GenerateWithLocks(Request{
		Scheme:       TypeTetradic,
		Current:      current,
		Locked:       NewLockSet(colour.RoleAccent),
		PreserveMood: "calm",
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, r := range []colour.Role{colour.RoleSectionBg1, colour.RoleTextPrimary, colour.RoleTextSecondary, colour.RoleAccent} {
		if out.Get(r) != current.Get(r) {
			t.Errorf("%s changed during mood variation", r)
		}
	}

	if _, err := g.GenerateWithLocks(Request{Current: current, PreserveMood: "nope"}); err == nil {
		t.Error("expected error for unknown mood")
	}
}

func TestGenerateWithLocksMoodFromEmptyPalette(t *testing.T) {
	g := New(WithSeed(8))
	out, err := g.GenerateWithLocks(Request{PreserveMood: "gothic"})
	if err != nil {
		t.Fatal(err)
	}
	orchid, _ := LookupCurated("Orchid")
	if out.SectionBg1 != orchid.Palette.SectionBg1 {
		t.Errorf("variation should start from the mood palette: got section-bg-1 %s", out.SectionBg1)
	}
	if err := out.Validate(); err != nil {
		t.Error(err)
	}
}

func TestMoodVariationBounds(t *testing.T) {
	current := Analogous(40, false)
	locked := NewLockSet(colour.RoleHighlight)
	g := New(WithSeed(77))

	for i := 0; i < 50; i++ {
		out := g.MoodVariation(current, locked)
		for _, r := range colour.AllRoles() {
			if moodAnchors[r] || locked.Has(r) {
				if out.Get(r) != current.Get(r) {
					t.Fatalf("%s must not vary", r)
				}
				continue
			}

			before, _ := colour.HexToHSL(current.Get(r))
			after, err := colour.HexToHSL(out.Get(r))
			if err != nil {
				t.Fatalf("%s: %v", r, err)
			}
			if after.L < moodMinLightness-1 || after.L > moodMaxLightness+1 {
				t.Errorf("%s lightness %.1f outside [10, 90]", r, after.L)
			}
			if after.S-before.S > moodSaturationSpread+3 || before.S-after.S > moodSaturationSpread+3 {
				t.Errorf("%s saturation moved %.1f -> %.1f", r, before.S, after.S)
			}
			if before.S >= 30 && after.S >= 30 && after.L >= 20 && after.L <= 80 && before.L >= 20 && before.L <= 80 {
				if d := hueDistance(before.H, after.H); d > moodHueSpread+3 {
					t.Errorf("%s hue moved %.1f°", r, d)
				}
			}
		}
	}
}

func TestMoods(t *testing.T) {
	for _, m := range Moods() {
		p, _, err := m.Palette()
		if err != nil {
			t.Errorf("mood %s: %v", m.ID, err)
			continue
		}
		if err := p.Validate(); err != nil {
			t.Errorf("mood %s: %v", m.ID, err)
		}
	}
	if _, err := LookupMood("Gothic"); err != nil {
		t.Errorf("LookupMood is case sensitive: %v", err)
	}
}

func TestGenerateAccessible(t *testing.T) {
	g := New(WithSeed(21))
	for _, st := range ValidTypes() {
		p, err := g.GenerateAccessible(Request{Scheme: st, Dark: true})
		if err != nil {
			t.Fatalf("GenerateAccessible(%s) error = %v", st, err)
		}
		if !IsAccessible(p, colour.MinContrastAA) {
			t.Errorf("GenerateAccessible(%s) returned inaccessible palette", st)
		}
	}
}

func TestGenerateAccessibleViaLocksEntryPoint(t *testing.T) {
	current := Complementary(10, false)
	current.ButtonText = current.ButtonPrimary

	g := New(WithSeed(4), WithMaxAttempts(5))
	_, err := g.GenerateWithLocks(Request{
		Scheme:     TypeAnalogous,
		Current:    current,
		Locked:     NewLockSet(colour.RoleButtonText, colour.RoleButtonPrimary),
		Accessible: true,
	})
	if !errors.Is(err, ErrNoAccessiblePalette) {
		t.Errorf("error = %v, want ErrNoAccessiblePalette", err)
	}
}

func TestGenerateAccessibleExhaustsBudget(t *testing.T) {
	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{Output: &buf, Level: hclog.Trace})

	current := Triadic(300, false)
	current.TextPrimary = "#777777"
	current.SectionBg1 = "#777777"

	g := New(WithSeed(9), WithLogger(logger))
	_, err := g.GenerateAccessible(Request{
		Scheme:  TypeRandom,
		Current: current,
		Locked:  NewLockSet(colour.RoleTextPrimary, colour.RoleSectionBg1),
	})

	var exhausted *AccessibilityExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("error = %v, want *AccessibilityExhaustedError", err)
	}
	if exhausted.Attempts != DefaultMaxAttempts {
		t.Errorf("Attempts = %d, want %d", exhausted.Attempts, DefaultMaxAttempts)
	}
	if !strings.Contains(err.Error(), "No accessible palette found") {
		t.Errorf("error message %q lacks the matched text", err.Error())
	}
	if got := strings.Count(buf.String(), "accessibility attempt failed"); got != DefaultMaxAttempts {
		t.Errorf("logged %d failed attempts, want %d", got, DefaultMaxAttempts)
	}
}

func TestGenerateAccessibleCustomBudget(t *testing.T) {
	current := Triadic(300, false)
	current.ButtonText = "#000000"
	current.ButtonPrimary = "#010101"

	g := New(WithSeed(9), WithMaxAttempts(7))
	_, err := g.GenerateAccessible(Request{
		Scheme:  TypeMonochromatic,
		Current: current,
		Locked:  NewLockSet(colour.RoleButtonText, colour.RoleButtonPrimary),
	})
	var exhausted *AccessibilityExhaustedError
	if !errors.As(err, &exhausted) || exhausted.Attempts != 7 {
		t.Fatalf("error = %v, want exhaustion after 7 attempts", err)
	}
}

func TestCheckAccessibility(t *testing.T) {
	p := Complementary(210, false)
	checks := CheckAccessibility(p, colour.MinContrastAA)
	if len(checks) != 3 {
		t.Fatalf("CheckAccessibility returned %d checks, want 3", len(checks))
	}
	for _, c := range checks {
		if !c.Passed || c.Ratio < colour.MinContrastAA {
			t.Errorf("%s on %s failed with %.2f", c.Foreground, c.Background, c.Ratio)
		}
	}

	p.TextSecondary = "broken"
	checks = CheckAccessibility(p, colour.MinContrastAA)
	if checks[1].Passed || checks[1].Ratio != 0 {
		t.Errorf("unparseable colour should fail with ratio 0, got %+v", checks[1])
	}
}
