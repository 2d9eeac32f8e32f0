// Package scheme generates 15-role palettes from colour-theory schemes.
//
// The five generators (monochromatic, analogous, complementary, triadic and
// tetradic) are pure functions of a base hue and a light/dark flag. A Generator
// owns the random source that picks hues, jitter and the "random" dispatch, and
// layers role locking, mood variation and the accessibility retry loop on top.
package scheme

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/seed"
)

// Type names a colour-theory strategy.
type Type string

const (
	TypeMonochromatic Type = "monochromatic"
	TypeAnalogous     Type = "analogous"
	TypeComplementary Type = "complementary"
	TypeTriadic       Type = "triadic"
	TypeTetradic      Type = "tetradic"
	// TypeRandom mixes curated palettes with randomly chosen generators.
	TypeRandom Type = "random"
)

// DefaultMaxAttempts is the default budget of the accessibility loop.
const DefaultMaxAttempts = 50

// curatedChance is the probability that Random picks a curated palette.
const curatedChance = 0.3

var generatorTypes = []Type{TypeMonochromatic, TypeAnalogous, TypeComplementary, TypeTriadic, TypeTetradic}

// GeneratorTypes returns the five deterministic scheme types.
func GeneratorTypes() []Type {
	return slices.Clone(generatorTypes)
}

// ValidTypes returns every accepted scheme type, including Random.
func ValidTypes() []Type {
	return append(GeneratorTypes(), TypeRandom)
}

// ParseType converts a string to a Type.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(ValidTypes(), t) {
		return t, nil
	}
	return "", fmt.Errorf("invalid scheme: %s (valid: monochromatic, analogous, complementary, triadic, tetradic, random)", s)
}

// Generator produces palettes. It is not safe for concurrent use.
type Generator struct {
	rng         *rand.Rand
	maxAttempts int
	minContrast float64
	logger      hclog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes generation reproducible.
func WithSeed(s uint64) Option {
	return func(g *Generator) {
		g.rng = seed.NewRand(s)
	}
}

// WithMaxAttempts sets the accessibility loop budget. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// WithMinContrast sets the ratio the accessibility loop requires. Values below 1 are ignored.
func WithMinContrast(ratio float64) Option {
	return func(g *Generator) {
		if ratio >= 1 {
			g.minContrast = ratio
		}
	}
}

// WithLogger sets the logger used for generation diagnostics.
func WithLogger(l hclog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates a Generator. Without WithSeed it is seeded randomly.
func New(opts ...Option) *Generator {
	g := &Generator{
		maxAttempts: DefaultMaxAttempts,
		minContrast: colour.MinContrastAA,
		logger:      hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = seed.NewRand(seed.GenerateRandomSeed())
	}
	return g
}

// MaxAttempts returns the accessibility loop budget.
func (g *Generator) MaxAttempts() int {
	return g.maxAttempts
}

// MinContrast returns the ratio the accessibility loop requires.
func (g *Generator) MinContrast() float64 {
	return g.minContrast
}

// Generate draws a palette for scheme t with a fresh random base hue.
func (g *Generator) Generate(t Type, dark bool) (colour.Palette, error) {
	switch t {
	case TypeMonochromatic:
		return Monochromatic(g.hue(), dark, g.monoJitter(dark)), nil
	case TypeAnalogous:
		return Analogous(g.hue(), dark), nil
	case TypeComplementary:
		return Complementary(g.hue(), dark), nil
	case TypeTriadic:
		return Triadic(g.hue(), dark), nil
	case TypeTetradic:
		return Tetradic(g.hue(), dark), nil
	case TypeRandom:
		return g.random(dark)
	default:
		return colour.Palette{}, fmt.Errorf("invalid scheme: %s", t)
	}
}

// random picks a curated palette 30% of the time, otherwise a uniformly chosen
// generator with a fresh hue.
func (g *Generator) random(dark bool) (colour.Palette, error) {
	if g.rng.Float64() < curatedChance {
		set := CuratedPalettes(dark)
		i := g.rng.IntN(len(set))
		g.logger.Debug("random scheme picked curated palette", "name", set[i].Name, "dark", dark)
		return set[i].Palette, nil
	}

	t := generatorTypes[g.rng.IntN(len(generatorTypes))]
	g.logger.Debug("random scheme picked generator", "scheme", t, "dark", dark)
	return g.Generate(t, dark)
}

// hue draws a whole-degree base hue in [0, 360).
func (g *Generator) hue() float64 {
	return float64(g.rng.IntN(360))
}

// monoJitter draws the per-call saturation and lightness variation for Monochromatic.
func (g *Generator) monoJitter(dark bool) MonoJitter {
	lo := 45.0
	if dark {
		lo = 55.0
	}
	return MonoJitter{
		Saturation:  60 + g.rng.Float64()*30,
		Lightness:   lo + g.rng.Float64()*15,
		AccentShift: g.rng.Float64() * 20,
	}
}

// uniform returns a value in [-spread, spread).
func (g *Generator) uniform(spread float64) float64 {
	return (g.rng.Float64()*2 - 1) * spread
}
