// Package seed provides seed selection for the palette generator's random source.
// A fixed seed makes scheme generation, random dispatch and mood variation reproducible.
package seed

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// Mode determines how the generator seed is chosen.
type Mode string

const (
	// ModeRandom uses a non-deterministic seed (varies each run, default).
	ModeRandom Mode = "random"
	// ModeManual uses a user-provided seed value.
	ModeManual Mode = "manual"
	// ModeText hashes a piece of text, such as a brand name, into a seed.
	ModeText Mode = "text"
)

// Config holds configuration for seed generation.
type Config struct {
	Mode  Mode   // Seed mode
	Value *int64 // Seed value (only used when Mode is ModeManual)
	Text  string // Seed text (only used when Mode is ModeText)
}

// Calculate determines the seed value based on the seed mode.
func Calculate(config Config) (uint64, error) {
	switch config.Mode {
	case ModeManual:
		if config.Value == nil {
			return 0, fmt.Errorf("seed value is required for manual seed mode")
		}
		return uint64(*config.Value), nil // #nosec G115 -- sign is irrelevant for a seed
	case ModeText:
		if strings.TrimSpace(config.Text) == "" {
			return 0, fmt.Errorf("seed text is required for text seed mode")
		}
		return TextSeed(config.Text), nil
	case ModeRandom, "":
		return GenerateRandomSeed(), nil
	default:
		return 0, fmt.Errorf("unknown seed mode: %s", config.Mode)
	}
}

// TextSeed hashes normalised text into a seed. Case and surrounding space are ignored.
func TextSeed(text string) uint64 {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(text))))
	return binary.LittleEndian.Uint64(sum[:8])
}

// GenerateRandomSeed generates a non-deterministic random seed.
func GenerateRandomSeed() uint64 {
	// #nosec G404 -- seed generation is intentionally non-deterministic
	return uint64(time.Now().UnixNano()) ^ rand.Uint64() // #nosec G115 -- wraps intentionally
}

// NewRand returns a PCG-backed random source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) // #nosec G404 -- palette generation is not security sensitive
}
