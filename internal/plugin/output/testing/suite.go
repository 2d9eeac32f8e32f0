// Package testing provides shared test utilities for output plugins.
package testing

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/plugin/output"
	"github.com/jmylchreest/swatch/internal/scheme"
)

// TestConfig holds configuration for running plugin tests.
type TestConfig struct {
	ExpectedName  string   // Plugin name
	ExpectedFiles []string // Files that Generate() should return
	ExpectedFlags []string // Flags RegisterFlags() must define
}

// CreateTestTheme builds a theme from a curated palette ("Ocean" for light,
// "Midnight" for dark).
func CreateTestTheme(t *testing.T, dark bool) *output.Theme {
	t.Helper()
	name, mode := "Ocean", "light"
	if dark {
		name, mode = "Midnight", "dark"
	}
	c, err := scheme.LookupCurated(name)
	if err != nil {
		t.Fatalf("LookupCurated(%q) error = %v", name, err)
	}
	theme, err := output.NewTheme(name, mode, "random", c.Palette, 0)
	if err != nil {
		t.Fatalf("NewTheme() error = %v", err)
	}
	return theme
}

// TestBasicInterface tests the methods every plugin must implement.
func TestBasicInterface(t *testing.T, p output.Plugin, expectedName string) {
	t.Run("Name", func(t *testing.T) {
		if p.Name() != expectedName {
			t.Errorf("Name() = %s, want %s", p.Name(), expectedName)
		}
	})

	t.Run("Description", func(t *testing.T) {
		if p.Description() == "" {
			t.Error("Description() should not be empty")
		}
	})

	t.Run("Validate", func(t *testing.T) {
		if err := p.Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})
}

// TestGeneration tests Generate for both modes and a nil theme.
func TestGeneration(t *testing.T, p output.Plugin, expectedFiles []string) {
	for _, dark := range []bool{false, true} {
		name := "GenerateLight"
		if dark {
			name = "GenerateDark"
		}
		t.Run(name, func(t *testing.T) {
			files, err := p.Generate(CreateTestTheme(t, dark))
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if len(files) != len(expectedFiles) {
				t.Fatalf("Generate() returned %d files, want %d", len(files), len(expectedFiles))
			}
			for _, f := range expectedFiles {
				content, ok := files[f]
				if !ok {
					t.Errorf("Generate() did not return %s", f)
					continue
				}
				if len(content) == 0 {
					t.Errorf("Generate() returned empty %s", f)
				}
			}
		})
	}

	t.Run("GenerateNilTheme", func(t *testing.T) {
		if _, err := p.Generate(nil); err == nil {
			t.Error("Generate() with nil theme should return error")
		}
	})
}

// TestFlags tests plugin-specific flag registration.
func TestFlags(t *testing.T, p output.Plugin, flags []string) {
	t.Run("RegisterFlags", func(t *testing.T) {
		cmd := &cobra.Command{Use: "test"}
		p.RegisterFlags(cmd)
		for _, name := range flags {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("RegisterFlags() did not register %s", name)
			}
		}
	})
}

// RunAllTests runs all standard tests for a plugin.
func RunAllTests(t *testing.T, p output.Plugin, config TestConfig) {
	TestBasicInterface(t, p, config.ExpectedName)
	TestGeneration(t, p, config.ExpectedFiles)
	TestFlags(t, p, config.ExpectedFlags)
}
