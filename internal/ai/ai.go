// Package ai asks a generative model for a complete 15-role palette.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmylchreest/swatch/internal/colour"
)

// ErrEmptyPrompt is returned when GeneratePalette is called without a description.
var ErrEmptyPrompt = errors.New("prompt is required")

// Service produces palettes from a free-text description.
type Service interface {
	GeneratePalette(ctx context.Context, prompt string, dark bool) (colour.Palette, error)
}

// BuildPrompt expands a user description into the instruction sent to the model.
func BuildPrompt(prompt string, dark bool) string {
	mode := "light"
	if dark {
		mode = "dark"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Design a %s-mode website colour palette for: %s\n\n", mode, strings.TrimSpace(prompt))
	sb.WriteString("Return a JSON object with exactly these keys, each a #RRGGBB hex colour:\n")
	for _, r := range colour.AllRoles() {
		fmt.Fprintf(&sb, "- %s\n", r)
	}
	sb.WriteString("\ntext-primary and text-secondary must reach a WCAG contrast of at least 4.5:1 on section-bg-1, ")
	sb.WriteString("and button-text must reach 4.5:1 on button-primary.")
	return sb.String()
}

// ParseResponse extracts a palette from model output. Markdown code fences are
// tolerated; every role must be present.
func ParseResponse(text string) (colour.Palette, error) {
	body := strings.TrimSpace(text)
	if strings.HasPrefix(body, "```") {
		body = strings.TrimPrefix(body, "```json")
		body = strings.TrimPrefix(body, "```")
		body = strings.TrimSuffix(strings.TrimSpace(body), "```")
	}
	if body == "" {
		return colour.Palette{}, fmt.Errorf("empty response from model")
	}
	return colour.ParsePalette([]byte(body))
}

// StaticService returns a fixed palette. It is used offline and in tests.
type StaticService struct {
	Light colour.Palette
	Dark  colour.Palette
	Err   error

	// Prompts records every prompt received.
	Prompts []string
}

// GeneratePalette implements Service.
func (s *StaticService) GeneratePalette(_ context.Context, prompt string, dark bool) (colour.Palette, error) {
	if strings.TrimSpace(prompt) == "" {
		return colour.Palette{}, ErrEmptyPrompt
	}
	s.Prompts = append(s.Prompts, prompt)
	if s.Err != nil {
		return colour.Palette{}, s.Err
	}
	if dark {
		return s.Dark, nil
	}
	return s.Light, nil
}
