package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"google.golang.org/genai"

	"github.com/jmylchreest/swatch/internal/colour"
)

// Backend names accepted by NewGeminiService.
const (
	BackendGeminiAPI = "gemini-api"
	BackendVertexAI  = "vertex-ai"

	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 30 * time.Second
)

// Options configures a GeminiService.
type Options struct {
	Backend string
	Model   string
	// APIKey is required for the Gemini API backend. Vertex AI uses
	// application default credentials.
	APIKey  string
	Timeout time.Duration
	Logger  hclog.Logger
}

// contentGenerator is the part of *genai.Models the service uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiService generates palettes with Google Gen AI structured output.
type GeminiService struct {
	models  contentGenerator
	model   string
	timeout time.Duration
	logger  hclog.Logger
}

// NewGeminiService creates the client once; callers keep the service for the
// lifetime of their settings.
func NewGeminiService(ctx context.Context, opts Options) (*GeminiService, error) {
	cfg := &genai.ClientConfig{}
	switch opts.Backend {
	case BackendVertexAI:
		cfg.Backend = genai.BackendVertexAI
	case "", BackendGeminiAPI:
		cfg.Backend = genai.BackendGeminiAPI
		if opts.APIKey == "" {
			return nil, fmt.Errorf("an API key is required for the Gemini API backend\nGet one at: https://aistudio.google.com/api-keys")
		}
		cfg.APIKey = opts.APIKey
	default:
		return nil, fmt.Errorf("invalid AI backend: %s (must be '%s' or '%s')", opts.Backend, BackendGeminiAPI, BackendVertexAI)
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gen AI client: %w", err)
	}
	return newGeminiService(client.Models, opts), nil
}

func newGeminiService(models contentGenerator, opts Options) *GeminiService {
	s := &GeminiService{
		models:  models,
		model:   strings.TrimPrefix(opts.Model, "models/"),
		timeout: opts.Timeout,
		logger:  opts.Logger,
	}
	if s.model == "" {
		s.model = defaultModel
	}
	if s.timeout <= 0 {
		s.timeout = defaultTimeout
	}
	if s.logger == nil {
		s.logger = hclog.NewNullLogger()
	}
	s.logger = s.logger.Named("ai")
	return s
}

// GeneratePalette implements Service.
func (s *GeminiService) GeneratePalette(ctx context.Context, prompt string, dark bool) (colour.Palette, error) {
	if strings.TrimSpace(prompt) == "" {
		return colour.Palette{}, ErrEmptyPrompt
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   ResponseSchema(),
		Temperature:      genai.Ptr[float32](0.9),
	}

	s.logger.Debug("requesting palette", "model", s.model, "dark", dark)
	start := time.Now()
	resp, err := s.models.GenerateContent(ctx, s.model, genai.Text(BuildPrompt(prompt, dark)), config)
	if err != nil {
		return colour.Palette{}, fmt.Errorf("failed to generate palette: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return colour.Palette{}, fmt.Errorf("no candidates in model response")
	}

	p, err := ParseResponse(resp.Text())
	if err != nil {
		return colour.Palette{}, fmt.Errorf("invalid palette from model: %w", err)
	}
	s.logger.Debug("palette received", "model", s.model, "elapsed", time.Since(start))
	return p, nil
}

// ResponseSchema describes the JSON object the model must return.
func ResponseSchema() *genai.Schema {
	props := make(map[string]*genai.Schema)
	var required []string
	for _, r := range colour.AllRoles() {
		props[string(r)] = &genai.Schema{
			Type:        genai.TypeString,
			Pattern:     "^#[0-9A-Fa-f]{6}$",
			Description: fmt.Sprintf("%s colour as #RRGGBB", r),
		}
		required = append(required, string(r))
	}
	return &genai.Schema{
		Type:             genai.TypeObject,
		Properties:       props,
		Required:         required,
		PropertyOrdering: required,
	}
}
