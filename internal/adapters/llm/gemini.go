package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/PabloGalante/cbt-notebook/internal/domain"
)

// GeminiGenerator implements domain.TextGenerator with the Gemini API.
// A client is built per request from the request's API key, since the key
// is resolved at call time and may change between calls.
type GeminiGenerator struct {
	backend genai.Backend
	baseURL string
}

// NewGeminiGenerator talks to the Gemini Developer API.
func NewGeminiGenerator() *GeminiGenerator {
	return &GeminiGenerator{backend: genai.BackendGeminiAPI}
}

// NewVertexGenerator talks to Vertex AI in express mode (API key auth).
func NewVertexGenerator() *GeminiGenerator {
	return &GeminiGenerator{backend: genai.BackendVertexAI}
}

// WithBaseURL points the generator at another endpoint, e.g. a proxy.
// An empty url keeps the SDK default.
func (g *GeminiGenerator) WithBaseURL(url string) *GeminiGenerator {
	g.baseURL = url
	return g
}

// Generate sends a single-prompt request and returns the model's text.
func (g *GeminiGenerator) Generate(ctx context.Context, req domain.GenerateRequest) (string, error) {
	if req.APIKey == "" {
		return "", errors.New("gemini: empty API key")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      req.APIKey,
		Backend:     g.backend,
		HTTPOptions: genai.HTTPOptions{BaseURL: g.baseURL},
	})
	if err != nil {
		return "", fmt.Errorf("creating genai client: %w", err)
	}

	res, err := client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return "", errors.New("gemini returned empty text")
	}

	return text, nil
}

var _ domain.TextGenerator = (*GeminiGenerator)(nil)
