package assist

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Request is a single prompt sent to the completion service.
type Request struct {
	Prompt string
	// Structured asks for a JSON answer following the suggestion schema.
	Structured bool
}

// Completer is the port to a text completion service.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, req Request) (string, error)

// Complete calls f.
func (f CompleterFunc) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// GenAICompleter sends prompts to Gemini through one shared client.
type GenAICompleter struct {
	client *genai.Client
	model  string
}

// NewGenAICompleter creates the Gemini client for cfg.
func NewGenAICompleter(ctx context.Context, cfg Config) (*GenAICompleter, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAICompleter{client: client, model: cfg.ModelID}, nil
}

// Model returns the model id requests are sent to.
func (g *GenAICompleter) Model() string {
	return g.model
}

// Complete runs one GenerateContent call. Structured requests carry the
// suggestion response schema and the JSON MIME type.
func (g *GenAICompleter) Complete(ctx context.Context, req Request) (string, error) {
	var config *genai.GenerateContentConfig
	if req.Structured {
		config = &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   suggestionSchema(),
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), config)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	return resp.Text(), nil
}

func suggestionSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":    {Type: genai.TypeString},
			"category": {Type: genai.TypeString},
			"priority": {
				Type: genai.TypeString,
				Enum: []string{"High", "Medium", "Low"},
			},
			"executive_summary": {Type: genai.TypeString},
		},
		Required: []string{"title", "category", "priority", "executive_summary"},
	}
}

var _ Completer = (*GenAICompleter)(nil)
