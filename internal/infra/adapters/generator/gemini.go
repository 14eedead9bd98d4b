package generator

import (
	"context"
	"errors"

	"google.golang.org/genai"

	"lucky-numbers-platform/internal/domain/model"
	"lucky-numbers-platform/internal/domain/ports/adapter"
)

var _ adapter.NumberSource = (*GeminiSource)(nil)

// GeminiSource asks a Gemini model for combinations via the official SDK.
type GeminiSource struct {
	client *genai.Client
	model  string
}

func NewGeminiSource(ctx context.Context, apiKey, baseURL, modelName string) (*GeminiSource, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: empty api key")
	}
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: baseURL,
		},
	})
	if err != nil {
		return nil, err
	}
	return &GeminiSource{client: c, model: modelName}, nil
}

func (g *GeminiSource) Name() string { return "gemini" }

func (g *GeminiSource) Generate(ctx context.Context, spec model.DrawSpec) ([]model.Combination, error) {
	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.model,
		genai.Text(buildPrompt(spec)),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return nil, err
	}
	return parseResponse(resp.Text(), spec)
}
