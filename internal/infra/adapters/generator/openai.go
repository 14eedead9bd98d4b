package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"lucky-numbers-platform/internal/domain/model"
	"lucky-numbers-platform/internal/domain/ports/adapter"
)

var _ adapter.NumberSource = (*OpenAISource)(nil)

// OpenAISource asks an OpenAI-compatible Chat Completions endpoint for
// combinations. Base URL is configurable so gateways can be pointed at too.
type OpenAISource struct {
	apiKey string
	base   string // e.g., https://api.openai.com/v1
	model  string
	client *http.Client
}

func NewOpenAISource(apiKey, modelName string) (*OpenAISource, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key empty")
	}
	if modelName == "" {
		modelName = "gpt-4o-mini"
	}
	return &OpenAISource{
		apiKey: apiKey,
		base:   "https://api.openai.com/v1",
		model:  modelName,
		client: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (o *OpenAISource) Name() string { return "openai" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (o *OpenAISource) Generate(ctx context.Context, spec model.DrawSpec) ([]model.Combination, error) {
	reqBody := struct {
		Model    string        `json:"model"`
		Messages []chatMessage `json:"messages"`
	}{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "user", Content: buildPrompt(spec)},
		},
	}

	b, _ := json.Marshal(reqBody)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(o.base, "/")+"/chat/completions", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openai http %d", resp.StatusCode)
	}

	var payload struct {
		Choices []struct {
			Message chatMessage `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	for _, c := range payload.Choices {
		if c.Message.Content != "" {
			return parseResponse(c.Message.Content, spec)
		}
	}
	return nil, errors.New("no choice content")
}
