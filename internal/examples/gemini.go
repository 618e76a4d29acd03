package examples

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"codeberg.org/snonux/svenska/internal/apierr"
	"codeberg.org/snonux/svenska/internal/vocab"
)

// GeminiGenerator generates examples with the Gemini API
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a generator. baseURL may be empty.
func NewGeminiGenerator(ctx context.Context, apiKey, baseURL, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key not configured")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	config := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		config.HTTPOptions.BaseURL = baseURL
	}

	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

// Generate sends one GenerateContent request
func (g *GeminiGenerator) Generate(ctx context.Context, req Request) ([]vocab.Example, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](temperature),
		MaxOutputTokens:   maxTokens,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(UserPrompt(req)), config)
	if err != nil {
		return nil, geminiError(err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, &apierr.MalformedResponseError{Reason: "no response from Gemini"}
	}
	return ParseExamples(text)
}

// Name returns the generator name
func (g *GeminiGenerator) Name() string {
	return "gemini/" + g.model
}

func geminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &apierr.ProviderError{Op: "generate examples", Status: apiErr.Code, Message: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &apierr.ProviderError{Op: "generate examples", Status: apiErrPtr.Code, Message: apiErrPtr.Message}
	}
	return apierr.Network("generate examples", err)
}
