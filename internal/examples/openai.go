package examples

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/svenska/internal/apierr"
	"codeberg.org/snonux/svenska/internal/vocab"
)

// OpenAIGenerator generates examples with the OpenAI chat API directly
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator creates a generator. baseURL may be empty.
func NewOpenAIGenerator(apiKey, baseURL, model string) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not configured")
	}
	if model == "" {
		model = DefaultOpenAIModel
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIGenerator{client: openai.NewClientWithConfig(config), model: model}, nil
}

// Generate sends one chat completion request
func (g *OpenAIGenerator) Generate(ctx context.Context, req Request) ([]vocab.Example, error) {
	chatReq := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: SystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: UserPrompt(req),
			},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	resp, err := g.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, apierr.OpenAI("generate examples", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, &apierr.MalformedResponseError{Reason: "no response from OpenAI"}
	}

	return ParseExamples(resp.Choices[0].Message.Content)
}

// Name returns the generator name
func (g *OpenAIGenerator) Name() string {
	return "openai/" + g.model
}
