package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"codeberg.org/snonux/svenska/internal/apierr"
	"github.com/sashabaranov/go-openai"
)

// Catalog groups model IDs by what svenska uses them for
type Catalog struct {
	Speech []string
	Chat   []string
}

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister. An empty baseURL uses the OpenAI API.
func NewLister(apiKey, baseURL string) *Lister {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(config),
	}
}

// List fetches and categorizes the models available to the API key
func (l *Lister) List(ctx context.Context) (Catalog, error) {
	var c Catalog
	if l.apiKey == "" {
		return c, fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .svenska.yaml")
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return c, apierr.OpenAI("list models", err)
	}

	for _, model := range models.Models {
		id := model.ID
		switch {
		case strings.Contains(id, "tts"):
			c.Speech = append(c.Speech, id)
		case strings.Contains(id, "gpt") && !strings.Contains(id, "audio") && !strings.Contains(id, "realtime"):
			c.Chat = append(c.Chat, id)
		}
	}

	sort.Strings(c.Speech)
	sort.Strings(c.Chat)
	return c, nil
}

// Print writes the catalog in a human readable form. Long chat model lists
// are cut down to the gpt-4 family.
func Print(w io.Writer, c Catalog) {
	fmt.Fprintln(w, "Available OpenAI Models:")

	fmt.Fprintln(w, "\nText-to-Speech (TTS) Models:")
	if len(c.Speech) == 0 {
		fmt.Fprintln(w, "  No TTS models found")
	}
	for _, model := range c.Speech {
		fmt.Fprintf(w, "  %s\n", model)
	}

	fmt.Fprintln(w, "\nChat Models (for examples and translation):")
	if len(c.Chat) == 0 {
		fmt.Fprintln(w, "  No chat models found")
		return
	}
	if len(c.Chat) <= 10 {
		for _, model := range c.Chat {
			fmt.Fprintf(w, "  %s\n", model)
		}
		return
	}

	shown := 0
	for _, model := range c.Chat {
		if strings.Contains(model, "gpt-4") {
			fmt.Fprintf(w, "  %s\n", model)
			shown++
		}
	}
	fmt.Fprintf(w, "  ... and %d more models\n", len(c.Chat)-shown)
}
