package examples

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"codeberg.org/snonux/svenska/internal/apierr"
	"codeberg.org/snonux/svenska/internal/vocab"
)

// Request is one example generation request.
type Request struct {
	Word        string
	Translation string
	// Existing examples are sent so the provider can avoid duplicates
	Existing []vocab.Example
	WordID   string
}

// Generator produces new example pairs for a word
type Generator interface {
	Generate(ctx context.Context, req Request) ([]vocab.Example, error)
	Name() string
}

// Service fetches examples for words.
type Service struct {
	generator Generator
}

// NewService creates a service backed by generator
func NewService(generator Generator) *Service {
	return &Service{generator: generator}
}

// Fetch asks the generator for new examples for word. existing are the
// examples currently shown, if any.
func (s *Service) Fetch(ctx context.Context, word *vocab.Word, existing []vocab.Example) ([]vocab.Example, error) {
	if word == nil || strings.TrimSpace(word.Original) == "" {
		return nil, fmt.Errorf("no word to generate examples for")
	}

	req := Request{
		Word:        word.Original,
		Translation: word.Translation,
		Existing:    vocab.CloneExamples(existing),
		WordID:      word.ID,
	}

	log.Debug("generating examples", "word", word.Original, "existing", len(existing), "provider", s.generator.Name())

	generated, err := s.generator.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	result := make([]vocab.Example, 0, len(generated))
	for _, ex := range generated {
		ex.Swedish = strings.TrimSpace(ex.Swedish)
		ex.English = strings.TrimSpace(ex.English)
		if ex.Swedish == "" {
			continue
		}
		result = append(result, ex)
	}
	if len(result) == 0 {
		return nil, &apierr.MalformedResponseError{Reason: "no examples in response"}
	}
	return result, nil
}

// Name returns the generator name
func (s *Service) Name() string {
	return s.generator.Name()
}

// Merge puts generated examples in front of the shown ones. Duplicates are
// left to the generator to avoid.
func Merge(generated, shown []vocab.Example) []vocab.Example {
	merged := make([]vocab.Example, 0, len(generated)+len(shown))
	merged = append(merged, generated...)
	return append(merged, shown...)
}
