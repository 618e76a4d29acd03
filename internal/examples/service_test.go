package examples

import (
	"context"
	"errors"
	"strings"
	"testing"

	"codeberg.org/snonux/svenska/internal/apierr"
	"codeberg.org/snonux/svenska/internal/vocab"
)

type stubGenerator struct {
	requests []Request
	result   []vocab.Example
	err      error
}

func (g *stubGenerator) Generate(ctx context.Context, req Request) ([]vocab.Example, error) {
	g.requests = append(g.requests, req)
	return g.result, g.err
}

func (g *stubGenerator) Name() string { return "stub" }

func TestServiceFetch(t *testing.T) {
	gen := &stubGenerator{result: []vocab.Example{
		{Swedish: " Jag läser en bok. ", English: "I read a book."},
		{Swedish: "", English: "dropped"},
	}}
	svc := NewService(gen)

	word := &vocab.Word{ID: "w1", Original: "bok", Translation: "book"}
	shown := []vocab.Example{{Swedish: "Boken är röd.", English: "The book is red."}}

	got, err := svc.Fetch(context.Background(), word, shown)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(got) != 1 || got[0].Swedish != "Jag läser en bok." {
		t.Errorf("Fetch() = %+v", got)
	}

	if len(gen.requests) != 1 {
		t.Fatalf("generator called %d times, want 1", len(gen.requests))
	}
	req := gen.requests[0]
	if req.Word != "bok" || req.Translation != "book" || req.WordID != "w1" {
		t.Errorf("request = %+v", req)
	}
	if len(req.Existing) != 1 || req.Existing[0].Swedish != "Boken är röd." {
		t.Errorf("Existing = %+v", req.Existing)
	}
}

func TestServiceFetchErrors(t *testing.T) {
	provErr := &apierr.ProviderError{Op: "generate examples", Status: 500, Message: "boom"}

	tests := []struct {
		name   string
		word   *vocab.Word
		gen    *stubGenerator
		target any
	}{
		{name: "provider error passes through", word: &vocab.Word{Original: "bok"}, gen: &stubGenerator{err: provErr}, target: new(*apierr.ProviderError)},
		{name: "empty result", word: &vocab.Word{Original: "bok"}, gen: &stubGenerator{}, target: new(*apierr.MalformedResponseError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewService(tt.gen).Fetch(context.Background(), tt.word, nil)
			if !errors.As(err, tt.target) {
				t.Errorf("Fetch() error = %v (%T)", err, err)
			}
			if len(tt.gen.requests) != 1 {
				t.Errorf("generator called %d times, want exactly 1 (no retries)", len(tt.gen.requests))
			}
		})
	}

	if _, err := NewService(&stubGenerator{}).Fetch(context.Background(), nil, nil); err == nil {
		t.Error("Fetch(nil) should fail")
	}
}

func TestMerge(t *testing.T) {
	shown := []vocab.Example{{Swedish: "a"}, {Swedish: "b"}, {Swedish: "c"}}
	generated := []vocab.Example{{Swedish: "d"}, {Swedish: "e"}}

	got := Merge(generated, shown)
	want := []string{"d", "e", "a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Swedish != want[i] {
			t.Errorf("Merge()[%d] = %q, want %q", i, got[i].Swedish, want[i])
		}
	}
}

func TestUserPrompt(t *testing.T) {
	prompt := UserPrompt(Request{Word: "hus", Translation: "house"})
	if !strings.Contains(prompt, `"hus"`) || !strings.Contains(prompt, `"house"`) {
		t.Errorf("prompt misses word or translation: %s", prompt)
	}
	if strings.Contains(prompt, "already seen") {
		t.Error("prompt mentions existing examples without any")
	}

	prompt = UserPrompt(Request{Word: "hus", Translation: "house", Existing: []vocab.Example{{Swedish: "Huset är stort."}}})
	if !strings.Contains(prompt, "Huset är stort.") {
		t.Error("prompt does not list existing examples")
	}
}
