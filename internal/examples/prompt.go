package examples

import (
	"fmt"
	"strings"

	"codeberg.org/snonux/svenska/internal/vocab"
)

const (
	// DefaultOpenAIModel is the chat model used for examples
	DefaultOpenAIModel = "gpt-4o-mini"
	// DefaultGeminiModel is the Gemini model used for examples
	DefaultGeminiModel = "gemini-2.0-flash"

	temperature = 0.7
	maxTokens   = 500
)

// SystemPrompt sets the teacher persona and level.
const SystemPrompt = "You are a Swedish language teacher helping students learn Swedish. " +
	"Generate simple, practical example sentences that demonstrate how to use Swedish words in everyday contexts. " +
	"Each example should be at A2-B1 level (beginner to intermediate)."

// UserPrompt builds the request for 3 example pairs.
func UserPrompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate 3 example sentences using the Swedish word %q (which means %q in English). For each example, provide:\n", req.Word, req.Translation)
	b.WriteString("1. The Swedish sentence\n2. The English translation\n\n")
	b.WriteString("Format your response as a JSON array with objects containing \"swedish\" and \"english\" properties. Example format:\n")
	b.WriteString(`[{"swedish": "...", "english": "..."}, {"swedish": "...", "english": "..."}, {"swedish": "...", "english": "..."}]`)
	b.WriteString("\n\nMake the sentences natural, practical, and at beginner-intermediate level.")

	if len(req.Existing) > 0 {
		b.WriteString("\n\nThe student has already seen these examples. Write different sentences:\n")
		b.WriteString(existingList(req.Existing))
	}
	return b.String()
}

func existingList(existing []vocab.Example) string {
	var b strings.Builder
	for _, ex := range existing {
		fmt.Fprintf(&b, "- %s\n", ex.Swedish)
	}
	return strings.TrimRight(b.String(), "\n")
}
