package proxy

import (
	"context"
	"encoding/json"
	"net/http"

	"codeberg.org/snonux/svenska/internal/apierr"
	"codeberg.org/snonux/svenska/internal/examples"
	"codeberg.org/snonux/svenska/internal/vocab"
)

type generateRequest struct {
	SwedishWord        string                `json:"swedishWord"`
	EnglishTranslation string                `json:"englishTranslation"`
	ExistingExamples   []vocab.ExampleRecord `json:"existingExamples,omitempty"`
	WordID             string                `json:"wordId,omitempty"`
}

// Generate asks the proxy for new examples
func (c *Client) Generate(ctx context.Context, req examples.Request) ([]vocab.Example, error) {
	body := generateRequest{
		SwedishWord:        req.Word,
		EnglishTranslation: req.Translation,
		WordID:             req.WordID,
	}
	if len(req.Existing) > 0 {
		body.ExistingExamples = vocab.ExampleRecords(req.Existing)
	}

	resp, err := c.do(ctx, "generate examples", http.MethodPost, "/api/generate-examples", body)
	if err != nil {
		return nil, err
	}

	var out struct {
		Examples json.RawMessage `json:"examples"`
	}
	if err := json.Unmarshal(resp.body, &out); err == nil && len(out.Examples) > 0 {
		return examples.ParseExamples(string(out.Examples))
	}
	// Fall back to digging the array out of whatever came back
	return examples.ParseExamples(string(resp.body))
}

// Translate translates text on the proxy
func (c *Client) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	body := struct {
		Text       string `json:"text"`
		SourceLang string `json:"sourceLang"`
		TargetLang string `json:"targetLang"`
	}{Text: text, SourceLang: sourceLang, TargetLang: targetLang}

	var out struct {
		Translation string `json:"translation"`
	}
	if err := c.doJSON(ctx, "translate", http.MethodPost, "/api/translate", body, &out); err != nil {
		return "", err
	}
	if out.Translation == "" {
		return "", &apierr.MalformedResponseError{Reason: "translate: empty translation"}
	}
	return out.Translation, nil
}
