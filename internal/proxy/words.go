package proxy

import (
	"context"
	"net/http"
	"net/url"

	"codeberg.org/snonux/svenska/internal/apierr"
	"codeberg.org/snonux/svenska/internal/vocab"
)

// Stats is the vocabulary summary of GET /api/stats
type Stats = vocab.Stats

type wordBody struct {
	Original    string                `json:"original"`
	Translation string                `json:"translation"`
	Examples    []vocab.ExampleRecord `json:"examples"`
	Speech      string                `json:"speech,omitempty"`
}

// GetAll returns every word of the vocabulary
func (c *Client) GetAll(ctx context.Context) ([]*vocab.Word, error) {
	var out struct {
		Words []vocab.Record `json:"words"`
	}
	if err := c.doJSON(ctx, "fetch words", http.MethodGet, "/api/words", nil, &out); err != nil {
		return nil, err
	}
	return vocab.Normalize(out.Words), nil
}

// Get returns one word
func (c *Client) Get(ctx context.Context, id string) (*vocab.Word, error) {
	var rec vocab.Record
	if err := c.doJSON(ctx, "fetch word", http.MethodGet, "/api/words/"+url.PathEscape(id), nil, &rec); err != nil {
		return nil, err
	}
	return recordWord("fetch word", rec)
}

// Create adds a word without examples
func (c *Client) Create(ctx context.Context, original, translation string) (*vocab.Word, error) {
	body := wordBody{Original: original, Translation: translation, Examples: []vocab.ExampleRecord{}}
	var rec vocab.Record
	if err := c.doJSON(ctx, "create word", http.MethodPost, "/api/words", body, &rec); err != nil {
		return nil, err
	}
	return recordWord("create word", rec)
}

// Update replaces the term, translation, examples and speech reference of
// a stored word
func (c *Client) Update(ctx context.Context, w vocab.Word) (*vocab.Word, error) {
	body := wordBody{
		Original:    w.Original,
		Translation: w.Translation,
		Examples:    vocab.ExampleRecords(w.Examples),
		Speech:      w.SpeechRef,
	}
	var rec vocab.Record
	if err := c.doJSON(ctx, "update word", http.MethodPut, "/api/words/"+url.PathEscape(w.ID), body, &rec); err != nil {
		return nil, err
	}
	// Some backends answer with an empty body
	if rec.ID == "" && rec.MongoID == "" && rec.Original == "" {
		updated := w.Clone()
		return &updated, nil
	}
	return recordWord("update word", rec)
}

// Delete removes a word
func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := c.do(ctx, "delete word", http.MethodDelete, "/api/words/"+url.PathEscape(id), nil)
	return err
}

// IncrementReadCount records that the word was shown
func (c *Client) IncrementReadCount(ctx context.Context, id string) error {
	_, err := c.do(ctx, "increment read count", http.MethodPost, "/api/words/"+url.PathEscape(id)+"/increment-read", nil)
	return err
}

// Stats returns vocabulary statistics
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := c.doJSON(ctx, "fetch stats", http.MethodGet, "/api/stats", nil, &stats)
	return stats, err
}

func recordWord(op string, rec vocab.Record) (*vocab.Word, error) {
	w, ok := rec.Word()
	if !ok {
		return nil, &apierr.MalformedResponseError{Reason: op + ": incomplete word record"}
	}
	return &w, nil
}
