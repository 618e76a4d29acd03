package proxy

import (
	"context"
	"net/http"
	"net/url"

	"codeberg.org/snonux/svenska/internal/apierr"
	"codeberg.org/snonux/svenska/internal/audio"
)

// SpeechFileHeader carries the filename the proxy assigned to generated
// word audio
const SpeechFileHeader = "X-Speech-File"

// Synthesize generates speech on the proxy. Examples of stored words use
// the example endpoint so the proxy records the filename on the example.
func (c *Client) Synthesize(ctx context.Context, req audio.SpeechRequest) (audio.Speech, error) {
	if err := audio.ValidateSpeechText(req.Text); err != nil {
		return audio.Speech{}, err
	}
	if req.IsExample() {
		return c.synthesizeExample(ctx, req)
	}

	body := struct {
		Text   string `json:"text"`
		WordID string `json:"wordId,omitempty"`
	}{Text: req.Text, WordID: req.WordID}

	resp, err := c.do(ctx, "tts", http.MethodPost, "/api/tts", body)
	if err != nil {
		return audio.Speech{}, err
	}
	if len(resp.body) == 0 {
		return audio.Speech{}, &apierr.MalformedResponseError{Reason: "tts: empty audio"}
	}
	return audio.Speech{Audio: resp.body, Filename: resp.header.Get(SpeechFileHeader)}, nil
}

func (c *Client) synthesizeExample(ctx context.Context, req audio.SpeechRequest) (audio.Speech, error) {
	body := struct {
		WordID       string `json:"wordId"`
		ExampleIndex int    `json:"exampleIndex"`
		ExampleText  string `json:"exampleText"`
	}{WordID: req.WordID, ExampleIndex: req.ExampleIndex, ExampleText: req.Text}

	var out struct {
		SpeechFilename string `json:"speechFilename"`
	}
	if err := c.doJSON(ctx, "example speech", http.MethodPost, "/api/generate-example-speech", body, &out); err != nil {
		return audio.Speech{}, err
	}
	if out.SpeechFilename == "" {
		return audio.Speech{}, &apierr.MalformedResponseError{Reason: "example speech: no filename"}
	}

	data, err := c.Fetch(ctx, out.SpeechFilename)
	if err != nil {
		return audio.Speech{}, err
	}
	return audio.Speech{Audio: data, Filename: out.SpeechFilename}, nil
}

// Fetch downloads stored speech
func (c *Client) Fetch(ctx context.Context, filename string) ([]byte, error) {
	resp, err := c.do(ctx, "fetch speech", http.MethodGet, "/api/speech/"+url.PathEscape(filename), nil)
	if err != nil {
		return nil, err
	}
	return resp.body, nil
}

// Name returns the provider name
func (c *Client) Name() string {
	return "proxy"
}
