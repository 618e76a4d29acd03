package examples

import (
	"encoding/json"
	"strings"

	"codeberg.org/snonux/svenska/internal/apierr"
	"codeberg.org/snonux/svenska/internal/vocab"
)

type pair struct {
	Swedish string `json:"swedish"`
	English string `json:"english"`
}

// ParseExamples extracts the first well-formed JSON array of
// {swedish, english} objects from text. Models like to wrap the array in
// prose or code fences.
func ParseExamples(text string) ([]vocab.Example, error) {
	var lastErr error
	for i := 0; i < len(text); i++ {
		if text[i] != '[' {
			continue
		}

		var pairs []pair
		dec := json.NewDecoder(strings.NewReader(text[i:]))
		if err := dec.Decode(&pairs); err != nil {
			lastErr = err
			continue
		}
		if !wellFormed(pairs) {
			continue
		}

		examples := make([]vocab.Example, len(pairs))
		for j, p := range pairs {
			examples[j] = vocab.Example{Swedish: p.Swedish, English: p.English}
		}
		return examples, nil
	}

	return nil, &apierr.MalformedResponseError{Reason: "no example array found", Err: lastErr}
}

func wellFormed(pairs []pair) bool {
	if len(pairs) == 0 {
		return false
	}
	for _, p := range pairs {
		if strings.TrimSpace(p.Swedish) == "" {
			return false
		}
	}
	return true
}
