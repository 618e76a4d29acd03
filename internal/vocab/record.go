package vocab

import (
	"strings"

	"github.com/charmbracelet/log"
)

// Record is the wire form of a word as the backend proxy and the local
// word cache store it. Older backends used `_id` instead of `id`, and the
// first CSV-based caches used `swedish`/`english` instead of
// `original`/`translation`.
type Record struct {
	ID          string          `json:"id,omitempty"`
	MongoID     string          `json:"_id,omitempty"`
	Original    string          `json:"original,omitempty"`
	Swedish     string          `json:"swedish,omitempty"`
	Translation string          `json:"translation,omitempty"`
	English     string          `json:"english,omitempty"`
	Examples    []ExampleRecord `json:"examples,omitempty"`
	Speech      string          `json:"speech,omitempty"`
	ReadCount   int             `json:"readCount,omitempty"`
}

// ExampleRecord is the wire form of an Example.
type ExampleRecord struct {
	Swedish string `json:"swedish"`
	English string `json:"english"`
	Speech  string `json:"speech,omitempty"`
}

// Word normalizes the record. It reports false when the record lacks a
// term or a translation.
func (r Record) Word() (Word, bool) {
	w := Word{
		ID:          firstNonEmpty(r.ID, r.MongoID),
		Original:    strings.TrimSpace(firstNonEmpty(r.Original, r.Swedish)),
		Translation: strings.TrimSpace(firstNonEmpty(r.Translation, r.English)),
		SpeechRef:   r.Speech,
	}
	if w.Original == "" || w.Translation == "" {
		return Word{}, false
	}

	for _, ex := range r.Examples {
		if ex.Swedish == "" {
			continue
		}
		w.Examples = append(w.Examples, Example{
			Swedish:   ex.Swedish,
			English:   ex.English,
			SpeechRef: ex.Speech,
		})
	}

	return w, true
}

// ToRecord converts a word back to its wire form.
func ToRecord(w Word) Record {
	return Record{
		ID:          w.ID,
		Original:    w.Original,
		Translation: w.Translation,
		Examples:    ExampleRecords(w.Examples),
		Speech:      w.SpeechRef,
	}
}

// ExampleRecords converts examples to their wire form. The result is never
// nil so that it serializes as an empty array.
func ExampleRecords(examples []Example) []ExampleRecord {
	out := make([]ExampleRecord, 0, len(examples))
	for _, ex := range examples {
		out = append(out, ExampleRecord{Swedish: ex.Swedish, English: ex.English, Speech: ex.SpeechRef})
	}
	return out
}

// Normalize turns a batch of records into words, dropping the ones that
// cannot be shown.
func Normalize(records []Record) []*Word {
	words := make([]*Word, 0, len(records))
	for _, r := range records {
		w, ok := r.Word()
		if !ok {
			log.Debug("dropping incomplete word record", "id", firstNonEmpty(r.ID, r.MongoID))
			continue
		}
		words = append(words, &w)
	}
	return words
}

// Records is the inverse of Normalize.
func Records(words []*Word) []Record {
	out := make([]Record, 0, len(words))
	for _, w := range words {
		out = append(out, ToRecord(*w))
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
