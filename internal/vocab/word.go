package vocab

// Example is a generated sentence pair illustrating how a word is used.
// Two examples are the same example when their Swedish text matches.
type Example struct {
	Swedish   string
	English   string
	SpeechRef string
}

// CacheKey identifies the example's audio.
func (e Example) CacheKey() string {
	if e.SpeechRef != "" {
		return e.SpeechRef
	}
	return e.Swedish
}

// Word is a vocabulary term with its translation. The session may attach a
// SpeechRef and append Examples after generation; everything else is fixed
// once the word has been delivered by the vocabulary source.
type Word struct {
	ID          string
	Original    string
	Translation string
	Examples    []Example
	SpeechRef   string
}

// CacheKey identifies the word's audio: the speech reference when one has
// been assigned, the term itself otherwise.
func (w *Word) CacheKey() string {
	if w.SpeechRef != "" {
		return w.SpeechRef
	}
	return w.Original
}

// Persisted reports whether the word has a backing record that updates
// can be written to.
func (w *Word) Persisted() bool {
	return w.ID != ""
}

// HasExamples reports whether examples were generated earlier.
func (w *Word) HasExamples() bool {
	return len(w.Examples) > 0
}

// Clone returns a deep copy that shares no slices with w.
func (w *Word) Clone() Word {
	c := *w
	c.Examples = CloneExamples(w.Examples)
	return c
}

// CloneExamples copies a slice of examples. A nil input stays nil.
func CloneExamples(examples []Example) []Example {
	if examples == nil {
		return nil
	}
	out := make([]Example, len(examples))
	copy(out, examples)
	return out
}

// Stats summarizes a vocabulary.
type Stats struct {
	TotalWords        int `json:"totalWords"`
	TotalReads        int `json:"totalReads"`
	WordsWithExamples int `json:"wordsWithExamples"`
	WordsWithSpeech   int `json:"wordsWithSpeech"`
}
