package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"codeberg.org/snonux/svenska/internal/audio"
	"codeberg.org/snonux/svenska/internal/vocab"
)

// MockVocabulary is an in-memory vocabulary
type MockVocabulary struct {
	mu sync.Mutex

	Words        []*vocab.Word
	GetAllErr    error
	CreateErr    error
	UpdateErr    error
	IncrementErr error
	// UpdateDelay makes Update take this long unless its context ends first
	UpdateDelay time.Duration

	Created     []*vocab.Word
	Updates     []vocab.Word
	Increments  []string
	GetAllCalls int
}

// GetAll returns copies of Words
func (m *MockVocabulary) GetAll(ctx context.Context) ([]*vocab.Word, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetAllCalls++
	if m.GetAllErr != nil {
		return nil, m.GetAllErr
	}
	out := make([]*vocab.Word, len(m.Words))
	for i, w := range m.Words {
		c := w.Clone()
		out[i] = &c
	}
	return out, nil
}

// Create stores a new word with a generated ID
func (m *MockVocabulary) Create(ctx context.Context, original, translation string) (*vocab.Word, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	w := &vocab.Word{
		ID:          fmt.Sprintf("custom%d", len(m.Created)+1),
		Original:    original,
		Translation: translation,
	}
	m.Created = append(m.Created, w)
	return w, nil
}

// Update records the update
func (m *MockVocabulary) Update(ctx context.Context, w vocab.Word) (*vocab.Word, error) {
	m.mu.Lock()
	delay := m.UpdateDelay
	m.mu.Unlock()
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Updates = append(m.Updates, w.Clone())
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	c := w.Clone()
	return &c, nil
}

// IncrementReadCount records the id
func (m *MockVocabulary) IncrementReadCount(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Increments = append(m.Increments, id)
	return m.IncrementErr
}

// UpdateCalls returns a copy of the recorded updates
func (m *MockVocabulary) UpdateCalls() []vocab.Word {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]vocab.Word(nil), m.Updates...)
}

// IncrementCalls returns a copy of the recorded read count increments
func (m *MockVocabulary) IncrementCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Increments...)
}

// FetchCall is one recorded example generation request
type FetchCall struct {
	Word     string
	Existing []vocab.Example
}

// MockExampleFetcher returns canned examples. When Block is set, Fetch
// signals Started and waits for Block to be closed.
type MockExampleFetcher struct {
	mu sync.Mutex

	Results [][]vocab.Example
	Err     error
	Block   chan struct{}
	Started chan struct{}

	Calls []FetchCall
}

// Fetch returns the next result
func (m *MockExampleFetcher) Fetch(ctx context.Context, word *vocab.Word, existing []vocab.Example) ([]vocab.Example, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, FetchCall{Word: word.Original, Existing: vocab.CloneExamples(existing)})
	block, started := m.Block, m.Started
	m.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if block != nil {
		<-block
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Results) == 0 {
		return nil, fmt.Errorf("no canned examples left")
	}
	result := m.Results[0]
	m.Results = m.Results[1:]
	return vocab.CloneExamples(result), nil
}

// CallCount returns the number of Fetch calls
func (m *MockExampleFetcher) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockAudioCache records preloads and plays. When AssignFilename is set,
// Play hands it to the subject's Persist function like a real cache does
// after synthesis.
type MockAudioCache struct {
	mu sync.Mutex

	PlayErr        error
	AssignFilename string

	Preloads []audio.Subject
	Plays    []audio.Subject
	Stops    int
}

// Preload records the subject
func (m *MockAudioCache) Preload(s audio.Subject) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Preloads = append(m.Preloads, s)
}

// Play records the subject
func (m *MockAudioCache) Play(ctx context.Context, s audio.Subject) error {
	m.mu.Lock()
	m.Plays = append(m.Plays, s)
	err, filename := m.PlayErr, m.AssignFilename
	m.mu.Unlock()

	if err != nil {
		return &audioError{err}
	}
	if filename != "" && s.Persist != nil {
		return s.Persist(ctx, filename)
	}
	return nil
}

// Stop counts calls
func (m *MockAudioCache) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Stops++
}

// PlayedTexts returns the texts of all plays
func (m *MockAudioCache) PlayedTexts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Plays))
	for i, s := range m.Plays {
		out[i] = s.Text
	}
	return out
}

// PreloadedTexts returns the texts of all preloads
func (m *MockAudioCache) PreloadedTexts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Preloads))
	for i, s := range m.Preloads {
		out[i] = s.Text
	}
	return out
}

type audioError struct{ err error }

func (e *audioError) Error() string { return "playback failed: " + e.err.Error() }
func (e *audioError) Unwrap() error { return e.err }

// MockTranslator translates from a dictionary
type MockTranslator struct {
	mu           sync.Mutex
	Translations map[string]string
	Err          error
	Calls        []string
}

// Translate looks text up in Translations
func (m *MockTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, fmt.Sprintf("%s>%s:%s", sourceLang, targetLang, text))
	if m.Err != nil {
		return "", m.Err
	}
	if t, ok := m.Translations[text]; ok {
		return t, nil
	}
	return "translated " + text, nil
}

// MockNotifier records alerts
type MockNotifier struct {
	mu     sync.Mutex
	alerts []string
}

// Alert records msg
func (m *MockNotifier) Alert(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alerts = append(m.alerts, msg)
}

// Alerts returns the recorded alerts
func (m *MockNotifier) Alerts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.alerts...)
}

// MockWordCache is an in-memory word cache
type MockWordCache struct {
	mu      sync.Mutex
	Words   []*vocab.Word
	LoadErr error
	Saved   [][]*vocab.Word
}

// LoadWords returns Words
func (m *MockWordCache) LoadWords(ctx context.Context) ([]*vocab.Word, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Words, m.LoadErr
}

// SaveWords records words
func (m *MockWordCache) SaveWords(ctx context.Context, words []*vocab.Word) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saved = append(m.Saved, words)
	return nil
}

// SaveCount returns how often SaveWords was called
func (m *MockWordCache) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Saved)
}
