package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"codeberg.org/snonux/svenska/internal/audio"
	"codeberg.org/snonux/svenska/internal/examples"
	"codeberg.org/snonux/svenska/internal/queue"
	"codeberg.org/snonux/svenska/internal/translation"
	"codeberg.org/snonux/svenska/internal/vocab"
)

var (
	// ErrEmptyWord is returned when a custom word is blank
	ErrEmptyWord = errors.New("empty word")
	// ErrNoWord is returned when there is no word to act on
	ErrNoWord = errors.New("no word available")
)

// closeTimeout bounds how long Close waits for background saves
const closeTimeout = 10 * time.Second

// User-facing alert texts
const (
	alertExamples    = "Failed to generate examples: %s\n\nMake sure your proxy server is running."
	alertAudio       = "Failed to play audio. Make sure your proxy server is running."
	alertTranslation = "Failed to fetch translation. Make sure your proxy server is running."
	alertCreate      = "Failed to save word: %s"
	alertEmptyWord   = "Vänligen fyll i ett svenskt ord / Please enter a Swedish word"
)

// ExamplesState is the example display state of the current word
type ExamplesState int

const (
	ExamplesNone ExamplesState = iota
	ExamplesLoading
	ExamplesShown
)

func (s ExamplesState) String() string {
	switch s {
	case ExamplesNone:
		return "none"
	case ExamplesLoading:
		return "loading"
	case ExamplesShown:
		return "shown"
	default:
		return fmt.Sprintf("ExamplesState(%d)", int(s))
	}
}

// Vocabulary is the durable word source
type Vocabulary interface {
	GetAll(ctx context.Context) ([]*vocab.Word, error)
	Create(ctx context.Context, original, translation string) (*vocab.Word, error)
	Update(ctx context.Context, w vocab.Word) (*vocab.Word, error)
	IncrementReadCount(ctx context.Context, id string) error
}

// WordCache is an optional local copy of the vocabulary used to show a
// word before the vocabulary source answers
type WordCache interface {
	LoadWords(ctx context.Context) ([]*vocab.Word, error)
	SaveWords(ctx context.Context, words []*vocab.Word) error
}

// ExampleFetcher generates new examples for a word
type ExampleFetcher interface {
	Fetch(ctx context.Context, word *vocab.Word, existing []vocab.Example) ([]vocab.Example, error)
}

// AudioCache plays and preloads speech
type AudioCache interface {
	Preload(s audio.Subject)
	Play(ctx context.Context, s audio.Subject) error
	Stop()
}

// Notifier shows alerts to the user
type Notifier interface {
	Alert(msg string)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(msg string)

// Alert calls f
func (f NotifierFunc) Alert(msg string) { f(msg) }

// Config holds the collaborators of a Session
type Config struct {
	Queue      *queue.Queue
	Vocabulary Vocabulary
	Examples   ExampleFetcher
	Audio      AudioCache
	Translator translation.Translator
	Notifier   Notifier
}

// Session is one study session
type Session struct {
	queue      *queue.Queue
	vocabulary Vocabulary
	examples   ExampleFetcher
	audio      AudioCache
	translator translation.Translator
	notifier   Notifier

	mu       sync.Mutex
	history  *History
	current  *vocab.Word
	revealed bool
	// shown are the examples on screen, nil when none are
	shown []vocab.Example
	// generating is the entry an in-flight generation writes to
	generating *HistoryEntry
	submitting bool

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a session. Queue, Vocabulary, Examples and Audio are
// required.
func New(config Config) (*Session, error) {
	switch {
	case config.Queue == nil:
		return nil, fmt.Errorf("session needs a word queue")
	case config.Vocabulary == nil:
		return nil, fmt.Errorf("session needs a vocabulary")
	case config.Examples == nil:
		return nil, fmt.Errorf("session needs an example service")
	case config.Audio == nil:
		return nil, fmt.Errorf("session needs an audio cache")
	}
	if config.Notifier == nil {
		config.Notifier = NotifierFunc(func(string) {})
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		queue:      config.Queue,
		vocabulary: config.Vocabulary,
		examples:   config.Examples,
		audio:      config.Audio,
		translator: config.Translator,
		notifier:   config.Notifier,
		history:    NewHistory(),
		ctx:        ctx,
		cancel:     cancel,
	}, nil
}

// examplesStateLocked derives the example state. Loading wins while a generation
// is in flight, whichever word is on screen.
func (s *Session) examplesStateLocked() ExamplesState {
	switch {
	case s.generating != nil:
		return ExamplesLoading
	case s.shown != nil:
		return ExamplesShown
	default:
		return ExamplesNone
	}
}

// DisplayNewWord shows the next word of the queue
func (s *Session) DisplayNewWord() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.displayNewWordLocked()
}

func (s *Session) displayNewWordLocked() error {
	w, ok := s.queue.Next()
	if !ok {
		return ErrNoWord
	}
	log.Debug("drew word", "cycle", s.queue.Cycles(), "remaining", s.queue.Remaining())
	s.displayWordLocked(w, true)
	return nil
}

// displayWordLocked shows w. With addToHistory a new entry is pushed,
// otherwise w is the word of the current history entry.
func (s *Session) displayWordLocked(w *vocab.Word, addToHistory bool) {
	s.current = w
	s.revealed = false
	s.shown = nil

	if addToHistory {
		s.history.Push(&HistoryEntry{Word: w})
		s.incrementReadCount(w)
	} else if entry := s.history.Current(); entry != nil && len(entry.Examples) > 0 {
		s.shown = vocab.CloneExamples(entry.Examples)
		s.preloadExamplesLocked(w, s.shown, len(s.shown))
	}

	s.audio.Preload(s.wordSubjectLocked(w))
	log.Debug("displaying word", "word", w.Original, "history", s.history.Len(), "cursor", s.history.Cursor())
}

// OnWordActivate reveals the translation and speaks the word, or moves on
// to a new word when the translation is already revealed.
func (s *Session) OnWordActivate(ctx context.Context) error {
	s.mu.Lock()
	if s.generating != nil {
		s.mu.Unlock()
		return nil
	}
	if s.current == nil {
		s.mu.Unlock()
		return ErrNoWord
	}
	if s.revealed {
		defer s.mu.Unlock()
		return s.displayNewWordLocked()
	}

	s.revealed = true
	subject := s.wordSubjectLocked(s.current)
	s.mu.Unlock()

	return s.play(ctx, subject)
}

// GoPrevious shows the previous history entry
func (s *Session) GoPrevious() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generating != nil {
		return
	}
	if entry, ok := s.history.Back(); ok {
		s.displayWordLocked(entry.Word, false)
	}
}

// GoNext shows the next history entry, or a new word at the live edge
func (s *Session) GoNext() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generating != nil {
		return nil
	}
	if entry, ok := s.history.Forward(); ok {
		s.displayWordLocked(entry.Word, false)
		return nil
	}
	return s.displayNewWordLocked()
}

// GenerateExamples shows the examples of the current word. Stored examples
// are shown without asking the generator; otherwise new examples are
// generated and put in front of the ones already shown.
func (s *Session) GenerateExamples(ctx context.Context) error {
	s.mu.Lock()
	if s.current == nil || s.generating != nil {
		s.mu.Unlock()
		return nil
	}

	entry := s.history.Current()
	word := entry.Word

	if s.shown == nil && word.HasExamples() {
		s.shown = vocab.CloneExamples(word.Examples)
		entry.Examples = vocab.CloneExamples(word.Examples)
		s.preloadExamplesLocked(word, s.shown, len(s.shown))
		s.mu.Unlock()
		log.Debug("showing stored examples", "word", word.Original, "count", len(word.Examples))
		return nil
	}

	existing := vocab.CloneExamples(s.shown)
	snapshot := word.Clone()
	s.generating = entry
	s.mu.Unlock()

	generated, err := s.examples.Fetch(ctx, &snapshot, existing)

	s.mu.Lock()
	s.generating = nil
	if err != nil {
		s.mu.Unlock()
		log.Warn("example generation failed", "word", snapshot.Original, "err", err)
		s.notifier.Alert(fmt.Sprintf(alertExamples, err))
		return err
	}

	merged := generated
	if existing != nil {
		merged = examples.Merge(generated, existing)
	}

	// The entry may no longer be on screen; it still gets the result
	word.Examples = vocab.CloneExamples(merged)
	entry.Examples = vocab.CloneExamples(merged)
	if s.history.Current() == entry {
		s.shown = vocab.CloneExamples(merged)
	}
	s.preloadExamplesLocked(word, word.Examples, len(generated))
	s.persistLocked(word, "examples")
	s.mu.Unlock()

	return nil
}

// PlayWord speaks the current word
func (s *Session) PlayWord(ctx context.Context) error {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return ErrNoWord
	}
	subject := s.wordSubjectLocked(s.current)
	s.mu.Unlock()

	return s.play(ctx, subject)
}

// PlayExample speaks the i-th shown example
func (s *Session) PlayExample(ctx context.Context, i int) error {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return ErrNoWord
	}
	if i < 0 || i >= len(s.shown) {
		s.mu.Unlock()
		return fmt.Errorf("no example %d", i+1)
	}
	subject := s.exampleSubjectLocked(s.current, i, s.shown[i])
	s.mu.Unlock()

	return s.play(ctx, subject)
}

func (s *Session) play(ctx context.Context, subject audio.Subject) error {
	if err := s.audio.Play(ctx, subject); err != nil {
		log.Warn("playback failed", "text", subject.Text, "err", err)
		s.notifier.Alert(alertAudio)
		return err
	}
	return nil
}

// SubmitCustomWord translates text, stores it as a new word and shows it
// right away. The word is drawn next from the queue.
func (s *Session) SubmitCustomWord(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		s.notifier.Alert(alertEmptyWord)
		return ErrEmptyWord
	}
	if s.translator == nil {
		return fmt.Errorf("no translator configured")
	}

	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return nil
	}
	s.submitting = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()
	}()

	translated, err := s.translator.Translate(ctx, text, translation.Swedish, translation.English)
	if err != nil {
		log.Warn("translation failed", "text", text, "err", err)
		s.notifier.Alert(alertTranslation)
		return err
	}

	w, err := s.vocabulary.Create(ctx, text, translated)
	if err != nil {
		log.Warn("failed to create word", "text", text, "err", err)
		s.notifier.Alert(fmt.Sprintf(alertCreate, err))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.InsertAtCursor(w)
	return s.displayNewWordLocked()
}

// Bootstrap fills the queue and shows the first word. Cached words are
// shown right away while the vocabulary is fetched in the background;
// without cached words Bootstrap waits for the fetch.
func (s *Session) Bootstrap(ctx context.Context, cache WordCache) error {
	var cached []*vocab.Word
	if cache != nil {
		words, err := cache.LoadWords(ctx)
		if err != nil {
			log.Warn("failed to load cached words", "err", err)
		}
		cached = words
	}

	if len(cached) > 0 {
		s.mu.Lock()
		s.queue.SetWords(cached)
		err := s.displayNewWordLocked()
		s.mu.Unlock()
		if err != nil {
			return err
		}
		log.Debug("showing cached words", "count", len(cached))

		s.background(func(ctx context.Context) {
			s.refresh(ctx, cache)
		})
		return nil
	}

	if err := s.refresh(ctx, cache); err != nil {
		return fmt.Errorf("failed to fetch words: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ErrNoWord
	}
	return nil
}

// refresh fetches the vocabulary, stores it in the cache and queues it.
// A word is shown only when nothing is on screen yet.
func (s *Session) refresh(ctx context.Context, cache WordCache) error {
	words, err := s.vocabulary.GetAll(ctx)
	if err != nil {
		log.Warn("failed to fetch words", "err", err)
		return err
	}
	if len(words) == 0 {
		return ErrNoWord
	}

	if cache != nil {
		if err := cache.SaveWords(ctx, words); err != nil {
			log.Warn("failed to cache words", "err", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.SetWords(s.adoptLocked(words))
	log.Debug("vocabulary refreshed", "fetched", len(words), "queued", s.queue.Len())
	if s.current == nil {
		return s.displayNewWordLocked()
	}
	return nil
}

// adoptLocked folds fetched words into the words already queued. A known
// word keeps its pointer and is updated in place so that history entries
// and attachments keep referring to one word; unknown words are appended.
func (s *Session) adoptLocked(fetched []*vocab.Word) []*vocab.Word {
	words := s.queue.Words()
	known := make(map[string]*vocab.Word, len(words))
	for _, w := range words {
		known[identity(w)] = w
	}
	for _, f := range fetched {
		if w, ok := known[identity(f)]; ok {
			update(w, f)
			continue
		}
		known[identity(f)] = f
		words = append(words, f)
	}
	return words
}

func identity(w *vocab.Word) string {
	if w.Persisted() {
		return "id:" + w.ID
	}
	return "term:" + w.Original
}

// update fills in what src knows and dst lacks. Examples attached in this
// session win unless src carries more.
func update(dst, src *vocab.Word) {
	if dst.ID == "" {
		dst.ID = src.ID
	}
	if dst.SpeechRef == "" {
		dst.SpeechRef = src.SpeechRef
	}
	if len(src.Examples) > len(dst.Examples) {
		dst.Examples = vocab.CloneExamples(src.Examples)
	}
}

// Wait blocks until background work started so far is done
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close stops playback and lets background saves finish. Work still
// running after closeTimeout is cancelled.
func (s *Session) Close() {
	s.audio.Stop()
	drain(&s.wg, s.cancel, closeTimeout)
}

// drain waits up to timeout for wg, then cancels and waits for the rest
func drain(wg *sync.WaitGroup, cancel context.CancelFunc, timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		log.Warn("background work still running, cancelling it")
	}
	cancel()
	<-done
}

func (s *Session) background(fn func(ctx context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn(s.ctx)
	}()
}

// incrementReadCount runs detached and only logs failures
func (s *Session) incrementReadCount(w *vocab.Word) {
	if !w.Persisted() {
		return
	}
	id := w.ID
	s.background(func(ctx context.Context) {
		if err := s.vocabulary.IncrementReadCount(ctx, id); err != nil {
			log.Warn("failed to increment read count", "id", id, "err", err)
		}
	})
}

// persistLocked writes a snapshot of w to the vocabulary in the background
func (s *Session) persistLocked(w *vocab.Word, what string) {
	if !w.Persisted() {
		return
	}
	snapshot := w.Clone()
	s.background(func(ctx context.Context) {
		if _, err := s.vocabulary.Update(ctx, snapshot); err != nil {
			log.Warn("failed to save word", "id", snapshot.ID, "what", what, "err", err)
			return
		}
		log.Debug("saved word", "id", snapshot.ID, "what", what)
	})
}
