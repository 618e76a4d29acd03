package session

import (
	"context"

	"codeberg.org/snonux/svenska/internal/audio"
	"codeberg.org/snonux/svenska/internal/vocab"
)

func (s *Session) wordSubjectLocked(w *vocab.Word) audio.Subject {
	subject := audio.Subject{
		Text:         w.Original,
		SpeechRef:    w.SpeechRef,
		WordID:       w.ID,
		ExampleIndex: -1,
	}
	if w.Persisted() {
		subject.Persist = func(ctx context.Context, filename string) error {
			return s.saveSpeechRef(ctx, w, func() {
				w.SpeechRef = filename
			})
		}
	}
	return subject
}

func (s *Session) exampleSubjectLocked(w *vocab.Word, i int, ex vocab.Example) audio.Subject {
	subject := audio.Subject{
		Text:         ex.Swedish,
		SpeechRef:    ex.SpeechRef,
		WordID:       w.ID,
		ExampleIndex: i,
	}
	if w.Persisted() {
		swedish := ex.Swedish
		subject.Persist = func(ctx context.Context, filename string) error {
			return s.saveSpeechRef(ctx, w, func() {
				s.setExampleSpeechLocked(w, swedish, filename)
			})
		}
	}
	return subject
}

// preloadExamplesLocked preloads audio of the first n examples of list
func (s *Session) preloadExamplesLocked(w *vocab.Word, list []vocab.Example, n int) {
	for i := 0; i < n && i < len(list); i++ {
		s.audio.Preload(s.exampleSubjectLocked(w, i, list[i]))
	}
}

// saveSpeechRef applies set under the session lock and stores the word.
// It runs on the audio cache's background goroutine.
func (s *Session) saveSpeechRef(ctx context.Context, w *vocab.Word, set func()) error {
	s.mu.Lock()
	set()
	snapshot := w.Clone()
	s.mu.Unlock()

	_, err := s.vocabulary.Update(ctx, snapshot)
	return err
}

// setExampleSpeechLocked records filename on every copy of the example
// with the given text. Examples are matched by text because generation
// reorders them.
func (s *Session) setExampleSpeechLocked(w *vocab.Word, swedish, filename string) {
	setIn := func(list []vocab.Example) {
		for i := range list {
			if list[i].Swedish == swedish {
				list[i].SpeechRef = filename
			}
		}
	}

	setIn(w.Examples)
	s.history.Each(func(_ int, e *HistoryEntry) {
		if e.Word == w {
			setIn(e.Examples)
		}
	})
	if s.current == w {
		setIn(s.shown)
	}
}
