package session

import "codeberg.org/snonux/svenska/internal/vocab"

// View is a snapshot of what the session shows
type View struct {
	Word          *vocab.Word
	Revealed      bool
	ExamplesState ExamplesState
	Examples      []vocab.Example

	// NavigationEnabled is false while examples are being generated
	NavigationEnabled bool
	CanGoBack         bool
	History           []string
	Cursor            int
}

// View returns a copy of the session state
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Revealed:          s.revealed,
		ExamplesState:     s.examplesStateLocked(),
		Examples:          vocab.CloneExamples(s.shown),
		NavigationEnabled: s.generating == nil,
		CanGoBack:         s.generating == nil && s.history.Cursor() > 0,
		Cursor:            s.history.Cursor(),
	}
	if s.current != nil {
		w := s.current.Clone()
		v.Word = &w
	}
	s.history.Each(func(_ int, e *HistoryEntry) {
		v.History = append(v.History, e.Word.Original)
	})
	return v
}
