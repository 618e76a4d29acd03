package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"codeberg.org/snonux/svenska/internal/apierr"
	"codeberg.org/snonux/svenska/internal/queue"
	"codeberg.org/snonux/svenska/internal/testutil"
	"codeberg.org/snonux/svenska/internal/vocab"
)

type fixture struct {
	session  *Session
	queue    *queue.Queue
	vocab    *testutil.MockVocabulary
	fetcher  *testutil.MockExampleFetcher
	audio    *testutil.MockAudioCache
	notifier *testutil.MockNotifier
	words    []*vocab.Word
}

func newFixture(t *testing.T, words []*vocab.Word) *fixture {
	t.Helper()

	f := &fixture{
		queue:    queue.New(words, rand.New(rand.NewPCG(1, 2))),
		vocab:    &testutil.MockVocabulary{Words: words},
		fetcher:  &testutil.MockExampleFetcher{},
		audio:    &testutil.MockAudioCache{},
		notifier: &testutil.MockNotifier{},
		words:    words,
	}

	s, err := New(Config{
		Queue:      f.queue,
		Vocabulary: f.vocab,
		Examples:   f.fetcher,
		Audio:      f.audio,
		Translator: &testutil.MockTranslator{Translations: map[string]string{"fika": "coffee break"}},
		Notifier:   f.notifier,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(s.Close)
	f.session = s
	return f
}

func (f *fixture) current(t *testing.T) *vocab.Word {
	t.Helper()
	v := f.session.View()
	if v.Word == nil {
		t.Fatal("no word displayed")
	}
	return v.Word
}

func TestNewRequiresCollaborators(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("New() without collaborators should fail")
	}
}

func TestDisplayNewWordDrawsFromQueue(t *testing.T) {
	f := newFixture(t, testutil.Words("hej=hello", "katt=cat", "hund=dog"))

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		if err := f.session.DisplayNewWord(); err != nil {
			t.Fatalf("DisplayNewWord() error = %v", err)
		}
		seen[f.current(t).Original] = true
	}
	if len(seen) != 3 {
		t.Errorf("saw %d distinct words in one cycle, want 3", len(seen))
	}

	// The fourth draw reshuffles instead of failing
	if err := f.session.DisplayNewWord(); err != nil {
		t.Fatalf("DisplayNewWord() after exhaustion error = %v", err)
	}

	v := f.session.View()
	if len(v.History) != 4 || v.Cursor != 3 {
		t.Errorf("history = %v, cursor = %d", v.History, v.Cursor)
	}
	if v.Revealed || v.ExamplesState != ExamplesNone {
		t.Errorf("new word state: revealed = %v, examples = %v", v.Revealed, v.ExamplesState)
	}

	f.session.Wait()
	if got := f.vocab.IncrementCalls(); len(got) != 4 {
		t.Errorf("read count increments = %v, want 4", got)
	}
	if got := f.audio.PreloadedTexts(); len(got) != 4 {
		t.Errorf("preloads = %v, want 4", got)
	}
}

func TestDisplayNewWordEmptyQueue(t *testing.T) {
	f := newFixture(t, nil)
	if err := f.session.DisplayNewWord(); !errors.Is(err, ErrNoWord) {
		t.Errorf("DisplayNewWord() error = %v, want ErrNoWord", err)
	}
}

func TestReadCountSkipsUnsavedWordsAndIgnoresFailures(t *testing.T) {
	words := []*vocab.Word{{Original: "lokal", Translation: "local"}}
	f := newFixture(t, words)
	f.vocab.IncrementErr = errors.New("proxy down")

	if err := f.session.DisplayNewWord(); err != nil {
		t.Fatal(err)
	}
	f.session.Wait()
	if got := f.vocab.IncrementCalls(); len(got) != 0 {
		t.Errorf("increments for unsaved word = %v", got)
	}

	f2 := newFixture(t, testutil.Words("hej=hello"))
	f2.vocab.IncrementErr = errors.New("proxy down")
	if err := f2.session.DisplayNewWord(); err != nil {
		t.Errorf("DisplayNewWord() error = %v, increment failures must not surface", err)
	}
	f2.session.Wait()
	if len(f2.notifier.Alerts()) != 0 {
		t.Errorf("alerts = %v, want none", f2.notifier.Alerts())
	}
}

func TestGoPreviousThenNewWordDropsForwardBranch(t *testing.T) {
	f := newFixture(t, testutil.Words("A=a", "B=b", "C=c", "D=d"))
	s := f.session

	a, b, c, d := f.words[0], f.words[1], f.words[2], f.words[3]
	s.mu.Lock()
	s.displayWordLocked(a, true)
	s.displayWordLocked(b, true)
	s.displayWordLocked(c, true)
	s.mu.Unlock()

	s.GoPrevious()
	if got := f.current(t).Original; got != "B" {
		t.Fatalf("after GoPrevious current = %s, want B", got)
	}

	s.mu.Lock()
	s.displayWordLocked(d, true)
	s.mu.Unlock()

	v := s.View()
	want := []string{"A", "B", "D"}
	if strings.Join(v.History, ",") != strings.Join(want, ",") {
		t.Errorf("history = %v, want %v", v.History, want)
	}
	if v.Cursor != 2 {
		t.Errorf("cursor = %d, want 2", v.Cursor)
	}
}

func TestGoNextWalksHistoryThenDrawsNewWord(t *testing.T) {
	f := newFixture(t, testutil.Words("A=a", "B=b", "C=c"))
	s := f.session

	s.DisplayNewWord()
	s.DisplayNewWord()
	first := s.View().History[0]
	second := s.View().History[1]

	s.GoPrevious()
	s.GoPrevious() // no-op at the first entry
	if got := f.current(t).Original; got != first {
		t.Fatalf("current = %s, want %s", got, first)
	}

	if err := s.GoNext(); err != nil {
		t.Fatal(err)
	}
	if got := f.current(t).Original; got != second {
		t.Errorf("GoNext() current = %s, want %s", got, second)
	}
	if len(s.View().History) != 2 {
		t.Errorf("GoNext() inside history added an entry")
	}

	if err := s.GoNext(); err != nil {
		t.Fatal(err)
	}
	if len(s.View().History) != 3 {
		t.Errorf("GoNext() at live edge did not draw a new word")
	}

	s.Wait()
	if got := f.vocab.IncrementCalls(); len(got) != 3 {
		t.Errorf("increments = %v, history navigation must not count reads", got)
	}
}

func TestOnWordActivate(t *testing.T) {
	f := newFixture(t, testutil.Words("hej=hello", "katt=cat"))
	s := f.session
	ctx := context.Background()

	if err := s.OnWordActivate(ctx); !errors.Is(err, ErrNoWord) {
		t.Errorf("OnWordActivate() with no word = %v", err)
	}

	s.DisplayNewWord()
	word := f.current(t).Original

	if err := s.OnWordActivate(ctx); err != nil {
		t.Fatalf("OnWordActivate() error = %v", err)
	}
	v := s.View()
	if !v.Revealed || v.Word.Original != word {
		t.Errorf("first activation: revealed = %v, word = %s", v.Revealed, v.Word.Original)
	}
	if got := f.audio.PlayedTexts(); len(got) != 1 || got[0] != word {
		t.Errorf("plays = %v, want [%s]", got, word)
	}

	if err := s.OnWordActivate(ctx); err != nil {
		t.Fatal(err)
	}
	v = s.View()
	if v.Revealed || len(v.History) != 2 {
		t.Errorf("second activation: revealed = %v, history = %v", v.Revealed, v.History)
	}
}

func TestOnWordActivatePlaybackFailure(t *testing.T) {
	f := newFixture(t, testutil.Words("hej=hello"))
	f.audio.PlayErr = &apierr.PlaybackError{Text: "hej", Err: errors.New("no device")}
	s := f.session
	s.DisplayNewWord()

	if err := s.OnWordActivate(context.Background()); err == nil {
		t.Error("OnWordActivate() should report the playback failure")
	}
	alerts := f.notifier.Alerts()
	if len(alerts) != 1 || alerts[0] != alertAudio {
		t.Errorf("alerts = %v", alerts)
	}
	v := s.View()
	if !v.Revealed || len(v.History) != 1 {
		t.Errorf("state after failed play: revealed = %v, history = %v", v.Revealed, v.History)
	}
}

func TestGenerateExamplesShowsStoredExamplesWithoutFetching(t *testing.T) {
	words := testutil.Words("bok=book")
	words[0].Examples = testutil.Examples("bok", 3)
	f := newFixture(t, words)
	s := f.session
	s.DisplayNewWord()

	if err := s.GenerateExamples(context.Background()); err != nil {
		t.Fatalf("GenerateExamples() error = %v", err)
	}
	if f.fetcher.CallCount() != 0 {
		t.Errorf("generator called %d times, want 0", f.fetcher.CallCount())
	}

	v := s.View()
	if v.ExamplesState != ExamplesShown || len(v.Examples) != 3 {
		t.Fatalf("state = %v, examples = %d", v.ExamplesState, len(v.Examples))
	}
	for i, ex := range v.Examples {
		if ex.Swedish != words[0].Examples[i].Swedish {
			t.Errorf("example %d = %q", i, ex.Swedish)
		}
	}

	// Audio of the examples is preloaded
	preloaded := strings.Join(f.audio.PreloadedTexts(), "|")
	if !strings.Contains(preloaded, "bok mening 3.") {
		t.Errorf("preloads = %s", preloaded)
	}
}

func TestGenerateExamplesPrependsNewOnes(t *testing.T) {
	words := testutil.Words("bok=book")
	words[0].Examples = testutil.Examples("bok", 3)
	f := newFixture(t, words)
	f.fetcher.Results = [][]vocab.Example{{
		{Swedish: "Ny mening ett.", English: "New one."},
		{Swedish: "Ny mening två.", English: "New two."},
	}}
	s := f.session
	s.DisplayNewWord()
	ctx := context.Background()

	s.GenerateExamples(ctx) // shows stored
	if err := s.GenerateExamples(ctx); err != nil {
		t.Fatalf("GenerateExamples() error = %v", err)
	}

	v := s.View()
	if len(v.Examples) != 5 {
		t.Fatalf("shown %d examples, want 5", len(v.Examples))
	}
	if v.Examples[0].Swedish != "Ny mening ett." || v.Examples[1].Swedish != "Ny mening två." {
		t.Errorf("new examples are not first: %+v", v.Examples[:2])
	}
	if v.Examples[2].Swedish != "bok mening 1." {
		t.Errorf("old examples misplaced: %+v", v.Examples[2:])
	}

	calls := f.fetcher.Calls
	if len(calls) != 1 || len(calls[0].Existing) != 3 {
		t.Errorf("fetch calls = %+v, want one with 3 existing", calls)
	}

	s.Wait()
	updates := f.vocab.UpdateCalls()
	if len(updates) != 1 || len(updates[0].Examples) != 5 {
		t.Fatalf("updates = %+v, want one with 5 examples", updates)
	}

	// The merged set is kept in history
	s.DisplayNewWord()
	s.GoPrevious()
	if got := s.View(); got.ExamplesState != ExamplesShown || len(got.Examples) != 5 {
		t.Errorf("after revisit: state = %v, %d examples", got.ExamplesState, len(got.Examples))
	}
	if f.fetcher.CallCount() != 1 {
		t.Errorf("revisit fetched again")
	}
}

func TestGenerateExamplesFirstTime(t *testing.T) {
	f := newFixture(t, testutil.Words("sol=sun"))
	f.fetcher.Results = [][]vocab.Example{testutil.Examples("sol", 3)}
	s := f.session
	s.DisplayNewWord()

	if err := s.GenerateExamples(context.Background()); err != nil {
		t.Fatal(err)
	}
	if calls := f.fetcher.Calls; len(calls) != 1 || calls[0].Existing != nil {
		t.Errorf("first generation sent existing examples: %+v", calls)
	}
	if v := s.View(); len(v.Examples) != 3 || v.Word.Examples == nil {
		t.Errorf("view = %+v", v)
	}
}

func TestNavigationIgnoredWhileLoading(t *testing.T) {
	f := newFixture(t, testutil.Words("A=a", "B=b", "C=c"))
	f.fetcher.Block = make(chan struct{})
	f.fetcher.Started = make(chan struct{}, 1)
	f.fetcher.Results = [][]vocab.Example{testutil.Examples("x", 3)}
	s := f.session
	ctx := context.Background()

	s.DisplayNewWord()
	s.DisplayNewWord()

	done := make(chan error, 1)
	go func() { done <- s.GenerateExamples(ctx) }()
	select {
	case <-f.fetcher.Started:
	case <-time.After(2 * time.Second):
		t.Fatal("generation did not start")
	}

	before := s.View()
	if before.ExamplesState != ExamplesLoading || before.NavigationEnabled {
		t.Fatalf("state = %v, navigation = %v", before.ExamplesState, before.NavigationEnabled)
	}

	s.GoPrevious()
	if err := s.GoNext(); err != nil {
		t.Errorf("GoNext() error = %v", err)
	}
	if err := s.OnWordActivate(ctx); err != nil {
		t.Errorf("OnWordActivate() error = %v", err)
	}
	if err := s.GenerateExamples(ctx); err != nil {
		t.Errorf("second GenerateExamples() error = %v", err)
	}

	after := s.View()
	if after.Word.Original != before.Word.Original || after.Cursor != before.Cursor ||
		after.Revealed != before.Revealed || len(after.History) != len(before.History) {
		t.Errorf("state changed while loading: before %+v, after %+v", before, after)
	}
	if len(f.audio.PlayedTexts()) != 0 {
		t.Error("audio played while loading")
	}

	close(f.fetcher.Block)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if f.fetcher.CallCount() != 1 {
		t.Errorf("generator called %d times, want 1", f.fetcher.CallCount())
	}

	v := s.View()
	if v.ExamplesState != ExamplesShown || !v.NavigationEnabled {
		t.Errorf("after generation: state = %v, navigation = %v", v.ExamplesState, v.NavigationEnabled)
	}
}

func TestGenerateExamplesFailureRestoresState(t *testing.T) {
	tests := []struct {
		name       string
		showStored bool
		wantState  ExamplesState
		wantShown  int
	}{
		{name: "nothing shown", wantState: ExamplesNone},
		{name: "examples shown", showStored: true, wantState: ExamplesShown, wantShown: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words := testutil.Words("regn=rain")
			if tt.showStored {
				words[0].Examples = testutil.Examples("regn", 3)
			}
			f := newFixture(t, words)
			f.fetcher.Err = &apierr.ProviderError{Op: "generate examples", Status: 500, Message: "OpenAI API error: 500"}
			s := f.session
			s.DisplayNewWord()
			ctx := context.Background()
			if tt.showStored {
				s.GenerateExamples(ctx)
			}

			err := s.GenerateExamples(ctx)
			if err == nil {
				t.Fatal("GenerateExamples() should fail")
			}

			v := s.View()
			if v.ExamplesState != tt.wantState || len(v.Examples) != tt.wantShown {
				t.Errorf("state = %v with %d examples, want %v with %d", v.ExamplesState, len(v.Examples), tt.wantState, tt.wantShown)
			}
			if !v.NavigationEnabled {
				t.Error("navigation still disabled after failure")
			}

			alerts := f.notifier.Alerts()
			if len(alerts) != 1 || !strings.HasPrefix(alerts[0], "Failed to generate examples: ") ||
				!strings.Contains(alerts[0], "OpenAI API error: 500") ||
				!strings.HasSuffix(alerts[0], "Make sure your proxy server is running.") {
				t.Errorf("alerts = %q", alerts)
			}

			s.Wait()
			if len(f.vocab.UpdateCalls()) != 0 {
				t.Error("failed generation was persisted")
			}
		})
	}
}

func TestGenerationResultLandsOnItsEntryAfterLeaving(t *testing.T) {
	f := newFixture(t, testutil.Words("A=a", "B=b"))
	f.fetcher.Block = make(chan struct{})
	f.fetcher.Started = make(chan struct{}, 1)
	f.fetcher.Results = [][]vocab.Example{testutil.Examples("first", 3)}
	s := f.session
	ctx := context.Background()

	s.DisplayNewWord()
	target := f.current(t).Original

	done := make(chan error, 1)
	go func() { done <- s.GenerateExamples(ctx) }()
	<-f.fetcher.Started

	// DisplayNewWord is not gated; the user moves on
	if err := s.DisplayNewWord(); err != nil {
		t.Fatal(err)
	}
	close(f.fetcher.Block)
	if err := <-done; err != nil {
		t.Fatal(err)
	}

	v := s.View()
	if v.Word.Original == target || len(v.Examples) != 0 {
		t.Errorf("result leaked onto the displayed word: %+v", v)
	}

	s.GoPrevious()
	v = s.View()
	if v.Word.Original != target || len(v.Examples) != 3 {
		t.Errorf("revisited entry: word = %s, %d examples", v.Word.Original, len(v.Examples))
	}
}

func TestPlayExample(t *testing.T) {
	words := testutil.Words("bok=book")
	words[0].Examples = testutil.Examples("bok", 2)
	f := newFixture(t, words)
	f.audio.AssignFilename = "ex.mp3"
	s := f.session
	ctx := context.Background()
	s.DisplayNewWord()

	if err := s.PlayExample(ctx, 0); err == nil {
		t.Error("PlayExample() without shown examples should fail")
	}

	s.GenerateExamples(ctx)
	if err := s.PlayExample(ctx, 1); err != nil {
		t.Fatalf("PlayExample() error = %v", err)
	}
	plays := f.audio.Plays
	if len(plays) != 1 || plays[0].Text != "bok mening 2." || plays[0].ExampleIndex != 1 || plays[0].WordID != "w1" {
		t.Errorf("plays = %+v", plays)
	}

	// The assigned filename is written back to the example
	v := s.View()
	if v.Examples[1].SpeechRef != "ex.mp3" || v.Word.Examples[1].SpeechRef != "ex.mp3" {
		t.Errorf("speech ref not recorded: %+v", v.Examples)
	}
	updates := f.vocab.UpdateCalls()
	if len(updates) != 1 || updates[0].Examples[1].SpeechRef != "ex.mp3" {
		t.Errorf("updates = %+v", updates)
	}
}

func TestPlayWordRecordsSpeechRef(t *testing.T) {
	f := newFixture(t, testutil.Words("hej=hello"))
	f.audio.AssignFilename = "hej.mp3"
	s := f.session
	s.DisplayNewWord()

	if err := s.PlayWord(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := f.current(t).SpeechRef; got != "hej.mp3" {
		t.Errorf("SpeechRef = %q, want hej.mp3", got)
	}

	// The next subject for the word uses the reference
	s.PlayWord(context.Background())
	if plays := f.audio.Plays; plays[1].SpeechRef != "hej.mp3" {
		t.Errorf("second play subject = %+v", plays[1])
	}
}

func TestSubmitCustomWord(t *testing.T) {
	f := newFixture(t, testutil.Words("A=a", "B=b", "C=c"))
	s := f.session
	ctx := context.Background()
	s.DisplayNewWord()

	if err := s.SubmitCustomWord(ctx, "  fika "); err != nil {
		t.Fatalf("SubmitCustomWord() error = %v", err)
	}
	v := s.View()
	if v.Word.Original != "fika" || v.Word.Translation != "coffee break" || v.Word.ID != "custom1" {
		t.Errorf("displayed = %+v", v.Word)
	}
	if len(v.History) != 2 {
		t.Errorf("history = %v", v.History)
	}
	if f.queue.Len() != 4 {
		t.Errorf("queue has %d words, want 4", f.queue.Len())
	}
}

func TestSubmitCustomWordFailures(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t, testutil.Words("A=a"))
	if err := f.session.SubmitCustomWord(ctx, "   "); !errors.Is(err, ErrEmptyWord) {
		t.Errorf("blank word error = %v", err)
	}

	f = newFixture(t, testutil.Words("A=a"))
	f.session.translator = &testutil.MockTranslator{Err: &apierr.NetworkError{Op: "translate", Err: errors.New("refused")}}
	if err := f.session.SubmitCustomWord(ctx, "fika"); err == nil {
		t.Error("translation failure not reported")
	}
	if alerts := f.notifier.Alerts(); len(alerts) != 1 || alerts[0] != alertTranslation {
		t.Errorf("alerts = %v", alerts)
	}
	if len(f.vocab.Created) != 0 {
		t.Error("word created despite failed translation")
	}

	f = newFixture(t, testutil.Words("A=a"))
	f.vocab.CreateErr = errors.New("database locked")
	if err := f.session.SubmitCustomWord(ctx, "fika"); err == nil {
		t.Error("create failure not reported")
	}
	if f.session.View().Word != nil {
		t.Error("a word was displayed after failed create")
	}
}

func TestBootstrapFromCache(t *testing.T) {
	cached := testutil.Words("gammal=old")
	cached[0].ID = "old1"
	f := newFixture(t, nil)
	f.vocab.Words = testutil.Words("ny=new", "nyare=newer")
	cache := &testutil.MockWordCache{Words: cached}

	if err := f.session.Bootstrap(context.Background(), cache); err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	if got := f.current(t).Original; got != "gammal" {
		t.Errorf("first word = %s, want cached word", got)
	}

	f.session.Wait()
	if cache.SaveCount() != 1 {
		t.Errorf("fresh words saved %d times, want 1", cache.SaveCount())
	}
	// Still showing the cached word; fresh words come with the next cycle
	if got := f.current(t).Original; got != "gammal" {
		t.Errorf("displayed word changed to %s", got)
	}
	if n := f.queue.Len(); n != 3 {
		t.Errorf("queued %d words, want cached plus fresh", n)
	}
}

func TestBootstrapRefreshKeepsWordIdentity(t *testing.T) {
	f := newFixture(t, nil)
	f.vocab.Words = testutil.Words("hej=hello", "ny=new")
	f.fetcher.Results = [][]vocab.Example{testutil.Examples("hej", 3)}
	cache := &testutil.MockWordCache{Words: testutil.Words("hej=hello")}
	ctx := context.Background()

	if err := f.session.Bootstrap(ctx, cache); err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	f.session.Wait()

	if err := f.session.GenerateExamples(ctx); err != nil {
		t.Fatal(err)
	}
	f.session.Wait()

	// The next cycle comes from the refreshed set and holds hej once
	for i := 0; i < 2; i++ {
		if err := f.session.DisplayNewWord(); err != nil {
			t.Fatal(err)
		}
		if f.current(t).Original == "hej" {
			break
		}
	}
	if f.current(t).Original != "hej" {
		t.Fatal("hej was not drawn again")
	}
	if err := f.session.GenerateExamples(ctx); err != nil {
		t.Fatal(err)
	}

	if n := f.fetcher.CallCount(); n != 1 {
		t.Errorf("generator called %d times, want 1", n)
	}
	if v := f.session.View(); v.ExamplesState != ExamplesShown || len(v.Examples) != 3 {
		t.Errorf("view = %+v, want stored examples", v)
	}
	if n := f.queue.Len(); n != 2 {
		t.Errorf("queued %d words, want 2", n)
	}
}

func TestCloseFinishesPendingSaves(t *testing.T) {
	f := newFixture(t, testutil.Words("sol=sun"))
	f.fetcher.Results = [][]vocab.Example{testutil.Examples("sol", 3)}
	f.vocab.UpdateDelay = 50 * time.Millisecond

	f.session.DisplayNewWord()
	if err := f.session.GenerateExamples(context.Background()); err != nil {
		t.Fatal(err)
	}
	f.session.Close()

	updates := f.vocab.UpdateCalls()
	if len(updates) != 1 || len(updates[0].Examples) != 3 {
		t.Errorf("updates = %+v, want the generated examples saved", updates)
	}
}

func TestBootstrapWithoutCache(t *testing.T) {
	f := newFixture(t, nil)
	f.vocab.Words = testutil.Words("ny=new")

	if err := f.session.Bootstrap(context.Background(), nil); err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	if got := f.current(t).Original; got != "ny" {
		t.Errorf("first word = %s", got)
	}

	f = newFixture(t, nil)
	f.vocab.GetAllErr = &apierr.NetworkError{Op: "fetch words", Err: errors.New("refused")}
	if err := f.session.Bootstrap(context.Background(), &testutil.MockWordCache{}); err == nil {
		t.Error("Bootstrap() without any words should fail")
	}
	if len(f.notifier.Alerts()) != 0 {
		t.Error("word fetch failure was alerted")
	}
}

func TestExamplesStateString(t *testing.T) {
	for state, want := range map[ExamplesState]string{ExamplesNone: "none", ExamplesLoading: "loading", ExamplesShown: "shown"} {
		if got := state.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
