package session

import (
	"testing"

	"codeberg.org/snonux/svenska/internal/vocab"
)

func entry(original string) *HistoryEntry {
	return &HistoryEntry{Word: &vocab.Word{Original: original}}
}

func originals(h *History) []string {
	var out []string
	h.Each(func(_ int, e *HistoryEntry) {
		out = append(out, e.Word.Original)
	})
	return out
}

func TestHistoryNavigation(t *testing.T) {
	h := NewHistory()
	if h.Current() != nil || h.Cursor() != -1 {
		t.Fatalf("new history: current = %v, cursor = %d", h.Current(), h.Cursor())
	}
	if _, ok := h.Back(); ok {
		t.Error("Back() on empty history moved")
	}

	for _, w := range []string{"A", "B", "C"} {
		h.Push(entry(w))
	}
	if !h.AtLiveEdge() || h.Current().Word.Original != "C" {
		t.Fatalf("after pushes: cursor = %d", h.Cursor())
	}
	if _, ok := h.Forward(); ok {
		t.Error("Forward() at live edge moved")
	}

	e, ok := h.Back()
	if !ok || e.Word.Original != "B" {
		t.Fatalf("Back() = %v, %v", e, ok)
	}
	h.Back()
	if _, ok := h.Back(); ok {
		t.Error("Back() at first entry moved")
	}
	e, ok = h.Forward()
	if !ok || e.Word.Original != "B" || h.Cursor() != 1 {
		t.Errorf("Forward() = %v, %v, cursor %d", e, ok, h.Cursor())
	}
}

func TestHistoryPushTruncatesForwardBranch(t *testing.T) {
	h := NewHistory()
	for _, w := range []string{"A", "B", "C"} {
		h.Push(entry(w))
	}
	h.Back()
	h.Push(entry("D"))

	got := originals(h)
	want := []string{"A", "B", "D"}
	if len(got) != len(want) {
		t.Fatalf("history = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("history = %v, want %v", got, want)
			break
		}
	}
	if h.Cursor() != 2 || !h.AtLiveEdge() {
		t.Errorf("cursor = %d, want 2 at live edge", h.Cursor())
	}
}
