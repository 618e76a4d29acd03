package session

import "codeberg.org/snonux/svenska/internal/vocab"

// HistoryEntry is one displayed word. Examples holds what was shown for
// the word while the entry was current and stays nil until then.
type HistoryEntry struct {
	Word     *vocab.Word
	Examples []vocab.Example
}

// History is a browser-like list of entries with a cursor. Pushing while
// the cursor is not at the end drops the forward branch.
type History struct {
	entries []*HistoryEntry
	cursor  int
}

// NewHistory returns an empty history
func NewHistory() *History {
	return &History{cursor: -1}
}

// Push truncates everything after the cursor and appends entry as the new
// current entry.
func (h *History) Push(entry *HistoryEntry) {
	h.entries = append(h.entries[:h.cursor+1], entry)
	h.cursor = len(h.entries) - 1
}

// Current returns the entry under the cursor
func (h *History) Current() *HistoryEntry {
	if h.cursor < 0 {
		return nil
	}
	return h.entries[h.cursor]
}

// Back moves the cursor one entry back
func (h *History) Back() (*HistoryEntry, bool) {
	if h.cursor <= 0 {
		return nil, false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Forward moves the cursor one entry forward. It reports false at the live
// edge.
func (h *History) Forward() (*HistoryEntry, bool) {
	if h.AtLiveEdge() {
		return nil, false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

// AtLiveEdge reports whether the cursor is on the newest entry
func (h *History) AtLiveEdge() bool {
	return h.cursor == len(h.entries)-1
}

// Len returns the number of entries
func (h *History) Len() int {
	return len(h.entries)
}

// Cursor returns the cursor, -1 when empty
func (h *History) Cursor() int {
	return h.cursor
}

// Each calls fn for every entry, oldest first
func (h *History) Each(fn func(i int, e *HistoryEntry)) {
	for i, e := range h.entries {
		fn(i, e)
	}
}
