// Package queue implements the randomized, non-repeating draw order over
// the vocabulary. Every word is drawn exactly once per cycle; a fresh
// permutation is made only when the current one is exhausted.
package queue

import (
	"math/rand/v2"
	"sync"

	"codeberg.org/snonux/svenska/internal/vocab"
)

// Shuffle returns a uniformly random permutation of items using
// Fisher-Yates. The input slice is not modified.
func Shuffle[T any](rng *rand.Rand, items []T) []T {
	shuffled := make([]T, len(items))
	copy(shuffled, items)

	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled
}

// Queue hands out words in shuffled order. Words are shared by pointer so
// that examples and speech references attached during a session are seen
// wherever the word is referenced.
type Queue struct {
	mu      sync.Mutex
	rng     *rand.Rand
	words   []*vocab.Word // current word set, source of the next permutation
	order   []*vocab.Word
	pointer int
	cycles  int
}

// New creates a queue over words and shuffles it. A nil rng uses a
// randomly seeded generator.
func New(words []*vocab.Word, rng *rand.Rand) *Queue {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	q := &Queue{
		rng:   rng,
		words: append([]*vocab.Word(nil), words...),
	}
	q.order = Shuffle(q.rng, q.words)
	return q
}

// Next returns the next undrawn word, reshuffling first when the current
// cycle is exhausted. It reports false only when the queue holds no words.
func (q *Queue) Next() (*vocab.Word, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.pointer >= len(q.order) {
		if len(q.words) == 0 {
			return nil, false
		}
		q.reshuffle()
	}

	w := q.order[q.pointer]
	q.pointer++
	return w, true
}

// InsertAtCursor places w at the current draw position so that it is the
// very next word Next returns. Already drawn words keep their order. The
// word also joins the set used for future reshuffles.
func (q *Queue) InsertAtCursor(w *vocab.Word) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.words = append(q.words, w)

	q.order = append(q.order, nil)
	copy(q.order[q.pointer+1:], q.order[q.pointer:])
	q.order[q.pointer] = w
}

// SetWords replaces the word set. The current cycle is left alone; the new
// set is used from the next reshuffle on. An empty queue starts a fresh
// cycle immediately.
func (q *Queue) SetWords(words []*vocab.Word) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.words = append([]*vocab.Word(nil), words...)
	if len(q.order) == 0 {
		q.order = Shuffle(q.rng, q.words)
		q.pointer = 0
	}
}

func (q *Queue) reshuffle() {
	q.order = Shuffle(q.rng, q.words)
	q.pointer = 0
	q.cycles++
}

// Remaining returns the number of undrawn words in the current cycle.
func (q *Queue) Remaining() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.order) - q.pointer
}

// Len returns the size of the word set.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.words)
}

// Cycles returns how many reshuffles happened since the queue was created.
func (q *Queue) Cycles() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.cycles
}

// Words returns a copy of the current word set.
func (q *Queue) Words() []*vocab.Word {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]*vocab.Word(nil), q.words...)
}
