package audio

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"codeberg.org/snonux/svenska/internal/apierr"
)

// closeTimeout bounds how long Close waits for preloads and write-backs
const closeTimeout = 5 * time.Second

// Handle is a cache entry. Audio is nil until the handle has been fetched;
// a handle registered from a speech reference only knows its filename.
type Handle struct {
	Filename string
	Audio    []byte
}

// Playable reports whether the handle carries audio.
func (h Handle) Playable() bool {
	return len(h.Audio) > 0
}

// Store maps cache keys to handles. Implementations must be safe for
// concurrent use.
type Store interface {
	Resolve(key string) (Handle, bool)
	Store(key string, h Handle)
	Len() int
}

// MemoryStore is an unbounded Store that lives as long as the session.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Handle
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Handle)}
}

// Resolve returns the handle stored under key
func (m *MemoryStore) Resolve(key string) (Handle, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.entries[key]
	return h, ok
}

// Store sets the handle for key
func (m *MemoryStore) Store(key string, h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = h
}

// Len returns the number of keys
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Subject is something that can be spoken: a word or one of its examples.
type Subject struct {
	Text         string
	SpeechRef    string
	WordID       string
	ExampleIndex int // -1 for the word itself

	// Persist writes a newly assigned filename back to the owning record.
	// Nil when the subject does not belong to a persisted word.
	Persist func(ctx context.Context, filename string) error
}

// Key returns the identity used for caching.
func (s Subject) Key() string {
	if s.SpeechRef != "" {
		return s.SpeechRef
	}
	return s.Text
}

func (s Subject) request() SpeechRequest {
	return SpeechRequest{Text: s.Text, WordID: s.WordID, ExampleIndex: s.ExampleIndex}
}

// CacheConfig configures a Cache
type CacheConfig struct {
	Store       Store
	Synthesizer Synthesizer
	Player      Player

	// EagerPreload synthesizes audio on preload instead of on first play
	EagerPreload bool
}

// Cache resolves subjects to audio, synthesizing on a miss, and owns the
// single audible stream of the session.
type Cache struct {
	store  Store
	synth  Synthesizer
	player Player
	eager  bool

	group singleflight.Group

	// mu serializes playback starts; seq identifies the latest Play call
	mu  sync.Mutex
	seq uint64

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// NewCache creates a cache. A nil store defaults to a MemoryStore and a nil
// player to a NopPlayer.
func NewCache(config CacheConfig) *Cache {
	if config.Store == nil {
		config.Store = NewMemoryStore()
	}
	if config.Player == nil {
		config.Player = NopPlayer{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Cache{
		store:  config.Store,
		synth:  config.Synthesizer,
		player: config.Player,
		eager:  config.EagerPreload,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Resolve returns the handle cached under key.
func (c *Cache) Resolve(key string) (Handle, bool) {
	return c.store.Resolve(key)
}

// Len returns the number of cached keys.
func (c *Cache) Len() int {
	return c.store.Len()
}

// Preload registers a subject's existing speech reference. Without one it
// does nothing unless eager preloading is enabled, in which case audio is
// synthesized in the background. It never blocks.
func (c *Cache) Preload(s Subject) {
	if s.Text == "" && s.SpeechRef == "" {
		return
	}

	if s.SpeechRef != "" {
		h, ok := c.store.Resolve(s.SpeechRef)
		if !ok {
			h = Handle{Filename: s.SpeechRef}
			c.store.Store(s.SpeechRef, h)
		}
		if s.Text != "" {
			if existing, ok := c.store.Resolve(s.Text); !ok || !existing.Playable() {
				c.store.Store(s.Text, h)
			}
		}
		return
	}

	if !c.eager || c.synth == nil {
		return
	}
	if h, ok := c.store.Resolve(s.Text); ok && h.Playable() {
		return
	}

	c.background(func(ctx context.Context) {
		if _, err := c.load(ctx, s); err != nil {
			log.Warn("audio preload failed", "text", s.Text, "err", err)
		}
	})
}

// Play stops the current stream and plays the subject. When a later Play
// or Stop happens while this one is still resolving, this one never
// becomes audible and returns nil.
func (c *Cache) Play(ctx context.Context, s Subject) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.player.Stop()
	c.mu.Unlock()

	audio, err := c.load(ctx, s)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		log.Debug("playback superseded", "text", s.Text, "err", err)
		return nil
	}
	if err != nil {
		return &apierr.PlaybackError{Text: s.Text, Err: err}
	}
	if err := c.player.Play(audio); err != nil {
		return &apierr.PlaybackError{Text: s.Text, Err: err}
	}
	return nil
}

// Stop silences the current stream and cancels pending starts.
func (c *Cache) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.player.Stop()
}

// Wait blocks until background preloads and write-backs are done.
func (c *Cache) Wait() {
	c.wg.Wait()
}

// Close stops playback and waits for background work. Work still running
// after closeTimeout is cancelled.
func (c *Cache) Close() {
	c.Stop()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(closeTimeout):
		log.Warn("audio work still running, cancelling it")
	}
	c.cancel()
	<-done
}

func (c *Cache) background(fn func(ctx context.Context)) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		fn(c.ctx)
	}()
}

// load returns audio for the subject from the cache, from a known
// filename or from the synthesizer, in that order.
func (c *Cache) load(ctx context.Context, s Subject) ([]byte, error) {
	keys := make([]string, 0, 2)
	if s.SpeechRef != "" {
		keys = append(keys, s.SpeechRef)
	}
	if s.Text != "" {
		keys = append(keys, s.Text)
	}

	var filename string
	for _, key := range keys {
		h, ok := c.store.Resolve(key)
		if !ok {
			continue
		}
		if h.Playable() {
			log.Debug("audio cache hit", "key", key)
			return h.Audio, nil
		}
		if filename == "" {
			filename = h.Filename
		}
	}
	if filename == "" {
		filename = s.SpeechRef
	}

	if c.synth == nil {
		return nil, errors.New("no speech synthesizer configured")
	}

	if filename != "" {
		audio, err := c.fetch(ctx, filename, keys)
		if err == nil {
			return audio, nil
		}
		// A stale reference is regenerated below
		log.Warn("failed to fetch speech file", "file", filename, "err", err)
	}

	if s.Text == "" {
		return nil, errors.New("nothing to speak")
	}
	return c.synthesize(ctx, s)
}

func (c *Cache) fetch(ctx context.Context, filename string, keys []string) ([]byte, error) {
	v, err, _ := c.group.Do("file:"+filename, func() (any, error) {
		audio, err := c.synth.Fetch(ctx, filename)
		if err != nil {
			return nil, err
		}
		if len(audio) == 0 {
			return nil, &apierr.MalformedResponseError{Reason: "empty speech file " + filename}
		}
		c.store.Store(filename, Handle{Filename: filename, Audio: audio})
		return audio, nil
	})
	if err != nil {
		return nil, err
	}
	audio := v.([]byte)
	for _, key := range keys {
		c.store.Store(key, Handle{Filename: filename, Audio: audio})
	}
	return audio, nil
}

func (c *Cache) synthesize(ctx context.Context, s Subject) ([]byte, error) {
	v, err, _ := c.group.Do("text:"+s.Text, func() (any, error) {
		speech, err := c.synth.Synthesize(ctx, s.request())
		if err != nil {
			return nil, err
		}
		if len(speech.Audio) == 0 {
			return nil, &apierr.MalformedResponseError{Reason: "empty audio payload"}
		}

		h := Handle{Filename: speech.Filename, Audio: speech.Audio}
		c.store.Store(s.Text, h)
		if speech.Filename != "" {
			c.store.Store(speech.Filename, h)
			c.writeBack(s, speech.Filename)
		}
		return speech.Audio, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// writeBack records a newly assigned filename on the owning record. It
// runs detached and only logs failures.
func (c *Cache) writeBack(s Subject, filename string) {
	if s.Persist == nil || filename == s.SpeechRef {
		return
	}
	c.background(func(ctx context.Context) {
		if err := s.Persist(ctx, filename); err != nil {
			log.Warn("failed to save speech reference", "text", s.Text, "file", filename, "err", err)
			return
		}
		log.Debug("saved speech reference", "text", s.Text, "file", filename)
	})
}
