package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/svenska/internal"
	"codeberg.org/snonux/svenska/internal/vocab"
	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
)

// DefaultFilename is the database file inside the state directory
const DefaultFilename = "svenska.db"

// ErrNotFound is returned for unknown word IDs
var ErrNotFound = errors.New("word not found")

// Store is a SQLite backed vocabulary
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path. The special path ":memory:"
// gives a private in-memory database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps an in-memory database alive and serializes writers
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return s, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS words (
			id text PRIMARY KEY,
			original text NOT NULL,
			translation text NOT NULL,
			speech text NOT NULL DEFAULT '',
			examples text NOT NULL DEFAULT '[]',
			read_count integer NOT NULL DEFAULT 0,
			created integer NOT NULL DEFAULT (strftime('%s','now'))
		)`,
		`CREATE TABLE IF NOT EXISTS cached_words (
			position integer PRIMARY KEY,
			record text NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS ix_words_original ON words (original)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// GetAll returns every stored word in creation order
func (s *Store) GetAll(ctx context.Context) ([]*vocab.Word, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, original, translation, speech, examples FROM words ORDER BY created, rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer rows.Close()

	var words []*vocab.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// Get returns the word with the given ID
func (s *Store) Get(ctx context.Context, id string) (*vocab.Word, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, original, translation, speech, examples FROM words WHERE id = ?`, id)
	w, err := scanWord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return w, err
}

// Create stores a new word and returns it with its assigned ID
func (s *Store) Create(ctx context.Context, original, translation string) (*vocab.Word, error) {
	original = strings.TrimSpace(original)
	translation = strings.TrimSpace(translation)
	if original == "" || translation == "" {
		return nil, fmt.Errorf("word and translation must not be empty")
	}

	w := &vocab.Word{
		ID:          internal.GenerateWordID(original),
		Original:    original,
		Translation: translation,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO words (id, original, translation) VALUES (?, ?, ?)`,
		w.ID, w.Original, w.Translation)
	if err != nil {
		return nil, fmt.Errorf("failed to insert word: %w", err)
	}
	log.Debug("stored word", "id", w.ID, "word", w.Original)
	return w, nil
}

// Update replaces the stored translation, speech reference and examples
func (s *Store) Update(ctx context.Context, w vocab.Word) (*vocab.Word, error) {
	examples, err := json.Marshal(vocab.ExampleRecords(w.Examples))
	if err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE words SET original = ?, translation = ?, speech = ?, examples = ? WHERE id = ?`,
		w.Original, w.Translation, w.SpeechRef, string(examples), w.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update word: %w", err)
	}
	if err := expectOne(res); err != nil {
		return nil, err
	}

	updated := w.Clone()
	return &updated, nil
}

// Delete removes a word
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM words WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete word: %w", err)
	}
	return expectOne(res)
}

// IncrementReadCount counts one more display of the word
func (s *Store) IncrementReadCount(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE words SET read_count = read_count + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to increment read count: %w", err)
	}
	return expectOne(res)
}

// ReadCount returns how often the word was displayed
func (s *Store) ReadCount(ctx context.Context, id string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT read_count FROM words WHERE id = ?`, id).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return n, err
}

// Stats summarizes the stored vocabulary
func (s *Store) Stats(ctx context.Context) (vocab.Stats, error) {
	var stats vocab.Stats
	err := s.db.QueryRowContext(ctx, `SELECT
			count(*),
			coalesce(sum(read_count), 0),
			coalesce(sum(examples != '[]'), 0),
			coalesce(sum(speech != ''), 0)
		FROM words`).Scan(&stats.TotalWords, &stats.TotalReads, &stats.WordsWithExamples, &stats.WordsWithSpeech)
	if err != nil {
		return stats, fmt.Errorf("failed to query stats: %w", err)
	}
	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWord(row scanner) (*vocab.Word, error) {
	var (
		w        vocab.Word
		examples string
	)
	if err := row.Scan(&w.ID, &w.Original, &w.Translation, &w.SpeechRef, &examples); err != nil {
		return nil, err
	}

	var records []vocab.ExampleRecord
	if err := json.Unmarshal([]byte(examples), &records); err != nil {
		log.Warn("ignoring unreadable examples", "id", w.ID, "err", err)
	}
	for _, r := range records {
		w.Examples = append(w.Examples, vocab.Example{Swedish: r.Swedish, English: r.English, SpeechRef: r.Speech})
	}
	return &w, nil
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
