package store

import (
	"context"
	"encoding/json"
	"fmt"

	"codeberg.org/snonux/svenska/internal/vocab"
	"github.com/charmbracelet/log"
)

// LoadWords returns the words saved by the last SaveWords
func (s *Store) LoadWords(ctx context.Context) ([]*vocab.Word, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT record FROM cached_words ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cached words: %w", err)
	}
	defer rows.Close()

	var records []vocab.Record
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var rec vocab.Record
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			log.Warn("skipping unreadable cached word", "err", err)
			continue
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return vocab.Normalize(records), nil
}

// SaveWords replaces the cached word list
func (s *Store) SaveWords(ctx context.Context, words []*vocab.Word) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cached_words`); err != nil {
		return fmt.Errorf("failed to clear cached words: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO cached_words (position, record) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, rec := range vocab.Records(words) {
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, i, string(data)); err != nil {
			return fmt.Errorf("failed to cache word: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Debug("cached words", "count", len(words))
	return nil
}

// Import stores words that are not known yet, matched by their term.
// It returns the number of new words.
func (s *Store) Import(ctx context.Context, words []vocab.Word) (int, error) {
	existing, err := s.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	known := make(map[string]bool, len(existing))
	for _, w := range existing {
		known[w.Original] = true
	}

	added := 0
	for _, w := range words {
		if known[w.Original] {
			log.Debug("skipping known word", "word", w.Original)
			continue
		}
		created, err := s.Create(ctx, w.Original, w.Translation)
		if err != nil {
			return added, err
		}
		if len(w.Examples) > 0 || w.SpeechRef != "" {
			created.Examples = w.Examples
			created.SpeechRef = w.SpeechRef
			if _, err := s.Update(ctx, *created); err != nil {
				return added, err
			}
		}
		known[w.Original] = true
		added++
	}
	return added, nil
}
