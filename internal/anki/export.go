package anki

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
)

var schema = []string{
	`CREATE TABLE col (
		id integer PRIMARY KEY, crt integer NOT NULL, mod integer NOT NULL,
		scm integer NOT NULL, ver integer NOT NULL, dty integer NOT NULL,
		usn integer NOT NULL, ls integer NOT NULL, conf text NOT NULL,
		models text NOT NULL, decks text NOT NULL, dconf text NOT NULL,
		tags text NOT NULL
	)`,
	`CREATE TABLE notes (
		id integer PRIMARY KEY, guid text NOT NULL, mid integer NOT NULL,
		mod integer NOT NULL, usn integer NOT NULL, tags text NOT NULL,
		flds text NOT NULL, sfld text NOT NULL, csum integer NOT NULL,
		flags integer NOT NULL, data text NOT NULL
	)`,
	`CREATE TABLE cards (
		id integer PRIMARY KEY, nid integer NOT NULL, did integer NOT NULL,
		ord integer NOT NULL, mod integer NOT NULL, usn integer NOT NULL,
		type integer NOT NULL, queue integer NOT NULL, due integer NOT NULL,
		ivl integer NOT NULL, factor integer NOT NULL, reps integer NOT NULL,
		lapses integer NOT NULL, left integer NOT NULL, odue integer NOT NULL,
		odid integer NOT NULL, flags integer NOT NULL, data text NOT NULL
	)`,
	`CREATE TABLE revlog (
		id integer PRIMARY KEY, cid integer NOT NULL, usn integer NOT NULL,
		ease integer NOT NULL, ivl integer NOT NULL, lastIvl integer NOT NULL,
		factor integer NOT NULL, time integer NOT NULL, type integer NOT NULL
	)`,
	`CREATE TABLE graves (usn integer NOT NULL, oid integer NOT NULL, type integer NOT NULL)`,
	`CREATE INDEX ix_notes_usn ON notes (usn)`,
	`CREATE INDEX ix_cards_usn ON cards (usn)`,
	`CREATE INDEX ix_cards_nid ON cards (nid)`,
	`CREATE INDEX ix_cards_sched ON cards (did, queue, due)`,
	`CREATE INDEX ix_revlog_usn ON revlog (usn)`,
	`CREATE INDEX ix_revlog_cid ON revlog (cid)`,
}

// Export writes the deck as an .apkg file to outputPath
func (d *Deck) Export(outputPath string) error {
	tempDir, err := os.MkdirTemp("", "svenska_anki_*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	media, err := d.writeMedia(tempDir)
	if err != nil {
		return fmt.Errorf("failed to write media files: %w", err)
	}

	if err := d.writeCollection(filepath.Join(tempDir, "collection.anki2")); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	files := append([]string{"collection.anki2", "media"}, media...)
	if err := zipFiles(tempDir, files, outputPath); err != nil {
		return fmt.Errorf("failed to create zip package: %w", err)
	}

	log.Info("exported anki deck", "path", outputPath, "cards", len(d.cards), "media", len(media))
	return nil
}

// writeMedia stores each audio clip under its number and writes the
// number to filename mapping. It returns the numbered files.
func (d *Deck) writeMedia(dir string) ([]string, error) {
	mapping := map[string]string{}
	seen := map[string]bool{}
	var files []string

	for _, card := range d.cards {
		if card.AudioName == "" || len(card.Audio) == 0 || seen[card.AudioName] {
			continue
		}
		num := strconv.Itoa(len(files))
		if err := os.WriteFile(filepath.Join(dir, num), card.Audio, 0644); err != nil {
			return nil, err
		}
		mapping[num] = card.AudioName
		seen[card.AudioName] = true
		files = append(files, num)
	}

	data, err := json.Marshal(mapping)
	if err != nil {
		return nil, err
	}
	return files, os.WriteFile(filepath.Join(dir, "media"), data, 0644)
}

func (d *Deck) writeCollection(dbPath string) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, query := range schema {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := d.insertCollection(tx); err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}
	if err := d.insertNotes(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (d *Deck) insertCollection(tx *sql.Tx) error {
	now := time.Now().Unix()

	decks, err := json.Marshal(map[string]deckConfig{
		"1":                             newDeckConfig(1, "Default", "", now),
		strconv.FormatInt(d.deckID, 10): newDeckConfig(d.deckID, d.name, "Swedish vocabulary exported by svenska", now),
	})
	if err != nil {
		return err
	}
	models, err := json.Marshal(map[string]noteType{strconv.FormatInt(d.modelID, 10): d.model()})
	if err != nil {
		return err
	}
	conf, err := json.Marshal(map[string]any{
		"nextPos":     1,
		"activeDecks": []int64{1},
		"sortType":    "noteFld",
		"curDeck":     1,
		"schedVer":    1,
		"curModel":    strconv.FormatInt(d.modelID, 10),
	})
	if err != nil {
		return err
	}
	dconf, err := json.Marshal(map[string]any{
		"1": map[string]any{
			"id": 1, "name": "Default", "mod": now, "usn": 0,
			"new":      map[string]any{"delays": []int{1, 10}, "ints": []int{1, 4, 7}, "initialFactor": 2500, "perDay": 20, "order": 1},
			"lapse":    map[string]any{"delays": []int{10}, "mult": 0, "minInt": 1, "leechFails": 8, "leechAction": 0},
			"rev":      map[string]any{"perDay": 100, "ease4": 1.3, "maxIvl": 36500, "ivlFct": 1},
			"maxTaken": 60, "autoplay": true, "replayq": true,
		},
	})
	if err != nil {
		return err
	}

	_, err = tx.Exec(`INSERT INTO col VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		1, now, now*1000, now*1000, 11, 0, 0, 0,
		string(conf), string(models), string(decks), string(dconf), "{}")
	return err
}

func (d *Deck) insertNotes(tx *sql.Tx) error {
	now := time.Now()
	base := now.UnixMilli()

	noteStmt, err := tx.Prepare(`INSERT INTO notes VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer noteStmt.Close()
	cardStmt, err := tx.Prepare(`INSERT INTO cards VALUES (?, ?, ?, ?, ?, ?, 0, 0, ?, 0, 0, 0, 0, 0, 0, 0, 0, '')`)
	if err != nil {
		return err
	}
	defer cardStmt.Close()

	for i, card := range d.cards {
		// Three IDs per note: the note and its two cards
		noteID := base + int64(i*3)
		guid := fmt.Sprintf("sv_%d_%d", d.deckID, i)
		flds := strings.Join(card.fields(), "\x1f")

		if _, err := noteStmt.Exec(noteID, guid, d.modelID, now.Unix(), -1, "svenska", flds, card.Swedish, 0, 0, ""); err != nil {
			return fmt.Errorf("failed to insert note %q: %w", card.Swedish, err)
		}
		for ord := 0; ord < 2; ord++ {
			cardID := noteID + 1 + int64(ord)
			if _, err := cardStmt.Exec(cardID, noteID, d.deckID, ord, now.Unix(), -1, cardID); err != nil {
				return fmt.Errorf("failed to insert card %q: %w", card.Swedish, err)
			}
		}
	}
	return nil
}

func zipFiles(dir string, names []string, outputPath string) error {
	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		w, err := zw.Create(name)
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return out.Close()
}
