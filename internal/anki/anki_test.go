package anki

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/snonux/svenska/internal/testutil"
	"codeberg.org/snonux/svenska/internal/vocab"
)

func TestCardFields(t *testing.T) {
	w := &vocab.Word{Original: "bröd", Translation: "bread", Examples: testutil.Examples("bröd", 2)}
	card := CardFromWord(w)
	card.Audio = []byte("mp3")
	card.AudioName = "brod.mp3"

	fields := card.fields()
	if len(fields) != len(fieldNames) {
		t.Fatalf("got %d fields, want %d", len(fields), len(fieldNames))
	}
	if fields[0] != "bröd" || fields[1] != "bread" || fields[2] != "[sound:brod.mp3]" {
		t.Errorf("fields = %q", fields[:3])
	}
	if !strings.Contains(fields[3], "bröd mening 2.") || !strings.HasPrefix(fields[3], "<ul>") {
		t.Errorf("examples field = %q", fields[3])
	}

	w.Examples[0].Swedish = "changed"
	if card.Examples[0].Swedish == "changed" {
		t.Error("card shares examples with the word")
	}

	if got := (Card{Swedish: "<b>"}).fields(); got[0] != "&lt;b&gt;" || got[2] != "" || got[3] != "" {
		t.Errorf("fields = %q", got)
	}
}

func TestNewDeckDefaultName(t *testing.T) {
	if d := NewDeck(""); d.name != DefaultDeckName {
		t.Errorf("name = %q", d.name)
	}
}

func TestExport(t *testing.T) {
	deck := NewDeck("Test")
	deck.Add(Card{Swedish: "hej", English: "hello", Audio: []byte("hej-audio"), AudioName: "hej.mp3"})
	deck.Add(Card{Swedish: "katt", English: "cat", Examples: testutil.Examples("katt", 1)})
	deck.Add(Card{Swedish: "hej igen", English: "hello again", Audio: []byte("hej-audio"), AudioName: "hej.mp3"})

	dir := t.TempDir()
	out := filepath.Join(dir, "deck.apkg")
	if err := deck.Export(out); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	zr, err := zip.OpenReader(out)
	if err != nil {
		t.Fatalf("failed to open package: %v", err)
	}
	defer zr.Close()

	contents := map[string][]byte{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		data, _ := io.ReadAll(rc)
		rc.Close()
		contents[f.Name] = data
	}

	var mapping map[string]string
	if err := json.Unmarshal(contents["media"], &mapping); err != nil {
		t.Fatalf("media mapping: %v", err)
	}
	if len(mapping) != 1 || mapping["0"] != "hej.mp3" || string(contents["0"]) != "hej-audio" {
		t.Errorf("media = %v", mapping)
	}

	dbPath := filepath.Join(dir, "collection.anki2")
	if err := os.WriteFile(dbPath, contents["collection.anki2"], 0644); err != nil {
		t.Fatal(err)
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var notes, cards int
	db.QueryRow("SELECT count(*) FROM notes").Scan(&notes)
	db.QueryRow("SELECT count(*) FROM cards").Scan(&cards)
	if notes != 3 || cards != 6 {
		t.Errorf("notes = %d, cards = %d, want 3 and 6", notes, cards)
	}

	var models string
	db.QueryRow("SELECT models FROM col").Scan(&models)
	if !strings.Contains(models, `"name":"Swedish"`) || !strings.Contains(models, "Svenska (Basic + Reverse)") {
		t.Errorf("models = %s", models)
	}
}
