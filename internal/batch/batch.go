// Package batch reads word lists for bulk import and adds them to a
// vocabulary, translating the half of each line that is missing.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"codeberg.org/snonux/svenska/internal/translation"
	"codeberg.org/snonux/svenska/internal/vocab"
	"github.com/charmbracelet/log"
)

// Entry is one line of a batch file
type Entry struct {
	Swedish string
	English string
}

// NeedsTranslation reports whether one side of the entry is missing
func (e Entry) NeedsTranslation() bool {
	return e.Swedish == "" || e.English == ""
}

// ReadFile reads entries from a file. Supported line formats:
//   - "ord": Swedish only, translated to English
//   - "ord = word": both provided
//   - "= word": English only, translated to Swedish
//
// Blank lines and lines starting with '#' are skipped.
func ReadFile(filename string) ([]Entry, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads entries from r
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		swedish, english, found := strings.Cut(line, "=")
		if !found {
			entries = append(entries, Entry{Swedish: line})
			continue
		}
		swedish = strings.TrimSpace(swedish)
		english = strings.TrimSpace(english)
		if english == "" {
			// "ord =" carries nothing to translate from
			if swedish == "" {
				continue
			}
			entries = append(entries, Entry{Swedish: swedish})
			continue
		}
		entries = append(entries, Entry{Swedish: swedish, English: english})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	return entries, nil
}

// Creator stores a new word
type Creator interface {
	Create(ctx context.Context, original, translation string) (*vocab.Word, error)
}

// Failure is an entry that could not be imported
type Failure struct {
	Entry Entry
	Err   error
}

// Result summarizes an import
type Result struct {
	Created []*vocab.Word
	Failed  []Failure
}

// Import completes each entry with tr and stores it through dst. A failing
// entry is recorded and the import moves on.
func Import(ctx context.Context, entries []Entry, tr translation.Translator, dst Creator) Result {
	var res Result

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			res.Failed = append(res.Failed, Failure{Entry: e, Err: err})
			continue
		}

		complete, err := Complete(ctx, e, tr)
		if err != nil {
			log.Warn("failed to translate batch entry", "swedish", e.Swedish, "english", e.English, "err", err)
			res.Failed = append(res.Failed, Failure{Entry: e, Err: err})
			continue
		}

		w, err := dst.Create(ctx, complete.Swedish, complete.English)
		if err != nil {
			log.Warn("failed to store batch entry", "word", complete.Swedish, "err", err)
			res.Failed = append(res.Failed, Failure{Entry: e, Err: err})
			continue
		}
		log.Info("imported word", "word", w.Original, "translation", w.Translation)
		res.Created = append(res.Created, w)
	}

	return res
}

// Complete fills in the missing side of e
func Complete(ctx context.Context, e Entry, tr translation.Translator) (Entry, error) {
	if !e.NeedsTranslation() {
		return e, nil
	}
	if tr == nil {
		return e, fmt.Errorf("no translator configured for %q", e.Swedish+e.English)
	}

	var err error
	if e.English == "" {
		e.English, err = tr.Translate(ctx, e.Swedish, translation.Swedish, translation.English)
	} else {
		e.Swedish, err = tr.Translate(ctx, e.English, translation.English, translation.Swedish)
	}
	if err != nil {
		return e, err
	}
	return e, nil
}
