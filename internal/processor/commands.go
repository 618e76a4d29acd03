package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"codeberg.org/snonux/svenska/internal"
	"codeberg.org/snonux/svenska/internal/anki"
	"codeberg.org/snonux/svenska/internal/audio"
	"codeberg.org/snonux/svenska/internal/batch"
	"codeberg.org/snonux/svenska/internal/vocab"
)

// ImportBatch adds the words of a batch file to the vocabulary
func (p *Processor) ImportBatch(ctx context.Context, filename string) error {
	entries, err := batch.ReadFile(filename)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no words found in %s", filename)
	}

	v, err := p.Vocabulary()
	if err != nil {
		return err
	}

	res := batch.Import(ctx, entries, p.Translator(), v)
	for _, w := range res.Created {
		fmt.Fprintf(p.out, "  + %s = %s\n", w.Original, w.Translation)
	}
	for _, f := range res.Failed {
		fmt.Fprintf(p.out, "  ! %s%s: %v\n", f.Entry.Swedish, f.Entry.English, f.Err)
	}
	fmt.Fprintf(p.out, "Added %s of %s words\n", humanize.Comma(int64(len(res.Created))), humanize.Comma(int64(len(entries))))

	if len(res.Created) == 0 {
		return fmt.Errorf("no words were added")
	}
	return nil
}

// ImportCSV adds a swedish,english word list to the vocabulary. Words
// already known by their term are skipped.
func (p *Processor) ImportCSV(ctx context.Context, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	words, err := vocab.ParseCSV(f)
	if err != nil {
		return err
	}

	v, err := p.Vocabulary()
	if err != nil {
		return err
	}
	existing, err := v.GetAll(ctx)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(existing))
	for _, w := range existing {
		known[w.Original] = true
	}

	added := 0
	for _, w := range words {
		if known[w.Original] {
			continue
		}
		if _, err := v.Create(ctx, w.Original, w.Translation); err != nil {
			return fmt.Errorf("failed to import %q: %w", w.Original, err)
		}
		known[w.Original] = true
		added++
	}

	fmt.Fprintf(p.out, "Imported %s new words (%s skipped)\n", humanize.Comma(int64(added)), humanize.Comma(int64(len(words)-added)))
	return nil
}

// ExportCSV writes the vocabulary with its examples to filename
func (p *Processor) ExportCSV(ctx context.Context, filename string) error {
	v, err := p.Vocabulary()
	if err != nil {
		return err
	}
	words, err := v.GetAll(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	if err := vocab.WriteCSV(f, words, vocab.CSVOptions{IncludeHeaders: true, IncludeExamples: true}); err != nil {
		return err
	}
	fmt.Fprintf(p.out, "Exported %s words to %s\n", humanize.Comma(int64(len(words))), filename)
	return f.Close()
}

// ExportAnki writes the vocabulary as an Anki package. Words with recorded
// speech get their audio attached; a failed fetch only drops the audio.
func (p *Processor) ExportAnki(ctx context.Context, filename, deckName string) error {
	v, err := p.Vocabulary()
	if err != nil {
		return err
	}
	words, err := v.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return fmt.Errorf("no words to export")
	}

	synth, err := p.Synthesizer()
	if err != nil {
		log.Warn("exporting without audio", "err", err)
	}

	deck := anki.NewDeck(deckName)
	withAudio := 0
	for _, w := range words {
		card := anki.CardFromWord(w)
		if synth != nil && w.SpeechRef != "" {
			data, err := synth.Fetch(ctx, w.SpeechRef)
			switch {
			case err != nil:
				log.Warn("failed to fetch speech", "word", w.Original, "file", w.SpeechRef, "err", err)
			case len(data) > 0:
				card.Audio = data
				card.AudioName = mediaName(w.SpeechRef)
				withAudio++
			}
		}
		deck.Add(card)
	}

	if err := deck.Export(filename); err != nil {
		return fmt.Errorf("failed to export anki deck: %w", err)
	}
	fmt.Fprintf(p.out, "Exported %s cards (%s with audio) to %s\n",
		humanize.Comma(int64(deck.Len())), humanize.Comma(int64(withAudio)), filename)
	return nil
}

// mediaName turns a speech reference into a file name Anki can store in
// its media folder.
func mediaName(ref string) string {
	ext := filepath.Ext(ref)
	base := strings.TrimSuffix(filepath.Base(ref), ext)
	return internal.SanitizeFilename(base) + ext
}

// PrintStats reports vocabulary and speech cache statistics
func (p *Processor) PrintStats(ctx context.Context) error {
	v, err := p.Vocabulary()
	if err != nil {
		return err
	}
	stats, err := v.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(p.out, "Words:               %s\n", humanize.Comma(int64(stats.TotalWords)))
	fmt.Fprintf(p.out, "Reads:               %s\n", humanize.Comma(int64(stats.TotalReads)))
	fmt.Fprintf(p.out, "Words with examples: %s\n", humanize.Comma(int64(stats.WordsWithExamples)))
	fmt.Fprintf(p.out, "Words with speech:   %s\n", humanize.Comma(int64(stats.WordsWithSpeech)))

	if _, err := os.Stat(p.config.SpeechDir()); err != nil {
		return nil
	}
	files, err := audio.NewSpeechFiles(p.config.SpeechDir())
	if err != nil {
		return nil
	}
	count, size, err := files.Stats()
	if err == nil && count > 0 {
		fmt.Fprintf(p.out, "Local speech files:  %s (%s)\n", humanize.Comma(int64(count)), humanize.Bytes(uint64(size)))
	}
	return nil
}
