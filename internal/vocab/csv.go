package vocab

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ParseCSV reads a word list with one "swedish,english" pair per line.
// Lines missing either side are skipped, as are extra columns and a
// leading header row.
func ParseCSV(r io.Reader) ([]Word, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var words []Word
	for first := true; ; first = false {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read word list: %w", err)
		}
		if len(fields) < 2 {
			continue
		}

		original := strings.TrimSpace(fields[0])
		translation := strings.TrimSpace(fields[1])
		if first && strings.EqualFold(original, "swedish") && strings.EqualFold(translation, "english") {
			continue
		}
		if original == "" || translation == "" {
			continue
		}
		words = append(words, Word{Original: original, Translation: translation})
	}

	return words, nil
}

// CSVOptions configures WriteCSV.
type CSVOptions struct {
	IncludeHeaders  bool // Write a header row
	IncludeExamples bool // Append each example as two more columns
}

// WriteCSV exports words in the same layout ParseCSV reads.
func WriteCSV(w io.Writer, words []*Word, opts CSVOptions) error {
	writer := csv.NewWriter(w)

	if opts.IncludeHeaders {
		headers := []string{"Swedish", "English"}
		if opts.IncludeExamples {
			headers = append(headers, "Examples...")
		}
		if err := writer.Write(headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for _, word := range words {
		record := []string{word.Original, word.Translation}
		if opts.IncludeExamples {
			for _, ex := range word.Examples {
				record = append(record, ex.Swedish, ex.English)
			}
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write word %q: %w", word.Original, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
