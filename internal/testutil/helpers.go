package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/snonux/svenska/internal/vocab"
)

// Words creates persisted words from "original=translation" pairs. IDs are
// w1, w2 and so on.
func Words(pairs ...string) []*vocab.Word {
	words := make([]*vocab.Word, 0, len(pairs))
	for i, p := range pairs {
		original, translation, _ := strings.Cut(p, "=")
		words = append(words, &vocab.Word{
			ID:          fmt.Sprintf("w%d", i+1),
			Original:    strings.TrimSpace(original),
			Translation: strings.TrimSpace(translation),
		})
	}
	return words
}

// Examples creates n examples for a word
func Examples(word string, n int) []vocab.Example {
	examples := make([]vocab.Example, n)
	for i := range examples {
		examples[i] = vocab.Example{
			Swedish: fmt.Sprintf("%s mening %d.", word, i+1),
			English: fmt.Sprintf("%s sentence %d.", word, i+1),
		}
	}
	return examples
}

// Originals returns the terms of words
func Originals(words []*vocab.Word) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.Original
	}
	return out
}

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// CreateStateDirectory creates a state directory the way a few study
// sessions leave it behind
func CreateStateDirectory(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	CreateTestFile(t, filepath.Join(dir, "svenska.db"), []byte("sqlite"))
	CreateTestFile(t, filepath.Join(dir, "speech", "ab", "abcdef.mp3"), []byte{0xFF, 0xFB, 0x90, 0x00})
	return dir
}

// AssertFileExists checks if a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does not exist
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to not exist: %s", path)
	}
}

// AssertFileContains checks if a file contains a substring
func AssertFileContains(t *testing.T, path string, substring string) {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}

	if !strings.Contains(string(content), substring) {
		t.Errorf("File %s does not contain expected substring: %q", path, substring)
	}
}
