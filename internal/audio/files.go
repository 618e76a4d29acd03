package audio

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SpeechFiles is a directory of locally synthesized audio. Files are named
// by a content hash, so a filename doubles as a speech reference.
type SpeechFiles struct {
	dir string
}

// NewSpeechFiles creates the directory if needed.
func NewSpeechFiles(dir string) (*SpeechFiles, error) {
	if dir == "" {
		return nil, fmt.Errorf("speech directory is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create speech directory: %w", err)
	}
	return &SpeechFiles{dir: dir}, nil
}

// Filename derives a stable filename from the text and the synthesizer
// settings that affect the result.
func (f *SpeechFiles) Filename(ext string, parts ...string) string {
	h := md5.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)) + ext
}

// path uses the first 2 chars of the name as subdirectory for better file
// system performance.
func (f *SpeechFiles) path(filename string) (string, error) {
	if len(filename) < 3 || strings.ContainsAny(filename, `/\`) || strings.HasPrefix(filename, ".") {
		return "", fmt.Errorf("invalid speech filename %q", filename)
	}
	return filepath.Join(f.dir, filename[:2], filename), nil
}

// Exists reports whether filename is stored.
func (f *SpeechFiles) Exists(filename string) bool {
	path, err := f.path(filename)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads a stored file.
func (f *SpeechFiles) Load(filename string) ([]byte, error) {
	path, err := f.path(filename)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read speech file: %w", err)
	}
	return data, nil
}

// Save stores data under filename.
func (f *SpeechFiles) Save(filename string, data []byte) error {
	path, err := f.path(filename)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create speech directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write speech file: %w", err)
	}
	return nil
}

// Stats returns the number and total size of stored files.
func (f *SpeechFiles) Stats() (fileCount int, totalSize int64, err error) {
	err = filepath.Walk(f.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			fileCount++
			totalSize += info.Size()
		}
		return nil
	})
	return fileCount, totalSize, err
}

// Clear removes all stored files.
func (f *SpeechFiles) Clear() error {
	return os.RemoveAll(f.dir)
}
