// Package archive moves the local state directory out of the way so that
// the next run starts with an empty store and speech cache.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Archive moves stateDir to <parent>/archive/<name>-<timestamp> and
// returns the new location.
func Archive(stateDir string) (string, error) {
	info, err := os.Stat(stateDir)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("state directory does not exist: %s", stateDir)
	}
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", stateDir)
	}

	archiveDir := filepath.Join(filepath.Dir(stateDir), "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	base := filepath.Base(stateDir)
	archivePath := filepath.Join(archiveDir, fmt.Sprintf("%s-%s", base, time.Now().Format("20060102-150405")))
	if _, err := os.Stat(archivePath); err == nil {
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("%s-%s", base, time.Now().Format("20060102-150405.000000")))
	}

	if err := os.Rename(stateDir, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive state directory: %w", err)
	}

	log.Info("archived state directory", "from", stateDir, "to", archivePath)
	return archivePath, nil
}
