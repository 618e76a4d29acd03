package internal

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// GenerateWordID creates a unique ID for a locally created word based on
// timestamp and the Swedish term.
// Format: epochMillis_md5(word)[:8]
func GenerateWordID(original string) string {
	epochMillis := time.Now().UnixNano() / 1000000

	hash := md5.Sum([]byte(strings.ToLower(original)))
	hashStr := hex.EncodeToString(hash[:])[:8]

	return fmt.Sprintf("%d_%s", epochMillis, hashStr)
}

// SanitizeFilename creates a safe filename from a string
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		if isAlphaNumeric(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// isAlphaNumeric checks if a rune is alphanumeric, including the Swedish
// letters å, ä and ö.
func isAlphaNumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') || strings.ContainsRune("åäöÅÄÖéÉ", r)
}
