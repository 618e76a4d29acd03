package audio

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxSpeechRunes is the input limit of the OpenAI speech endpoint.
const maxSpeechRunes = 4096

// ValidateSpeechText checks that text can be sent to a synthesizer.
func ValidateSpeechText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text cannot be empty")
	}

	if n := utf8.RuneCountInString(text); n > maxSpeechRunes {
		return fmt.Errorf("text too long for speech synthesis: %d characters (max %d)", n, maxSpeechRunes)
	}

	return nil
}
