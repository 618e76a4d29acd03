// Package audio manages synthesized speech for words and examples: the
// multi-tier audio cache, the synthesizers that produce speech, and the
// players that make it audible.
package audio

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
)

// SpeechRequest describes the text to synthesize and, when it belongs to a
// persisted word, where it belongs.
type SpeechRequest struct {
	Text         string
	WordID       string
	ExampleIndex int // -1 when the text is the word itself
}

// IsExample reports whether the request is for an example sentence of a
// persisted word.
func (r SpeechRequest) IsExample() bool {
	return r.WordID != "" && r.ExampleIndex >= 0
}

// Speech is synthesized audio. Filename is set when the synthesizer
// assigned a reusable name to it.
type Speech struct {
	Audio    []byte
	Filename string
}

// Synthesizer defines the interface for text-to-speech providers
type Synthesizer interface {
	// Synthesize produces audio for the request
	Synthesize(ctx context.Context, req SpeechRequest) (Speech, error)

	// Fetch returns previously synthesized audio by its assigned filename
	Fetch(ctx context.Context, filename string) ([]byte, error)

	// Name returns the provider name
	Name() string
}

// Config holds common configuration for speech synthesizers
type Config struct {
	Provider  string // "proxy", "openai" or "espeak"
	SpeechDir string // Directory for locally synthesized files

	// OpenAI-specific settings
	OpenAIKey         string
	OpenAIBaseURL     string
	OpenAIModel       string  // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	OpenAIVoice       string  // "alloy", "ash", "coral", "echo", "fable", "nova", "onyx", "sage", "shimmer"
	OpenAISpeed       float64 // 0.25 to 4.0
	OpenAIInstruction string  // Voice instructions for gpt-4o-mini-tts model

	// espeak-ng settings
	ESpeak *ESpeakConfig
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:          "proxy",
		SpeechDir:         "./speech",
		OpenAIModel:       "gpt-4o-mini-tts",
		OpenAIVoice:       "nova",
		OpenAISpeed:       1.0,
		OpenAIInstruction: "You are speaking Swedish (svenska). Pronounce the text with natural Swedish phonetics and pitch accent. Speak slowly and clearly for language learners.",
		ESpeak:            DefaultESpeakConfig(),
	}
}

// NewLocalSynthesizer creates a synthesizer that runs without the backend
// proxy. The proxy synthesizer lives in package proxy.
func NewLocalSynthesizer(config *Config) (Synthesizer, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}

	switch config.Provider {
	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAISynthesizer(config)

	case "espeak":
		return NewESpeakSynthesizer(config.ESpeak, config.SpeechDir)

	default:
		return nil, fmt.Errorf("unknown speech provider: %s", config.Provider)
	}
}

// SynthesizerWithFallback wraps a primary synthesizer with a fallback option
type SynthesizerWithFallback struct {
	primary  Synthesizer
	fallback Synthesizer
}

// NewSynthesizerWithFallback creates a synthesizer that falls back to
// secondary if primary fails
func NewSynthesizerWithFallback(primary, fallback Synthesizer) Synthesizer {
	return &SynthesizerWithFallback{
		primary:  primary,
		fallback: fallback,
	}
}

// Synthesize tries the primary provider first, falls back to secondary on error
func (s *SynthesizerWithFallback) Synthesize(ctx context.Context, req SpeechRequest) (Speech, error) {
	speech, err := s.primary.Synthesize(ctx, req)
	if err == nil {
		return speech, nil
	}

	log.Warn("primary speech provider failed, falling back",
		"primary", s.primary.Name(), "fallback", s.fallback.Name(), "err", err)
	return s.fallback.Synthesize(ctx, req)
}

// Fetch asks the primary first; filenames from the fallback are only known
// to the fallback.
func (s *SynthesizerWithFallback) Fetch(ctx context.Context, filename string) ([]byte, error) {
	data, err := s.primary.Fetch(ctx, filename)
	if err == nil {
		return data, nil
	}
	return s.fallback.Fetch(ctx, filename)
}

// Name returns the provider name
func (s *SynthesizerWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", s.primary.Name(), s.fallback.Name())
}
