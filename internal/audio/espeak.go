package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// ESpeakConfig holds configuration for espeak-ng audio generation
type ESpeakConfig struct {
	Voice     string // Voice variant (e.g., "sv", "sv+m1", "sv+f1")
	Speed     int    // Speech speed in words per minute (default: 150)
	Pitch     int    // Pitch adjustment, 0 to 99 (default: 50)
	Amplitude int    // Volume/amplitude, 0 to 200 (default: 100)
	WordGap   int    // Gap between words in 10ms units (default: 0)
}

// DefaultESpeakConfig returns the default configuration for the Swedish voice
func DefaultESpeakConfig() *ESpeakConfig {
	return &ESpeakConfig{
		Voice:     "sv",
		Speed:     140,
		Pitch:     50,
		Amplitude: 100,
	}
}

// ESpeakSynthesizer synthesizes speech offline with espeak-ng. It is the
// usual fallback when the remote providers are unreachable.
type ESpeakSynthesizer struct {
	config *ESpeakConfig
	files  *SpeechFiles
	binary string
}

// NewESpeakSynthesizer creates a new espeak-ng synthesizer
func NewESpeakSynthesizer(config *ESpeakConfig, speechDir string) (Synthesizer, error) {
	if err := checkESpeakInstalled(); err != nil {
		return nil, err
	}
	return newESpeakSynthesizer(config, speechDir, "espeak-ng")
}

func newESpeakSynthesizer(config *ESpeakConfig, speechDir, binary string) (*ESpeakSynthesizer, error) {
	if config == nil {
		config = DefaultESpeakConfig()
	}
	files, err := NewSpeechFiles(speechDir)
	if err != nil {
		return nil, err
	}
	return &ESpeakSynthesizer{config: config, files: files, binary: binary}, nil
}

// Synthesize generates a WAV file for the request text
func (e *ESpeakSynthesizer) Synthesize(ctx context.Context, req SpeechRequest) (Speech, error) {
	if err := ValidateSpeechText(req.Text); err != nil {
		return Speech{}, err
	}
	text := strings.TrimSpace(req.Text)

	filename := e.files.Filename(".wav", text, "espeak", e.config.Voice,
		fmt.Sprintf("%d/%d/%d/%d", e.config.Speed, e.config.Pitch, e.config.Amplitude, e.config.WordGap))
	if data, err := e.files.Load(filename); err == nil {
		return Speech{Audio: data, Filename: filename}, nil
	}

	tmp, err := os.CreateTemp("", "svenska-espeak-*.wav")
	if err != nil {
		return Speech{}, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	cmd := exec.CommandContext(ctx, e.binary, e.args(text, tmpPath)...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return Speech{}, fmt.Errorf("espeak-ng failed: %w\nOutput: %s", err, string(output))
	}

	data, err := os.ReadFile(tmpPath)
	if err != nil {
		return Speech{}, fmt.Errorf("failed to read espeak-ng output: %w", err)
	}

	if err := e.files.Save(filename, data); err != nil {
		log.Warn("failed to store speech file", "file", filename, "err", err)
		return Speech{Audio: data}, nil
	}
	return Speech{Audio: data, Filename: filename}, nil
}

func (e *ESpeakSynthesizer) args(text, outputFile string) []string {
	args := []string{
		"-v", e.config.Voice,
		"-s", fmt.Sprintf("%d", e.config.Speed),
		"-p", fmt.Sprintf("%d", e.config.Pitch),
		"-a", fmt.Sprintf("%d", e.config.Amplitude),
	}
	if e.config.WordGap > 0 {
		args = append(args, "-g", fmt.Sprintf("%d", e.config.WordGap))
	}
	return append(args, "-w", outputFile, text)
}

// Fetch returns a file generated earlier.
func (e *ESpeakSynthesizer) Fetch(_ context.Context, filename string) ([]byte, error) {
	return e.files.Load(filename)
}

// Name returns the provider name
func (e *ESpeakSynthesizer) Name() string {
	return "espeak-ng"
}

// SetVoice updates the voice variant
func (e *ESpeakSynthesizer) SetVoice(voice string) {
	e.config.Voice = voice
}

// SetSpeed updates the speech speed
func (e *ESpeakSynthesizer) SetSpeed(speed int) {
	if speed < 80 {
		speed = 80
	} else if speed > 450 {
		speed = 450
	}
	e.config.Speed = speed
}

// SetPitch updates the pitch (0-99, 50 is default)
func (e *ESpeakSynthesizer) SetPitch(pitch int) {
	if pitch < 0 {
		pitch = 0
	} else if pitch > 99 {
		pitch = 99
	}
	e.config.Pitch = pitch
}

// SetAmplitude updates the volume/amplitude (0-200, 100 is default)
func (e *ESpeakSynthesizer) SetAmplitude(amplitude int) {
	if amplitude < 0 {
		amplitude = 0
	} else if amplitude > 200 {
		amplitude = 200
	}
	e.config.Amplitude = amplitude
}

// SetWordGap updates the gap between words in 10ms units
func (e *ESpeakSynthesizer) SetWordGap(gap int) {
	if gap < 0 {
		gap = 0
	}
	e.config.WordGap = gap
}

// checkESpeakInstalled verifies that espeak-ng is available on the system
func checkESpeakInstalled() error {
	if _, err := exec.LookPath("espeak-ng"); err != nil {
		return fmt.Errorf("espeak-ng is not installed or not in PATH: %w", err)
	}
	return nil
}

// ListVoices returns available Swedish voice variants
func ListVoices() []string {
	return []string{
		"sv",    // Default Swedish voice
		"sv+m1", // Swedish male voice 1
		"sv+m2", // Swedish male voice 2
		"sv+m3", // Swedish male voice 3
		"sv+f1", // Swedish female voice 1
		"sv+f2", // Swedish female voice 2
		"sv+f3", // Swedish female voice 3
	}
}
