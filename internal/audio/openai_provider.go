package audio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/svenska/internal/apierr"
)

// OpenAISynthesizer implements Synthesizer with OpenAI TTS. Generated audio
// is kept in a local speech directory and addressed by its filename.
type OpenAISynthesizer struct {
	client *openai.Client
	config *Config
	files  *SpeechFiles
}

// NewOpenAISynthesizer creates a new OpenAI TTS synthesizer
func NewOpenAISynthesizer(config *Config) (Synthesizer, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	files, err := NewSpeechFiles(config.SpeechDir)
	if err != nil {
		return nil, err
	}

	clientConfig := openai.DefaultConfig(config.OpenAIKey)
	if config.OpenAIBaseURL != "" {
		clientConfig.BaseURL = config.OpenAIBaseURL
	}

	return &OpenAISynthesizer{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
		files:  files,
	}, nil
}

// Synthesize generates audio using OpenAI TTS. A file generated earlier
// with the same settings is reused.
func (p *OpenAISynthesizer) Synthesize(ctx context.Context, req SpeechRequest) (Speech, error) {
	if err := ValidateSpeechText(req.Text); err != nil {
		return Speech{}, err
	}

	filename := p.filename(req.Text)
	if p.files.Exists(filename) {
		data, err := p.files.Load(filename)
		if err == nil {
			log.Debug("speech file reused", "text", req.Text, "file", filename)
			return Speech{Audio: data, Filename: filename}, nil
		}
	}

	speechReq := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(p.config.OpenAIModel),
		Input:          strings.TrimSpace(req.Text),
		Voice:          openai.SpeechVoice(p.config.OpenAIVoice),
		Speed:          p.config.OpenAISpeed,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	}

	// Instructions are only understood by the gpt-4o-mini family
	if p.config.OpenAIInstruction != "" && strings.HasPrefix(p.config.OpenAIModel, "gpt-4o-mini") {
		speechReq.Instructions = p.config.OpenAIInstruction
	}

	log.Debug("OpenAI TTS request", "model", p.config.OpenAIModel, "voice", p.config.OpenAIVoice, "text", req.Text)

	response, err := p.client.CreateSpeech(ctx, speechReq)
	if err != nil {
		return Speech{}, apierr.OpenAI("OpenAI TTS", err)
	}
	defer response.Close()

	data, err := io.ReadAll(response)
	if err != nil {
		return Speech{}, apierr.Network("OpenAI TTS", err)
	}
	if len(data) == 0 {
		return Speech{}, &apierr.MalformedResponseError{Reason: "no audio data received from OpenAI"}
	}

	if err := p.files.Save(filename, data); err != nil {
		// Still playable, just not reusable
		log.Warn("failed to store speech file", "file", filename, "err", err)
		return Speech{Audio: data}, nil
	}

	return Speech{Audio: data, Filename: filename}, nil
}

// Fetch returns a file generated earlier.
func (p *OpenAISynthesizer) Fetch(_ context.Context, filename string) ([]byte, error) {
	return p.files.Load(filename)
}

// Name returns the provider name
func (p *OpenAISynthesizer) Name() string {
	return "openai"
}

// Files exposes the speech directory for statistics.
func (p *OpenAISynthesizer) Files() *SpeechFiles {
	return p.files
}

func (p *OpenAISynthesizer) filename(text string) string {
	parts := []string{
		strings.TrimSpace(text),
		p.config.OpenAIModel,
		p.config.OpenAIVoice,
		fmt.Sprintf("%.2f", p.config.OpenAISpeed),
	}
	if strings.HasPrefix(p.config.OpenAIModel, "gpt-4o-mini") {
		parts = append(parts, p.config.OpenAIInstruction)
	}
	return p.files.Filename(".mp3", parts...)
}
