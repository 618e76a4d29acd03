package processor

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"

	"codeberg.org/snonux/svenska/internal/archive"
	"codeberg.org/snonux/svenska/internal/audio"
	"codeberg.org/snonux/svenska/internal/cli"
	"codeberg.org/snonux/svenska/internal/examples"
	"codeberg.org/snonux/svenska/internal/models"
	"codeberg.org/snonux/svenska/internal/proxy"
	"codeberg.org/snonux/svenska/internal/store"
	"codeberg.org/snonux/svenska/internal/translation"
	"codeberg.org/snonux/svenska/internal/vocab"
)

// Vocabulary is a word source the processor can study from and report on
type Vocabulary interface {
	GetAll(ctx context.Context) ([]*vocab.Word, error)
	Create(ctx context.Context, original, translation string) (*vocab.Word, error)
	Update(ctx context.Context, w vocab.Word) (*vocab.Word, error)
	IncrementReadCount(ctx context.Context, id string) error
	Stats(ctx context.Context) (vocab.Stats, error)
}

// Processor handles the commands of one run
type Processor struct {
	config cli.Config
	out    io.Writer

	proxy *proxy.Client
	store *store.Store
}

// NewProcessor creates a processor writing its output to out
func NewProcessor(config cli.Config, out io.Writer) *Processor {
	return &Processor{
		config: config,
		out:    out,
		proxy: proxy.New(proxy.Config{
			BaseURL:         config.ProxyURL,
			Timeout:         config.ProxyTimeout,
			BreakerFailures: config.BreakerFailures,
			BreakerCooldown: config.BreakerCooldown,
		}),
	}
}

// Close releases the local store
func (p *Processor) Close() error {
	if p.store == nil {
		return nil
	}
	err := p.store.Close()
	p.store = nil
	return err
}

// Store opens the local store on first use
func (p *Processor) Store() (*store.Store, error) {
	if p.store != nil {
		return p.store, nil
	}
	s, err := store.Open(filepath.Join(p.config.StateDir, store.DefaultFilename))
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	p.store = s
	return s, nil
}

// Vocabulary returns the configured word source
func (p *Processor) Vocabulary() (Vocabulary, error) {
	switch p.config.VocabularySource {
	case "", "proxy":
		return p.proxy, nil
	case "local":
		s, err := p.Store()
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown vocabulary source: %s", p.config.VocabularySource)
	}
}

// Generator returns the configured example generator
func (p *Processor) Generator(ctx context.Context) (examples.Generator, error) {
	switch p.config.ExamplesProvider {
	case "", "proxy":
		return p.proxy, nil
	case "openai":
		return examples.NewOpenAIGenerator(p.config.OpenAIKey, "", p.config.ExamplesModel)
	case "gemini":
		return examples.NewGeminiGenerator(ctx, p.config.GeminiKey, "", p.config.ExamplesModel)
	default:
		return nil, fmt.Errorf("unknown examples provider: %s", p.config.ExamplesProvider)
	}
}

// Synthesizer returns the configured speech synthesizer. Local providers
// fall back to espeak-ng when it is installed.
func (p *Processor) Synthesizer() (audio.Synthesizer, error) {
	if p.config.SpeechProvider == "" || p.config.SpeechProvider == "proxy" {
		return p.proxy, nil
	}

	config := audio.DefaultProviderConfig()
	config.Provider = p.config.SpeechProvider
	config.SpeechDir = p.config.SpeechDir()
	config.OpenAIKey = p.config.OpenAIKey
	if p.config.OpenAIModel != "" {
		config.OpenAIModel = p.config.OpenAIModel
	}
	if p.config.OpenAIVoice != "" {
		config.OpenAIVoice = p.config.OpenAIVoice
	}
	if p.config.OpenAISpeed > 0 {
		config.OpenAISpeed = p.config.OpenAISpeed
	}
	if p.config.OpenAIInstruction != "" {
		config.OpenAIInstruction = p.config.OpenAIInstruction
	}

	synth, err := audio.NewLocalSynthesizer(config)
	if err != nil {
		return nil, err
	}
	if config.Provider == "espeak" {
		return synth, nil
	}

	fallback, err := audio.NewESpeakSynthesizer(config.ESpeak, config.SpeechDir)
	if err != nil {
		log.Debug("no speech fallback", "err", err)
		return synth, nil
	}
	return audio.NewSynthesizerWithFallback(synth, fallback), nil
}

// Translator returns the translator for custom words. The proxy translates
// unless an OpenAI key is configured with local vocabulary.
func (p *Processor) Translator() translation.Translator {
	var next translation.Translator = p.proxy
	if p.config.VocabularySource == "local" && p.config.OpenAIKey != "" {
		next = translation.NewOpenAITranslator(p.config.OpenAIKey, "")
	}
	return translation.NewCachingTranslator(next, translation.NewTranslationCache())
}

// ListModels prints the OpenAI models available to the configured key
func (p *Processor) ListModels(ctx context.Context) error {
	catalog, err := models.NewLister(p.config.OpenAIKey, "").List(ctx)
	if err != nil {
		return err
	}
	models.Print(p.out, catalog)
	return nil
}

// Archive moves the state directory away
func (p *Processor) Archive() error {
	if err := p.Close(); err != nil {
		return err
	}
	path, err := archive.Archive(p.config.StateDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(p.out, "State directory archived to: %s\n", path)
	return nil
}
