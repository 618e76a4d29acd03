package cli

import (
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config is the resolved configuration of a run. Flags win over the config
// file, which wins over the defaults.
type Config struct {
	StateDir string
	LogLevel string

	ProxyURL        string
	ProxyTimeout    time.Duration
	BreakerFailures uint32
	BreakerCooldown time.Duration

	VocabularySource string
	ExamplesProvider string
	ExamplesModel    string

	SpeechProvider    string
	OpenAIModel       string
	OpenAIVoice       string
	OpenAISpeed       float64
	OpenAIInstruction string
	AudioPlayer       string
	EagerPreload      bool

	OpenAIKey string
	GeminiKey string
}

func setDefaults() {
	viper.SetDefault("proxy.url", "https://svenska-new-tab-backend.fly.dev")
	viper.SetDefault("proxy.timeout", 30*time.Second)
	viper.SetDefault("proxy.breaker.failures", 5)
	viper.SetDefault("proxy.breaker.cooldown", 30*time.Second)
	viper.SetDefault("vocabulary.source", "proxy")
	viper.SetDefault("examples.provider", "proxy")
	viper.SetDefault("speech.provider", "proxy")
	viper.SetDefault("speech.openai_model", "gpt-4o-mini-tts")
	viper.SetDefault("speech.openai_voice", "nova")
	viper.SetDefault("speech.openai_speed", 1.0)
	viper.SetDefault("audio.player", "exec")
	viper.SetDefault("log.level", "warn")
}

// LoadConfig resolves the configuration from viper
func LoadConfig() Config {
	setDefaults()

	stateDir := viper.GetString("store.path")
	if stateDir == "" {
		stateDir = DefaultStateDir()
	}

	return Config{
		StateDir: stateDir,
		LogLevel: viper.GetString("log.level"),

		ProxyURL:        viper.GetString("proxy.url"),
		ProxyTimeout:    viper.GetDuration("proxy.timeout"),
		BreakerFailures: viper.GetUint32("proxy.breaker.failures"),
		BreakerCooldown: viper.GetDuration("proxy.breaker.cooldown"),

		VocabularySource: viper.GetString("vocabulary.source"),
		ExamplesProvider: viper.GetString("examples.provider"),
		ExamplesModel:    viper.GetString("examples.model"),

		SpeechProvider:    viper.GetString("speech.provider"),
		OpenAIModel:       viper.GetString("speech.openai_model"),
		OpenAIVoice:       viper.GetString("speech.openai_voice"),
		OpenAISpeed:       viper.GetFloat64("speech.openai_speed"),
		OpenAIInstruction: viper.GetString("speech.openai_instruction"),
		AudioPlayer:       viper.GetString("audio.player"),
		EagerPreload:      viper.GetBool("audio.eager_preload"),

		OpenAIKey: GetOpenAIKey(),
		GeminiKey: GetGeminiKey(),
	}
}

// SpeechDir is where locally synthesized speech files are kept
func (c Config) SpeechDir() string {
	return filepath.Join(c.StateDir, "speech")
}
