package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	StateDir   string
	LogLevel   string
	BatchFile  string
	ImportCSV  string
	ExportCSV  string
	AnkiFile   string
	DeckName   string
	Stats      bool
	ListModels bool
	Archive    bool

	// Backend flags
	ProxyURL         string
	VocabularySource string
	ExamplesProvider string
	ExamplesModel    string

	// Speech flags
	SpeechProvider    string
	OpenAIModel       string
	OpenAIVoice       string
	OpenAISpeed       float64
	OpenAIInstruction string
	AudioPlayer       string
	EagerPreload      bool
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		LogLevel:         "warn",
		ProxyURL:         "https://svenska-new-tab-backend.fly.dev",
		VocabularySource: "proxy",
		ExamplesProvider: "proxy",
		SpeechProvider:   "proxy",
		OpenAIModel:      "gpt-4o-mini-tts",
		OpenAIVoice:      "nova",
		OpenAISpeed:      1.0,
		AudioPlayer:      "exec",
	}
}
