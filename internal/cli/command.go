package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/svenska/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "svenska",
		Short: "Swedish vocabulary flashcards",
		Long: `svenska shows Swedish words one at a time, speaks them, and generates
example sentences on request.

Words come from the svenska backend proxy or from a local SQLite store.

Examples:
  svenska                        # Start a study session
  svenska --batch words.txt      # Add words from a file (ord or ord = word per line)
  svenska --import list.csv      # Import a swedish,english CSV word list
  svenska --stats                # Show vocabulary statistics`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.svenska.yaml)")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")

	cmd.Flags().StringVar(&flags.StateDir, "state-dir", DefaultStateDir(), "Directory for the local store and speech files")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Add words from file (one per line)")
	cmd.Flags().StringVar(&flags.ImportCSV, "import", "", "Import a CSV word list (swedish,english)")
	cmd.Flags().StringVar(&flags.ExportCSV, "export", "", "Export the vocabulary as CSV")
	cmd.Flags().StringVar(&flags.AnkiFile, "anki", "", "Export the vocabulary as an Anki package (.apkg)")
	cmd.Flags().StringVar(&flags.DeckName, "deck-name", "Svenska", "Deck name for the Anki export")
	cmd.Flags().BoolVar(&flags.Stats, "stats", false, "Show vocabulary statistics")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI models for the current API key")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move the local state directory to the archive")

	cmd.Flags().StringVar(&flags.ProxyURL, "proxy-url", flags.ProxyURL, "Backend proxy URL")
	cmd.Flags().StringVar(&flags.VocabularySource, "vocabulary", flags.VocabularySource, "Vocabulary source: proxy or local")
	cmd.Flags().StringVar(&flags.ExamplesProvider, "examples", flags.ExamplesProvider, "Example generator: proxy, openai or gemini")
	cmd.Flags().StringVar(&flags.ExamplesModel, "examples-model", "", "Model for the openai or gemini example generator")

	cmd.Flags().StringVar(&flags.SpeechProvider, "speech", flags.SpeechProvider, "Speech provider: proxy, openai or espeak")
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	cmd.Flags().StringVar(&flags.OpenAIVoice, "openai-voice", flags.OpenAIVoice, "OpenAI voice: alloy, ash, coral, echo, fable, nova, onyx, sage, shimmer")
	cmd.Flags().Float64Var(&flags.OpenAISpeed, "openai-speed", flags.OpenAISpeed, "OpenAI speech speed (0.25 to 4.0, may be ignored by gpt-4o-mini-tts)")
	cmd.Flags().StringVar(&flags.OpenAIInstruction, "openai-instruction", "", "Voice instructions for gpt-4o-mini-tts model")
	cmd.Flags().StringVar(&flags.AudioPlayer, "player", flags.AudioPlayer, "Audio player: exec, oto or none")
	cmd.Flags().BoolVar(&flags.EagerPreload, "eager-preload", false, "Synthesize speech ahead of playback")

	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("store.path", cmd.Flags().Lookup("state-dir"))
	viper.BindPFlag("proxy.url", cmd.Flags().Lookup("proxy-url"))
	viper.BindPFlag("vocabulary.source", cmd.Flags().Lookup("vocabulary"))
	viper.BindPFlag("examples.provider", cmd.Flags().Lookup("examples"))
	viper.BindPFlag("examples.model", cmd.Flags().Lookup("examples-model"))
	viper.BindPFlag("speech.provider", cmd.Flags().Lookup("speech"))
	viper.BindPFlag("speech.openai_model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("speech.openai_voice", cmd.Flags().Lookup("openai-voice"))
	viper.BindPFlag("speech.openai_speed", cmd.Flags().Lookup("openai-speed"))
	viper.BindPFlag("speech.openai_instruction", cmd.Flags().Lookup("openai-instruction"))
	viper.BindPFlag("audio.player", cmd.Flags().Lookup("player"))
	viper.BindPFlag("audio.eager_preload", cmd.Flags().Lookup("eager-preload"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".svenska" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".svenska")
	}

	viper.SetEnvPrefix("SVENSKA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.Debug("using config file", "path", viper.ConfigFileUsed())
	}
}

// SetupLogging sets the level of the global logger. Unknown levels fall
// back to warn.
func SetupLogging(level string) {
	log.SetOutput(os.Stderr)
	log.SetReportTimestamp(true)

	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.Warn("unknown log level, using warn", "level", level)
		lvl = log.WarnLevel
	}
	log.SetLevel(lvl)
}

// DefaultStateDir returns the per-user state directory
func DefaultStateDir() string {
	scope := gap.NewScope(gap.User, "svenska")
	dirs, err := scope.DataDirs()
	if err != nil || len(dirs) == 0 {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "svenska")
	}
	return dirs[0]
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("openai.key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("gemini.key")
}
