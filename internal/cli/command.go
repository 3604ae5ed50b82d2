package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/ai1900/internal"
	"codeberg.org/snonux/ai1900/internal/config"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ai1900 [message]",
		Short: "Bilingual Persian/English chat",
		Long: `ai1900 chats in Persian or English.

Persian messages are translated to English, answered by an English
dialogue model, and the reply is translated back to Persian.

Examples:
  ai1900                       # Interactive chat (default)
  ai1900 "سلام"                # Answer a single message
  ai1900 --batch messages.txt  # Answer every line of a file
  ai1900 serve --addr :8080    # Serve the chat over a websocket`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

// CreateServeCommand creates the serve sub command
func CreateServeCommand(flags *Flags) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chat over a websocket",
		Long: `serve starts an HTTP server. Every text message received on /ws
is a chat turn; the reply is sent back as JSON. /healthz reports readiness.`,
		Args: cobra.NoArgs,
	}

	serveCmd.Flags().StringVar(&flags.Addr, "addr", flags.Addr, "Listen address")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	return serveCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.ai1900.yaml)")
	cmd.PersistentFlags().StringVar(&flags.DialogueProvider, "dialogue-provider", flags.DialogueProvider, "Dialogue model provider: stub, openai, gemini, ollama")
	cmd.PersistentFlags().StringVar(&flags.DialogueModel, "dialogue-model", "", "Dialogue model name (default depends on the provider)")
	cmd.PersistentFlags().StringVar(&flags.TranslationProvider, "translation-provider", flags.TranslationProvider, "Translation model provider: stub, openai, gemini, ollama")
	cmd.PersistentFlags().StringVar(&flags.TranslationModel, "translation-model", "", "Translation model name (default depends on the provider)")
	cmd.PersistentFlags().DurationVar(&flags.Timeout, "timeout", 0, "Timeout of a single model call (0 means none)")
	cmd.PersistentFlags().StringVar(&flags.Refiner, "refiner", flags.Refiner, "Language detection refiner for mixed text: none, whatlanggo, lingua")
	cmd.PersistentFlags().IntVar(&flags.CacheSize, "cache-size", flags.CacheSize, "Maximum cached translations (0 means unbounded)")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "Log format: console or json")

	// Local flags
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Answer messages from file (one per line)")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI chat models for the current API key")
	cmd.Flags().IntVar(&flags.ClearCacheEvery, "clear-cache-every", flags.ClearCacheEvery, "Clear the translation cache every N chat turns (0 means never)")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("dialogue.provider", cmd.PersistentFlags().Lookup("dialogue-provider"))
	viper.BindPFlag("dialogue.model", cmd.PersistentFlags().Lookup("dialogue-model"))
	viper.BindPFlag("translation.provider", cmd.PersistentFlags().Lookup("translation-provider"))
	viper.BindPFlag("translation.model", cmd.PersistentFlags().Lookup("translation-model"))
	viper.BindPFlag("backend.timeout", cmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("language.refiner", cmd.PersistentFlags().Lookup("refiner"))
	viper.BindPFlag("cache.max_entries", cmd.PersistentFlags().Lookup("cache-size"))
	viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", cmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("chat.clear_cache_every", cmd.Flags().Lookup("clear-cache-every"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".ai1900" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".ai1900")
	}

	// Environment variables, e.g. AI1900_DIALOGUE_PROVIDER for dialogue.provider
	viper.SetEnvPrefix("AI1900")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("openai.api_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("gemini.api_key")
}

// LoadConfig reads the configuration from viper and fills in API keys that
// are not set per backend
func LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	for _, b := range []*config.BackendConfig{&cfg.Dialogue, &cfg.Translation} {
		if b.APIKey != "" {
			continue
		}
		switch b.Provider {
		case "openai":
			b.APIKey = GetOpenAIKey()
		case "gemini":
			b.APIKey = GetGeminiKey()
		}
	}

	return cfg, nil
}
