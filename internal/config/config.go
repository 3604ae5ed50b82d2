package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"codeberg.org/snonux/ai1900/internal/backend"
	"codeberg.org/snonux/ai1900/internal/backend/factory"
	"codeberg.org/snonux/ai1900/internal/lang"
	"codeberg.org/snonux/ai1900/internal/model"
	"codeberg.org/snonux/ai1900/internal/translation"
)

// Default chat messages
const (
	DefaultApology      = "Sorry, I couldn't process that."
	DefaultInvalidInput = "Please type a message."
	DefaultHistoryLimit = 50
)

// Config holds all ai1900 settings
type Config struct {
	Language    LanguageConfig `mapstructure:"language"`
	Dialogue    BackendConfig  `mapstructure:"dialogue"`
	Translation BackendConfig  `mapstructure:"translation"`
	Backend     TimeoutConfig  `mapstructure:"backend"`
	Breaker     BreakerConfig  `mapstructure:"breaker"`
	Cache       CacheConfig    `mapstructure:"cache"`
	Chat        ChatConfig     `mapstructure:"chat"`
	Server      ServerConfig   `mapstructure:"server"`
	Log         LogConfig      `mapstructure:"log"`
}

// LanguageConfig configures language detection
type LanguageConfig struct {
	Refiner    string  `mapstructure:"refiner"`    // "", "none", "whatlanggo" or "lingua"
	MinLength  int     `mapstructure:"min_length"` // runes before the refiner is consulted
	Confidence float64 `mapstructure:"confidence"` // minimum refiner confidence
}

// BackendConfig configures one model backend
type BackendConfig struct {
	Provider     string  `mapstructure:"provider"`
	Model        string  `mapstructure:"model"`
	APIKey       string  `mapstructure:"api_key"`
	BaseURL      string  `mapstructure:"base_url"`
	MaxTokens    int     `mapstructure:"max_tokens"`
	Temperature  float64 `mapstructure:"temperature"`
	SystemPrompt string  `mapstructure:"system_prompt"`
	VerifyOnLoad bool    `mapstructure:"verify_on_load"`
}

// TimeoutConfig bounds every model call
type TimeoutConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// BreakerConfig configures the circuit breakers around the models
type BreakerConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	MaxFailures uint32        `mapstructure:"max_failures"`
	OpenTimeout time.Duration `mapstructure:"open_timeout"`
}

// CacheConfig configures the translation cache
type CacheConfig struct {
	MaxEntries int `mapstructure:"max_entries"` // 0 means unbounded
}

// ChatConfig configures the messages and the interactive session
type ChatConfig struct {
	Apology         string `mapstructure:"apology"`
	InvalidInput    string `mapstructure:"invalid_input"`
	HistoryLimit    int    `mapstructure:"history_limit"`
	ClearCacheEvery int    `mapstructure:"clear_cache_every"`
}

// ServerConfig configures the websocket server
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig configures logging
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

// Default returns the default configuration. It runs offline with the stub
// backends.
func Default() *Config {
	breaker := model.DefaultBreakerConfig()
	return &Config{
		Language: LanguageConfig{
			Refiner:    "whatlanggo",
			MinLength:  lang.DefaultMinLength,
			Confidence: 0.5,
		},
		Dialogue: BackendConfig{
			Provider:     "stub",
			MaxTokens:    128,
			Temperature:  0.7,
			SystemPrompt: backend.DefaultPersona,
		},
		Translation: BackendConfig{
			Provider:  "stub",
			MaxTokens: 128,
		},
		Breaker: BreakerConfig{
			Enabled:     breaker.Enabled,
			MaxFailures: breaker.MaxFailures,
			OpenTimeout: breaker.OpenTimeout,
		},
		Cache: CacheConfig{MaxEntries: translation.DefaultMaxEntries},
		Chat: ChatConfig{
			Apology:      DefaultApology,
			InvalidInput: DefaultInvalidInput,
			HistoryLimit: DefaultHistoryLimit,
		},
		Server: ServerConfig{Addr: ":8080"},
		Log:    LogConfig{Level: "warn", Format: "console"},
	}
}

// SetDefaults registers the defaults with v. Keys only known to viper
// through a default are picked up from the environment by Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("language.refiner", d.Language.Refiner)
	v.SetDefault("language.min_length", d.Language.MinLength)
	v.SetDefault("language.confidence", d.Language.Confidence)

	for name, b := range map[string]BackendConfig{"dialogue": d.Dialogue, "translation": d.Translation} {
		v.SetDefault(name+".provider", b.Provider)
		v.SetDefault(name+".model", b.Model)
		v.SetDefault(name+".api_key", b.APIKey)
		v.SetDefault(name+".base_url", b.BaseURL)
		v.SetDefault(name+".max_tokens", b.MaxTokens)
		v.SetDefault(name+".temperature", b.Temperature)
		v.SetDefault(name+".system_prompt", b.SystemPrompt)
		v.SetDefault(name+".verify_on_load", b.VerifyOnLoad)
	}

	v.SetDefault("backend.timeout", d.Backend.Timeout)
	v.SetDefault("breaker.enabled", d.Breaker.Enabled)
	v.SetDefault("breaker.max_failures", d.Breaker.MaxFailures)
	v.SetDefault("breaker.open_timeout", d.Breaker.OpenTimeout)
	v.SetDefault("cache.max_entries", d.Cache.MaxEntries)
	v.SetDefault("chat.apology", d.Chat.Apology)
	v.SetDefault("chat.invalid_input", d.Chat.InvalidInput)
	v.SetDefault("chat.history_limit", d.Chat.HistoryLimit)
	v.SetDefault("chat.clear_cache_every", d.Chat.ClearCacheEvery)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Load reads the configuration from v and validates it
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the program cannot run with
func (c *Config) Validate() error {
	switch c.Language.Refiner {
	case "", "none", "whatlanggo", "lingua":
	default:
		return fmt.Errorf("invalid language.refiner %q: must be none, whatlanggo or lingua", c.Language.Refiner)
	}
	if c.Language.MinLength < 0 {
		return fmt.Errorf("invalid language.min_length %d: must not be negative", c.Language.MinLength)
	}
	if c.Language.Confidence < 0 || c.Language.Confidence > 1 {
		return fmt.Errorf("invalid language.confidence %.2f: must be between 0 and 1", c.Language.Confidence)
	}

	if err := c.Dialogue.validate("dialogue"); err != nil {
		return err
	}
	if err := c.Translation.validate("translation"); err != nil {
		return err
	}

	if c.Backend.Timeout < 0 {
		return fmt.Errorf("invalid backend.timeout %s: must not be negative", c.Backend.Timeout)
	}
	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("invalid cache.max_entries %d: must not be negative", c.Cache.MaxEntries)
	}

	if c.Chat.Apology == "" {
		return fmt.Errorf("chat.apology must not be empty")
	}
	if c.Chat.InvalidInput == "" {
		return fmt.Errorf("chat.invalid_input must not be empty")
	}
	if c.Chat.HistoryLimit <= 0 {
		return fmt.Errorf("invalid chat.history_limit %d: must be positive", c.Chat.HistoryLimit)
	}
	if c.Chat.ClearCacheEvery < 0 {
		return fmt.Errorf("invalid chat.clear_cache_every %d: must not be negative", c.Chat.ClearCacheEvery)
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level %q: %w", c.Log.Level, err)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("invalid log.format %q: must be console or json", c.Log.Format)
	}

	return nil
}

func (b *BackendConfig) validate(section string) error {
	if !slices.Contains(factory.Providers, b.Provider) {
		return fmt.Errorf("invalid %s.provider %q: must be one of %v", section, b.Provider, factory.Providers)
	}
	if b.MaxTokens <= 0 {
		return fmt.Errorf("invalid %s.max_tokens %d: must be positive", section, b.MaxTokens)
	}
	if b.Temperature < 0 || b.Temperature > 2 {
		return fmt.Errorf("invalid %s.temperature %.2f: must be between 0 and 2", section, b.Temperature)
	}
	return nil
}

// BackendFor converts a backend section into the settings a backend loads with
func (c *Config) BackendFor(b BackendConfig) *backend.Config {
	return &backend.Config{
		Provider:     b.Provider,
		Model:        b.Model,
		APIKey:       b.APIKey,
		BaseURL:      b.BaseURL,
		MaxTokens:    b.MaxTokens,
		Temperature:  b.Temperature,
		SystemPrompt: b.SystemPrompt,
		VerifyOnLoad: b.VerifyOnLoad,
		Timeout:      c.Backend.Timeout,
	}
}

// BreakerSettings returns the circuit breaker settings
func (c *Config) BreakerSettings() model.BreakerConfig {
	return model.BreakerConfig{
		Enabled:     c.Breaker.Enabled,
		MaxFailures: c.Breaker.MaxFailures,
		OpenTimeout: c.Breaker.OpenTimeout,
	}
}
