package cli

import (
	"time"

	"codeberg.org/snonux/ai1900/internal/config"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	BatchFile  string
	ListModels bool

	// Model flags
	DialogueProvider    string
	DialogueModel       string
	TranslationProvider string
	TranslationModel    string
	Timeout             time.Duration

	// Language and cache flags
	Refiner         string
	CacheSize       int
	ClearCacheEvery int

	// Logging flags
	LogLevel  string
	LogFormat string

	// Server flags
	Addr string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	d := config.Default()
	return &Flags{
		DialogueProvider:    d.Dialogue.Provider,
		TranslationProvider: d.Translation.Provider,
		Refiner:             d.Language.Refiner,
		CacheSize:           d.Cache.MaxEntries,
		ClearCacheEvery:     d.Chat.ClearCacheEvery,
		LogLevel:            d.Log.Level,
		LogFormat:           d.Log.Format,
		Addr:                d.Server.Addr,
	}
}
