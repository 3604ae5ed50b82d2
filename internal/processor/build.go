package processor

import (
	"fmt"

	"go.uber.org/zap"

	"codeberg.org/snonux/ai1900/internal/backend/factory"
	"codeberg.org/snonux/ai1900/internal/config"
	"codeberg.org/snonux/ai1900/internal/dialogue"
	"codeberg.org/snonux/ai1900/internal/lang"
	"codeberg.org/snonux/ai1900/internal/model"
	"codeberg.org/snonux/ai1900/internal/translation"
)

// NewFromConfig wires a processor with the detector, models and cache
// described by cfg. Models are not loaded until the first turn needs them.
func NewFromConfig(cfg *config.Config, log *zap.SugaredLogger) (*Processor, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	refiner, err := lang.NewRefiner(cfg.Language.Refiner, cfg.Language.Confidence)
	if err != nil {
		return nil, err
	}
	detector := lang.NewDetector(refiner, cfg.Language.MinLength, log)

	translationLoader, err := factory.TranslationLoader(cfg.BackendFor(cfg.Translation))
	if err != nil {
		return nil, fmt.Errorf("failed to set up translation model: %w", err)
	}
	dialogueLoader, err := factory.DialogueLoader(cfg.BackendFor(cfg.Dialogue))
	if err != nil {
		return nil, fmt.Errorf("failed to set up dialogue model: %w", err)
	}

	breakers := cfg.BreakerSettings()
	translator := translation.NewAdapter(translationLoader, model.NewBreaker("translation", breakers, log), log)
	generator := dialogue.NewAdapter(dialogueLoader, model.NewBreaker("dialogue", breakers, log), log)

	log.Debugw("processor configured",
		"dialogue_provider", cfg.Dialogue.Provider,
		"translation_provider", cfg.Translation.Provider,
		"refiner", cfg.Language.Refiner,
		"cache_max_entries", cfg.Cache.MaxEntries)

	return New(Options{
		Detector:     detector,
		Cache:        translation.NewCache(translator, cfg.Cache.MaxEntries, log),
		Generator:    generator,
		Apology:      cfg.Chat.Apology,
		InvalidInput: cfg.Chat.InvalidInput,
		Log:          log,
	}), nil
}
