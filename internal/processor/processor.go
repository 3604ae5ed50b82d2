package processor

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"codeberg.org/snonux/ai1900/internal"
	"codeberg.org/snonux/ai1900/internal/dialogue"
	"codeberg.org/snonux/ai1900/internal/lang"
	"codeberg.org/snonux/ai1900/internal/translation"
)

// Detector classifies the language of an utterance
type Detector interface {
	Detect(text string) lang.Tag
}

// Options configures a Processor. Detector, Cache and Generator are required.
type Options struct {
	Detector     Detector
	Cache        *translation.Cache
	Generator    dialogue.Generator
	Apology      string // returned when no reply could be generated
	InvalidInput string // returned for empty input
	Log          *zap.SugaredLogger
}

// Stats counts processed turns
type Stats struct {
	Turns    int64
	Failed   int64
	Degraded int64
	Cache    translation.CacheStats
}

// Processor handles conversation turns. It is safe for concurrent use; turns
// share nothing but the translation cache.
type Processor struct {
	detector     Detector
	cache        *translation.Cache
	generator    dialogue.Generator
	apology      string
	invalidInput string
	log          *zap.SugaredLogger

	turns    atomic.Int64
	failed   atomic.Int64
	degraded atomic.Int64
}

// New creates a processor
func New(opts Options) *Processor {
	p := &Processor{
		detector:     opts.Detector,
		cache:        opts.Cache,
		generator:    opts.Generator,
		apology:      opts.Apology,
		invalidInput: opts.InvalidInput,
		log:          opts.Log,
	}
	if p.apology == "" {
		p.apology = "Sorry, I couldn't process that."
	}
	if p.invalidInput == "" {
		p.invalidInput = "Please type a message."
	}
	if p.log == nil {
		p.log = zap.NewNop().Sugar()
	}
	return p
}

// HandleTurn returns the reply to input in the language of input. It never
// fails: errors are turned into a degraded reply.
func (p *Processor) HandleTurn(ctx context.Context, input string) string {
	return p.Process(ctx, input).Final
}

// Process runs a turn and returns its record
func (p *Processor) Process(ctx context.Context, input string) *Turn {
	turn := &Turn{
		ID:    internal.GenerateTurnID(input),
		Input: Utterance{Text: input},
		State: Received,
	}
	start := time.Now()
	defer func() {
		turn.Duration = time.Since(start)
		p.record(turn)
	}()

	text := strings.TrimSpace(input)
	if text == "" {
		turn.Input.Lang = lang.Default
		return p.fail(turn, ErrEmptyInput, p.invalidInput)
	}

	turn.Input.Lang = p.detector.Detect(text)
	turn.State = Detected

	turn.English = text
	if turn.Input.Lang != lang.EN {
		turn.Translations++
		english, err := p.cache.Translate(ctx, text, turn.Input.Lang, lang.EN)
		if err != nil {
			// The user gets their own words back
			return p.fail(turn, err, input)
		}
		turn.English = english
	}
	turn.State = TranslatedIn

	reply, err := p.generator.Generate(ctx, turn.English)
	if err != nil {
		return p.fail(turn, err, p.apology)
	}
	turn.Reply = reply
	turn.State = Generated

	turn.Final = reply
	if turn.Input.Lang != lang.EN {
		turn.Translations++
		final, err := p.cache.Translate(ctx, reply, lang.EN, turn.Input.Lang)
		if err != nil {
			turn.Err = err
			turn.Degraded = true
		} else {
			turn.Final = final
		}
	}
	turn.State = TranslatedOut

	turn.State = Delivered
	return turn
}

func (p *Processor) fail(turn *Turn, err error, final string) *Turn {
	turn.State = Failed
	turn.Err = err
	turn.Final = final
	return turn
}

func (p *Processor) record(turn *Turn) {
	p.turns.Add(1)

	switch {
	case turn.State == Failed:
		p.failed.Add(1)
		p.log.Warnw("turn failed",
			"id", turn.ID,
			"language", turn.Input.Lang,
			"state", turn.State,
			"error", turn.Err,
			"duration", turn.Duration)
	case turn.Degraded:
		p.degraded.Add(1)
		p.log.Warnw("turn delivered in English",
			"id", turn.ID,
			"language", turn.Input.Lang,
			"state", turn.State,
			"error", turn.Err,
			"duration", turn.Duration)
	default:
		p.log.Infow("turn delivered",
			"id", turn.ID,
			"language", turn.Input.Lang,
			"state", turn.State,
			"translations", turn.Translations,
			"duration", turn.Duration)
	}
}

// ClearCache drops all cached translations
func (p *Processor) ClearCache() {
	p.cache.Clear()
}

// CacheStats returns the translation cache statistics
func (p *Processor) CacheStats() translation.CacheStats {
	return p.cache.Stats()
}

// Stats returns the turn counters and the cache statistics
func (p *Processor) Stats() Stats {
	return Stats{
		Turns:    p.turns.Load(),
		Failed:   p.failed.Load(),
		Degraded: p.degraded.Load(),
		Cache:    p.cache.Stats(),
	}
}
