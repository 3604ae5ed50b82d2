package translation

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"codeberg.org/snonux/ai1900/internal/backend"
	"codeberg.org/snonux/ai1900/internal/lang"
	"codeberg.org/snonux/ai1900/internal/model"
)

// Translator translates text from source to target language
type Translator interface {
	Translate(ctx context.Context, text string, source, target lang.Tag) (string, error)
}

// Failure reports a failed translation. It carries the original text so the
// caller can fall back to it.
type Failure struct {
	Text   string
	Source lang.Tag
	Target lang.Tag
	Err    error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("translation %s->%s failed: %v", f.Source, f.Target, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Adapter translates with a lazily loaded translation model
type Adapter struct {
	handle  *model.Handle[backend.TranslationModel]
	breaker *model.Breaker
	log     *zap.SugaredLogger
	calls   atomic.Int64
}

// NewAdapter creates an adapter around the model returned by load.
// breaker may be nil.
func NewAdapter(load backend.TranslationLoader, breaker *model.Breaker, log *zap.SugaredLogger) *Adapter {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Adapter{
		handle:  model.NewHandle[backend.TranslationModel]("translation", model.Loader[backend.TranslationModel](load), log),
		breaker: breaker,
		log:     log,
	}
}

// Translate returns text unchanged when source equals target, without
// touching the model. Otherwise it runs the model and wraps any error in a
// *Failure.
func (a *Adapter) Translate(ctx context.Context, text string, source, target lang.Tag) (string, error) {
	if source == target {
		return text, nil
	}

	m, err := a.handle.Get(ctx)
	if err != nil {
		return "", &Failure{Text: text, Source: source, Target: target, Err: err}
	}

	out, err := a.breaker.Do(func() (string, error) {
		a.calls.Add(1)
		res, err := m.Translate(ctx, text, source, target)
		if err != nil {
			return "", err
		}
		res = strings.TrimSpace(res)
		if res == "" {
			return "", fmt.Errorf("no translation returned")
		}
		return res, nil
	})
	if err != nil {
		a.log.Warnw("translation failed", "source", source, "target", target, "error", err)
		return "", &Failure{Text: text, Source: source, Target: target, Err: err}
	}

	a.log.Debugw("translated", "source", source, "target", target, "input_len", len(text), "output_len", len(out))
	return out, nil
}

// Calls returns the number of inference calls issued to the model
func (a *Adapter) Calls() int64 {
	return a.calls.Load()
}
