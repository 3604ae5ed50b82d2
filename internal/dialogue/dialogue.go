package dialogue

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"codeberg.org/snonux/ai1900/internal/backend"
	"codeberg.org/snonux/ai1900/internal/model"
)

// Generator produces a reply to an English utterance
type Generator interface {
	Generate(ctx context.Context, text string) (string, error)
}

// Failure reports that no reply could be generated
type Failure struct {
	Text string
	Err  error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("generation failed: %v", f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Adapter generates replies with a lazily loaded dialogue model
type Adapter struct {
	handle  *model.Handle[backend.DialogueModel]
	breaker *model.Breaker
	log     *zap.SugaredLogger
	calls   atomic.Int64
}

// NewAdapter creates an adapter around the model returned by load.
// breaker may be nil.
func NewAdapter(load backend.DialogueLoader, breaker *model.Breaker, log *zap.SugaredLogger) *Adapter {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Adapter{
		handle:  model.NewHandle[backend.DialogueModel]("dialogue", model.Loader[backend.DialogueModel](load), log),
		breaker: breaker,
		log:     log,
	}
}

// Generate returns a reply to text. Errors are returned as *Failure.
func (a *Adapter) Generate(ctx context.Context, text string) (string, error) {
	m, err := a.handle.Get(ctx)
	if err != nil {
		return "", &Failure{Text: text, Err: err}
	}

	reply, err := a.breaker.Do(func() (string, error) {
		a.calls.Add(1)
		res, err := m.Generate(ctx, text)
		if err != nil {
			return "", err
		}
		res = strings.TrimSpace(res)
		if res == "" {
			return "", fmt.Errorf("empty reply")
		}
		return res, nil
	})
	if err != nil {
		a.log.Warnw("generation failed", "error", err)
		return "", &Failure{Text: text, Err: err}
	}

	return reply, nil
}

// Calls returns the number of inference calls issued to the model
func (a *Adapter) Calls() int64 {
	return a.calls.Load()
}

// Preload loads the model ahead of the first turn
func (a *Adapter) Preload(ctx context.Context) error {
	_, err := a.handle.Get(ctx)
	return err
}
