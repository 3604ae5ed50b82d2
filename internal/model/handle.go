package model

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// LoadError reports that a model could not be loaded. It is returned by
// every call on the handle after the failed load.
type LoadError struct {
	Model string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s model: %v", e.Model, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Loader loads a model and returns its handle
type Loader[H any] func(ctx context.Context) (H, error)

// Handle lazily loads a model exactly once
type Handle[H any] struct {
	name string
	load Loader[H]
	log  *zap.SugaredLogger

	once   sync.Once
	mu     sync.RWMutex
	model  H
	err    error
	loaded bool
}

// NewHandle creates a handle that loads the model with load on first use
func NewHandle[H any](name string, load Loader[H], log *zap.SugaredLogger) *Handle[H] {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Handle[H]{name: name, load: load, log: log}
}

// Get returns the loaded model, loading it on the first call. Concurrent
// first callers block until the single load finishes. If the load failed,
// every call returns the same *LoadError without trying again.
func (h *Handle[H]) Get(ctx context.Context) (H, error) {
	h.once.Do(func() {
		start := time.Now()
		h.log.Infow("loading model", "model", h.name)

		// Cancelling the first caller does not cancel the load
		m, err := h.load(context.WithoutCancel(ctx))

		h.mu.Lock()
		defer h.mu.Unlock()
		h.loaded = true
		if err != nil {
			h.err = &LoadError{Model: h.name, Err: err}
			h.log.Errorw("model load failed", "model", h.name, "error", err)
			return
		}
		h.model = m
		h.log.Infow("model loaded", "model", h.name, "duration", time.Since(start))
	})

	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.model, h.err
}

// Loaded reports whether a load has been attempted, and its error if it failed
func (h *Handle[H]) Loaded() (bool, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.loaded, h.err
}

// Name returns the model name used in logs and errors
func (h *Handle[H]) Name() string {
	return h.name
}
