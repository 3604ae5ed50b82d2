package model

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeModel struct {
	name string
}

func TestHandle_LoadsOnce(t *testing.T) {
	var loads int32
	h := NewHandle("dialogue", func(ctx context.Context) (*fakeModel, error) {
		atomic.AddInt32(&loads, 1)
		return &fakeModel{name: "blender"}, nil
	}, nil)

	if loaded, _ := h.Loaded(); loaded {
		t.Fatal("Expected handle not to be loaded before first use")
	}

	for i := 0; i < 3; i++ {
		m, err := h.Get(context.Background())
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if m.name != "blender" {
			t.Errorf("Expected model 'blender', got '%s'", m.name)
		}
	}

	if loads != 1 {
		t.Errorf("Expected 1 load, got %d", loads)
	}
	if loaded, err := h.Loaded(); !loaded || err != nil {
		t.Errorf("Expected loaded handle without error, got loaded=%v err=%v", loaded, err)
	}
}

func TestHandle_ConcurrentFirstUse(t *testing.T) {
	var loads int32
	h := NewHandle("translation", func(ctx context.Context) (*fakeModel, error) {
		atomic.AddInt32(&loads, 1)
		time.Sleep(20 * time.Millisecond)
		return &fakeModel{name: "mt5"}, nil
	}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, err := h.Get(context.Background())
			if err != nil || m == nil {
				t.Errorf("Get failed: model=%v err=%v", m, err)
			}
		}()
	}
	wg.Wait()

	if loads != 1 {
		t.Errorf("Expected exactly 1 load under concurrent first use, got %d", loads)
	}
}

func TestHandle_LoadFailureIsSticky(t *testing.T) {
	var loads int32
	cause := errors.New("weights not found")
	h := NewHandle("dialogue", func(ctx context.Context) (*fakeModel, error) {
		atomic.AddInt32(&loads, 1)
		return nil, cause
	}, nil)

	for i := 0; i < 3; i++ {
		_, err := h.Get(context.Background())
		if err == nil {
			t.Fatal("Expected load error")
		}

		var loadErr *LoadError
		if !errors.As(err, &loadErr) {
			t.Fatalf("Expected *LoadError, got %T", err)
		}
		if loadErr.Model != "dialogue" {
			t.Errorf("Expected model 'dialogue', got '%s'", loadErr.Model)
		}
		if !errors.Is(err, cause) {
			t.Errorf("Expected error to wrap cause, got %v", err)
		}
	}

	if loads != 1 {
		t.Errorf("Expected load to be attempted once, got %d", loads)
	}
	if loaded, err := h.Loaded(); !loaded || err == nil {
		t.Errorf("Expected loaded=true with error, got loaded=%v err=%v", loaded, err)
	}
}

func TestLoadError_Message(t *testing.T) {
	err := &LoadError{Model: "translation", Err: errors.New("out of memory")}

	expected := "failed to load translation model: out of memory"
	if err.Error() != expected {
		t.Errorf("Expected '%s', got '%s'", expected, err.Error())
	}
}

func TestHandle_CancelledFirstCallerDoesNotFailLoad(t *testing.T) {
	var loads int32
	h := NewHandle("translation", func(ctx context.Context) (*fakeModel, error) {
		atomic.AddInt32(&loads, 1)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return &fakeModel{name: "mt5"}, nil
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := h.Get(ctx); err != nil {
		t.Fatalf("Expected load to ignore the cancelled caller, got %v", err)
	}
	m, err := h.Get(context.Background())
	if err != nil || m.name != "mt5" {
		t.Fatalf("Expected loaded model, got model=%v err=%v", m, err)
	}
	if loads != 1 {
		t.Errorf("Expected 1 load, got %d", loads)
	}
}
