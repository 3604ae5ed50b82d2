package testutil

import (
	"context"
	"fmt"
	"sync"

	"codeberg.org/snonux/ai1900/internal/backend"
	"codeberg.org/snonux/ai1900/internal/lang"
)

// MockTranslator mocks the translation model and counts calls
type MockTranslator struct {
	mu sync.Mutex

	// Translations maps "source->target:text" to the translation
	Translations map[string]string
	// PairErrors fails every call for a "source->target" pair
	PairErrors map[string]error
	Calls      []string
}

// Key builds the Translations key for a call
func Key(text string, source, target lang.Tag) string {
	return fmt.Sprintf("%s->%s:%s", source, target, text)
}

// Pair builds the PairErrors key for a language pair
func Pair(source, target lang.Tag) string {
	return fmt.Sprintf("%s->%s", source, target)
}

// Translate mocks translating text
func (m *MockTranslator) Translate(ctx context.Context, text string, source, target lang.Tag) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, Key(text, source, target))

	if err, ok := m.PairErrors[Pair(source, target)]; ok {
		return "", err
	}

	if translation, ok := m.Translations[Key(text, source, target)]; ok {
		return translation, nil
	}

	// Default mock translation
	return fmt.Sprintf("mock %s translation of %s", target, text), nil
}

// CallCount returns the number of Translate calls
func (m *MockTranslator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Loader returns a translation loader that hands out m
func (m *MockTranslator) Loader() backend.TranslationLoader {
	return func(ctx context.Context) (backend.TranslationModel, error) {
		return m, nil
	}
}

// MockDialogue mocks the dialogue model and counts calls
type MockDialogue struct {
	mu sync.Mutex

	Replies map[string]string
	Reply   string // returned when Replies has no entry
	Err     error
	Calls   []string
}

// Generate mocks generating a reply
func (m *MockDialogue) Generate(ctx context.Context, text string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, text)

	if m.Err != nil {
		return "", m.Err
	}
	if reply, ok := m.Replies[text]; ok {
		return reply, nil
	}
	if m.Reply != "" {
		return m.Reply, nil
	}
	return fmt.Sprintf("mock reply to %s", text), nil
}

// CallCount returns the number of Generate calls
func (m *MockDialogue) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Loader returns a dialogue loader that hands out m
func (m *MockDialogue) Loader() backend.DialogueLoader {
	return func(ctx context.Context) (backend.DialogueModel, error) {
		return m, nil
	}
}

// FailingDialogueLoader returns a loader that always fails with err
func FailingDialogueLoader(err error) backend.DialogueLoader {
	return func(ctx context.Context) (backend.DialogueModel, error) {
		return nil, err
	}
}

// FailingTranslationLoader returns a loader that always fails with err
func FailingTranslationLoader(err error) backend.TranslationLoader {
	return func(ctx context.Context) (backend.TranslationModel, error) {
		return nil, err
	}
}
