package gemini

import (
	"context"
	"os"
	"testing"

	"codeberg.org/snonux/ai1900/internal/backend"
	"codeberg.org/snonux/ai1900/internal/lang"
)

func TestLoad_NoAPIKey(t *testing.T) {
	_, err := LoadDialogue(&backend.Config{})(context.Background())
	if err == nil {
		t.Fatal("Expected error for missing API key")
	}
	if err.Error() != "Gemini API key not found" {
		t.Errorf("Expected 'Gemini API key not found', got: %v", err)
	}

	if _, err := LoadTranslation(&backend.Config{})(context.Background()); err == nil {
		t.Error("Expected error for missing API key")
	}
}

func TestLoad_DefaultModel(t *testing.T) {
	m, err := load(context.Background(), &backend.Config{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if m.name != DefaultModel {
		t.Errorf("Expected model %s, got %s", DefaultModel, m.name)
	}
}

func TestTranslator_Integration(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: GEMINI_API_KEY not set")
	}

	tr, err := LoadTranslation(&backend.Config{APIKey: apiKey})(context.Background())
	if err != nil {
		t.Fatalf("LoadTranslation failed: %v", err)
	}

	out, err := tr.Translate(context.Background(), "سلام", lang.FA, lang.EN)
	if err != nil {
		t.Errorf("Translate failed: %v", err)
	}
	if out == "" {
		t.Error("Got empty translation")
	}

	t.Logf("Translation of 'سلام': %s", out)
}
