package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"codeberg.org/snonux/ai1900/internal/backend"
	"codeberg.org/snonux/ai1900/internal/lang"
)

func newOllamaServer(t *testing.T, reply string, got *chatRequest) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"models":[{"name":"llama3.2:latest"},{"name":"aya:8b"}]}`))
	})
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		if got != nil {
			if err := json.NewDecoder(r.Body).Decode(got); err != nil {
				t.Errorf("Failed to decode chat request: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatResponse{Message: chatMessage{Role: "assistant", Content: reply}})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestLoad_ModelPulled(t *testing.T) {
	server := newOllamaServer(t, "", nil)

	tests := []struct {
		model   string
		wantErr bool
	}{
		{"", false},
		{"llama3.2", false},
		{"aya:8b", false},
		{"mistral", true},
	}

	for _, tt := range tests {
		t.Run("model_"+tt.model, func(t *testing.T) {
			_, err := LoadDialogue(&backend.Config{BaseURL: server.URL, Model: tt.model})(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadDialogue() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_ServerDown(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	if _, err := LoadTranslation(&backend.Config{BaseURL: server.URL})(context.Background()); err == nil {
		t.Error("Expected error when the server is not reachable")
	}
}

func TestDialogueModel_Generate(t *testing.T) {
	var got chatRequest
	server := newOllamaServer(t, " Hi there! ", &got)

	m, err := LoadDialogue(&backend.Config{BaseURL: server.URL, MaxTokens: 128})(context.Background())
	if err != nil {
		t.Fatalf("LoadDialogue failed: %v", err)
	}

	reply, err := m.Generate(context.Background(), "Hello")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if reply != "Hi there!" {
		t.Errorf("Expected 'Hi there!', got '%s'", reply)
	}

	if got.Stream {
		t.Error("Expected non-streaming request")
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "Hello" {
		t.Errorf("Unexpected messages: %+v", got.Messages)
	}
	if got.Options["num_predict"] != float64(128) {
		t.Errorf("Expected num_predict 128, got %v", got.Options["num_predict"])
	}
}

func TestTranslator_Translate(t *testing.T) {
	var got chatRequest
	server := newOllamaServer(t, "سلام", &got)

	m, err := LoadTranslation(&backend.Config{BaseURL: server.URL})(context.Background())
	if err != nil {
		t.Fatalf("LoadTranslation failed: %v", err)
	}

	out, err := m.Translate(context.Background(), "Hello", lang.EN, lang.FA)
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if out != "سلام" {
		t.Errorf("Expected 'سلام', got '%s'", out)
	}
	if !strings.Contains(got.Messages[0].Content, "English text to Persian") {
		t.Errorf("Unexpected instruction: %s", got.Messages[0].Content)
	}
}

func TestChat_EmptyResponse(t *testing.T) {
	server := newOllamaServer(t, "   ", nil)

	m, err := LoadDialogue(&backend.Config{BaseURL: server.URL})(context.Background())
	if err != nil {
		t.Fatalf("LoadDialogue failed: %v", err)
	}
	if _, err := m.Generate(context.Background(), "Hello"); err == nil {
		t.Error("Expected error for empty response")
	}
}
