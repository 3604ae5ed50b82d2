package repl

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"codeberg.org/snonux/ai1900/internal/dialogue"
	"codeberg.org/snonux/ai1900/internal/lang"
	"codeberg.org/snonux/ai1900/internal/processor"
	"codeberg.org/snonux/ai1900/internal/testutil"
	"codeberg.org/snonux/ai1900/internal/translation"
)

func newProcessor(translator *testutil.MockTranslator) *processor.Processor {
	log := testutil.NopLogger()
	dlg := &testutil.MockDialogue{Replies: map[string]string{"Hello": "Hi there!"}}
	return processor.New(processor.Options{
		Detector:  lang.NewDetector(nil, 0, log),
		Cache:     translation.NewCache(translation.NewAdapter(translator.Loader(), nil, log), 0, log),
		Generator: dialogue.NewAdapter(dlg.Loader(), nil, log),
		Log:       log,
	})
}

func persianTranslator() *testutil.MockTranslator {
	return &testutil.MockTranslator{
		Translations: map[string]string{
			testutil.Key("سلام", lang.FA, lang.EN):      "Hello",
			testutil.Key("Hi there!", lang.EN, lang.FA): "سلام به شما!",
		},
	}
}

func runSession(t *testing.T, proc Processor, input string, opts Options) (*Session, string) {
	t.Helper()
	var out bytes.Buffer
	s := New(proc, strings.NewReader(input), &out, opts)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	return s, out.String()
}

func TestSessionChat(t *testing.T) {
	s, out := runSession(t, newProcessor(persianTranslator()), "Hello\n\nسلام\n", Options{HistoryLimit: 50})

	want := "Hi there!\nسلام به شما!\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}

	messages := s.History().Messages()
	if len(messages) != 4 {
		t.Fatalf("history has %d messages, want 4", len(messages))
	}
	if messages[2].Role != RoleUser || messages[2].Lang != lang.FA {
		t.Errorf("third message = %+v, want Persian user message", messages[2])
	}
	if messages[3].Role != RoleBot || messages[3].Text != "سلام به شما!" {
		t.Errorf("fourth message = %+v, want Persian bot reply", messages[3])
	}
}

func TestSessionCommands(t *testing.T) {
	input := strings.Join([]string{"/help", "Hello", "/history", "/stats", "/clear", "/history", "/bogus", "/quit", "Hello"}, "\n")
	s, out := runSession(t, newProcessor(persianTranslator()), input, Options{HistoryLimit: 50})

	for _, want := range []string{
		"/history  show the conversation so far",
		"You [en]: Hello",
		"Bot [en]: Hi there!",
		"Turns: 1 (failed 0, delivered in English 0)",
		"Translation cache: 0 entries (unbounded)",
		"Conversation and translation cache cleared.",
		"No messages yet.",
		"Unknown command /bogus",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// Nothing after /quit is answered
	if strings.Count(out, "Hi there!") != 2 {
		t.Errorf("expected one reply plus its history line, got:\n%s", out)
	}
	if s.History().Len() != 0 {
		t.Errorf("history has %d messages after /clear, want 0", s.History().Len())
	}
}

func TestSessionClearsCachePeriodically(t *testing.T) {
	translator := persianTranslator()
	proc := newProcessor(translator)

	runSession(t, proc, "سلام\nسلام\nسلام\n", Options{HistoryLimit: 50, ClearCacheEvery: 2})

	// Turn 1 fills the cache, turn 2 hits it and clears it, turn 3 misses again
	if got := translator.CallCount(); got != 4 {
		t.Errorf("translation model called %d times, want 4", got)
	}
}

func TestSessionHistoryLimit(t *testing.T) {
	s, _ := runSession(t, newProcessor(persianTranslator()), "Hello\nHello\nHello\n", Options{HistoryLimit: 3})

	if s.History().Len() != 3 {
		t.Errorf("history has %d messages, want 3", s.History().Len())
	}
}

func TestSessionPrompt(t *testing.T) {
	_, out := runSession(t, newProcessor(persianTranslator()), "Hello\n", Options{HistoryLimit: 5, Prompt: true})

	if !strings.HasPrefix(out, "ai1900 chat.") {
		t.Errorf("output does not start with the banner: %q", out)
	}
	if !strings.Contains(out, "> Hi there!") {
		t.Errorf("output missing prompt before reply: %q", out)
	}
}

func TestSessionStopsOnCancelWhileWaitingForInput(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	s := New(newProcessor(persianTranslator()), pr, &out, Options{HistoryLimit: 50})

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx) }()

	// The write returns once the session has read the line
	if _, err := pw.Write([]byte("Hello\n")); err != nil {
		t.Fatalf("write error: %v", err)
	}
	cancel()

	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("Run() error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() still waiting for input after cancel")
	}

	if got := len(s.History().Messages()); got > 2 {
		t.Errorf("history has %d messages, want at most 2", got)
	}
}
