package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"codeberg.org/snonux/ai1900/internal/lang"
	"codeberg.org/snonux/ai1900/internal/processor"
)

const helpText = `Type a message in English or Persian and press enter.
Commands:
  /help     show this help
  /history  show the conversation so far
  /stats    show turn and translation cache statistics
  /clear    clear the conversation and the translation cache
  /quit     leave the chat`

// Processor is the part of the processor the session uses
type Processor interface {
	Process(ctx context.Context, input string) *processor.Turn
	ClearCache()
	Stats() processor.Stats
}

// Options configures a Session
type Options struct {
	HistoryLimit    int  // messages kept in the history
	ClearCacheEvery int  // clear the translation cache every N turns, 0 means never
	Prompt          bool // print a prompt before reading a line
	Log             *zap.SugaredLogger
}

// Session is an interactive chat over a reader and a writer
type Session struct {
	proc       Processor
	in         io.Reader
	out        io.Writer
	history    *History
	clearEvery int
	prompt     bool
	turns      int
	log        *zap.SugaredLogger
}

// New creates a session reading messages from in and writing replies to out
func New(proc Processor, in io.Reader, out io.Writer, opts Options) *Session {
	if opts.Log == nil {
		opts.Log = zap.NewNop().Sugar()
	}
	return &Session{
		proc:       proc,
		in:         in,
		out:        out,
		history:    NewHistory(opts.HistoryLimit),
		clearEvery: opts.ClearCacheEvery,
		prompt:     opts.Prompt,
		log:        opts.Log,
	}
}

// History returns the session history
func (s *Session) History() *History {
	return s.history
}

// Run reads lines until EOF, /quit or ctx is done. Cancelling ctx also ends a
// session that is waiting for input.
func (s *Session) Run(ctx context.Context) error {
	if s.prompt {
		fmt.Fprintln(s.out, "ai1900 chat. Type /help for commands.")
	}

	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		if s.prompt {
			fmt.Fprint(s.out, "> ")
		}

		var line string
		select {
		case <-ctx.Done():
			return nil
		case l, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
				return nil
			}
			line = strings.TrimSpace(l)
		}

		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := s.command(line); quit {
				return nil
			}
			continue
		}

		fmt.Fprintln(s.out, s.Turn(ctx, line))
	}
}

// Turn answers one message and records it in the history
func (s *Session) Turn(ctx context.Context, line string) string {
	turn := s.proc.Process(ctx, line)

	s.history.Add(Message{Role: RoleUser, Text: line, Lang: turn.Input.Lang, TurnID: turn.ID})
	s.history.Add(Message{Role: RoleBot, Text: turn.Final, Lang: replyLang(turn), TurnID: turn.ID})

	s.turns++
	if s.clearEvery > 0 && s.turns%s.clearEvery == 0 {
		s.log.Infow("clearing translation cache", "turns", s.turns)
		s.proc.ClearCache()
	}

	return turn.Final
}

func replyLang(turn *processor.Turn) lang.Tag {
	if turn.Degraded {
		return lang.EN
	}
	return turn.Input.Lang
}

func (s *Session) command(line string) bool {
	switch strings.ToLower(strings.Fields(line)[0]) {
	case "/help":
		fmt.Fprintln(s.out, helpText)
	case "/history":
		s.printHistory()
	case "/stats":
		s.printStats()
	case "/clear":
		s.history.Clear()
		s.proc.ClearCache()
		fmt.Fprintln(s.out, "Conversation and translation cache cleared.")
	case "/quit", "/exit":
		return true
	default:
		fmt.Fprintf(s.out, "Unknown command %s. Type /help for commands.\n", line)
	}
	return false
}

func (s *Session) printHistory() {
	messages := s.history.Messages()
	if len(messages) == 0 {
		fmt.Fprintln(s.out, "No messages yet.")
		return
	}
	for _, m := range messages {
		who := "You"
		if m.Role == RoleBot {
			who = "Bot"
		}
		fmt.Fprintf(s.out, "%s [%s]: %s\n", who, m.Lang, m.Text)
	}
}

func (s *Session) printStats() {
	st := s.proc.Stats()
	fmt.Fprintf(s.out, "Turns: %d (failed %d, delivered in English %d)\n", st.Turns, st.Failed, st.Degraded)

	limit := "unbounded"
	if st.Cache.MaxEntries > 0 {
		limit = fmt.Sprintf("max %d", st.Cache.MaxEntries)
	}
	fmt.Fprintf(s.out, "Translation cache: %d entries (%s), %d hits, %d misses\n",
		st.Cache.Entries, limit, st.Cache.Hits, st.Cache.Misses)
}
