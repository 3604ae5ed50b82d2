package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Handler answers a single message
type Handler interface {
	HandleTurn(ctx context.Context, input string) string
}

// ReadBatchFile reads messages from a file, one per line. Blank lines and
// lines starting with '#' are skipped.
func ReadBatchFile(filename string) ([]string, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var messages []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		messages = append(messages, line)
	}

	return messages, nil
}

// Run answers every message in order and writes "> message" and "< reply"
// lines to out. It stops early when ctx is done.
func Run(ctx context.Context, messages []string, h Handler, out io.Writer) error {
	for i, msg := range messages {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("batch interrupted after %d of %d messages: %w", i, len(messages), err)
		}

		reply := h.HandleTurn(ctx, msg)
		if _, err := fmt.Fprintf(out, "> %s\n< %s\n", msg, reply); err != nil {
			return fmt.Errorf("failed to write reply: %w", err)
		}
	}
	return nil
}

// ProcessFile reads filename and answers its messages
func ProcessFile(ctx context.Context, filename string, h Handler, out io.Writer) error {
	messages, err := ReadBatchFile(filename)
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		return fmt.Errorf("no messages found in %s", filename)
	}
	return Run(ctx, messages, h, out)
}
