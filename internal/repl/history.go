package repl

import (
	"sync"

	"codeberg.org/snonux/ai1900/internal/lang"
)

// Roles of history messages
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// Message is one entry of the chat history
type Message struct {
	Role   string
	Text   string
	Lang   lang.Tag
	TurnID string
}

// History keeps the most recent messages up to a limit
type History struct {
	mu       sync.Mutex
	limit    int
	messages []Message
}

// NewHistory creates a history holding at most limit messages
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = 1
	}
	return &History{limit: limit}
}

// Add appends a message, dropping the oldest ones beyond the limit
func (h *History) Add(m Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.messages = append(h.messages, m)
	if over := len(h.messages) - h.limit; over > 0 {
		h.messages = append([]Message(nil), h.messages[over:]...)
	}
}

// Messages returns a copy of the history, oldest first
func (h *History) Messages() []Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Message(nil), h.messages...)
}

// Len returns the number of stored messages
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.messages)
}

// Clear drops all messages
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = nil
}
