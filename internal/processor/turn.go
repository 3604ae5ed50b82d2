package processor

import (
	"errors"
	"time"

	"codeberg.org/snonux/ai1900/internal/lang"
)

// State is a step of a turn
type State string

// Turn states in the order a successful turn passes them. Failed is
// terminal and reachable from every step.
const (
	Received      State = "RECEIVED"
	Detected      State = "DETECTED"
	TranslatedIn  State = "TRANSLATED_IN"
	Generated     State = "GENERATED"
	TranslatedOut State = "TRANSLATED_OUT"
	Delivered     State = "DELIVERED"
	Failed        State = "FAILED"
)

// ErrEmptyInput is recorded on turns whose input has no text
var ErrEmptyInput = errors.New("empty input")

// Utterance is a text with its language
type Utterance struct {
	Text string
	Lang lang.Tag
}

// Turn records one pass through the processor
type Turn struct {
	ID       string
	Input    Utterance
	English  string // input in English, sent to the dialogue model
	Reply    string // English reply of the dialogue model
	Final    string // text returned to the user
	State    State
	Degraded bool // delivered in English because the back translation failed
	Err      error

	Translations int // translation requests issued, cached or not
	Duration     time.Duration
}
