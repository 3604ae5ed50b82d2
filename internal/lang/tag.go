package lang

import (
	"fmt"
	"strings"
)

// Tag identifies the language of an utterance
type Tag string

const (
	// EN is English, the native language of the dialogue model
	EN Tag = "en"
	// FA is Persian (Farsi)
	FA Tag = "fa"
)

// Default is returned for empty input
const Default = EN

// Parse converts a user supplied language name or code to a Tag
func Parse(s string) (Tag, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "en", "eng", "english":
		return EN, nil
	case "fa", "fas", "per", "persian", "farsi":
		return FA, nil
	default:
		return "", fmt.Errorf("unsupported language: %q", s)
	}
}

// Name returns the English name of the language, as used in model prompts
func (t Tag) Name() string {
	switch t {
	case EN:
		return "English"
	case FA:
		return "Persian"
	default:
		return string(t)
	}
}

func (t Tag) String() string {
	return string(t)
}
