// Package stub provides offline, deterministic dialogue and translation
// models. They let the chat run without any model server and keep tests
// hermetic.
package stub

import (
	"context"
	"strings"

	"codeberg.org/snonux/ai1900/internal/backend"
	"codeberg.org/snonux/ai1900/internal/lang"
)

// FallbackReply is returned for messages without a canned reply
const FallbackReply = "That is interesting. Tell me more."

// Replies maps normalized English input to canned replies
var Replies = map[string]string{
	"hello":              "Hi there!",
	"hi":                 "Hello! How are you?",
	"how are you":        "I am fine, thank you.",
	"what is your name":  "My name is AI-1900.",
	"thank you":          "You are welcome.",
	"goodbye":            "Goodbye! Have a nice day.",
	"good morning":       "Good morning to you too.",
	"where are you from": "I live on a server.",
}

// Dictionary maps English text to Persian and back
var Dictionary = map[string]string{
	"hello":                     "سلام",
	"hi there!":                 "سلام به شما!",
	"how are you":               "حال شما چطور است",
	"i am fine, thank you.":     "من خوبم، ممنون.",
	"what is your name":         "اسم شما چیست",
	"my name is ai-1900.":       "اسم من AI-1900 است.",
	"thank you":                 "ممنون",
	"you are welcome.":          "خواهش می کنم.",
	"goodbye":                   "خداحافظ",
	"goodbye! have a nice day.": "خداحافظ! روز خوبی داشته باشید.",
	"good morning":              "صبح بخیر",
	"good morning to you too.":  "صبح شما هم بخیر.",
}

// DialogueModel answers from the Replies table
type DialogueModel struct {
	replies map[string]string
}

// LoadDialogue returns a loader for the stub dialogue model
func LoadDialogue(cfg *backend.Config) backend.DialogueLoader {
	return func(ctx context.Context) (backend.DialogueModel, error) {
		return &DialogueModel{replies: Replies}, nil
	}
}

// Generate implements backend.DialogueModel
func (m *DialogueModel) Generate(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if reply, ok := m.replies[normalize(text)]; ok {
		return reply, nil
	}
	return FallbackReply, nil
}

// Translator looks phrases up in the Dictionary. Unknown text is returned
// with a "[target] " prefix.
type Translator struct {
	enToFa map[string]string
	faToEn map[string]string
}

// LoadTranslation returns a loader for the stub translation model
func LoadTranslation(cfg *backend.Config) backend.TranslationLoader {
	return func(ctx context.Context) (backend.TranslationModel, error) {
		t := &Translator{
			enToFa: make(map[string]string, len(Dictionary)),
			faToEn: make(map[string]string, len(Dictionary)),
		}
		for en, fa := range Dictionary {
			t.enToFa[en] = fa
			t.faToEn[normalize(fa)] = en
		}
		return t, nil
	}
}

// Translate implements backend.TranslationModel
func (t *Translator) Translate(ctx context.Context, text string, source, target lang.Tag) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch {
	case source == lang.EN && target == lang.FA:
		if fa, ok := t.enToFa[strings.ToLower(strings.TrimSpace(text))]; ok {
			return fa, nil
		}
	case source == lang.FA && target == lang.EN:
		if en, ok := t.faToEn[normalize(text)]; ok {
			return en, nil
		}
	}
	return "[" + target.String() + "] " + text, nil
}

// normalize lowercases text and strips surrounding punctuation
func normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	return strings.Trim(text, " .!?،؟")
}
