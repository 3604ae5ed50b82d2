// Package processor runs a conversation turn. It detects the language of
// the user's utterance, translates Persian input to English, asks the
// dialogue model for a reply and translates the reply back. Translation
// and generation failures degrade the reply instead of surfacing as errors.
package processor
