// Package models lists the chat models an OpenAI-compatible endpoint offers
// for the configured API key, so users can pick dialogue and translation
// models.
package models
