// Package openai implements the dialogue and translation models on top of
// OpenAI chat completions. Any OpenAI-compatible server (for example a
// locally served Hugging Face model) can be used by setting the base URL.
package openai
