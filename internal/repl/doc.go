// Package repl implements the interactive terminal chat. It keeps a bounded
// history of the conversation and understands a few slash commands.
package repl
