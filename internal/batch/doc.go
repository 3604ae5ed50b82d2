// Package batch answers a file of messages, one per line.
package batch
