// Package dialogue generates English replies with a lazily loaded
// dialogue model.
package dialogue
