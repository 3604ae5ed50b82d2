// Package cli provides command-line interface setup and configuration
// for the ai1900 application. It handles flag parsing, command creation,
// configuration loading with cobra and viper, and logger construction.
package cli
