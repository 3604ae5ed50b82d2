package cli

import (
	"reflect"
	"testing"
	"time"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	// Test default values
	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"DialogueProvider", flags.DialogueProvider, "stub"},
		{"TranslationProvider", flags.TranslationProvider, "stub"},
		{"Refiner", flags.Refiner, "whatlanggo"},
		{"CacheSize", flags.CacheSize, 1024},
		{"ClearCacheEvery", flags.ClearCacheEvery, 0},
		{"LogLevel", flags.LogLevel, "warn"},
		{"LogFormat", flags.LogFormat, "console"},
		{"Addr", flags.Addr, ":8080"},
		{"Timeout", flags.Timeout, time.Duration(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	// Test string defaults (should be empty)
	stringTests := []struct {
		name  string
		value string
	}{
		{"CfgFile", flags.CfgFile},
		{"BatchFile", flags.BatchFile},
		{"DialogueModel", flags.DialogueModel},
		{"TranslationModel", flags.TranslationModel},
	}

	for _, tt := range stringTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Errorf("%s = %v, want empty string", tt.name, tt.value)
			}
		})
	}

	if flags.ListModels {
		t.Error("ListModels = true, want false")
	}
}
