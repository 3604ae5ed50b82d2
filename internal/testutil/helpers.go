package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

// NopLogger returns a logger that discards everything
func NopLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// CreateTestFile creates a test file with content in dir and returns its path
func CreateTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}

	return path
}
