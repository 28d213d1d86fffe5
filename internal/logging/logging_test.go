package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("accepts known levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			logger, err := New(level)
			if err != nil {
				t.Fatalf("New(%q) returned unexpected error: %v", level, err)
			}
			if logger == nil {
				t.Fatalf("New(%q) returned nil logger", level)
			}
		}
	})

	t.Run("respects the configured level", func(t *testing.T) {
		logger, err := New("warn")
		if err != nil {
			t.Fatalf("New returned unexpected error: %v", err)
		}

		if logger.Core().Enabled(zapcore.InfoLevel) {
			t.Error("Expected info to be disabled at warn level")
		}
		if !logger.Core().Enabled(zapcore.ErrorLevel) {
			t.Error("Expected error to be enabled at warn level")
		}
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		if _, err := New("verbose"); err == nil {
			t.Error("Expected error for unknown level, got nil")
		}
	})
}
