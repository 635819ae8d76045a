package log

import (
	"bytes"
	"strings"
	"testing"
)

// TestNewLogger verifies the verbosity policy: debug records are emitted
// only in verbose mode, warnings always.
func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("quiet by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, false)

		logger.Debug("traversal detail")
		logger.Info("progress")
		if buf.Len() != 0 {
			t.Errorf("expected no output below warn level, got %q", buf.String())
		}

		logger.Warn("unreadable directory")
		if !strings.Contains(buf.String(), "unreadable directory") {
			t.Errorf("expected warning to be emitted, got %q", buf.String())
		}
	})

	t.Run("verbose includes debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, true)

		logger.Debug("traversal detail")
		if !strings.Contains(buf.String(), "traversal detail") {
			t.Errorf("expected debug output in verbose mode, got %q", buf.String())
		}
	})
}
