package testutil

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/preston-bernstein/lazyman-service/internal/logging"
)

// NewBufferLogger returns a debug-level text logger backed by a buffer, and the buffer.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := logging.NewLogger(logging.Config{Level: "debug", Output: &buf})
	return logger, &buf
}

// AssertLogged fails unless every fragment appears in the captured log output.
func AssertLogged(t *testing.T, buf *bytes.Buffer, fragments ...string) {
	t.Helper()
	out := buf.String()
	for _, f := range fragments {
		if !strings.Contains(out, f) {
			t.Fatalf("expected log to contain %q, got:\n%s", f, out)
		}
	}
}
