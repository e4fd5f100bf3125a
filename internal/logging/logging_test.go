package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New("warn", &buf)

	logger.Info().Str("path", "a.log").Msg("suppressed")
	if buf.Len() != 0 {
		t.Fatalf("info entry written at warn level: %q", buf.String())
	}

	logger.Warn().Str("path", "a.log").Msg("truncated tail")
	out := buf.String()
	if !strings.Contains(out, `"truncated tail"`) || !strings.Contains(out, `"path":"a.log"`) {
		t.Fatalf("unexpected log output: %q", out)
	}
}

func TestNopDiscards(t *testing.T) {
	logger := Nop()
	logger.Error().Msg("nothing to see")
}
