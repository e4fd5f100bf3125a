package core

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/0xRadioAc7iv/logcask/internal/logging"
)

func TestSetFailedAppendLeavesDirectoryUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bitcask.log")

	s, err := Open(path, Config{Logger: logging.Nop()})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()

	if err := s.Set([]byte("a"), []byte("1")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// writes and truncates both fail on a read-only handle
	ro, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.file.Close(); err != nil {
		t.Fatal(err)
	}
	s.file = ro

	if err := s.Set([]byte("b"), []byte("2")); err == nil {
		t.Fatalf("expected Set to fail on a read-only log")
	}

	if len(s.keyDir) != 1 {
		t.Errorf("failed append reached the directory: %v", s.keyDir)
	}
	if s.writePos != 14 {
		t.Errorf("write position moved to %d after a failed append", s.writePos)
	}

	if _, found, err := s.Get([]byte("b")); found || err != nil {
		t.Errorf("expected b to be missing, got found=%v err=%v", found, err)
	}
	if val, found, err := s.Get([]byte("a")); err != nil || !found || string(val) != "1" {
		t.Errorf("expected a=1, got %q found=%v err=%v", val, found, err)
	}

	if s.failed == nil {
		t.Fatalf("expected the store to refuse writes after an unrecoverable append")
	}
	if err := s.Set([]byte("c"), []byte("3")); !errors.Is(err, s.failed) {
		t.Errorf("expected the latched error, got %v", err)
	}
	if len(s.keyDir) != 1 {
		t.Errorf("refused write reached the directory: %v", s.keyDir)
	}
}
