// Package logging builds the structured loggers used across the store and
// its command line drivers.
package logging

import (
	"io"
	"os"

	"github.com/phuslu/log"
)

// New returns a JSON logger writing to w at the given level name
// ("debug", "info", "warn", "error"). Unknown names fall back to info.
func New(level string, w io.Writer) *log.Logger {
	return &log.Logger{
		Level:  log.ParseLevel(level),
		Writer: &log.IOWriter{Writer: w},
	}
}

// NewConsole returns a human readable logger on stderr.
func NewConsole(level string) *log.Logger {
	return &log.Logger{
		Level: log.ParseLevel(level),
		Writer: &log.ConsoleWriter{
			Writer:      os.Stderr,
			ColorOutput: log.IsTerminal(os.Stderr.Fd()),
		},
	}
}

// Nop discards everything.
func Nop() *log.Logger {
	return &log.Logger{
		Level:  log.PanicLevel,
		Writer: &log.IOWriter{Writer: io.Discard},
	}
}

// Default is the store's logger when the caller supplies none.
func Default() *log.Logger {
	return New("info", os.Stderr)
}
