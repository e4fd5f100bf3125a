package bitcask

import (
	"github.com/phuslu/log"

	"github.com/0xRadioAc7iv/logcask/internal"
)

type Option func(*internal.Config)

func WithBackend(backend Backend) Option {
	return func(c *internal.Config) {
		c.Backend = backend
	}
}

func WithPath(path string) Option {
	return func(c *internal.Config) {
		c.Path = path
	}
}

// WithHintFile persists the key directory next to the log on Close so the
// next Open only replays records written after it.
func WithHintFile(enabled bool) Option {
	return func(c *internal.Config) {
		c.HintFile = enabled
	}
}

func WithLock(enabled bool) Option {
	return func(c *internal.Config) {
		c.Lock = enabled
	}
}

// WithTextOnly restricts keys and values to valid UTF-8.
func WithTextOnly(enabled bool) Option {
	return func(c *internal.Config) {
		c.TextOnly = enabled
	}
}

func WithLogLevel(level string) Option {
	return func(c *internal.Config) {
		c.LogLevel = level
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(c *internal.Config) {
		c.Logger = logger
	}
}
