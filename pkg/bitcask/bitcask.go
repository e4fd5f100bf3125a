package bitcask

import (
	"errors"
	"fmt"
	"os"

	"github.com/0xRadioAc7iv/logcask/core"
	"github.com/0xRadioAc7iv/logcask/internal"
	"github.com/0xRadioAc7iv/logcask/internal/logging"
)

// Store is the capability every backend provides.
type Store interface {
	// Get returns the value for key. found is false, with a nil error, when
	// the key does not exist.
	Get(key []byte) (value []byte, found bool, err error)
	Set(key, value []byte) error
	Close() error
}

// Inspector is implemented by backends that can enumerate their keys.
type Inspector interface {
	Count() int
	Exists(key []byte) bool
	Keys() []string
}

type Backend = internal.Backend

const (
	BackendDisk   = internal.BackendDisk
	BackendMemory = internal.BackendMemory
)

var ErrUnknownBackend = errors.New("unknown backend")

var (
	_ Store     = (*core.Store)(nil)
	_ Store     = (*MemoryStore)(nil)
	_ Inspector = (*core.Store)(nil)
	_ Inspector = (*MemoryStore)(nil)
)

// Open constructs the backend selected by the options, the disk backend by
// default.
func Open(opts ...Option) (Store, error) {
	cfg := internal.DefaultConfig()

	for _, opt := range opts {
		opt(cfg)
	}

	return OpenConfig(cfg)
}

// OpenConfig is Open for an already assembled configuration.
func OpenConfig(cfg *internal.Config) (Store, error) {
	switch cfg.Backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendDisk, "":
		s, err := OpenDisk(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// OpenDisk opens the log-structured store at cfg.Path.
func OpenDisk(cfg *internal.Config) (*core.Store, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New(cfg.LogLevel, os.Stderr)
	}

	return core.Open(cfg.Path, core.Config{
		HintFile: cfg.HintFile,
		Lock:     cfg.Lock,
		TextOnly: cfg.TextOnly,
		Logger:   logger,
	})
}
