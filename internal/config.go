package internal

import "github.com/phuslu/log"

// Backend selects which Store implementation is constructed.
type Backend string

const (
	BackendDisk   Backend = "disk"
	BackendMemory Backend = "memory"
)

type Config struct {
	Backend  Backend
	Path     string // log file path, disk backend only
	HintFile bool   // persist the key directory on close and reuse it on open
	Lock     bool   // refuse to open a log another instance holds
	TextOnly bool   // require keys and values to be valid utf-8
	LogLevel string
	Logger   *log.Logger // overrides LogLevel when set
}

const DEFAULT_PATH = "bitcask.log"
const DEFAULT_LOG_LEVEL = "info"

func DefaultConfig() *Config {
	return &Config{
		Backend:  BackendDisk,
		Path:     DEFAULT_PATH,
		Lock:     true,
		LogLevel: DEFAULT_LOG_LEVEL,
	}
}
