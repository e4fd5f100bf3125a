package core

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/phuslu/log"

	"github.com/0xRadioAc7iv/logcask/internal/lock"
	"github.com/0xRadioAc7iv/logcask/internal/logging"
	"github.com/0xRadioAc7iv/logcask/internal/record"
	"github.com/0xRadioAc7iv/logcask/internal/utils"
)

// Config tunes a Store. The zero value is a valid configuration.
type Config struct {
	HintFile bool // persist the key directory on Close and reuse it on Open
	Lock     bool // hold an exclusive lock on the log while open
	TextOnly bool // require keys and values to be valid utf-8

	Logger *log.Logger
	Now    func() time.Time // record timestamp source, time.Now by default
}

// Store is a log-structured key-value store backed by a single append-only
// file. Every key lives in the in-memory key directory, which points at the
// latest record written for it.
type Store struct {
	path     string
	file     *os.File
	lockFile *os.File
	writePos int64
	keyDir   KeyDir
	closed   bool

	// set when a failed append could not be rolled back; the tail of the
	// log is unknown so further writes are refused
	failed error

	mu sync.RWMutex // for everything above

	cfg    Config
	logger *log.Logger
}

// Open opens the log at path, creating it if needed, and rebuilds the key
// directory from its contents. A partial trailing record left by a crash is
// cut off so that the next append starts on a record boundary; the file is
// shortened to the end of the last complete record.
func Open(path string, cfg Config) (*Store, error) {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	s := &Store{
		path:   path,
		keyDir: make(KeyDir),
		cfg:    cfg,
		logger: cfg.Logger,
	}

	if cfg.Lock {
		lf, err := lock.Acquire(path)
		if err != nil {
			return nil, err
		}
		s.lockFile = lf
	}

	created := !utils.PathExists(path)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, DatafilePerm)
	if err != nil {
		s.releaseLock()
		return nil, fmt.Errorf("opening log: %w", err)
	}
	s.file = f

	if err := s.recover(); err != nil {
		f.Close()
		s.releaseLock()
		return nil, err
	}

	// Sets the offset to the end of the log
	offset, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		f.Close()
		s.releaseLock()
		return nil, fmt.Errorf("seeking to end of log: %w", err)
	}
	s.writePos = offset

	s.logger.Info().Str("path", path).Bool("created", created).Int("keys", len(s.keyDir)).Int64("size", offset).Msg("store opened")
	return s, nil
}

func (s *Store) recover() error {
	info, err := s.file.Stat()
	if err != nil {
		return fmt.Errorf("stat log: %w", err)
	}

	size := info.Size()
	if size == 0 {
		return nil
	}

	var start int64
	if s.cfg.HintFile {
		start = s.loadHint(size)
	}

	end, err := Replay(s.file, size, start, s.keyDir, s.cfg.TextOnly)
	if err != nil {
		return fmt.Errorf("replaying log: %w", err)
	}

	if end < size {
		s.logger.Warn().Str("path", s.path).Int64("offset", end).Int64("dropped_bytes", size-end).Msg("partial record at end of log, truncating")
		if err := utils.TruncateAt(s.file, end); err != nil {
			return fmt.Errorf("truncating partial record: %w", err)
		}
	}

	s.logger.Debug().Str("path", s.path).Int64("from", start).Int64("to", end).Int("keys", len(s.keyDir)).Msg("log replayed")
	return nil
}

// Set appends a record for key and forces it to stable storage. The key
// directory only changes once the record is durable.
func (s *Store) Set(key, value []byte) error {
	if err := record.CheckSizes(key, value); err != nil {
		return err
	}
	if s.cfg.TextOnly {
		if err := record.ValidateText(key, value); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.failed != nil {
		return s.failed
	}

	timestamp := uint32(s.cfg.Now().Unix())
	size, data := record.EncodeRecord(timestamp, key, value)

	if err := s.appendDurably(data); err != nil {
		return err
	}

	s.keyDir[string(key)] = KeyDirEntry{
		Timestamp: timestamp,
		Position:  s.writePos,
		TotalSize: int64(size),
	}
	s.writePos += int64(size)

	return nil
}

func (s *Store) appendDurably(data []byte) error {
	_, err := s.file.Write(data)
	if err == nil {
		err = s.file.Sync()
	}
	if err == nil {
		return nil
	}

	// Drop whatever part of the record made it to the file so the next
	// append lands on a record boundary
	if terr := s.file.Truncate(s.writePos); terr != nil {
		s.failed = fmt.Errorf("log tail unknown after failed append: %w", errors.Join(err, terr))
		s.logger.Error().Err(s.failed).Str("path", s.path).Msg("store refuses further writes")
	}

	return fmt.Errorf("appending record: %w", err)
}

// Get returns the latest value written for key. found is false, with a nil
// error, when the key was never written.
func (s *Store) Get(key []byte) (value []byte, found bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, false, ErrClosed
	}

	entry, ok := s.keyDir[string(key)]
	if !ok {
		return nil, false, nil
	}

	buf := make([]byte, entry.TotalSize)
	if _, err := s.file.ReadAt(buf, entry.Position); err != nil {
		return nil, false, fmt.Errorf("%w: reading %d bytes at offset %d: %w", ErrCorrupt, entry.TotalSize, entry.Position, err)
	}

	diskRecord, err := record.DecodeRecord(buf)
	if err != nil {
		return nil, false, fmt.Errorf("%w: decoding record at offset %d: %w", ErrCorrupt, entry.Position, err)
	}

	if int64(diskRecord.Size()) != entry.TotalSize || !bytes.Equal(diskRecord.Key, key) {
		return nil, false, fmt.Errorf("%w: record at offset %d does not belong to key %q", ErrCorrupt, entry.Position, key)
	}

	return diskRecord.Value, true, nil
}

// Close syncs the log, writes the hint file if enabled and releases the
// file. Every later call, including Close, returns ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	s.closed = true

	var errs []error

	syncErr := s.file.Sync()
	if syncErr != nil {
		errs = append(errs, fmt.Errorf("syncing log: %w", syncErr))
	}

	if s.cfg.HintFile && syncErr == nil && s.failed == nil {
		if err := s.writeHint(); err != nil {
			errs = append(errs, err)
		}
	}

	if err := s.file.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing log: %w", err))
	}

	s.releaseLock()
	s.keyDir = nil

	err := errors.Join(errs...)
	if err != nil {
		s.logger.Error().Err(err).Str("path", s.path).Msg("store closed with errors")
	} else {
		s.logger.Info().Str("path", s.path).Int64("size", s.writePos).Msg("store closed")
	}

	return err
}

func (s *Store) releaseLock() {
	if s.lockFile == nil {
		return
	}
	if err := lock.Release(s.lockFile); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("releasing lock")
	}
	s.lockFile = nil
}

// Count returns the number of keys in the store, 0 once closed.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.keyDir)
}

// Exists reports whether key has been written. Always false once closed.
func (s *Store) Exists(key []byte) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.keyDir[string(key)]
	return ok
}

// Keys returns every key in the store, sorted. Empty once closed.
func (s *Store) Keys() []string {
	s.mu.RLock()
	keys := make([]string, 0, len(s.keyDir))
	for k := range s.keyDir {
		keys = append(keys, k)
	}
	s.mu.RUnlock()

	sort.Strings(keys)
	return keys
}

// KeyDir returns a copy of the key directory, nil once closed.
func (s *Store) KeyDir() KeyDir {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return maps.Clone(s.keyDir)
}

// Size returns the current length of the log in bytes, 0 once closed.
func (s *Store) Size() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0
	}
	return s.writePos
}
