package core

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/0xRadioAc7iv/logcask/internal/record"
	"github.com/0xRadioAc7iv/logcask/internal/utils"
)

func (s *Store) hintPath() string {
	return s.path + HintFileSuffix
}

// writeHint snapshots the key directory together with the log size it
// describes. Caller holds s.mu and has synced the log.
func (s *Store) writeHint() error {
	hints := make([]record.HintRecord, 0, len(s.keyDir))
	for key, entry := range s.keyDir {
		hints = append(hints, record.HintRecord{
			Timestamp: entry.Timestamp,
			TotalSize: uint64(entry.TotalSize),
			Position:  uint64(entry.Position),
			Key:       []byte(key),
		})
	}

	sort.Slice(hints, func(i, j int) bool {
		return hints[i].Position < hints[j].Position
	})

	data := record.EncodeHintFile(s.writePos, hints)
	if err := utils.WriteFileAtomic(s.hintPath(), data); err != nil {
		return fmt.Errorf("writing hint file: %w", err)
	}

	s.logger.Debug().Str("path", s.hintPath()).Int("keys", len(hints)).Int64("log_size", s.writePos).Msg("hint file written")
	return nil
}

// loadHint seeds the key directory from the hint file and returns the log
// offset replay has to continue from. Any problem with the hint leaves the
// key directory empty and returns 0, i.e. a full scan.
func (s *Store) loadHint(logSize int64) int64 {
	data, err := os.ReadFile(s.hintPath())
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn().Err(err).Str("path", s.hintPath()).Msg("unable to read hint file, scanning full log")
		}
		return 0
	}

	snapshotSize, hints, err := record.DecodeHintFile(data)
	if err == nil {
		err = s.applyHints(snapshotSize, logSize, hints)
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("path", s.hintPath()).Msg("ignoring hint file, scanning full log")
		s.keyDir = make(KeyDir)
		return 0
	}

	s.logger.Debug().Str("path", s.hintPath()).Int("keys", len(hints)).Int64("log_size", snapshotSize).Msg("key directory loaded from hint file")
	return snapshotSize
}

func (s *Store) applyHints(snapshotSize, logSize int64, hints []record.HintRecord) error {
	if snapshotSize > logSize {
		return fmt.Errorf("hint describes %d bytes but log holds %d", snapshotSize, logSize)
	}

	kd := make(KeyDir, len(hints))
	var last *record.HintRecord

	for i := range hints {
		h := &hints[i]

		minSize := uint64(record.HeaderSize + len(h.Key))
		if h.TotalSize < minSize || h.Position > uint64(snapshotSize) || h.TotalSize > uint64(snapshotSize)-h.Position {
			return fmt.Errorf("hint entry for key %q lies outside the log", h.Key)
		}

		kd[string(h.Key)] = KeyDirEntry{
			Timestamp: h.Timestamp,
			Position:  int64(h.Position),
			TotalSize: int64(h.TotalSize),
		}

		if last == nil || h.Position > last.Position {
			last = h
		}
	}

	if last != nil {
		if err := s.verifyHint(last); err != nil {
			return err
		}
	}

	s.keyDir = kd
	return nil
}

// verifyHint checks the newest hinted record against the log, which catches
// a hint left behind by a different log at the same path.
func (s *Store) verifyHint(h *record.HintRecord) error {
	buf := make([]byte, record.HeaderSize+len(h.Key))
	if _, err := s.file.ReadAt(buf, int64(h.Position)); err != nil {
		return fmt.Errorf("reading hinted record at offset %d: %w", h.Position, err)
	}

	header, err := record.DecodeHeader(buf)
	if err != nil {
		return err
	}

	if header.Timestamp != h.Timestamp ||
		int(header.KeySize) != len(h.Key) ||
		uint64(header.RecordSize()) != h.TotalSize ||
		!bytes.Equal(buf[record.HeaderSize:], h.Key) {
		return fmt.Errorf("hinted record at offset %d does not match the log", h.Position)
	}

	return nil
}
