package core

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/0xRadioAc7iv/logcask/internal/record"
)

// Replay scans the log held by r from offset start up to size and folds
// every complete record into kd, overwriting any earlier entry for the same
// key. It returns the offset where the last complete record ends.
//
// A record whose header or payload runs past size is a partial trailing
// record (e.g. a crash mid-write) and ends the scan without being applied.
// With textOnly set, a complete record holding invalid UTF-8 is reported as
// ErrCorrupt.
func Replay(r io.ReaderAt, size, start int64, kd KeyDir, textOnly bool) (int64, error) {
	if start >= size {
		return start, nil
	}

	br := bufio.NewReaderSize(io.NewSectionReader(r, start, size-start), ReplayBufferSize)
	header := make([]byte, record.HeaderSize)
	offset := start

	for {
		recordStartOffset := offset

		if _, err := io.ReadFull(br, header); err != nil {
			if isShortRead(err) {
				return recordStartOffset, nil
			}
			return recordStartOffset, err
		}

		h, err := record.DecodeHeader(header)
		if err != nil {
			return recordStartOffset, err
		}

		totalSize := h.RecordSize()
		if recordStartOffset+totalSize > size {
			return recordStartOffset, nil
		}

		key := make([]byte, h.KeySize)
		if _, err := io.ReadFull(br, key); err != nil {
			if isShortRead(err) {
				return recordStartOffset, nil
			}
			return recordStartOffset, err
		}

		if textOnly {
			value := make([]byte, h.ValueSize)
			if _, err := io.ReadFull(br, value); err != nil {
				if isShortRead(err) {
					return recordStartOffset, nil
				}
				return recordStartOffset, err
			}

			if err := record.ValidateText(key, value); err != nil {
				return recordStartOffset, fmt.Errorf("%w: record at offset %d: %w", ErrCorrupt, recordStartOffset, err)
			}
		} else if err := discard(br, int64(h.ValueSize)); err != nil {
			if isShortRead(err) {
				return recordStartOffset, nil
			}
			return recordStartOffset, err
		}

		kd[string(key)] = KeyDirEntry{
			Timestamp: h.Timestamp,
			Position:  recordStartOffset,
			TotalSize: totalSize,
		}

		offset += totalSize
	}
}

// discard skips n bytes; bufio.Reader.Discard takes an int, values may not fit.
func discard(br *bufio.Reader, n int64) error {
	skipped, err := io.CopyN(io.Discard, br, n)
	if err == io.EOF && skipped < n {
		return io.ErrUnexpectedEOF
	}
	return err
}

func isShortRead(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
