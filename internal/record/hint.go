package record

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// HintRecord is one key directory entry as persisted in a hint file.
type HintRecord struct {
	Timestamp uint32
	TotalSize uint64
	Position  uint64
	Key       []byte
}

// "LCH1" read as a little-endian uint32
const HintMagic uint32 = 0x3148434c

// Magic (4) + LogSize (8) + Count (4) + CRC (4)
const HintFileHeaderSizeBytes = 20

// Timestamp (4) + KeySize (4) + TotalSize (8) + Position (8)
const HintRecordHeaderSizeBytes = 24

var ErrInvalidHint = errors.New("record: invalid hint file")

// EncodeHintFile serializes a key directory snapshot taken when the log was
// logSize bytes long.
func EncodeHintFile(logSize int64, hints []HintRecord) []byte {
	bodySize := 0
	for i := range hints {
		bodySize += HintRecordHeaderSizeBytes + len(hints[i].Key)
	}

	data := make([]byte, HintFileHeaderSizeBytes+bodySize)
	body := data[HintFileHeaderSizeBytes:]

	off := 0
	for _, h := range hints {
		binary.LittleEndian.PutUint32(body[off:], h.Timestamp)
		binary.LittleEndian.PutUint32(body[off+4:], uint32(len(h.Key)))
		binary.LittleEndian.PutUint64(body[off+8:], h.TotalSize)
		binary.LittleEndian.PutUint64(body[off+16:], h.Position)
		off += HintRecordHeaderSizeBytes
		off += copy(body[off:], h.Key)
	}

	binary.LittleEndian.PutUint32(data[0:4], HintMagic)
	binary.LittleEndian.PutUint64(data[4:12], uint64(logSize))
	binary.LittleEndian.PutUint32(data[12:16], uint32(len(hints)))
	binary.LittleEndian.PutUint32(data[16:20], CalculateCRC(body))

	return data
}

// DecodeHintFile parses a hint file, verifying its magic, checksum and
// record count. It returns the log size the snapshot was taken at.
func DecodeHintFile(data []byte) (int64, []HintRecord, error) {
	if len(data) < HintFileHeaderSizeBytes {
		return 0, nil, fmt.Errorf("%w: short header", ErrInvalidHint)
	}

	if binary.LittleEndian.Uint32(data[0:4]) != HintMagic {
		return 0, nil, fmt.Errorf("%w: bad magic", ErrInvalidHint)
	}

	logSize := binary.LittleEndian.Uint64(data[4:12])
	count := binary.LittleEndian.Uint32(data[12:16])
	checksum := binary.LittleEndian.Uint32(data[16:20])
	body := data[HintFileHeaderSizeBytes:]

	if !ValidateCRC(body, checksum) {
		return 0, nil, fmt.Errorf("%w: checksum mismatch", ErrInvalidHint)
	}
	if logSize > 1<<62 {
		return 0, nil, fmt.Errorf("%w: log size out of range", ErrInvalidHint)
	}

	hints := make([]HintRecord, 0, min(int(count), len(body)/HintRecordHeaderSizeBytes))

	off := 0
	for i := uint32(0); i < count; i++ {
		if len(body)-off < HintRecordHeaderSizeBytes {
			return 0, nil, fmt.Errorf("%w: truncated entry %d", ErrInvalidHint, i)
		}

		keySize := int(binary.LittleEndian.Uint32(body[off+4:]))
		h := HintRecord{
			Timestamp: binary.LittleEndian.Uint32(body[off:]),
			TotalSize: binary.LittleEndian.Uint64(body[off+8:]),
			Position:  binary.LittleEndian.Uint64(body[off+16:]),
		}
		off += HintRecordHeaderSizeBytes

		if keySize > len(body)-off {
			return 0, nil, fmt.Errorf("%w: truncated key in entry %d", ErrInvalidHint, i)
		}
		h.Key = make([]byte, keySize)
		off += copy(h.Key, body[off:off+keySize])

		hints = append(hints, h)
	}

	if off != len(body) {
		return 0, nil, fmt.Errorf("%w: trailing bytes", ErrInvalidHint)
	}

	return int64(logSize), hints, nil
}
