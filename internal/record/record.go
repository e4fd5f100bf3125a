package record

import (
	"encoding/binary"
	"errors"
	"math"
	"unicode/utf8"
)

// Timestamp (4) + KeySize (4) + ValueSize (4)
const HeaderSize = 12

// MaxFieldSize is the largest key or value a header can describe.
const MaxFieldSize = math.MaxUint32

var (
	ErrShortBuffer = errors.New("record: buffer shorter than declared record")
	ErrTooLarge    = errors.New("record: key or value exceeds 4GiB")
	ErrInvalidText = errors.New("record: key or value is not valid utf-8")
)

type Header struct {
	Timestamp uint32 // Unix timestamp in seconds
	KeySize   uint32 // Length of Key in Bytes
	ValueSize uint32 // Length of Value in Bytes
}

// RecordSize is the total on-disk size of the record this header starts.
func (h Header) RecordSize() int64 {
	return HeaderSize + int64(h.KeySize) + int64(h.ValueSize)
}

type Record struct {
	Timestamp uint32
	Key       []byte
	Value     []byte
}

func (r *Record) Size() int {
	return HeaderSize + len(r.Key) + len(r.Value)
}

// EncodeHeader lays out the three header fields in little-endian order.
func EncodeHeader(timestamp, keySize, valueSize uint32) []byte {
	header := make([]byte, HeaderSize)
	putHeader(header, timestamp, keySize, valueSize)
	return header
}

func putHeader(b []byte, timestamp, keySize, valueSize uint32) {
	binary.LittleEndian.PutUint32(b[0:4], timestamp)
	binary.LittleEndian.PutUint32(b[4:8], keySize)
	binary.LittleEndian.PutUint32(b[8:12], valueSize)
}

// DecodeHeader parses the first HeaderSize bytes of b.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, ErrShortBuffer
	}

	return Header{
		Timestamp: binary.LittleEndian.Uint32(b[0:4]),
		KeySize:   binary.LittleEndian.Uint32(b[4:8]),
		ValueSize: binary.LittleEndian.Uint32(b[8:12]),
	}, nil
}

// EncodeRecord serializes header || key || value and returns the total size
// alongside the bytes. Callers must validate sizes with CheckSizes first.
func EncodeRecord(timestamp uint32, key, value []byte) (int, []byte) {
	size := HeaderSize + len(key) + len(value)

	data := make([]byte, size)
	putHeader(data, timestamp, uint32(len(key)), uint32(len(value)))
	copy(data[HeaderSize:], key)
	copy(data[HeaderSize+len(key):], value)

	return size, data
}

// DecodeRecord parses a record from the start of data. Key and Value are
// copies, so data may be reused by the caller.
func DecodeRecord(data []byte) (*Record, error) {
	header, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}

	if int64(len(data)) < header.RecordSize() {
		return nil, ErrShortBuffer
	}

	keyEnd := HeaderSize + int(header.KeySize)
	valueEnd := keyEnd + int(header.ValueSize)

	key := make([]byte, header.KeySize)
	copy(key, data[HeaderSize:keyEnd])

	value := make([]byte, header.ValueSize)
	copy(value, data[keyEnd:valueEnd])

	return &Record{
		Timestamp: header.Timestamp,
		Key:       key,
		Value:     value,
	}, nil
}

// CheckSizes reports whether key and value fit into a header.
func CheckSizes(key, value []byte) error {
	if uint64(len(key)) > MaxFieldSize || uint64(len(value)) > MaxFieldSize {
		return ErrTooLarge
	}
	return nil
}

// ValidateText enforces the text policy: key and value must be valid UTF-8.
func ValidateText(key, value []byte) error {
	if !utf8.Valid(key) || !utf8.Valid(value) {
		return ErrInvalidText
	}
	return nil
}
