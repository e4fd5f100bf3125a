package record

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestEncodeDecodeHeader(t *testing.T) {
	tests := []struct {
		timestamp uint32
		keySize   uint32
		valueSize uint32
	}{
		{10, 10, 10},
		{0, 0, 0},
		{10000, 10000, 10000},
		{1<<32 - 1, 1<<32 - 1, 1<<32 - 1},
	}

	for _, tt := range tests {
		encoded := EncodeHeader(tt.timestamp, tt.keySize, tt.valueSize)
		if len(encoded) != HeaderSize {
			t.Fatalf("header length: got %d, want %d", len(encoded), HeaderSize)
		}

		header, err := DecodeHeader(encoded)
		if err != nil {
			t.Fatalf("unexpected decode error: %v", err)
		}

		if header.Timestamp != tt.timestamp {
			t.Errorf("Timestamp mismatch: got %v, want %v", header.Timestamp, tt.timestamp)
		}
		if header.KeySize != tt.keySize {
			t.Errorf("KeySize mismatch: got %v, want %v", header.KeySize, tt.keySize)
		}
		if header.ValueSize != tt.valueSize {
			t.Errorf("ValueSize mismatch: got %v, want %v", header.ValueSize, tt.valueSize)
		}
	}
}

func TestDecodeHeaderShortBuffer(t *testing.T) {
	encoded := EncodeHeader(1, 2, 3)

	for i := 0; i < HeaderSize; i++ {
		if _, err := DecodeHeader(encoded[:i]); !errors.Is(err, ErrShortBuffer) {
			t.Fatalf("length %d: expected ErrShortBuffer, got %v", i, err)
		}
	}
}

func TestEncodeDecodeRecord(t *testing.T) {
	tests := []struct {
		name      string
		timestamp uint32
		key       []byte
		value     []byte
		size      int
	}{
		{"text", 10, []byte("hello"), []byte("world"), HeaderSize + 10},
		{"empty key and value", 0, []byte{}, []byte{}, HeaderSize},
		{"multibyte key", 100, []byte("🔑"), []byte{}, HeaderSize + 4},
		{"binary payload", 7, []byte{0x00, 0xff, '\n'}, []byte{0xde, 0xad, 0xbe, 0xef}, HeaderSize + 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size, encoded := EncodeRecord(tt.timestamp, tt.key, tt.value)
			if size != tt.size {
				t.Errorf("size mismatch: got %d, want %d", size, tt.size)
			}
			if len(encoded) != size {
				t.Errorf("encoded length %d does not match size %d", len(encoded), size)
			}

			decoded, err := DecodeRecord(encoded)
			if err != nil {
				t.Fatalf("unexpected decode error: %v", err)
			}

			if decoded.Timestamp != tt.timestamp {
				t.Errorf("Timestamp mismatch: got %v, want %v", decoded.Timestamp, tt.timestamp)
			}
			if !bytes.Equal(decoded.Key, tt.key) {
				t.Errorf("Key mismatch: got %v, want %v", decoded.Key, tt.key)
			}
			if !bytes.Equal(decoded.Value, tt.value) {
				t.Errorf("Value mismatch: got %v, want %v", decoded.Value, tt.value)
			}
			if decoded.Size() != size {
				t.Errorf("Size() mismatch: got %d, want %d", decoded.Size(), size)
			}
		})
	}
}

func TestDecodeErrorsOnTruncatedData(t *testing.T) {
	_, encoded := EncodeRecord(123123123, []byte("abc"), []byte("xy"))

	for i := 0; i < len(encoded); i++ {
		_, err := DecodeRecord(encoded[:i])
		if !errors.Is(err, ErrShortBuffer) {
			t.Fatalf("expected ErrShortBuffer when decoding truncated data of length %d, got %v", i, err)
		}
	}
}

func TestDecodeRecordCopiesPayload(t *testing.T) {
	_, encoded := EncodeRecord(1, []byte("k"), []byte("v"))

	decoded, err := DecodeRecord(encoded)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	encoded[HeaderSize] = 'x'
	if string(decoded.Key) != "k" {
		t.Fatalf("decoded key aliases the input buffer")
	}
}

func TestEncodedByteLayout(t *testing.T) {
	_, encoded := EncodeRecord(2, []byte("a"), []byte("bc"))

	// Expected bytes structure:
	// uint32 Timestamp
	// uint32 KeySize
	// uint32 ValueSize
	// []byte Key
	// []byte Value
	offset := 0

	expectUint32 := func(name string, want uint32) {
		got := binary.LittleEndian.Uint32(encoded[offset : offset+4])
		if got != want {
			t.Fatalf("%s mismatch: got %v want %v", name, got, want)
		}
		offset += 4
	}

	expectUint32("Timestamp", 2)
	expectUint32("KeySize", 1)
	expectUint32("ValueSize", 2)

	if got := string(encoded[offset:]); got != "abc" {
		t.Fatalf("expected payload %q, got %q", "abc", got)
	}
}

func TestValidateText(t *testing.T) {
	if err := ValidateText([]byte("key"), []byte("こんにちは")); err != nil {
		t.Fatalf("unexpected error for valid text: %v", err)
	}
	if err := ValidateText([]byte{0xff}, []byte("v")); !errors.Is(err, ErrInvalidText) {
		t.Fatalf("expected ErrInvalidText for key, got %v", err)
	}
	if err := ValidateText([]byte("k"), []byte{0xc3, 0x28}); !errors.Is(err, ErrInvalidText) {
		t.Fatalf("expected ErrInvalidText for value, got %v", err)
	}
}

func TestCheckSizes(t *testing.T) {
	if err := CheckSizes([]byte("k"), make([]byte, 1024)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
