package record

import (
	"hash/crc32"
	"testing"
)

func TestCRC(t *testing.T) {
	var data = []byte("languagego")

	want := crc32.ChecksumIEEE(data)

	t.Run("CalculateCRC computes expected checksum", func(t *testing.T) {
		got := CalculateCRC(data)
		if got != want {
			t.Errorf("CalculateCRC() = %v, want %v", got, want)
		}
	})

	t.Run("ValidateCRC returns true for matching checksum", func(t *testing.T) {
		if !ValidateCRC(data, want) {
			t.Errorf("ValidateCRC() returned false, expected true")
		}
	})

	t.Run("ValidateCRC returns false for mismatched checksum", func(t *testing.T) {
		badChecksum := want + 1
		if ValidateCRC(data, badChecksum) {
			t.Errorf("ValidateCRC() returned true for wrong checksum")
		}
	})
}
