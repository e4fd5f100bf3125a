package record

import "hash/crc32"

// CalculateCRC computes the CRC32 checksum of data using the IEEE polynomial.
func CalculateCRC(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// ValidateCRC returns true if the provided checksum matches the computed CRC32 of data
func ValidateCRC(data []byte, checksum uint32) bool {
	return CalculateCRC(data) == checksum
}
