package core

// KeyDirEntry represents the in-memory index entry for a single key.
//
// Each entry points to the latest record written for the key. Older records
// for the same key remain in the log but are unreachable.
//
// The KeyDir is rebuilt on startup by replaying the log, optionally seeded
// from a hint file.
type KeyDirEntry struct {
	Timestamp uint32 // Timestamp of the record, seconds since epoch
	Position  int64  // Byte offset in the log where the record header starts
	TotalSize int64  // Total size of the record on disk (header + key + value)
}

// KeyDir is the in-memory index mapping keys to their latest on-disk entries.
//
// It is a cache derived from the log; the log stays the source of truth.
type KeyDir map[string]KeyDirEntry
