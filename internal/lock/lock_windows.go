//go:build windows

package lock

import (
	"errors"
	"fmt"
	"os"
)

// Acquire attempts to take an exclusive lock for the log file at logPath.
//
// On Windows, this is implemented by atomically creating a file named
// "<logPath>.lock". If the file already exists, the log is assumed to be in
// use by another store and ErrLocked is returned.
//
// The returned file handle must be kept open for the duration of the lock.
func Acquire(logPath string) (*os.File, error) {
	f, err := os.OpenFile(logPath+LockFileSuffix, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, ErrLocked
		}
		return nil, fmt.Errorf("unable to create lock file: %w", err)
	}

	return f, nil
}

// Release releases a lock acquired via Acquire.
//
// On Windows, this removes the lock file from disk. Release should be called
// exactly once for each successful Acquire call.
func Release(f *os.File) error {
	name := f.Name()
	if err := f.Close(); err != nil {
		return err
	}
	return os.Remove(name)
}
