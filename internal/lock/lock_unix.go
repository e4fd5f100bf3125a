//go:build unix

package lock

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Acquire attempts to take an exclusive, non-blocking advisory lock for the
// log file at logPath.
//
// On Unix systems, this uses flock(2) on a sibling file named
// "<logPath>.lock". If the lock cannot be acquired, the log is assumed to be
// in use by another store and ErrLocked is returned.
//
// The returned file handle must remain open for the duration of the lock.
func Acquire(logPath string) (*os.File, error) {
	f, err := os.OpenFile(logPath+LockFileSuffix, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("unable to open lock file: %w", err)
	}

	err = unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	if err != nil {
		f.Close()
		if err == unix.EWOULDBLOCK {
			return nil, ErrLocked
		}
		return nil, fmt.Errorf("unable to lock %s: %w", f.Name(), err)
	}

	return f, nil
}

// Release releases a lock acquired via Acquire.
//
// On Unix systems, this releases the advisory flock and closes the file.
// The lock file itself is left in place.
func Release(f *os.File) error {
	if err := unix.Flock(int(f.Fd()), unix.LOCK_UN); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
