package utils

import (
	"os"
	"path/filepath"
)

// Truncates a file at a given offset
func TruncateAt(f *os.File, offset int64) error {
	if err := f.Truncate(offset); err != nil {
		return err
	}
	return f.Sync()
}

// Indicates if the given path exists or not (works for both files and directories)
func PathExists(filepath string) bool {
	_, err := os.Stat(filepath)
	return err == nil
}

// WriteFileAtomic replaces path with data so that readers see either the old
// or the new content, never a mix. The data goes to a temporary file in the
// same directory which is synced and renamed over path, then the directory
// itself is synced so the rename survives a crash.
func WriteFileAtomic(path string, data []byte) (err error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, name+".tmp-*")
	if err != nil {
		return err
	}

	renamed := false
	defer func() {
		if !renamed {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return err
	}
	renamed = true

	// nice to have: errors here don't undo the rename
	if d, _ := os.Open(dir); d != nil {
		_ = d.Sync()
		_ = d.Close()
	}

	return nil
}
