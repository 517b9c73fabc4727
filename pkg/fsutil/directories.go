// Package fsutil provides utility functions and constants for file system operations.
package fsutil

import (
	"os"
	"path/filepath"
)

// EnsureDir creates a directory and any missing parents with DirModeSecure.
// Existing directories keep their mode.
func EnsureDir(path string) error {
	return os.MkdirAll(path, DirModeSecure)
}

// EnsureFileDir creates the parent directory of a file path if it doesn't exist.
func EnsureFileDir(filePath string) error {
	return EnsureDir(filepath.Dir(filePath))
}

// Exists reports whether anything, including a dangling symlink, is present at path.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// IsEntry reports whether a non-directory entry occupies path. Symlinks are
// not followed, so a dangling link counts.
func IsEntry(path string) bool {
	fi, err := os.Lstat(path)
	return err == nil && !fi.IsDir()
}
