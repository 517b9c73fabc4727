package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/esfalsa/pallets/internal/logger"
	"github.com/esfalsa/pallets/pkg/dump"
	"github.com/esfalsa/pallets/pkg/errors"
	"github.com/esfalsa/pallets/pkg/fsutil"
)

// DefaultManager implements the Manager interface over a single flat directory.
// The directory listing is the only index; nothing is cached between calls.
type DefaultManager struct {
	directory string
}

// NewManager creates a manager for directory without touching the filesystem.
func NewManager(directory string) *DefaultManager {
	return &DefaultManager{
		directory: directory,
	}
}

// Open creates directory if needed and returns a manager for it.
func Open(directory string) (*DefaultManager, error) {
	if directory == "" {
		return nil, errors.ErrCacheDirectory
	}
	abs, err := filepath.Abs(directory)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", errors.ErrDumpsDirectory, directory, err)
	}
	if err := fsutil.EnsureDir(abs); err != nil {
		return nil, fmt.Errorf("%w %s: %w", errors.ErrDumpsDirectory, abs, err)
	}
	return NewManager(abs), nil
}

// NewDefaultManager opens the platform default dumps directory. Failing to
// locate it is a configuration error; there is no fallback location.
func NewDefaultManager() (*DefaultManager, error) {
	dir, err := fsutil.GetDumpsDir()
	if err != nil {
		return nil, fmt.Errorf("%w: could not find a valid home directory: %w", errors.ErrConfigDirectory, err)
	}
	return Open(dir)
}

// Directory returns the dumps directory path.
func (cm *DefaultManager) Directory() string {
	return cm.directory
}

// Path returns the canonical path a dump is stored at, whether or not it exists.
func (cm *DefaultManager) Path(kind dump.Kind, date time.Time) string {
	return dump.Path(cm.directory, kind, date)
}

// Scan lists the dumps present in the directory. Entries whose names are not
// dump file names are skipped. The order of the result is unspecified.
func (cm *DefaultManager) Scan() ([]dump.Record, error) {
	entries, err := os.ReadDir(cm.directory)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", errors.ErrCacheRead, cm.directory, err)
	}

	records := make([]dump.Record, 0, len(entries))
	seen := make(map[dump.Record]bool, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		rec, ok := dump.ParseFileName(entry.Name())
		if !ok {
			logger.Debug("Skipping unrecognized file", logger.Fields{"name": entry.Name()})
			continue
		}
		if seen[rec] {
			continue
		}
		seen[rec] = true
		records = append(records, rec)
	}
	return records, nil
}

// List scans the directory and applies query to the result.
func (cm *DefaultManager) List(query dump.Query) ([]dump.Record, error) {
	records, err := cm.Scan()
	if err != nil {
		return nil, err
	}
	return query.Apply(records), nil
}

// Has reports whether a dump is present under its canonical or legacy name.
func (cm *DefaultManager) Has(kind dump.Kind, date time.Time) bool {
	_, err := cm.Locate(kind, date)
	return err == nil
}

// Locate returns the path of an existing dump, preferring the canonical name.
func (cm *DefaultManager) Locate(kind dump.Kind, date time.Time) (string, error) {
	for _, path := range dump.Paths(cm.directory, kind, date) {
		if fsutil.IsEntry(path) {
			return path, nil
		}
	}
	return "", errors.Wrapf(errors.ErrDumpNotFound, "%s dump for %s", kind, date.Format(dump.DateLayout))
}

// Delete removes every stored copy of a dump.
func (cm *DefaultManager) Delete(kind dump.Kind, date time.Time) error {
	removed := 0
	for _, path := range dump.Paths(cm.directory, kind, date) {
		if !fsutil.IsEntry(path) {
			continue
		}
		if err := os.Remove(path); err != nil {
			return errors.Wrapf(err, "failed to delete %s", path)
		}
		logger.Debug("Deleted dump file", logger.Fields{"path": path})
		removed++
	}
	if removed == 0 {
		return errors.Wrapf(errors.ErrDumpNotFound, "%s dump for %s", kind, date.Format(dump.DateLayout))
	}
	return nil
}

// GetInfo returns statistics about the dumps in the directory.
func (cm *DefaultManager) GetInfo() (*Info, error) {
	entries, err := os.ReadDir(cm.directory)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", errors.ErrCacheRead, cm.directory, err)
	}

	info := &Info{
		Directory: cm.directory,
		ByKind:    make(map[dump.Kind]int, len(dump.Kinds())),
	}
	seen := make(map[dump.Record]bool, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		rec, ok := dump.ParseFileName(entry.Name())
		if !ok {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to stat %s", entry.Name())
		}
		info.TotalSize += fi.Size()

		if seen[rec] {
			continue
		}
		seen[rec] = true
		info.Dumps++
		info.ByKind[rec.Kind]++
		if info.Oldest.IsZero() || rec.Date.Before(info.Oldest) {
			info.Oldest = rec.Date
		}
		if rec.Date.After(info.Newest) {
			info.Newest = rec.Date
		}
	}
	return info, nil
}
