//go:generate mockgen -destination=./mocks/link.go . Symlinker

// Package link exposes the dump directory elsewhere on the filesystem
// through a symbolic link. It never removes or replaces an existing entry.
package link

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/esfalsa/pallets/internal/logger"
	"github.com/esfalsa/pallets/pkg/errors"
	"github.com/esfalsa/pallets/pkg/fsutil"
)

// Symlinker creates a symbolic link named newname pointing at oldname.
type Symlinker interface {
	Symlink(oldname, newname string) error
}

// Linker applies the link placement policy on top of a Symlinker.
type Linker struct {
	symlinker Symlinker
}

// NewLinker returns a Linker backed by s. A nil s selects the OS backend.
func NewLinker(s Symlinker) *Linker {
	if s == nil {
		s = OSSymlinker{}
	}
	return &Linker{symlinker: s}
}

// Link creates a link to cacheDir at target and returns where it was placed.
//
// A missing target becomes the link. An existing directory receives the link
// as its "dumps" child unless that child already exists. Anything else is a
// conflict.
func (l *Linker) Link(cacheDir, target string) (string, error) {
	source, err := filepath.Abs(cacheDir)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve dump directory %s", cacheDir)
	}
	linkPath, err := filepath.Abs(target)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve link target %s", target)
	}

	if fsutil.Exists(linkPath) {
		if !isDir(linkPath) {
			return "", fmt.Errorf("%w: %s", errors.ErrLinkExists, linkPath)
		}
		linkPath = filepath.Join(linkPath, fsutil.DumpsSubdir)
		if fsutil.Exists(linkPath) {
			return "", fmt.Errorf("%w: %s", errors.ErrLinkExists, linkPath)
		}
	}

	logger.Debug("Creating symlink", logger.Fields{"source": source, "link": linkPath})
	if err := l.symlinker.Symlink(source, linkPath); err != nil {
		return "", errors.Wrapf(err, "failed to link %s to %s", linkPath, source)
	}
	return linkPath, nil
}

// isDir follows symlinks, so a link to a directory counts as a directory.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
