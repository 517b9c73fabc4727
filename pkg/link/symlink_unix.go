//go:build !windows

package link

import "os"

// OSSymlinker creates links with the operating system's symlink call.
type OSSymlinker struct{}

// Symlink implements Symlinker.
func (OSSymlinker) Symlink(oldname, newname string) error {
	return os.Symlink(oldname, newname)
}
