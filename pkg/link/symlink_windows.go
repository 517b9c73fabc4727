//go:build windows

package link

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// errorPrivilegeNotHeld is ERROR_PRIVILEGE_NOT_HELD.
const errorPrivilegeNotHeld syscall.Errno = 1314

// OSSymlinker creates directory symlinks through the Windows API.
type OSSymlinker struct{}

// Symlink implements Symlinker. Creating symlinks on Windows requires
// Developer Mode or an elevated shell.
func (OSSymlinker) Symlink(oldname, newname string) error {
	err := os.Symlink(oldname, newname)
	if errors.Is(err, errorPrivilegeNotHeld) {
		return fmt.Errorf("%w (enable Developer Mode or run as administrator)", err)
	}
	return err
}
