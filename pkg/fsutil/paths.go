package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"

	"github.com/esfalsa/pallets/pkg/platform"
)

const (
	// AppName is the name of the application used in paths.
	AppName = "pallets"
	// Organization namespaces the data directory on platforms that use one.
	Organization = "esfalsa"
	// DumpsSubdir is the directory below the data directory holding the dumps.
	DumpsSubdir = "dumps"
)

// GetDataDir returns the platform-specific data directory for the application
// On Linux: $XDG_DATA_HOME/pallets or ~/.local/share/pallets
// On macOS: ~/Library/Application Support/esfalsa.pallets
// On Windows: %APPDATA%\esfalsa\pallets\data
func GetDataDir() (string, error) {
	return dataDirFor(runtime.GOOS)
}

func dataDirFor(goos string) (string, error) {
	switch goos {
	case platform.OSWindows:
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", errors.New("APPDATA environment variable not set")
		}
		return filepath.Join(appData, Organization, AppName, "data"), nil

	case platform.OSDarwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support", Organization+"."+AppName), nil

	default: // Linux, BSD, etc.
		if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" && filepath.IsAbs(xdgDataHome) {
			return filepath.Join(xdgDataHome, AppName), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share", AppName), nil
	}
}

// GetDumpsDir returns the directory holding downloaded dumps
// Format: <data_dir>/dumps/
func GetDumpsDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, DumpsSubdir), nil
}
