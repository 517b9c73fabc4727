package platform

import (
	"fmt"
	"runtime"
)

// Platform is an operating system and architecture pair.
type Platform struct {
	OS   string `yaml:"os" json:"os"`
	Arch string `yaml:"arch" json:"arch"`
}

// Current returns the platform the binary was built for.
func Current() Platform {
	return newPlatform(runtime.GOOS, runtime.GOARCH)
}

func newPlatform(goos, goarch string) Platform {
	if goos == "" {
		goos = unknown
	}
	if goarch == "" {
		goarch = unknown
	}
	return Platform{OS: goos, Arch: goarch}
}

// String returns a string representation of the platform
func (p Platform) String() string {
	return fmt.Sprintf("%s/%s", p.OS, p.Arch)
}

// IsWindows reports whether p is a Windows platform, where creating symlinks
// needs Developer Mode or elevation.
func (p Platform) IsWindows() bool {
	return p.OS == OSWindows
}
