package loader

import (
	"os"
	"path/filepath"
)

// Environment variables that relocate the default data directories.
const (
	EnvSystemDir = "OSINFO_SYSTEM_DIR"
	EnvLocalDir  = "OSINFO_LOCAL_DIR"
	EnvUserDir   = "OSINFO_USER_DIR"

	// EnvDataDir is the legacy name for EnvSystemDir and wins over it.
	EnvDataDir = "OSINFO_DATA_DIR"
)

// Built-in data directories.
const (
	DefaultSystemDir = "/usr/share/osinfo"
	DefaultLocalDir  = "/etc/osinfo"
)

// DefaultRoots returns the system, local and user data directories in
// precedence order, lowest first. The user directory is omitted when no
// configuration directory can be determined.
func DefaultRoots() []string {
	system := DefaultSystemDir
	if dir := os.Getenv(EnvSystemDir); dir != "" {
		system = dir
	}
	if dir := os.Getenv(EnvDataDir); dir != "" {
		system = dir
	}

	local := DefaultLocalDir
	if dir := os.Getenv(EnvLocalDir); dir != "" {
		local = dir
	}

	user := os.Getenv(EnvUserDir)
	if user == "" {
		if cfg, err := os.UserConfigDir(); err == nil {
			user = filepath.Join(cfg, "osinfo")
		}
	}

	roots := []string{system, local}
	if user != "" {
		roots = append(roots, user)
	}
	return roots
}
