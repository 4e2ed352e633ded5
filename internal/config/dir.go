// Package config locates and loads gitobj configuration.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the gitobj configuration directory.
//
// Resolution:
//   - $GITOBJ_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/gitobj if set (respects XDG on any platform)
//   - %AppData%/gitobj on Windows
//   - ~/.config/gitobj on macOS and Linux
func Dir() string {
	// Explicit override
	if dir := os.Getenv("GITOBJ_CONFIG_HOME"); dir != "" {
		return dir
	}

	// XDG override (works on any platform)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gitobj")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "gitobj")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gitobj")
}
