package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "taltext"

// ResolveModelDir returns the directory for downloaded model weights,
// preferring the override when one is given.
func ResolveModelDir(override string) (string, error) {
	if override != "" {
		return filepath.Clean(override), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate user home: %w", err)
	}
	return DefaultModelDirFor(runtime.GOOS, home, os.Getenv("XDG_DATA_HOME"))
}

// DefaultModelDirFor computes the per-user model directory for the given OS.
// Split out from ResolveModelDir so tests can cover the platform branches
// without touching the real home.
func DefaultModelDirFor(goos, homeDir, xdgDataHome string) (string, error) {
	if homeDir == "" {
		return "", errors.New("home directory is unknown")
	}

	var root string
	switch goos {
	case "linux":
		root = filepath.Join(homeDir, ".local", "share")
		if xdgDataHome != "" {
			root = xdgDataHome
		}
	case "darwin":
		root = filepath.Join(homeDir, "Library", "Application Support")
	case "windows":
		root = filepath.Join(homeDir, "AppData", "Local")
	default:
		return "", fmt.Errorf("unsupported platform %q", goos)
	}

	return filepath.Join(root, appDirName, "models"), nil
}
