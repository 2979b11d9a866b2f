package opening

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "chessplay"

// DefaultCacheDir returns the platform-specific directory this package
// uses for its Badger cache when the caller has no more specific
// preference: macOS under Application Support, Windows under %APPDATA%,
// everything else under XDG_DATA_HOME (or ~/.local/share).
func DefaultCacheDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support")

	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}

	default:
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, ".local", "share")
		}
	}

	dir := filepath.Join(baseDir, appName, "opening-cache")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
