package store

import (
	"os"
	"path/filepath"
	"runtime"
)

// DocumentName is the filename of the preferences document inside the data
// directory. Everything the app persists lives in this one file.
const DocumentName = "goal_store.yaml"

// DefaultDocumentPath returns where the preferences document lives by
// default: DocumentName inside the OS-appropriate data directory.
func DefaultDocumentPath() string {
	return filepath.Join(DefaultDataDir(), DocumentName)
}

// DefaultDataDir returns the OS-appropriate data directory for checkin.
//
//   - macOS:   ~/Library/Application Support/checkin
//   - Linux:   $XDG_DATA_HOME/checkin (fallback ~/.local/share/checkin)
//   - Windows: %LOCALAPPDATA%\checkin (fallback %APPDATA%\checkin)
func DefaultDataDir() string {
	return dataDirForOS(runtime.GOOS)
}

func dataDirForOS(goos string) string {
	home, _ := os.UserHomeDir()

	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "checkin")
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return filepath.Join(dir, "checkin")
		}
		if dir := os.Getenv("APPDATA"); dir != "" {
			return filepath.Join(dir, "checkin")
		}
		return filepath.Join(home, "checkin")
	default: // linux, freebsd, etc.
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return filepath.Join(dir, "checkin")
		}
		return filepath.Join(home, ".local", "share", "checkin")
	}
}
