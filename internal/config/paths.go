// ABOUTME: Standard filesystem paths for emacs-keys configuration and logs
// ABOUTME: Resolves ~/.emacs-keys/ for global and .emacs-keys/ for project-local paths

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName  = ".emacs-keys"
	projectDirName = ".emacs-keys"
)

// settingsNames lists accepted settings file names in lookup order.
var settingsNames = []string{"settings.json", "settings.yaml", "settings.yml"}

// GlobalDir returns the user-global config directory (~/.emacs-keys/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// ProjectDir returns the project-local config directory (.emacs-keys/ in root).
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, projectDirName)
}

// SettingsFiles returns the candidate settings files in dir, in lookup order.
func SettingsFiles(dir string) []string {
	out := make([]string, len(settingsNames))
	for i, n := range settingsNames {
		out[i] = filepath.Join(dir, n)
	}
	return out
}

// WatchPaths returns every settings file that Load may read, for hot reload.
func WatchPaths(projectRoot string) []string {
	return append(SettingsFiles(GlobalDir()), SettingsFiles(ProjectDir(projectRoot))...)
}

// LogFile returns the log file used while the terminal UI owns the screen.
func LogFile() string {
	return filepath.Join(GlobalDir(), "emacs-keys.log")
}

// EnsureDir creates a directory and all parents if they don't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o700)
}
