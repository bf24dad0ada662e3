// ABOUTME: Standard filesystem paths for xaheen configuration
// ABOUTME: Resolves ~/.xaheen/ for global and .xaheen/ for project-local paths

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName  = ".xaheen"
	projectDirName = ".xaheen"
)

// GlobalDir returns the user-global config directory (~/.xaheen/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// ProjectDir returns the project-local config directory (.xaheen/ in
// the project root).
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, projectDirName)
}

// GlobalSettingsFile returns the path to the global settings file.
func GlobalSettingsFile() string {
	return filepath.Join(GlobalDir(), "settings.json")
}

// ProjectSettingsFile returns the path to the project settings file.
func ProjectSettingsFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), "settings.json")
}

// EnsureDir creates a directory and all parents if they don't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o700)
}
