package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file, under
// os.UserConfigDir (XDG_CONFIG_HOME is respected on Linux).
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "relnotes", "config.yml"), nil
}

// ProjectConfigDir returns the project-level config directory.
func ProjectConfigDir() string {
	return ".relnotes"
}

// ProjectConfigPath returns the project-level YAML config file.
func ProjectConfigPath() string {
	return filepath.Join(ProjectConfigDir(), "config.yml")
}

// ProjectJSONConfigPath returns the project-level JSON config file, used
// when no YAML file exists.
func ProjectJSONConfigPath() string {
	return filepath.Join(ProjectConfigDir(), "config.json")
}
