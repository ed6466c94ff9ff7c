// Package paths resolves the fixed per-user locations goutils reads and
// writes. Application directories follow the XDG base directory spec;
// Jupyter and venv locations match where the upstream tools look.
package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "goutils"

// ConfigFile returns the path of the optional goutils config file.
func ConfigFile() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

// LogFile returns the append-only log file path under the state directory.
func LogFile() string {
	return filepath.Join(xdg.StateHome, appName, appName+".log")
}

// URLStateFile returns the default urlcheck state file path.
func URLStateFile() string {
	return filepath.Join(xdg.ConfigHome, appName, "urlcheck.json")
}

// DefaultEnvRoot returns the directory bare venv names resolve under.
func DefaultEnvRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("detect user home: %w", err)
	}
	return filepath.Join(home, ".venvs"), nil
}

// JupyterDir returns the per-user Jupyter configuration directory.
func JupyterDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("detect user home: %w", err)
	}
	return filepath.Join(home, ".jupyter"), nil
}

// SSHDir returns the per-user ssh directory used as the keygen default.
func SSHDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("detect user home: %w", err)
	}
	return filepath.Join(home, ".ssh"), nil
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// DirExists reports whether a path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
