package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"envcheck/internal/constants"
	"envcheck/internal/version"

	"github.com/adrg/xdg"
)

// ConfigHomeOverride replaces the XDG config home, for tests.
var ConfigHomeOverride string

// GetConfigDir returns the envcheck configuration directory,
// e.g. ~/.config/envcheck.
func GetConfigDir() string {
	appName := strings.ToLower(version.ApplicationName)
	if ConfigHomeOverride != "" {
		return filepath.Join(ConfigHomeOverride, appName)
	}
	if runtime.GOOS == "darwin" {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
	return filepath.Join(xdg.ConfigHome, appName)
}

// GetConfigFilePath returns the absolute path to envcheck.toml.
func GetConfigFilePath() string {
	return filepath.Join(GetConfigDir(), constants.ConfigFileName)
}

