package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"

	"envcheck/internal/constants"
	"envcheck/internal/paths"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
)

// AppConfig holds the settings read from envcheck.toml.
type AppConfig struct {
	Files    FilesConfig    `toml:"files"`
	Fix      FixConfig      `toml:"fix"`
	Validate ValidateConfig `toml:"validate"`
	// LogFile receives a plain-text copy of the log. Empty disables it.
	LogFile string `toml:"log_file"`

	// Path is where the configuration was loaded from, not saved to TOML
	Path string `toml:"-"`
}

// FilesConfig holds the default file locations.
type FilesConfig struct {
	Env     string `toml:"env"`
	Example string `toml:"example"`
}

// FixConfig holds defaults for the fix command.
type FixConfig struct {
	Interactive bool `toml:"interactive"`
	Backup      bool `toml:"backup"`
	TUI         bool `toml:"tui"`
}

// ValidateConfig holds defaults for the validate command.
type ValidateConfig struct {
	InferTypes bool   `toml:"infer_types"`
	Output     string `toml:"output"`
}

// Default returns the built-in configuration.
func Default() AppConfig {
	return AppConfig{
		Files: FilesConfig{
			Env:     constants.EnvFileName,
			Example: constants.EnvExampleFileName,
		},
		Fix: FixConfig{
			Interactive: true,
		},
		Validate: ValidateConfig{
			Output: constants.OutputText,
		},
	}
}

// ExpandVariables expands variables in configured paths.
// It supports:
// - ${XDG_CONFIG_HOME} -> xdg.ConfigHome
// - ${XDG_DATA_HOME}   -> xdg.DataHome
// - ${XDG_STATE_HOME}  -> xdg.StateHome
// - ${XDG_CACHE_HOME}  -> xdg.CacheHome
// - ${HOME}            -> os.UserHomeDir()
// - ${USER}            -> Current username
// Anything else expands to the empty string.
func ExpandVariables(val string) string {
	mapper := func(varName string) string {
		switch varName {
		case "XDG_CONFIG_HOME":
			return xdg.ConfigHome
		case "XDG_DATA_HOME":
			return xdg.DataHome
		case "XDG_STATE_HOME":
			return xdg.StateHome
		case "XDG_CACHE_HOME":
			return xdg.CacheHome
		case "HOME":
			home, err := os.UserHomeDir()
			if err != nil {
				return ""
			}
			return home
		case "USER":
			u, err := user.Current()
			if err != nil {
				return os.Getenv("USERNAME") // Fallback for Windows
			}
			return u.Username
		}
		return ""
	}
	return os.Expand(val, mapper)
}

// LoadAppConfig reads the configuration. An empty path means the default
// location, which is created with default values when missing. An explicit
// path must exist.
func LoadAppConfig(path string) (AppConfig, error) {
	conf := Default()
	explicit := path != ""
	if !explicit {
		path = paths.GetConfigFilePath()
	}
	conf.Path = path

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &conf); err != nil {
			return conf, fmt.Errorf("parsing %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		if err := SaveAppConfig(conf); err != nil {
			return conf, err
		}
	default:
		return conf, fmt.Errorf("reading %s: %w", path, err)
	}

	conf.Files.Env = ExpandVariables(conf.Files.Env)
	conf.Files.Example = ExpandVariables(conf.Files.Example)
	conf.LogFile = ExpandVariables(conf.LogFile)
	return conf, nil
}

// SaveAppConfig writes the configuration to conf.Path, or to the default
// location when Path is empty.
func SaveAppConfig(conf AppConfig) error {
	path := conf.Path
	if path == "" {
		path = paths.GetConfigFilePath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(conf)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
