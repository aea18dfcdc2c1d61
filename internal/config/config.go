package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const appDir = "notebook.md"

// Settings holds the user-editable options read from config.yaml.
type Settings struct {
	User           string `yaml:"user"`
	LogLevel       string `yaml:"logLevel"`
	NotebookColour string `yaml:"notebookColour"`
}

// Defaults returns the settings used when no config file exists.
func Defaults() Settings {
	return Settings{
		User:           "1",
		LogLevel:       "info",
		NotebookColour: "#FFFFFF",
	}
}

// GetDataDir resolves the base directory for all notebook storage. It checks
// NOTEBOOK_DIR first, then XDG paths, and finally falls back to the user's home
// directory.
func GetDataDir() string {
	if explicit := os.Getenv("NOTEBOOK_DIR"); explicit != "" {
		return explicit
	}

	xdg.Reload()

	dataHome := xdg.DataHome
	if dataHome == "" {
		home := xdg.Home
		if home == "" {
			var err error
			home, err = os.UserHomeDir()
			if err != nil {
				return filepath.Join(os.TempDir(), appDir)
			}
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, appDir)
}

// GetDBPath returns the absolute path to the SQLite database file.
func GetDBPath() string {
	return filepath.Join(GetDataDir(), "index.db")
}

// GetBackupsDir returns the directory that holds exported snapshots.
func GetBackupsDir() string {
	return filepath.Join(GetDataDir(), "backups")
}

// GetConfigPath returns the settings file location. NOTEBOOK_CONFIG wins over
// the XDG config directory.
func GetConfigPath() string {
	if explicit := os.Getenv("NOTEBOOK_CONFIG"); explicit != "" {
		return explicit
	}
	xdg.Reload()
	return filepath.Join(xdg.ConfigHome, appDir, "config.yaml")
}

// Load reads the settings file, filling unset fields from Defaults. A missing
// file is not an error. NOTEBOOK_LOG_LEVEL overrides the file's log level.
func Load() (Settings, error) {
	settings := Defaults()
	path := GetConfigPath()

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return settings, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		var file Settings
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return settings, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		settings = merge(settings, file)
	}

	if level := os.Getenv("NOTEBOOK_LOG_LEVEL"); level != "" {
		settings.LogLevel = level
	}
	settings.LogLevel = strings.ToLower(strings.TrimSpace(settings.LogLevel))
	return settings, nil
}

// Save writes settings to the config path, creating its directory.
func Save(settings Settings) error {
	path := GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	raw, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

func merge(base, file Settings) Settings {
	if file.User != "" {
		base.User = file.User
	}
	if file.LogLevel != "" {
		base.LogLevel = file.LogLevel
	}
	if file.NotebookColour != "" {
		base.NotebookColour = file.NotebookColour
	}
	return base
}
