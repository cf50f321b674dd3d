package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_settings.toml
var sampleSettings string

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// Receiver contains configuration for the HTTP event receiver.
type Receiver struct {
	Bind string `toml:"bind"`
}

// Settings tunes the opencode-ntfy process. Nothing here changes which
// events are forwarded or how notifications look.
type Settings struct {
	Logging  Logging  `toml:"logging"`
	Receiver Receiver `toml:"receiver"`
}

// DefaultSettingsPath returns the absolute path to the default settings file location.
func DefaultSettingsPath() (string, error) {
	return expandPath(defaultSettingsPath)
}

// LoadSettings locates, parses, and validates a settings file. A missing
// file is not an error; defaults are used and exists is false.
func LoadSettings(path string) (*Settings, string, bool, error) {
	settings := DefaultSettings()

	resolvedPath, exists, err := resolveSettingsPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open settings: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&settings); err != nil {
			return nil, "", false, fmt.Errorf("parse settings: %w", err)
		}
	}

	if err := settings.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := settings.Validate(); err != nil {
		return nil, "", false, err
	}

	return &settings, resolvedPath, exists, nil
}

func resolveSettingsPath(path string) (string, bool, error) {
	if strings.TrimSpace(path) == "" {
		defaultPath, err := DefaultSettingsPath()
		if err != nil {
			return "", false, err
		}
		path = defaultPath
	}
	expanded, err := expandPath(path)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat settings: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("settings path %s is a directory", expanded)
	}
	return expanded, true, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// WriteSettingsSample writes the sample settings file to the specified location.
func WriteSettingsSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleSettings), 0o644); err != nil {
		return fmt.Errorf("write sample settings: %w", err)
	}
	return nil
}
