package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"opencode-ntfy/internal/config"
)

func TestLoadSettingsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OPENCODE_NTFY_LOG_LEVEL", "")
	t.Setenv("OPENCODE_NTFY_LOG_FORMAT", "")

	settings, path, exists, err := config.LoadSettings("")
	if err != nil {
		t.Fatalf("LoadSettings returned error: %v", err)
	}
	if exists {
		t.Fatal("expected settings file to be absent in temp HOME")
	}
	if !strings.HasSuffix(path, filepath.Join(".config", "opencode-ntfy", "config.toml")) {
		t.Fatalf("unexpected default path: %q", path)
	}
	want := config.DefaultSettings()
	if *settings != want {
		t.Fatalf("unexpected settings: got %+v want %+v", *settings, want)
	}
}

func TestLoadSettingsCustomPath(t *testing.T) {
	t.Setenv("OPENCODE_NTFY_LOG_LEVEL", "")
	t.Setenv("OPENCODE_NTFY_LOG_FORMAT", "")
	home := t.TempDir()
	t.Setenv("HOME", home)

	custom := config.Settings{
		Logging: config.Logging{
			Level:  "DEBUG",
			Format: " json ",
			File:   "~/logs/ntfy.log",
		},
		Receiver: config.Receiver{Bind: "0.0.0.0:9000"},
	}
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal settings: %v", err)
	}
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	settings, resolved, exists, err := config.LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if settings.Logging.Level != "debug" || settings.Logging.Format != "json" {
		t.Fatalf("expected normalized logging values, got %+v", settings.Logging)
	}
	if settings.Logging.File != filepath.Join(home, "logs", "ntfy.log") {
		t.Fatalf("expected expanded log file, got %q", settings.Logging.File)
	}
	if settings.Receiver.Bind != "0.0.0.0:9000" {
		t.Fatalf("unexpected bind: %q", settings.Receiver.Bind)
	}
}

func TestLoadSettingsEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OPENCODE_NTFY_LOG_LEVEL", "warn")
	t.Setenv("OPENCODE_NTFY_LOG_FORMAT", "json")

	settings, _, _, err := config.LoadSettings("")
	if err != nil {
		t.Fatalf("LoadSettings returned error: %v", err)
	}
	if settings.Logging.Level != "warn" || settings.Logging.Format != "json" {
		t.Fatalf("expected env overrides, got %+v", settings.Logging)
	}
}

func TestLoadSettingsRejectsInvalidValues(t *testing.T) {
	t.Setenv("OPENCODE_NTFY_LOG_LEVEL", "")
	t.Setenv("OPENCODE_NTFY_LOG_FORMAT", "")

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "bad toml", content: "[logging\nlevel=", wantErr: "parse settings"},
		{name: "bad format", content: "[logging]\nformat = \"xml\"\n", wantErr: "logging.format"},
		{name: "bad level", content: "[logging]\nlevel = \"loud\"\n", wantErr: "logging.level"},
		{name: "bad bind", content: "[receiver]\nbind = \"nope\"\n", wantErr: "receiver.bind"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write settings: %v", err)
			}
			_, _, _, err := config.LoadSettings(path)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestWriteSettingsSampleLoads(t *testing.T) {
	t.Setenv("OPENCODE_NTFY_LOG_LEVEL", "")
	t.Setenv("OPENCODE_NTFY_LOG_FORMAT", "")

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.WriteSettingsSample(path); err != nil {
		t.Fatalf("WriteSettingsSample returned error: %v", err)
	}
	settings, _, exists, err := config.LoadSettings(path)
	if err != nil {
		t.Fatalf("sample settings should load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if *settings != config.DefaultSettings() {
		t.Fatalf("sample should match defaults, got %+v", *settings)
	}
}
