package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setupCLIEnv isolates the settings lookup under a temporary HOME and
// returns a settings file path that quiets logging for the run.
func setupCLIEnv(t *testing.T) string {
	t.Helper()

	home := filepath.Join(t.TempDir(), "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)
	t.Setenv("OPENCODE_NTFY_LOG_LEVEL", "")
	t.Setenv("OPENCODE_NTFY_LOG_FORMAT", "")

	settingsPath := filepath.Join(home, "settings.toml")
	content := "[logging]\nlevel = \"error\"\nformat = \"json\"\n"
	if err := os.WriteFile(settingsPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	return settingsPath
}

func runCLI(t *testing.T, stdin string, args []string, settingsPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	var flags []string
	if settingsPath != "" {
		flags = append(flags, "--config", settingsPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
