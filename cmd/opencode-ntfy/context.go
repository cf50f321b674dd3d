package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"opencode-ntfy/internal/config"
	"opencode-ntfy/internal/host"
	"opencode-ntfy/internal/logging"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	settingsOnce sync.Once
	settings     *config.Settings
	settingsErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureSettings() (*config.Settings, error) {
	c.settingsOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		settings, _, _, err := config.LoadSettings(path)
		if err != nil {
			c.settingsErr = err
			return
		}
		if c.logLevelFlag != nil {
			if level := strings.ToLower(strings.TrimSpace(*c.logLevelFlag)); level != "" {
				settings.Logging.Level = level
				if err := settings.Validate(); err != nil {
					c.settingsErr = fmt.Errorf("--log-level: %w", err)
					return
				}
			}
		}
		c.settings = settings
	})
	return c.settings, c.settingsErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		settings, err := c.ensureSettings()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromSettings(settings)
		if err != nil {
			c.loggerErr = fmt.Errorf("init logger: %w", err)
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// projectFlags carries the host activation input for commands that
// activate the plugin.
type projectFlags struct {
	dir       string
	projectID string
	worktree  string
}

func addProjectFlags(cmd *cobra.Command, flags *projectFlags) {
	cmd.Flags().StringVarP(&flags.dir, "dir", "d", ".", "Project directory holding "+config.FileName)
	cmd.Flags().StringVar(&flags.projectID, "project-id", "", "Project identifier shown in notifications")
	cmd.Flags().StringVar(&flags.worktree, "worktree", "", "Project worktree path (defaults to the absolute project directory)")
}

// input builds the activation input. Without an explicit ID or worktree the
// absolute project directory stands in for the worktree.
func (f projectFlags) input() host.Input {
	dir := strings.TrimSpace(f.dir)
	if dir == "" {
		dir = "."
	}
	in := host.Input{
		Project:   host.Project{ID: strings.TrimSpace(f.projectID), Worktree: strings.TrimSpace(f.worktree)},
		Directory: dir,
	}
	if in.Project.ID == "" && in.Project.Worktree == "" {
		if abs, err := filepath.Abs(dir); err == nil {
			in.Project.Worktree = abs
		}
	}
	return in
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, unix.SIGTERM)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// fallbackLogger returns the configured logger, or a console logger on
// stderr when the settings cannot be loaded.
func (c *commandContext) fallbackLogger() *slog.Logger {
	if logger, err := c.ensureLogger(); err == nil {
		return logger
	}
	logger, err := logging.New(logging.Options{Level: "info", Format: "console"})
	if err != nil {
		return logging.NewNop()
	}
	return logger
}
