package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"opencode-ntfy/internal/config"
	"opencode-ntfy/internal/logging"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand(ctx))
	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand(ctx *commandContext) *cobra.Command {
	var dir string
	var topic string
	var overwrite bool
	var settingsOnly bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a project configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if settingsOnly {
				return initSettings(cmd, ctx, overwrite)
			}

			path, err := config.WriteSample(dir, topic, overwrite)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote project configuration to %s\n", path)
			if strings.TrimSpace(topic) == "" {
				fmt.Fprintln(out, "Edit the file to set a private topic before running opencode-ntfy.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Project directory")
	cmd.Flags().StringVarP(&topic, "topic", "t", "", "ntfy topic to publish to")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	cmd.Flags().BoolVar(&settingsOnly, "settings", false, "Write the process settings file instead (see --config)")
	return cmd
}

func initSettings(cmd *cobra.Command, ctx *commandContext, overwrite bool) error {
	target := ""
	if ctx.configFlag != nil {
		target = strings.TrimSpace(*ctx.configFlag)
	}
	if target == "" {
		defaultPath, err := config.DefaultSettingsPath()
		if err != nil {
			return fmt.Errorf("determine default settings path: %w", err)
		}
		target = defaultPath
	} else {
		expanded, err := config.ExpandPath(target)
		if err != nil {
			return fmt.Errorf("resolve settings path: %w", err)
		}
		target = expanded
	}

	if !overwrite {
		if _, err := os.Stat(target); err == nil {
			return fmt.Errorf("settings file already exists at %s (use --overwrite to replace it)", target)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("check settings path: %w", err)
		}
	}
	if err := config.WriteSettingsSample(target); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample settings to %s\n", target)
	return nil
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:         "validate",
		Short:       "Validate the project configuration and process settings",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			var failed bool

			lines := renderSectionHeader("Settings", colorize)
			var settingsPath string
			if ctx.configFlag != nil {
				settingsPath = *ctx.configFlag
			}
			_, resolved, exists, err := config.LoadSettings(settingsPath)
			switch {
			case err != nil:
				failed = true
				lines = append(lines, renderStatusLine("Settings", statusError, err.Error(), colorize))
			case !exists:
				lines = append(lines, renderStatusLine("Settings", statusInfo, resolved+" (not found, defaults used)", colorize))
			default:
				lines = append(lines, renderStatusLine("Settings", statusOK, resolved, colorize))
			}

			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Project", colorize)...)
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolve project directory: %w", err)
			}
			if err := unix.Access(absDir, unix.R_OK|unix.X_OK); err != nil {
				failed = true
				lines = append(lines, renderStatusLine("Directory", statusError, fmt.Sprintf("%s: %v", absDir, err), colorize))
			} else {
				lines = append(lines, renderStatusLine("Directory", statusOK, absDir, colorize))
			}

			// Loader warnings explain why a file was rejected.
			cfg, ok := config.Load(absDir, logging.NewComponentLogger(ctx.fallbackLogger(), "config"))
			switch {
			case !ok:
				failed = true
				lines = append(lines, renderStatusLine("Config file", statusError, config.Path(absDir)+" is missing or invalid", colorize))
			case !cfg.Enabled():
				failed = true
				lines = append(lines, renderStatusLine("Config file", statusOK, config.Path(absDir), colorize))
				lines = append(lines, renderStatusLine("Topic", statusError, "missing; notifications disabled", colorize))
			default:
				lines = append(lines, renderStatusLine("Config file", statusOK, config.Path(absDir), colorize))
				lines = append(lines, renderStatusLine("Topic", statusOK, cfg.Topic, colorize))
				lines = append(lines, renderStatusLine("Server", statusInfo, cfg.Server, colorize))
				if len(cfg.Events) == 0 {
					lines = append(lines, renderStatusLine("Events", statusWarn, "empty; no notification will ever fire", colorize))
				} else {
					lines = append(lines, renderStatusLine("Events", statusOK, strings.Join(cfg.Events, ", "), colorize))
				}
				if unknown := cfg.UnknownEvents(); len(unknown) > 0 {
					lines = append(lines, renderStatusLine("Unknown events", statusWarn, strings.Join(unknown, ", "), colorize))
				}
				if unmapped := unmappedEvents(cfg.Events); len(unmapped) > 0 {
					lines = append(lines, renderStatusLine("Not forwarded", statusWarn, strings.Join(unmapped, ", ")+" (no notification mapping)", colorize))
				}
			}

			for _, line := range lines {
				fmt.Fprintln(out, line)
			}
			if failed {
				return errors.New("configuration invalid")
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Project directory")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	var dir string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective project configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			cfg, ok := config.Load(dir, logging.NewComponentLogger(logger, "config"))
			if !ok {
				return fmt.Errorf("no valid configuration at %s", config.Path(dir))
			}
			if asJSON {
				return writeJSON(cmd, cfg)
			}

			events := strings.Join(cfg.Events, ", ")
			if events == "" {
				events = "(none)"
			}
			topic := cfg.Topic
			if topic == "" {
				topic = "(missing)"
			}
			rows := [][]string{
				{"server", cfg.Server},
				{"topic", topic},
				{"events", events},
				{"enabled", yesNo(cfg.Enabled())},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Project directory")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
