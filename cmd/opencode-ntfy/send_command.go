package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"opencode-ntfy/internal/config"
	"opencode-ntfy/internal/logging"
	"opencode-ntfy/internal/notifications"
)

func newSendCommand(ctx *commandContext) *cobra.Command {
	var dir string
	var title string
	var message string
	var priority int
	var tags []string

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send one notification using the project configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if priority < 0 || priority > 5 {
				return fmt.Errorf("priority must be between 1 and 5 (0 for the default), got %d", priority)
			}

			cfg, ok := config.Load(dir, logging.NewComponentLogger(logger, "config"))
			if !ok || !cfg.Enabled() {
				return errors.New("no usable configuration found; create one with `opencode-ntfy config init`")
			}

			req := notifications.Request{
				Server:   cfg.Server,
				Topic:    cfg.Topic,
				Title:    strings.TrimSpace(title),
				Message:  message,
				Priority: priority,
				Tags:     tags,
			}
			notifications.NewNtfySender(logger).Send(cmd.Context(), req)
			fmt.Fprintf(cmd.OutOrStdout(), "Notification submitted to %s (delivery is best effort; failures are logged)\n", req.URL())
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Project directory holding "+config.FileName)
	cmd.Flags().StringVar(&title, "title", "opencode-ntfy: test", "Notification title")
	cmd.Flags().StringVarP(&message, "message", "m", "Notification system test", "Notification body")
	cmd.Flags().IntVarP(&priority, "priority", "p", 0, "Priority 1-5 (0 sends the default, 3)")
	cmd.Flags().StringSliceVar(&tags, "tags", []string{"test_tube"}, "Comma-separated tags")
	return cmd
}
