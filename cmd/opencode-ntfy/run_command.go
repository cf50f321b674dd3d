package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"opencode-ntfy/internal/host"
	"opencode-ntfy/internal/notifications"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Forward newline-delimited JSON events read from stdin",
		Long: `Activate the notification plugin for a project directory and read one
event per line from stdin, for example:

  {"type":"session.idle","properties":{"sessionID":"abc123"}}

Lines may also use the plugin form {"event":{...}}. Malformed lines are
logged and skipped. The command exits at end of input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			runCtx, stop := signalContext(cmd.Context())
			defer stop()

			plugin := host.NewNotifyPlugin(notifications.NewNtfySender(logger), logger)
			hooks := plugin.Activate(runCtx, flags.input())

			stats, err := host.Stream(runCtx, cmd.InOrStdin(), hooks, logger)
			logger.Info("event stream finished",
				slog.Int("dispatched", stats.Dispatched),
				slog.Int("skipped", stats.Skipped),
			)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	addProjectFlags(cmd, &flags)
	return cmd
}
