package main

import (
	"fmt"
	"net"
	"strings"

	"github.com/spf13/cobra"

	"opencode-ntfy/internal/host"
	"opencode-ntfy/internal/notifications"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var flags projectFlags
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Accept lifecycle events over HTTP",
		Long: `Activate the notification plugin for a project directory and accept events
with POST /event. The body is one JSON event envelope. GET /healthz reports
liveness.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ctx.ensureSettings()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			address := strings.TrimSpace(bind)
			if address == "" {
				address = settings.Receiver.Bind
			}

			serveCtx, stop := signalContext(cmd.Context())
			defer stop()

			plugin := host.NewNotifyPlugin(notifications.NewNtfySender(logger), logger)
			hooks := plugin.Activate(serveCtx, flags.input())
			if hooks.Empty() {
				fmt.Fprintln(cmd.ErrOrStderr(), "Notifications are disabled for this project; events will be rejected with 503")
			}

			return host.Serve(serveCtx, address, host.NewReceiver(hooks, logger), logger, func(addr net.Addr) {
				fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", addr)
			})
		},
	}

	addProjectFlags(cmd, &flags)
	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (defaults to receiver.bind from settings)")
	return cmd
}
