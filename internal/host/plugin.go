package host

import (
	"context"
	"log/slog"
	"strings"

	"opencode-ntfy/internal/bridge"
	"opencode-ntfy/internal/config"
	"opencode-ntfy/internal/events"
	"opencode-ntfy/internal/logging"
	"opencode-ntfy/internal/notifications"
)

// Project is the host's description of the project a plugin is activated for.
type Project struct {
	ID       string `json:"id,omitempty"`
	Worktree string `json:"worktree,omitempty"`
}

// Input is passed to Activate.
type Input struct {
	Project   Project `json:"project"`
	Directory string  `json:"directory,omitempty"`
}

// EventHook receives one lifecycle event and returns when it has been handled.
type EventHook func(ctx context.Context, ev events.Event)

// Hooks are the callbacks a plugin registers. The zero value registers nothing.
type Hooks struct {
	Event EventHook
}

// Empty reports whether no hook is registered.
func (h Hooks) Empty() bool {
	return h.Event == nil
}

// Plugin is the activation contract the host runtime calls once per project.
type Plugin interface {
	Activate(ctx context.Context, in Input) Hooks
}

// NotifyPlugin forwards lifecycle events as ntfy notifications.
type NotifyPlugin struct {
	sender notifications.Sender
	logger *slog.Logger
}

// NewNotifyPlugin builds the notification plugin around sender.
func NewNotifyPlugin(sender notifications.Sender, logger *slog.Logger) *NotifyPlugin {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &NotifyPlugin{sender: sender, logger: logger}
}

// Activate loads the project configuration from in.Directory (default ".")
// and returns the event hook, or empty Hooks when notifications are disabled.
func (p *NotifyPlugin) Activate(_ context.Context, in Input) Hooks {
	dir := strings.TrimSpace(in.Directory)
	if dir == "" {
		dir = "."
	}
	logger := logging.NewComponentLogger(p.logger, "config")
	cfg, _ := config.Load(dir, logger)

	notifier, ok := bridge.New(cfg, bridge.ProjectInfo{ID: in.Project.ID, Worktree: in.Project.Worktree}, p.sender, p.logger)
	if !ok {
		return Hooks{}
	}
	return Hooks{Event: notifier.HandleEvent}
}
