package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"opencode-ntfy/internal/config"
	"opencode-ntfy/internal/events"
	"opencode-ntfy/internal/logging"
	"opencode-ntfy/internal/notifications"
)

const (
	titleTaskComplete = "opencode: task complete"
	titleError        = "opencode: error"

	priorityIdle  = 3
	priorityError = 4

	tagIdle  = "white_check_mark"
	tagError = "x"

	fallbackProject      = "unknown"
	fallbackIdleSession  = "unknown"
	fallbackErrorSession = "n/a"
	fallbackErrorType    = "unknown"
)

// ProjectInfo is the host's description of the activated project.
type ProjectInfo struct {
	ID       string
	Worktree string
}

// Name resolves the label used in notification messages: the project ID,
// then the worktree path, then "unknown".
func (p ProjectInfo) Name() string {
	if id := strings.TrimSpace(p.ID); id != "" {
		return id
	}
	if worktree := strings.TrimSpace(p.Worktree); worktree != "" {
		return worktree
	}
	return fallbackProject
}

// Notifier forwards configured lifecycle events to a Sender.
type Notifier struct {
	cfg         config.Config
	projectName string
	sender      notifications.Sender
	logger      *slog.Logger
}

// New returns a Notifier for cfg, or false when cfg is absent or has no
// usable topic. The decision is final for the activation.
func New(cfg *config.Config, project ProjectInfo, sender notifications.Sender, logger *slog.Logger) (*Notifier, bool) {
	logger = logging.NewComponentLogger(logger, "bridge")
	if cfg == nil {
		logger.Warn("no valid config found, notifications disabled")
		return nil, false
	}
	if !cfg.Enabled() {
		logger.Warn("topic is required in config, notifications disabled")
		return nil, false
	}
	if sender == nil {
		sender = notifications.Discard{}
	}

	snapshot := *cfg
	snapshot.Events = append([]string(nil), cfg.Events...)

	n := &Notifier{
		cfg:         snapshot,
		projectName: project.Name(),
		sender:      sender,
		logger:      logger,
	}
	logger.Info("notifications enabled",
		slog.String("project", n.projectName),
		slog.String("server", snapshot.Server),
		slog.Any("events", snapshot.Events),
	)
	return n, true
}

// ProjectName returns the project label resolved at construction.
func (n *Notifier) ProjectName() string {
	return n.projectName
}

// HandleEvent forwards ev when it is watched and has a notification mapping.
// It returns after the send completes, fails, or times out.
func (n *Notifier) HandleEvent(ctx context.Context, ev events.Event) {
	if n == nil || ev == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := logging.CorrelationIDFromContext(ctx); !ok {
		ctx = logging.WithCorrelationID(ctx, uuid.NewString())
	}
	logger := logging.WithContext(ctx, n.logger).With(slog.String(logging.FieldEventType, string(ev.Type())))

	if !n.cfg.Watches(string(ev.Type())) {
		logger.Debug("event not watched")
		return
	}

	req, ok := Notification(ev, n.projectName, &n.cfg)
	if !ok {
		// Watched but without a mapping: nothing is sent.
		logger.Debug("event watched but not forwarded", slog.String("reason", "no mapping"))
		return
	}

	logger.Debug("forwarding event", slog.String("title", req.Title))
	n.sender.Send(ctx, req)
}

// Notification maps ev to a request for cfg's server and topic. It reports
// false for event kinds that have no mapping.
func Notification(ev events.Event, projectName string, cfg *config.Config) (notifications.Request, bool) {
	req := notifications.Request{Server: cfg.Server, Topic: cfg.Topic}

	switch e := ev.(type) {
	case events.SessionIdle:
		req.Title = titleTaskComplete
		req.Message = fmt.Sprintf("Project: %s | Session: %s", projectName, orDefault(e.SessionID, fallbackIdleSession))
		req.Priority = priorityIdle
		req.Tags = []string{tagIdle}
	case events.SessionError:
		req.Title = titleError
		req.Message = fmt.Sprintf("Project: %s | Session: %s | Error: %s",
			projectName,
			orDefault(e.SessionID, fallbackErrorSession),
			orDefault(e.ErrorType, fallbackErrorType),
		)
		req.Priority = priorityError
		req.Tags = []string{tagError}
	default:
		return notifications.Request{}, false
	}
	return req, true
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
