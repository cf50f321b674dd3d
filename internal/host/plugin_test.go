package host_test

import (
	"context"
	"testing"

	"opencode-ntfy/internal/events"
	"opencode-ntfy/internal/host"
	"opencode-ntfy/internal/notifications"
	"opencode-ntfy/internal/testsupport"
)

func activate(t *testing.T, dir string, project host.Project) host.Hooks {
	t.Helper()
	var plugin host.Plugin = host.NewNotifyPlugin(notifications.NewNtfySender(nil), nil)
	return plugin.Activate(context.Background(), host.Input{Project: project, Directory: dir})
}

func TestActivateReturnsEmptyHooksWithoutConfig(t *testing.T) {
	hooks := activate(t, t.TempDir(), host.Project{ID: "test", Worktree: "/test"})
	if !hooks.Empty() {
		t.Fatal("expected empty hooks when config file does not exist")
	}
}

func TestActivateReturnsEmptyHooksWhenTopicMissing(t *testing.T) {
	dir := testsupport.NewProjectDir(t, "",
		testsupport.WithField("topic", nil),
		testsupport.WithServer("https://custom.example.com"))
	if hooks := activate(t, dir, host.Project{ID: "test"}); !hooks.Empty() {
		t.Fatal("expected empty hooks when topic is missing")
	}
}

func TestActivateSendsIdleNotification(t *testing.T) {
	server := testsupport.NewNtfyServer(t)
	dir := testsupport.NewProjectDir(t, "my-topic", testsupport.WithServer(server.URL))

	hooks := activate(t, dir, host.Project{ID: "my-project", Worktree: "/my-project"})
	if hooks.Empty() {
		t.Fatal("expected event hook")
	}
	hooks.Event(context.Background(), events.SessionIdle{SessionID: "abc123"})

	msgs := server.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(msgs))
	}
	got := msgs[0]
	if got.Path != "/my-topic" || got.Body != "Project: my-project | Session: abc123" {
		t.Fatalf("unexpected request: %+v", got)
	}
	if got.Title != "opencode: task complete" || got.Priority != "3" || got.Tags != "white_check_mark" {
		t.Fatalf("unexpected headers: %+v", got)
	}
}

func TestActivateUsesWorktreeWhenIDMissing(t *testing.T) {
	server := testsupport.NewNtfyServer(t)
	dir := testsupport.NewProjectDir(t, "my-topic", testsupport.WithServer(server.URL))

	hooks := activate(t, dir, host.Project{Worktree: "/path/to/project"})
	hooks.Event(context.Background(), events.SessionIdle{SessionID: "abc123"})

	msgs := server.Messages()
	if len(msgs) != 1 || msgs[0].Body != "Project: /path/to/project | Session: abc123" {
		t.Fatalf("unexpected requests: %+v", msgs)
	}
}

func TestActivateIgnoresUnconfiguredEvents(t *testing.T) {
	server := testsupport.NewNtfyServer(t)
	dir := testsupport.NewProjectDir(t, "my-topic",
		testsupport.WithServer(server.URL),
		testsupport.WithEvents([]string{"session.idle"}))

	hooks := activate(t, dir, host.Project{ID: "my-project"})
	hooks.Event(context.Background(), events.SessionError{SessionID: "abc123", ErrorType: "ProviderAuthError"})

	if msgs := server.Messages(); len(msgs) != 0 {
		t.Fatalf("expected no requests, got %+v", msgs)
	}
}
