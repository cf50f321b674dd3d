package host_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"opencode-ntfy/internal/events"
	"opencode-ntfy/internal/host"
	"opencode-ntfy/internal/testsupport"
)

type eventLog struct {
	mu     sync.Mutex
	events []events.Event
}

func (l *eventLog) hook(_ context.Context, ev events.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) types() map[events.Type]int {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := map[events.Type]int{}
	for _, ev := range l.events {
		out[ev.Type()]++
	}
	return out
}

func TestStreamDispatchesValidLinesAndSkipsMalformed(t *testing.T) {
	input := strings.Join([]string{
		`{"type":"session.idle","properties":{"sessionID":"a"}}`,
		``,
		`not json`,
		`{"event":{"type":"session.error","properties":{"error":{"type":"X"}}}}`,
		`{"properties":{}}`,
		`{"type":"file.edited","properties":{"file":"main.go"}}`,
	}, "\n")
	log := &eventLog{}
	logger, logs := testsupport.NewLogger(t)

	stats, err := host.Stream(context.Background(), strings.NewReader(input), host.Hooks{Event: log.hook}, logger)
	if err != nil {
		t.Fatalf("Stream returned error: %v", err)
	}
	if stats.Dispatched != 3 || stats.Skipped != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	got := log.types()
	if got[events.TypeSessionIdle] != 1 || got[events.TypeSessionError] != 1 || got[events.TypeFileEdited] != 1 {
		t.Fatalf("unexpected dispatched events: %v", got)
	}
	if !strings.Contains(logs.String(), "skipping malformed event") || !strings.Contains(logs.String(), "line=3") {
		t.Fatalf("expected malformed line warning, got %q", logs.String())
	}
}

func TestStreamDrainsInputWhenInert(t *testing.T) {
	reader := strings.NewReader(`{"type":"session.idle"}` + "\n")
	stats, err := host.Stream(context.Background(), reader, host.Hooks{}, nil)
	if err != nil {
		t.Fatalf("Stream returned error: %v", err)
	}
	if stats.Dispatched != 0 {
		t.Fatalf("expected nothing dispatched, got %+v", stats)
	}
	if reader.Len() != 0 {
		t.Fatal("expected input to be drained")
	}
}

func TestStreamStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	log := &eventLog{}

	_, err := host.Stream(ctx, strings.NewReader(`{"type":"session.idle"}`+"\n"), host.Hooks{Event: log.hook}, nil)
	if err == nil {
		t.Fatal("expected context error")
	}
	if len(log.types()) != 0 {
		t.Fatal("expected no events after cancellation")
	}
}

func TestStreamEndToEnd(t *testing.T) {
	server := testsupport.NewNtfyServer(t)
	dir := testsupport.NewProjectDir(t, "my-topic", testsupport.WithServer(server.URL))
	hooks := activate(t, dir, host.Project{ID: "my-project"})

	input := `{"type":"session.idle","properties":{"sessionID":"s1"}}` + "\n" +
		`{"type":"session.idle","properties":{"sessionID":"s2"}}` + "\n"
	if _, err := host.Stream(context.Background(), strings.NewReader(input), hooks, nil); err != nil {
		t.Fatalf("Stream returned error: %v", err)
	}

	bodies := map[string]bool{}
	for _, msg := range server.Messages() {
		bodies[msg.Body] = true
	}
	if len(bodies) != 2 || !bodies["Project: my-project | Session: s1"] || !bodies["Project: my-project | Session: s2"] {
		t.Fatalf("unexpected bodies: %v", bodies)
	}
}
