package events_test

import (
	"errors"
	"testing"

	"opencode-ntfy/internal/events"
)

func TestParseDecodesTypedVariants(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  events.Event
	}{
		{
			name:  "idle with session",
			input: `{"type":"session.idle","properties":{"sessionID":"abc123"}}`,
			want:  events.SessionIdle{SessionID: "abc123"},
		},
		{
			name:  "idle without properties",
			input: `{"type":"session.idle"}`,
			want:  events.SessionIdle{},
		},
		{
			name:  "plugin wrapper",
			input: `{"event":{"type":"session.idle","properties":{"sessionID":"s1"}}}`,
			want:  events.SessionIdle{SessionID: "s1"},
		},
		{
			name:  "error with typed payload",
			input: `{"type":"session.error","properties":{"sessionID":"abc123","error":{"type":"ProviderAuthError"}}}`,
			want:  events.SessionError{SessionID: "abc123", ErrorType: "ProviderAuthError"},
		},
		{
			name:  "error payload not an object",
			input: `{"type":"session.error","properties":{"error":"boom"}}`,
			want:  events.SessionError{},
		},
		{
			name:  "error payload without type",
			input: `{"type":"session.error","properties":{"error":{"message":"boom"}}}`,
			want:  events.SessionError{},
		},
		{
			name:  "error payload with numeric type",
			input: `{"type":"session.error","properties":{"error":{"type":42}}}`,
			want:  events.SessionError{ErrorType: "42"},
		},
		{
			name:  "numeric session id",
			input: `{"type":"session.idle","properties":{"sessionID":7}}`,
			want:  events.SessionIdle{SessionID: "7"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := events.Parse([]byte(tc.input))
			if err != nil {
				t.Fatalf("Parse returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("unexpected event: got %#v want %#v", got, tc.want)
			}
		})
	}
}

func TestParseKeepsUnknownEventsAsUnhandled(t *testing.T) {
	got, err := events.Parse([]byte(`{"type":"file.edited","properties":{"file":"main.go"}}`))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	unhandled, ok := got.(events.Unhandled)
	if !ok {
		t.Fatalf("expected Unhandled, got %T", got)
	}
	if unhandled.Type() != events.TypeFileEdited {
		t.Fatalf("unexpected type %q", unhandled.Type())
	}
	if unhandled.Properties["file"] != "main.go" {
		t.Fatalf("expected properties to be preserved, got %v", unhandled.Properties)
	}
}

func TestParseRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not json", input: `{type: idle}`},
		{name: "missing type", input: `{"properties":{}}`},
		{name: "properties not object", input: `{"type":"session.idle","properties":[1,2]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := events.Parse([]byte(tc.input)); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	if _, err := events.Parse([]byte(`{"type":"  "}`)); !errors.Is(err, events.ErrMissingType) {
		t.Fatalf("expected ErrMissingType, got %v", err)
	}
}

func TestCatalogueMarksNotifyingTypes(t *testing.T) {
	notifying := map[events.Type]bool{}
	for _, d := range events.Catalogue() {
		if d.Notifies {
			notifying[d.Type] = true
		}
	}
	if len(notifying) != 2 || !notifying[events.TypeSessionIdle] || !notifying[events.TypeSessionError] {
		t.Fatalf("unexpected notifying set: %v", notifying)
	}
	if !events.Known("session.compacted") {
		t.Fatal("expected session.compacted to be known")
	}
	if events.Known("session.bogus") {
		t.Fatal("did not expect session.bogus to be known")
	}
}
