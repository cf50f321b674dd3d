package events

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Event is one decoded lifecycle event. The set of implementations is closed.
type Event interface {
	Type() Type
	isEvent()
}

// SessionIdle reports that a session finished its work.
type SessionIdle struct {
	// SessionID is empty when the host omitted it.
	SessionID string
}

// SessionError reports that a session failed.
type SessionError struct {
	SessionID string
	// ErrorType is the error payload's "type" field, empty when the payload
	// was absent, not an object, or had no such field.
	ErrorType string
}

// Unhandled is any event without a typed payload.
type Unhandled struct {
	Kind       Type
	Properties map[string]any
}

func (SessionIdle) Type() Type  { return TypeSessionIdle }
func (SessionError) Type() Type { return TypeSessionError }
func (u Unhandled) Type() Type  { return u.Kind }

func (SessionIdle) isEvent()  {}
func (SessionError) isEvent() {}
func (Unhandled) isEvent()    {}

// Envelope is the wire shape the host uses for every event.
type Envelope struct {
	Type       string          `json:"type"`
	Properties json.RawMessage `json:"properties,omitempty"`
}

// ErrMissingType is returned for envelopes without a type tag.
var ErrMissingType = errors.New("event type is required")

// Parse decodes one JSON document holding either a bare envelope or the
// plugin-style {"event": envelope} wrapper.
func Parse(data []byte) (Event, error) {
	var probe struct {
		Event *Envelope `json:"event"`
		Envelope
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	if probe.Event != nil {
		return Decode(*probe.Event)
	}
	return Decode(probe.Envelope)
}

// Decode converts an envelope into its typed variant.
func Decode(env Envelope) (Event, error) {
	kind := Type(strings.TrimSpace(env.Type))
	if kind == "" {
		return nil, ErrMissingType
	}

	props, err := decodeProperties(env.Properties)
	if err != nil {
		return nil, fmt.Errorf("decode %s properties: %w", kind, err)
	}

	switch kind {
	case TypeSessionIdle:
		return SessionIdle{SessionID: stringField(props, "sessionID")}, nil
	case TypeSessionError:
		return SessionError{
			SessionID: stringField(props, "sessionID"),
			ErrorType: errorType(props["error"]),
		}, nil
	default:
		return Unhandled{Kind: kind, Properties: props}, nil
	}
}

func decodeProperties(raw json.RawMessage) (map[string]any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return map[string]any{}, nil
	}
	var props map[string]any
	if err := json.Unmarshal(trimmed, &props); err != nil {
		return nil, err
	}
	return props, nil
}

func stringField(props map[string]any, key string) string {
	switch v := props[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return stringify(v)
	}
}

// errorType extracts the "type" member of an error payload. Non-string
// values are rendered from their JSON form.
func errorType(payload any) string {
	obj, ok := payload.(map[string]any)
	if !ok {
		return ""
	}
	value, present := obj["type"]
	if !present {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return stringify(value)
}

func stringify(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
