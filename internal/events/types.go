package events

// Type is the host runtime's event type tag, for example "session.idle".
type Type string

// Event types emitted by the host runtime.
const (
	TypeSessionCreated   Type = "session.created"
	TypeSessionUpdated   Type = "session.updated"
	TypeSessionDeleted   Type = "session.deleted"
	TypeSessionIdle      Type = "session.idle"
	TypeSessionStatus    Type = "session.status"
	TypeSessionDiff      Type = "session.diff"
	TypeSessionError     Type = "session.error"
	TypeSessionCompacted Type = "session.compacted"

	TypeMessageUpdated     Type = "message.updated"
	TypeMessageRemoved     Type = "message.removed"
	TypeMessagePartUpdated Type = "message.part.updated"
	TypeMessagePartRemoved Type = "message.part.removed"

	TypeFileEdited        Type = "file.edited"
	TypePermissionUpdated Type = "permission.updated"
	TypePermissionReplied Type = "permission.replied"
)

// Descriptor documents one known event type.
type Descriptor struct {
	Type        Type
	Description string
	// Notifies is true when the bridge turns this event into a notification.
	Notifies bool
}

var catalogue = []Descriptor{
	{Type: TypeSessionCreated, Description: "new session created"},
	{Type: TypeSessionUpdated, Description: "session metadata changed"},
	{Type: TypeSessionDeleted, Description: "session removed"},
	{Type: TypeSessionIdle, Description: "agent finished and is waiting for input", Notifies: true},
	{Type: TypeSessionStatus, Description: "session status changed"},
	{Type: TypeSessionDiff, Description: "session file differences computed"},
	{Type: TypeSessionError, Description: "session failed with an error", Notifies: true},
	{Type: TypeSessionCompacted, Description: "session history compacted"},
	{Type: TypeMessageUpdated, Description: "message added or modified"},
	{Type: TypeMessageRemoved, Description: "message deleted"},
	{Type: TypeMessagePartUpdated, Description: "streaming message part updated"},
	{Type: TypeMessagePartRemoved, Description: "message part removed"},
	{Type: TypeFileEdited, Description: "file modified by the agent"},
	{Type: TypePermissionUpdated, Description: "permission request created"},
	{Type: TypePermissionReplied, Description: "permission request answered"},
}

// Catalogue returns the known event types in a stable order.
func Catalogue() []Descriptor {
	out := make([]Descriptor, len(catalogue))
	copy(out, catalogue)
	return out
}

// Known reports whether t is a documented host event type.
func Known(t Type) bool {
	for _, d := range catalogue {
		if d.Type == t {
			return true
		}
	}
	return false
}

// Notifies reports whether events of type t are turned into notifications.
func Notifies(t Type) bool {
	for _, d := range catalogue {
		if d.Type == t {
			return d.Notifies
		}
	}
	return false
}
