// Package events models the lifecycle events the host runtime emits.
//
// The host delivers every event as a loosely typed {type, properties}
// envelope. Decode turns that envelope into one variant of a closed set:
// SessionIdle and SessionError carry the fields the bridge maps into
// notifications, and Unhandled preserves everything else untouched so callers
// can log or ignore it.
package events
