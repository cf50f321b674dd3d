// Package bridge turns host lifecycle events into ntfy notifications.
//
// A Notifier is built once per activation from the project configuration and
// the host's project description. It filters each event against the
// configured event set, maps the handled kinds to a notification request, and
// waits for the sender before returning. It holds no mutable state, so
// concurrent HandleEvent calls need no coordination.
package bridge
