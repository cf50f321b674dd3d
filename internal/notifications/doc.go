// Package notifications publishes push notifications to an ntfy-compatible
// server.
//
// A Sender performs exactly one HTTP POST per request, bounded by a fixed
// five-second deadline, and never reports failure to its caller: network
// errors, timeouts, and non-2xx responses are logged as warnings and absorbed.
// Delivery is best effort. There is no retry, queueing, or batching.
package notifications
