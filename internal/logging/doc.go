// Package logging assembles structured slog loggers for opencode-ntfy.
//
// It owns the console and JSON handlers, level parsing, and output plumbing,
// and exposes context helpers so every log line written while handling one
// lifecycle event carries the same correlation ID. Logs go to stderr unless
// configured otherwise: stdout belongs to command output, and the stream
// adapter reads its events from stdin.
//
// The package also provides a no-op logger for tests and wiring code that
// cannot fail.
package logging
