// Package main hosts the opencode-ntfy CLI entrypoint and command graph.
//
// The Cobra-based command tree activates the notification plugin for a
// project directory and feeds it lifecycle events from stdin (run) or HTTP
// (serve). It also sends ad hoc notifications, scaffolds and validates
// configuration, and lists the known event catalogue. Process settings and
// structured logging are resolved once in the command context so subcommands
// can focus on user experience instead of wiring.
package main
