// Package config loads and validates opencode-ntfy configuration data.
//
// Two files are involved. The project file (.opencode-ntfy.json) lives in the
// directory the host runtime activates the plugin for and names the ntfy
// server, topic, and watched lifecycle events. Loading it never fails loudly:
// a missing, malformed, or mis-shaped file is reported through the logger and
// collapses to "no configuration", which leaves the bridge inert.
//
// The settings file (TOML, ~/.config/opencode-ntfy/config.toml by default)
// only tunes the process itself: log level, log format, log file, and the
// receiver bind address. It follows the usual Default, decode, normalize,
// Validate pipeline and returns real errors.
package config
