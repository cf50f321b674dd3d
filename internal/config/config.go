package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"opencode-ntfy/internal/events"
)

// Config is the validated project configuration. It is immutable once loaded.
type Config struct {
	Server string   `json:"server"`
	Topic  string   `json:"topic"`
	Events []string `json:"events"`
}

// Load reads FileName from dir and returns the validated configuration.
//
// Load never returns an error: an unreadable file, malformed JSON, or a schema
// violation is logged as a warning and reported as (nil, false). Defaults for
// server and events are applied only to a file that passed validation.
func Load(dir string, logger *slog.Logger) (*Config, bool) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	path := filepath.Join(dir, FileName)

	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("config file not found", slog.String("path", path), slog.String("error", err.Error()))
		return nil, false
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		logger.Warn("invalid JSON in config file", slog.String("path", path), slog.String("error", err.Error()))
		return nil, false
	}

	cfg, err := fromDocument(parsed)
	if err != nil {
		logger.Warn("invalid config structure", slog.String("path", path), slog.String("reason", err.Error()))
		return nil, false
	}
	return cfg, true
}

// fromDocument checks the decoded JSON document against the project schema
// and applies defaults.
func fromDocument(doc any) (*Config, error) {
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, errors.New("top-level value must be an object")
	}

	cfg := &Config{Server: DefaultServer}

	if value, present := obj["server"]; present {
		server, ok := value.(string)
		if !ok {
			return nil, errors.New("server must be a string")
		}
		cfg.Server = strings.TrimSpace(server)
	}

	topic, ok := obj["topic"].(string)
	if !ok {
		return nil, errors.New("topic must be a string")
	}
	cfg.Topic = strings.TrimSpace(topic)

	value, present := obj["events"]
	if !present {
		cfg.Events = DefaultEvents()
		return cfg, nil
	}
	items, ok := value.([]any)
	if !ok {
		return nil, errors.New("events must be an array")
	}
	cfg.Events = make([]string, 0, len(items))
	for i, item := range items {
		name, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("events[%d] must be a string", i)
		}
		cfg.Events = append(cfg.Events, name)
	}
	return cfg, nil
}

// Enabled reports whether the configuration names a usable topic.
func (c *Config) Enabled() bool {
	return c != nil && c.Topic != ""
}

// Watches reports whether eventType is in the configured event set.
func (c *Config) Watches(eventType string) bool {
	if c == nil {
		return false
	}
	return slices.Contains(c.Events, eventType)
}

// UnknownEvents lists configured event names that the host runtime is not
// known to emit. Such names are kept; they simply never match.
func (c *Config) UnknownEvents() []string {
	if c == nil {
		return nil
	}
	var unknown []string
	for _, name := range c.Events {
		if !events.Known(events.Type(name)) {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// Path returns the project configuration path for dir.
func Path(dir string) string {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	return filepath.Join(dir, FileName)
}

// WriteSample writes a starter project file into dir. An empty topic leaves
// a placeholder the user must replace. Existing files are kept unless
// overwrite is set.
func WriteSample(dir, topic string, overwrite bool) (string, error) {
	path := Path(dir)
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return path, fmt.Errorf("check config path: %w", err)
		}
	}

	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = "replace-with-a-private-topic"
	}
	sample := Config{
		Server: DefaultServer,
		Topic:  topic,
		Events: DefaultEvents(),
	}
	data, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		return path, fmt.Errorf("encode sample config: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return path, fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return path, fmt.Errorf("write sample config: %w", err)
	}
	return path, nil
}
