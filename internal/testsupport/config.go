package testsupport

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"opencode-ntfy/internal/config"
)

// ProjectOption allows callers to customize the generated project configuration.
type ProjectOption func(*projectBuilder)

type projectBuilder struct {
	fields map[string]any
	raw    *string
}

// NewProjectDir produces a temp directory holding a project configuration
// file for topic. Options adjust the document before it is written.
func NewProjectDir(t testing.TB, topic string, opts ...ProjectOption) string {
	t.Helper()

	builder := &projectBuilder{fields: map[string]any{"topic": topic}}
	for _, opt := range opts {
		opt(builder)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, config.FileName)
	if builder.raw != nil {
		WriteFile(t, path, *builder.raw)
		return dir
	}
	data, err := json.Marshal(builder.fields)
	if err != nil {
		t.Fatalf("encode project config: %v", err)
	}
	WriteFile(t, path, string(data))
	return dir
}

// WithServer sets the server field of the project configuration.
func WithServer(server any) ProjectOption {
	return func(b *projectBuilder) {
		b.fields["server"] = server
	}
}

// WithEvents sets the events field of the project configuration.
func WithEvents(events any) ProjectOption {
	return func(b *projectBuilder) {
		b.fields["events"] = events
	}
}

// WithField sets an arbitrary top-level field, or removes it when value is nil.
func WithField(key string, value any) ProjectOption {
	return func(b *projectBuilder) {
		if value == nil {
			delete(b.fields, key)
			return
		}
		b.fields[key] = value
	}
}

// WithRawConfig writes content verbatim instead of the generated document.
func WithRawConfig(content string) ProjectOption {
	return func(b *projectBuilder) {
		b.raw = &content
	}
}
