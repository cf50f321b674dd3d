package testsupport

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// PublishedMessage captures one request received by a NtfyServer.
type PublishedMessage struct {
	Method   string
	Path     string
	Title    string
	Priority string
	Tags     string
	Body     string
	Header   http.Header
}

// NtfyServer is an httptest-backed stand-in for an ntfy server that records
// every publish request.
type NtfyServer struct {
	*httptest.Server

	mu       sync.Mutex
	status   int
	messages []PublishedMessage
}

// NewNtfyServer starts a recording server that answers 200 until told otherwise.
func NewNtfyServer(t testing.TB) *NtfyServer {
	t.Helper()

	srv := &NtfyServer{status: http.StatusOK}
	srv.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		_ = r.Body.Close()

		srv.mu.Lock()
		srv.messages = append(srv.messages, PublishedMessage{
			Method:   r.Method,
			Path:     r.URL.Path,
			Title:    r.Header.Get("X-Title"),
			Priority: r.Header.Get("X-Priority"),
			Tags:     r.Header.Get("X-Tags"),
			Body:     string(body),
			Header:   r.Header.Clone(),
		})
		status := srv.status
		srv.mu.Unlock()

		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// RespondWith changes the status code returned for subsequent requests.
func (s *NtfyServer) RespondWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// Messages returns a copy of the recorded requests in arrival order.
func (s *NtfyServer) Messages() []PublishedMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PublishedMessage, len(s.messages))
	copy(out, s.messages)
	return out
}
