package notifications

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"opencode-ntfy/internal/logging"
)

const (
	// DefaultPriority is sent when a request leaves Priority at zero.
	DefaultPriority = 3
	// RequestTimeout bounds every publish, independent of the caller's context.
	RequestTimeout = 5 * time.Second

	headerTitle    = "X-Title"
	headerPriority = "X-Priority"
	headerTags     = "X-Tags"
)

// Request is one notification to publish.
type Request struct {
	Server   string
	Topic    string
	Title    string
	Message  string
	Priority int
	Tags     []string
}

// URL returns the publish endpoint for the request.
func (r Request) URL() string {
	return strings.TrimRight(r.Server, "/") + "/" + r.Topic
}

// Outcome is the terminal state of one publish attempt.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeTimedOut  Outcome = "timed_out"
	OutcomeFailed    Outcome = "failed"
)

// Sender delivers notification requests. Send returns once the request has
// completed, failed, or timed out; it reports nothing back.
type Sender interface {
	Send(ctx context.Context, req Request)
}

// Option customizes a NtfySender.
type Option func(*NtfySender)

// WithHTTPClient replaces the HTTP client used for publishing.
func WithHTTPClient(client *http.Client) Option {
	return func(s *NtfySender) {
		if client != nil {
			s.client = client
		}
	}
}

// WithTimeout overrides the publish deadline. Intended for tests.
func WithTimeout(timeout time.Duration) Option {
	return func(s *NtfySender) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// NtfySender publishes requests over HTTP.
type NtfySender struct {
	client  *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

// NewNtfySender builds a sender that logs through logger.
func NewNtfySender(logger *slog.Logger, opts ...Option) *NtfySender {
	s := &NtfySender{
		client:  &http.Client{},
		timeout: RequestTimeout,
		logger:  logging.NewComponentLogger(logger, "ntfy"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send publishes req once. Cancelling ctx does not abort the request; only
// the publish deadline does.
func (s *NtfySender) Send(ctx context.Context, req Request) {
	if s == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.WithContext(ctx, s.logger).With(slog.String("url", req.URL()))

	outcome, err := s.publish(ctx, req)
	var statusErr *statusError
	switch {
	case errors.As(err, &statusErr):
		logger.Warn("ntfy server returned non-2xx status",
			slog.String(logging.FieldOutcome, string(outcome)),
			slog.Int("status", statusErr.code),
			slog.String("body", statusErr.body),
		)
	case err != nil:
		logger.Warn("failed to send notification",
			slog.String(logging.FieldOutcome, string(outcome)),
			logging.Error(err),
		)
	default:
		logger.Debug("notification sent", slog.String(logging.FieldOutcome, string(outcome)))
	}
}

// statusError reports a non-2xx reply from the server.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	if e.body == "" {
		return fmt.Sprintf("ntfy server returned non-2xx status %d", e.code)
	}
	return fmt.Sprintf("ntfy server returned non-2xx status %d: %s", e.code, e.body)
}

func (s *NtfySender) publish(ctx context.Context, data Request) (outcome Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			outcome, err = OutcomeFailed, fmt.Errorf("publish panicked: %v", r)
		}
	}()

	reqCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, data.URL(), strings.NewReader(data.Message))
	if err != nil {
		return OutcomeFailed, fmt.Errorf("build ntfy request: %w", err)
	}
	priority := data.Priority
	if priority == 0 {
		priority = DefaultPriority
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	req.Header.Set(headerTitle, data.Title)
	req.Header.Set(headerPriority, strconv.Itoa(priority))
	req.Header.Set(headerTags, strings.Join(data.Tags, ","))

	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return OutcomeTimedOut, fmt.Errorf("send ntfy notification: timed out after %s", s.timeout)
		}
		return OutcomeFailed, fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return OutcomeFailed, &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(body))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return OutcomeCompleted, nil
}

// Discard is a Sender that drops every request.
type Discard struct{}

func (Discard) Send(context.Context, Request) {}
