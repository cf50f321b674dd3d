package host

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"opencode-ntfy/internal/events"
	"opencode-ntfy/internal/logging"
)

const maxEventBody = 1 << 20

type receiver struct {
	hooks  Hooks
	logger *slog.Logger
}

// NewReceiver exposes hooks over HTTP:
//
//	POST /event    accepts one event envelope (or {"event": envelope})
//	GET  /healthz  reports liveness
//
// The event handler responds once the hook has returned.
func NewReceiver(hooks Hooks, logger *slog.Logger) http.Handler {
	rc := &receiver{hooks: hooks, logger: logging.NewComponentLogger(logger, "receiver")}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/healthz", rc.handleHealth)
	r.Post("/event", rc.handleEvent)
	return r
}

func (rc *receiver) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

func (rc *receiver) handleEvent(w http.ResponseWriter, r *http.Request) {
	if rc.hooks.Empty() {
		rc.writeError(w, http.StatusServiceUnavailable, "notifications are disabled for this project")
		return
	}
	ct := strings.ToLower(strings.TrimSpace(r.Header.Get("Content-Type")))
	if !strings.HasPrefix(ct, "application/json") {
		rc.writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxEventBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			rc.writeError(w, http.StatusRequestEntityTooLarge, "event body too large")
			return
		}
		rc.writeError(w, http.StatusBadRequest, "read body failed")
		return
	}
	ev, err := events.Parse(body)
	if err != nil {
		rc.logger.Warn("rejecting malformed event", logging.Error(err))
		rc.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	if id := middleware.GetReqID(ctx); id != "" {
		ctx = logging.WithCorrelationID(ctx, id)
	}
	rc.hooks.Event(ctx, ev)

	rc.writeJSON(w, http.StatusAccepted, map[string]string{
		"status": "accepted",
		"type":   string(ev.Type()),
	})
}

func (rc *receiver) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		rc.logger.Warn("encode response", logging.Error(err))
	}
}

func (rc *receiver) writeError(w http.ResponseWriter, status int, message string) {
	rc.writeJSON(w, status, map[string]string{"error": message})
}
