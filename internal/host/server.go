package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"opencode-ntfy/internal/logging"
)

// Serve runs handler on bind until ctx is done, then shuts down gracefully.
// If ready is non-nil it receives the bound address once listening.
func Serve(ctx context.Context, bind string, handler http.Handler, logger *slog.Logger, ready func(net.Addr)) error {
	logger = logging.NewComponentLogger(logger, "server")

	listener, err := net.Listen("tcp", bind)
	if err != nil {
		return fmt.Errorf("receiver listen: %w", err)
	}

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// Handlers wait for the publish deadline before responding.
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()

	logger.Info("receiver listening", slog.String("address", listener.Addr().String()))
	if ready != nil {
		ready(listener.Addr())
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("receiver serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("receiver shutdown: %w", err)
	}
	logger.Info("receiver stopped")
	return nil
}
