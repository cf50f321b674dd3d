package host

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"opencode-ntfy/internal/events"
	"opencode-ntfy/internal/logging"
)

const maxEventLine = 1 << 20

// StreamStats summarizes one Stream run.
type StreamStats struct {
	Dispatched int
	Skipped    int
}

// Stream reads newline-delimited event envelopes from r and calls hooks.Event
// for each one on its own goroutine. Blank lines are ignored and malformed
// lines are logged and skipped. Stream returns at EOF or when ctx is done,
// after every dispatched hook has returned. With empty hooks the input is
// drained and discarded.
func Stream(ctx context.Context, r io.Reader, hooks Hooks, logger *slog.Logger) (StreamStats, error) {
	var stats StreamStats
	logger = logging.NewComponentLogger(logger, "stream")

	if hooks.Empty() {
		if _, err := io.Copy(io.Discard, r); err != nil {
			return stats, fmt.Errorf("drain event stream: %w", err)
		}
		return stats, nil
	}

	var wg sync.WaitGroup
	defer wg.Wait()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEventLine)
	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}
		ev, err := events.Parse(data)
		if err != nil {
			stats.Skipped++
			logger.Warn("skipping malformed event", slog.Int("line", line), logging.Error(err))
			continue
		}
		stats.Dispatched++
		wg.Add(1)
		go func() {
			defer wg.Done()
			hooks.Event(ctx, ev)
		}()
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("read event stream: %w", err)
	}
	return stats, nil
}
