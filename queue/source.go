package queue

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/bhdz/workersz/worker"
)

// Source adapts a queue into a worker.ItemSource. Each call performs a
// non-blocking pop; when the queue is empty the iteration simply runs
// without an item, which keeps the loop responsive to quit signals.
//
// Pop failures are logged and reported as "no item"; the loop is never
// torn down by a transient queue error.
func Source(c Client, queue string, logger *slog.Logger) worker.ItemSource {
	if logger == nil {
		logger = slog.Default()
	}

	return func(ctx context.Context) (any, bool) {
		item, err := c.TryPop(ctx, queue)
		if err != nil {
			logger.Warn("failed to pop item", "queue", queue, "error", err)
			return nil, false
		}
		if item == nil {
			return nil, false
		}
		return item, true
	}
}

// Sink adapts the result sink into a worker.ResultFunc. Results that are
// already a *Result are published as-is to their job's channel (or the
// fallback channel when they carry no job ID); any other value is
// serialized into a Result payload stamped with workerID.
//
// Publish failures are logged; result routing is side effects only and
// must not stop the loop.
func Sink(c Client, fallbackChannel, workerID string, logger *slog.Logger) worker.ResultFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(ctx context.Context, result any) {
		if result == nil {
			return
		}

		var r Result
		switch v := result.(type) {
		case *Result:
			r = *v
		case Result:
			r = v
		default:
			payload, err := json.Marshal(v)
			if err != nil {
				logger.Warn("failed to marshal result", "error", err)
				return
			}
			r = Result{Payload: payload}
		}

		if r.WorkerID == "" {
			r.WorkerID = workerID
		}
		if r.CompletedAt == 0 {
			r.CompletedAt = time.Now().UnixMilli()
		}

		channel := fallbackChannel
		if r.JobID != "" {
			channel = ResultChannel(r.JobID)
		}

		if err := c.Publish(ctx, channel, r); err != nil {
			logger.Warn("failed to publish result", "channel", channel, "error", err)
		}
	}
}
