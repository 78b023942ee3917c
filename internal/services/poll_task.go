package services

import (
	"context"
	"errors"
	"fmt"
	"itinerary-service/internal/ports"
	"time"
)

// ErrPollTimeout reports an ingestion task that never completed within the
// retry budget. It must surface to the caller as a failed import, never be
// dropped silently.
var ErrPollTimeout = errors.New("poll task: retry budget exhausted")

// PollTask polls the content-ingestion task endpoint until the task
// completes, fails, or the retry budget runs out.
//
// pending/processing mean "keep polling" after waiting one interval. There is
// no cancellation signal beyond ctx: once started, the loop runs to a
// terminal status or timeout.
func PollTask(ctx context.Context, client ports.IngestClient, taskID string, interval time.Duration, maxRetries int) (ports.TaskPayload, error) {
	if maxRetries <= 0 {
		maxRetries = 90
	}
	if interval <= 0 {
		interval = 2 * time.Second
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return ports.TaskPayload{}, err
		}

		task, err := client.FetchTask(ctx, taskID)
		if err != nil {
			return ports.TaskPayload{}, fmt.Errorf("poll task %q: %w", taskID, err)
		}

		switch task.Status {
		case ports.TaskCompleted:
			if task.Result == nil {
				return ports.TaskPayload{}, fmt.Errorf("poll task %q: completed without a result", taskID)
			}
			return *task.Result, nil
		case ports.TaskFailed:
			if task.Error == "" {
				task.Error = "task failed"
			}
			return ports.TaskPayload{}, fmt.Errorf("poll task %q: %s", taskID, task.Error)
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ports.TaskPayload{}, ctx.Err()
		case <-timer.C:
		}
	}

	return ports.TaskPayload{}, fmt.Errorf("poll task %q: %w", taskID, ErrPollTimeout)
}
