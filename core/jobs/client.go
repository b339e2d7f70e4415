package jobs

import (
	"context"

	"campus-events-api/core/config"
	"campus-events-api/core/logger"

	"github.com/hibiken/asynq"
)

// Client enqueues background tasks. A nil Client drops tasks silently so
// callers never need to guard against the worker being disabled.
type Client struct {
	inner *asynq.Client
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{
		inner: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

func (c *Client) Enqueue(ctx context.Context, task *asynq.Task) {
	if c == nil || c.inner == nil {
		return
	}
	info, err := c.inner.EnqueueContext(ctx, task)
	if err != nil {
		// Background work is best-effort; the request must not fail on it.
		logger.Error("Jobs:Enqueue:Error:", "type", task.Type(), "error", err)
		return
	}
	logger.Debug("Jobs:Enqueue queued", "type", task.Type(), "id", info.ID, "queue", info.Queue)
}

func (c *Client) Close() error {
	if c == nil || c.inner == nil {
		return nil
	}
	return c.inner.Close()
}
