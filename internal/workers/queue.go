// internal/workers/queue.go
package workers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ammerola/stockledger/internal/core/domain"
	"github.com/ammerola/stockledger/internal/core/ports"
	"github.com/ammerola/stockledger/internal/pkg/config"
)

var _ ports.TaskQueue = (*Queue)(nil)

// Queue enqueues report jobs for the worker process.
type Queue struct {
	client   *asynq.Client
	redis    *redis.Client
	retryMax int
	now      func() time.Time
}

// RedisOpt converts the worker settings into asynq connection options.
func RedisOpt(cfg config.WorkerConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
}

// NewQueue connects an asynq client and a plain Redis client used for
// health checks.
func NewQueue(cfg config.WorkerConfig) *Queue {
	return &Queue{
		client: asynq.NewClient(RedisOpt(cfg)),
		redis: redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}),
		retryMax: cfg.RetryMax,
		now:      time.Now,
	}
}

// EnqueueReportArchive schedules an inventory archive. A request made while
// another archive is still pending is a conflict.
func (q *Queue) EnqueueReportArchive(ctx context.Context) (*ports.QueuedTask, error) {
	task, err := NewArchiveInventoryTask(TriggerAPI, q.now(), q.retryMax)
	if err != nil {
		return nil, err
	}

	info, err := q.client.EnqueueContext(ctx, task)
	switch {
	case errors.Is(err, asynq.ErrTaskIDConflict):
		return nil, domain.NewConflictError("A report archive is already scheduled")
	case err != nil:
		return nil, fmt.Errorf("failed to enqueue report archive: %w", err)
	}

	return &ports.QueuedTask{ID: info.ID, Queue: info.Queue}, nil
}

// Ping checks the Redis connection.
func (q *Queue) Ping(ctx context.Context) error {
	return q.redis.Ping(ctx).Err()
}

// Close releases both connections.
func (q *Queue) Close() error {
	return errors.Join(q.client.Close(), q.redis.Close())
}
