// internal/workers/queue_test.go
package workers_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/stockledger/internal/core/domain"
	"github.com/ammerola/stockledger/internal/pkg/config"
	"github.com/ammerola/stockledger/internal/workers"
)

func newTestQueue(t *testing.T) (*workers.Queue, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	queue := workers.NewQueue(config.WorkerConfig{RedisAddr: mr.Addr(), RetryMax: 3})
	t.Cleanup(func() { _ = queue.Close() })
	return queue, mr
}

func TestQueue_EnqueueReportArchive(t *testing.T) {
	ctx := context.Background()
	queue, mr := newTestQueue(t)

	task, err := queue.EnqueueReportArchive(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, workers.QueueReports, task.Queue)
	assert.True(t, mr.Exists("asynq:{reports}:pending"))

	_, err = queue.EnqueueReportArchive(ctx)
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

func TestQueue_Ping(t *testing.T) {
	ctx := context.Background()
	queue, mr := newTestQueue(t)

	require.NoError(t, queue.Ping(ctx))

	mr.Close()
	assert.Error(t, queue.Ping(ctx))
}
