// internal/workers/tasks.go
package workers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/stockledger/internal/core/domain"
)

const (
	TypeArchiveInventory = "report:archive_inventory"
	TypeLowStockDigest   = "alerts:low_stock_digest"
)

// Queues the worker listens on.
const (
	QueueReports = "reports"
	QueueAlerts  = "alerts"
)

// Trigger values recorded on archive tasks.
const (
	TriggerAPI      = "api"
	TriggerSchedule = "schedule"
)

// ArchivePayload is the payload of an inventory archive task.
type ArchivePayload struct {
	Trigger     string    `json:"trigger"`
	RequestedAt time.Time `json:"requested_at"`
}

// DigestPayload is the payload of a low-stock digest task. An empty
// MinUrgency includes every alert.
type DigestPayload struct {
	MinUrgency domain.Urgency `json:"min_urgency,omitempty"`
}

// NewArchiveInventoryTask builds an archive task for the reports queue. The
// task ID is fixed per trigger, so a second request is rejected while the
// first is still queued or running.
func NewArchiveInventoryTask(trigger string, requestedAt time.Time, retryMax int) (*asynq.Task, error) {
	payload, err := json.Marshal(ArchivePayload{Trigger: trigger, RequestedAt: requestedAt.UTC()})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal archive payload: %w", err)
	}
	return asynq.NewTask(TypeArchiveInventory, payload,
		asynq.Queue(QueueReports),
		asynq.MaxRetry(retryMax),
		asynq.Timeout(5*time.Minute),
		asynq.TaskID("inventory-archive-"+trigger),
	), nil
}

// NewLowStockDigestTask builds a digest task for the alerts queue.
func NewLowStockDigestTask(minUrgency domain.Urgency) (*asynq.Task, error) {
	payload, err := json.Marshal(DigestPayload{MinUrgency: minUrgency})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal digest payload: %w", err)
	}
	return asynq.NewTask(TypeLowStockDigest, payload,
		asynq.Queue(QueueAlerts),
		asynq.MaxRetry(1),
		asynq.Timeout(time.Minute),
	), nil
}
