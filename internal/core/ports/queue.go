package ports

import "context"

// QueuedTask identifies a job handed to the background worker.
type QueuedTask struct {
	ID    string `json:"taskId"`
	Queue string `json:"queue"`
}

// TaskQueue hands report jobs to the background worker.
type TaskQueue interface {
	EnqueueReportArchive(ctx context.Context) (*QueuedTask, error)
	Ping(ctx context.Context) error
}
