package task

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	CreateTask(ctx context.Context, t *Task) error
	GetTask(ctx context.Context, taskID string) (*Task, error)
	ListUnitTasks(ctx context.Context, unitID string) ([]Task, error)
	UpdateTaskStatus(ctx context.Context, taskID, status string) error
	UpdateTaskAssignment(ctx context.Context, taskID, assigneeID, status string) error
	DeleteTask(ctx context.Context, taskID string) error

	CreateMediaItem(ctx context.Context, item *MediaItem) error
	GetMediaItem(ctx context.Context, mediaID string) (*MediaItem, error)
	CompleteMediaItem(ctx context.Context, mediaID string, size int64) error
	DeleteTaskMedia(ctx context.Context, taskID string) error
}
