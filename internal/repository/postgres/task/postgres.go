package task

import (
	"context"
	"errors"

	"gorm.io/gorm"

	taskdomain "hometeam-go/internal/domain/task"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(taskdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreateTask(ctx context.Context, t *taskdomain.Task) error {
	return r.db.WithContext(ctx).Omit("Media").Create(t).Error
}

func (r *PostgresRepository) GetTask(ctx context.Context, taskID string) (*taskdomain.Task, error) {
	var t taskdomain.Task
	err := r.db.WithContext(ctx).
		Preload("Media").
		Where("id = ?", taskID).
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, taskdomain.ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *PostgresRepository) ListUnitTasks(ctx context.Context, unitID string) ([]taskdomain.Task, error) {
	var tasks []taskdomain.Task
	err := r.db.WithContext(ctx).
		Preload("Media").
		Where("unit_id = ?", unitID).
		Order("created_at desc").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *PostgresRepository) UpdateTaskStatus(ctx context.Context, taskID, status string) error {
	result := r.db.WithContext(ctx).
		Model(&taskdomain.Task{}).
		Where("id = ?", taskID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return taskdomain.ErrTaskNotFound
	}
	return nil
}

func (r *PostgresRepository) UpdateTaskAssignment(ctx context.Context, taskID, assigneeID, status string) error {
	result := r.db.WithContext(ctx).
		Model(&taskdomain.Task{}).
		Where("id = ?", taskID).
		Updates(map[string]any{"assignee_id": assigneeID, "status": status})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return taskdomain.ErrTaskNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteTask(ctx context.Context, taskID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", taskID).Delete(&taskdomain.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return taskdomain.ErrTaskNotFound
	}
	return nil
}

func (r *PostgresRepository) CreateMediaItem(ctx context.Context, item *taskdomain.MediaItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *PostgresRepository) GetMediaItem(ctx context.Context, mediaID string) (*taskdomain.MediaItem, error) {
	var item taskdomain.MediaItem
	if err := r.db.WithContext(ctx).Where("id = ?", mediaID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, taskdomain.ErrMediaNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) CompleteMediaItem(ctx context.Context, mediaID string, size int64) error {
	result := r.db.WithContext(ctx).
		Model(&taskdomain.MediaItem{}).
		Where("id = ?", mediaID).
		Updates(map[string]any{"upload_status": taskdomain.UploadCompleted, "size": size})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return taskdomain.ErrMediaNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteTaskMedia(ctx context.Context, taskID string) error {
	return r.db.WithContext(ctx).Where("task_id = ?", taskID).Delete(&taskdomain.MediaItem{}).Error
}
