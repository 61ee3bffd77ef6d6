package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"pomo-hub/internal/model"
)

// TaskRepository handles task rows. The store is the arbiter of the
// single-active-task invariant: every terminal transition is a conditional
// update on status so that concurrent writers cannot resurrect a task.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// StartExclusive completes every currently-active task and inserts the new
// one inside a single transaction. Prior tasks get EndAt equal to the new
// task's StartAt, so the hand-off leaves no overlap and no gap.
func (r *TaskRepository) StartExclusive(ctx context.Context, task *model.Task) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Task{}).
			Where("status = ?", model.TaskStatusActive).
			Updates(map[string]any{
				"end_at": task.StartAt,
				"status": model.TaskStatusCompleted,
			}).Error; err != nil {
			return fmt.Errorf("complete active tasks: %w", err)
		}
		if err := tx.Create(task).Error; err != nil {
			return fmt.Errorf("create task: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("start task: %w", err)
	}
	return nil
}

// Complete marks a task completed iff it is still active. Reports whether
// the row transitioned.
func (r *TaskRepository) Complete(ctx context.Context, id uint, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND status = ?", id, model.TaskStatusActive).
		Updates(map[string]any{"end_at": at, "status": model.TaskStatusCompleted})
	if res.Error != nil {
		return false, fmt.Errorf("complete task: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Active returns the current active task, or nil when there is none.
func (r *TaskRepository) Active(ctx context.Context) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Where("status = ?", model.TaskStatusActive).
		Order("start_at DESC").
		First(&task).Error
	switch {
	case err == nil:
		return &task, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("find active task: %w", err)
	}
}

// ListByRange returns tasks whose StartAt falls in [from, to).
func (r *TaskRepository) ListByRange(ctx context.Context, from, to time.Time, desc bool) ([]model.Task, error) {
	order := "start_at ASC"
	if desc {
		order = "start_at DESC"
	}
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("start_at >= ? AND start_at < ?", from, to).
		Order(order).
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}
