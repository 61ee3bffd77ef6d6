package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"pomo-hub/internal/model"
)

// PomodoroRepository handles pomodoro rows. A nil EndAt means the pomodoro
// is still running; termination is a conditional update so that a manual
// stop and a late expiry callback cannot overwrite each other.
type PomodoroRepository struct {
	db *gorm.DB
}

func NewPomodoroRepository(db *gorm.DB) *PomodoroRepository {
	return &PomodoroRepository{db: db}
}

func (r *PomodoroRepository) Create(ctx context.Context, pomodoro *model.Pomodoro) error {
	if err := r.db.WithContext(ctx).Create(pomodoro).Error; err != nil {
		return fmt.Errorf("create pomodoro: %w", err)
	}
	return nil
}

// Finish terminates a pomodoro iff it is still running. Reports whether the
// row transitioned; a false result means the pomodoro was unknown or had
// already reached a terminal state.
func (r *PomodoroRepository) Finish(ctx context.Context, id uint, at time.Time, completed bool) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Pomodoro{}).
		Where("id = ? AND end_at IS NULL", id).
		Updates(map[string]any{"end_at": at, "completed": completed})
	if res.Error != nil {
		return false, fmt.Errorf("finish pomodoro: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Running returns every pomodoro without an end time, oldest first. Used by
// the single-active guard and by startup recovery.
func (r *PomodoroRepository) Running(ctx context.Context) ([]model.Pomodoro, error) {
	var pomodoros []model.Pomodoro
	if err := r.db.WithContext(ctx).
		Where("end_at IS NULL").
		Order("start_at ASC").
		Find(&pomodoros).Error; err != nil {
		return nil, fmt.Errorf("list running pomodoros: %w", err)
	}
	return pomodoros, nil
}

// ListByRange returns pomodoros whose StartAt falls in [from, to).
func (r *PomodoroRepository) ListByRange(ctx context.Context, from, to time.Time, desc bool) ([]model.Pomodoro, error) {
	order := "start_at ASC"
	if desc {
		order = "start_at DESC"
	}
	var pomodoros []model.Pomodoro
	if err := r.db.WithContext(ctx).
		Where("start_at >= ? AND start_at < ?", from, to).
		Order(order).
		Find(&pomodoros).Error; err != nil {
		return nil, fmt.Errorf("list pomodoros: %w", err)
	}
	return pomodoros, nil
}
