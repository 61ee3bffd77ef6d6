package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"pomo-hub/internal/model"
)

// NoteRepository handles task notes. Notes are append-only.
type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(ctx context.Context, note *model.Note) error {
	if err := r.db.WithContext(ctx).Create(note).Error; err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

// ListByTask returns a task's notes in creation order.
func (r *NoteRepository) ListByTask(ctx context.Context, taskID uint) ([]model.Note, error) {
	var notes []model.Note
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at ASC, id ASC").
		Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}
