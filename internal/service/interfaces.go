package service

import (
	"context"
	"time"

	"pomo-hub/internal/model"
)

// Repository contracts implemented by the SQLite adapters in
// internal/repository and the in-memory adapters in
// internal/repository/memory. The store is the single arbiter of the
// "at most one active" invariants: terminal transitions are conditional
// writes that report whether a row actually changed.

type CategoryRepository interface {
	GetOrCreate(ctx context.Context, name, color string) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
}

type TemplateRepository interface {
	Create(ctx context.Context, template *model.TaskTemplate) error
	ListActive(ctx context.Context) ([]model.TaskTemplate, error)
	Deactivate(ctx context.Context, id uint) (bool, error)
}

type TaskRepository interface {
	// StartExclusive atomically completes all active tasks and inserts the
	// new one.
	StartExclusive(ctx context.Context, task *model.Task) error
	Complete(ctx context.Context, id uint, at time.Time) (bool, error)
	Active(ctx context.Context) (*model.Task, error)
	ListByRange(ctx context.Context, from, to time.Time, desc bool) ([]model.Task, error)
}

type PomodoroRepository interface {
	Create(ctx context.Context, pomodoro *model.Pomodoro) error
	Finish(ctx context.Context, id uint, at time.Time, completed bool) (bool, error)
	Running(ctx context.Context) ([]model.Pomodoro, error)
	ListByRange(ctx context.Context, from, to time.Time, desc bool) ([]model.Pomodoro, error)
}

type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) error
	ListByTask(ctx context.Context, taskID uint) ([]model.Note, error)
}
