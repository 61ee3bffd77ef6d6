// Package memory is an in-process backend implementing the same repository
// contract as the SQLite adapters. It backs tests and throwaway runs where
// durability does not matter; one mutex per store stands in for the
// transactions the relational adapter uses.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"pomo-hub/internal/model"
)

// Store holds every aggregate behind a single lock.
type Store struct {
	mu sync.RWMutex

	categories map[uint]*model.Category
	templates  map[uint]*model.TaskTemplate
	tasks      map[uint]*model.Task
	pomodoros  map[uint]*model.Pomodoro
	notes      map[uint]*model.Note

	nextCategory uint
	nextTemplate uint
	nextTask     uint
	nextPomodoro uint
	nextNote     uint
}

func New() *Store {
	return &Store{
		categories: make(map[uint]*model.Category),
		templates:  make(map[uint]*model.TaskTemplate),
		tasks:      make(map[uint]*model.Task),
		pomodoros:  make(map[uint]*model.Pomodoro),
		notes:      make(map[uint]*model.Note),
	}
}

// Adapters share the store; each satisfies one repository interface.

func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s} }
func (s *Store) Templates() *TemplateRepo  { return &TemplateRepo{s} }
func (s *Store) Tasks() *TaskRepo          { return &TaskRepo{s} }
func (s *Store) Pomodoros() *PomodoroRepo  { return &PomodoroRepo{s} }
func (s *Store) Notes() *NoteRepo          { return &NoteRepo{s} }

type CategoryRepo struct{ s *Store }

func (r *CategoryRepo) GetOrCreate(ctx context.Context, name, color string) (*model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.categories {
		if c.Name == name {
			clone := *c
			return &clone, nil
		}
	}

	r.s.nextCategory++
	c := &model.Category{
		ID:        r.s.nextCategory,
		Name:      name,
		Color:     color,
		CreatedAt: time.Now(),
	}
	r.s.categories[c.ID] = c
	clone := *c
	return &clone, nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]model.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type TemplateRepo struct{ s *Store }

func (r *TemplateRepo) Create(ctx context.Context, template *model.TaskTemplate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextTemplate++
	template.ID = r.s.nextTemplate
	template.CreatedAt = time.Now()
	template.IsActive = true
	clone := *template
	r.s.templates[template.ID] = &clone
	return nil
}

func (r *TemplateRepo) ListActive(ctx context.Context) ([]model.TaskTemplate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []model.TaskTemplate
	for _, t := range r.s.templates {
		if t.IsActive {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *TemplateRepo) Deactivate(ctx context.Context, id uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.templates[id]
	if !ok {
		return false, nil
	}
	t.IsActive = false
	return true, nil
}

type TaskRepo struct{ s *Store }

func (r *TaskRepo) StartExclusive(ctx context.Context, task *model.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, t := range r.s.tasks {
		if t.Status == model.TaskStatusActive {
			end := task.StartAt
			t.EndAt = &end
			t.Status = model.TaskStatusCompleted
		}
	}

	r.s.nextTask++
	task.ID = r.s.nextTask
	clone := *task
	r.s.tasks[task.ID] = &clone
	return nil
}

func (r *TaskRepo) Complete(ctx context.Context, id uint, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tasks[id]
	if !ok || t.Status != model.TaskStatusActive {
		return false, nil
	}
	t.EndAt = &at
	t.Status = model.TaskStatusCompleted
	return true, nil
}

func (r *TaskRepo) Active(ctx context.Context) (*model.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var active *model.Task
	for _, t := range r.s.tasks {
		if t.Status != model.TaskStatusActive {
			continue
		}
		if active == nil || t.StartAt.After(active.StartAt) {
			active = t
		}
	}
	if active == nil {
		return nil, nil
	}
	clone := *active
	return &clone, nil
}

func (r *TaskRepo) ListByRange(ctx context.Context, from, to time.Time, desc bool) ([]model.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []model.Task
	for _, t := range r.s.tasks {
		if inRange(t.StartAt, from, to) {
			out = append(out, *t)
		}
	}
	sortByStart(out, desc, func(t model.Task) time.Time { return t.StartAt })
	return out, nil
}

type PomodoroRepo struct{ s *Store }

func (r *PomodoroRepo) Create(ctx context.Context, pomodoro *model.Pomodoro) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextPomodoro++
	pomodoro.ID = r.s.nextPomodoro
	clone := *pomodoro
	r.s.pomodoros[pomodoro.ID] = &clone
	return nil
}

func (r *PomodoroRepo) Finish(ctx context.Context, id uint, at time.Time, completed bool) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.pomodoros[id]
	if !ok || p.EndAt != nil {
		return false, nil
	}
	p.EndAt = &at
	p.Completed = completed
	return true, nil
}

func (r *PomodoroRepo) Running(ctx context.Context) ([]model.Pomodoro, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []model.Pomodoro
	for _, p := range r.s.pomodoros {
		if p.EndAt == nil {
			out = append(out, *p)
		}
	}
	sortByStart(out, false, func(p model.Pomodoro) time.Time { return p.StartAt })
	return out, nil
}

func (r *PomodoroRepo) ListByRange(ctx context.Context, from, to time.Time, desc bool) ([]model.Pomodoro, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []model.Pomodoro
	for _, p := range r.s.pomodoros {
		if inRange(p.StartAt, from, to) {
			out = append(out, *p)
		}
	}
	sortByStart(out, desc, func(p model.Pomodoro) time.Time { return p.StartAt })
	return out, nil
}

type NoteRepo struct{ s *Store }

func (r *NoteRepo) Create(ctx context.Context, note *model.Note) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextNote++
	note.ID = r.s.nextNote
	note.CreatedAt = time.Now()
	clone := *note
	r.s.notes[note.ID] = &clone
	return nil
}

func (r *NoteRepo) ListByTask(ctx context.Context, taskID uint) ([]model.Note, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []model.Note
	for _, n := range r.s.notes {
		if n.TaskID == taskID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func inRange(at, from, to time.Time) bool {
	return !at.Before(from) && at.Before(to)
}

func sortByStart[T any](items []T, desc bool, start func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return start(items[i]).After(start(items[j]))
		}
		return start(items[i]).Before(start(items[j]))
	})
}
