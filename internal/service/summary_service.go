package service

import (
	"context"
	"time"

	"pomo-hub/internal/model"
)

// NoteView is a note as shown inside a task summary.
type NoteView struct {
	ID        uint      `json:"id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskView is a task annotated with its notes and category for display.
type TaskView struct {
	ID            uint       `json:"id"`
	TemplateID    *uint      `json:"template_id,omitempty"`
	CategoryID    *uint      `json:"category_id,omitempty"`
	Name          string     `json:"name"`
	StartAt       time.Time  `json:"start_at"`
	EndAt         *time.Time `json:"end_at"`
	Status        string     `json:"status"`
	CategoryName  string     `json:"category_name,omitempty"`
	CategoryColor string     `json:"category_color,omitempty"`
	Notes         []NoteView `json:"notes"`
}

// DaySummary is the read-only projection of one calendar day.
type DaySummary struct {
	Date      string           `json:"date"`
	Pomodoros []model.Pomodoro `json:"pomodoros"`
	Tasks     []TaskView       `json:"tasks"`
}

// SummaryService builds read-only projections from stored state: today's
// overview (newest first) and by-date exports (oldest first). It never
// mutates anything.
type SummaryService struct {
	pomodoros  PomodoroRepository
	tasks      TaskRepository
	notes      NoteRepository
	categories CategoryRepository
}

func NewSummaryService(
	pomodoros PomodoroRepository,
	tasks TaskRepository,
	notes NoteRepository,
	categories CategoryRepository,
) *SummaryService {
	return &SummaryService{
		pomodoros:  pomodoros,
		tasks:      tasks,
		notes:      notes,
		categories: categories,
	}
}

// Today returns the current local day, most recent activity first.
func (s *SummaryService) Today(ctx context.Context) (*DaySummary, error) {
	return s.build(ctx, time.Now(), true)
}

// ForDate returns a given local day in chronological order, for export.
func (s *SummaryService) ForDate(ctx context.Context, date time.Time) (*DaySummary, error) {
	return s.build(ctx, date, false)
}

func (s *SummaryService) build(ctx context.Context, day time.Time, desc bool) (*DaySummary, error) {
	from, to := dayRange(day)

	pomodoros, err := s.pomodoros.ListByRange(ctx, from, to, desc)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByRange(ctx, from, to, desc)
	if err != nil {
		return nil, err
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]model.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		view := TaskView{
			ID:         t.ID,
			TemplateID: t.TemplateID,
			CategoryID: t.CategoryID,
			Name:       t.Name,
			StartAt:    t.StartAt,
			EndAt:      t.EndAt,
			Status:     t.Status,
			Notes:      []NoteView{},
		}
		if t.CategoryID != nil {
			if c, ok := byID[*t.CategoryID]; ok {
				view.CategoryName = c.Name
				view.CategoryColor = c.Color
			}
		}

		notes, err := s.notes.ListByTask(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		for _, n := range notes {
			view.Notes = append(view.Notes, NoteView{ID: n.ID, Body: n.Body, CreatedAt: n.CreatedAt})
		}
		views = append(views, view)
	}

	if pomodoros == nil {
		pomodoros = []model.Pomodoro{}
	}

	return &DaySummary{
		Date:      from.Format("2006-01-02"),
		Pomodoros: pomodoros,
		Tasks:     views,
	}, nil
}

// dayRange returns the [00:00, next day 00:00) bounds of the local calendar
// date containing t.
func dayRange(t time.Time) (time.Time, time.Time) {
	year, month, day := t.Date()
	from := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return from, from.AddDate(0, 0, 1)
}
