package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"pomo-hub/internal/logger"
	"pomo-hub/internal/model"
	"pomo-hub/internal/notify"
)

// SessionService is the state machine behind pomodoros, tasks and notes.
// It owns the start/stop transitions, keeps the expiry timers in sync with
// manual stops and emits fire-and-forget notifications. The invariants
// themselves (one active task, terminal rows stay terminal) live in the
// repositories as conditional writes; this layer only orchestrates.
type SessionService struct {
	pomodoros PomodoroRepository
	tasks     TaskRepository
	notes     NoteRepository
	timers    *TimerRegistry
	notifier  notify.Notifier

	duration     time.Duration
	singleActive bool
}

// PomodoroSession is returned when a pomodoro starts.
type PomodoroSession struct {
	ID              uint      `json:"pomodoro_id"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
}

// TaskSession is returned when a task starts.
type TaskSession struct {
	ID        uint      `json:"task_id"`
	Name      string    `json:"task_name"`
	StartTime time.Time `json:"start_time"`
}

func NewSessionService(
	pomodoros PomodoroRepository,
	tasks TaskRepository,
	notes NoteRepository,
	timers *TimerRegistry,
	notifier notify.Notifier,
	duration time.Duration,
	singleActive bool,
) *SessionService {
	if duration <= 0 {
		duration = 25 * time.Minute
	}
	return &SessionService{
		pomodoros:    pomodoros,
		tasks:        tasks,
		notes:        notes,
		timers:       timers,
		notifier:     notifier,
		duration:     duration,
		singleActive: singleActive,
	}
}

// StartPomodoro creates a pomodoro and arms its expiry timer. Parallel
// timers are allowed unless the single-active option is on.
func (s *SessionService) StartPomodoro(ctx context.Context) (*PomodoroSession, error) {
	if s.singleActive {
		running, err := s.pomodoros.Running(ctx)
		if err != nil {
			return nil, err
		}
		if len(running) > 0 {
			return nil, NewConflict("a pomodoro is already running")
		}
	}

	pomodoro := &model.Pomodoro{StartAt: time.Now()}
	if err := s.pomodoros.Create(ctx, pomodoro); err != nil {
		return nil, err
	}

	endTime := pomodoro.StartAt.Add(s.duration)
	s.armExpiry(pomodoro.ID, endTime)

	s.notifier.Notify(ctx, "🍅 Pomodoro started!")
	logger.Info("pomodoro started",
		zap.Uint("pomodoro_id", pomodoro.ID),
		zap.Time("end_time", endTime))

	return &PomodoroSession{
		ID:              pomodoro.ID,
		EndTime:         endTime,
		DurationMinutes: int(s.duration.Minutes()),
	}, nil
}

// StopPomodoro terminates a running pomodoro early. The expiry timer is
// cancelled best-effort; if it already fired, the conditional update below
// reports no transition and the stop surfaces as not found.
func (s *SessionService) StopPomodoro(ctx context.Context, id uint) error {
	if id == 0 {
		return NewValidation("pomodoro_id", "is required")
	}

	stopped, err := s.pomodoros.Finish(ctx, id, time.Now(), false)
	s.timers.Cancel(id)
	if err != nil {
		return err
	}
	if !stopped {
		return NewNotFound("running pomodoro")
	}

	s.notifier.Notify(ctx, "⏹️ Pomodoro stopped")
	logger.Info("pomodoro stopped", zap.Uint("pomodoro_id", id))
	return nil
}

// armExpiry schedules the one-shot completion callback for a pomodoro.
func (s *SessionService) armExpiry(id uint, endTime time.Time) {
	s.timers.Schedule(id, endTime, func() {
		// No caller is present; bound the store round trip ourselves.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.expire(ctx, id)
	})
}

// expire completes a pomodoro whose time is up. If the pomodoro was stopped
// manually in the meantime the conditional update loses the race and this
// becomes a no-op.
func (s *SessionService) expire(ctx context.Context, id uint) {
	completed, err := s.pomodoros.Finish(ctx, id, time.Now(), true)
	if err != nil {
		logger.Error("pomodoro expiry failed", zap.Uint("pomodoro_id", id), zap.Error(err))
		return
	}
	if !completed {
		logger.Debug("pomodoro already terminal on expiry", zap.Uint("pomodoro_id", id))
		return
	}

	s.notifier.Notify(ctx, "🍅 Pomodoro finished! Nice work!")
	logger.Info("pomodoro completed", zap.Uint("pomodoro_id", id))
}

// Recover re-arms expiry timers after a restart: in-flight pomodoros past
// their due time are completed immediately, the rest get fresh timers.
// In-process timers do not survive the process, the rows do.
func (s *SessionService) Recover(ctx context.Context) error {
	running, err := s.pomodoros.Running(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, p := range running {
		due := p.StartAt.Add(s.duration)
		if due.After(now) {
			s.armExpiry(p.ID, due)
			continue
		}
		s.expire(ctx, p.ID)
	}

	if len(running) > 0 {
		logger.Info("recovered in-flight pomodoros", zap.Int("count", len(running)))
	}
	return nil
}

// Reconcile completes overdue pomodoros whose timer got lost. Runs
// periodically from the scheduler as a safety net behind Recover.
func (s *SessionService) Reconcile(ctx context.Context) {
	running, err := s.pomodoros.Running(ctx)
	if err != nil {
		logger.Warn("reconcile sweep failed", zap.Error(err))
		return
	}

	now := time.Now()
	for _, p := range running {
		if !p.StartAt.Add(s.duration).After(now) {
			s.expire(ctx, p.ID)
		}
	}
}

// StartTask begins a named task. An already-active task is handed off:
// completed with EndAt equal to the new task's StartAt, inside the same
// store transaction.
func (s *SessionService) StartTask(ctx context.Context, name string, categoryID, templateID *uint) (*TaskSession, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidation("task", "name is required")
	}

	task := &model.Task{
		Name:       name,
		CategoryID: categoryID,
		TemplateID: templateID,
		StartAt:    time.Now(),
		Status:     model.TaskStatusActive,
	}
	if err := s.tasks.StartExclusive(ctx, task); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, "📋 Task started: "+name)
	logger.Info("task started", zap.Uint("task_id", task.ID), zap.String("name", name))

	return &TaskSession{ID: task.ID, Name: name, StartTime: task.StartAt}, nil
}

// StopTask completes a task. A zero id means "the current active task".
func (s *SessionService) StopTask(ctx context.Context, id uint) error {
	if id == 0 {
		active, err := s.tasks.Active(ctx)
		if err != nil {
			return err
		}
		if active == nil {
			return NewNotFound("active task")
		}
		id = active.ID
	}

	completed, err := s.tasks.Complete(ctx, id, time.Now())
	if err != nil {
		return err
	}
	if !completed {
		return NewNotFound("active task")
	}

	s.notifier.Notify(ctx, "✅ Task completed")
	logger.Info("task completed", zap.Uint("task_id", id))
	return nil
}

// ActiveTask returns the current active task, nil when there is none.
func (s *SessionService) ActiveTask(ctx context.Context) (*model.Task, error) {
	return s.tasks.Active(ctx)
}

// AddNote appends a note to a task. A zero taskID attaches the note to the
// current active task.
func (s *SessionService) AddNote(ctx context.Context, taskID uint, body string) (uint, error) {
	if strings.TrimSpace(body) == "" {
		return 0, NewValidation("note", "is required")
	}

	if taskID == 0 {
		active, err := s.tasks.Active(ctx)
		if err != nil {
			return 0, err
		}
		if active == nil {
			return 0, NewNotFound("active task")
		}
		taskID = active.ID
	}

	note := &model.Note{TaskID: taskID, Body: body}
	if err := s.notes.Create(ctx, note); err != nil {
		return 0, err
	}
	return note.ID, nil
}
