package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomo-hub/internal/model"
	"pomo-hub/internal/repository/memory"
	"pomo-hub/internal/service"
)

func newSummaryFixture(t *testing.T) (*memory.Store, *service.SummaryService) {
	t.Helper()
	store := memory.New()
	summaries := service.NewSummaryService(
		store.Pomodoros(), store.Tasks(), store.Notes(), store.Categories(),
	)
	return store, summaries
}

func TestTodaySummaryOrdering(t *testing.T) {
	store, summaries := newSummaryFixture(t)
	ctx := context.Background()
	now := time.Now()

	early := &model.Pomodoro{StartAt: now.Add(-2 * time.Hour)}
	late := &model.Pomodoro{StartAt: now.Add(-time.Minute)}
	require.NoError(t, store.Pomodoros().Create(ctx, early))
	require.NoError(t, store.Pomodoros().Create(ctx, late))

	morning := &model.Task{Name: "morning", StartAt: now.Add(-3 * time.Hour), Status: model.TaskStatusActive}
	require.NoError(t, store.Tasks().StartExclusive(ctx, morning))
	afternoon := &model.Task{Name: "afternoon", StartAt: now.Add(-time.Hour), Status: model.TaskStatusActive}
	require.NoError(t, store.Tasks().StartExclusive(ctx, afternoon))

	require.NoError(t, store.Notes().Create(ctx, &model.Note{TaskID: afternoon.ID, Body: "first"}))
	require.NoError(t, store.Notes().Create(ctx, &model.Note{TaskID: afternoon.ID, Body: "second"}))

	summary, err := summaries.Today(ctx)
	require.NoError(t, err)

	assert.Equal(t, now.Format("2006-01-02"), summary.Date)

	// Most recent first.
	require.Len(t, summary.Pomodoros, 2)
	assert.Equal(t, late.ID, summary.Pomodoros[0].ID)
	require.Len(t, summary.Tasks, 2)
	assert.Equal(t, "afternoon", summary.Tasks[0].Name)

	// Notes in creation order.
	require.Len(t, summary.Tasks[0].Notes, 2)
	assert.Equal(t, "first", summary.Tasks[0].Notes[0].Body)
	assert.Equal(t, "second", summary.Tasks[0].Notes[1].Body)
}

func TestTodaySummaryResolvesCategory(t *testing.T) {
	store, summaries := newSummaryFixture(t)
	ctx := context.Background()

	category, err := store.Categories().GetOrCreate(ctx, "work", "#ff0000")
	require.NoError(t, err)

	task := &model.Task{
		Name:       "categorized",
		CategoryID: &category.ID,
		StartAt:    time.Now(),
		Status:     model.TaskStatusActive,
	}
	require.NoError(t, store.Tasks().StartExclusive(ctx, task))

	summary, err := summaries.Today(ctx)
	require.NoError(t, err)
	require.Len(t, summary.Tasks, 1)
	assert.Equal(t, "work", summary.Tasks[0].CategoryName)
	assert.Equal(t, "#ff0000", summary.Tasks[0].CategoryColor)
}

func TestForDateScopesToCalendarDay(t *testing.T) {
	store, summaries := newSummaryFixture(t)
	ctx := context.Background()
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)

	old := &model.Pomodoro{StartAt: yesterday}
	require.NoError(t, store.Pomodoros().Create(ctx, old))
	fresh := &model.Pomodoro{StartAt: now}
	require.NoError(t, store.Pomodoros().Create(ctx, fresh))

	oldTask := &model.Task{Name: "yesterday's", StartAt: yesterday, Status: model.TaskStatusCompleted}
	require.NoError(t, store.Tasks().StartExclusive(ctx, oldTask))

	summary, err := summaries.ForDate(ctx, yesterday)
	require.NoError(t, err)
	assert.Equal(t, yesterday.Format("2006-01-02"), summary.Date)
	require.Len(t, summary.Pomodoros, 1)
	assert.Equal(t, old.ID, summary.Pomodoros[0].ID)
	require.Len(t, summary.Tasks, 1)
	assert.Equal(t, "yesterday's", summary.Tasks[0].Name)
}

func TestForDateEmptyDay(t *testing.T) {
	_, summaries := newSummaryFixture(t)

	summary, err := summaries.ForDate(context.Background(), time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Empty(t, summary.Pomodoros)
	assert.Empty(t, summary.Tasks)
}
