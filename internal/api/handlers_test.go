package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomo-hub/internal/api"
	"pomo-hub/internal/notify"
	"pomo-hub/internal/repository/memory"
	"pomo-hub/internal/service"
)

func newTestRouter(t *testing.T, pomodoroDuration time.Duration) http.Handler {
	t.Helper()

	store := memory.New()
	timers := service.NewTimerRegistry()
	t.Cleanup(timers.Shutdown)

	sessions := service.NewSessionService(
		store.Pomodoros(), store.Tasks(), store.Notes(),
		timers, notify.Nop{}, pomodoroDuration, false,
	)
	summaries := service.NewSummaryService(
		store.Pomodoros(), store.Tasks(), store.Notes(), store.Categories(),
	)
	categories := service.NewCategoryService(store.Categories())
	templates := service.NewTemplateService(store.Templates(), store.Categories())

	return api.New(sessions, summaries, categories, templates).Router()
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader([]byte("{}"))
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, time.Hour)

	for _, path := range []string{"/health", "/api/health"} {
		rec, body := doJSON(t, router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", body["status"])
		assert.NotEmpty(t, body["timestamp"])
	}
}

func TestPomodoroStartStopFlow(t *testing.T) {
	router := newTestRouter(t, time.Hour)

	rec, body := doJSON(t, router, http.MethodPost, "/api/pomodoro/start", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(60), body["duration_minutes"])
	assert.NotEmpty(t, body["end_time"])
	id := body["pomodoro_id"]
	require.NotNil(t, id)

	rec, body = doJSON(t, router, http.MethodPost, "/api/pomodoro/stop",
		map[string]any{"pomodoro_id": id})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])

	// Stopping again: the pomodoro is already terminal.
	rec, body = doJSON(t, router, http.MethodPost, "/api/pomodoro/stop",
		map[string]any{"pomodoro_id": id})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestPomodoroStopRequiresID(t *testing.T) {
	router := newTestRouter(t, time.Hour)

	rec, body := doJSON(t, router, http.MethodPost, "/api/pomodoro/stop", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
}

func TestPomodoroExpiryShowsInToday(t *testing.T) {
	router := newTestRouter(t, 30*time.Millisecond)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/pomodoro/start", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Eventually(t, func() bool {
		_, body := doJSON(t, router, http.MethodGet, "/api/today", nil)
		pomodoros, ok := body["pomodoros"].([]any)
		if !ok || len(pomodoros) != 1 {
			return false
		}
		entry := pomodoros[0].(map[string]any)
		return entry["completed"] == true && entry["end_at"] != nil
	}, time.Second, 10*time.Millisecond)
}

func TestTaskFlowWithNote(t *testing.T) {
	router := newTestRouter(t, time.Hour)

	rec, body := doJSON(t, router, http.MethodPost, "/api/task/start",
		map[string]any{"task": "Write report"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Write report", body["task_name"])
	assert.NotEmpty(t, body["start_time"])

	// No task_id: the note attaches to the active task.
	rec, body = doJSON(t, router, http.MethodPost, "/api/note",
		map[string]any{"note": "draft done"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.NotNil(t, body["note_id"])

	rec, body = doJSON(t, router, http.MethodGet, "/api/task/current", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	task := body["task"].(map[string]any)
	assert.Equal(t, "Write report", task["name"])

	_, body = doJSON(t, router, http.MethodGet, "/api/today", nil)
	tasks := body["tasks"].([]any)
	require.Len(t, tasks, 1)
	notes := tasks[0].(map[string]any)["notes"].([]any)
	require.Len(t, notes, 1)
	assert.Equal(t, "draft done", notes[0].(map[string]any)["body"])
}

func TestTaskStartValidation(t *testing.T) {
	router := newTestRouter(t, time.Hour)

	rec, body := doJSON(t, router, http.MethodPost, "/api/task/start",
		map[string]any{"task": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestTaskStopWithoutActive(t *testing.T) {
	router := newTestRouter(t, time.Hour)

	rec, body := doJSON(t, router, http.MethodPost, "/api/task/stop", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestNoteWithoutActiveTask(t *testing.T) {
	router := newTestRouter(t, time.Hour)

	rec, body := doJSON(t, router, http.MethodPost, "/api/note",
		map[string]any{"note": "orphan"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestCurrentTaskWhenIdle(t *testing.T) {
	router := newTestRouter(t, time.Hour)

	rec, body := doJSON(t, router, http.MethodGet, "/api/task/current", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Nil(t, body["task"])
}

func TestCategoryAndTemplateEndpoints(t *testing.T) {
	router := newTestRouter(t, time.Hour)

	rec, body := doJSON(t, router, http.MethodPost, "/api/categories",
		map[string]any{"name": "work"})
	require.Equal(t, http.StatusOK, rec.Code)
	categoryID := body["category_id"]
	require.NotNil(t, categoryID)

	_, body = doJSON(t, router, http.MethodGet, "/api/categories", nil)
	categories := body["categories"].([]any)
	require.Len(t, categories, 1)
	entry := categories[0].(map[string]any)
	assert.Equal(t, "work", entry["name"])
	assert.Equal(t, "#3b82f6", entry["color"])

	rec, body = doJSON(t, router, http.MethodPost, "/api/task-templates",
		map[string]any{"name": "standup", "category_id": categoryID})
	require.Equal(t, http.StatusOK, rec.Code)
	templateID := body["template_id"]
	require.NotNil(t, templateID)

	_, body = doJSON(t, router, http.MethodGet, "/api/task-templates", nil)
	templates := body["templates"].([]any)
	require.Len(t, templates, 1)
	assert.Equal(t, "work", templates[0].(map[string]any)["category_name"])

	path := "/api/task-templates/" + jsonNumber(t, templateID)
	rec, body = doJSON(t, router, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])

	_, body = doJSON(t, router, http.MethodGet, "/api/task-templates", nil)
	assert.Empty(t, body["templates"])

	rec, _ = doJSON(t, router, http.MethodDelete, "/api/task-templates/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportFormats(t *testing.T) {
	router := newTestRouter(t, time.Hour)

	doJSON(t, router, http.MethodPost, "/api/task/start", map[string]any{"task": "export me"})

	rec, body := doJSON(t, router, http.MethodGet, "/api/export/data?format=json", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.NotNil(t, body["data"])

	rec, _ = doJSON(t, router, http.MethodGet, "/api/export/data?format=csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Body.String(), "ID,Start,End,Completed")

	rec, _ = doJSON(t, router, http.MethodGet, "/api/export/data?format=markdown", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/markdown")
	assert.Contains(t, rec.Body.String(), "export me")

	rec, body = doJSON(t, router, http.MethodGet, "/api/export/data?format=xml", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestExportRejectsBadDate(t *testing.T) {
	router := newTestRouter(t, time.Hour)

	rec, body := doJSON(t, router, http.MethodGet, "/api/export/data?date=27-08-2026", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestExportEmptyPastDate(t *testing.T) {
	router := newTestRouter(t, time.Hour)

	doJSON(t, router, http.MethodPost, "/api/task/start", map[string]any{"task": "today only"})

	rec, body := doJSON(t, router, http.MethodGet, "/api/export/data?format=json&date=2020-01-01", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	assert.Empty(t, data["pomodoros"])
	assert.Empty(t, data["tasks"])
}

func TestRequestIDHeader(t *testing.T) {
	router := newTestRouter(t, time.Hour)

	rec, _ := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "fixed-id", rec.Header().Get("X-Request-ID"))
}

// jsonNumber formats a decoded JSON number back into its integer form.
func jsonNumber(t *testing.T, v any) string {
	t.Helper()
	f, ok := v.(float64)
	require.True(t, ok)
	return strconv.FormatUint(uint64(f), 10)
}
