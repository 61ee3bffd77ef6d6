package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"pomo-hub/internal/export"
	"pomo-hub/internal/service"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) startPomodoro(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessions.StartPomodoro(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{
		"pomodoro_id":      session.ID,
		"end_time":         session.EndTime.Format(time.RFC3339),
		"duration_minutes": session.DurationMinutes,
	})
}

type stopPomodoroRequest struct {
	PomodoroID uint `json:"pomodoro_id"`
}

func (s *Server) stopPomodoro(w http.ResponseWriter, r *http.Request) {
	var req stopPomodoroRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, service.NewValidation("body", "must be valid JSON"))
		return
	}
	if err := s.sessions.StopPomodoro(r.Context(), req.PomodoroID); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil)
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.categories.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"categories": categories})
}

type createCategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, service.NewValidation("body", "must be valid JSON"))
		return
	}
	id, err := s.categories.Create(r.Context(), req.Name, req.Color)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"category_id": id})
}

func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.templates.ListActive(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"templates": templates})
}

type createTemplateRequest struct {
	Name       string `json:"name"`
	CategoryID *uint  `json:"category_id"`
}

func (s *Server) createTemplate(w http.ResponseWriter, r *http.Request) {
	var req createTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, service.NewValidation("body", "must be valid JSON"))
		return
	}
	id, err := s.templates.Create(r.Context(), req.Name, req.CategoryID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"template_id": id})
}

func (s *Server) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, service.NewValidation("id", "must be a number"))
		return
	}
	if err := s.templates.Deactivate(r.Context(), uint(id)); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil)
}

type startTaskRequest struct {
	Task       string `json:"task"`
	CategoryID *uint  `json:"category_id"`
	TemplateID *uint  `json:"template_id"`
}

func (s *Server) startTask(w http.ResponseWriter, r *http.Request) {
	var req startTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, service.NewValidation("body", "must be valid JSON"))
		return
	}
	session, err := s.sessions.StartTask(r.Context(), req.Task, req.CategoryID, req.TemplateID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{
		"task_id":    session.ID,
		"task_name":  session.Name,
		"start_time": session.StartTime.Format(time.RFC3339),
	})
}

type stopTaskRequest struct {
	TaskID uint `json:"task_id"`
}

func (s *Server) stopTask(w http.ResponseWriter, r *http.Request) {
	// An empty body means "stop the current task".
	var req stopTaskRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if err := s.sessions.StopTask(r.Context(), req.TaskID); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil)
}

func (s *Server) currentTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.sessions.ActiveTask(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if task == nil {
		writeSuccess(w, http.StatusOK, map[string]any{"task": nil})
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{
		"task": map[string]any{
			"id":       task.ID,
			"name":     task.Name,
			"start_at": task.StartAt.Format(time.RFC3339),
		},
	})
}

type addNoteRequest struct {
	TaskID uint   `json:"task_id"`
	Note   string `json:"note"`
}

func (s *Server) addNote(w http.ResponseWriter, r *http.Request) {
	var req addNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, service.NewValidation("body", "must be valid JSON"))
		return
	}
	id, err := s.sessions.AddNote(r.Context(), req.TaskID, req.Note)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"note_id": id})
}

func (s *Server) today(w http.ResponseWriter, r *http.Request) {
	summary, err := s.summaries.Today(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) exportData(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			writeError(w, service.NewValidation("date", "must be YYYY-MM-DD"))
			return
		}
		date = parsed
	}

	summary, err := s.summaries.ForDate(r.Context(), date)
	if err != nil {
		writeError(w, err)
		return
	}

	switch format {
	case "json":
		writeSuccess(w, http.StatusOK, map[string]any{
			"date": summary.Date,
			"data": map[string]any{
				"pomodoros": summary.Pomodoros,
				"tasks":     summary.Tasks,
			},
		})
	case "csv":
		body, err := export.CSV(summary)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	case "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(export.Markdown(summary)))
	default:
		writeError(w, service.NewValidation("format", "must be json, csv or markdown"))
	}
}
