package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"pomo-hub/internal/service"
)

// Server exposes the tracker over HTTP.
type Server struct {
	sessions   *service.SessionService
	summaries  *service.SummaryService
	categories *service.CategoryService
	templates  *service.TemplateService
}

func New(
	sessions *service.SessionService,
	summaries *service.SummaryService,
	categories *service.CategoryService,
	templates *service.TemplateService,
) *Server {
	return &Server{
		sessions:   sessions,
		summaries:  summaries,
		categories: categories,
		templates:  templates,
	}
}

// Router builds the chi router. CORS is open: the API serves a local browser
// frontend.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", s.health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.health)

		r.Post("/pomodoro/start", s.startPomodoro)
		r.Post("/pomodoro/stop", s.stopPomodoro)

		r.Get("/categories", s.listCategories)
		r.Post("/categories", s.createCategory)

		r.Route("/task-templates", func(r chi.Router) {
			r.Get("/", s.listTemplates)
			r.Post("/", s.createTemplate)
			r.Delete("/{id}", s.deleteTemplate)
		})

		r.Post("/task/start", s.startTask)
		r.Post("/task/stop", s.stopTask)
		r.Get("/task/current", s.currentTask)

		r.Post("/note", s.addNote)

		r.Get("/today", s.today)
		r.Get("/export/data", s.exportData)
	})

	return r
}
