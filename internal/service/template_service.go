package service

import (
	"context"
	"strings"
	"time"

	"pomo-hub/internal/model"
)

// TemplateView is a template annotated with its category for display.
type TemplateView struct {
	ID            uint      `json:"id"`
	CategoryID    *uint     `json:"category_id,omitempty"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"created_at"`
	CategoryName  string    `json:"category_name,omitempty"`
	CategoryColor string    `json:"category_color,omitempty"`
}

// TemplateService manages reusable task templates.
type TemplateService struct {
	templates  TemplateRepository
	categories CategoryRepository
}

func NewTemplateService(templates TemplateRepository, categories CategoryRepository) *TemplateService {
	return &TemplateService{templates: templates, categories: categories}
}

func (s *TemplateService) Create(ctx context.Context, name string, categoryID *uint) (uint, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, NewValidation("name", "is required")
	}

	template := &model.TaskTemplate{Name: name, CategoryID: categoryID}
	if err := s.templates.Create(ctx, template); err != nil {
		return 0, err
	}
	return template.ID, nil
}

// ListActive returns active templates, newest first, with category name and
// color resolved.
func (s *TemplateService) ListActive(ctx context.Context) ([]TemplateView, error) {
	templates, err := s.templates.ListActive(ctx)
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

	views := make([]TemplateView, 0, len(templates))
	for _, t := range templates {
		view := TemplateView{
			ID:         t.ID,
			CategoryID: t.CategoryID,
			Name:       t.Name,
			CreatedAt:  t.CreatedAt,
		}
		if t.CategoryID != nil {
			if c, ok := byID[*t.CategoryID]; ok {
				view.CategoryName = c.Name
				view.CategoryColor = c.Color
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *TemplateService) Deactivate(ctx context.Context, id uint) error {
	ok, err := s.templates.Deactivate(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return NewNotFound("task template")
	}
	return nil
}
