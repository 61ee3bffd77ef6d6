package service

import (
	"context"
	"strings"

	"pomo-hub/internal/model"
)

// CategoryService provides helpers around categories.
type CategoryService struct {
	repo CategoryRepository
}

func NewCategoryService(repo CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// Create adds a category, defaulting the color. Creating a name that already
// exists returns the existing category's ID rather than failing.
func (s *CategoryService) Create(ctx context.Context, name, color string) (uint, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, NewValidation("name", "is required")
	}
	if color == "" {
		color = model.DefaultCategoryColor
	}

	category, err := s.repo.GetOrCreate(ctx, name, color)
	if err != nil {
		return 0, err
	}
	return category.ID, nil
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.repo.List(ctx)
}
