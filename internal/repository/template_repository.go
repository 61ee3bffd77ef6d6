package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"pomo-hub/internal/model"
)

// TemplateRepository manages reusable task templates.
type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) Create(ctx context.Context, template *model.TaskTemplate) error {
	template.IsActive = true
	if err := r.db.WithContext(ctx).Create(template).Error; err != nil {
		return fmt.Errorf("create template: %w", err)
	}
	return nil
}

// ListActive returns templates that have not been deactivated, newest first.
func (r *TemplateRepository) ListActive(ctx context.Context) ([]model.TaskTemplate, error) {
	var templates []model.TaskTemplate
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&templates).Error; err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return templates, nil
}

// Deactivate soft-deletes a template. The transition is one-way; there is no
// reactivation path. Reports whether a matching row existed.
func (r *TemplateRepository) Deactivate(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.TaskTemplate{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return false, fmt.Errorf("deactivate template: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
