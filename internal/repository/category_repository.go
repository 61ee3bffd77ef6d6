package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"pomo-hub/internal/model"
)

// CategoryRepository manages categories.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetOrCreate returns the category with the given name, creating it when it
// does not exist yet. An existing category keeps its original color.
func (r *CategoryRepository) GetOrCreate(ctx context.Context, name, color string) (*model.Category, error) {
	var category model.Category
	db := r.db.WithContext(ctx)
	err := db.Where("name = ?", name).First(&category).Error
	switch {
	case err == nil:
		return &category, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		category = model.Category{Name: name, Color: color}
		if err := db.Create(&category).Error; err != nil {
			return nil, fmt.Errorf("create category: %w", err)
		}
		return &category, nil
	default:
		return nil, fmt.Errorf("find category: %w", err)
	}
}

func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}
