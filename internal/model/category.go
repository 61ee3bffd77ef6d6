package model

import "time"

// DefaultCategoryColor is used when a category is created without one.
const DefaultCategoryColor = "#3b82f6"

// Category groups tasks and templates by area (work, study, chores, etc.).
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Color     string    `gorm:"default:#3b82f6" json:"color"`
	CreatedAt time.Time `json:"created_at"`
}
