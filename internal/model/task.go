package model

import "time"

// Task statuses. A task is created active and completed exactly once.
const (
	TaskStatusActive    = "active"
	TaskStatusCompleted = "completed"
)

// Task is a single unit of work with a start/stop boundary. At most one task
// is active at any time; starting a new one hands off from the previous.
type Task struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	TemplateID *uint      `gorm:"index" json:"template_id,omitempty"`
	CategoryID *uint      `gorm:"index" json:"category_id,omitempty"`
	Name       string     `gorm:"not null" json:"name"`
	StartAt    time.Time  `gorm:"not null;index" json:"start_at"`
	EndAt      *time.Time `json:"end_at"`
	Status     string     `gorm:"default:active;index" json:"status"`
}
