package model

import "time"

// TaskTemplate is a reusable task definition. Templates are soft-deleted by
// flipping IsActive off; the transition is one-way.
type TaskTemplate struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CategoryID *uint     `gorm:"index" json:"category_id,omitempty"`
	Name       string    `gorm:"not null" json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
}
