package model

import "time"

// Pomodoro is one focus-timer run. It ends either by scheduled expiry
// (Completed=true) or by a manual stop (Completed=false); a row with a nil
// EndAt is still running. Pomodoros and tasks are independent state machines.
type Pomodoro struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	StartAt   time.Time  `gorm:"not null;index" json:"start_at"`
	EndAt     *time.Time `json:"end_at"`
	Completed bool       `gorm:"default:false" json:"completed"`
}
