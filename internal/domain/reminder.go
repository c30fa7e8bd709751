package domain

import (
	"strings"
	"time"
)

// Reminder Model
type Reminder struct {
	ID          uint      `gorm:"primaryKey" json:"id"`                       // Primary key
	UserID      uint      `gorm:"index;not null" json:"user_id"`              // Owning user
	Title       string    `gorm:"size:255;not null" json:"title"`             // What is due
	DueDate     time.Time `gorm:"index;not null" json:"due_date"`             // When it is due
	IsCompleted bool      `gorm:"not null;default:false" json:"is_completed"` // Done flag
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate checks the fields every stored reminder must carry
func (r *Reminder) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return &ValidationError{Field: "title", Reason: "is required"}
	}
	if r.DueDate.IsZero() {
		return &ValidationError{Field: "due_date", Reason: "is required"}
	}
	return nil
}

// ReminderPatch carries a partial update, nil fields are left untouched
type ReminderPatch struct {
	Title       *string    `json:"title"`
	DueDate     *time.Time `json:"due_date"`
	IsCompleted *bool      `json:"is_completed"`
}

// Apply merges the patch into r and re-validates the result
func (p ReminderPatch) Apply(r *Reminder) error {
	if p.Title != nil {
		r.Title = strings.TrimSpace(*p.Title)
	}
	if p.DueDate != nil {
		r.DueDate = p.DueDate.UTC()
	}
	if p.IsCompleted != nil {
		r.IsCompleted = *p.IsCompleted
	}
	return r.Validate()
}
