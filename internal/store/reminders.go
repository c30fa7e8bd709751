package store

import (
	"context"
	"errors"
	"time"

	"finance_tracker/internal/domain"

	"gorm.io/gorm"
)

// ReminderFilter narrows a reminder listing
type ReminderFilter struct {
	DueAfter       *time.Time
	DueBefore      *time.Time
	IncompleteOnly bool
}

// CreateReminder validates and inserts r
func (s *Store) CreateReminder(ctx context.Context, r *domain.Reminder) error {
	if err := r.Validate(); err != nil {
		return err
	}
	r.DueDate = r.DueDate.UTC()
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return persistence("create reminder", err)
	}
	return nil
}

// ListReminders returns the user's reminders, soonest first
func (s *Store) ListReminders(ctx context.Context, userID uint, f ReminderFilter) ([]domain.Reminder, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.DueAfter != nil {
		q = q.Where("due_date > ?", f.DueAfter.UTC())
	}
	if f.DueBefore != nil {
		q = q.Where("due_date <= ?", f.DueBefore.UTC())
	}
	if f.IncompleteOnly {
		q = q.Where("is_completed = ?", false)
	}
	reminders := make([]domain.Reminder, 0)
	if err := q.Order("due_date asc").Order("id asc").Find(&reminders).Error; err != nil {
		return nil, persistence("list reminders", err)
	}
	return reminders, nil
}

// UpdateReminder applies patch to one of the user's reminders
func (s *Store) UpdateReminder(ctx context.Context, userID, id uint, patch domain.ReminderPatch) (*domain.Reminder, error) {
	var r domain.Reminder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&r).Error; err != nil {
			return err
		}
		if err := patch.Apply(&r); err != nil {
			return err
		}
		return tx.Save(&r).Error
	})
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return nil, err
		}
		return nil, notFoundOr("update reminder", err)
	}
	return &r, nil
}

// DeleteReminder removes one of the user's reminders
func (s *Store) DeleteReminder(ctx context.Context, userID, id uint) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&domain.Reminder{})
	if res.Error != nil {
		return persistence("delete reminder", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
