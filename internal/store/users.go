package store

import (
	"context"
	"errors"
	"strings"

	"finance_tracker/internal/domain"

	"gorm.io/gorm"
)

// CreateUser inserts u. Emails are stored lowercased and must be unique.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if _, err := s.UserByEmail(ctx, u.Email); err == nil {
		return domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailTaken
		}
		return persistence("create user", err)
	}
	return nil
}

// UserByEmail looks a user up by (case-insensitive) email
func (s *Store) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&u).Error
	if err != nil {
		return nil, notFoundOr("find user by email", err)
	}
	return &u, nil
}

// UserByID looks a user up by primary key
func (s *Store) UserByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFoundOr("find user", err)
	}
	return &u, nil
}
