// Package store persists users, transactions and reminders through gorm.
// Every transaction and reminder query is scoped by the owning user id.
package store

import (
	"context"
	"errors"
	"fmt"

	"finance_tracker/internal/domain"

	"gorm.io/gorm"
)

// Store wraps a gorm connection
type Store struct {
	db *gorm.DB
}

// New returns a store on top of db
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Ping checks that the underlying database answers
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return persistence("get sql db", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return persistence("ping", err)
	}
	return nil
}

func persistence(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrPersistence, err)
}

// notFoundOr maps gorm's missing-record error to domain.ErrNotFound
func notFoundOr(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return persistence(op, err)
}
