package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finance_tracker/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TransactionFilter narrows a transaction listing. Zero fields are ignored.
type TransactionFilter struct {
	Type     domain.TransactionType
	Category string
	From     *time.Time // inclusive
	To       *time.Time // inclusive
	Trip     string
	Report   string
}

// StatsFunc updates the owner's gamification fields. txCount is the owner's
// transaction count including the row just inserted.
type StatsFunc func(u *domain.User, txCount int64) error

// CreateTransaction validates and inserts t. The owner row is locked for the
// whole database transaction, so concurrent inserts for one user are
// serialized across processes and each stats call sees an exact count.
// A non-nil stats runs in a savepoint: when it or the stats save fails only
// the stats are rolled back, t stays committed and the error wraps
// domain.ErrStatsNotSaved.
func (s *Store) CreateTransaction(ctx context.Context, t *domain.Transaction, stats StatsFunc) (*domain.User, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	var (
		u        domain.User
		statsErr error
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&u, t.UserID).Error; err != nil {
			return err
		}
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		if stats != nil {
			statsErr = tx.Transaction(func(stx *gorm.DB) error {
				return saveStats(stx, &u, stats)
			})
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("create transaction: owner: %w", domain.ErrNotFound)
		}
		return nil, persistence("create transaction", err)
	}
	if statsErr != nil {
		return nil, fmt.Errorf("create transaction: %w: %w", domain.ErrStatsNotSaved, statsErr)
	}
	return &u, nil
}

func saveStats(tx *gorm.DB, u *domain.User, stats StatsFunc) error {
	var count int64
	if err := tx.Model(&domain.Transaction{}).Where("user_id = ?", u.ID).Count(&count).Error; err != nil {
		return err
	}
	if err := stats(u, count); err != nil {
		return err
	}
	return tx.Model(u).Select("Badges", "Streak", "LastTransactionAt").Updates(u).Error
}

// ListTransactions returns the user's transactions, newest date first
func (s *Store) ListTransactions(ctx context.Context, userID uint, f TransactionFilter) ([]domain.Transaction, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.From != nil {
		q = q.Where("date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("date <= ?", *f.To)
	}
	if f.Trip != "" {
		q = q.Where("trip_destination = ?", f.Trip)
	}
	if f.Report != "" {
		q = q.Where("report_title = ?", f.Report)
	}
	txs := make([]domain.Transaction, 0)
	if err := q.Order("date desc").Order("id desc").Find(&txs).Error; err != nil {
		return nil, persistence("list transactions", err)
	}
	return txs, nil
}

// GetTransaction returns one of the user's transactions
func (s *Store) GetTransaction(ctx context.Context, userID, id uint) (*domain.Transaction, error) {
	var t domain.Transaction
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&t).Error; err != nil {
		return nil, notFoundOr("get transaction", err)
	}
	return &t, nil
}

// CountTransactions returns how many transactions the user owns
func (s *Store) CountTransactions(ctx context.Context, userID uint) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&domain.Transaction{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		return 0, persistence("count transactions", err)
	}
	return n, nil
}

// UpdateTransaction applies patch to one of the user's transactions
func (s *Store) UpdateTransaction(ctx context.Context, userID, id uint, patch domain.TransactionPatch) (*domain.Transaction, error) {
	var t domain.Transaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&t).Error; err != nil {
			return err
		}
		if err := patch.Apply(&t); err != nil {
			return err
		}
		return tx.Save(&t).Error
	})
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return nil, err
		}
		return nil, notFoundOr("update transaction", err)
	}
	return &t, nil
}

// DeleteTransaction removes one of the user's transactions
func (s *Store) DeleteTransaction(ctx context.Context, userID, id uint) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&domain.Transaction{})
	if res.Error != nil {
		return persistence("delete transaction", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
