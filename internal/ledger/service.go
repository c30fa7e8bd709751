// Package ledger is the transaction workflow: it persists drafts, runs the
// gamification side effect, keeps the dashboard cache fresh and serves the
// aggregated views.
package ledger

import (
	"context"
	"errors"
	"time"

	"finance_tracker/internal/analytics"
	"finance_tracker/internal/domain"
	"finance_tracker/internal/gamification"
	"finance_tracker/internal/store"
	"finance_tracker/internal/utils"
	"finance_tracker/internal/voice"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// TransactionStore is the persistence the ledger needs
type TransactionStore interface {
	ListTransactions(ctx context.Context, userID uint, f store.TransactionFilter) ([]domain.Transaction, error)
	UpdateTransaction(ctx context.Context, userID, id uint, patch domain.TransactionPatch) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id uint) error
}

// Service runs transaction writes and reads for a user
type Service struct {
	store   TransactionStore
	tracker *gamification.Tracker
	cache   *utils.Cache
	group   singleflight.Group
}

// NewService wires the ledger. cache may be nil.
func NewService(st TransactionStore, tracker *gamification.Tracker, cache *utils.Cache) *Service {
	return &Service{store: st, tracker: tracker, cache: cache}
}

// CreateResult is a persisted transaction with the user's gamification state after it
type CreateResult struct {
	Transaction domain.Transaction `json:"transaction"`
	Badges      []string           `json:"badges"`
	NewBadges   []string           `json:"new_badges"`
	Streak      int                `json:"streak"`
}

// Create validates and stores a draft, then updates badges and streak.
// The transaction write is authoritative: a gamification failure is logged
// and the result is returned without badge state.
func (s *Service) Create(ctx context.Context, userID uint, draft domain.TransactionDraft) (*CreateResult, error) {
	tx, err := draft.Build(userID)
	if err != nil {
		return nil, err
	}

	u, awarded, err := s.tracker.Record(ctx, &tx)
	if err != nil && !errors.Is(err, domain.ErrStatsNotSaved) {
		return nil, err
	}
	s.invalidate(ctx, userID)

	res := &CreateResult{Transaction: tx, Badges: []string{}, NewBadges: []string{}}
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id":        userID,
			"transaction_id": tx.ID,
			"error":          err.Error(),
		}).Warn("gamification update failed")
		return res, nil
	}
	if u.Badges != nil {
		res.Badges = u.Badges
	}
	if awarded != nil {
		res.NewBadges = awarded
	}
	res.Streak = u.Streak
	return res, nil
}

// ParseVoice parses text without persisting anything
func (s *Service) ParseVoice(text string) (domain.TransactionDraft, error) {
	parsed, err := voice.Parse(text)
	if err != nil {
		return domain.TransactionDraft{}, err
	}
	return parsed.Draft(s.tracker.Now()), nil
}

// CreateFromVoice parses a transcript and stores the result through Create
func (s *Service) CreateFromVoice(ctx context.Context, userID uint, text string) (*CreateResult, error) {
	draft, err := s.ParseVoice(text)
	if err != nil {
		return nil, err
	}
	return s.Create(ctx, userID, draft)
}

// List returns the user's transactions matching f
func (s *Service) List(ctx context.Context, userID uint, f store.TransactionFilter) ([]domain.Transaction, error) {
	return s.store.ListTransactions(ctx, userID, f)
}

// Update patches one of the user's transactions
func (s *Service) Update(ctx context.Context, userID, id uint, patch domain.TransactionPatch) (*domain.Transaction, error) {
	t, err := s.store.UpdateTransaction(ctx, userID, id, patch)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	return t, nil
}

// Delete removes one of the user's transactions
func (s *Service) Delete(ctx context.Context, userID, id uint) error {
	if err := s.store.DeleteTransaction(ctx, userID, id); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

// Dashboard summarizes every transaction of the user. Summaries are cached
// under the user's current generation, which every write advances, so a fill
// racing a write lands under a key no reader asks for again. Concurrent misses
// for one generation share a single computation.
func (s *Service) Dashboard(ctx context.Context, userID uint) (analytics.Summary, bool, error) {
	gen, err := s.cache.Generation(ctx, utils.DashboardGenKey(userID))
	if err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Warn("dashboard generation read failed")
		summary, err := s.summarize(ctx, userID)
		return summary, false, err
	}
	key := utils.DashboardKey(userID, gen)
	var cached analytics.Summary
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("dashboard cache read failed")
	}
	if found {
		return cached, true, nil
	}

	// The fill is shared by every waiter, so one caller going away must not fail it
	fillCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(key, func() (any, error) {
		summary, err := s.summarize(fillCtx, userID)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(fillCtx, key, summary); err != nil {
			logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("dashboard cache write failed")
		}
		return summary, nil
	})
	if err != nil {
		return analytics.Summary{}, false, err
	}
	return v.(analytics.Summary), false, nil
}

func (s *Service) summarize(ctx context.Context, userID uint) (analytics.Summary, error) {
	txs, err := s.store.ListTransactions(ctx, userID, store.TransactionFilter{})
	if err != nil {
		return analytics.Summary{}, err
	}
	return analytics.Summarize(txs), nil
}

// Report summarizes the user's transactions dated within [from, to]. Either bound may be nil.
func (s *Service) Report(ctx context.Context, userID uint, from, to *time.Time) (analytics.Summary, error) {
	txs, err := s.store.ListTransactions(ctx, userID, store.TransactionFilter{From: from, To: to})
	if err != nil {
		return analytics.Summary{}, err
	}
	return analytics.Summarize(txs), nil
}

func (s *Service) invalidate(ctx context.Context, userID uint) {
	if err := s.cache.Bump(context.WithoutCancel(ctx), utils.DashboardGenKey(userID)); err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Warn("dashboard cache invalidation failed")
	}
}
