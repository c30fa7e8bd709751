package gamification

import (
	"context"
	"sync"
	"time"

	"finance_tracker/internal/domain"
	"finance_tracker/internal/store"
)

// StatsStore inserts a transaction and, in the same database transaction,
// hands fn a locked copy of the owner together with the owner's transaction
// count. It persists whatever fn changed.
type StatsStore interface {
	CreateTransaction(ctx context.Context, t *domain.Transaction, fn store.StatsFunc) (*domain.User, error)
}

// Tracker serializes gamification updates per user
type Tracker struct {
	store StatsStore
	now   func() time.Time
	locks *UserLocks
}

// NewTracker returns a tracker backed by store. A nil now defaults to time.Now.
func NewTracker(store StatsStore, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{store: store, now: now, locks: NewUserLocks()}
}

// Now is the tracker's clock
func (t *Tracker) Now() time.Time {
	return t.now()
}

// Record stores tx and applies the badge and streak rules for it. A failed
// stats update is reported with an error wrapping domain.ErrStatsNotSaved;
// tx is stored in that case.
func (t *Tracker) Record(ctx context.Context, tx *domain.Transaction) (*domain.User, []string, error) {
	unlock := t.locks.Lock(tx.UserID)
	defer unlock()

	var awarded []string
	now := t.now()
	u, err := t.store.CreateTransaction(ctx, tx, func(u *domain.User, txCount int64) error {
		awarded = Apply(u, txCount, tx.Source, now)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return u, awarded, nil
}

// UserLocks is a set of mutexes keyed by user id. Entries are dropped once unused.
type UserLocks struct {
	mu    sync.Mutex
	locks map[uint]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func NewUserLocks() *UserLocks {
	return &UserLocks{locks: make(map[uint]*userLock)}
}

// Lock blocks until the lock for userID is held and returns its release func
func (l *UserLocks) Lock(userID uint) func() {
	l.mu.Lock()
	ul, ok := l.locks[userID]
	if !ok {
		ul = &userLock{}
		l.locks[userID] = ul
	}
	ul.refs++
	l.mu.Unlock()

	ul.mu.Lock()
	return func() {
		ul.mu.Unlock()
		l.mu.Lock()
		ul.refs--
		if ul.refs == 0 {
			delete(l.locks, userID)
		}
		l.mu.Unlock()
	}
}

func (l *UserLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
