// Package gamification awards badges and tracks the consecutive-day streak
// as a side effect of transaction creation.
package gamification

import (
	"time"

	"finance_tracker/internal/domain"
)

// Apply updates u for a transaction created at now. totalTransactions is the
// user's transaction count including the new one. It returns the badges that
// were newly awarded.
func Apply(u *domain.User, totalTransactions int64, source domain.Source, now time.Time) []string {
	var awarded []string
	if totalTransactions == 1 && u.AddBadge(domain.BadgeFirstTransaction) {
		awarded = append(awarded, domain.BadgeFirstTransaction)
	}
	if source == domain.SourceVoice && u.AddBadge(domain.BadgeVoiceStarter) {
		awarded = append(awarded, domain.BadgeVoiceStarter)
	}

	u.Streak = NextStreak(u.Streak, u.LastTransactionAt, now)
	at := now
	u.LastTransactionAt = &at
	return awarded
}

// NextStreak computes the streak after a transaction at now.
// Same day leaves the streak alone, the next day extends it, a longer gap restarts it.
func NextStreak(current int, last *time.Time, now time.Time) int {
	if last == nil {
		return 1
	}
	switch diff := DaysBetween(*last, now); {
	case diff == 1:
		return current + 1
	case diff > 1:
		return 1
	default:
		return current
	}
}

// DaysBetween counts UTC calendar days from a to b
func DaysBetween(a, b time.Time) int {
	da := domain.CalendarDay(a.UTC())
	db := domain.CalendarDay(b.UTC())
	return int(db.Sub(da).Hours() / 24)
}
