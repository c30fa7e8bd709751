package gamification

import (
	"testing"
	"time"

	"finance_tracker/internal/domain"

	"github.com/stretchr/testify/assert"
)

func day(d int, hour int) time.Time {
	return time.Date(2024, 1, d, hour, 0, 0, 0, time.UTC)
}

func TestApplyStreakSequence(t *testing.T) {
	u := &domain.User{}

	awarded := Apply(u, 1, domain.SourceManual, day(1, 9))
	assert.Equal(t, []string{domain.BadgeFirstTransaction}, awarded)
	assert.Equal(t, 1, u.Streak)
	assert.Equal(t, day(1, 9), *u.LastTransactionAt)

	awarded = Apply(u, 2, domain.SourceManual, day(2, 8))
	assert.Empty(t, awarded)
	assert.Equal(t, 2, u.Streak)

	Apply(u, 3, domain.SourceManual, day(5, 20))
	assert.Equal(t, 1, u.Streak)
	assert.Equal(t, []string{domain.BadgeFirstTransaction}, u.Badges)
}

func TestApplyVoiceStarterOnce(t *testing.T) {
	u := &domain.User{}
	awarded := Apply(u, 1, domain.SourceVoice, day(1, 9))
	assert.Equal(t, []string{domain.BadgeFirstTransaction, domain.BadgeVoiceStarter}, awarded)

	awarded = Apply(u, 2, domain.SourceVoice, day(1, 10))
	assert.Empty(t, awarded)
	assert.Equal(t, []string{domain.BadgeFirstTransaction, domain.BadgeVoiceStarter}, u.Badges)
}

func TestApplyFirstTransactionNotReadded(t *testing.T) {
	// a user who deleted everything and starts over keeps a single badge
	u := &domain.User{Badges: []string{domain.BadgeFirstTransaction}}
	awarded := Apply(u, 1, domain.SourceManual, day(3, 9))
	assert.Empty(t, awarded)
	assert.Len(t, u.Badges, 1)
}

func TestNextStreak(t *testing.T) {
	last := day(10, 23)
	cases := []struct {
		name    string
		current int
		last    *time.Time
		now     time.Time
		want    int
	}{
		{"no previous transaction", 0, nil, day(10, 9), 1},
		{"same day keeps streak", 4, &last, day(10, 23), 4},
		{"next calendar day extends", 4, &last, day(11, 1), 5},
		{"two days later resets", 4, &last, day(12, 9), 1},
		{"clock behind keeps streak", 4, &last, day(9, 9), 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, NextStreak(c.current, c.last, c.now))
		})
	}
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, DaysBetween(day(1, 0), day(1, 23)))
	assert.Equal(t, 1, DaysBetween(day(1, 23), day(2, 0)))
	assert.Equal(t, 3, DaysBetween(day(1, 12), day(4, 1)))
	// month boundary
	assert.Equal(t, 1, DaysBetween(day(31, 12), time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
}
