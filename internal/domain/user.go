package domain

import (
	"slices"
	"time"
)

// Badge names awarded by the gamification tracker
const (
	BadgeFirstTransaction = "First Transaction"
	BadgeVoiceStarter     = "Voice Starter"
)

// User Model
type User struct {
	ID                uint       `gorm:"primaryKey" json:"id"`                       // Primary key
	Name              string     `gorm:"size:128;not null" json:"name"`              // Display name
	Email             string     `gorm:"size:191;uniqueIndex;not null" json:"email"` // Unique, lowercased
	PasswordHash      string     `gorm:"not null" json:"-"`                          // bcrypt hash
	Badges            []string   `gorm:"serializer:json;type:text" json:"badges"`    // Earned badge names
	Streak            int        `gorm:"not null;default:0" json:"streak"`           // Consecutive-day counter
	LastTransactionAt *time.Time `json:"last_transaction_date,omitempty"`            // Last gamified transaction
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// HasBadge reports whether the user already holds the named badge
func (u *User) HasBadge(name string) bool {
	return slices.Contains(u.Badges, name)
}

// AddBadge awards a badge once; it reports whether the badge was new
func (u *User) AddBadge(name string) bool {
	if u.HasBadge(name) {
		return false
	}
	u.Badges = append(u.Badges, name)
	return true
}

// Profile is the public view of a user
type Profile struct {
	ID                uint       `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Badges            []string   `json:"badges"`
	Streak            int        `json:"streak"`
	LastTransactionAt *time.Time `json:"last_transaction_date,omitempty"`
}

// Profile returns the public view of u
func (u *User) Profile() Profile {
	badges := u.Badges
	if badges == nil {
		badges = []string{}
	}
	return Profile{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		Badges:            badges,
		Streak:            u.Streak,
		LastTransactionAt: u.LastTransactionAt,
	}
}
