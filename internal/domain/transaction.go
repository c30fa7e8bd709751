package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is either income or expense
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is a known transaction type
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Source tags how a transaction was captured
type Source string

const (
	SourceManual Source = "manual"
	SourceVoice  Source = "voice"
)

// Valid reports whether s is a known capture source
func (s Source) Valid() bool {
	return s == SourceManual || s == SourceVoice
}

// MaxAmount is the exclusive upper bound of the decimal(14,2) amount column
var MaxAmount = decimal.New(1, 12)

// DateLayout is the calendar date format used on the wire and for day buckets
const DateLayout = "2006-01-02"

// Transaction Model
type Transaction struct {
	ID              uint            `gorm:"primaryKey" json:"id"`                             // Primary key
	UserID          uint            `gorm:"index;not null" json:"user_id"`                    // Owning user
	Type            TransactionType `gorm:"size:16;not null" json:"type"`                     // income or expense
	Category        string          `gorm:"size:64;not null" json:"category"`                 // Free text category
	Amount          decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`        // Non-negative amount
	Date            time.Time       `gorm:"index;not null" json:"date"`                       // Calendar date, UTC midnight
	Files           []string        `gorm:"serializer:json;type:text" json:"files,omitempty"` // Attached file references
	ReportTitle     string          `gorm:"size:128" json:"report_title,omitempty"`           // Expense report grouping
	TripDestination string          `gorm:"size:128" json:"trip_destination,omitempty"`       // Trip grouping
	Notes           string          `gorm:"type:text" json:"notes,omitempty"`                 // Free text notes
	Source          Source          `gorm:"size:16;default:manual" json:"source"`             // manual or voice
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Validate checks the invariants every stored transaction must hold
func (t *Transaction) Validate() error {
	if !t.Type.Valid() {
		return &ValidationError{Field: "type", Reason: "must be income or expense"}
	}
	if strings.TrimSpace(t.Category) == "" {
		return &ValidationError{Field: "category", Reason: "is required"}
	}
	if t.Amount.IsNegative() {
		return &ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	if !t.Amount.Equal(t.Amount.Round(2)) {
		return &ValidationError{Field: "amount", Reason: "must have at most 2 decimal places"}
	}
	if t.Amount.GreaterThanOrEqual(MaxAmount) {
		return &ValidationError{Field: "amount", Reason: "must be less than 1000000000000"}
	}
	if t.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "is required"}
	}
	if !t.Source.Valid() {
		return &ValidationError{Field: "source", Reason: "must be manual or voice"}
	}
	return nil
}

// TransactionDraft is an unvalidated candidate transaction
type TransactionDraft struct {
	Type            TransactionType  `json:"type"`
	Category        string           `json:"category"`
	Amount          *decimal.Decimal `json:"amount"`
	Date            string           `json:"date"`
	Files           []string         `json:"files"`
	ReportTitle     string           `json:"report_title"`
	TripDestination string           `json:"trip_destination"`
	Notes           string           `json:"notes"`
	Source          Source           `json:"source"`
}

// Build validates the draft and turns it into a transaction owned by userID
func (d TransactionDraft) Build(userID uint) (Transaction, error) {
	if d.Type == "" {
		return Transaction{}, &ValidationError{Field: "type", Reason: "is required"}
	}
	if strings.TrimSpace(d.Category) == "" {
		return Transaction{}, &ValidationError{Field: "category", Reason: "is required"}
	}
	if d.Amount == nil {
		return Transaction{}, &ValidationError{Field: "amount", Reason: "is required"}
	}
	if strings.TrimSpace(d.Date) == "" {
		return Transaction{}, &ValidationError{Field: "date", Reason: "is required"}
	}
	date, err := ParseDate(d.Date)
	if err != nil {
		return Transaction{}, err
	}
	source := d.Source
	if source == "" {
		source = SourceManual
	}
	t := Transaction{
		UserID:          userID,
		Type:            d.Type,
		Category:        strings.TrimSpace(d.Category),
		Amount:          *d.Amount,
		Date:            date,
		Files:           d.Files,
		ReportTitle:     d.ReportTitle,
		TripDestination: d.TripDestination,
		Notes:           d.Notes,
		Source:          source,
	}
	if err := t.Validate(); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

// TransactionPatch carries a partial update, nil fields are left untouched
type TransactionPatch struct {
	Type            *TransactionType `json:"type"`
	Category        *string          `json:"category"`
	Amount          *decimal.Decimal `json:"amount"`
	Date            *string          `json:"date"`
	Files           *[]string        `json:"files"`
	ReportTitle     *string          `json:"report_title"`
	TripDestination *string          `json:"trip_destination"`
	Notes           *string          `json:"notes"`
}

// Apply merges the patch into t and re-validates the result
func (p TransactionPatch) Apply(t *Transaction) error {
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Category != nil {
		t.Category = strings.TrimSpace(*p.Category)
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Date != nil {
		date, err := ParseDate(*p.Date)
		if err != nil {
			return err
		}
		t.Date = date
	}
	if p.Files != nil {
		t.Files = *p.Files
	}
	if p.ReportTitle != nil {
		t.ReportTitle = *p.ReportTitle
	}
	if p.TripDestination != nil {
		t.TripDestination = *p.TripDestination
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	return t.Validate()
}

// ParseDate accepts YYYY-MM-DD or RFC3339 and returns the calendar day at UTC midnight
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD or RFC3339"}
	}
	return CalendarDay(t), nil
}

// CalendarDay truncates t to midnight UTC of the date it shows in its own location
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
