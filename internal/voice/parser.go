// Package voice turns a transcribed sentence into a best-effort transaction draft.
//
// The rules are keyword based and case-insensitive. Type and category are
// detected independently: a sentence can be typed income while landing in an
// unrelated category bucket.
package voice

import (
	"regexp"
	"strings"
	"time"

	"finance_tracker/internal/domain"

	"github.com/shopspring/decimal"
)

// CategoryGeneral is used when no keyword matches
const CategoryGeneral = "General"

var incomeKeywords = []string{"salary", "income", "credited"}

// categoryRules is ordered, the first matching rule wins
var categoryRules = []struct {
	keywords []string
	category string
}{
	{[]string{"coffee"}, "Coffee"},
	{[]string{"rent"}, "Rent"},
	{[]string{"food", "lunch", "dinner"}, "Food"},
	{[]string{"bill", "electricity", "water"}, "Bills"},
	{incomeKeywords, "Salary"},
}

// amountPattern matches a digit run with an optional rupee marker in front of it
var amountPattern = regexp.MustCompile(`(?i)(?:₹|rs\.?|rupees?)?\s?(\d+)`)

// Result is what the parser could read out of a sentence
type Result struct {
	Type     domain.TransactionType `json:"type"`
	Category string                 `json:"category"`
	Amount   decimal.Decimal        `json:"amount"`
}

// Parse reads type, category and amount from text. Only a missing amount is an error.
func Parse(text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, &domain.ValidationError{Field: "text", Reason: "is required"}
	}
	amount, err := DetectAmount(text)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Type:     DetectType(text),
		Category: DetectCategory(text),
		Amount:   amount,
	}, nil
}

// DetectType returns income when any income keyword appears, expense otherwise
func DetectType(text string) domain.TransactionType {
	if containsAny(strings.ToLower(text), incomeKeywords) {
		return domain.TypeIncome
	}
	return domain.TypeExpense
}

// DetectCategory applies the ordered keyword table and falls back to General
func DetectCategory(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range categoryRules {
		if containsAny(lower, rule.keywords) {
			return rule.category
		}
	}
	return CategoryGeneral
}

// DetectAmount returns the first digit run in text. A zero amount counts as not detected.
func DetectAmount(text string) (decimal.Decimal, error) {
	m := amountPattern.FindStringSubmatch(text)
	if m == nil {
		return decimal.Zero, domain.ErrAmountNotDetected
	}
	amount, err := decimal.NewFromString(m[1])
	if err != nil || amount.IsZero() {
		return decimal.Zero, domain.ErrAmountNotDetected
	}
	return amount, nil
}

// Draft converts the result into a voice-sourced transaction draft dated now
func (r Result) Draft(now time.Time) domain.TransactionDraft {
	amount := r.Amount
	return domain.TransactionDraft{
		Type:     r.Type,
		Category: r.Category,
		Amount:   &amount,
		Date:     now.Format(domain.DateLayout),
		Source:   domain.SourceVoice,
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
