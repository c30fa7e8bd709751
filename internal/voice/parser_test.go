package voice

import (
	"testing"
	"time"

	"finance_tracker/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		text     string
		typ      domain.TransactionType
		category string
		amount   int64
	}{
		{"Add 200 for coffee", domain.TypeExpense, "Coffee", 200},
		{"Salary credited 5000", domain.TypeIncome, "Salary", 5000},
		{"Paid rent rs. 12000", domain.TypeExpense, "Rent", 12000},
		{"₹350 on lunch with team", domain.TypeExpense, "Food", 350},
		{"electricity BILL 1500 rupees", domain.TypeExpense, "Bills", 1500},
		{"spent 40 on a taxi", domain.TypeExpense, CategoryGeneral, 40},
		{"INCOME from freelance 800", domain.TypeIncome, "Salary", 800},
		{"Rs 99 and then 500 later", domain.TypeExpense, CategoryGeneral, 99},
		// type and category are independent
		{"coffee money credited 150", domain.TypeIncome, "Coffee", 150},
	}

	for _, c := range cases {
		t.Run(c.text, func(t *testing.T) {
			got, err := Parse(c.text)
			require.NoError(t, err)
			assert.Equal(t, c.typ, got.Type)
			assert.Equal(t, c.category, got.Category)
			assert.True(t, decimal.NewFromInt(c.amount).Equal(got.Amount), "amount %s", got.Amount)
		})
	}
}

func TestParseWithoutAmount(t *testing.T) {
	for _, text := range []string{"no numbers here", "coffee with rupees", "paid 0 for water"} {
		_, err := Parse(text)
		assert.ErrorIs(t, err, domain.ErrAmountNotDetected, text)
	}
}

func TestParseEmptyText(t *testing.T) {
	_, err := Parse("   ")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "text", verr.Field)
}

func TestDetectCategoryOrder(t *testing.T) {
	// coffee is checked before food
	assert.Equal(t, "Coffee", DetectCategory("coffee and dinner"))
	// rent is checked before bills
	assert.Equal(t, "Rent", DetectCategory("rent and water bill"))
	assert.Equal(t, CategoryGeneral, DetectCategory(""))
}

func TestResultDraft(t *testing.T) {
	now := time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC)
	res, err := Parse("Add 200 for coffee")
	require.NoError(t, err)

	tx, err := res.Draft(now).Build(7)
	require.NoError(t, err)
	assert.Equal(t, uint(7), tx.UserID)
	assert.Equal(t, domain.SourceVoice, tx.Source)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), tx.Date)
	assert.Equal(t, "Coffee", tx.Category)
}
