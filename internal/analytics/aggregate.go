// Package analytics derives totals, category sums and time series from a set
// of transactions. Every function is pure: the same set yields the same
// result regardless of order, and sums are exact decimals.
package analytics

import (
	"sort"

	"finance_tracker/internal/domain"

	"github.com/shopspring/decimal"
)

// MonthLayout is the key format of monthly buckets
const MonthLayout = "2006-01"

// Totals holds the headline figures of a transaction set
type Totals struct {
	Income  decimal.Decimal `json:"total_income"`
	Expense decimal.Decimal `json:"total_expense"`
	Net     decimal.Decimal `json:"net"`
	Count   int             `json:"transaction_count"`
}

// CategoryTotal is one slice of the expense distribution
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// Bucket accumulates income and expense for one day or month
type Bucket struct {
	Key     string          `json:"key"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// Summary bundles every derived view shown on the dashboard
type Summary struct {
	Totals     Totals          `json:"totals"`
	Categories []CategoryTotal `json:"categories"`
	Daily      []Bucket        `json:"daily"`
	Monthly    []Bucket        `json:"monthly"`
}

// ComputeTotals sums income and expense and derives net = income - expense
func ComputeTotals(txs []domain.Transaction) Totals {
	income, expense := decimal.Zero, decimal.Zero
	for _, t := range txs {
		switch t.Type {
		case domain.TypeIncome:
			income = income.Add(t.Amount)
		case domain.TypeExpense:
			expense = expense.Add(t.Amount)
		}
	}
	return Totals{
		Income:  income,
		Expense: expense,
		Net:     income.Sub(expense),
		Count:   len(txs),
	}
}

// CategoryBreakdown sums expenses per category. Income is excluded.
func CategoryBreakdown(txs []domain.Transaction) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, t := range txs {
		if t.Type != domain.TypeExpense {
			continue
		}
		out[t.Category] = out[t.Category].Add(t.Amount)
	}
	return out
}

// RankCategories orders a breakdown by total descending, then by name
func RankCategories(breakdown map[string]decimal.Decimal) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(breakdown))
	for category, total := range breakdown {
		out = append(out, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// DayKey is the bucket key of the calendar day t falls on
func DayKey(t domain.Transaction) string {
	return t.Date.UTC().Format(domain.DateLayout)
}

// MonthKey is the bucket key of the year and month t falls in
func MonthKey(t domain.Transaction) string {
	return t.Date.UTC().Format(MonthLayout)
}

// DailySeries buckets transactions per calendar day, oldest first
func DailySeries(txs []domain.Transaction) []Bucket {
	return Series(txs, DayKey)
}

// MonthlySeries buckets transactions per year+month, oldest first
func MonthlySeries(txs []domain.Transaction) []Bucket {
	return Series(txs, MonthKey)
}

// Series groups txs by key and returns the buckets sorted by key.
// Keys must sort chronologically as strings.
func Series(txs []domain.Transaction, key func(domain.Transaction) string) []Bucket {
	index := make(map[string]*Bucket)
	for _, t := range txs {
		k := key(t)
		b, ok := index[k]
		if !ok {
			b = &Bucket{Key: k, Income: decimal.Zero, Expense: decimal.Zero}
			index[k] = b
		}
		switch t.Type {
		case domain.TypeIncome:
			b.Income = b.Income.Add(t.Amount)
		case domain.TypeExpense:
			b.Expense = b.Expense.Add(t.Amount)
		}
	}
	out := make([]Bucket, 0, len(index))
	for _, b := range index {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Summarize computes every dashboard view in one pass over the inputs
func Summarize(txs []domain.Transaction) Summary {
	return Summary{
		Totals:     ComputeTotals(txs),
		Categories: RankCategories(CategoryBreakdown(txs)),
		Daily:      DailySeries(txs),
		Monthly:    MonthlySeries(txs),
	}
}
