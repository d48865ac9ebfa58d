// Package report derives aggregated views and report datasets from a user's
// expense records. Every function here is a pure recomputation over the input
// slice; there is no hidden state, so callers may memoize results keyed by
// the ledger revision.
package report

import "budgetbuddy/internal/core"

// Total sums all amounts. The empty set totals zero.
func Total(records []core.Expense) core.Money {
	var cents int64
	for _, e := range records {
		cents += e.Amount.Cents
	}
	return core.Money{Cents: cents}
}

// ByCategory sums amounts grouped by category name. Categories with no
// matching records are absent from the map, never present with value 0.
func ByCategory(records []core.Expense) map[string]core.Money {
	out := make(map[string]core.Money)
	for _, e := range records {
		m := out[e.Category]
		m.Cents += e.Amount.Cents
		out[e.Category] = m
	}
	return out
}

// ByMonth sums amounts grouped by the YYYY-MM prefix of each record's date.
func ByMonth(records []core.Expense) map[string]core.Money {
	out := make(map[string]core.Money)
	for _, e := range records {
		key := e.Date.MonthKey()
		m := out[key]
		m.Cents += e.Amount.Cents
		out[key] = m
	}
	return out
}
