package report

import (
	"testing"

	"budgetbuddy/internal/core"
)

func exp(id string, cents int64, category string, date core.Date) core.Expense {
	return core.Expense{
		ID:          id,
		UserID:      "u1",
		Amount:      core.Money{Cents: cents},
		Description: "expense " + id,
		Category:    category,
		Date:        date,
	}
}

func TestTotal(t *testing.T) {
	records := []core.Expense{
		exp("1", 4550, "Food", core.NewDate(2025, 4, 10)),
		exp("2", 3000, "Transport", core.NewDate(2025, 4, 12)),
	}

	got := Total(records)
	if got.Cents != 7550 {
		t.Errorf("Total = %d cents, want 7550", got.Cents)
	}

	if empty := Total(nil); empty.Cents != 0 {
		t.Errorf("Total(nil) = %d cents, want 0", empty.Cents)
	}
}

func TestByCategory(t *testing.T) {
	records := []core.Expense{
		exp("1", 4550, "Food", core.NewDate(2025, 4, 10)),
		exp("2", 3000, "Transport", core.NewDate(2025, 4, 12)),
		exp("3", 1000, "Food", core.NewDate(2025, 4, 20)),
	}

	got := ByCategory(records)
	if len(got) != 2 {
		t.Fatalf("ByCategory returned %d groups, want 2", len(got))
	}
	if got["Food"].Cents != 5550 {
		t.Errorf("Food = %d cents, want 5550", got["Food"].Cents)
	}
	if got["Transport"].Cents != 3000 {
		t.Errorf("Transport = %d cents, want 3000", got["Transport"].Cents)
	}

	// Categories with no expenses never appear as zero-valued keys.
	if _, ok := got["Entertainment"]; ok {
		t.Error("unused category should be absent from the grouping")
	}
}

func TestByMonth(t *testing.T) {
	records := []core.Expense{
		exp("1", 4550, "Food", core.NewDate(2025, 4, 1)),
		exp("2", 3000, "Transport", core.NewDate(2025, 4, 30)),
		exp("3", 2000, "Food", core.NewDate(2025, 3, 15)),
	}

	got := ByMonth(records)
	if len(got) != 2 {
		t.Fatalf("ByMonth returned %d groups, want 2", len(got))
	}
	if got["2025-04"].Cents != 7550 {
		t.Errorf("2025-04 = %d cents, want 7550", got["2025-04"].Cents)
	}
	if got["2025-03"].Cents != 2000 {
		t.Errorf("2025-03 = %d cents, want 2000", got["2025-03"].Cents)
	}
}

// The grand total always equals the sum of every grouping, whichever way the
// records are sliced.
func TestGroupingsSumToTotal(t *testing.T) {
	records := []core.Expense{
		exp("1", 12075, "Shopping", core.NewDate(2025, 4, 3)),
		exp("2", 8930, "Utilities", core.NewDate(2025, 4, 6)),
		exp("3", 1599, "Entertainment", core.NewDate(2025, 3, 9)),
		exp("4", 3000, "Transport", core.NewDate(2025, 2, 12)),
		exp("5", 4550, "Food", core.NewDate(2025, 2, 15)),
	}

	total := Total(records).Cents

	var byCat int64
	for _, m := range ByCategory(records) {
		byCat += m.Cents
	}
	if byCat != total {
		t.Errorf("sum of category groups = %d, want total %d", byCat, total)
	}

	var byMonth int64
	for _, m := range ByMonth(records) {
		byMonth += m.Cents
	}
	if byMonth != total {
		t.Errorf("sum of month groups = %d, want total %d", byMonth, total)
	}
}

func TestAggregatesEmpty(t *testing.T) {
	if got := ByCategory(nil); len(got) != 0 {
		t.Errorf("ByCategory(nil) = %v, want empty", got)
	}
	if got := ByMonth([]core.Expense{}); len(got) != 0 {
		t.Errorf("ByMonth(empty) = %v, want empty", got)
	}
}
