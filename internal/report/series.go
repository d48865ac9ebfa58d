package report

import (
	"sort"
	"time"

	"budgetbuddy/internal/core"
)

// trendMonths is the fixed length of the trend series. The trend view always
// covers the six calendar months ending at the current month, regardless of
// the selected window.
const trendMonths = 6

type (
	// MonthPoint is one bucket of the monthly series.
	MonthPoint struct {
		Key    string     `json:"key"`
		Label  string     `json:"label"`
		Amount core.Money `json:"amount"`
	}

	// CategoryRank is one row of the category ranking, including its share
	// of the ranked total.
	CategoryRank struct {
		Category string     `json:"category"`
		Amount   core.Money `json:"amount"`
		Percent  float64    `json:"percent"`
	}

	// MonthChange is one row of the month-over-month comparison.
	// HasChange is false for the first month and whenever the previous
	// month's total is zero; ChangePct is 0 in both cases so a caller never
	// sees NaN or Inf.
	MonthChange struct {
		Key       string     `json:"key"`
		Label     string     `json:"label"`
		Amount    core.Money `json:"amount"`
		ChangePct float64    `json:"changePct"`
		HasChange bool       `json:"hasChange"`
	}

	// Extremes summarizes the monthly series. All three default to zero for
	// an empty series.
	Extremes struct {
		Highest core.Money `json:"highest"`
		Lowest  core.Money `json:"lowest"`
		Average core.Money `json:"average"`
	}
)

// monthLabel turns a YYYY-MM key into a short display label like "Apr 25".
func monthLabel(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return t.Format("Jan 06")
}

// MonthlySeries groups records by month key and returns the buckets in
// ascending key order (lexicographic, which is chronological for YYYY-MM).
func MonthlySeries(records []core.Expense) []MonthPoint {
	byMonth := ByMonth(records)
	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]MonthPoint, 0, len(keys))
	for _, k := range keys {
		out = append(out, MonthPoint{Key: k, Label: monthLabel(k), Amount: byMonth[k]})
	}
	return out
}

// RankCategories groups records by category, sums amounts, and sorts
// descending by amount. Ties keep the order in which the categories were
// first encountered. Percent is each category's share of the ranked total;
// all shares are 0 when the total is 0.
func RankCategories(records []core.Expense) []CategoryRank {
	totals := make(map[string]int64)
	order := make([]string, 0)
	for _, e := range records {
		if _, seen := totals[e.Category]; !seen {
			order = append(order, e.Category)
		}
		totals[e.Category] += e.Amount.Cents
	}

	out := make([]CategoryRank, 0, len(order))
	var totalCents int64
	for _, name := range order {
		out = append(out, CategoryRank{Category: name, Amount: core.Money{Cents: totals[name]}})
		totalCents += totals[name]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.Cents > out[j].Amount.Cents
	})

	if totalCents > 0 {
		for i := range out {
			out[i].Percent = 100 * float64(out[i].Amount.Cents) / float64(totalCents)
		}
	}
	return out
}

// TrendSeries always returns exactly six buckets, one per calendar month for
// the six months ending at now's month, oldest first. Each bucket sums the
// records whose date falls inside that calendar month.
func TrendSeries(records []core.Expense, now time.Time) []MonthPoint {
	byMonth := ByMonth(records)
	out := make([]MonthPoint, 0, trendMonths)
	for i := trendMonths - 1; i >= 0; i-- {
		m := subMonths(now, i)
		key := m.Format("2006-01")
		out = append(out, MonthPoint{Key: key, Label: monthLabel(key), Amount: byMonth[key]})
	}
	return out
}

// Comparison computes the month-over-month change for an ascending monthly
// series. The first entry and any entry following a zero month carry
// HasChange=false.
func Comparison(series []MonthPoint) []MonthChange {
	out := make([]MonthChange, 0, len(series))
	for i, p := range series {
		row := MonthChange{Key: p.Key, Label: p.Label, Amount: p.Amount}
		if i > 0 && series[i-1].Amount.Cents != 0 {
			prev := series[i-1].Amount.Cents
			row.ChangePct = 100 * float64(p.Amount.Cents-prev) / float64(prev)
			row.HasChange = true
		}
		out = append(out, row)
	}
	return out
}

// SeriesExtremes returns the highest, lowest, and average bucket of the
// monthly series. The average rounds half-up to whole cents.
func SeriesExtremes(series []MonthPoint) Extremes {
	if len(series) == 0 {
		return Extremes{}
	}
	highest := series[0].Amount.Cents
	lowest := series[0].Amount.Cents
	var total int64
	for _, p := range series {
		c := p.Amount.Cents
		if c > highest {
			highest = c
		}
		if c < lowest {
			lowest = c
		}
		total += c
	}
	n := int64(len(series))
	avg := (total + n/2) / n
	return Extremes{
		Highest: core.Money{Cents: highest},
		Lowest:  core.Money{Cents: lowest},
		Average: core.Money{Cents: avg},
	}
}
