package report

import (
	"time"

	"budgetbuddy/internal/core"
)

// Type selects which report view the client is rendering.
type Type string

const (
	TypeSummary    Type = "summary"
	TypeCategories Type = "categories"
	TypeTrends     Type = "trends"
)

// Valid reports whether t is a known report type.
func (t Type) Valid() bool {
	switch t {
	case TypeSummary, TypeCategories, TypeTrends:
		return true
	}
	return false
}

// Payload is the full report dataset for one (window, type) selection.
// Sections not used by the selected type are still populated; the client
// picks what it renders.
type Payload struct {
	Window     Window         `json:"window"`
	Type       Type           `json:"type"`
	Total      core.Money     `json:"total"`
	Monthly    []MonthPoint   `json:"monthly"`
	Categories []CategoryRank `json:"categories"`
	Trend      []MonthPoint   `json:"trend"`
	Comparison []MonthChange  `json:"comparison"`
	Extremes   Extremes       `json:"extremes"`
}

// Build filters records by the window and derives every report section.
// It is a pure function of (records, w, t, now).
func Build(records []core.Expense, w Window, t Type, now time.Time) Payload {
	filtered := Filter(records, w, now)
	monthly := MonthlySeries(filtered)
	return Payload{
		Window:     w,
		Type:       t,
		Total:      Total(filtered),
		Monthly:    monthly,
		Categories: RankCategories(filtered),
		Trend:      TrendSeries(filtered, now),
		Comparison: Comparison(monthly),
		Extremes:   SeriesExtremes(monthly),
	}
}
