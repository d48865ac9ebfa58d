package report

import (
	"time"

	"budgetbuddy/internal/core"
)

// Window names a time filter restricting which records feed a report view.
type Window string

const (
	Last30Days  Window = "last30Days"
	Last3Months Window = "last3Months"
	Last6Months Window = "last6Months"
	ThisYear    Window = "thisYear"
	AllTime     Window = "allTime"
)

// Valid reports whether w is one of the known windows.
func (w Window) Valid() bool {
	switch w {
	case Last30Days, Last3Months, Last6Months, ThisYear, AllTime:
		return true
	}
	return false
}

func (w Window) months() int {
	switch w {
	case Last30Days:
		// Historically one calendar month back, not a rolling 30-day span.
		// Kept as-is for compatibility with existing reports.
		return 1
	case Last3Months:
		return 3
	case Last6Months:
		return 6
	}
	return 0
}

// Filter returns the records that fall inside the window relative to now.
// Month-based windows keep dates within [now - N months, now] inclusive,
// using calendar-month subtraction.
func Filter(records []core.Expense, w Window, now time.Time) []core.Expense {
	switch w {
	case Last30Days, Last3Months, Last6Months:
		cutoff := subMonths(now, w.months())
		out := make([]core.Expense, 0, len(records))
		for _, e := range records {
			d := e.Date.Time
			if !d.Before(cutoff) && !d.After(now) {
				out = append(out, e)
			}
		}
		return out
	case ThisYear:
		out := make([]core.Expense, 0, len(records))
		for _, e := range records {
			if e.Date.Year() == now.Year() {
				out = append(out, e)
			}
		}
		return out
	default:
		out := make([]core.Expense, len(records))
		copy(out, records)
		return out
	}
}

// subMonths moves t back by n calendar months, clamping the day to the last
// day of the target month (Mar 31 minus one month is Feb 28, not Mar 3).
func subMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	m := int(month) - n
	for m < 1 {
		m += 12
		year--
	}
	if last := daysInMonth(year, m); day > last {
		day = last
	}
	return time.Date(year, time.Month(m), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
