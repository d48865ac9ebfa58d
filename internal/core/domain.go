package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// Date is a calendar date without time-of-day. It travels as an ISO
	// YYYY-MM-DD string on the wire and in storage; the embedded time.Time
	// is always midnight UTC so formatting round-trips exactly.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Expense is a single user transaction. ID and UserID are assigned at
	// creation time and never change afterwards.
	Expense struct {
		ID          string `json:"id"`
		UserID      string `json:"userId"`
		Amount      Money  `json:"amount"`
		Description string `json:"description"`
		Category    string `json:"category"`
		Date        Date   `json:"date"`
	}

	// Category is a plain label; uniqueness is by name within a user's set.
	// There is no referential integrity toward expenses: removing a category
	// leaves existing expenses pointing at its name.
	Category struct {
		UserID string `json:"-"`
		Name   string `json:"name"`
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
)

const dateLayout = "2006-01-02"

// ParseDate parses an ISO YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ISO returns the canonical YYYY-MM-DD form.
func (d Date) ISO() string {
	return d.Time.Format(dateLayout)
}

// MonthKey returns the YYYY-MM grouping key. It is the literal prefix of the
// ISO string, never a timezone-adjusted derivation, so a record cannot be
// attributed to a neighboring month.
func (d Date) MonthKey() string {
	return d.ISO()[:7]
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.ISO() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// DefaultCategories is the starter set every new user begins with.
var DefaultCategories = []string{
	"Food", "Transport", "Entertainment", "Utilities",
	"Shopping", "Health", "Education", "Other",
}
