package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"budgetbuddy/internal/core"
)

// DemoEmail identifies the built-in demo account.
const DemoEmail = "demo@example.com"

// EnsureDemoUser creates the demo account with the given password hash and
// fills it with sample expenses when its ledger is empty. Existing demo data
// is left alone.
func (r *Repository) EnsureDemoUser(ctx context.Context, passwordHash string) (User, error) {
	u, err := r.GetUserByEmail(ctx, DemoEmail)
	if errors.Is(err, ErrNotFound) {
		u, err = r.CreateUser(ctx, "Demo User", DemoEmail, passwordHash)
	}
	if err != nil {
		return User{}, fmt.Errorf("ensure demo user: %w", err)
	}

	existing, err := r.Load(ctx, u.ID)
	if err != nil {
		return User{}, fmt.Errorf("load demo expenses: %w", err)
	}
	if len(existing) > 0 {
		return u, nil
	}

	demo := []core.Expense{
		{ID: "5", UserID: u.ID, Amount: core.Money{Cents: 12075}, Description: "New shoes", Category: "Shopping", Date: core.NewDate(2025, 4, 15)},
		{ID: "4", UserID: u.ID, Amount: core.Money{Cents: 8930}, Description: "Electricity bill", Category: "Utilities", Date: core.NewDate(2025, 4, 10)},
		{ID: "3", UserID: u.ID, Amount: core.Money{Cents: 1599}, Description: "Netflix subscription", Category: "Entertainment", Date: core.NewDate(2025, 4, 5)},
		{ID: "2", UserID: u.ID, Amount: core.Money{Cents: 3000}, Description: "Uber ride", Category: "Transport", Date: core.NewDate(2025, 4, 3)},
		{ID: "1", UserID: u.ID, Amount: core.Money{Cents: 4550}, Description: "Grocery shopping", Category: "Food", Date: core.NewDate(2025, 4, 1)},
	}
	if err := r.Save(ctx, u.ID, demo); err != nil {
		return User{}, fmt.Errorf("seed demo expenses: %w", err)
	}

	slog.InfoContext(ctx, "Demo account seeded", "user_id", u.ID, "expenses", len(demo))
	return u, nil
}
