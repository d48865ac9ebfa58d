package amqp

import (
	"testing"

	"budgetbuddy/internal/core"
)

func TestExpenseEventMessageRoundTrip(t *testing.T) {
	e := core.Expense{
		ID:          "1712345678901",
		UserID:      "u1",
		Amount:      core.Money{Cents: 4550},
		Description: "Groceries",
		Category:    "Food",
		Date:        core.NewDate(2025, 4, 15),
	}

	msg := NewExpenseEventMessage(ActionCreated, e)
	if msg.Action != ActionCreated {
		t.Errorf("action = %q, want %q", msg.Action, ActionCreated)
	}
	if msg.Date != "2025-04-15" {
		t.Errorf("date = %q, want 2025-04-15", msg.Date)
	}
	if msg.Timestamp.IsZero() {
		t.Error("timestamp should be set")
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	decoded, err := ExpenseEventMessageFromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	back, err := decoded.Expense()
	if err != nil {
		t.Fatalf("Expense: %v", err)
	}
	if back != e {
		t.Errorf("round trip = %+v, want %+v", back, e)
	}
}

func TestExpenseEventMessageFromJSONInvalid(t *testing.T) {
	if _, err := ExpenseEventMessageFromJSON([]byte("{not json")); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestExpenseEventMessage_ExpenseRejectsBadDate(t *testing.T) {
	msg := &ExpenseEventMessage{
		UserID:    "u1",
		Action:    ActionUpdated,
		ExpenseID: "1",
		Date:      "15/04/2025",
	}
	if _, err := msg.Expense(); err == nil {
		t.Error("expected error for malformed date")
	}
}
