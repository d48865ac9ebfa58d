package amqp

import (
	"encoding/json"
	"time"

	"budgetbuddy/internal/core"
)

// Actions carried by an ExpenseEventMessage.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ExpenseEventMessage describes one ledger mutation. The full expense
// snapshot travels with the message so consumers never race a later rewrite
// of the user's record set.
type ExpenseEventMessage struct {
	UserID      string    `json:"user_id"`
	Action      string    `json:"action"`
	ExpenseID   string    `json:"expense_id"`
	AmountCents int64     `json:"amount_cents"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Date        string    `json:"date"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewExpenseEventMessage snapshots an expense into an event.
func NewExpenseEventMessage(action string, e core.Expense) *ExpenseEventMessage {
	return &ExpenseEventMessage{
		UserID:      e.UserID,
		Action:      action,
		ExpenseID:   e.ID,
		AmountCents: e.Amount.Cents,
		Description: e.Description,
		Category:    e.Category,
		Date:        e.Date.ISO(),
		Timestamp:   time.Now(),
	}
}

// Expense reconstructs the domain record from the snapshot.
func (m *ExpenseEventMessage) Expense() (core.Expense, error) {
	d, err := core.ParseDate(m.Date)
	if err != nil {
		return core.Expense{}, err
	}
	return core.Expense{
		ID:          m.ExpenseID,
		UserID:      m.UserID,
		Amount:      core.Money{Cents: m.AmountCents},
		Description: m.Description,
		Category:    m.Category,
		Date:        d,
	}, nil
}

// ToJSON converts the message to JSON bytes.
func (m *ExpenseEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseEventMessageFromJSON creates a message from JSON bytes.
func ExpenseEventMessageFromJSON(data []byte) (*ExpenseEventMessage, error) {
	var msg ExpenseEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
