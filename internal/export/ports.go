// Package export turns expense records into documents and mirror rows:
// the CSV statement served to clients, and the append-only targets the
// export worker writes mutation events to.
package export

import (
	"context"

	"budgetbuddy/internal/core"
)

// RowAppender is the port the export worker writes through. Implementations
// append one row per event and never rewrite earlier rows.
type RowAppender interface {
	AppendExpense(ctx context.Context, action string, e core.Expense) error
}
