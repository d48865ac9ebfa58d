// Package worker consumes expense mutation events and mirrors them to an
// external append-only target (a spreadsheet or a local CSV file).
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"budgetbuddy/internal/amqp"
	"budgetbuddy/internal/config"
	"budgetbuddy/internal/export"
	"budgetbuddy/internal/export/localfile"
	"budgetbuddy/internal/export/sheets"
)

// MirrorWorker appends one row per consumed mutation event.
type MirrorWorker struct {
	appender export.RowAppender
}

func NewMirrorWorker(appender export.RowAppender) *MirrorWorker {
	return &MirrorWorker{appender: appender}
}

// HandleEvent processes a single expense event from the queue. Returning an
// error makes the consumer nack-and-requeue the delivery.
func (w *MirrorWorker) HandleEvent(ctx context.Context, msg *amqp.ExpenseEventMessage) error {
	e, err := msg.Expense()
	if err != nil {
		// Undecodable snapshots are logged and dropped; requeueing them
		// would loop forever.
		slog.ErrorContext(ctx, "Dropping event with bad expense snapshot",
			"user_id", msg.UserID,
			"expense_id", msg.ExpenseID,
			"error", err)
		return nil
	}

	if err := w.appender.AppendExpense(ctx, msg.Action, e); err != nil {
		return fmt.Errorf("append mirror row: %w", err)
	}

	slog.InfoContext(ctx, "Mirrored expense event",
		"user_id", msg.UserID,
		"action", msg.Action,
		"expense_id", msg.ExpenseID)
	return nil
}

// NewAppender builds the export target selected by configuration.
func NewAppender(ctx context.Context, cfg *config.Config) (export.RowAppender, error) {
	switch cfg.ExportBackend {
	case "sheets":
		return sheets.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
	case "file":
		return localfile.New(cfg.ExportFilePath)
	default:
		return nil, fmt.Errorf("no export target configured (EXPORT_BACKEND=%s)", cfg.ExportBackend)
	}
}
