package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"budgetbuddy/internal/amqp"
	"budgetbuddy/internal/config"
	"budgetbuddy/internal/core"
)

type fakeAppender struct {
	rows []string
	fail bool
}

func (a *fakeAppender) AppendExpense(ctx context.Context, action string, e core.Expense) error {
	if a.fail {
		return errors.New("sheet unavailable")
	}
	a.rows = append(a.rows, action+":"+e.ID)
	return nil
}

func testEvent() *amqp.ExpenseEventMessage {
	return amqp.NewExpenseEventMessage(amqp.ActionCreated, core.Expense{
		ID:          "1712345678901",
		UserID:      "u1",
		Amount:      core.Money{Cents: 4550},
		Description: "Groceries",
		Category:    "Food",
		Date:        core.NewDate(2025, 4, 15),
	})
}

func TestMirrorWorker_HandleEvent(t *testing.T) {
	appender := &fakeAppender{}
	w := NewMirrorWorker(appender)

	if err := w.HandleEvent(context.Background(), testEvent()); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
	if len(appender.rows) != 1 || appender.rows[0] != "created:1712345678901" {
		t.Errorf("rows = %v, want one created row", appender.rows)
	}
}

func TestMirrorWorker_AppendFailureRequeues(t *testing.T) {
	w := NewMirrorWorker(&fakeAppender{fail: true})

	if err := w.HandleEvent(context.Background(), testEvent()); err == nil {
		t.Error("append failure should propagate so the delivery is requeued")
	}
}

func TestMirrorWorker_DropsBadSnapshot(t *testing.T) {
	appender := &fakeAppender{}
	w := NewMirrorWorker(appender)

	msg := testEvent()
	msg.Date = "not-a-date"

	if err := w.HandleEvent(context.Background(), msg); err != nil {
		t.Fatalf("bad snapshot should be dropped, not requeued: %v", err)
	}
	if len(appender.rows) != 0 {
		t.Errorf("rows = %v, want none", appender.rows)
	}
}

func TestNewAppender(t *testing.T) {
	t.Run("file backend", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mirror.csv")
		appender, err := NewAppender(context.Background(), &config.Config{
			ExportBackend:  "file",
			ExportFilePath: path,
		})
		if err != nil {
			t.Fatalf("NewAppender: %v", err)
		}

		e := core.Expense{
			ID: "1", UserID: "u1", Amount: core.Money{Cents: 4550},
			Description: "Groceries", Category: "Food", Date: core.NewDate(2025, 4, 15),
		}
		if err := appender.AppendExpense(context.Background(), amqp.ActionCreated, e); err != nil {
			t.Fatalf("AppendExpense: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read mirror file: %v", err)
		}
		if !strings.Contains(string(data), "Groceries") {
			t.Errorf("mirror file = %q, want the appended row", data)
		}
	})

	t.Run("no backend configured", func(t *testing.T) {
		if _, err := NewAppender(context.Background(), &config.Config{ExportBackend: "none"}); err == nil {
			t.Error("expected error when no export target is configured")
		}
	})
}
